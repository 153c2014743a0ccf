package domain

import "context"

// LedgerProvider exposes a read-only snapshot of the ledger.
// Validation of the records is the provider's responsibility.
type LedgerProvider interface {
	Snapshot(ctx context.Context) (Ledger, error)
}

// GoalTargetStore persists user-edited goal targets.
// GetTarget reports ok=false when no target was ever set for goalID.
type GoalTargetStore interface {
	GetTarget(ctx context.Context, goalID string) (target float64, ok bool, err error)
	SetTarget(ctx context.Context, goalID string, target float64) error
}
