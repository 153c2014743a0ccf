package testing

import (
	"context"
	"sync"

	"github.com/domufi/analytics/internal/domain"
)

// MockLedgerProvider is a mock implementation of domain.LedgerProvider for testing
type MockLedgerProvider struct {
	mu     sync.RWMutex
	ledger domain.Ledger
	err    error
	calls  int
}

// NewMockLedgerProvider creates a new mock ledger provider
func NewMockLedgerProvider(ledger domain.Ledger) *MockLedgerProvider {
	return &MockLedgerProvider{ledger: ledger}
}

// Snapshot returns the configured ledger
func (m *MockLedgerProvider) Snapshot(ctx context.Context) (domain.Ledger, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return domain.Ledger{}, m.err
	}
	return m.ledger, nil
}

// SetLedger replaces the ledger returned by Snapshot
func (m *MockLedgerProvider) SetLedger(ledger domain.Ledger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledger = ledger
}

// SetError sets the error to return from Snapshot
func (m *MockLedgerProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Snapshot was called
func (m *MockLedgerProvider) Calls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}

// MockGoalTargetStore is an in-memory implementation of domain.GoalTargetStore
type MockGoalTargetStore struct {
	mu      sync.RWMutex
	targets map[string]float64
	err     error
}

// NewMockGoalTargetStore creates an empty mock goal store
func NewMockGoalTargetStore() *MockGoalTargetStore {
	return &MockGoalTargetStore{targets: make(map[string]float64)}
}

// GetTarget returns the stored target for goalID
func (m *MockGoalTargetStore) GetTarget(ctx context.Context, goalID string) (float64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return 0, false, m.err
	}
	v, ok := m.targets[goalID]
	return v, ok, nil
}

// SetTarget stores a target for goalID
func (m *MockGoalTargetStore) SetTarget(ctx context.Context, goalID string, target float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.targets[goalID] = target
	return nil
}

// SetError sets the error returned by every call
func (m *MockGoalTargetStore) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
