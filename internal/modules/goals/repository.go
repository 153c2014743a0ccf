// Package goals persists user goal targets and assembles live goal progress.
// This file implements the Repository, which stores targets in config.db.
package goals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Repository is the SQLite implementation of domain.GoalTargetStore.
// Only targets are stored; progress is never persisted.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new goal target repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repository", "goals").Logger(),
	}
}

// GetTarget returns the stored target for goalID. ok is false when none was set.
func (r *Repository) GetTarget(ctx context.Context, goalID string) (float64, bool, error) {
	var target float64
	err := r.db.QueryRowContext(ctx, "SELECT target FROM goal_targets WHERE goal_id = ?", goalID).Scan(&target)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get goal target %s: %w", goalID, err)
	}
	return target, true, nil
}

// SetTarget stores the target for goalID, replacing any previous value
func (r *Repository) SetTarget(ctx context.Context, goalID string, target float64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO goal_targets (goal_id, target, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(goal_id) DO UPDATE SET
			target = excluded.target,
			updated_at = excluded.updated_at
	`, goalID, target, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to set goal target %s: %w", goalID, err)
	}

	r.log.Debug().Str("goal_id", goalID).Float64("target", target).Msg("Goal target updated")
	return nil
}
