package goals

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/domufi/analytics/internal/domain"
	"github.com/domufi/analytics/internal/events"
	"github.com/domufi/analytics/internal/modules/analytics"
	"github.com/domufi/analytics/internal/modules/portfolio"
)

var (
	// ErrUnknownGoal is returned for goal ids the service does not know
	ErrUnknownGoal = errors.New("unknown goal")
	// ErrInvalidTarget is returned for non-positive or non-finite targets
	ErrInvalidTarget = errors.New("target must be a positive number")
)

// Service combines stored targets with live ledger figures
type Service struct {
	store  domain.GoalTargetStore
	ledger domain.LedgerProvider
	engine *analytics.Engine
	events *events.Manager
	log    zerolog.Logger
}

// NewService creates a new goals service. eventManager may be nil.
func NewService(
	store domain.GoalTargetStore,
	ledger domain.LedgerProvider,
	engine *analytics.Engine,
	eventManager *events.Manager,
	log zerolog.Logger,
) *Service {
	return &Service{
		store:  store,
		ledger: ledger,
		engine: engine,
		events: eventManager,
		log:    log.With().Str("service", "goals").Logger(),
	}
}

// List returns every goal with its current value recomputed from the ledger
func (s *Service) List(ctx context.Context) ([]domain.Goal, error) {
	snapshot, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	targets := make(map[string]float64, len(analytics.GoalIDs))
	for _, id := range analytics.GoalIDs {
		target, ok, err := s.store.GetTarget(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			targets[id] = target
		}
	}

	summary := portfolio.Summarize(snapshot.Investments)
	income := s.engine.ComputeIncome(snapshot.Investments, snapshot.Transactions)
	return analytics.BuildGoals(summary, income, targets), nil
}

// SetTarget stores a user target for a known goal
func (s *Service) SetTarget(ctx context.Context, goalID string, target float64) error {
	if !analytics.IsGoalID(goalID) {
		return fmt.Errorf("%w: %s", ErrUnknownGoal, goalID)
	}
	if math.IsNaN(target) || math.IsInf(target, 0) || target <= 0 {
		return ErrInvalidTarget
	}

	if err := s.store.SetTarget(ctx, goalID, target); err != nil {
		return err
	}

	s.log.Info().Str("goal_id", goalID).Float64("target", target).Msg("Goal target set")
	if s.events != nil {
		s.events.EmitTyped("goals", &events.GoalTargetChangedData{GoalID: goalID, Target: target})
	}
	return nil
}
