package snapshots

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/domufi/analytics/internal/events"
	"github.com/domufi/analytics/internal/modules/analytics"
)

// DashboardSource computes the dashboard a snapshot is taken from
type DashboardSource interface {
	Dashboard(ctx context.Context, r analytics.Range) (analytics.Dashboard, error)
}

// Service takes and lists snapshots
type Service struct {
	repo   *Repository
	source DashboardSource
	clock  *analytics.Engine
	events *events.Manager
	log    zerolog.Logger
}

// NewService creates a snapshot service. engine supplies the clock and
// location used to date snapshots; eventManager may be nil.
func NewService(repo *Repository, source DashboardSource, engine *analytics.Engine, eventManager *events.Manager, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		source: source,
		clock:  engine,
		events: eventManager,
		log:    log.With().Str("service", "snapshots").Logger(),
	}
}

// Take records today's figures. Taking a second snapshot on the same day replaces the first.
func (s *Service) Take(ctx context.Context) (*Snapshot, error) {
	dash, err := s.source.Dashboard(ctx, analytics.Range1M)
	if err != nil {
		return nil, fmt.Errorf("failed to compute dashboard: %w", err)
	}

	snap := &Snapshot{
		Date:            s.clock.Today().Format(DateLayout),
		TotalInvested:   dash.Summary.TotalInvested,
		CurrentValue:    dash.Summary.CurrentValue,
		TotalReturnPct:  dash.Summary.TotalReturnPct,
		MonthlyIncome:   dash.Income.MonthlyIncome,
		HealthScore:     dash.Health.Overall,
		TotalProperties: dash.Summary.TotalProperties,
	}
	if err := s.repo.Upsert(ctx, snap); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("date", snap.Date).
		Float64("current_value", snap.CurrentValue).
		Int("health_score", snap.HealthScore).
		Msg("Portfolio snapshot taken")

	if s.events != nil {
		s.events.EmitTyped("snapshots", &events.SnapshotTakenData{
			Date:         snap.Date,
			CurrentValue: snap.CurrentValue,
			HealthScore:  snap.HealthScore,
		})
	}
	return snap, nil
}

// List returns the most recent snapshots, newest first
func (s *Service) List(ctx context.Context, limit int) ([]Snapshot, error) {
	return s.repo.List(ctx, limit)
}
