package analytics

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/domufi/analytics/internal/cache"
	"github.com/domufi/analytics/internal/domain"
)

// Service reads the ledger and serves memoized dashboards
type Service struct {
	ledger domain.LedgerProvider
	engine *Engine
	memo   *cache.Memo
	log    zerolog.Logger
}

// NewService creates an analytics service. memo may be nil to disable memoization.
func NewService(ledger domain.LedgerProvider, engine *Engine, memo *cache.Memo, log zerolog.Logger) *Service {
	return &Service{
		ledger: ledger,
		engine: engine,
		memo:   memo,
		log:    log.With().Str("service", "analytics").Logger(),
	}
}

// Engine returns the engine used by the service
func (s *Service) Engine() *Engine {
	return s.engine
}

// Dashboard computes every view over the current ledger for range r
func (s *Service) Dashboard(ctx context.Context, r Range) (Dashboard, error) {
	snapshot, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("failed to read ledger: %w", err)
	}

	if s.memo == nil {
		return s.engine.Dashboard(snapshot, r), nil
	}

	fingerprint, err := cache.Fingerprint(snapshot)
	if err != nil {
		s.log.Warn().Err(err).Msg("Ledger fingerprint failed, computing without memo")
		return s.engine.Dashboard(snapshot, r), nil
	}

	value, err := s.memo.GetOrCompute(cache.Key("dashboard", fingerprint, string(r)), func() (interface{}, error) {
		return s.engine.Dashboard(snapshot, r), nil
	})
	if err != nil {
		return Dashboard{}, err
	}
	return value.(Dashboard), nil
}
