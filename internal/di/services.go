package di

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/domufi/analytics/internal/cache"
	"github.com/domufi/analytics/internal/config"
	"github.com/domufi/analytics/internal/events"
	"github.com/domufi/analytics/internal/modules/analytics"
	"github.com/domufi/analytics/internal/modules/goals"
	"github.com/domufi/analytics/internal/modules/ledger"
	"github.com/domufi/analytics/internal/modules/snapshots"
	"github.com/domufi/analytics/internal/reliability"
)

// InitializeServices creates the event bus and every service
func InitializeServices(ctx context.Context, container *Container, cfg *config.Config, log zerolog.Logger) error {
	container.EventBus = events.NewBus(log)
	container.EventManager = events.NewManager(container.EventBus, log)

	opts, err := cfg.Analytics.ToEngineOptions()
	if err != nil {
		return err
	}
	container.Engine = analytics.NewEngine(opts, log)
	container.Memo = cache.NewMemo(cfg.CacheTTL, log)

	// Ledger writes change the fingerprint anyway; dropping entries early keeps memory flat.
	for _, eventType := range events.LedgerEvents {
		container.EventBus.Subscribe(eventType, func(*events.Event) {
			container.Memo.Invalidate()
		})
	}

	container.LedgerService = ledger.NewService(container.LedgerRepo, container.EventManager, log)
	container.AnalyticsService = analytics.NewService(container.LedgerService, container.Engine, container.Memo, log)
	container.GoalService = goals.NewService(container.GoalRepo, container.LedgerService, container.Engine, container.EventManager, log)
	container.SnapshotService = snapshots.NewService(container.SnapshotRepo, container.AnalyticsService, container.Engine, container.EventManager, log)

	if cfg.Backup.Enabled() {
		client, err := reliability.NewS3Client(ctx, cfg.Backup, log)
		if err != nil {
			return fmt.Errorf("failed to create backup client: %w", err)
		}
		container.BackupService = reliability.NewBackupService(
			client,
			container.Databases(),
			cfg.DataDir,
			cfg.Backup.S3Prefix,
			container.EventManager,
			log,
		)
	}

	return nil
}
