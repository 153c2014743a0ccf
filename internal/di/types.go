/**
 * Package di provides dependency injection type definitions.
 *
 * This package defines the Container type which holds all application dependencies.
 * The Container is the single source of truth for all service instances and is
 * passed to the server and CLI for access to services.
 */
package di

import (
	"errors"

	"github.com/domufi/analytics/internal/cache"
	"github.com/domufi/analytics/internal/database"
	"github.com/domufi/analytics/internal/events"
	"github.com/domufi/analytics/internal/modules/analytics"
	"github.com/domufi/analytics/internal/modules/goals"
	"github.com/domufi/analytics/internal/modules/ledger"
	"github.com/domufi/analytics/internal/modules/snapshots"
	"github.com/domufi/analytics/internal/reliability"
	"github.com/domufi/analytics/internal/scheduler"
)

/**
 * Container holds all dependencies for the application.
 *
 * Architecture:
 * - Databases: ledger (investments, transactions), config (goal targets), history (snapshots)
 * - Repositories: SQLite data access per database
 * - Services: ledger ingestion, analytics (engine + memo), goals, snapshots, backups
 * - Scheduler: cron jobs for snapshots, maintenance and backups
 */
type Container struct {
	// Databases
	LedgerDB  *database.DB
	ConfigDB  *database.DB
	HistoryDB *database.DB

	// Events
	EventBus     *events.Bus
	EventManager *events.Manager

	// Repositories
	LedgerRepo   *ledger.Repository
	GoalRepo     *goals.Repository
	SnapshotRepo *snapshots.Repository

	// Services
	Engine           *analytics.Engine
	Memo             *cache.Memo
	LedgerService    *ledger.Service
	AnalyticsService *analytics.Service
	GoalService      *goals.Service
	SnapshotService  *snapshots.Service
	BackupService    *reliability.BackupService // nil when backups are not configured

	// Jobs
	Scheduler *scheduler.Scheduler
}

// Databases returns the open databases in a stable order
func (c *Container) Databases() []*database.DB {
	dbs := make([]*database.DB, 0, 3)
	for _, db := range []*database.DB{c.LedgerDB, c.ConfigDB, c.HistoryDB} {
		if db != nil {
			dbs = append(dbs, db)
		}
	}
	return dbs
}

// Close closes every open database
func (c *Container) Close() error {
	var errs []error
	for _, db := range c.Databases() {
		if err := db.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
