// Package di provides dependency injection for database connections.
package di

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/domufi/analytics/internal/config"
	"github.com/domufi/analytics/internal/database"
)

// InitializeDatabases opens the three databases and applies their schemas
func InitializeDatabases(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	specs := []struct {
		name    string
		profile database.DatabaseProfile
		target  **database.DB
	}{
		// ledger.db - investments and the append-only transaction log
		{database.NameLedger, database.ProfileLedger, &container.LedgerDB},
		// config.db - user goal targets
		{database.NameConfig, database.ProfileStandard, &container.ConfigDB},
		// history.db - daily portfolio snapshots
		{database.NameHistory, database.ProfileStandard, &container.HistoryDB},
	}

	for _, spec := range specs {
		db, err := database.New(database.Config{
			Path:    filepath.Join(cfg.DataDir, spec.name+".db"),
			Profile: spec.profile,
			Name:    spec.name,
		})
		if err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to initialize %s database: %w", spec.name, err)
		}
		*spec.target = db

		if err := db.Migrate(); err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to apply %s schema: %w", spec.name, err)
		}

		log.Debug().Str("database", spec.name).Str("path", db.Path()).Msg("Database ready")
	}

	return container, nil
}
