package di

import (
	"github.com/rs/zerolog"

	"github.com/domufi/analytics/internal/modules/goals"
	"github.com/domufi/analytics/internal/modules/ledger"
	"github.com/domufi/analytics/internal/modules/snapshots"
)

// InitializeRepositories creates the repositories over the open databases
func InitializeRepositories(container *Container, log zerolog.Logger) {
	container.LedgerRepo = ledger.NewRepository(container.LedgerDB.Conn(), log)
	container.GoalRepo = goals.NewRepository(container.ConfigDB.Conn(), log)
	container.SnapshotRepo = snapshots.NewRepository(container.HistoryDB.Conn(), log)
}
