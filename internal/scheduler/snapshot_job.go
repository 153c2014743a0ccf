package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/domufi/analytics/internal/modules/snapshots"
)

const snapshotTimeout = time.Minute

// SnapshotTaker records the day's portfolio snapshot
type SnapshotTaker interface {
	Take(ctx context.Context) (*snapshots.Snapshot, error)
}

// SnapshotJob takes the daily portfolio snapshot
type SnapshotJob struct {
	taker SnapshotTaker
	log   zerolog.Logger
}

// NewSnapshotJob creates a new snapshot job
func NewSnapshotJob(taker SnapshotTaker, log zerolog.Logger) *SnapshotJob {
	return &SnapshotJob{
		taker: taker,
		log:   log.With().Str("job", "portfolio_snapshot").Logger(),
	}
}

// Name returns the job name
func (j *SnapshotJob) Name() string {
	return "portfolio_snapshot"
}

// Run executes the snapshot job
func (j *SnapshotJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	snap, err := j.taker.Take(ctx)
	if err != nil {
		return err
	}

	j.log.Debug().Str("date", snap.Date).Msg("Snapshot job finished")
	return nil
}
