package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domufi/analytics/internal/modules/snapshots"
)

type countingJob struct {
	name string
	runs atomic.Int32
	err  error
}

func (j *countingJob) Name() string { return j.name }

func (j *countingJob) Run() error {
	j.runs.Add(1)
	return j.err
}

func TestScheduler_AddJobAndTrigger(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{name: "snapshot"}

	require.NoError(t, s.AddJob("0 5 0 * * *", job))
	assert.Equal(t, []string{"snapshot"}, s.JobNames())

	require.NoError(t, s.Trigger("snapshot"))
	assert.Equal(t, int32(1), job.runs.Load())

	assert.ErrorIs(t, s.Trigger("missing"), ErrUnknownJob)
}

func TestScheduler_AddJobErrors(t *testing.T) {
	s := New(zerolog.Nop())

	assert.Error(t, s.AddJob("not a schedule", &countingJob{name: "bad"}))
	assert.Empty(t, s.JobNames(), "a rejected job is not kept")

	require.NoError(t, s.AddJob("", &countingJob{name: "manual"}))
	assert.Error(t, s.AddJob("@hourly", &countingJob{name: "manual"}), "duplicate names are rejected")
}

func TestScheduler_TriggerReturnsJobError(t *testing.T) {
	s := New(zerolog.Nop())
	require.NoError(t, s.AddJob("", &countingJob{name: "backup", err: errors.New("bucket missing")}))

	assert.ErrorContains(t, s.Trigger("backup"), "bucket missing")
}

func TestScheduler_RunsOnSchedule(t *testing.T) {
	s := New(zerolog.Nop())
	job := &countingJob{name: "tick"}
	require.NoError(t, s.AddJob("@every 1s", job))

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool { return job.runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
}

type stubTaker struct {
	err error
}

func (s stubTaker) Take(ctx context.Context) (*snapshots.Snapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &snapshots.Snapshot{Date: "2026-10-16"}, nil
}

func TestSnapshotJob(t *testing.T) {
	job := NewSnapshotJob(stubTaker{}, zerolog.Nop())
	assert.Equal(t, "portfolio_snapshot", job.Name())
	assert.NoError(t, job.Run())

	failing := NewSnapshotJob(stubTaker{err: errors.New("ledger offline")}, zerolog.Nop())
	assert.Error(t, failing.Run())
}
