package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/domufi/analytics/internal/config"
	"github.com/domufi/analytics/internal/reliability"
	"github.com/domufi/analytics/internal/scheduler"
)

// maintenanceSchedule runs database maintenance at 02:00 daily
const maintenanceSchedule = "0 0 2 * * *"

// RegisterJobs creates the scheduler and registers every background job.
// The scheduler is not started.
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) error {
	sched := scheduler.New(log)

	if err := sched.AddJob(cfg.Scheduler.SnapshotSchedule, scheduler.NewSnapshotJob(container.SnapshotService, log)); err != nil {
		return fmt.Errorf("failed to register snapshot job: %w", err)
	}

	if err := sched.AddJob(maintenanceSchedule, reliability.NewMaintenanceJob(container.Databases(), cfg.DataDir, log)); err != nil {
		return fmt.Errorf("failed to register maintenance job: %w", err)
	}

	if container.BackupService != nil {
		job := reliability.NewBackupJob(container.BackupService, reliability.DefaultRetentionDays, log)
		if err := sched.AddJob(cfg.Scheduler.BackupSchedule, job); err != nil {
			return fmt.Errorf("failed to register backup job: %w", err)
		}
	} else {
		log.Info().Msg("Backups disabled (BACKUP_S3_BUCKET not set)")
	}

	container.Scheduler = sched
	return nil
}
