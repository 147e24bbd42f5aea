package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/exportadvisor/internal/config"
	"github.com/aristath/exportadvisor/internal/modules/snapshots"
	"github.com/aristath/exportadvisor/internal/scheduler"
)

// RegisterJobs creates the scheduler and registers all background jobs.
// The scheduler is not started.
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) (*JobInstances, error) {
	container.Scheduler = scheduler.New(log)

	jobs := &JobInstances{
		PricingSnapshots: snapshots.NewJob(container.SnapshotService),
		WALCheckpoints:   scheduler.NewCheckWALCheckpointsJob(container.Databases(), log),
		Maintenance:      scheduler.NewMaintenanceJob(container.Databases(), cfg.DataDir, log),
	}

	if err := container.Scheduler.AddJob(cfg.SnapshotSchedule, jobs.PricingSnapshots); err != nil {
		return nil, fmt.Errorf("failed to register pricing snapshot job: %w", err)
	}
	if err := container.Scheduler.AddJob(cfg.WALCheckSchedule, jobs.WALCheckpoints); err != nil {
		return nil, fmt.Errorf("failed to register WAL checkpoint job: %w", err)
	}
	if err := container.Scheduler.AddJob(cfg.MaintenanceSchedule, jobs.Maintenance); err != nil {
		return nil, fmt.Errorf("failed to register maintenance job: %w", err)
	}

	log.Info().Int("jobs", len(jobs.All())).Msg("Jobs registered")
	return jobs, nil
}
