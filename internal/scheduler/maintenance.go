package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/disk"

	"github.com/aristath/exportadvisor/internal/database"
)

const (
	// criticalFreeGB halts maintenance; lowFreeGB only warns
	criticalFreeGB = 0.5
	lowFreeGB      = 5.0

	maintenanceTimeout = 5 * time.Minute
)

// MaintenanceJob checks database integrity and free disk space, then
// vacuums every database that is not append-only
type MaintenanceJob struct {
	log       zerolog.Logger
	dataDir   string
	databases map[string]*database.DB
	diskFree  func(path string) (uint64, error)
}

// NewMaintenanceJob creates a new maintenance job
func NewMaintenanceJob(databases map[string]*database.DB, dataDir string, log zerolog.Logger) *MaintenanceJob {
	return &MaintenanceJob{
		log:       log.With().Str("job", "database_maintenance").Logger(),
		dataDir:   dataDir,
		databases: databases,
		diskFree: func(path string) (uint64, error) {
			usage, err := disk.Usage(path)
			if err != nil {
				return 0, err
			}
			return usage.Free, nil
		},
	}
}

// Name returns the job name
func (j *MaintenanceJob) Name() string {
	return "database_maintenance"
}

// Run executes the maintenance job
func (j *MaintenanceJob) Run() error {
	j.log.Info().Msg("Starting database maintenance")
	startTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), maintenanceTimeout)
	defer cancel()

	names := make([]string, 0, len(j.databases))
	for name, db := range j.databases {
		if db != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	// Step 1: integrity check
	for _, name := range names {
		if err := j.databases[name].HealthCheck(ctx); err != nil {
			j.log.Error().Err(err).Str("database", name).Msg("Integrity check failed")
			return fmt.Errorf("integrity check failed for %s: %w", name, err)
		}
	}

	// Step 2: disk space
	if err := j.checkDiskSpace(); err != nil {
		return err
	}

	// Step 3: VACUUM (ledger databases never shrink)
	for _, name := range names {
		db := j.databases[name]
		if db.Profile() == database.ProfileLedger {
			continue
		}
		if err := j.vacuumDatabase(ctx, db, name); err != nil {
			j.log.Error().Err(err).Str("database", name).Msg("VACUUM failed")
		}
	}

	j.log.Info().
		Dur("duration_ms", time.Since(startTime)).
		Msg("Database maintenance completed")

	return nil
}

func (j *MaintenanceJob) checkDiskSpace() error {
	free, err := j.diskFree(j.dataDir)
	if err != nil {
		j.log.Warn().Err(err).Str("dir", j.dataDir).Msg("Failed to read disk usage")
		return nil
	}

	availableGB := float64(free) / 1e9
	j.log.Debug().Float64("available_gb", availableGB).Msg("Disk space check")

	if availableGB < criticalFreeGB {
		j.log.Error().Float64("available_gb", availableGB).Msg("Insufficient disk space")
		return fmt.Errorf("only %.2f GB free in %s", availableGB, j.dataDir)
	}
	if availableGB < lowFreeGB {
		j.log.Warn().Float64("available_gb", availableGB).Msg("Disk space running low")
	}
	return nil
}

func (j *MaintenanceJob) vacuumDatabase(ctx context.Context, db *database.DB, name string) error {
	before, err := db.GetStats()
	if err != nil {
		return err
	}

	if _, err := db.Conn().ExecContext(ctx, "VACUUM"); err != nil {
		return fmt.Errorf("VACUUM failed for %s: %w", name, err)
	}

	after, err := db.GetStats()
	if err != nil {
		return err
	}

	sizeBefore := float64(before.PageCount*before.PageSize) / 1024 / 1024
	sizeAfter := float64(after.PageCount*after.PageSize) / 1024 / 1024

	j.log.Info().
		Str("database", name).
		Float64("size_before_mb", sizeBefore).
		Float64("size_after_mb", sizeAfter).
		Float64("space_reclaimed_mb", sizeBefore-sizeAfter).
		Msg("VACUUM completed")

	return nil
}
