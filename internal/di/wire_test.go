package di

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/exportadvisor/internal/clients/blobstore"
	"github.com/aristath/exportadvisor/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		DataDir:             t.TempDir(),
		Port:                8080,
		Timezone:            "UTC",
		SnapshotSchedule:    "0 0 */6 * * *",
		WALCheckSchedule:    "0 */30 * * * *",
		MaintenanceSchedule: "0 0 3 * * SUN",
	}
}

func TestInitializeDatabases(t *testing.T) {
	cfg := testConfig(t)

	container, err := InitializeDatabases(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer container.Close()

	assert.NotNil(t, container.MarketDB)
	assert.NotNil(t, container.DocumentsDB)
	assert.FileExists(t, filepath.Join(cfg.DataDir, "market.db"))
	assert.FileExists(t, filepath.Join(cfg.DataDir, "documents.db"))
	assert.FileExists(t, filepath.Join(cfg.DataDir, "farmers.db"))
	assert.Len(t, container.Databases(), 3)

	var count int
	err = container.MarketDB.Conn().QueryRow("SELECT COUNT(*) FROM pricing_snapshots").Scan(&count)
	assert.NoError(t, err, "market schema should be applied")
	err = container.DocumentsDB.Conn().QueryRow("SELECT COUNT(*) FROM export_documents").Scan(&count)
	assert.NoError(t, err, "documents schema should be applied")
	err = container.FarmersDB.Conn().QueryRow("SELECT COUNT(*) FROM export_orders").Scan(&count)
	assert.NoError(t, err, "farmers schema should be applied")
}

func TestInitializeRepositories_RequiresDatabases(t *testing.T) {
	err := InitializeRepositories(&Container{}, zerolog.Nop())
	assert.Error(t, err)
}

func TestWire(t *testing.T) {
	cfg := testConfig(t)

	container, jobs, err := Wire(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer container.Close()

	assert.NotNil(t, container.MarketRepo)
	assert.NotNil(t, container.DocumentRepo)
	assert.NotNil(t, container.SnapshotRepo)
	assert.NotNil(t, container.Engine)
	assert.NotNil(t, container.DocumentationService)
	assert.NotNil(t, container.SnapshotService)
	assert.NotNil(t, container.FarmerRepo)
	assert.NotNil(t, container.FarmerService)
	assert.NotNil(t, container.Scheduler)
	assert.Nil(t, container.BlobClient)
	assert.Nil(t, container.BlobWriter)

	all := jobs.All()
	assert.Contains(t, all, "pricing_snapshots")
	assert.Contains(t, all, "check_wal_checkpoints")
	assert.Contains(t, all, "database_maintenance")
	assert.Len(t, container.Scheduler.Status(), 3)

	_, err = container.MarketRepo.SeedSampleData(context.Background())
	require.NoError(t, err)
	require.NoError(t, container.Scheduler.RunNow(jobs.PricingSnapshots))
	require.NoError(t, container.Scheduler.RunNow(jobs.WALCheckpoints))

	stored, err := container.SnapshotService.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, stored, 16)
}

func TestWire_WithObjectStorage(t *testing.T) {
	cfg := testConfig(t)
	cfg.Blobstore = blobstore.Config{
		Endpoint:       "minio:9000",
		Region:         "us-east-1",
		Bucket:         "exports",
		AccessKey:      "key",
		SecretKey:      "secret",
		ForcePathStyle: true,
	}

	container, _, err := Wire(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer container.Close()

	require.NotNil(t, container.BlobClient)
	assert.Equal(t, "exports", container.BlobClient.Bucket())
	assert.NotNil(t, container.BlobWriter)
}

func TestWire_InvalidSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.SnapshotSchedule = "whenever"

	_, _, err := Wire(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestWire_InvalidTimezone(t *testing.T) {
	cfg := testConfig(t)
	cfg.Timezone = "Nowhere/Special"

	_, _, err := Wire(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestJobInstances_AllNil(t *testing.T) {
	var jobs *JobInstances
	assert.Empty(t, jobs.All())
}
