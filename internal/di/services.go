package di

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/exportadvisor/internal/clients/blobstore"
	"github.com/aristath/exportadvisor/internal/config"
	"github.com/aristath/exportadvisor/internal/domain"
	"github.com/aristath/exportadvisor/internal/modules/advisory"
	documentation "github.com/aristath/exportadvisor/internal/modules/documentation"
	"github.com/aristath/exportadvisor/internal/modules/farmers"
	"github.com/aristath/exportadvisor/internal/modules/marketdata"
	"github.com/aristath/exportadvisor/internal/modules/snapshots"
)

// InitializeRepositories creates all repositories
func InitializeRepositories(container *Container, log zerolog.Logger) error {
	if container == nil || container.MarketDB == nil || container.DocumentsDB == nil || container.FarmersDB == nil {
		return fmt.Errorf("databases must be initialized before repositories")
	}

	container.MarketRepo = marketdata.NewRepository(container.MarketDB.Conn(), log)
	container.SnapshotRepo = snapshots.NewRepository(container.MarketDB.Conn(), log)
	container.DocumentRepo = documentation.NewRepository(container.DocumentsDB.Conn(), log)
	container.FarmerRepo = farmers.NewRepository(container.FarmersDB.Conn(), log)

	log.Info().Msg("Repositories initialized")
	return nil
}

// InitializeServices creates the advisory engine, the object store client and the services
func InitializeServices(ctx context.Context, container *Container, cfg *config.Config, log zerolog.Logger) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	clock := domain.SystemClock(loc)

	container.Engine = advisory.NewEngine(container.MarketRepo, clock, log)

	// Interfaces stay untyped nil when object storage is disabled
	var archiver documentation.Archiver
	var uploader snapshots.Uploader
	if cfg.Blobstore.Enabled() {
		client, err := blobstore.New(ctx, cfg.Blobstore, log)
		if err != nil {
			return fmt.Errorf("failed to create object store client: %w", err)
		}
		container.BlobClient = client
		container.BlobWriter = blobstore.NewWriter(client)
		archiver = container.BlobWriter
		uploader = container.BlobWriter
		log.Info().Str("bucket", client.Bucket()).Msg("Object storage archive enabled")
	}

	container.DocumentationService = documentation.NewService(container.DocumentRepo, archiver, clock, log)
	container.SnapshotService = snapshots.NewService(container.SnapshotRepo, container.MarketRepo, container.Engine, uploader, clock, log)
	container.FarmerService = farmers.NewService(container.FarmerRepo, container.MarketRepo, log)

	log.Info().Msg("Services initialized")
	return nil
}
