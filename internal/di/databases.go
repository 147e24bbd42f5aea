// Package di provides dependency injection wiring and initialization.
package di

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/exportadvisor/internal/config"
	"github.com/aristath/exportadvisor/internal/database"
)

// InitializeDatabases opens the three databases and applies their schemas
func InitializeDatabases(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	// 1. market.db - market insights, country imports and pricing snapshots
	marketDB, err := openDatabase(cfg, "market", database.ProfileStandard)
	if err != nil {
		return nil, err
	}
	container.MarketDB = marketDB

	// 2. documents.db - generated export documentation
	documentsDB, err := openDatabase(cfg, "documents", database.ProfileLedger) // append-only records
	if err != nil {
		marketDB.Close()
		return nil, err
	}
	container.DocumentsDB = documentsDB

	// 3. farmers.db - farmer profiles, export orders and monthly earnings
	farmersDB, err := openDatabase(cfg, "farmers", database.ProfileStandard)
	if err != nil {
		marketDB.Close()
		documentsDB.Close()
		return nil, err
	}
	container.FarmersDB = farmersDB

	log.Info().
		Str("data_dir", cfg.DataDir).
		Msg("Databases initialized")

	return container, nil
}

func openDatabase(cfg *config.Config, name string, profile database.DatabaseProfile) (*database.DB, error) {
	db, err := database.New(database.Config{
		Path:    cfg.DatabasePath(name),
		Profile: profile,
		Name:    name,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s database: %w", name, err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate %s database: %w", name, err)
	}

	return db, nil
}
