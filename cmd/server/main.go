// Package main is the entry point for the export advisor service.
// It serves market data, pricing and risk advice, shipping estimates and
// export documentation to the farmer export app over HTTP, and takes
// periodic pricing snapshots in the background.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aristath/exportadvisor/internal/config"
	"github.com/aristath/exportadvisor/internal/di"
	"github.com/aristath/exportadvisor/internal/server"
	"github.com/aristath/exportadvisor/pkg/logger"
)

// main orchestrates startup:
// 1. Loads configuration from environment variables (.env supported)
// 2. Initializes logging
// 3. Wires databases, repositories, services and jobs
// 4. Seeds the sample market data into an empty store (if enabled)
// 5. Starts the scheduler and the HTTP server
// 6. Waits for a shutdown signal and shuts down gracefully
//
// Three databases live under DATA_DIR:
// - market.db: market insights, country import profiles, pricing snapshots
// - documents.db: generated export documentation (append-only)
// - farmers.db: farmer profiles, export orders, monthly earnings
func main() {
	cfg, err := config.Load()
	if err != nil {
		// Fallback logger so the configuration error is still reported
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting export advisor")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	container, jobs, err := di.Wire(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer func() {
		if err := container.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close databases")
		}
	}()

	if cfg.SeedSampleData {
		if _, err := container.MarketRepo.SeedSampleData(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to seed sample market data")
		}
	}

	container.Scheduler.Start()

	srv := server.New(server.Config{
		Log:       log,
		Port:      cfg.Port,
		DevMode:   cfg.DevMode,
		DataDir:   cfg.DataDir,
		Container: container,
		Jobs:      jobs,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	cancel()

	// Stop scheduling new runs; in-flight jobs finish first
	container.Scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
