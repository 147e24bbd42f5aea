// Package server provides the HTTP server and routing for the export advisor.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/exportadvisor/internal/di"
	advisoryhandlers "github.com/aristath/exportadvisor/internal/modules/advisory/handlers"
	documentationhandlers "github.com/aristath/exportadvisor/internal/modules/documentation/handlers"
	farmerhandlers "github.com/aristath/exportadvisor/internal/modules/farmers/handlers"
	marketdatahandlers "github.com/aristath/exportadvisor/internal/modules/marketdata/handlers"
	snapshothandlers "github.com/aristath/exportadvisor/internal/modules/snapshots/handlers"
	"github.com/aristath/exportadvisor/pkg/logger"
)

// Config holds server configuration
type Config struct {
	Log       zerolog.Logger
	Port      int
	DevMode   bool
	DataDir   string
	Container *di.Container     // DI container with all services
	Jobs      *di.JobInstances // jobs exposed for manual triggering
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	port           int
	container      *di.Container
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	container := cfg.Container

	var blob BlobHealth
	if container.BlobClient != nil {
		blob = container.BlobClient
	}

	s := &Server{
		router:    chi.NewRouter(),
		log:       logger.Component(cfg.Log, "server"),
		port:      cfg.Port,
		container: container,
		systemHandlers: NewSystemHandlers(
			cfg.Log,
			cfg.DataDir,
			container.Databases(),
			container.MarketRepo,
			blob,
			container.Scheduler,
			cfg.Jobs.All(),
		),
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		systemHandlers := s.systemHandlers

		r.Route("/system", func(r chi.Router) {
			r.Get("/status", systemHandlers.HandleSystemStatus)
			r.Get("/database/stats", systemHandlers.HandleDatabaseStats)
			r.Get("/disk", systemHandlers.HandleDiskUsage)
			r.Get("/jobs", systemHandlers.HandleJobsStatus)
			r.Post("/jobs/{name}", systemHandlers.HandleTriggerJob)
		})

		// Market data store
		marketHandler := marketdatahandlers.NewHandler(s.container.MarketRepo, s.log)
		marketHandler.RegisterRoutes(r)

		// Pricing and risk advisory
		advisoryHandler := advisoryhandlers.NewHandler(s.container.Engine, s.log)
		advisoryHandler.RegisterRoutes(r)

		// Export documentation
		documentationHandler := documentationhandlers.NewHandler(s.container.DocumentationService, s.log)
		documentationHandler.RegisterRoutes(r)

		// Pricing snapshots
		snapshotHandler := snapshothandlers.NewHandler(s.container.SnapshotService, s.log)
		snapshotHandler.RegisterRoutes(r)

		// Farmer orders, earnings and dashboard
		farmerHandler := farmerhandlers.NewHandler(s.container.FarmerService, s.log)
		farmerHandler.RegisterRoutes(r)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":  "healthy",
		"version": "1.0.0",
		"service": "exportadvisor",
	}

	s.writeJSON(w, http.StatusOK, response)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	body, err := json.Marshal(data)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
