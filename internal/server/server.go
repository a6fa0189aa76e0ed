// Package server provides the HTTP server for the OldNotice API.
// It handles routing, middleware configuration, and server lifecycle management.
//
// Initialization follows a fixed order with explicit dependency injection:
// database, auth providers, repositories, the notice engine, services,
// handlers and finally routes. Start blocks until a shutdown signal arrives
// and then drains in-flight requests before closing the database.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/auth"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/config"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/database"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/handlers"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/notice"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/repository"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/service"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/utils/ratelimit"
	"github.com/yasinhessnawi1/OldNotice_Backend/migrations"
	"github.com/yasinhessnawi1/OldNotice_Backend/scripts"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	// NoticeHandler serves the public render and stylesheet endpoints
	NoticeHandler *handlers.NoticeHandler

	// SettingsHandler serves the admin settings, preview and item endpoints
	SettingsHandler *handlers.SettingsHandler
}

// AuthProviders contains all authentication providers for the application.
type AuthProviders struct {
	// JWTService handles admin token generation and validation
	JWTService *auth.JWTService
}

// repositories holds the data access layer of one server.
type repositories struct {
	settingsRepo repository.SettingsRepository
	flagRepo     repository.ItemFlagRepository
}

// Server represents the API server for the OldNotice application.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Db provides database access
	Db *database.Pool

	// router handles HTTP routing
	router chi.Router

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	// NoticeService is exposed for the command line maintenance flags
	NoticeService *service.NoticeService

	// authProviders contains authentication services
	authProviders *AuthProviders

	repos   repositories
	engine  *notice.Engine
	limiter *ratelimit.Store

	// stopTasks cancels the background maintenance goroutines
	stopTasks context.CancelFunc

	// httpServer is the underlying HTTP server
	httpServer *http.Server
}

// NewServer creates a new server instance with all required components.
// It connects to the database, runs migrations and seeds the default settings
// before wiring the rest of the application.
//
// Parameters:
//   - cfg: Application configuration including database, server, and auth settings
//
// Returns:
//   - A fully initialized Server instance ready to start
//   - An error if initialization of any component fails
func NewServer(cfg *config.AppConfig) (*Server, error) {
	s := &Server{
		Config: cfg,
	}

	if err := s.setupDatabase(); err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := s.setupComponents(); err != nil {
		s.Db.Close()
		return nil, err
	}

	return s, nil
}

// newServerWithPool wires a server around an already prepared pool.
func newServerWithPool(cfg *config.AppConfig, db *database.Pool) (*Server, error) {
	s := &Server{
		Config: cfg,
		Db:     db,
	}

	if err := s.setupComponents(); err != nil {
		return nil, err
	}

	return s, nil
}

// setupComponents initializes everything that sits on top of the database.
func (s *Server) setupComponents() error {
	if err := s.setupAuthProviders(); err != nil {
		return fmt.Errorf("failed to set up auth providers: %w", err)
	}

	if err := s.setupRepositories(); err != nil {
		return fmt.Errorf("failed to set up repositories: %w", err)
	}

	if err := s.setupEngine(); err != nil {
		return fmt.Errorf("failed to set up notice engine: %w", err)
	}

	if err := s.setupServices(); err != nil {
		return fmt.Errorf("failed to set up services: %w", err)
	}

	if err := s.setupHandlers(); err != nil {
		return fmt.Errorf("failed to set up handlers: %w", err)
	}

	s.limiter = ratelimit.NewStore(ratelimit.Rate{
		RequestsPerSecond: s.Config.Server.RateLimitRPS,
		Burst:             s.Config.Server.RateLimitBurst,
	}, constants.RateLimiterIdleTTL)

	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         s.Config.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  s.Config.Server.ReadTimeout,
		WriteTimeout: s.Config.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return nil
}

// setupDatabase connects to the database, runs migrations and installs the
// default settings record when none exists.
func (s *Server) setupDatabase() error {
	db, err := database.Connect(s.Config)
	if err != nil {
		return err
	}

	s.Db = db

	migrator := migrations.NewMigrator(db)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	seeder := scripts.NewSeeder(db)
	if err := seeder.SeedDatabase(context.Background()); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	return nil
}

// setupAuthProviders initializes authentication providers.
func (s *Server) setupAuthProviders() error {
	s.authProviders = &AuthProviders{
		JWTService: auth.NewJWTService(&s.Config.JWT),
	}

	return nil
}

// setupRepositories initializes all data repositories.
func (s *Server) setupRepositories() error {
	if s.Db == nil {
		return fmt.Errorf("database not initialized")
	}

	s.repos.settingsRepo = repository.NewSettingsRepository(s.Db)
	s.repos.flagRepo = repository.NewItemFlagRepository(s.Db)

	return nil
}

// setupEngine builds the notice engine from the notice section of the
// configuration, compiling the eligibility policy if one is set.
func (s *Server) setupEngine() error {
	policy, err := notice.CompilePolicy(s.Config.Notice.EligibilityPolicy)
	if err != nil {
		return err
	}

	loc, err := s.Config.Notice.Location()
	if err != nil {
		return fmt.Errorf("invalid notice timezone: %w", err)
	}

	s.engine = notice.NewEngine(notice.Options{
		EligibilityOverride: policy,
		DateLayout:          s.Config.Notice.DateLayout,
		Location:            loc,
	})

	if policy != nil {
		log.Info().Str("policy", s.Config.Notice.EligibilityPolicy).Msg("Eligibility policy enabled")
	}

	return nil
}

// setupServices initializes all business services.
func (s *Server) setupServices() error {
	if s.engine == nil {
		return fmt.Errorf("notice engine not initialized")
	}

	validity := notice.NewStaticValidity(s.Config.Notice.PublicPostTypes, s.Config.Notice.Taxonomies)

	s.NoticeService = service.NewNoticeService(
		s.repos.settingsRepo,
		s.repos.flagRepo,
		s.engine,
		validity,
	)

	return nil
}

// setupHandlers initializes all HTTP request handlers.
func (s *Server) setupHandlers() error {
	if s.NoticeService == nil {
		return fmt.Errorf("notice service not initialized")
	}

	s.Handlers = &Handlers{
		NoticeHandler:   handlers.NewNoticeHandler(s.NoticeService),
		SettingsHandler: handlers.NewSettingsHandler(s.NoticeService),
	}

	return nil
}

// Start starts the HTTP server and sets up signal handling for graceful shutdown.
// It runs in a blocking mode, waiting for either server errors or shutdown signals.
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	s.SetupMaintenanceTasks()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests
// before stopping maintenance tasks and closing the database.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info().Msg("Server stopped gracefully")

	if s.stopTasks != nil {
		s.stopTasks()
	}

	s.Db.Close()
	log.Info().Msg("Database connection closed")

	return nil
}

// SetupMaintenanceTasks starts the background housekeeping goroutines.
// Calling it again replaces the running tasks.
func (s *Server) SetupMaintenanceTasks() {
	if s.stopTasks != nil {
		s.stopTasks()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.stopTasks = cancel

	// Drop limiters of clients that have gone quiet
	go s.limiter.Run(ctx, constants.RateLimiterCleanupInterval)
}
