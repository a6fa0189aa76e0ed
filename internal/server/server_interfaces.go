package server

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/database"
)

// Runner is the lifecycle surface the command line entry point depends on.
type Runner interface {
	// GetRouter returns the configured router for request handling
	GetRouter() chi.Router

	// Start begins listening for HTTP requests and blocks until shutdown
	Start() error

	// Shutdown gracefully stops the server
	Shutdown(ctx context.Context) error

	// SetupMaintenanceTasks starts background housekeeping
	SetupMaintenanceTasks()
}

// DBHealthChecker is the part of the database pool the health route needs.
type DBHealthChecker interface {
	// HealthCheck verifies the database connection is working properly
	HealthCheck(ctx context.Context) error

	// Close terminates the database connection
	Close()
}

var (
	_ Runner          = (*Server)(nil)
	_ DBHealthChecker = (*database.Pool)(nil)
)
