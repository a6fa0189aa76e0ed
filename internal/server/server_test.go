package server

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/config"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/database"
)

// createTestConfig returns a configuration as setDefaults would leave it.
func createTestConfig() *config.AppConfig {
	return &config.AppConfig{
		App: config.AppSettings{
			Environment: "testing",
			Name:        "oldnotice",
			Version:     "test-version",
		},
		Server: config.ServerSettings{
			Host:            "127.0.0.1",
			Port:            8085,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			RateLimitRPS:    100,
			RateLimitBurst:  100,
		},
		JWT: config.JWTSettings{
			Secret: "test-secret",
			Expiry: time.Hour,
			Issuer: "oldnotice-api",
		},
		Logging: config.LoggingSettings{
			Level:  "info",
			Format: "json",
		},
		CORS: config.CORSSettings{
			AllowedOrigins:   []string{"https://news.example.test"},
			AllowCredentials: true,
		},
		Notice: config.NoticeSettings{
			PublicPostTypes: []string{"post", "page"},
			Taxonomies:      []string{"category", "post_tag"},
			DateLayout:      "January 2, 2006",
			Timezone:        "UTC",
		},
	}
}

// newTestServer wires a server around a sqlmock pool.
func newTestServer(t *testing.T, cfg *config.AppConfig) (*Server, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := newServerWithPool(cfg, &database.Pool{DB: db, Driver: "mysql"})
	require.NoError(t, err)

	return s, mock
}

func TestServerCreation(t *testing.T) {
	s, _ := newTestServer(t, createTestConfig())

	assert.NotNil(t, s.Handlers)
	assert.NotNil(t, s.Handlers.NoticeHandler)
	assert.NotNil(t, s.Handlers.SettingsHandler)
	assert.NotNil(t, s.NoticeService)
	assert.NotNil(t, s.authProviders.JWTService)
	assert.NotNil(t, s.limiter)
	assert.NotNil(t, s.GetRouter())
	assert.Equal(t, "127.0.0.1:8085", s.httpServer.Addr)
	assert.Equal(t, 5*time.Second, s.httpServer.ReadTimeout)
}

func TestServerCreation_Failures(t *testing.T) {
	t.Run("Invalid eligibility policy", func(t *testing.T) {
		cfg := createTestConfig()
		cfg.Notice.EligibilityPolicy = "show +"

		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		_, err = newServerWithPool(cfg, &database.Pool{DB: db})
		assert.ErrorContains(t, err, "failed to set up notice engine")
	})

	t.Run("Policy with the wrong type", func(t *testing.T) {
		cfg := createTestConfig()
		cfg.Notice.EligibilityPolicy = "item_id + 1"

		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		_, err = newServerWithPool(cfg, &database.Pool{DB: db})
		assert.ErrorContains(t, err, "must evaluate to a bool")
	})

	t.Run("Invalid timezone", func(t *testing.T) {
		cfg := createTestConfig()
		cfg.Notice.Timezone = "Mars/Olympus_Mons"

		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		_, err = newServerWithPool(cfg, &database.Pool{DB: db})
		assert.ErrorContains(t, err, "invalid notice timezone")
	})

	t.Run("Missing database", func(t *testing.T) {
		_, err := newServerWithPool(createTestConfig(), nil)
		assert.ErrorContains(t, err, "database not initialized")
	})
}

func TestServerCreation_WithPolicy(t *testing.T) {
	cfg := createTestConfig()
	cfg.Notice.EligibilityPolicy = "show && item_id != 42"

	s, _ := newTestServer(t, cfg)
	assert.NotNil(t, s.engine)
}

func TestRetryAfter(t *testing.T) {
	cfg := createTestConfig()
	s := &Server{Config: cfg}

	cfg.Server.RateLimitRPS = 0.5
	assert.Equal(t, 2*time.Second, s.retryAfter())

	cfg.Server.RateLimitRPS = 0
	assert.Equal(t, time.Second, s.retryAfter())
}

func TestShutdown(t *testing.T) {
	s, mock := newTestServer(t, createTestConfig())
	mock.ExpectClose()

	s.SetupMaintenanceTasks()
	require.NotNil(t, s.stopTasks)

	// Calling it twice replaces the running tasks
	s.SetupMaintenanceTasks()

	err := s.Shutdown(context.Background())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetupDatabaseFailure(t *testing.T) {
	cfg := createTestConfig()
	cfg.Database = config.DatabaseSettings{
		Driver:   "postgres",
		Host:     "127.0.0.1",
		Port:     1,
		Name:     "oldnotice",
		User:     "nobody",
		Password: "nothing",
		SSLMode:  "disable",
	}

	_, err := NewServer(cfg)
	assert.ErrorContains(t, err, "failed to set up database")
}
