// Package scripts provides utility scripts for database and system management.
//
// This package implements the activation seeding that installs the default
// notice settings on a fresh database. Every seed checks for existing data
// first, so seeding is idempotent and safe to run on every start.
package scripts

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/database"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/models"
)

// Seeder handles database seeding.
type Seeder struct {
	db *database.Pool
}

// NewSeeder creates a new seeder.
//
// Parameters:
//   - db: A database connection pool to use for seeding
//
// Returns:
//   - *Seeder: A configured seeder
func NewSeeder(db *database.Pool) *Seeder {
	return &Seeder{
		db: db,
	}
}

// SeedDatabase runs every seed in its own transaction.
//
// Parameters:
//   - ctx: Context for database operations and cancellation
//
// Returns:
//   - error: Any error encountered during seeding, nil if successful
func (s *Seeder) SeedDatabase(ctx context.Context) error {
	log.Info().Msg("Seeding database")
	startTime := time.Now()

	seeds := []struct {
		Name     string
		SeedFunc func(ctx context.Context, tx *sql.Tx) error
	}{
		{"default_notice_settings", s.seedDefaultSettings},
	}

	for _, seed := range seeds {
		log.Debug().Str("seed", seed.Name).Msg("Running seed")
		if err := s.runSeed(ctx, seed.Name, seed.SeedFunc); err != nil {
			return err
		}
	}

	log.Info().
		Dur("duration", time.Since(startTime)).
		Msg("Database seeding completed")

	return nil
}

// runSeed runs a seed function within a transaction.
// If the seed operation fails, the transaction is rolled back.
func (s *Seeder) runSeed(ctx context.Context, name string, seedFunc func(ctx context.Context, tx *sql.Tx) error) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		if err := seedFunc(ctx, tx); err != nil {
			return fmt.Errorf("seed %s failed: %w", name, err)
		}
		return nil
	})
}

// seedDefaultSettings stores the default settings record unless one exists.
// An existing record is never touched, even if it is incomplete.
func (s *Seeder) seedDefaultSettings(ctx context.Context, tx *sql.Tx) error {
	var count int
	countQuery := s.db.Rebind(`SELECT COUNT(*) FROM notice_options WHERE option_name = ?`)
	if err := tx.QueryRowContext(ctx, countQuery, constants.SettingsOptionName).Scan(&count); err != nil {
		return fmt.Errorf("failed to count settings records: %w", err)
	}

	if count > 0 {
		log.Debug().Str("option", constants.SettingsOptionName).Msg("Settings already present, skipping defaults")
		return nil
	}

	value, err := json.Marshal(models.DefaultSettings().ToMap())
	if err != nil {
		return fmt.Errorf("failed to encode default settings: %w", err)
	}

	insertQuery := s.db.Rebind(`INSERT INTO notice_options (option_name, option_value, updated_at) VALUES (?, ?, ?)`)
	if _, err := tx.ExecContext(ctx, insertQuery, constants.SettingsOptionName, string(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to insert default settings: %w", err)
	}

	log.Info().Str("option", constants.SettingsOptionName).Msg("Default settings installed")

	return nil
}
