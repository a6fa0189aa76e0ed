package scripts

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/database"
)

// createMockDB creates a mock database for testing
func createMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create mock database: %v", err)
	}

	cleanup := func() {
		db.Close()
	}

	return db, mock, cleanup
}

func TestNewSeeder(t *testing.T) {
	db, _, cleanup := createMockDB(t)
	defer cleanup()

	pool := &database.Pool{DB: db}
	seeder := NewSeeder(pool)

	assert.NotNil(t, seeder)
	assert.Equal(t, pool, seeder.db)
}

func TestRunSeed(t *testing.T) {
	t.Run("Commits on success", func(t *testing.T) {
		db, mock, cleanup := createMockDB(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectCommit()

		seeder := NewSeeder(&database.Pool{DB: db})
		err := seeder.runSeed(context.Background(), "test_seed", func(ctx context.Context, tx *sql.Tx) error {
			return nil
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rolls back on failure", func(t *testing.T) {
		db, mock, cleanup := createMockDB(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectRollback()

		seeder := NewSeeder(&database.Pool{DB: db})
		err := seeder.runSeed(context.Background(), "test_seed", func(ctx context.Context, tx *sql.Tx) error {
			return errors.New("boom")
		})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "seed test_seed failed")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSeedDatabase(t *testing.T) {
	t.Run("Installs defaults on a fresh database", func(t *testing.T) {
		db, mock, cleanup := createMockDB(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notice_options WHERE option_name = \?`).
			WithArgs("opn_settings").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec(`INSERT INTO notice_options \(option_name, option_value, updated_at\) VALUES \(\?, \?, \?\)`).
			WithArgs("opn_settings", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		seeder := NewSeeder(&database.Pool{DB: db, Driver: "mysql"})
		err := seeder.SeedDatabase(context.Background())

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Existing settings are left alone", func(t *testing.T) {
		db, mock, cleanup := createMockDB(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM notice_options WHERE option_name = \$1`).
			WithArgs("opn_settings").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectCommit()

		seeder := NewSeeder(&database.Pool{DB: db, Driver: "postgres"})
		err := seeder.SeedDatabase(context.Background())

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Count failure rolls back", func(t *testing.T) {
		db, mock, cleanup := createMockDB(t)
		defer cleanup()

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT COUNT`).WillReturnError(errors.New("no table"))
		mock.ExpectRollback()

		seeder := NewSeeder(&database.Pool{DB: db, Driver: "mysql"})
		err := seeder.SeedDatabase(context.Background())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to count settings records")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
