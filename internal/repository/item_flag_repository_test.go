package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/database"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/models"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/repository"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/utils"
)

func setupItemFlagRepositoryTest(t *testing.T, driver string) (repository.ItemFlagRepository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := repository.NewItemFlagRepository(&database.Pool{DB: db, Driver: driver})

	return repo, mock, func() {
		db.Close()
	}
}

func TestItemFlagRepository_Get(t *testing.T) {
	repo, mock, cleanup := setupItemFlagRepositoryTest(t, "")
	defer cleanup()

	created := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"item_id", "flag_name", "flag_value", "created_at"}).
		AddRow(42, "_opn_disable", "1", created)

	mock.ExpectQuery(`SELECT item_id, flag_name, flag_value, created_at\s+FROM notice_item_flags\s+WHERE item_id = \? AND flag_name = \?`).
		WithArgs(int64(42), "_opn_disable").
		WillReturnRows(rows)

	flag, err := repo.Get(context.Background(), 42, "_opn_disable")

	require.NoError(t, err)
	assert.Equal(t, &models.ItemFlag{ItemID: 42, Name: "_opn_disable", Value: "1", CreatedAt: created}, flag)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemFlagRepository_Get_NotFound(t *testing.T) {
	repo, mock, cleanup := setupItemFlagRepositoryTest(t, "")
	defer cleanup()

	mock.ExpectQuery("SELECT item_id").
		WithArgs(int64(7), "_opn_disable").
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "flag_name", "flag_value", "created_at"}))

	flag, err := repo.Get(context.Background(), 7, "_opn_disable")

	assert.Nil(t, flag)
	assert.True(t, utils.IsNotFoundError(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemFlagRepository_Get_DatabaseError(t *testing.T) {
	repo, mock, cleanup := setupItemFlagRepositoryTest(t, "")
	defer cleanup()

	mock.ExpectQuery("SELECT item_id").
		WithArgs(int64(7), "_opn_disable").
		WillReturnError(errors.New("timeout"))

	flag, err := repo.Get(context.Background(), 7, "_opn_disable")

	assert.Nil(t, flag)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get flag _opn_disable for item 7")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemFlagRepository_Set(t *testing.T) {
	tests := []struct {
		name      string
		driver    string
		wantQuery string
	}{
		{
			name:      "MySQL upsert",
			wantQuery: `INSERT INTO notice_item_flags \(item_id, flag_name, flag_value, created_at\)\s+VALUES \(\?, \?, \?, \?\) ON DUPLICATE KEY UPDATE flag_value = VALUES\(flag_value\)`,
		},
		{
			name:      "PostgreSQL upsert",
			driver:    "postgres",
			wantQuery: `VALUES \(\$1, \$2, \$3, \$4\) ON CONFLICT \(item_id, flag_name\) DO UPDATE SET flag_value = EXCLUDED.flag_value`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupItemFlagRepositoryTest(t, tt.driver)
			defer cleanup()

			flag := &models.ItemFlag{ItemID: 42, Name: "_opn_disable", Value: "1"}

			mock.ExpectExec(tt.wantQuery).
				WithArgs(int64(42), "_opn_disable", "1", sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, 1))

			err := repo.Set(context.Background(), flag)

			require.NoError(t, err)
			assert.False(t, flag.CreatedAt.IsZero())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestItemFlagRepository_Set_Error(t *testing.T) {
	repo, mock, cleanup := setupItemFlagRepositoryTest(t, "")
	defer cleanup()

	mock.ExpectExec("INSERT INTO notice_item_flags").
		WillReturnError(errors.New("read only"))

	err := repo.Set(context.Background(), &models.ItemFlag{ItemID: 1, Name: "_opn_disable", Value: "1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set flag _opn_disable for item 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemFlagRepository_Delete(t *testing.T) {
	repo, mock, cleanup := setupItemFlagRepositoryTest(t, "postgres")
	defer cleanup()

	mock.ExpectExec(`DELETE FROM notice_item_flags WHERE item_id = \$1 AND flag_name = \$2`).
		WithArgs(int64(42), "_opn_disable").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 42, "_opn_disable")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemFlagRepository_Delete_Error(t *testing.T) {
	repo, mock, cleanup := setupItemFlagRepositoryTest(t, "")
	defer cleanup()

	mock.ExpectExec("DELETE FROM notice_item_flags").
		WithArgs(int64(42), "_opn_disable").
		WillReturnError(errors.New("deadlock"))

	err := repo.Delete(context.Background(), 42, "_opn_disable")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to delete flag _opn_disable for item 42")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemFlagRepository_DeleteAllByName(t *testing.T) {
	repo, mock, cleanup := setupItemFlagRepositoryTest(t, "")
	defer cleanup()

	mock.ExpectExec(`DELETE FROM notice_item_flags WHERE flag_name = \?`).
		WithArgs("_opn_disable").
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := repo.DeleteAllByName(context.Background(), "_opn_disable")

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestItemFlagRepository_DeleteAllByName_Error(t *testing.T) {
	repo, mock, cleanup := setupItemFlagRepositoryTest(t, "")
	defer cleanup()

	mock.ExpectExec("DELETE FROM notice_item_flags").
		WithArgs("_opn_disable").
		WillReturnError(errors.New("gone"))

	count, err := repo.DeleteAllByName(context.Background(), "_opn_disable")

	assert.Equal(t, int64(0), count)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
