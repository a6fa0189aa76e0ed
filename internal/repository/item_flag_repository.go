package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/database"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/models"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/utils"
)

// ItemFlagRepository stores named flags attached to content items
type ItemFlagRepository interface {
	Get(ctx context.Context, itemID int64, name string) (*models.ItemFlag, error)
	Set(ctx context.Context, flag *models.ItemFlag) error
	Delete(ctx context.Context, itemID int64, name string) error
	DeleteAllByName(ctx context.Context, name string) (int64, error)
}

// SQLItemFlagRepository is the MySQL/PostgreSQL implementation of ItemFlagRepository
type SQLItemFlagRepository struct {
	db *database.Pool
}

// NewItemFlagRepository creates a new ItemFlagRepository
func NewItemFlagRepository(db *database.Pool) ItemFlagRepository {
	return &SQLItemFlagRepository{
		db: db,
	}
}

// Get retrieves one flag of an item
func (r *SQLItemFlagRepository) Get(ctx context.Context, itemID int64, name string) (*models.ItemFlag, error) {
	startTime := time.Now()

	query := r.db.Rebind(fmt.Sprintf(`
        SELECT %s, %s, %s, %s
        FROM %s
        WHERE %s = ? AND %s = ?`,
		constants.ColumnItemID, constants.ColumnFlagName, constants.ColumnFlagValue, constants.ColumnCreatedAt,
		constants.TableItemFlags,
		constants.ColumnItemID, constants.ColumnFlagName))

	flag := &models.ItemFlag{}
	err := r.db.QueryRowContext(ctx, query, itemID, name).Scan(
		&flag.ItemID,
		&flag.Name,
		&flag.Value,
		&flag.CreatedAt,
	)

	utils.LogDBQuery(query, []any{itemID, name}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("ItemFlag", fmt.Sprintf("%d/%s", itemID, name))
		}
		return nil, fmt.Errorf("failed to get flag %s for item %d: %w", name, itemID, err)
	}

	return flag, nil
}

// Set creates the flag or overwrites its value
func (r *SQLItemFlagRepository) Set(ctx context.Context, flag *models.ItemFlag) error {
	startTime := time.Now()

	if flag.CreatedAt.IsZero() {
		flag.CreatedAt = time.Now().UTC()
	}

	query := r.db.Rebind(fmt.Sprintf(`
        INSERT INTO %s (%s, %s, %s, %s)
        VALUES (?, ?, ?, ?)`,
		constants.TableItemFlags,
		constants.ColumnItemID, constants.ColumnFlagName, constants.ColumnFlagValue, constants.ColumnCreatedAt) +
		r.db.UpsertClause(
			[]string{constants.ColumnItemID, constants.ColumnFlagName},
			[]string{constants.ColumnFlagValue},
		))

	args := []any{flag.ItemID, flag.Name, flag.Value, flag.CreatedAt}
	_, err := r.db.ExecContext(ctx, query, args...)

	utils.LogDBQuery(query, args, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to set flag %s for item %d: %w", flag.Name, flag.ItemID, err)
	}

	log.Info().
		Int64("item_id", flag.ItemID).
		Str("flag", flag.Name).
		Msg("Item flag set")

	return nil
}

// Delete removes one flag of an item. Deleting a missing flag is not an error.
func (r *SQLItemFlagRepository) Delete(ctx context.Context, itemID int64, name string) error {
	startTime := time.Now()

	query := r.db.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE %s = ? AND %s = ?`,
		constants.TableItemFlags, constants.ColumnItemID, constants.ColumnFlagName))

	_, err := r.db.ExecContext(ctx, query, itemID, name)

	utils.LogDBQuery(query, []any{itemID, name}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to delete flag %s for item %d: %w", name, itemID, err)
	}

	log.Info().
		Int64("item_id", itemID).
		Str("flag", name).
		Msg("Item flag deleted")

	return nil
}

// DeleteAllByName removes a flag from every item and returns how many rows went away
func (r *SQLItemFlagRepository) DeleteAllByName(ctx context.Context, name string) (int64, error) {
	startTime := time.Now()

	query := r.db.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, constants.TableItemFlags, constants.ColumnFlagName))

	result, err := r.db.ExecContext(ctx, query, name)

	utils.LogDBQuery(query, []any{name}, time.Since(startTime), err)

	if err != nil {
		return 0, fmt.Errorf("failed to delete flag %s: %w", name, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Info().
		Str("flag", name).
		Int64("rows_affected", rowsAffected).
		Msg("Item flags deleted")

	return rowsAffected, nil
}
