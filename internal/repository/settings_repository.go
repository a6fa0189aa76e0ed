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

// SettingsRepository stores named settings records as JSON documents
type SettingsRepository interface {
	Get(ctx context.Context, name string) (*models.StoredOption, error)
	Save(ctx context.Context, option *models.StoredOption) error
	Delete(ctx context.Context, name string) error
}

// SQLSettingsRepository is the MySQL/PostgreSQL implementation of SettingsRepository
type SQLSettingsRepository struct {
	db *database.Pool
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *database.Pool) SettingsRepository {
	return &SQLSettingsRepository{
		db: db,
	}
}

// Get retrieves a settings record by name
func (r *SQLSettingsRepository) Get(ctx context.Context, name string) (*models.StoredOption, error) {
	startTime := time.Now()

	query := r.db.Rebind(fmt.Sprintf(`
        SELECT %s, %s, %s
        FROM %s
        WHERE %s = ?`,
		constants.ColumnOptionName, constants.ColumnOptionValue, constants.ColumnUpdatedAt,
		constants.TableOptions, constants.ColumnOptionName))

	option := &models.StoredOption{}
	var value string
	err := r.db.QueryRowContext(ctx, query, name).Scan(&option.Name, &value, &option.UpdatedAt)

	utils.LogDBQuery(query, []any{name}, time.Since(startTime), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.NewNotFoundError("Option", name)
		}
		return nil, fmt.Errorf("failed to get option %s: %w", name, err)
	}

	option.Value = []byte(value)
	return option, nil
}

// Save inserts or replaces a settings record
func (r *SQLSettingsRepository) Save(ctx context.Context, option *models.StoredOption) error {
	startTime := time.Now()

	option.UpdatedAt = time.Now().UTC()

	query := r.db.Rebind(fmt.Sprintf(`
        INSERT INTO %s (%s, %s, %s)
        VALUES (?, ?, ?)`,
		constants.TableOptions,
		constants.ColumnOptionName, constants.ColumnOptionValue, constants.ColumnUpdatedAt) +
		r.db.UpsertClause(
			[]string{constants.ColumnOptionName},
			[]string{constants.ColumnOptionValue, constants.ColumnUpdatedAt},
		))

	args := []any{option.Name, string(option.Value), option.UpdatedAt}
	_, err := r.db.ExecContext(ctx, query, args...)

	utils.LogDBQuery(query, []any{option.Name, len(option.Value), option.UpdatedAt}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to save option %s: %w", option.Name, err)
	}

	log.Info().
		Str("option", option.Name).
		Int("bytes", len(option.Value)).
		Msg("Option saved")

	return nil
}

// Delete removes a settings record. Deleting a missing record is not an error.
func (r *SQLSettingsRepository) Delete(ctx context.Context, name string) error {
	startTime := time.Now()

	query := r.db.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, constants.TableOptions, constants.ColumnOptionName))

	result, err := r.db.ExecContext(ctx, query, name)

	utils.LogDBQuery(query, []any{name}, time.Since(startTime), err)

	if err != nil {
		return fmt.Errorf("failed to delete option %s: %w", name, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Info().
		Str("option", name).
		Int64("rows_affected", rowsAffected).
		Msg("Option deleted")

	return nil
}
