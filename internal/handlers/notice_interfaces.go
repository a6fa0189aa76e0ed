// Package handlers provides HTTP request handlers for the OldNotice API.
package handlers

import (
	"context"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/models"
)

// NoticeServiceInterface defines methods required from the notice service.
// The public notice handlers and the admin handlers both depend on it, so
// they can be tested without a database.
type NoticeServiceInterface interface {
	// RenderNotice evaluates an item and renders its notice when eligible.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - req: The item snapshot, optional term catalog, body content and time
	//
	// Returns:
	//   - The decision and, when shown, the rendered notice
	//   - An error if the settings or the item flag cannot be loaded
	RenderNotice(ctx context.Context, req *models.RenderRequest) (*models.RenderResponse, error)

	// Stylesheet returns the CSS rule block for the stored settings.
	Stylesheet(ctx context.Context) (string, error)

	// GetSettings returns the resolved settings.
	GetSettings(ctx context.Context) (models.Settings, error)

	// UpdateSettings merges, sanitizes, resolves and persists a partial settings mapping.
	//
	// Parameters:
	//   - ctx: Context for the operation
	//   - subject: The admin identity making the change
	//   - partial: The submitted settings keys
	//
	// Returns:
	//   - The resolved settings as persisted
	//   - An error if loading or saving fails
	UpdateSettings(ctx context.Context, subject string, partial map[string]any) (models.Settings, error)

	// ResetSettings drops the persisted record and returns the defaults.
	ResetSettings(ctx context.Context, subject string) (models.Settings, error)

	// Preview renders the sample notice, optionally with unsaved values applied.
	Preview(ctx context.Context, req *models.PreviewRequest) (models.Preview, error)

	// IsItemDisabled reports whether an item has opted out of the notice.
	IsItemDisabled(ctx context.Context, itemID int64) (bool, error)

	// SetItemDisabled sets or clears the per-item opt-out flag.
	SetItemDisabled(ctx context.Context, subject string, itemID int64, disabled bool) error
}
