// Package service provides business logic implementations for the OldNotice application.
// It contains services that orchestrate operations across repositories and the
// notice engine.
//
// This file implements the notice service. Every call reloads the persisted
// settings snapshot and resolves it, so a saved change applies to the very next
// request without any cache invalidation.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/models"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/notice"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/repository"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/utils"
)

// disabledFlagValue is stored when an item opts out of the notice.
const disabledFlagValue = "1"

// NoticeService decides and renders notices and manages their configuration.
type NoticeService struct {
	settingsRepo repository.SettingsRepository
	flagRepo     repository.ItemFlagRepository
	engine       *notice.Engine
	validity     notice.Validity
	now          func() time.Time
}

// NewNoticeService creates a new NoticeService.
//
// Parameters:
//   - settingsRepo: Repository holding the persisted settings record
//   - flagRepo: Repository holding the per-item opt-out flags
//   - engine: The notice engine used for evaluation and rendering
//   - validity: Decides which post types and taxonomies the settings may reference
//
// Returns:
//   - A new NoticeService instance
func NewNoticeService(
	settingsRepo repository.SettingsRepository,
	flagRepo repository.ItemFlagRepository,
	engine *notice.Engine,
	validity notice.Validity,
) *NoticeService {
	return &NoticeService{
		settingsRepo: settingsRepo,
		flagRepo:     flagRepo,
		engine:       engine,
		validity:     validity,
		now:          time.Now,
	}
}

// GetSettings returns the resolved settings. A missing record resolves to the
// defaults.
func (s *NoticeService) GetSettings(ctx context.Context) (models.Settings, error) {
	option, err := s.settingsRepo.Get(ctx, constants.SettingsOptionName)
	if err != nil {
		if utils.IsNotFoundError(err) {
			return notice.Resolve(nil, s.validity), nil
		}
		return models.Settings{}, fmt.Errorf("failed to load settings: %w", err)
	}

	return notice.Resolve(option.Decode(), s.validity), nil
}

// UpdateSettings merges a partial settings mapping into the current settings,
// sanitizes the free-text fields, resolves the result and persists it.
//
// Parameters:
//   - ctx: Context for the operation
//   - subject: The admin identity making the change, for the audit log
//   - partial: The submitted keys; unknown keys are ignored by resolution
//
// Returns:
//   - The resolved settings as persisted
//   - An error if loading or saving fails
//
// Invalid values never fail the update; each falls back to its default the
// same way a malformed persisted record would.
func (s *NoticeService) UpdateSettings(ctx context.Context, subject string, partial map[string]any) (models.Settings, error) {
	current, err := s.GetSettings(ctx)
	if err != nil {
		return models.Settings{}, err
	}

	merged := current.ToMap()
	for key, value := range partial {
		merged[key] = value
	}
	for _, key := range []string{"message", "coverage_link_text"} {
		if text, ok := merged[key].(string); ok {
			merged[key] = s.engine.Sanitize(text)
		}
	}

	resolved := notice.Resolve(merged, s.validity)

	value, err := json.Marshal(resolved)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to encode settings: %w", err)
	}

	option := &models.StoredOption{
		Name:  constants.SettingsOptionName,
		Value: value,
	}
	if err := s.settingsRepo.Save(ctx, option); err != nil {
		return models.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}

	utils.LogSettingsChange(constants.LogEventSettingsUpdate, subject, utils.SortedKeys(partial))

	return resolved, nil
}

// ResetSettings removes the persisted record so every field returns to its default.
func (s *NoticeService) ResetSettings(ctx context.Context, subject string) (models.Settings, error) {
	if err := s.settingsRepo.Delete(ctx, constants.SettingsOptionName); err != nil {
		return models.Settings{}, fmt.Errorf("failed to reset settings: %w", err)
	}

	utils.LogSettingsChange(constants.LogEventSettingsReset, subject, nil)

	return notice.Resolve(nil, s.validity), nil
}

// Preview renders the sample notice and stylesheet. Values in req are applied on
// top of the stored settings without being persisted; a nil req previews the
// stored settings as they are.
func (s *NoticeService) Preview(ctx context.Context, req *models.PreviewRequest) (models.Preview, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return models.Preview{}, err
	}

	if req != nil {
		if overrides := req.Overrides(); len(overrides) > 0 {
			merged := settings.ToMap()
			for key, value := range overrides {
				merged[key] = value
			}
			settings = notice.Resolve(merged, s.validity)
		}
	}

	return s.engine.Preview(settings), nil
}

// Stylesheet returns the CSS rule block for the stored settings.
func (s *NoticeService) Stylesheet(ctx context.Context) (string, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return "", err
	}
	return notice.Stylesheet(settings), nil
}

// RenderNotice evaluates the item in req and renders its notice when eligible.
//
// The stored opt-out flag is combined with the snapshot's own Disabled field.
// It is only read when the global switch and the post type already allow the
// notice. When req carries body content, the response includes it with the
// notice inserted at the configured position.
func (s *NoticeService) RenderNotice(ctx context.Context, req *models.RenderRequest) (*models.RenderResponse, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	item := req.Item
	if !item.Disabled && settings.Enabled && settings.HasPostType(item.PostType) {
		disabled, err := s.IsItemDisabled(ctx, item.ID)
		if err != nil {
			return nil, err
		}
		item.Disabled = disabled
	}

	now := s.now()
	if req.Now != nil {
		now = *req.Now
	}

	lookup := notice.NewCatalogLookup(item, req.TermCatalog)
	rendered, decision := s.engine.Build(ctx, settings, item, now, lookup)

	utils.LogNoticeDecision(item.ID, decision)

	resp := &models.RenderResponse{
		Show:       decision.Show,
		Reason:     decision.Reason,
		AgeSeconds: decision.AgeSeconds,
	}
	if rendered != nil {
		resp.Position = rendered.Position
		resp.Message = rendered.Message
		resp.HTML = rendered.HTML
	}
	if req.Content != nil {
		content := notice.Insert(*req.Content, rendered)
		resp.Content = &content
	}

	return resp, nil
}

// IsItemDisabled reports whether the item has opted out of the notice.
func (s *NoticeService) IsItemDisabled(ctx context.Context, itemID int64) (bool, error) {
	flag, err := s.flagRepo.Get(ctx, itemID, constants.DisableFlagName)
	if err != nil {
		if utils.IsNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to load disable flag: %w", err)
	}
	return flag.Value != "" && flag.Value != "0", nil
}

// SetItemDisabled sets or clears the per-item opt-out flag. Clearing removes
// the flag instead of storing a false value.
func (s *NoticeService) SetItemDisabled(ctx context.Context, subject string, itemID int64, disabled bool) error {
	if disabled {
		flag := &models.ItemFlag{
			ItemID: itemID,
			Name:   constants.DisableFlagName,
			Value:  disabledFlagValue,
		}
		if err := s.flagRepo.Set(ctx, flag); err != nil {
			return fmt.Errorf("failed to disable notice for item: %w", err)
		}
		utils.LogSettingsChange(constants.LogEventItemDisable, subject, []string{fmt.Sprintf("item:%d", itemID)})
		return nil
	}

	if err := s.flagRepo.Delete(ctx, itemID, constants.DisableFlagName); err != nil {
		return fmt.Errorf("failed to enable notice for item: %w", err)
	}
	utils.LogSettingsChange(constants.LogEventItemEnable, subject, []string{fmt.Sprintf("item:%d", itemID)})
	return nil
}

// Uninstall removes the settings record and every opt-out flag.
//
// Returns:
//   - The number of item flags removed
//   - An error if either deletion fails
func (s *NoticeService) Uninstall(ctx context.Context) (int64, error) {
	if err := s.settingsRepo.Delete(ctx, constants.SettingsOptionName); err != nil {
		return 0, fmt.Errorf("failed to delete settings: %w", err)
	}

	removed, err := s.flagRepo.DeleteAllByName(ctx, constants.DisableFlagName)
	if err != nil {
		return 0, fmt.Errorf("failed to delete item flags: %w", err)
	}

	log.Info().
		Str("event", constants.LogEventUninstall).
		Int64("flags_removed", removed).
		Msg("Notice data removed")

	return removed, nil
}
