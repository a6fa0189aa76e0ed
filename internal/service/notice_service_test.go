package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/models"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/notice"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/utils"
)

// Mock implementations for testing
type MockSettingsRepository struct {
	options map[string]*models.StoredOption
	getErr  error
	saveErr error
	delErr  error
}

func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{options: make(map[string]*models.StoredOption)}
}

func (m *MockSettingsRepository) Get(ctx context.Context, name string) (*models.StoredOption, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	option, ok := m.options[name]
	if !ok {
		return nil, utils.NewNotFoundError("Option", name)
	}
	return option, nil
}

func (m *MockSettingsRepository) Save(ctx context.Context, option *models.StoredOption) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	option.UpdatedAt = time.Now()
	m.options[option.Name] = option
	return nil
}

func (m *MockSettingsRepository) Delete(ctx context.Context, name string) error {
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.options, name)
	return nil
}

type flagKey struct {
	itemID int64
	name   string
}

type MockItemFlagRepository struct {
	flags    map[flagKey]*models.ItemFlag
	getCalls int
	err      error
}

func NewMockItemFlagRepository() *MockItemFlagRepository {
	return &MockItemFlagRepository{flags: make(map[flagKey]*models.ItemFlag)}
}

func (m *MockItemFlagRepository) Get(ctx context.Context, itemID int64, name string) (*models.ItemFlag, error) {
	m.getCalls++
	if m.err != nil {
		return nil, m.err
	}
	flag, ok := m.flags[flagKey{itemID, name}]
	if !ok {
		return nil, utils.NewNotFoundError("ItemFlag", itemID)
	}
	return flag, nil
}

func (m *MockItemFlagRepository) Set(ctx context.Context, flag *models.ItemFlag) error {
	if m.err != nil {
		return m.err
	}
	m.flags[flagKey{flag.ItemID, flag.Name}] = flag
	return nil
}

func (m *MockItemFlagRepository) Delete(ctx context.Context, itemID int64, name string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.flags, flagKey{itemID, name})
	return nil
}

func (m *MockItemFlagRepository) DeleteAllByName(ctx context.Context, name string) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var removed int64
	for key := range m.flags {
		if key.name == name {
			delete(m.flags, key)
			removed++
		}
	}
	return removed, nil
}

var (
	published = time.Date(2022, 1, 10, 9, 0, 0, 0, time.UTC)
	fixedNow  = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
)

func newTestNoticeService() (*NoticeService, *MockSettingsRepository, *MockItemFlagRepository) {
	settingsRepo := NewMockSettingsRepository()
	flagRepo := NewMockItemFlagRepository()
	svc := NewNoticeService(settingsRepo, flagRepo, notice.NewEngine(notice.Options{}), notice.NewStaticValidity(nil, nil))
	svc.now = func() time.Time { return fixedNow }
	return svc, settingsRepo, flagRepo
}

func storeSettings(t *testing.T, repo *MockSettingsRepository, raw string) {
	t.Helper()
	repo.options[constants.SettingsOptionName] = &models.StoredOption{
		Name:  constants.SettingsOptionName,
		Value: json.RawMessage(raw),
	}
}

func oldPost() models.ContentItem {
	return models.ContentItem{
		ID:          42,
		PostType:    "post",
		PublishedAt: published,
		Terms: map[string][]models.Term{
			"category": {{ID: 3, Name: "Politics", Taxonomy: "category", URL: "https://example.test/politics"}},
		},
	}
}

func TestNoticeService_GetSettings(t *testing.T) {
	t.Run("Defaults when nothing is stored", func(t *testing.T) {
		svc, _, _ := newTestNoticeService()

		settings, err := svc.GetSettings(context.Background())

		require.NoError(t, err)
		assert.Equal(t, models.DefaultSettings(), settings)
	})

	t.Run("Stored values are resolved", func(t *testing.T) {
		svc, repo, _ := newTestNoticeService()
		storeSettings(t, repo, `{"threshold_value":"-3","position":"sideways","border_color":"#abc"}`)

		settings, err := svc.GetSettings(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 3, settings.ThresholdValue)
		assert.Equal(t, constants.PositionBefore, settings.Position)
		assert.Equal(t, "#abc", settings.BorderColor)
	})

	t.Run("Corrupt record falls back to defaults", func(t *testing.T) {
		svc, repo, _ := newTestNoticeService()
		storeSettings(t, repo, `not json`)

		settings, err := svc.GetSettings(context.Background())

		require.NoError(t, err)
		assert.Equal(t, models.DefaultSettings(), settings)
	})

	t.Run("Repository failure is returned", func(t *testing.T) {
		svc, repo, _ := newTestNoticeService()
		repo.getErr = errors.New("connection reset")

		_, err := svc.GetSettings(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load settings")
	})
}

func TestNoticeService_UpdateSettings(t *testing.T) {
	svc, repo, _ := newTestNoticeService()
	storeSettings(t, repo, `{"threshold_value":6,"threshold_unit":"days"}`)

	updated, err := svc.UpdateSettings(context.Background(), "admin", map[string]any{
		"position":     "after",
		"border_width": json.Number("99"),
		"message":      `Old <script>alert(1)</script><strong>news</strong>`,
	})

	require.NoError(t, err)
	assert.Equal(t, constants.PositionAfter, updated.Position)
	assert.Equal(t, models.MaxBorderWidth, updated.BorderWidth)
	assert.Equal(t, 6, updated.ThresholdValue, "keys not submitted keep their stored value")
	assert.Equal(t, constants.UnitDays, updated.ThresholdUnit)
	assert.NotContains(t, updated.Message, "<script>")
	assert.Contains(t, updated.Message, "<strong>news</strong>")

	reloaded, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, updated, reloaded)
}

func TestNoticeService_UpdateSettings_Idempotent(t *testing.T) {
	svc, _, _ := newTestNoticeService()

	first, err := svc.UpdateSettings(context.Background(), "admin", map[string]any{"excluded_categories": []any{"5", 5, "x", 7}})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 7}, first.ExcludedCategories)

	second, err := svc.UpdateSettings(context.Background(), "admin", first.ToMap())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNoticeService_UpdateSettings_SaveError(t *testing.T) {
	svc, repo, _ := newTestNoticeService()
	repo.saveErr = errors.New("read only")

	_, err := svc.UpdateSettings(context.Background(), "admin", map[string]any{"enabled": false})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save settings")
}

func TestNoticeService_ResetSettings(t *testing.T) {
	svc, repo, _ := newTestNoticeService()
	storeSettings(t, repo, `{"enabled":false}`)

	settings, err := svc.ResetSettings(context.Background(), "admin")

	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), settings)
	assert.Empty(t, repo.options)

	repo.delErr = errors.New("locked")
	_, err = svc.ResetSettings(context.Background(), "admin")
	assert.Error(t, err)
}

func TestNoticeService_Preview(t *testing.T) {
	svc, repo, _ := newTestNoticeService()
	storeSettings(t, repo, `{"message":"Stored {years} years"}`)

	preview, err := svc.Preview(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "Stored 2 years", preview.Message)
	assert.Contains(t, preview.Stylesheet, "#d63638")

	message := "Draft {days} days"
	color := "#00f"
	preview, err = svc.Preview(context.Background(), &models.PreviewRequest{Message: &message, BorderColor: &color})
	require.NoError(t, err)
	assert.Equal(t, "Draft 760 days", preview.Message)
	assert.Contains(t, preview.Stylesheet, "solid #00f")

	stored, err := svc.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Stored {years} years", stored.Message, "preview values are never persisted")
}

func TestNoticeService_Stylesheet(t *testing.T) {
	svc, repo, _ := newTestNoticeService()
	storeSettings(t, repo, `{"border_width":3,"border_radius":"8"}`)

	css, err := svc.Stylesheet(context.Background())

	require.NoError(t, err)
	assert.Contains(t, css, ".opn-notice {border:3px solid #d63638;")
	assert.Contains(t, css, "border-radius:8px;")
}

func TestNoticeService_RenderNotice(t *testing.T) {
	t.Run("Old item gets a notice", func(t *testing.T) {
		svc, _, _ := newTestNoticeService()

		resp, err := svc.RenderNotice(context.Background(), &models.RenderRequest{Item: oldPost()})

		require.NoError(t, err)
		assert.True(t, resp.Show)
		assert.Equal(t, constants.ReasonEligible, resp.Reason)
		assert.Equal(t, constants.PositionBefore, resp.Position)
		assert.Contains(t, resp.Message, "2 years ago")
		assert.Contains(t, resp.HTML, `class="opn-notice"`)
		assert.Nil(t, resp.Content)
	})

	t.Run("Recent item is not shown", func(t *testing.T) {
		svc, _, _ := newTestNoticeService()
		now := published.Add(24 * time.Hour)

		resp, err := svc.RenderNotice(context.Background(), &models.RenderRequest{Item: oldPost(), Now: &now})

		require.NoError(t, err)
		assert.False(t, resp.Show)
		assert.Equal(t, constants.ReasonTooRecent, resp.Reason)
		assert.Equal(t, int64(86400), resp.AgeSeconds)
		assert.Empty(t, resp.HTML)
	})

	t.Run("Stored opt-out flag suppresses the notice", func(t *testing.T) {
		svc, _, flags := newTestNoticeService()
		require.NoError(t, svc.SetItemDisabled(context.Background(), "admin", 42, true))

		resp, err := svc.RenderNotice(context.Background(), &models.RenderRequest{Item: oldPost()})

		require.NoError(t, err)
		assert.False(t, resp.Show)
		assert.Equal(t, constants.ReasonItemDisabled, resp.Reason)
		assert.Equal(t, 1, flags.getCalls)
	})

	t.Run("Flag is not read when disabled globally", func(t *testing.T) {
		svc, repo, flags := newTestNoticeService()
		storeSettings(t, repo, `{"enabled":false}`)

		resp, err := svc.RenderNotice(context.Background(), &models.RenderRequest{Item: oldPost()})

		require.NoError(t, err)
		assert.Equal(t, constants.ReasonDisabledGlobally, resp.Reason)
		assert.Zero(t, flags.getCalls)
	})

	t.Run("Content gets the notice inserted after", func(t *testing.T) {
		svc, repo, _ := newTestNoticeService()
		storeSettings(t, repo, `{"position":"after","message":"Old."}`)
		content := "<p>Body</p>"

		resp, err := svc.RenderNotice(context.Background(), &models.RenderRequest{Item: oldPost(), Content: &content})

		require.NoError(t, err)
		require.NotNil(t, resp.Content)
		assert.Equal(t, "<p>Body</p>"+resp.HTML, *resp.Content)
	})

	t.Run("Content is returned unchanged when not shown", func(t *testing.T) {
		svc, _, _ := newTestNoticeService()
		item := oldPost()
		item.PostType = "page"
		content := "<p>Body</p>"

		resp, err := svc.RenderNotice(context.Background(), &models.RenderRequest{Item: item, Content: &content})

		require.NoError(t, err)
		assert.Equal(t, constants.ReasonPostType, resp.Reason)
		assert.Equal(t, content, *resp.Content)
	})

	t.Run("Coverage link uses the hinted primary term from the catalog", func(t *testing.T) {
		svc, repo, _ := newTestNoticeService()
		storeSettings(t, repo, `{"coverage_link":true,"message":"{term_name}"}`)
		item := oldPost()
		item.Hints = map[string]string{"_yoast_wpseo_primary_category": "9"}

		resp, err := svc.RenderNotice(context.Background(), &models.RenderRequest{
			Item:        item,
			TermCatalog: []models.Term{{ID: 9, Name: "Elections", Taxonomy: "category", URL: "https://example.test/elections"}},
		})

		require.NoError(t, err)
		assert.Equal(t, "Elections", resp.Message)
	})

	t.Run("Flag repository failure is returned", func(t *testing.T) {
		svc, _, flags := newTestNoticeService()
		flags.err = errors.New("timeout")

		_, err := svc.RenderNotice(context.Background(), &models.RenderRequest{Item: oldPost()})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load disable flag")
	})
}

func TestNoticeService_ItemDisabled(t *testing.T) {
	svc, _, flags := newTestNoticeService()
	ctx := context.Background()

	disabled, err := svc.IsItemDisabled(ctx, 42)
	require.NoError(t, err)
	assert.False(t, disabled)

	require.NoError(t, svc.SetItemDisabled(ctx, "admin", 42, true))
	disabled, err = svc.IsItemDisabled(ctx, 42)
	require.NoError(t, err)
	assert.True(t, disabled)
	assert.Equal(t, "1", flags.flags[flagKey{42, constants.DisableFlagName}].Value)

	require.NoError(t, svc.SetItemDisabled(ctx, "admin", 42, false))
	assert.Empty(t, flags.flags)

	flags.flags[flagKey{42, constants.DisableFlagName}] = &models.ItemFlag{ItemID: 42, Name: constants.DisableFlagName, Value: "0"}
	disabled, err = svc.IsItemDisabled(ctx, 42)
	require.NoError(t, err)
	assert.False(t, disabled)
}

func TestNoticeService_Uninstall(t *testing.T) {
	svc, repo, flags := newTestNoticeService()
	ctx := context.Background()
	storeSettings(t, repo, `{"enabled":false}`)
	require.NoError(t, svc.SetItemDisabled(ctx, "admin", 1, true))
	require.NoError(t, svc.SetItemDisabled(ctx, "admin", 2, true))
	flags.flags[flagKey{3, "_other"}] = &models.ItemFlag{ItemID: 3, Name: "_other", Value: "x"}

	removed, err := svc.Uninstall(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	assert.Empty(t, repo.options)
	assert.Len(t, flags.flags, 1)

	flags.err = errors.New("gone")
	_, err = svc.Uninstall(ctx)
	assert.Error(t, err)
}
