package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/auth"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/models"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/utils"
)

// SettingsHandler handles the admin routes for the notice settings and the
// per-item opt-out flag
type SettingsHandler struct {
	noticeService NoticeServiceInterface
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(noticeService NoticeServiceInterface) *SettingsHandler {
	return &SettingsHandler{
		noticeService: noticeService,
	}
}

// GetSettings returns the resolved settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.noticeService.GetSettings(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, settings)
}

// UpdateSettings saves a partial settings object. Values that fail resolution
// fall back to their defaults instead of failing the request.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	subject, ok := auth.GetSubject(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	var partial map[string]any
	if err := utils.DecodeJSON(r, &partial); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	settings, err := h.noticeService.UpdateSettings(r.Context(), subject, partial)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, settings)
}

// ResetSettings removes the stored settings
func (h *SettingsHandler) ResetSettings(w http.ResponseWriter, r *http.Request) {
	subject, ok := auth.GetSubject(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	settings, err := h.noticeService.ResetSettings(r.Context(), subject)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, map[string]any{
		"message":  constants.MsgSettingsReset,
		"settings": settings,
	})
}

// GetPreview renders the sample notice for the stored settings
func (h *SettingsHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	preview, err := h.noticeService.Preview(r.Context(), nil)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, preview)
}

// PreviewDraft renders the sample notice with unsaved form values applied
func (h *SettingsHandler) PreviewDraft(w http.ResponseWriter, r *http.Request) {
	var req models.PreviewRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	preview, err := h.noticeService.Preview(r.Context(), &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, preview)
}

// GetItemStatus reports whether an item has opted out of the notice
func (h *SettingsHandler) GetItemStatus(w http.ResponseWriter, r *http.Request) {
	itemID, err := utils.ParseItemID(chi.URLParam(r, constants.ParamItemID))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	disabled, err := h.noticeService.IsItemDisabled(r.Context(), itemID)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, models.ItemDisableStatus{ItemID: itemID, Disabled: disabled})
}

// DisableItem turns the notice off for one item
func (h *SettingsHandler) DisableItem(w http.ResponseWriter, r *http.Request) {
	h.setItemDisabled(w, r, true)
}

// EnableItem removes the opt-out flag of one item
func (h *SettingsHandler) EnableItem(w http.ResponseWriter, r *http.Request) {
	h.setItemDisabled(w, r, false)
}

func (h *SettingsHandler) setItemDisabled(w http.ResponseWriter, r *http.Request, disabled bool) {
	subject, ok := auth.GetSubject(r)
	if !ok {
		utils.Unauthorized(w, constants.MsgAuthRequired)
		return
	}

	itemID, err := utils.ParseItemID(chi.URLParam(r, constants.ParamItemID))
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	if err := h.noticeService.SetItemDisabled(r.Context(), subject, itemID, disabled); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSON(w, constants.StatusOK, models.ItemDisableStatus{ItemID: itemID, Disabled: disabled})
}
