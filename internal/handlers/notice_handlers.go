package handlers

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/models"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/utils"
)

// NoticeHandler handles the public routes the presentation layer calls on every page view
type NoticeHandler struct {
	noticeService NoticeServiceInterface
}

// NewNoticeHandler creates a new NoticeHandler
func NewNoticeHandler(noticeService NoticeServiceInterface) *NoticeHandler {
	return &NoticeHandler{
		noticeService: noticeService,
	}
}

// Render decides whether the posted item gets a notice and returns it.
// Ineligible items are a normal 200 response with show=false.
func (h *NoticeHandler) Render(w http.ResponseWriter, r *http.Request) {
	var req models.RenderRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	resp, err := h.noticeService.RenderNotice(r.Context(), &req)
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.JSONWithMeta(w, constants.StatusOK, resp, &utils.MetaInfo{
		Reason:    resp.Reason,
		RequestID: chimiddleware.GetReqID(r.Context()),
	})
}

// Stylesheet returns the notice CSS
func (h *NoticeHandler) Stylesheet(w http.ResponseWriter, r *http.Request) {
	css, err := h.noticeService.Stylesheet(r.Context())
	if err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	utils.CSS(w, css, constants.StylesheetMaxAge)
}
