package models

import "time"

// RenderRequest is the payload the presentation layer posts for each page view.
type RenderRequest struct {
	// Item is the content snapshot to evaluate
	Item ContentItem `json:"item"`

	// TermCatalog lists additional terms that primary-term hints may refer to
	// but that are not assigned to the item
	TermCatalog []Term `json:"term_catalog" validate:"omitempty,dive"`

	// Content is the optional body HTML; when present the notice is inserted
	Content *string `json:"content,omitempty"`

	// Now overrides the evaluation time; the server clock is used when omitted
	Now *time.Time `json:"now,omitempty"`
}

// RenderResponse is returned for every render request, eligible or not.
type RenderResponse struct {
	Show       bool    `json:"show"`
	Reason     string  `json:"reason"`
	AgeSeconds int64   `json:"age_seconds"`
	Position   string  `json:"position,omitempty"`
	Message    string  `json:"message,omitempty"`
	HTML       string  `json:"html,omitempty"`
	Content    *string `json:"content,omitempty"`
}

// ItemDisableStatus reports the per-item opt-out flag.
type ItemDisableStatus struct {
	ItemID   int64 `json:"item_id"`
	Disabled bool  `json:"disabled"`
}

// PreviewRequest carries unsaved form values to preview on top of the stored
// settings. Every field is optional.
type PreviewRequest struct {
	Message          *string `json:"message,omitempty" validate:"omitempty,max=2000"`
	Position         *string `json:"position,omitempty" validate:"omitempty,oneof=before after"`
	BorderColor      *string `json:"border_color,omitempty" validate:"omitempty,hexcolor36"`
	TextColor        *string `json:"text_color,omitempty" validate:"omitempty,hexcolor36"`
	BackgroundColor  *string `json:"background_color,omitempty" validate:"omitempty,hexcolor36"`
	BorderWidth      *int    `json:"border_width,omitempty" validate:"omitempty,gte=0,lte=10"`
	BorderRadius     *int    `json:"border_radius,omitempty" validate:"omitempty,gte=0,lte=20"`
	CoverageLink     *bool   `json:"coverage_link,omitempty"`
	CoverageLinkText *string `json:"coverage_link_text,omitempty" validate:"omitempty,max=500"`
}

// Overrides returns the supplied fields as a settings mapping.
func (p PreviewRequest) Overrides() map[string]any {
	out := map[string]any{}
	if p.Message != nil {
		out["message"] = *p.Message
	}
	if p.Position != nil {
		out["position"] = *p.Position
	}
	if p.BorderColor != nil {
		out["border_color"] = *p.BorderColor
	}
	if p.TextColor != nil {
		out["text_color"] = *p.TextColor
	}
	if p.BackgroundColor != nil {
		out["background_color"] = *p.BackgroundColor
	}
	if p.BorderWidth != nil {
		out["border_width"] = *p.BorderWidth
	}
	if p.BorderRadius != nil {
		out["border_radius"] = *p.BorderRadius
	}
	if p.CoverageLink != nil {
		out["coverage_link"] = *p.CoverageLink
	}
	if p.CoverageLinkText != nil {
		out["coverage_link_text"] = *p.CoverageLinkText
	}
	return out
}
