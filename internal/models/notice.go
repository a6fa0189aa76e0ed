package models

import "time"

// Decision is the outcome of an eligibility evaluation.
// Reason names the check that decided the outcome; it is informational only.
type Decision struct {
	Show       bool      `json:"show"`
	Reason     string    `json:"reason"`
	AgeSeconds int64     `json:"age_seconds"`
	CheckTime  time.Time `json:"check_time"`
}

// RenderedNotice is the notice produced for one item on one request. It is
// never persisted.
type RenderedNotice struct {
	// Message is the sanitized template output before wrapping
	Message string `json:"message"`

	// HTML is the sanitized notice container, after the HTML override hook
	HTML string `json:"html"`

	// Position is "before" or "after"
	Position string `json:"position"`

	// AgeSeconds is the age used by the eligibility check
	AgeSeconds int64 `json:"age_seconds"`
}

// Preview is the sample rendering shown next to the settings form.
type Preview struct {
	Message    string `json:"message"`
	HTML       string `json:"html"`
	Stylesheet string `json:"stylesheet"`
}
