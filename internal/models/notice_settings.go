// Package models provides data structures for the OldNotice application.
// This file contains the notice settings record that controls when the
// old-content notice appears, what it says and how it is styled.
package models

import "github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"

// Settings is the fully resolved notice configuration.
// A Settings value is only ever produced by notice.Resolve or Defaults, so every
// field is populated and within its documented range. It is treated as an
// immutable snapshot for the duration of a request.
type Settings struct {
	// Enabled switches the notice on or off for every item
	Enabled bool `json:"enabled"`

	// ThresholdValue and ThresholdUnit define the age above which content is old
	ThresholdValue int    `json:"threshold_value"`
	ThresholdUnit  string `json:"threshold_unit"`

	// Message is the notice template containing {placeholders}
	Message string `json:"message"`

	// Position places the notice before or after the body content
	Position string `json:"position"`

	// Styling used by the generated stylesheet
	BorderColor     string `json:"border_color"`
	TextColor       string `json:"text_color"`
	BackgroundColor string `json:"background_color"`
	BorderWidth     int    `json:"border_width"`
	BorderRadius    int    `json:"border_radius"`

	// PostTypes lists the content types the notice applies to
	PostTypes []string `json:"post_types"`

	// ExcludedCategories suppresses the notice for items in any of these categories
	ExcludedCategories []int64 `json:"excluded_categories"`

	// UseModifiedDate measures age from the last modification when it is newer
	UseModifiedDate bool `json:"use_modified_date"`

	// CoverageLink enables the {coverage_link} and {term_name} placeholders
	CoverageLink     bool   `json:"coverage_link"`
	CoverageTaxonomy string `json:"coverage_taxonomy"`
	CoverageLinkText string `json:"coverage_link_text"`
}

// Default values for every settings field.
const (
	DefaultThresholdValue   = 12
	DefaultThresholdUnit    = constants.UnitMonths
	DefaultMessage          = "This article was published {time_ago} and is kept for archival purposes. Some information may be outdated."
	DefaultPosition         = constants.PositionBefore
	DefaultBorderColor      = "#d63638"
	DefaultTextColor        = "#d63638"
	DefaultBackgroundColor  = "#fef0f0"
	DefaultBorderWidth      = 2
	DefaultBorderRadius     = 4
	DefaultPostType         = "post"
	DefaultCoverageTaxonomy = "category"
	DefaultCoverageLinkText = "See our latest {term_name} coverage &rarr;"
	MaxBorderWidth          = 10
	MaxBorderRadius         = 20
)

// DefaultSettings returns the settings used when nothing has been persisted.
func DefaultSettings() Settings {
	return Settings{
		Enabled:            true,
		ThresholdValue:     DefaultThresholdValue,
		ThresholdUnit:      DefaultThresholdUnit,
		Message:            DefaultMessage,
		Position:           DefaultPosition,
		BorderColor:        DefaultBorderColor,
		TextColor:          DefaultTextColor,
		BackgroundColor:    DefaultBackgroundColor,
		BorderWidth:        DefaultBorderWidth,
		BorderRadius:       DefaultBorderRadius,
		PostTypes:          []string{DefaultPostType},
		ExcludedCategories: []int64{},
		UseModifiedDate:    false,
		CoverageLink:       false,
		CoverageTaxonomy:   DefaultCoverageTaxonomy,
		CoverageLinkText:   DefaultCoverageLinkText,
	}
}

// HasPostType reports whether postType is one of the selected post types.
func (s Settings) HasPostType(postType string) bool {
	for _, pt := range s.PostTypes {
		if pt == postType {
			return true
		}
	}
	return false
}

// ExcludesAny reports whether any of the given category ids is excluded.
// An empty exclusion list never excludes.
func (s Settings) ExcludesAny(categoryIDs []int64) bool {
	if len(s.ExcludedCategories) == 0 {
		return false
	}
	excluded := make(map[int64]struct{}, len(s.ExcludedCategories))
	for _, id := range s.ExcludedCategories {
		excluded[id] = struct{}{}
	}
	for _, id := range categoryIDs {
		if _, ok := excluded[id]; ok {
			return true
		}
	}
	return false
}

// ToMap converts the settings into the loosely typed mapping that is persisted
// and that notice.Resolve accepts.
func (s Settings) ToMap() map[string]any {
	postTypes := make([]any, len(s.PostTypes))
	for i, pt := range s.PostTypes {
		postTypes[i] = pt
	}
	excluded := make([]any, len(s.ExcludedCategories))
	for i, id := range s.ExcludedCategories {
		excluded[i] = id
	}
	return map[string]any{
		"enabled":             s.Enabled,
		"threshold_value":     s.ThresholdValue,
		"threshold_unit":      s.ThresholdUnit,
		"message":             s.Message,
		"position":            s.Position,
		"border_color":        s.BorderColor,
		"text_color":          s.TextColor,
		"background_color":    s.BackgroundColor,
		"border_width":        s.BorderWidth,
		"border_radius":       s.BorderRadius,
		"post_types":          postTypes,
		"excluded_categories": excluded,
		"use_modified_date":   s.UseModifiedDate,
		"coverage_link":       s.CoverageLink,
		"coverage_taxonomy":   s.CoverageTaxonomy,
		"coverage_link_text":  s.CoverageLinkText,
	}
}
