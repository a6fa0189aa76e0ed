package notice_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/models"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/notice"
)

func TestResolve_EmptyYieldsDefaults(t *testing.T) {
	assert.Equal(t, models.DefaultSettings(), notice.Resolve(nil, nil))
	assert.Equal(t, models.DefaultSettings(), notice.Resolve(map[string]any{}, nil))
}

func TestResolve_ThresholdValue(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  int
	}{
		{name: "Integer", input: 7, want: 7},
		{name: "JSON number", input: 18.0, want: 18},
		{name: "Fraction truncated", input: 3.9, want: 3},
		{name: "Negative uses absolute value", input: -5, want: 5},
		{name: "Zero clamps to one", input: 0, want: 1},
		{name: "Numeric string", input: "24", want: 24},
		{name: "Leading digits", input: "6 months", want: 6},
		{name: "Not a number", input: "abc", want: models.DefaultThresholdValue},
		{name: "Wrong type", input: []any{1}, want: models.DefaultThresholdValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := notice.Resolve(map[string]any{"threshold_value": tt.input}, nil)
			assert.Equal(t, tt.want, s.ThresholdValue)
		})
	}
}

func TestResolve_EnumeratedFields(t *testing.T) {
	s := notice.Resolve(map[string]any{
		"threshold_unit": "years",
		"position":       "after",
	}, nil)
	assert.Equal(t, "years", s.ThresholdUnit)
	assert.Equal(t, "after", s.Position)

	s = notice.Resolve(map[string]any{
		"threshold_unit": "weeks",
		"position":       "middle",
	}, nil)
	assert.Equal(t, models.DefaultThresholdUnit, s.ThresholdUnit)
	assert.Equal(t, models.DefaultPosition, s.Position)
}

func TestResolve_Colors(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  string
	}{
		{name: "Six digits", input: "#1a2B3c", want: "#1a2B3c"},
		{name: "Three digits", input: "#abc", want: "#abc"},
		{name: "Four digits rejected", input: "#abcd", want: models.DefaultBorderColor},
		{name: "Eight digits rejected", input: "#aabbccdd", want: models.DefaultBorderColor},
		{name: "Named color rejected", input: "red", want: models.DefaultBorderColor},
		{name: "Missing hash rejected", input: "abcdef", want: models.DefaultBorderColor},
		{name: "CSS injection rejected", input: "#fff;}body{", want: models.DefaultBorderColor},
		{name: "Non-string rejected", input: 123, want: models.DefaultBorderColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := notice.Resolve(map[string]any{"border_color": tt.input}, nil)
			assert.Equal(t, tt.want, s.BorderColor)
		})
	}
}

func TestResolve_InvalidKeyDoesNotAffectOthers(t *testing.T) {
	s := notice.Resolve(map[string]any{
		"text_color":       "nope",
		"background_color": "#000",
		"border_width":     "wide",
		"border_radius":    8,
	}, nil)

	assert.Equal(t, models.DefaultTextColor, s.TextColor)
	assert.Equal(t, "#000", s.BackgroundColor)
	assert.Equal(t, models.DefaultBorderWidth, s.BorderWidth)
	assert.Equal(t, 8, s.BorderRadius)
}

func TestResolve_BorderClamping(t *testing.T) {
	s := notice.Resolve(map[string]any{"border_width": 50, "border_radius": -30}, nil)
	assert.Equal(t, models.MaxBorderWidth, s.BorderWidth)
	assert.Equal(t, models.MaxBorderRadius, s.BorderRadius)

	s = notice.Resolve(map[string]any{"border_width": -3, "border_radius": 0}, nil)
	assert.Equal(t, 3, s.BorderWidth)
	assert.Equal(t, 0, s.BorderRadius)
}

func TestResolve_PostTypes(t *testing.T) {
	validity := notice.NewStaticValidity([]string{"post", "page", "review"}, nil)

	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{name: "Valid kept in order", input: []any{"review", "page"}, want: []string{"review", "page"}},
		{name: "Unknown dropped", input: []any{"page", "bogus"}, want: []string{"page"}},
		{name: "Duplicates removed", input: []string{"page", "page"}, want: []string{"page"}},
		{name: "All unknown falls back", input: []any{"bogus"}, want: []string{"post"}},
		{name: "Empty falls back", input: []any{}, want: []string{"post"}},
		{name: "Single string is a one-element list", input: "page", want: []string{"page"}},
		{name: "Unknown single string falls back", input: "bogus", want: []string{"post"}},
		{name: "Not a list falls back", input: 7, want: []string{"post"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := notice.Resolve(map[string]any{"post_types": tt.input}, validity)
			assert.Equal(t, tt.want, s.PostTypes)
		})
	}
}

func TestResolve_ExcludedCategories(t *testing.T) {
	s := notice.Resolve(map[string]any{
		"excluded_categories": []any{"5", -3, "x", 5.0, 7, nil},
	}, nil)
	assert.Equal(t, []int64{5, 3, 7}, s.ExcludedCategories)

	s = notice.Resolve(map[string]any{"excluded_categories": "5"}, nil)
	assert.Empty(t, s.ExcludedCategories)
}

func TestResolve_Booleans(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  bool
	}{
		{name: "Bool true", input: true, want: true},
		{name: "Bool false", input: false, want: false},
		{name: "One", input: 1.0, want: true},
		{name: "Zero", input: 0, want: false},
		{name: "String one", input: "1", want: true},
		{name: "String zero", input: "0", want: false},
		{name: "Empty string", input: "", want: false},
		{name: "String off", input: "off", want: false},
		{name: "Checkbox on", input: "on", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := notice.Resolve(map[string]any{
				"use_modified_date": tt.input,
				"coverage_link":     tt.input,
			}, nil)
			assert.Equal(t, tt.want, s.UseModifiedDate)
			assert.Equal(t, tt.want, s.CoverageLink)
		})
	}

	// Unrecognized values keep the default rather than flipping it.
	s := notice.Resolve(map[string]any{"enabled": []any{}}, nil)
	assert.True(t, s.Enabled)
}

func TestResolve_CoverageTaxonomy(t *testing.T) {
	validity := notice.NewStaticValidity(nil, []string{"category", "post_tag", "topic"})

	s := notice.Resolve(map[string]any{"coverage_taxonomy": "Post_Tag"}, validity)
	assert.Equal(t, "post_tag", s.CoverageTaxonomy)

	s = notice.Resolve(map[string]any{"coverage_taxonomy": "to<pic>"}, validity)
	assert.Equal(t, "topic", s.CoverageTaxonomy)

	s = notice.Resolve(map[string]any{"coverage_taxonomy": "genre"}, validity)
	assert.Equal(t, models.DefaultCoverageTaxonomy, s.CoverageTaxonomy)
}

func TestResolve_TextFields(t *testing.T) {
	s := notice.Resolve(map[string]any{
		"message":            "Published {date}.",
		"coverage_link_text": "More on {term_name}",
	}, nil)
	assert.Equal(t, "Published {date}.", s.Message)
	assert.Equal(t, "More on {term_name}", s.CoverageLinkText)

	s = notice.Resolve(map[string]any{"message": 42}, nil)
	assert.Equal(t, models.DefaultMessage, s.Message)
}

func TestResolve_Idempotent(t *testing.T) {
	raw := `{
		"enabled": "1",
		"threshold_value": -18.7,
		"threshold_unit": "days",
		"message": "Old: {time_ago}",
		"position": "after",
		"border_color": "#123",
		"text_color": "blue",
		"background_color": "#ffffff",
		"border_width": 40,
		"border_radius": "7",
		"post_types": ["page", "bogus", "page"],
		"excluded_categories": ["3", 4, "nope", 3],
		"use_modified_date": "yes",
		"coverage_link": 1,
		"coverage_taxonomy": "POST_TAG",
		"coverage_link_text": "See {term_name}"
	}`
	var persisted map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &persisted))

	validity := notice.NewStaticValidity(nil, nil)
	first := notice.Resolve(persisted, validity)
	second := notice.Resolve(first.ToMap(), validity)

	assert.Equal(t, first, second)
	assert.Equal(t, 18, first.ThresholdValue)
	assert.Equal(t, []string{"page"}, first.PostTypes)
	assert.Equal(t, []int64{3, 4}, first.ExcludedCategories)
	assert.Equal(t, "post_tag", first.CoverageTaxonomy)
}

func TestResolve_IdempotentWithRestrictedValidity(t *testing.T) {
	// Defaults that are not themselves valid must still be stable.
	validity := notice.NewStaticValidity([]string{"page"}, []string{"topic"})

	first := notice.Resolve(map[string]any{"post_types": []any{"post"}}, validity)
	second := notice.Resolve(first.ToMap(), validity)

	assert.Equal(t, first, second)
}

func TestIsHexColor(t *testing.T) {
	assert.True(t, notice.IsHexColor("#fff"))
	assert.True(t, notice.IsHexColor("#FEF0F0"))
	assert.False(t, notice.IsHexColor("#ffff"))
	assert.False(t, notice.IsHexColor("#12345g"))
	assert.False(t, notice.IsHexColor(""))
}
