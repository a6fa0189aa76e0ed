// Package notice implements the old-content notice engine: settings resolution,
// the eligibility evaluator, the template renderer, the primary-term resolver and
// the HTML assembly around them.
//
// Everything in this package is a total function over its inputs. Invalid settings
// fall back to defaults, unresolvable terms render as empty strings and malformed
// colors fall back to the component default; none of these are errors.
package notice

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/models"
)

// Validity reports which post types and taxonomies currently exist. It is
// consulted only while resolving settings.
type Validity interface {
	IsValidPostType(postType string) bool
	IsValidTaxonomy(taxonomy string) bool
}

// StaticValidity is a Validity backed by fixed lists, usually taken from the
// notice section of the configuration.
type StaticValidity struct {
	postTypes  map[string]struct{}
	taxonomies map[string]struct{}
}

// NewStaticValidity creates a StaticValidity from the given lists. Empty lists
// fall back to constants.DefaultPublicPostTypes and constants.DefaultTaxonomies.
func NewStaticValidity(postTypes, taxonomies []string) *StaticValidity {
	if len(postTypes) == 0 {
		postTypes = constants.DefaultPublicPostTypes
	}
	if len(taxonomies) == 0 {
		taxonomies = constants.DefaultTaxonomies
	}
	v := &StaticValidity{
		postTypes:  make(map[string]struct{}, len(postTypes)),
		taxonomies: make(map[string]struct{}, len(taxonomies)),
	}
	for _, pt := range postTypes {
		v.postTypes[strings.TrimSpace(pt)] = struct{}{}
	}
	for _, tax := range taxonomies {
		v.taxonomies[strings.TrimSpace(tax)] = struct{}{}
	}
	return v
}

// IsValidPostType implements Validity.
func (v *StaticValidity) IsValidPostType(postType string) bool {
	_, ok := v.postTypes[postType]
	return ok
}

// IsValidTaxonomy implements Validity.
func (v *StaticValidity) IsValidTaxonomy(taxonomy string) bool {
	_, ok := v.taxonomies[taxonomy]
	return ok
}

// colorValidator checks color fields with the validator's hexcolor rule.
var colorValidator = validator.New()

// IsHexColor reports whether value is "#" followed by exactly three or six hex digits.
func IsHexColor(value string) bool {
	if len(value) != 4 && len(value) != 7 {
		return false
	}
	return colorValidator.Var(value, "hexcolor") == nil
}

// Resolve merges a persisted, possibly partial and malformed settings mapping with
// the defaults and returns a fully populated Settings value.
//
// Every key is validated independently; a missing or invalid key takes its default
// and never affects the others. Resolve is pure and idempotent: resolving
// Resolve(x).ToMap() returns Resolve(x) again. A nil validity uses the defaults of
// NewStaticValidity.
func Resolve(persisted map[string]any, validity Validity) models.Settings {
	if validity == nil {
		validity = NewStaticValidity(nil, nil)
	}
	s := models.DefaultSettings()
	if persisted == nil {
		return s
	}

	if v, ok := toBool(persisted["enabled"]); ok {
		s.Enabled = v
	}
	if n, ok := toInt(persisted["threshold_value"]); ok {
		s.ThresholdValue = int(max(1, clampInt(absInt(n))))
	}
	if unit, ok := persisted["threshold_unit"].(string); ok {
		switch unit {
		case constants.UnitDays, constants.UnitMonths, constants.UnitYears:
			s.ThresholdUnit = unit
		}
	}
	if msg, ok := persisted["message"].(string); ok {
		s.Message = msg
	}
	if pos, ok := persisted["position"].(string); ok {
		switch pos {
		case constants.PositionBefore, constants.PositionAfter:
			s.Position = pos
		}
	}

	s.BorderColor = resolveColor(persisted["border_color"], models.DefaultBorderColor)
	s.TextColor = resolveColor(persisted["text_color"], models.DefaultTextColor)
	s.BackgroundColor = resolveColor(persisted["background_color"], models.DefaultBackgroundColor)

	if n, ok := toInt(persisted["border_width"]); ok {
		s.BorderWidth = int(min(absInt(n), models.MaxBorderWidth))
	}
	if n, ok := toInt(persisted["border_radius"]); ok {
		s.BorderRadius = int(min(absInt(n), models.MaxBorderRadius))
	}

	if raw, ok := persisted["post_types"]; ok {
		s.PostTypes = resolvePostTypes(raw, validity)
	}
	if raw, ok := persisted["excluded_categories"]; ok {
		s.ExcludedCategories = resolveCategoryIDs(raw)
	}

	if v, ok := toBool(persisted["use_modified_date"]); ok {
		s.UseModifiedDate = v
	}
	if v, ok := toBool(persisted["coverage_link"]); ok {
		s.CoverageLink = v
	}
	if tax, ok := persisted["coverage_taxonomy"].(string); ok {
		tax = sanitizeKey(tax)
		if validity.IsValidTaxonomy(tax) {
			s.CoverageTaxonomy = tax
		}
	}
	if text, ok := persisted["coverage_link_text"].(string); ok {
		s.CoverageLinkText = text
	}

	return s
}

// resolveColor returns value when it is a valid 3 or 6 digit hex color, else fallback.
func resolveColor(raw any, fallback string) string {
	value, ok := raw.(string)
	if !ok {
		return fallback
	}
	value = strings.TrimSpace(value)
	if !IsHexColor(value) {
		return fallback
	}
	return value
}

// resolvePostTypes keeps the valid identifiers, in order and without duplicates.
func resolvePostTypes(raw any, validity Validity) []string {
	var candidates []string
	switch v := raw.(type) {
	case string:
		candidates = []string{v}
	case []string:
		candidates = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				candidates = append(candidates, s)
			}
		}
	}

	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, pt := range candidates {
		if _, dup := seen[pt]; dup || !validity.IsValidPostType(pt) {
			continue
		}
		seen[pt] = struct{}{}
		out = append(out, pt)
	}
	if len(out) == 0 {
		return []string{models.DefaultPostType}
	}
	return out
}

// resolveCategoryIDs coerces each entry to a non-negative integer. Entries that
// are not integer-like are dropped.
func resolveCategoryIDs(raw any) []int64 {
	var candidates []any
	switch v := raw.(type) {
	case []any:
		candidates = v
	case []int64:
		for _, id := range v {
			candidates = append(candidates, id)
		}
	case []int:
		for _, id := range v {
			candidates = append(candidates, id)
		}
	case []string:
		for _, id := range v {
			candidates = append(candidates, id)
		}
	}

	seen := make(map[int64]struct{}, len(candidates))
	out := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		n, ok := toInt(c)
		if !ok {
			continue
		}
		id := absInt(n)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// toBool interprets checkbox-style values. nil and composite values are not booleans.
func toBool(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case float64:
		return v != 0, true
	case int:
		return v != 0, true
	case int64:
		return v != 0, true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return false, false
		}
		return f != 0, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "0", "false", "off", "no":
			return false, true
		}
		return true, true
	}
	return false, false
}

// toInt converts integer-like values. Floats are truncated and strings are read up
// to the first non-digit, so "12px" is 12 while "px" is not an integer.
func toInt(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return clampFloat(v), true
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return clampFloat(f), true
	case string:
		return leadingInt(v)
	}
	return 0, false
}

// leadingInt parses an optional sign followed by at least one digit.
func leadingInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		// Out of range; saturate like a float conversion would.
		if s[0] == '-' {
			return math.MinInt64 + 1, true
		}
		return math.MaxInt64, true
	}
	return n, true
}

func clampFloat(f float64) int64 {
	if f >= math.MaxInt64 {
		return math.MaxInt64
	}
	if f <= math.MinInt64+1 {
		return math.MinInt64 + 1
	}
	return int64(f)
}

func absInt(n int64) int64 {
	if n == math.MinInt64 {
		return math.MaxInt64
	}
	if n < 0 {
		return -n
	}
	return n
}

// clampInt keeps a threshold inside the int range of the target platform.
func clampInt(n int64) int64 {
	return min(n, math.MaxInt32)
}

// sanitizeKey lowercases s and strips everything but [a-z0-9_-].
func sanitizeKey(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
