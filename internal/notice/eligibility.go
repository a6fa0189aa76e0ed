package notice

import (
	"time"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/models"
)

// EligibilityOverride may replace the computed decision for an item.
// It receives the default decision, the item id and the age in seconds and
// returns the final decision. It is consulted only for items that pass the
// enabled, post type, opt-out and category checks, so it can move the age
// boundary in either direction but never re-enable a disabled notice.
type EligibilityOverride func(show bool, itemID int64, ageSeconds int64) bool

// Evaluator decides whether an item should display the notice.
type Evaluator struct {
	override EligibilityOverride
}

// NewEvaluator creates an Evaluator. A nil override keeps every decision as computed.
func NewEvaluator(override EligibilityOverride) *Evaluator {
	return &Evaluator{override: override}
}

// ShouldShow reports whether the notice should be displayed for item at now.
func (e *Evaluator) ShouldShow(s models.Settings, item models.ContentItem, now time.Time) bool {
	return e.Evaluate(s, item, now).Show
}

// Evaluate runs the ordered eligibility checks and returns the decision together
// with the reason that produced it.
//
// The checks, in order: the notice is enabled, the post type is selected, the
// item is not individually disabled, none of its categories is excluded, and
// its age is at least the configured threshold.
func (e *Evaluator) Evaluate(s models.Settings, item models.ContentItem, now time.Time) models.Decision {
	checkTime := CheckTime(s, item)
	d := models.Decision{
		AgeSeconds: now.Unix() - checkTime.Unix(),
		CheckTime:  checkTime,
	}

	switch {
	case !s.Enabled:
		d.Reason = constants.ReasonDisabledGlobally
	case !s.HasPostType(item.PostType):
		d.Reason = constants.ReasonPostType
	case item.Disabled:
		d.Reason = constants.ReasonItemDisabled
	case s.ExcludesAny(item.CategoryIDs):
		d.Reason = constants.ReasonExcludedCategory
	case d.AgeSeconds < ThresholdSeconds(s.ThresholdValue, s.ThresholdUnit):
		d.Reason = constants.ReasonTooRecent
	default:
		d.Show = true
		d.Reason = constants.ReasonEligible
	}

	if d.Reason != constants.ReasonEligible && d.Reason != constants.ReasonTooRecent {
		return d
	}
	if e != nil && e.override != nil {
		if forced := e.override(d.Show, item.ID, d.AgeSeconds); forced != d.Show {
			d.Show = forced
			d.Reason = constants.ReasonOverridden
		}
	}
	return d
}

// CheckTime returns the timestamp the item's age is measured from. The modified
// date is used only when enabled and strictly newer than the publish date.
func CheckTime(s models.Settings, item models.ContentItem) time.Time {
	if s.UseModifiedDate && item.ModifiedAt != nil && item.ModifiedAt.After(item.PublishedAt) {
		return *item.ModifiedAt
	}
	return item.PublishedAt
}

// ThresholdSeconds converts a threshold into seconds. Unknown units count as months.
func ThresholdSeconds(value int, unit string) int64 {
	switch unit {
	case constants.UnitDays:
		return int64(value) * constants.SecondsPerDay
	case constants.UnitYears:
		return int64(value) * constants.SecondsPerYear
	default:
		return int64(value) * constants.SecondsPerMonth
	}
}
