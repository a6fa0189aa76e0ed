// Package constants provides shared constant values used throughout the application.
//
// The notice_const.go file defines the vocabulary of the notice engine: option and
// flag names, threshold units, positions, template placeholders and the primary-term
// hint conventions of third-party SEO plugins.
package constants

// Persistence keys
const (
	// SettingsOptionName is the name of the single persisted settings record.
	SettingsOptionName = "opn_settings"

	// DisableFlagName is the per-item flag that suppresses the notice.
	DisableFlagName = "_opn_disable"
)

// Threshold Units
const (
	UnitDays   = "days"
	UnitMonths = "months"
	UnitYears  = "years"
)

// Fixed-length calendar approximations, in seconds. Months are 30 days and years
// are 365 days with no leap adjustment.
const (
	SecondsPerDay   = 86400
	SecondsPerMonth = 30 * SecondsPerDay
	SecondsPerYear  = 365 * SecondsPerDay
)

// Positions
const (
	PositionBefore = "before"
	PositionAfter  = "after"
)

// Template Placeholders
const (
	TagTimeAgo      = "{time_ago}"
	TagYears        = "{years}"
	TagMonths       = "{months}"
	TagDays         = "{days}"
	TagDate         = "{date}"
	TagUpdatedDate  = "{updated_date}"
	TagCoverageLink = "{coverage_link}"
	TagTermName     = "{term_name}"
)

// Sample values shown in the settings preview.
const (
	SampleTimeAgo     = "2 years ago"
	SampleYears       = "2"
	SampleMonths      = "25"
	SampleDays        = "760"
	SampleDate        = "March 15, 2024"
	SampleUpdatedDate = "January 10, 2026"
	SampleTermName    = "Local Government"
	SampleTermURL     = "#"
)

// Primary-term hint prefixes; the taxonomy name is appended.
const (
	YoastPrimaryTermPrefix    = "_yoast_wpseo_primary_"
	RankMathPrimaryTermPrefix = "rank_math_primary_"
)

// Notice markup
const (
	NoticeClass     = "opn-notice"
	NoticeAriaLabel = "Old article notice"
)

// Decision reasons reported with every eligibility evaluation.
const (
	ReasonDisabledGlobally = "disabled"
	ReasonPostType         = "post_type_not_selected"
	ReasonItemDisabled     = "item_disabled"
	ReasonExcludedCategory = "excluded_category"
	ReasonTooRecent        = "too_recent"
	ReasonEligible         = "eligible"
	ReasonOverridden       = "overridden"
)
