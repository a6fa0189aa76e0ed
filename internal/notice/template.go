package notice

import (
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/models"
)

// RenderContext carries the values a message template is rendered with.
// Build one with SampleContext or LiveContext.
type RenderContext struct {
	sample       bool
	item         models.ContentItem
	now          time.Time
	term         *models.Term
	coverageLink bool
	linkText     string
	dateLayout   string
	location     *time.Location
}

// SampleContext returns the context used by the settings preview. Every
// placeholder resolves to a fixed illustrative value.
func SampleContext(s models.Settings) RenderContext {
	return RenderContext{
		sample:       true,
		coverageLink: s.CoverageLink,
		linkText:     s.CoverageLinkText,
		dateLayout:   constants.DefaultDateLayout,
		location:     time.UTC,
	}
}

// LiveContext returns the context for a real item. term is the resolved primary
// term and may be nil.
func LiveContext(s models.Settings, item models.ContentItem, now time.Time, term *models.Term) RenderContext {
	return RenderContext{
		item:         item,
		now:          now,
		term:         term,
		coverageLink: s.CoverageLink,
		linkText:     s.CoverageLinkText,
		dateLayout:   constants.DefaultDateLayout,
		location:     time.UTC,
	}
}

// WithDateFormat sets the layout and location {date} and {updated_date} are
// formatted with. Empty values keep the current ones.
func (rc RenderContext) WithDateFormat(layout string, loc *time.Location) RenderContext {
	if layout != "" {
		rc.dateLayout = layout
	}
	if loc != nil {
		rc.location = loc
	}
	return rc
}

// Render substitutes the recognized placeholders of message in a single left to
// right pass. Substituted text is never scanned again, so a value containing
// "{years}" stays literal. Unknown placeholders are left untouched.
func Render(message string, rc RenderContext) string {
	return strings.NewReplacer(rc.replacements()...).Replace(message)
}

// replacements returns placeholder/value pairs for strings.NewReplacer.
func (rc RenderContext) replacements() []string {
	if rc.sample {
		return rc.sampleReplacements()
	}

	published := rc.item.PublishedAt
	age := rc.now.Unix() - published.Unix()

	date := rc.formatDate(published)
	updated := date
	if rc.item.ModifiedAt != nil && !rc.item.ModifiedAt.IsZero() {
		updated = rc.formatDate(*rc.item.ModifiedAt)
	}

	termName, link := "", ""
	if rc.coverageLink && rc.term != nil {
		termName = html.EscapeString(rc.term.Name)
		if rc.term.URL != "" {
			link = rc.anchor(rc.term.URL, termName)
		}
	}

	return []string{
		constants.TagTimeAgo, html.EscapeString(TimeAgo(published, rc.now)),
		constants.TagYears, strconv.FormatInt(floorDiv(age, constants.SecondsPerYear), 10),
		constants.TagMonths, strconv.FormatInt(floorDiv(age, constants.SecondsPerMonth), 10),
		constants.TagDays, strconv.FormatInt(floorDiv(age, constants.SecondsPerDay), 10),
		constants.TagDate, html.EscapeString(date),
		constants.TagUpdatedDate, html.EscapeString(updated),
		constants.TagCoverageLink, link,
		constants.TagTermName, termName,
	}
}

func (rc RenderContext) sampleReplacements() []string {
	termName, link := "", ""
	if rc.coverageLink {
		termName = constants.SampleTermName
		link = rc.anchor(constants.SampleTermURL, termName)
	}
	return []string{
		constants.TagTimeAgo, constants.SampleTimeAgo,
		constants.TagYears, constants.SampleYears,
		constants.TagMonths, constants.SampleMonths,
		constants.TagDays, constants.SampleDays,
		constants.TagDate, constants.SampleDate,
		constants.TagUpdatedDate, constants.SampleUpdatedDate,
		constants.TagCoverageLink, link,
		constants.TagTermName, termName,
	}
}

// anchor builds the coverage link. escapedName must already be HTML-escaped;
// the link text is admin-authored markup and is inserted as is.
func (rc RenderContext) anchor(url, escapedName string) string {
	text := strings.ReplaceAll(rc.linkText, constants.TagTermName, escapedName)
	return `<a href="` + html.EscapeString(url) + `">` + text + `</a>`
}

func (rc RenderContext) formatDate(t time.Time) string {
	return t.In(rc.location).Format(rc.dateLayout)
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
