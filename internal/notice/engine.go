package notice

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/models"
)

// NoticeHTMLOverride may replace the final notice markup for an item.
type NoticeHTMLOverride func(html string, itemID int64, s models.Settings) string

// Options configures an Engine. Every field is optional.
type Options struct {
	// EligibilityOverride is consulted after every eligibility decision
	EligibilityOverride EligibilityOverride

	// TermOverride is applied to the resolved primary term
	TermOverride TermOverride

	// NoticeHTMLOverride is applied to the wrapped notice markup
	NoticeHTMLOverride NoticeHTMLOverride

	// Sanitizer cleans the rendered message; defaults to NewPostContentSanitizer
	Sanitizer Sanitizer

	// HintSchemes replaces DefaultHintSchemes
	HintSchemes []HintScheme

	// DateLayout and Location control {date} and {updated_date}
	DateLayout string
	Location   *time.Location
}

// Engine builds notices. It holds no mutable state and is safe for concurrent use.
type Engine struct {
	evaluator    *Evaluator
	resolver     *Resolver
	sanitizer    Sanitizer
	htmlOverride NoticeHTMLOverride
	dateLayout   string
	location     *time.Location
}

// NewEngine creates an Engine from opts.
func NewEngine(opts Options) *Engine {
	sanitizer := opts.Sanitizer
	if sanitizer == nil {
		sanitizer = NewPostContentSanitizer()
	}
	layout := opts.DateLayout
	if layout == "" {
		layout = constants.DefaultDateLayout
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{
		evaluator:    NewEvaluator(opts.EligibilityOverride),
		resolver:     NewResolver(opts.TermOverride, opts.HintSchemes...),
		sanitizer:    sanitizer,
		htmlOverride: opts.NoticeHTMLOverride,
		dateLayout:   layout,
		location:     loc,
	}
}

// Evaluate returns the eligibility decision for item.
func (e *Engine) Evaluate(s models.Settings, item models.ContentItem, now time.Time) models.Decision {
	return e.evaluator.Evaluate(s, item, now)
}

// Sanitize passes html through the engine's sanitizer.
func (e *Engine) Sanitize(html string) string {
	return e.sanitizer.Sanitize(html)
}

// Build evaluates item and, when eligible, renders its notice. The notice is nil
// whenever the decision is not to show. lookup resolves primary-term hints and
// may be nil, in which case only assigned terms are considered.
func (e *Engine) Build(ctx context.Context, s models.Settings, item models.ContentItem, now time.Time, lookup TermLookup) (*models.RenderedNotice, models.Decision) {
	decision := e.evaluator.Evaluate(s, item, now)
	if !decision.Show {
		log.Debug().
			Int64("item_id", item.ID).
			Str("reason", decision.Reason).
			Msg("Notice not shown")
		return nil, decision
	}

	var term *models.Term
	if s.CoverageLink {
		term = e.resolver.Resolve(ctx, lookup, item, s.CoverageTaxonomy)
	}

	rc := LiveContext(s, item, now, term).WithDateFormat(e.dateLayout, e.location)
	message := e.sanitizer.Sanitize(Render(s.Message, rc))

	html := wrap(message)
	if e.htmlOverride != nil {
		html = e.htmlOverride(html, item.ID, s)
	}

	return &models.RenderedNotice{
		Message:    message,
		HTML:       html,
		Position:   s.Position,
		AgeSeconds: decision.AgeSeconds,
	}, decision
}

// Preview renders the message with sample values, as shown next to the
// settings form.
func (e *Engine) Preview(s models.Settings) models.Preview {
	message := e.sanitizer.Sanitize(Render(s.Message, SampleContext(s)))
	return models.Preview{
		Message:    message,
		HTML:       wrap(message),
		Stylesheet: Stylesheet(s),
	}
}

// Insert places the notice before or after content. A nil notice returns
// content unchanged.
func Insert(content string, n *models.RenderedNotice) string {
	if n == nil {
		return content
	}
	if n.Position == constants.PositionAfter {
		return content + n.HTML
	}
	return n.HTML + content
}

func wrap(body string) string {
	var b strings.Builder
	b.WriteString(`<div class="`)
	b.WriteString(constants.NoticeClass)
	b.WriteString(`" role="note" aria-label="`)
	b.WriteString(constants.NoticeAriaLabel)
	b.WriteString(`">`)
	b.WriteString(body)
	b.WriteString(`</div>`)
	return b.String()
}
