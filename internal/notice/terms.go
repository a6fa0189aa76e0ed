package notice

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/OldNotice_Backend/internal/constants"
	"github.com/yasinhessnawi1/OldNotice_Backend/internal/models"
)

// TermLookup fetches a term by id within a taxonomy. A missing term is reported
// as (nil, nil); errors are treated the same way by the Resolver.
type TermLookup interface {
	TermByID(ctx context.Context, id int64, taxonomy string) (*models.Term, error)
}

// TermOverride may replace the resolved primary term. It receives the resolved
// term (possibly nil), the item id and the taxonomy.
type TermOverride func(term *models.Term, itemID int64, taxonomy string) *models.Term

// HintScheme describes where a third-party plugin records an item's primary term.
// The hint key is Prefix followed by the taxonomy name.
type HintScheme struct {
	Name   string
	Prefix string
}

// DefaultHintSchemes lists the supported schemes in priority order.
var DefaultHintSchemes = []HintScheme{
	{Name: "yoast", Prefix: constants.YoastPrimaryTermPrefix},
	{Name: "rank_math", Prefix: constants.RankMathPrimaryTermPrefix},
}

// Resolver picks the primary term of an item.
type Resolver struct {
	schemes  []HintScheme
	override TermOverride
}

// NewResolver creates a Resolver. With no schemes DefaultHintSchemes is used.
func NewResolver(override TermOverride, schemes ...HintScheme) *Resolver {
	if len(schemes) == 0 {
		schemes = DefaultHintSchemes
	}
	return &Resolver{schemes: schemes, override: override}
}

// Resolve returns the item's primary term in taxonomy, or nil.
//
// Hint schemes are consulted in order and a hint counts only when lookup finds
// the referenced term in the requested taxonomy. Without a usable hint the first
// assigned term is used. The override, when set, gets the final word.
func (r *Resolver) Resolve(ctx context.Context, lookup TermLookup, item models.ContentItem, taxonomy string) *models.Term {
	term := r.fromHints(ctx, lookup, item, taxonomy)
	if term == nil {
		term = item.FirstTerm(taxonomy)
	}
	if r.override != nil {
		term = r.override(term, item.ID, taxonomy)
	}
	return term
}

func (r *Resolver) fromHints(ctx context.Context, lookup TermLookup, item models.ContentItem, taxonomy string) *models.Term {
	if lookup == nil || len(item.Hints) == 0 {
		return nil
	}
	for _, scheme := range r.schemes {
		raw := strings.TrimSpace(item.Hints[scheme.Prefix+taxonomy])
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			continue
		}

		term, err := lookup.TermByID(ctx, id, taxonomy)
		if err != nil {
			log.Debug().
				Err(err).
				Str("scheme", scheme.Name).
				Int64("item_id", item.ID).
				Int64("term_id", id).
				Msg("Primary term lookup failed")
			continue
		}
		if term == nil || (term.Taxonomy != "" && term.Taxonomy != taxonomy) {
			continue
		}
		return term
	}
	return nil
}

type catalogKey struct {
	taxonomy string
	id       int64
}

// CatalogLookup is a TermLookup over a fixed set of terms, typically the terms
// sent along with a render request.
type CatalogLookup struct {
	terms map[catalogKey]models.Term
}

// NewCatalogLookup indexes the item's assigned terms and any extra terms.
// Extra terms without a taxonomy are ignored.
func NewCatalogLookup(item models.ContentItem, extra []models.Term) *CatalogLookup {
	c := &CatalogLookup{terms: make(map[catalogKey]models.Term)}
	for taxonomy, terms := range item.Terms {
		for _, t := range terms {
			if t.Taxonomy == "" {
				t.Taxonomy = taxonomy
			}
			c.terms[catalogKey{taxonomy: t.Taxonomy, id: t.ID}] = t
		}
	}
	for _, t := range extra {
		if t.Taxonomy == "" {
			continue
		}
		c.terms[catalogKey{taxonomy: t.Taxonomy, id: t.ID}] = t
	}
	return c
}

// TermByID implements TermLookup.
func (c *CatalogLookup) TermByID(_ context.Context, id int64, taxonomy string) (*models.Term, error) {
	t, ok := c.terms[catalogKey{taxonomy: taxonomy, id: id}]
	if !ok {
		return nil, nil
	}
	return &t, nil
}
