package models

import "time"

// Term is a taxonomy term as supplied by the content repository.
type Term struct {
	ID       int64  `json:"id" validate:"gte=0"`
	Name     string `json:"name"`
	Taxonomy string `json:"taxonomy"`
	URL      string `json:"url"`
}

// ContentItem is a read-only snapshot of an article (or any post type) taken by
// the caller at the start of a request. The notice engine never mutates it.
type ContentItem struct {
	// ID is the content repository identifier
	ID int64 `json:"id" validate:"required,gt=0"`

	// PostType is the content type identifier, e.g. "post" or "page"
	PostType string `json:"post_type" validate:"required"`

	// PublishedAt is the original publish time
	PublishedAt time.Time `json:"published_at" validate:"required"`

	// ModifiedAt is the last modification time, if one was recorded
	ModifiedAt *time.Time `json:"modified_at,omitempty"`

	// Disabled is the per-item opt-out flag
	Disabled bool `json:"disabled"`

	// CategoryIDs are the ids of the categories assigned to the item
	CategoryIDs []int64 `json:"category_ids"`

	// Terms maps a taxonomy name to the item's terms, in repository order
	Terms map[string][]Term `json:"terms"`

	// Hints carries third-party primary-term annotations keyed by meta key,
	// e.g. "_yoast_wpseo_primary_category": "12"
	Hints map[string]string `json:"hints"`
}

// FirstTerm returns the first term assigned in taxonomy, or nil.
func (c ContentItem) FirstTerm(taxonomy string) *Term {
	terms := c.Terms[taxonomy]
	if len(terms) == 0 {
		return nil
	}
	t := terms[0]
	if t.Taxonomy == "" {
		t.Taxonomy = taxonomy
	}
	return &t
}
