package notice

import "github.com/microcosm-cc/bluemonday"

// Sanitizer strips markup that is not allowed in post content.
type Sanitizer interface {
	Sanitize(html string) string
}

// SanitizerFunc adapts a function to the Sanitizer interface.
type SanitizerFunc func(html string) string

// Sanitize implements Sanitizer.
func (f SanitizerFunc) Sanitize(html string) string {
	return f(html)
}

// PostContentSanitizer allows the markup an author may use in an article body
// and removes scripts and unsafe URLs.
type PostContentSanitizer struct {
	policy *bluemonday.Policy
}

// NewPostContentSanitizer creates the sanitizer used for notice messages.
func NewPostContentSanitizer() *PostContentSanitizer {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)
	p.AllowAttrs("class").Globally()
	return &PostContentSanitizer{policy: p}
}

// Sanitize implements Sanitizer.
func (s *PostContentSanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
