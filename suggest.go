package diffmark

import "context"

// SuggestRequest carries the context a Suggester needs to draft a review
// comment for a selected range.
type SuggestRequest struct {
	Path      string // File the range belongs to
	BeginLine int    // First selected line (unified numbering)
	EndLine   int    // Last selected line
	Excerpt   string // The selected lines, with diff prefixes
}

// Suggester drafts review comment text for a selected range. Implementations
// may call out to a model provider; callers treat failures as "no suggestion"
// and fall back to an empty editor.
type Suggester interface {
	Suggest(ctx context.Context, req SuggestRequest) (string, error)
}
