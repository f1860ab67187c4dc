package diffmark

import "time"

// Comment is a draft review comment attached to a line range of one file.
// Lines are in the unified numbering space of the rendered diff table.
type Comment struct {
	Path      string    `json:"path"`
	BeginLine int       `json:"begin_line"`
	EndLine   int       `json:"end_line"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Covers reports whether the comment's range includes line.
func (c Comment) Covers(line int) bool {
	return line >= c.BeginLine && line <= c.EndLine
}

// DraftStore persists draft comments between review sessions.
type DraftStore interface {
	// Load returns the previously saved drafts. A store that has never been
	// written returns an empty slice and no error.
	Load() ([]Comment, error)

	// Save replaces the stored drafts with comments.
	Save(comments []Comment) error
}
