package diffmark

import "context"

// Viewer displays a diff for interactive review.
type Viewer interface {
	// View displays the diff with any existing draft comments and blocks
	// until the user exits. It returns the drafts as they stand at exit,
	// including unchanged ones that were passed in.
	View(ctx context.Context, diff *Diff, drafts []Comment) ([]Comment, error)
}
