package bubbletea

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	diffmark "github.com/diffmark/diffmark"
)

// Viewer runs the review UI as a full-screen terminal program.
type Viewer struct {
	opts []Option
}

var _ diffmark.Viewer = (*Viewer)(nil)

// NewViewer creates a Viewer. The options are applied to the model on every
// View call, on top of the drafts passed in.
func NewViewer(opts ...Option) *Viewer {
	return &Viewer{opts: opts}
}

// View implements diffmark.Viewer.
func (v *Viewer) View(ctx context.Context, diff *diffmark.Diff, drafts []diffmark.Comment) ([]diffmark.Comment, error) {
	opts := append([]Option{WithComments(drafts)}, v.opts...)
	model := NewModel(diff, opts...)

	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	final, err := p.Run()
	if err != nil {
		return drafts, fmt.Errorf("running diff view: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return drafts, fmt.Errorf("unexpected final model type %T", final)
	}
	return m.Comments(), nil
}
