package bubbletea_test

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	diffmark "github.com/diffmark/diffmark"
	"github.com/diffmark/diffmark/bubbletea"
	dv "github.com/diffmark/diffmark/lipgloss"
	"github.com/diffmark/diffmark/mock"
)

// update drives the model through a sequence of messages, keeping the value
// semantics bubbletea models rely on.
func update(t *testing.T, m bubbletea.Model, msgs ...tea.Msg) (bubbletea.Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(bubbletea.Model)
		require.True(t, ok, "Update must return a bubbletea.Model")
	}
	return m, cmd
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+g":
		return tea.KeyMsg{Type: tea.KeyCtrlG}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// Layout for singleFileDiff: terminal row 0 is the file header, row 1 the
// hunk header, rows 2.. the numbered lines. Line n sits at terminal row n+1.

func TestModel_MouseDragOpensEditorForRange(t *testing.T) {
	t.Parallel()

	diff := singleFileDiff(
		diffmark.Line{Type: diffmark.LineContext, Content: "one"},
		diffmark.Line{Type: diffmark.LineAdded, Content: "two"},
		diffmark.Line{Type: diffmark.LineAdded, Content: "three"},
	)
	m := bubbletea.NewModel(diff)

	m, _ = update(t, m, press(1, 2), motion(1, 4), release(1, 4))

	out := m.View()
	assert.Contains(t, out, "comment on test.go:1-3")
}

func TestModel_DragHighlightsSelectedRows(t *testing.T) {
	t.Parallel()

	diff := singleFileDiff(
		diffmark.Line{Type: diffmark.LineContext, Content: "one"},
		diffmark.Line{Type: diffmark.LineContext, Content: "two"},
	)
	m := bubbletea.NewModel(diff,
		bubbletea.WithTheme(dv.TestTheme()),
		bubbletea.WithRenderer(trueColorRenderer()),
	)

	m, _ = update(t, m, press(1, 2), motion(1, 3))

	// TestTheme's selected gutter background is pure blue.
	assert.Contains(t, m.View(), "48;2;0;0;255")

	m, _ = update(t, m, key("esc"))
	assert.NotContains(t, m.View(), "48;2;0;0;255")
}

func TestModel_KeyboardSelectionCommitsRange(t *testing.T) {
	t.Parallel()

	diff := singleFileDiff(
		diffmark.Line{Type: diffmark.LineContext, Content: "one"},
		diffmark.Line{Type: diffmark.LineContext, Content: "two"},
	)
	m := bubbletea.NewModel(diff)

	// Move onto line 1, anchor, extend down one line, commit.
	m, _ = update(t, m, key("j"), key("j"), key("v"), key("j"), key("enter"))

	assert.Contains(t, m.View(), "comment on test.go:1-2")
}

func TestModel_SaveCommentPersistsDraft(t *testing.T) {
	t.Parallel()

	diff := singleFileDiff(
		diffmark.Line{Type: diffmark.LineAdded, Content: "one"},
	)
	var saved []diffmark.Comment
	store := &mock.DraftStore{
		SaveFn: func(comments []diffmark.Comment) error {
			saved = comments
			return nil
		},
	}
	m := bubbletea.NewModel(diff, bubbletea.WithStore(store))

	m, _ = update(t, m, key("j"), key("j"), key("c"))
	require.Contains(t, m.View(), "comment on test.go:1")

	m, _ = update(t, m, key("needs a guard"), key("ctrl+s"))

	comments := m.Comments()
	require.Len(t, comments, 1)
	assert.Equal(t, "test.go", comments[0].Path)
	assert.Equal(t, 1, comments[0].BeginLine)
	assert.Equal(t, 1, comments[0].EndLine)
	assert.Equal(t, "needs a guard", comments[0].Body)
	assert.False(t, comments[0].CreatedAt.IsZero())

	require.Len(t, saved, 1)
	assert.Contains(t, m.View(), "●")
}

func TestModel_SameLineReselectOpensExistingComment(t *testing.T) {
	t.Parallel()

	diff := singleFileDiff(
		diffmark.Line{Type: diffmark.LineContext, Content: "one"},
		diffmark.Line{Type: diffmark.LineContext, Content: "two"},
	)
	drafts := []diffmark.Comment{
		{Path: "test.go", BeginLine: 1, EndLine: 1, Body: "already noted"},
	}
	m := bubbletea.NewModel(diff, bubbletea.WithComments(drafts))

	m, _ = update(t, m, press(1, 2), release(1, 2))

	out := m.View()
	assert.Contains(t, out, "comment on test.go:1")
	assert.Contains(t, out, "already noted")

	// Saving the reopened draft must replace it, not duplicate it.
	m, _ = update(t, m, key("ctrl+s"))
	comments := m.Comments()
	require.Len(t, comments, 1)
	assert.Equal(t, "already noted", comments[0].Body)
}

func TestModel_MultiLineDragOverCommentedRowStillCreates(t *testing.T) {
	t.Parallel()

	diff := singleFileDiff(
		diffmark.Line{Type: diffmark.LineContext, Content: "one"},
		diffmark.Line{Type: diffmark.LineContext, Content: "two"},
	)
	drafts := []diffmark.Comment{
		{Path: "test.go", BeginLine: 1, EndLine: 1, Body: "existing"},
	}
	m := bubbletea.NewModel(diff, bubbletea.WithComments(drafts))

	m, _ = update(t, m, press(1, 2), motion(1, 3), release(1, 3))

	out := m.View()
	assert.Contains(t, out, "comment on test.go:1-2")
	assert.NotContains(t, out, "existing")
}

func TestModel_EnterOnPlaceholderExpandsChunk(t *testing.T) {
	t.Parallel()

	lines := []diffmark.Line{{Type: diffmark.LineAdded, Content: "first change"}}
	for i := 0; i < 20; i++ {
		lines = append(lines, diffmark.Line{Type: diffmark.LineContext, Content: "filler"})
	}
	lines = append(lines, diffmark.Line{Type: diffmark.LineAdded, Content: "second change"})
	m := bubbletea.NewModel(singleFileDiff(lines...))

	collapsed := m.LayoutLineCount()
	require.Contains(t, m.View(), "hidden lines")

	// Header, hunk header, change, three context lines, then the
	// placeholder at terminal row 6.
	m, _ = update(t, m, press(1, 6))

	assert.Greater(t, m.LayoutLineCount(), collapsed)
	assert.NotContains(t, m.View(), "hidden lines")
}

func TestModel_HoverGhostOnIdleGutter(t *testing.T) {
	t.Parallel()

	diff := singleFileDiff(
		diffmark.Line{Type: diffmark.LineContext, Content: "one"},
	)
	m := bubbletea.NewModel(diff,
		bubbletea.WithTheme(dv.TestTheme()),
		bubbletea.WithRenderer(trueColorRenderer()),
	)

	m, _ = update(t, m, motion(1, 2))
	// TestTheme's ghost foreground is pure cyan.
	assert.Contains(t, m.View(), "38;2;0;255;255")

	// The ghost is suppressed while a gesture is active.
	m, _ = update(t, m, press(1, 2), motion(1, 2))
	assert.NotContains(t, m.View(), "38;2;0;255;255")
}

func TestModel_EmptyDiffIgnoresInput(t *testing.T) {
	t.Parallel()

	m := bubbletea.NewModel(&diffmark.Diff{})

	// Every binding and gesture must be a no-op when there is nothing to
	// select, not a crash.
	m, _ = update(t, m,
		key("esc"),
		key("j"), key("k"), key("g"), key("G"),
		tea.KeyMsg{Type: tea.KeyCtrlD},
		key("v"), key("enter"), key("c"), key("o"), key("x"),
		press(1, 2), motion(1, 3), release(1, 3),
	)

	assert.Contains(t, m.View(), "no changes")
	assert.Empty(t, m.Comments())
}

func TestModel_KeyboardMovementClearsHoverGhost(t *testing.T) {
	t.Parallel()

	diff := singleFileDiff(
		diffmark.Line{Type: diffmark.LineContext, Content: "one"},
		diffmark.Line{Type: diffmark.LineContext, Content: "two"},
	)
	m := bubbletea.NewModel(diff,
		bubbletea.WithTheme(dv.TestTheme()),
		bubbletea.WithRenderer(trueColorRenderer()),
	)

	m, _ = update(t, m, motion(1, 2))
	require.Contains(t, m.View(), "38;2;0;255;255")

	// The ghost tracks the pointer, not the cursor; moving the cursor
	// invalidates it.
	m, _ = update(t, m, key("j"))
	assert.NotContains(t, m.View(), "38;2;0;255;255")
}

func TestModel_WheelScrollClearsHoverGhost(t *testing.T) {
	t.Parallel()

	var lines []diffmark.Line
	for i := 0; i < 30; i++ {
		lines = append(lines, diffmark.Line{Type: diffmark.LineContext, Content: "line"})
	}
	m := bubbletea.NewModel(singleFileDiff(lines...),
		bubbletea.WithTheme(dv.TestTheme()),
		bubbletea.WithRenderer(trueColorRenderer()),
	)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})

	m, _ = update(t, m, motion(1, 2))
	require.Contains(t, m.View(), "38;2;0;255;255")

	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.NotContains(t, m.View(), "38;2;0;255;255")
}

func TestModel_SuggestionFillsEmptyEditor(t *testing.T) {
	t.Parallel()

	diff := singleFileDiff(
		diffmark.Line{Type: diffmark.LineAdded, Content: "val := risky()"},
	)
	var gotReq diffmark.SuggestRequest
	suggester := &mock.Suggester{
		SuggestFn: func(ctx context.Context, req diffmark.SuggestRequest) (string, error) {
			gotReq = req
			return "Consider handling the error here.", nil
		},
	}
	m := bubbletea.NewModel(diff, bubbletea.WithSuggester(suggester))

	m, _ = update(t, m, key("j"), key("j"), key("c"))
	require.Contains(t, m.View(), "comment on test.go:1")

	m, cmd := update(t, m, key("ctrl+g"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	assert.Equal(t, "test.go", gotReq.Path)
	assert.Equal(t, 1, gotReq.BeginLine)
	assert.True(t, strings.Contains(gotReq.Excerpt, "val := risky()"))
	assert.Contains(t, m.View(), "Consider handling the error here.")
}

func TestModel_WheelScrollsViewport(t *testing.T) {
	t.Parallel()

	var lines []diffmark.Line
	for i := 0; i < 30; i++ {
		lines = append(lines, diffmark.Line{Type: diffmark.LineAdded, Content: "line"})
	}
	m := bubbletea.NewModel(singleFileDiff(lines...))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 10})

	before := m.View()
	require.Contains(t, before, "test.go")

	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	after := m.View()

	assert.NotEqual(t, before, after)
	// The file header scrolls off the top.
	assert.NotContains(t, after, "test.go")
}
