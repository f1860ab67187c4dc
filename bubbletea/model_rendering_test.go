package bubbletea_test

import (
	"bytes"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	lip "github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"

	diffmark "github.com/diffmark/diffmark"
	"github.com/diffmark/diffmark/bubbletea"
)

// trueColorRenderer creates a lipgloss renderer that outputs true colors
// without touching global state.
func trueColorRenderer() *lip.Renderer {
	r := lip.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return r
}

func singleFileDiff(lines ...diffmark.Line) *diffmark.Diff {
	return &diffmark.Diff{
		Files: []diffmark.FileDiff{
			{
				OldPath:   "test.go",
				NewPath:   "test.go",
				Operation: diffmark.FileModified,
				Hunks: []diffmark.Hunk{
					{
						OldStart: 1,
						OldCount: len(lines),
						NewStart: 1,
						NewCount: len(lines),
						Lines:    lines,
					},
				},
			},
		},
	}
}

func quit(t *testing.T, tm *teatest.TestModel) {
	t.Helper()
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))
}

func TestModel_RendersFileHeader(t *testing.T) {
	t.Parallel()

	diff := singleFileDiff(
		diffmark.Line{Type: diffmark.LineContext, Content: "context line"},
	)

	m := bubbletea.NewModel(diff)
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("test.go"))
	})

	quit(t, tm)
}

func TestModel_RendersHunkHeader(t *testing.T) {
	t.Parallel()

	diff := &diffmark.Diff{
		Files: []diffmark.FileDiff{
			{
				OldPath:   "test.go",
				NewPath:   "test.go",
				Operation: diffmark.FileModified,
				Hunks: []diffmark.Hunk{
					{
						OldStart: 10,
						OldCount: 3,
						NewStart: 10,
						NewCount: 5,
						Section:  "func Example",
						Lines: []diffmark.Line{
							{Type: diffmark.LineContext, Content: "context line"},
						},
					},
				},
			},
		},
	}

	m := bubbletea.NewModel(diff)
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("@@ -10,3 +10,5 @@ func Example"))
	})

	quit(t, tm)
}

func TestModel_RendersPrefixedLinesWithNumbers(t *testing.T) {
	t.Parallel()

	diff := singleFileDiff(
		diffmark.Line{Type: diffmark.LineContext, Content: "unchanged"},
		diffmark.Line{Type: diffmark.LineDeleted, Content: "removed"},
		diffmark.Line{Type: diffmark.LineAdded, Content: "added"},
	)

	m := bubbletea.NewModel(diff)
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte(" unchanged")) &&
			bytes.Contains(out, []byte("-removed")) &&
			bytes.Contains(out, []byte("+added")) &&
			bytes.Contains(out, []byte("  3"))
	})

	quit(t, tm)
}

func TestModel_CollapsesLongContextRuns(t *testing.T) {
	t.Parallel()

	lines := []diffmark.Line{{Type: diffmark.LineAdded, Content: "first change"}}
	for i := 0; i < 20; i++ {
		lines = append(lines, diffmark.Line{Type: diffmark.LineContext, Content: "filler"})
	}
	lines = append(lines, diffmark.Line{Type: diffmark.LineAdded, Content: "second change"})
	diff := singleFileDiff(lines...)

	m := bubbletea.NewModel(diff)
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 40))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("14 hidden lines"))
	})

	quit(t, tm)
}

func TestModel_RendersSeededCommentFlag(t *testing.T) {
	t.Parallel()

	diff := singleFileDiff(
		diffmark.Line{Type: diffmark.LineContext, Content: "first"},
		diffmark.Line{Type: diffmark.LineContext, Content: "second"},
	)
	drafts := []diffmark.Comment{
		{Path: "test.go", BeginLine: 2, EndLine: 2, Body: "note"},
	}

	m := bubbletea.NewModel(diff, bubbletea.WithComments(drafts))
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("●")) &&
			bytes.Contains(out, []byte("1 draft"))
	})

	quit(t, tm)
}

func TestModel_TokenizesContextLines(t *testing.T) {
	t.Parallel()

	diff := singleFileDiff(
		diffmark.Line{Type: diffmark.LineContext, Content: "return nil"},
	)

	tok := &tokenizerFunc{fn: func(language, source string) []diffmark.Token {
		if language != "Go" {
			return nil
		}
		return []diffmark.Token{
			{Text: "return", Style: diffmark.Style{Foreground: "#ff00ff", Bold: true}},
			{Text: " nil", Style: diffmark.Style{Foreground: "#ffff00"}},
		}
	}}
	det := &detectorFunc{fn: func(path string) string { return "Go" }}

	m := bubbletea.NewModel(diff,
		bubbletea.WithRenderer(trueColorRenderer()),
		bubbletea.WithTokenizer(tok),
		bubbletea.WithLanguageDetector(det),
	)

	out := m.View()
	if !bytes.Contains([]byte(out), []byte("38;2;255;0;255")) {
		t.Fatalf("expected keyword color in output, got %q", out)
	}
	if !bytes.Contains([]byte(out), []byte("return")) {
		t.Fatalf("expected token text in output, got %q", out)
	}
}

type tokenizerFunc struct {
	fn func(language, source string) []diffmark.Token
}

func (t *tokenizerFunc) Tokenize(language, source string) []diffmark.Token {
	return t.fn(language, source)
}

type detectorFunc struct {
	fn func(path string) string
}

func (d *detectorFunc) DetectFromPath(path string) string { return d.fn(path) }
