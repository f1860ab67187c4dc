// Package mock provides hand-written test doubles for the diffmark
// interfaces, plus an in-memory Table for exercising the row locator and
// range selector without a rendered view.
package mock

import (
	"context"
	"io"

	diffmark "github.com/diffmark/diffmark"
)

// Compile-time interface verification.
var (
	_ diffmark.Table            = (*Table)(nil)
	_ diffmark.Row              = (*Row)(nil)
	_ diffmark.Parser           = (*Parser)(nil)
	_ diffmark.Tokenizer        = (*Tokenizer)(nil)
	_ diffmark.LanguageDetector = (*LanguageDetector)(nil)
	_ diffmark.DraftStore       = (*DraftStore)(nil)
	_ diffmark.Suggester        = (*Suggester)(nil)
	_ diffmark.Viewer           = (*Viewer)(nil)
	_ diffmark.CommentCreator   = (*CommentCreator)(nil)
	_ diffmark.CommentOpener    = (*CommentOpener)(nil)
	_ diffmark.SelectionGuard   = (*SelectionGuard)(nil)
)

// Row is an in-memory diffmark.Row.
type Row struct {
	Idx     int
	Num     int  // unified line number; ignored unless HasNum
	HasNum  bool // false for placeholder/header rows
	Comment bool
	Sel     bool
}

func (r *Row) Index() int           { return r.Idx }
func (r *Row) Line() (int, bool)    { return r.Num, r.HasNum }
func (r *Row) HasComment() bool     { return r.Comment }
func (r *Row) Selected() bool       { return r.Sel }
func (r *Row) SetSelected(sel bool) { r.Sel = sel }

// Table is an in-memory diffmark.Table backed by a slice of Rows.
type Table struct {
	Rows   []*Row
	Header int
}

// NewTable builds a table with header leading header rows followed by one
// data row per entry in lines. A line value of 0 produces a placeholder row.
func NewTable(header int, lines ...int) *Table {
	t := &Table{Header: header}
	for i := 0; i < header; i++ {
		t.Rows = append(t.Rows, &Row{Idx: i})
	}
	for _, n := range lines {
		t.Rows = append(t.Rows, &Row{Idx: len(t.Rows), Num: n, HasNum: n != 0})
	}
	return t
}

func (t *Table) RowCount() int   { return len(t.Rows) }
func (t *Table) HeaderRows() int { return t.Header }

func (t *Table) Row(i int) diffmark.Row {
	if i < 0 || i >= len(t.Rows) {
		return nil
	}
	return t.Rows[i]
}

// RowForLine returns the table's row carrying line, or nil. It scans
// linearly; tests use it to assert against FindRow results.
func (t *Table) RowForLine(line int) *Row {
	for _, r := range t.Rows {
		if r.HasNum && r.Num == line {
			return r
		}
	}
	return nil
}

// SelectedLines returns the line numbers of all rows carrying the selection
// mark, in physical order.
func (t *Table) SelectedLines() []int {
	var lines []int
	for _, r := range t.Rows {
		if r.Sel && r.HasNum {
			lines = append(lines, r.Num)
		}
	}
	return lines
}

// Parser implements diffmark.Parser for testing.
type Parser struct {
	ParseFn func(r io.Reader) (*diffmark.Diff, error)
}

func (p *Parser) Parse(r io.Reader) (*diffmark.Diff, error) {
	return p.ParseFn(r)
}

// Tokenizer implements diffmark.Tokenizer for testing.
type Tokenizer struct {
	TokenizeFn func(language, source string) []diffmark.Token
}

func (m *Tokenizer) Tokenize(language, source string) []diffmark.Token {
	return m.TokenizeFn(language, source)
}

// LanguageDetector implements diffmark.LanguageDetector for testing.
type LanguageDetector struct {
	DetectFromPathFn func(path string) string
}

func (m *LanguageDetector) DetectFromPath(path string) string {
	return m.DetectFromPathFn(path)
}

// DraftStore implements diffmark.DraftStore for testing.
type DraftStore struct {
	LoadFn func() ([]diffmark.Comment, error)
	SaveFn func(comments []diffmark.Comment) error
}

func (m *DraftStore) Load() ([]diffmark.Comment, error) {
	return m.LoadFn()
}

func (m *DraftStore) Save(comments []diffmark.Comment) error {
	return m.SaveFn(comments)
}

// Suggester implements diffmark.Suggester for testing.
type Suggester struct {
	SuggestFn func(ctx context.Context, req diffmark.SuggestRequest) (string, error)
}

func (m *Suggester) Suggest(ctx context.Context, req diffmark.SuggestRequest) (string, error) {
	return m.SuggestFn(ctx, req)
}

// Viewer implements diffmark.Viewer for testing.
type Viewer struct {
	ViewFn func(ctx context.Context, diff *diffmark.Diff, drafts []diffmark.Comment) ([]diffmark.Comment, error)
}

func (m *Viewer) View(ctx context.Context, diff *diffmark.Diff, drafts []diffmark.Comment) ([]diffmark.Comment, error) {
	return m.ViewFn(ctx, diff, drafts)
}

// CommentCreator implements diffmark.CommentCreator, recording every commit.
type CommentCreator struct {
	Commits []CommitCall
}

// CommitCall records one CreateCommentBlock invocation.
type CommitCall struct {
	BeginLine, EndLine int
	BeginRow, EndRow   diffmark.Row
}

func (m *CommentCreator) CreateCommentBlock(beginLine, endLine int, beginRow, endRow diffmark.Row) {
	m.Commits = append(m.Commits, CommitCall{beginLine, endLine, beginRow, endRow})
}

// CommentOpener implements diffmark.CommentOpener, recording every opened row.
type CommentOpener struct {
	Opened []diffmark.Row
}

func (m *CommentOpener) OpenCommentAt(row diffmark.Row) {
	m.Opened = append(m.Opened, row)
}

// SelectionGuard implements diffmark.SelectionGuard, counting transitions.
type SelectionGuard struct {
	Disabled int
	Enabled  int
}

func (m *SelectionGuard) Disable() { m.Disabled++ }
func (m *SelectionGuard) Enable()  { m.Enabled++ }
