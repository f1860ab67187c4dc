// Package bubbletea renders a diff as an interactive terminal table where
// line ranges can be selected and annotated with review comments.
package bubbletea

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	lip "github.com/charmbracelet/lipgloss"

	diffmark "github.com/diffmark/diffmark"
	"github.com/diffmark/diffmark/grid"
	dv "github.com/diffmark/diffmark/lipgloss"
)

// visualLine maps one terminal row to its source: either a grid row or a
// hunk header the view inserts between rows.
type visualLine struct {
	file int
	row  int // grid row index, or -1 for a hunk header
	hunk int // hunk index when row == -1
}

// commitRecorder collects selector callbacks so Update can act on them after
// the selector call returns. Selectors hold it by pointer, so it survives the
// model's value copies.
type commitRecorder struct {
	commits []diffmark.Selection
	opened  []diffmark.Row
}

func (r *commitRecorder) CreateCommentBlock(beginLine, endLine int, beginRow, endRow diffmark.Row) {
	r.commits = append(r.commits, diffmark.Selection{
		BeginRow:  beginRow,
		EndRow:    endRow,
		BeginLine: beginLine,
		EndLine:   endLine,
	})
}

func (r *commitRecorder) OpenCommentAt(row diffmark.Row) {
	r.opened = append(r.opened, row)
}

// hoverGuard implements diffmark.SelectionGuard. While a drag gesture is
// active it suppresses the hover ghost so the browser-style "click to
// comment" affordance never fights the row highlight.
type hoverGuard struct {
	suppressed bool
}

func (g *hoverGuard) Disable() { g.suppressed = true }
func (g *hoverGuard) Enable()  { g.suppressed = false }

// suggestMsg carries an asynchronous suggestion result back to Update.
type suggestMsg struct {
	text string
	err  error
}

// editorState is the comment editor overlay.
type editorState struct {
	active     bool
	file       int
	beginLine  int
	endLine    int
	editing    int // index into comments when editing an existing draft, else -1
	input      textareaModel
	suggesting bool
}

// Model is the bubbletea model for the diff review view.
type Model struct {
	diff  *diffmark.Diff
	grids []*grid.Grid

	selectors []*diffmark.RangeSelector
	recorder  *commitRecorder
	guard     *hoverGuard

	theme     dv.Theme
	renderer  *lip.Renderer
	styles    dv.Styles
	tokenizer diffmark.Tokenizer
	detector  diffmark.LanguageDetector
	store     diffmark.DraftStore
	suggester diffmark.Suggester
	gridOpts  grid.Options

	languages []string // detected language per file, parallel to grids

	layout []visualLine
	width  int
	height int
	offset int
	cursor int

	// hover is the layout index under the mouse while idle, or -1. Only
	// rows without a comment flag show the ghost affordance.
	hover int

	comments []diffmark.Comment
	editor   editorState
	status   string
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithTheme sets the color theme.
func WithTheme(theme dv.Theme) Option {
	return func(m *Model) { m.theme = theme }
}

// WithRenderer sets the lipgloss renderer, primarily so tests can force a
// color profile.
func WithRenderer(r *lip.Renderer) Option {
	return func(m *Model) { m.renderer = r }
}

// WithTokenizer enables syntax highlighting of line content.
func WithTokenizer(t diffmark.Tokenizer) Option {
	return func(m *Model) { m.tokenizer = t }
}

// WithLanguageDetector sets the detector used to pick a lexer per file.
func WithLanguageDetector(d diffmark.LanguageDetector) Option {
	return func(m *Model) { m.detector = d }
}

// WithStore persists drafts whenever one is saved in the editor.
func WithStore(s diffmark.DraftStore) Option {
	return func(m *Model) { m.store = s }
}

// WithSuggester enables AI-drafted comment text in the editor.
func WithSuggester(s diffmark.Suggester) Option {
	return func(m *Model) { m.suggester = s }
}

// WithComments seeds the view with previously saved drafts.
func WithComments(comments []diffmark.Comment) Option {
	return func(m *Model) { m.comments = append([]diffmark.Comment(nil), comments...) }
}

// WithGridOptions controls context collapsing.
func WithGridOptions(opts grid.Options) Option {
	return func(m *Model) { m.gridOpts = opts }
}

// NewModel creates the review view for diff.
func NewModel(diff *diffmark.Diff, opts ...Option) Model {
	m := Model{
		diff:     diff,
		theme:    dv.DefaultTheme(),
		gridOpts: grid.DefaultOptions(),
		hover:    -1,
		width:    80,
		height:   24,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.renderer == nil {
		m.renderer = lip.DefaultRenderer()
	}
	m.styles = m.theme.Styles(m.renderer)

	m.recorder = &commitRecorder{}
	m.guard = &hoverGuard{}
	for _, f := range diff.Files {
		g := grid.New(f, m.gridOpts)
		m.grids = append(m.grids, g)
		m.selectors = append(m.selectors, diffmark.NewRangeSelector(
			g, m.recorder, m.recorder,
			diffmark.WithSelectionGuard(m.guard),
		))
		lang := ""
		if m.detector != nil {
			lang = m.detector.DetectFromPath(f.Path())
		}
		m.languages = append(m.languages, lang)
	}

	m.editor.editing = -1
	m.reflagComments()
	m.rebuildLayout()
	return m
}

// Comments returns the drafts as they currently stand.
func (m Model) Comments() []diffmark.Comment {
	return append([]diffmark.Comment(nil), m.comments...)
}

// LayoutLineCount returns the number of terminal rows the full view spans.
func (m Model) LayoutLineCount() int { return len(m.layout) }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampViewport()
		return m, nil

	case suggestMsg:
		return m.handleSuggestion(msg)

	case tea.KeyMsg:
		if m.editor.active {
			return m.handleEditorKey(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	return m, nil
}

// handleKey processes keys while the list has focus.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		// Gesture cancellation, the touch-cancel path.
		if sel := m.activeSelector(); sel != nil {
			sel.Reset()
		}
		return m, nil

	case "j", "down":
		m.moveCursor(1)
		return m, nil

	case "k", "up":
		m.moveCursor(-1)
		return m, nil

	case "ctrl+d":
		m.moveCursor(m.pageSize() / 2)
		return m, nil

	case "ctrl+u":
		m.moveCursor(-m.pageSize() / 2)
		return m, nil

	case "g":
		m.setCursor(0)
		return m, nil

	case "G":
		m.setCursor(len(m.layout) - 1)
		return m, nil

	case "v":
		if fi, row := m.rowAtLayout(m.cursor); row != nil {
			m.selectors[fi].Begin(row)
		}
		return m, nil

	case "enter":
		return m.handleActivate()

	case "c":
		// Comment on the current line without a drag gesture.
		if fi, row := m.rowAtLayout(m.cursor); row != nil {
			sel := m.selectors[fi]
			sel.Begin(row)
			sel.End(row)
			return m.drainRecorder()
		}
		return m, nil

	case "o":
		// Open the existing comment under the cursor.
		if fi, row := m.rowAtLayout(m.cursor); row != nil && row.HasComment() {
			sel := m.selectors[fi]
			sel.Begin(row)
			sel.End(row)
			return m.drainRecorder()
		}
		return m, nil

	case "x":
		m.expandAll()
		return m.drainRecorder()
	}

	return m, nil
}

// handleActivate commits an active selection, expands a placeholder, or
// starts a single-line comment, depending on what the cursor is on.
func (m Model) handleActivate() (tea.Model, tea.Cmd) {
	fi, row := m.rowAtLayout(m.cursor)

	sel := m.activeSelector()
	if sel != nil && sel.State() == diffmark.SelectorSelecting {
		if row != nil && m.selectors[fi] == sel {
			sel.End(row)
		} else {
			sel.End(nil)
		}
		return m.drainRecorder()
	}

	if row == nil {
		return m, nil
	}
	if gr, ok := row.(*grid.Row); ok && gr.Kind() == grid.RowPlaceholder {
		m.expandChunk(fi, gr.ChunkID())
		return m.drainRecorder()
	}
	return m, nil
}

// handleSuggestion folds an async suggestion result into the editor.
func (m Model) handleSuggestion(msg suggestMsg) (tea.Model, tea.Cmd) {
	m.editor.suggesting = false
	if !m.editor.active {
		return m, nil
	}
	if msg.err != nil {
		m.status = "suggestion failed"
		return m, nil
	}
	if m.editor.input.Value() == "" {
		m.editor.input.SetValue(msg.text)
	}
	return m, nil
}

// drainRecorder applies selector callbacks collected during the last
// selector call: committed ranges open the editor, same-line reselects open
// the existing comment.
func (m Model) drainRecorder() (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, sel := range m.recorder.commits {
		fi := m.fileForRow(sel.BeginRow)
		m = m.openEditor(fi, sel.BeginLine, sel.EndLine, -1)
		cmd = m.editor.input.Focus()
	}
	for _, row := range m.recorder.opened {
		fi := m.fileForRow(row)
		line, ok := row.Line()
		if !ok {
			continue
		}
		if ci := m.commentAt(fi, line); ci >= 0 {
			m = m.openEditor(fi, m.comments[ci].BeginLine, m.comments[ci].EndLine, ci)
			m.editor.input.SetValue(m.comments[ci].Body)
			cmd = m.editor.input.Focus()
		}
	}
	m.recorder.commits = nil
	m.recorder.opened = nil
	return m, cmd
}

// activeSelector returns the selector currently tracking a gesture, or the
// selector for the file under the cursor.
func (m *Model) activeSelector() *diffmark.RangeSelector {
	for _, s := range m.selectors {
		if s.State() == diffmark.SelectorSelecting {
			return s
		}
	}
	if fi, _ := m.rowAtLayout(m.cursor); fi >= 0 {
		return m.selectors[fi]
	}
	if len(m.selectors) > 0 {
		return m.selectors[0]
	}
	return nil
}

// fileForRow finds which grid owns row. Selector callbacks only carry rows,
// not files.
func (m *Model) fileForRow(row diffmark.Row) int {
	if gr, ok := row.(*grid.Row); ok {
		for fi, g := range m.grids {
			if g.RowAt(gr.Index()) == gr {
				return fi
			}
		}
	}
	return 0
}

// commentAt returns the index of the draft covering line in file fi, or -1.
func (m *Model) commentAt(fi, line int) int {
	path := m.grids[fi].File().Path()
	for i, c := range m.comments {
		if c.Path == path && c.Covers(line) {
			return i
		}
	}
	return -1
}

// expandChunk expands one collapsed chunk and retries every queued comment
// placement against the freshly rendered rows. Placements that still fail
// stay queued.
func (m *Model) expandChunk(fi, chunkID int) {
	g := m.grids[fi]
	if !g.ExpandChunk(chunkID) {
		return
	}
	for _, p := range g.TakePending() {
		if !m.selectors[fi].CreateComment(p.BeginLine, p.EndLine) {
			g.QueueComment(p.BeginLine, p.EndLine)
		}
	}
	m.reflagComments()
	m.rebuildLayout()
}

// expandAll expands every collapsed chunk in every file.
func (m *Model) expandAll() {
	for fi, g := range m.grids {
		g.ExpandAll()
		for _, p := range g.TakePending() {
			if !m.selectors[fi].CreateComment(p.BeginLine, p.EndLine) {
				g.QueueComment(p.BeginLine, p.EndLine)
			}
		}
	}
	m.reflagComments()
	m.rebuildLayout()
}

// reflagComments re-applies comment flags to rendered rows. Flags for lines
// still inside collapsed chunks simply stay invisible until expansion.
func (m *Model) reflagComments() {
	for _, g := range m.grids {
		path := g.File().Path()
		for _, c := range m.comments {
			if c.Path == path {
				g.FlagComment(c.BeginLine)
			}
		}
	}
}

// rebuildLayout recomputes the terminal-row mapping. Called after
// construction and after any chunk expansion.
func (m *Model) rebuildLayout() {
	m.layout = m.layout[:0]
	for fi, g := range m.grids {
		lastHunk := -1
		for i := 0; i < g.RowCount(); i++ {
			r := g.RowAt(i)
			if h := r.HunkIndex(); h >= 0 && h != lastHunk {
				m.layout = append(m.layout, visualLine{file: fi, row: -1, hunk: h})
				lastHunk = h
			}
			m.layout = append(m.layout, visualLine{file: fi, row: i})
		}
	}
	m.clampViewport()
}

// rowAtLayout resolves a layout index to its grid row. Returns a nil row for
// hunk headers and out-of-range indexes.
func (m *Model) rowAtLayout(i int) (int, diffmark.Row) {
	if i < 0 || i >= len(m.layout) {
		return -1, nil
	}
	vl := m.layout[i]
	if vl.row < 0 {
		return vl.file, nil
	}
	return vl.file, m.grids[vl.file].Row(vl.row)
}

func (m *Model) moveCursor(delta int) {
	m.setCursor(m.cursor + delta)
}

func (m *Model) setCursor(to int) {
	if to < 0 {
		to = 0
	}
	if to > len(m.layout)-1 {
		to = len(m.layout) - 1
	}
	prev := m.cursor
	m.cursor = to
	m.hover = -1
	m.clampViewport()

	// Keyboard selection: while a gesture is active the cursor acts as the
	// pointer, growing or shrinking the range as it moves.
	if sel := m.activeSelector(); sel != nil && sel.State() == diffmark.SelectorSelecting && to != prev {
		if fi, row := m.rowAtLayout(m.cursor); row != nil {
			m.hoverSelecting(fi, row)
		}
	}
}

// hoverSelecting translates a pointer/cursor arrival at row into Extend or
// Shrink: rows outside the current envelope grow it, rows inside pull the
// nearest end back.
func (m *Model) hoverSelecting(fi int, row diffmark.Row) {
	sel := m.selectors[fi]
	if sel.State() != diffmark.SelectorSelecting {
		return
	}
	s := sel.Selection()
	if s.BeginRow == nil || s.EndRow == nil {
		return
	}
	idx := row.Index()
	switch {
	case idx < s.BeginRow.Index() || idx > s.EndRow.Index():
		sel.Extend(row)
	default:
		sel.Shrink(row)
	}
}

func (m *Model) pageSize() int {
	h := m.height - chromeLines(m)
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) clampViewport() {
	if m.cursor >= len(m.layout) {
		m.cursor = len(m.layout) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	page := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+page {
		m.offset = m.cursor - page + 1
	}
	if max := len(m.layout) - page; m.offset > max {
		m.offset = max
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// openEditor prepares the comment editor overlay for the given range.
func (m Model) openEditor(fi, beginLine, endLine, editing int) Model {
	input := newTextarea(m.width)
	m.editor = editorState{
		active:    true,
		file:      fi,
		beginLine: beginLine,
		endLine:   endLine,
		editing:   editing,
		input:     input,
	}
	return m
}

// saveEditor commits the editor's text as a draft comment.
func (m Model) saveEditor() (tea.Model, tea.Cmd) {
	body := m.editor.input.Value()
	if body == "" {
		return m.closeEditor(), nil
	}

	g := m.grids[m.editor.file]
	c := diffmark.Comment{
		Path:      g.File().Path(),
		BeginLine: m.editor.beginLine,
		EndLine:   m.editor.endLine,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if m.editor.editing >= 0 {
		c.CreatedAt = m.comments[m.editor.editing].CreatedAt
		m.comments[m.editor.editing] = c
	} else {
		m.comments = append(m.comments, c)
	}
	g.FlagComment(c.BeginLine)

	if m.store != nil {
		if err := m.store.Save(m.comments); err != nil {
			m.status = "saving drafts failed"
		}
	}
	return m.closeEditor(), nil
}

func (m Model) closeEditor() Model {
	m.editor = editorState{editing: -1}
	m.clampViewport()
	return m
}

// requestSuggestion asks the suggester to draft the comment body.
func (m Model) requestSuggestion() (tea.Model, tea.Cmd) {
	if m.suggester == nil || m.editor.suggesting {
		return m, nil
	}

	g := m.grids[m.editor.file]
	req := diffmark.SuggestRequest{
		Path:      g.File().Path(),
		BeginLine: m.editor.beginLine,
		EndLine:   m.editor.endLine,
		Excerpt:   m.excerpt(m.editor.file, m.editor.beginLine, m.editor.endLine),
	}
	m.editor.suggesting = true

	suggester := m.suggester
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		text, err := suggester.Suggest(ctx, req)
		return suggestMsg{text: text, err: err}
	}
}

// excerpt collects the rendered content of lines [beginLine, endLine] with
// their diff prefixes, for the suggestion prompt.
func (m *Model) excerpt(fi, beginLine, endLine int) string {
	g := m.grids[fi]
	var sb []byte
	for n := beginLine; n <= endLine; n++ {
		r := diffmark.FindRow(g, n)
		if r == nil {
			continue
		}
		gr := r.(*grid.Row)
		sb = append(sb, linePrefix(gr.Source().Type)...)
		sb = append(sb, gr.Source().Content...)
		sb = append(sb, '\n')
	}
	return string(sb)
}

func linePrefix(t diffmark.LineType) string {
	switch t {
	case diffmark.LineAdded:
		return "+"
	case diffmark.LineDeleted:
		return "-"
	default:
		return " "
	}
}
