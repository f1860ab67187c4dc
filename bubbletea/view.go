package bubbletea

import (
	"fmt"
	"strings"

	lip "github.com/charmbracelet/lipgloss"

	diffmark "github.com/diffmark/diffmark"
	"github.com/diffmark/diffmark/grid"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if len(m.layout) == 0 {
		return "no changes\n"
	}

	var b strings.Builder
	page := m.pageSize()
	end := m.offset + page
	if end > len(m.layout) {
		end = len(m.layout)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(m.renderLayoutLine(i))
		b.WriteByte('\n')
	}
	for i := end - m.offset; i < page; i++ {
		b.WriteByte('\n')
	}

	if m.editor.active {
		b.WriteString(m.renderEditor())
	}
	b.WriteString(m.renderStatus())
	return b.String()
}

// renderLayoutLine renders one terminal row of the diff body.
func (m Model) renderLayoutLine(i int) string {
	vl := m.layout[i]
	g := m.grids[vl.file]

	if vl.row < 0 {
		header := g.Hunk(vl.hunk).Header()
		return m.styles.HunkHeader.Render(truncate(header, m.width))
	}

	r := g.RowAt(vl.row)
	switch r.Kind() {
	case grid.RowFileHeader:
		return m.renderFileHeader(g.File())
	case grid.RowPlaceholder:
		return m.renderPlaceholder(vl.file, r)
	default:
		return m.renderLineRow(vl.file, i, r)
	}
}

func (m Model) renderFileHeader(f diffmark.FileDiff) string {
	label := f.Path()
	switch f.Operation {
	case diffmark.FileAdded:
		label += " (new file)"
	case diffmark.FileDeleted:
		label += " (deleted)"
	case diffmark.FileRenamed:
		label = f.OldPath + " -> " + f.NewPath
	case diffmark.FileCopied:
		label = f.OldPath + " => " + f.NewPath + " (copied)"
	}
	if f.IsBinary {
		label += " (binary)"
	}
	return m.styles.FileHeader.Width(m.width).Render(truncate(" "+label, m.width))
}

func (m Model) renderPlaceholder(fi int, r *grid.Row) string {
	pad := strings.Repeat(" ", m.gutterWidth(fi))
	label := fmt.Sprintf("··· %d hidden lines ···", r.HiddenLines())
	return pad + m.styles.Placeholder.Render(label)
}

// renderLineRow renders a data row: a two-cell flag column, the unified line
// number, and the prefixed content.
func (m Model) renderLineRow(fi, layoutIdx int, r *grid.Row) string {
	src := r.Source()
	line, _ := r.Line()

	// Flag column: cursor marker, then comment flag or hover ghost.
	cursor := " "
	if layoutIdx == m.cursor {
		cursor = ">"
	}
	flag := " "
	switch {
	case r.HasComment():
		flag = m.styles.CommentFlag.Render("●")
	case layoutIdx == m.hover:
		flag = m.styles.Ghost.Render("+")
	}

	num := fmt.Sprintf("%*d", m.numWidth(fi), line)
	gutterStyle := m.styles.Gutter
	switch src.Type {
	case diffmark.LineAdded:
		gutterStyle = m.styles.AddedGutter
	case diffmark.LineDeleted:
		gutterStyle = m.styles.DeletedGutter
	}
	if r.Selected() {
		gutterStyle = m.styles.SelectedGutter
	}

	content := linePrefix(src.Type) + expandTabs(src.Content)
	content = truncate(content, m.width-m.gutterWidth(fi))
	return m.styles.Gutter.Render(cursor) + flag + gutterStyle.Render(num) + " " + m.renderContent(fi, r, content)
}

// renderContent styles the line body: selection background wins, changed
// lines use their diff colors, context lines get syntax tokens when a
// tokenizer is configured.
func (m Model) renderContent(fi int, r *grid.Row, content string) string {
	if r.Selected() {
		return m.styles.SelectedLine.Render(content)
	}
	switch r.Source().Type {
	case diffmark.LineAdded:
		return m.styles.Added.Render(content)
	case diffmark.LineDeleted:
		return m.styles.Deleted.Render(content)
	}

	if m.tokenizer != nil && m.languages[fi] != "" && len(content) > 1 {
		if tokens := m.tokenizer.Tokenize(m.languages[fi], content[1:]); tokens != nil {
			var b strings.Builder
			b.WriteString(content[:1])
			for _, tok := range tokens {
				b.WriteString(m.tokenStyle(tok.Style).Render(tok.Text))
			}
			return b.String()
		}
	}
	return m.styles.Context.Render(content)
}

func (m Model) tokenStyle(s diffmark.Style) lip.Style {
	st := m.renderer.NewStyle()
	if s.Foreground != "" {
		st = st.Foreground(lip.Color(s.Foreground))
	}
	if s.Bold {
		st = st.Bold(true)
	}
	return st
}

// renderEditor renders the comment editor overlay below the diff body.
func (m Model) renderEditor() string {
	g := m.grids[m.editor.file]
	title := fmt.Sprintf(" comment on %s:%d", g.File().Path(), m.editor.beginLine)
	if m.editor.endLine > m.editor.beginLine {
		title += fmt.Sprintf("-%d", m.editor.endLine)
	}
	if m.editor.suggesting {
		title += " (suggesting...)"
	}
	hint := " ctrl+s save · ctrl+g suggest · esc cancel"
	return m.styles.FileHeader.Width(m.width).Render(truncate(title, m.width)) + "\n" +
		m.editor.input.View() + "\n" +
		m.styles.Placeholder.Render(hint) + "\n"
}

func (m Model) renderStatus() string {
	left := fmt.Sprintf(" %d/%d", m.cursor+1, len(m.layout))
	if n := len(m.comments); n == 1 {
		left += " · 1 draft"
	} else if n > 1 {
		left += fmt.Sprintf(" · %d drafts", n)
	}
	if m.status != "" {
		left += " · " + m.status
	}
	right := "v select · enter commit · c comment · q quit "
	gap := m.width - lip.Width(left) - lip.Width(right)
	if gap < 1 {
		return m.styles.FileHeader.Width(m.width).Render(truncate(left, m.width))
	}
	return m.styles.FileHeader.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// chromeLines is how many terminal rows the non-body UI occupies.
func chromeLines(m *Model) int {
	n := 1 // status bar
	if m.editor.active {
		n += 2 + editorBodyHeight
	}
	return n
}

// editorBodyHeight matches the textarea height set in newTextarea.
const editorBodyHeight = 5

// numWidth is the gutter digit width for file fi, sized to its largest
// unified line number.
func (m Model) numWidth(fi int) int {
	n := m.grids[fi].File().LineCount()
	w := 1
	for n >= 10 {
		n /= 10
		w++
	}
	if w < 3 {
		w = 3
	}
	return w
}

// gutterWidth is the full gutter width for file fi: cursor cell, flag cell,
// line number, and one separating space.
func (m Model) gutterWidth(fi int) int {
	return 2 + m.numWidth(fi) + 1
}

// expandTabs rewrites tabs as spaces up to the next tab stop so column math
// stays consistent with DisplayWidth.
func expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			next := ((col / tabWidth) + 1) * tabWidth
			b.WriteString(strings.Repeat(" ", next-col))
			col = next
			continue
		}
		b.WriteRune(r)
		col += lip.Width(string(r))
	}
	return b.String()
}

// truncate clips s to width display cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(s) <= width {
		return s
	}
	var b strings.Builder
	col := 0
	for _, r := range s {
		w := lip.Width(string(r))
		if col+w > width {
			break
		}
		b.WriteRune(r)
		col += w
	}
	return b.String()
}
