// Package grid renders one file of a diff as a table of physical rows: a
// header row, data rows carrying unified line numbers, and placeholder rows
// standing in for collapsed runs of unchanged context. It implements
// diffmark.Table for the row locator and range selector.
//
// The table deliberately contains nothing else: hunk boundaries are exposed
// through each row's HunkIndex and rendered by the view between rows. Rows
// are only ever removed by collapsing (never inserted above a line), which is
// the structural assumption the row locator's fast path relies on.
package grid

import (
	diffmark "github.com/diffmark/diffmark"
)

// RowKind identifies what a physical row renders as.
type RowKind int

// Row kinds.
const (
	RowFileHeader RowKind = iota
	RowLine
	RowPlaceholder
)

// Row is one physical row of the grid.
type Row struct {
	grid *Grid
	idx  int

	kind     RowKind
	line     int           // unified line number, 0 unless kind == RowLine
	src      diffmark.Line // content, when kind == RowLine
	hunk     int           // owning hunk index, when kind != RowFileHeader
	chunkID  int           // when kind == RowPlaceholder
	selected bool
	comment  bool
}

// Compile-time interface verification.
var (
	_ diffmark.Row   = (*Row)(nil)
	_ diffmark.Table = (*Grid)(nil)
)

// Index returns the row's physical position in the grid.
func (r *Row) Index() int { return r.idx }

// Line returns the unified line number; ok is false for header and
// placeholder rows.
func (r *Row) Line() (int, bool) {
	if r.kind != RowLine {
		return 0, false
	}
	return r.line, true
}

func (r *Row) HasComment() bool     { return r.comment }
func (r *Row) Selected() bool       { return r.selected }
func (r *Row) SetSelected(sel bool) { r.selected = sel }

// Kind returns what the row renders as.
func (r *Row) Kind() RowKind { return r.kind }

// Source returns the diff line backing a RowLine row.
func (r *Row) Source() diffmark.Line { return r.src }

// ChunkID returns the collapsed chunk a placeholder row stands in for, or -1.
func (r *Row) ChunkID() int {
	if r.kind != RowPlaceholder {
		return -1
	}
	return r.chunkID
}

// HiddenLines returns how many lines a placeholder row hides, or 0.
func (r *Row) HiddenLines() int {
	if r.kind != RowPlaceholder {
		return 0
	}
	return len(r.grid.chunks[r.chunkID].rows)
}

// HunkIndex returns the hunk the row belongs to, or -1 for the file header.
func (r *Row) HunkIndex() int {
	if r.kind == RowFileHeader {
		return -1
	}
	return r.hunk
}

// chunk is a collapsed run of context lines, remembered so expansion can
// re-render them.
type chunk struct {
	rows []*Row // the hidden rows, line numbers already assigned
}

// PendingRange is a comment placement that could not be materialized because
// one of its lines is collapsed. It is retried after chunk expansion.
type PendingRange struct {
	BeginLine int
	EndLine   int
}

// Options configure grid construction.
type Options struct {
	// Context is how many context lines to keep visible on each side of a
	// change. Runs of context longer than 2*Context+MinCollapse collapse
	// into a single placeholder row.
	Context int

	// MinCollapse is the smallest run worth hiding; collapsing fewer lines
	// than this saves no space once the placeholder row is counted.
	MinCollapse int
}

// DefaultOptions match git's default three lines of context.
func DefaultOptions() Options {
	return Options{Context: 3, MinCollapse: 2}
}

// Grid is the rendered table for one file. Not safe for concurrent use; all
// access happens on the UI event loop.
type Grid struct {
	file    diffmark.FileDiff
	rows    []*Row
	chunks  map[int]*chunk
	pending []PendingRange
}

// New builds the grid for file. Every hunk line gets a unified line number
// (1-based position within the file's full row sequence, counting hidden
// lines); context runs longer than the collapse threshold are replaced by a
// single placeholder row each.
func New(file diffmark.FileDiff, opts Options) *Grid {
	if opts.Context <= 0 {
		opts = DefaultOptions()
	}
	if opts.MinCollapse < 1 {
		opts.MinCollapse = 1
	}

	g := &Grid{
		file:   file,
		chunks: make(map[int]*chunk),
	}
	g.rows = append(g.rows, &Row{grid: g, kind: RowFileHeader})

	nextChunk := 0
	line := 0
	for hi, h := range file.Hunks {
		var run []*Row
		for _, l := range h.Lines {
			line++
			row := &Row{grid: g, kind: RowLine, line: line, src: l, hunk: hi}
			if l.Type == diffmark.LineContext {
				run = append(run, row)
				continue
			}
			g.appendRun(run, hi, opts, false, &nextChunk)
			run = nil
			g.rows = append(g.rows, row)
		}
		g.appendRun(run, hi, opts, true, &nextChunk)
	}

	g.reindex(0)
	return g
}

// appendRun emits a run of context rows, collapsing its middle when long
// enough. trailing marks a run that ends a hunk, which only keeps leading
// context.
func (g *Grid) appendRun(run []*Row, hunk int, opts Options, trailing bool, nextChunk *int) {
	if len(run) == 0 {
		return
	}

	keepHead := opts.Context
	keepTail := opts.Context
	if trailing {
		keepTail = 0
	}
	hidden := len(run) - keepHead - keepTail
	if hidden < opts.MinCollapse {
		g.rows = append(g.rows, run...)
		return
	}

	g.rows = append(g.rows, run[:keepHead]...)

	id := *nextChunk
	*nextChunk = id + 1
	g.chunks[id] = &chunk{rows: run[keepHead : keepHead+hidden]}
	g.rows = append(g.rows, &Row{grid: g, kind: RowPlaceholder, hunk: hunk, chunkID: id})

	if keepTail > 0 {
		g.rows = append(g.rows, run[len(run)-keepTail:]...)
	}
}

// reindex reassigns physical indexes from position from onward.
func (g *Grid) reindex(from int) {
	for i := from; i < len(g.rows); i++ {
		g.rows[i].idx = i
	}
}

// File returns the file the grid renders.
func (g *Grid) File() diffmark.FileDiff { return g.file }

// Hunk returns the hunk at index hi.
func (g *Grid) Hunk(hi int) diffmark.Hunk { return g.file.Hunks[hi] }

// RowCount returns the number of physical rows currently rendered.
func (g *Grid) RowCount() int { return len(g.rows) }

// HeaderRows returns the number of header rows preceding the first data row.
func (g *Grid) HeaderRows() int { return 1 }

// Row returns the row at physical index i, or nil if out of range.
func (g *Grid) Row(i int) diffmark.Row {
	r := g.RowAt(i)
	if r == nil {
		return nil
	}
	return r
}

// RowAt is Row with the concrete type, for rendering.
func (g *Grid) RowAt(i int) *Row {
	if i < 0 || i >= len(g.rows) {
		return nil
	}
	return g.rows[i]
}

// ExpandChunk replaces the placeholder for chunkID with the rows it hides.
// Physical indexes of everything below shift, so any Row held across this
// call must be re-resolved by line number. Reports whether the chunk existed.
func (g *Grid) ExpandChunk(chunkID int) bool {
	c, ok := g.chunks[chunkID]
	if !ok {
		return false
	}

	at := -1
	for i, r := range g.rows {
		if r.kind == RowPlaceholder && r.chunkID == chunkID {
			at = i
			break
		}
	}
	if at < 0 {
		return false
	}

	expanded := make([]*Row, 0, len(g.rows)+len(c.rows)-1)
	expanded = append(expanded, g.rows[:at]...)
	expanded = append(expanded, c.rows...)
	expanded = append(expanded, g.rows[at+1:]...)
	g.rows = expanded
	g.reindex(at)
	delete(g.chunks, chunkID)
	return true
}

// ExpandAll expands every collapsed chunk.
func (g *Grid) ExpandAll() {
	for id := range g.chunks {
		g.ExpandChunk(id)
	}
}

// Collapsed reports whether any chunk is still collapsed.
func (g *Grid) Collapsed() bool { return len(g.chunks) > 0 }

// FlagComment marks the rendered row for line as carrying a comment.
// Reports false when the line is not currently rendered.
func (g *Grid) FlagComment(line int) bool {
	r := diffmark.FindRow(g, line)
	if r == nil {
		return false
	}
	r.(*Row).comment = true
	return true
}

// UnflagComment clears the comment mark for line.
func (g *Grid) UnflagComment(line int) {
	if r := diffmark.FindRow(g, line); r != nil {
		r.(*Row).comment = false
	}
}

// QueueComment remembers a comment placement whose lines are not currently
// rendered. The same range is only queued once.
func (g *Grid) QueueComment(beginLine, endLine int) {
	for _, p := range g.pending {
		if p.BeginLine == beginLine && p.EndLine == endLine {
			return
		}
	}
	g.pending = append(g.pending, PendingRange{BeginLine: beginLine, EndLine: endLine})
}

// TakePending removes and returns all queued placements. Callers retry each
// one and re-queue those that still fail to resolve, so a placement is
// materialized exactly once.
func (g *Grid) TakePending() []PendingRange {
	p := g.pending
	g.pending = nil
	return p
}
