package diffmark

// CommentCreator materializes a comment editor for a committed line range.
// Persisting and displaying the comment is entirely the creator's concern.
type CommentCreator interface {
	CreateCommentBlock(beginLine, endLine int, beginRow, endRow Row)
}

// CommentOpener opens the existing comment already attached to a row. Called
// instead of CommentCreator when a single-line gesture lands on a row that
// carries a comment flag.
type CommentOpener interface {
	OpenCommentAt(row Row)
}

// SelectionGuard suppresses the host surface's own incidental selection
// behavior for the duration of a drag gesture, so dragging highlights rows
// instead of text. Implementations must tolerate unbalanced Enable calls.
type SelectionGuard interface {
	Disable()
	Enable()
}

// SelectorState identifies the gesture phase of a RangeSelector.
type SelectorState int

// Selector states.
const (
	SelectorIdle SelectorState = iota
	SelectorSelecting
)

// Selection holds the bounds of an in-progress range gesture. Begin is always
// the upper end: BeginLine <= EndLine whenever a gesture is active, and the
// rows correspond exactly to the rows whose line numbers equal those bounds.
// All fields are zero when no gesture is active.
type Selection struct {
	BeginRow  Row
	EndRow    Row
	BeginLine int
	EndLine   int
}

// RangeSelector tracks one multi-row selection gesture over one table. A
// selector is bound to its table for the table's lifetime; construct one per
// rendered view and discard it when the view unbinds.
//
// The selector is driven by explicit method calls (Begin, Extend, Shrink,
// End, Reset) from a thin event-adapter layer and has no knowledge of any
// event-dispatch mechanism. All methods tolerate out-of-order input: calls
// invalid in the current state are ignored rather than treated as errors,
// since they originate from legitimate-but-unexpected input sequences.
type RangeSelector struct {
	table   Table
	creator CommentCreator
	opener  CommentOpener
	guard   SelectionGuard

	state    SelectorState
	sel      Selection
	lastSeen int // physical index of the most recently hovered row
}

// SelectorOption configures a RangeSelector.
type SelectorOption func(*RangeSelector)

// WithSelectionGuard sets the guard used to suspend incidental selection
// while a gesture is active.
func WithSelectionGuard(g SelectionGuard) SelectorOption {
	return func(s *RangeSelector) { s.guard = g }
}

// NewRangeSelector creates a selector bound to table. creator and opener may
// be nil, in which case commits and same-row reopens are dropped.
func NewRangeSelector(table Table, creator CommentCreator, opener CommentOpener, opts ...SelectorOption) *RangeSelector {
	s := &RangeSelector{
		table:   table,
		creator: creator,
		opener:  opener,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current gesture phase.
func (s *RangeSelector) State() SelectorState { return s.state }

// Selection returns a copy of the current selection bounds.
func (s *RangeSelector) Selection() Selection { return s.sel }

// LastSeenIndex returns the physical index of the most recently hovered row,
// or -1 when no gesture is active.
func (s *RangeSelector) LastSeenIndex() int {
	if s.state != SelectorSelecting {
		return -1
	}
	return s.lastSeen
}

// Begin starts a gesture anchored at row. Ignored while a gesture is already
// active (stray events, fast double-clicks) and for rows without a line
// number.
func (s *RangeSelector) Begin(row Row) {
	if s.state != SelectorIdle || row == nil {
		return
	}
	line, ok := row.Line()
	if !ok {
		return
	}

	s.sel = Selection{
		BeginRow:  row,
		EndRow:    row,
		BeginLine: line,
		EndLine:   line,
	}
	s.lastSeen = row.Index()
	row.SetSelected(true)
	if s.guard != nil {
		s.guard.Disable()
	}
	s.state = SelectorSelecting
}

// Extend grows the selection to include row. The row's line number is
// compared against BeginLine, not the current EndLine, so dragging back past
// the anchor flips which end moves. Rows between the previously hovered row
// and this one are marked selected incrementally.
func (s *RangeSelector) Extend(row Row) {
	if s.state != SelectorSelecting || row == nil {
		return
	}
	line, ok := row.Line()
	if !ok {
		return
	}

	if line < s.sel.BeginLine {
		s.sel.BeginRow = row
		s.sel.BeginLine = line
	} else if line > s.sel.BeginLine {
		s.sel.EndRow = row
		s.sel.EndLine = line
	}

	s.markRange(s.lastSeen, row.Index(), true)
	s.lastSeen = row.Index()
}

// Shrink pulls the selection boundary back to row, unmarking the rows beyond
// it, mirroring Extend's up/down logic. row stays selected and becomes the
// new boundary on whichever end the pointer is retreating from.
func (s *RangeSelector) Shrink(row Row) {
	if s.state != SelectorSelecting || row == nil {
		return
	}
	line, ok := row.Line()
	if !ok {
		return
	}

	idx := row.Index()
	switch {
	case idx < s.lastSeen && line >= s.sel.BeginLine:
		// Retreating upward: the bottom end shrinks.
		s.markRange(idx+1, s.lastSeen, false)
		s.sel.EndRow = row
		s.sel.EndLine = line
	case idx > s.lastSeen && line <= s.sel.EndLine:
		// Retreating downward from above the anchor: the top end shrinks.
		s.markRange(s.lastSeen, idx-1, false)
		s.sel.BeginRow = row
		s.sel.BeginLine = line
	default:
		return
	}
	s.lastSeen = idx
}

// End commits the gesture. A single-line selection over a row that already
// carries a comment flag reopens that comment instead of creating a
// duplicate; anything else invokes the creator with the committed bounds.
// Always finishes by resetting the selector.
func (s *RangeSelector) End(row Row) {
	if s.state != SelectorSelecting {
		return
	}
	s.Extend(row)

	sel := s.sel
	if sel.BeginLine == sel.EndLine && sel.BeginRow != nil && sel.BeginRow.HasComment() {
		if s.opener != nil {
			s.opener.OpenCommentAt(sel.BeginRow)
		}
	} else if s.creator != nil {
		s.creator.CreateCommentBlock(sel.BeginLine, sel.EndLine, sel.BeginRow, sel.EndRow)
	}

	s.Reset()
}

// Reset clears the selection marks and all gesture state. Safe to call from
// any state; resetting an idle selector is a no-op.
func (s *RangeSelector) Reset() {
	if s.sel.BeginRow != nil && s.sel.EndRow != nil {
		s.markRange(s.sel.BeginRow.Index(), s.sel.EndRow.Index(), false)
	}
	if s.state == SelectorSelecting && s.guard != nil {
		s.guard.Enable()
	}
	s.sel = Selection{}
	s.lastSeen = 0
	s.state = SelectorIdle
}

// CreateComment is the programmatic entry point used when a range was
// requested before its chunk was expanded. Both endpoints are re-resolved by
// line number against the current table; stale row references must never be
// reused across an expansion. Returns true if the range resolved and was
// committed, false if either endpoint is still not rendered (the caller keeps
// the request queued). The selector is reset either way.
func (s *RangeSelector) CreateComment(beginLine, endLine int) bool {
	if s.state == SelectorSelecting {
		return false
	}
	defer s.Reset()

	if endLine < beginLine {
		beginLine, endLine = endLine, beginLine
	}

	begin := FindRow(s.table, beginLine)
	if begin == nil {
		return false
	}
	end := begin
	if endLine > beginLine {
		// The end row can only sit below the begin row, so skip everything
		// above it.
		end = FindRowBetween(s.table, endLine, begin.Index(), s.table.RowCount())
		if end == nil {
			return false
		}
	}

	s.sel = Selection{
		BeginRow:  begin,
		EndRow:    end,
		BeginLine: beginLine,
		EndLine:   endLine,
	}
	s.lastSeen = end.Index()
	s.state = SelectorSelecting
	s.End(end)
	return true
}

// markRange sets the selection mark on every numbered row between physical
// indexes a and b inclusive, in either order.
func (s *RangeSelector) markRange(a, b int, selected bool) {
	if a > b {
		a, b = b, a
	}
	for i := a; i <= b; i++ {
		r := s.table.Row(i)
		if r == nil {
			continue
		}
		if _, ok := r.Line(); ok {
			r.SetSelected(selected)
		}
	}
}
