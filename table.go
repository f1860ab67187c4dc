package diffmark

// Row is one physical row of a rendered diff table. Rows that represent a
// real source line report their unified line number through Line; placeholder
// rows standing in for collapsed chunks, and header rows, report ok=false.
//
// Row values are only valid against the table state they were obtained from.
// Expanding a collapsed chunk renumbers physical indexes, so callers that
// hold a Row across an expansion must re-resolve it by line number.
type Row interface {
	// Index returns the row's physical position in the table, 0-based and
	// contiguous across header, data and placeholder rows.
	Index() int

	// Line returns the unified line number carried by the row. ok is false
	// for header rows, placeholder rows, and malformed rows.
	Line() (line int, ok bool)

	// HasComment reports whether the row already carries a comment flag.
	HasComment() bool

	// Selected reports whether the row carries the visual selection mark.
	Selected() bool

	// SetSelected sets or clears the visual selection mark.
	SetSelected(selected bool)
}

// Table is an ordered, indexable sequence of rendered rows. Implementations
// are not safe for concurrent mutation; all access happens on the UI event
// loop.
type Table interface {
	// RowCount returns the number of physical rows currently rendered.
	RowCount() int

	// Row returns the row at physical index i, or nil if i is out of range.
	Row(i int) Row

	// HeaderRows returns the number of header rows preceding the first data
	// row. In a fully dense table, line n sits at index HeaderRows()+n-1.
	HeaderRows() int
}
