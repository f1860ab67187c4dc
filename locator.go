package diffmark

// FindRow locates the rendered row whose line number equals line. It returns
// nil when the line is inside a collapsed chunk, outside the table entirely,
// or the table is malformed; absence is an expected condition, not an error.
// Callers that need the row anyway queue the request and retry after the
// relevant chunk has been expanded.
func FindRow(t Table, line int) Row {
	return FindRowBetween(t, line, 0, t.RowCount())
}

// FindRowBetween is FindRow restricted to the physical index range
// [low, high). Callers use the bounds to skip regions already known not to
// contain the line, e.g. when resolving the second endpoint of a range whose
// first endpoint was already found.
//
// The strategy assumes collapsing only ever removes contiguous line ranges:
// a row's physical index can never exceed HeaderRows()+line-1, and inside a
// dense region the index offset between two rows equals their line offset.
func FindRowBetween(t Table, line, low, high int) Row {
	if line <= 0 {
		return nil
	}
	if low < 0 {
		low = 0
	}
	if n := t.RowCount(); high > n {
		high = n
	}
	if low >= high {
		return nil
	}

	// Fast path: nothing collapsed above this line puts it exactly at the
	// header offset.
	guess := t.HeaderRows() + line - 1
	if guess >= low && guess < high {
		if r := t.Row(guess); r != nil {
			if v, ok := r.Line(); ok && v == line {
				return r
			}
		}
		// Rows above can only have been removed, never added, so the guess
		// is an upper bound on where the line can sit.
		high = guess + 1
	}

	for low < high {
		prevLow, prevHigh := low, high

		mid := low + (high-low)/2
		found, value := probeLine(t, mid, low, high)
		if found == nil {
			// No numbered row anywhere in the interval.
			return nil
		}
		if value == line {
			return found
		}

		// Inside a dense region the offset between indexes equals the
		// offset between line numbers, so try the extrapolated index
		// directly before narrowing further.
		if hypo := found.Index() + (line - value); hypo >= low && hypo < high {
			if r := t.Row(hypo); r != nil {
				if v, ok := r.Line(); ok && v == line {
					return r
				}
			}
		}

		if value > line {
			high = found.Index()
		} else {
			low = found.Index() + 1
		}

		// A stuck interval means the table violates our ordering
		// assumptions; bail out rather than loop forever.
		if low == prevLow && high == prevHigh {
			return nil
		}
	}

	return nil
}

// probeLine returns the numbered row nearest to mid within [low, high),
// checking mid first and then alternating outward one step at a time. This
// steps over placeholder and header rows interleaved with data rows. Returns
// nil if no row in the interval carries a line number.
func probeLine(t Table, mid, low, high int) (Row, int) {
	for off := 0; ; off++ {
		below, above := mid-off, mid+off
		if below < low && above >= high {
			return nil, 0
		}
		if below >= low {
			if r := t.Row(below); r != nil {
				if v, ok := r.Line(); ok {
					return r, v
				}
			}
		}
		if off > 0 && above < high {
			if r := t.Row(above); r != nil {
				if v, ok := r.Line(); ok {
					return r, v
				}
			}
		}
	}
}
