package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"

	diffmark "github.com/diffmark/diffmark"
	"github.com/diffmark/diffmark/grid"
)

// handleMouse translates pointer events into selector gestures: press in the
// gutter anchors a range, motion extends or shrinks it, release commits it.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.editor.active {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scroll(-3)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scroll(3)
		return m, nil
	}

	li := m.offset + msg.Y
	fi, row := m.rowAtLayout(li)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		m.hover = -1
		if row == nil {
			return m, nil
		}
		if gr, ok := row.(*grid.Row); ok && gr.Kind() == grid.RowPlaceholder {
			m.expandChunk(fi, gr.ChunkID())
			return m.drainRecorder()
		}
		if msg.X < m.gutterWidth(fi) {
			m.cursor = li
			m.selectors[fi].Begin(row)
		}
		return m, nil

	case tea.MouseActionMotion:
		if sel := m.activeSelector(); sel != nil && sel.State() == diffmark.SelectorSelecting {
			if row != nil && m.selectors[fi] == sel {
				m.hoverSelecting(fi, row)
			}
			return m, nil
		}
		// Idle hover: show the comment affordance on numbered gutter cells
		// that do not already carry a flag.
		m.hover = -1
		if m.guard.suppressed || row == nil || row.HasComment() {
			return m, nil
		}
		if _, ok := row.Line(); ok && msg.X < m.gutterWidth(fi) {
			m.hover = li
		}
		return m, nil

	case tea.MouseActionRelease:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		sel := m.activeSelector()
		if sel == nil || sel.State() != diffmark.SelectorSelecting {
			return m, nil
		}
		if row != nil && m.selectors[fi] == sel {
			sel.End(row)
		} else {
			sel.End(nil)
		}
		return m.drainRecorder()
	}

	return m, nil
}

// scroll moves the viewport without moving the cursor off-screen. The hover
// ghost points at a layout index, which scrolling invalidates.
func (m *Model) scroll(delta int) {
	m.hover = -1
	m.offset += delta
	page := m.pageSize()
	if max := len(m.layout) - page; m.offset > max {
		m.offset = max
	}
	if m.offset < 0 {
		m.offset = 0
	}
	if m.cursor < m.offset {
		m.cursor = m.offset
	}
	if m.cursor >= m.offset+page {
		m.cursor = m.offset + page - 1
	}
}
