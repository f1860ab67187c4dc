package bubbletea

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// textareaModel wraps bubbles' textarea so the editor state stays value-copy
// friendly inside the model.
type textareaModel struct {
	ta textarea.Model
}

func newTextarea(width int) textareaModel {
	ta := textarea.New()
	ta.Placeholder = "Leave a comment..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetWidth(editorWidth(width))
	ta.SetHeight(5)
	return textareaModel{ta: ta}
}

func editorWidth(viewWidth int) int {
	w := viewWidth - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (t textareaModel) Value() string         { return t.ta.Value() }
func (t *textareaModel) SetValue(body string) { t.ta.SetValue(body) }
func (t *textareaModel) Focus() tea.Cmd       { return t.ta.Focus() }
func (t textareaModel) View() string          { return t.ta.View() }

func (t textareaModel) Update(msg tea.Msg) (textareaModel, tea.Cmd) {
	var cmd tea.Cmd
	t.ta, cmd = t.ta.Update(msg)
	return t, cmd
}

// handleEditorKey processes keys while the comment editor has focus.
func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.closeEditor(), nil

	case "ctrl+s":
		return m.saveEditor()

	case "ctrl+g":
		return m.requestSuggestion()

	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.editor.input, cmd = m.editor.input.Update(msg)
	return m, cmd
}
