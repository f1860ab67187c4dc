package bubbletea

import lip "github.com/charmbracelet/lipgloss"

// tabWidth is the terminal tab stop interval.
const tabWidth = 8

// DisplayWidth returns the display width of s in terminal cells. Tabs expand
// to the next tab stop, which lipgloss.Width counts as zero cells.
func DisplayWidth(s string) int {
	col := 0
	for _, r := range s {
		if r == '\t' {
			col = ((col / tabWidth) + 1) * tabWidth
			continue
		}
		col += lip.Width(string(r))
	}
	return col
}
