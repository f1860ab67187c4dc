// Package lipgloss defines the color themes and styles used by the terminal
// view.
package lipgloss

import (
	lip "github.com/charmbracelet/lipgloss"
)

// Palette is the set of syntax-highlighting colors handed to the tokenizer.
type Palette struct {
	Keyword  string
	String   string
	Number   string
	Comment  string
	Function string
	Builtin  string
	Operator string
	Text     string
}

// Theme holds every color the view renders with. Colors are hex strings.
type Theme struct {
	AddedFg   string
	AddedBg   string
	DeletedFg string
	DeletedBg string
	ContextFg string

	GutterFg         string
	AddedGutterFg    string
	AddedGutterBg    string
	DeletedGutterFg  string
	DeletedGutterBg  string
	SelectedGutterBg string
	SelectedLineBg   string

	GhostFg       string
	CommentFlagFg string
	PlaceholderFg string
	HunkHeaderFg  string
	FileHeaderFg  string
	FileHeaderBg  string
	UIBackground  string

	syntax Palette
}

// Palette returns the theme's syntax colors.
func (t Theme) Palette() Palette { return t.syntax }

// DefaultTheme is a dark theme loosely based on One Dark.
func DefaultTheme() Theme {
	return Theme{
		AddedFg:   "#98c379",
		AddedBg:   "#2b3328",
		DeletedFg: "#e06c75",
		DeletedBg: "#3b2d2f",
		ContextFg: "#abb2bf",

		GutterFg:         "#5c6370",
		AddedGutterFg:    "#98c379",
		AddedGutterBg:    "#39463c",
		DeletedGutterFg:  "#e06c75",
		DeletedGutterBg:  "#4a3739",
		SelectedGutterBg: "#3e4451",
		SelectedLineBg:   "#323842",

		GhostFg:       "#61afef",
		CommentFlagFg: "#e5c07b",
		PlaceholderFg: "#5c6370",
		HunkHeaderFg:  "#56b6c2",
		FileHeaderFg:  "#dcdfe4",
		FileHeaderBg:  "#3e4451",
		UIBackground:  "#282c34",

		syntax: Palette{
			Keyword:  "#c678dd",
			String:   "#98c379",
			Number:   "#d19a66",
			Comment:  "#5c6370",
			Function: "#61afef",
			Builtin:  "#e5c07b",
			Operator: "#56b6c2",
			Text:     "#abb2bf",
		},
	}
}

// LightTheme is a light variant for bright terminals.
func LightTheme() Theme {
	return Theme{
		AddedFg:   "#22863a",
		AddedBg:   "#e6ffed",
		DeletedFg: "#b31d28",
		DeletedBg: "#ffeef0",
		ContextFg: "#24292e",

		GutterFg:         "#959da5",
		AddedGutterFg:    "#22863a",
		AddedGutterBg:    "#cdffd8",
		DeletedGutterFg:  "#b31d28",
		DeletedGutterBg:  "#ffdce0",
		SelectedGutterBg: "#c8e1ff",
		SelectedLineBg:   "#f1f8ff",

		GhostFg:       "#0366d6",
		CommentFlagFg: "#b08800",
		PlaceholderFg: "#959da5",
		HunkHeaderFg:  "#005cc5",
		FileHeaderFg:  "#24292e",
		FileHeaderBg:  "#f6f8fa",
		UIBackground:  "#ffffff",

		syntax: Palette{
			Keyword:  "#d73a49",
			String:   "#032f62",
			Number:   "#005cc5",
			Comment:  "#6a737d",
			Function: "#6f42c1",
			Builtin:  "#e36209",
			Operator: "#d73a49",
			Text:     "#24292e",
		},
	}
}

// TestTheme uses primary colors so tests can assert on exact escape codes.
func TestTheme() Theme {
	return Theme{
		AddedFg:   "#00ff00",
		AddedBg:   "#003300",
		DeletedFg: "#ff0000",
		DeletedBg: "#330000",
		ContextFg: "#ffffff",

		GutterFg:         "#888888",
		AddedGutterFg:    "#00ff00",
		AddedGutterBg:    "#004400",
		DeletedGutterFg:  "#ff0000",
		DeletedGutterBg:  "#440000",
		SelectedGutterBg: "#0000ff",
		SelectedLineBg:   "#000044",

		GhostFg:       "#00ffff",
		CommentFlagFg: "#ffff00",
		PlaceholderFg: "#888888",
		HunkHeaderFg:  "#ff00ff",
		FileHeaderFg:  "#ffffff",
		FileHeaderBg:  "#333333",
		UIBackground:  "#000000",

		syntax: Palette{
			Keyword:  "#ff00ff",
			String:   "#00ff00",
			Number:   "#ffff00",
			Comment:  "#888888",
			Function: "#00ffff",
			Builtin:  "#ff8800",
			Operator: "#0088ff",
			Text:     "#ffffff",
		},
	}
}

// ByName resolves a theme by its config name, falling back to the default.
func ByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	default:
		return DefaultTheme()
	}
}

// Styles is the theme compiled against a renderer, ready to apply.
type Styles struct {
	Added          lip.Style
	Deleted        lip.Style
	Context        lip.Style
	Gutter         lip.Style
	AddedGutter    lip.Style
	DeletedGutter  lip.Style
	SelectedGutter lip.Style
	SelectedLine   lip.Style
	Ghost          lip.Style
	CommentFlag    lip.Style
	Placeholder    lip.Style
	HunkHeader     lip.Style
	FileHeader     lip.Style
}

// Styles compiles the theme using renderer's color profile. A nil renderer
// uses the default renderer.
func (t Theme) Styles(renderer *lip.Renderer) Styles {
	if renderer == nil {
		renderer = lip.DefaultRenderer()
	}
	newStyle := renderer.NewStyle

	return Styles{
		Added:          newStyle().Foreground(lip.Color(t.AddedFg)).Background(lip.Color(t.AddedBg)),
		Deleted:        newStyle().Foreground(lip.Color(t.DeletedFg)).Background(lip.Color(t.DeletedBg)),
		Context:        newStyle().Foreground(lip.Color(t.ContextFg)),
		Gutter:         newStyle().Foreground(lip.Color(t.GutterFg)),
		AddedGutter:    newStyle().Foreground(lip.Color(t.AddedGutterFg)).Background(lip.Color(t.AddedGutterBg)),
		DeletedGutter:  newStyle().Foreground(lip.Color(t.DeletedGutterFg)).Background(lip.Color(t.DeletedGutterBg)),
		SelectedGutter: newStyle().Background(lip.Color(t.SelectedGutterBg)).Bold(true),
		SelectedLine:   newStyle().Background(lip.Color(t.SelectedLineBg)),
		Ghost:          newStyle().Foreground(lip.Color(t.GhostFg)),
		CommentFlag:    newStyle().Foreground(lip.Color(t.CommentFlagFg)).Bold(true),
		Placeholder:    newStyle().Foreground(lip.Color(t.PlaceholderFg)).Italic(true),
		HunkHeader:     newStyle().Foreground(lip.Color(t.HunkHeaderFg)),
		FileHeader:     newStyle().Foreground(lip.Color(t.FileHeaderFg)).Background(lip.Color(t.FileHeaderBg)).Bold(true),
	}
}
