package chroma

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	diffmark "github.com/diffmark/diffmark"
)

// Compile-time interface verification.
var _ diffmark.LanguageDetector = (*Detector)(nil)

// Detector determines languages from file paths using chroma's lexer
// registry.
type Detector struct{}

// NewDetector creates a new path-based language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// DetectFromPath returns the language name for the given path, or an empty
// string if no lexer matches. Strips the "a/" and "b/" prefixes git puts on
// diff paths.
func (d *Detector) DetectFromPath(path string) string {
	path = strings.TrimPrefix(path, "a/")
	path = strings.TrimPrefix(path, "b/")

	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}
