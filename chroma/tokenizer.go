// Package chroma provides syntax highlighting using the chroma library.
package chroma

import (
	"errors"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	diffmark "github.com/diffmark/diffmark"
	dv "github.com/diffmark/diffmark/lipgloss"
)

// Compile-time interface verification.
var _ diffmark.Tokenizer = (*Tokenizer)(nil)

// Tokenizer extracts syntax tokens using chroma.
type Tokenizer struct {
	styleFor func(chroma.TokenType) diffmark.Style
}

// NewTokenizer creates a chroma-based tokenizer that maps token types to
// styles with styleFor.
func NewTokenizer(styleFor func(chroma.TokenType) diffmark.Style) (*Tokenizer, error) {
	if styleFor == nil {
		return nil, errors.New("chroma: style function is required")
	}
	return &Tokenizer{styleFor: styleFor}, nil
}

// Tokenize splits source code into syntax-highlighted tokens for the given
// language. Returns nil if the language is not supported or tokenizing
// fails. Returns an empty slice for empty source (valid input, no tokens).
func (t *Tokenizer) Tokenize(language, source string) []diffmark.Token {
	if source == "" {
		return []diffmark.Token{}
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return nil
	}

	// Coalesce merges consecutive tokens of the same type, which keeps the
	// token count down on long lines.
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil
	}

	var tokens []diffmark.Token
	for token := iterator(); token != chroma.EOF; token = iterator() {
		tokens = append(tokens, diffmark.Token{
			Text:  token.Value,
			Style: t.styleFor(token.Type),
		})
	}

	return tokens
}

// StyleFromPalette maps chroma token categories onto a theme palette.
func StyleFromPalette(p dv.Palette) func(chroma.TokenType) diffmark.Style {
	return func(tt chroma.TokenType) diffmark.Style {
		switch {
		case tt.InCategory(chroma.Keyword):
			return diffmark.Style{Foreground: p.Keyword, Bold: true}
		case tt.InCategory(chroma.Comment):
			return diffmark.Style{Foreground: p.Comment}
		case tt.InSubCategory(chroma.LiteralString):
			return diffmark.Style{Foreground: p.String}
		case tt.InSubCategory(chroma.LiteralNumber):
			return diffmark.Style{Foreground: p.Number}
		case tt == chroma.NameBuiltin || tt == chroma.NameBuiltinPseudo:
			return diffmark.Style{Foreground: p.Builtin}
		case tt == chroma.NameFunction || tt == chroma.NameFunctionMagic:
			return diffmark.Style{Foreground: p.Function}
		case tt.InCategory(chroma.Operator):
			return diffmark.Style{Foreground: p.Operator}
		default:
			return diffmark.Style{Foreground: p.Text}
		}
	}
}
