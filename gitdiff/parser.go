// Package gitdiff parses unified git diffs using the go-gitdiff library.
package gitdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	diffmark "github.com/diffmark/diffmark"
)

// Compile-time interface verification.
var _ diffmark.Parser = (*Parser)(nil)

// Parser parses git diff output into domain types.
type Parser struct{}

// NewParser creates a new git diff parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads unified diff content and returns the parsed result. Content
// before the first file header (commit messages, stat sections) is skipped.
func (p *Parser) Parse(r io.Reader) (*diffmark.Diff, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}

	diff := &diffmark.Diff{Files: make([]diffmark.FileDiff, 0, len(files))}
	for _, f := range files {
		diff.Files = append(diff.Files, convertFile(f))
	}
	return diff, nil
}

func convertFile(f *gitdiff.File) diffmark.FileDiff {
	fd := diffmark.FileDiff{
		Operation: diffmark.FileModified,
		IsBinary:  f.IsBinary,
		OldMode:   f.OldMode,
		NewMode:   f.NewMode,
	}

	if f.OldName != "" {
		fd.OldPath = f.OldName
	}
	if f.NewName != "" {
		fd.NewPath = f.NewName
	}

	switch {
	case f.IsNew:
		fd.Operation = diffmark.FileAdded
	case f.IsDelete:
		fd.Operation = diffmark.FileDeleted
	case f.IsRename:
		fd.Operation = diffmark.FileRenamed
	case f.IsCopy:
		fd.Operation = diffmark.FileCopied
	}

	fd.Hunks = make([]diffmark.Hunk, 0, len(f.TextFragments))
	for _, frag := range f.TextFragments {
		fd.Hunks = append(fd.Hunks, convertFragment(frag))
	}
	return fd
}

func convertFragment(frag *gitdiff.TextFragment) diffmark.Hunk {
	h := diffmark.Hunk{
		OldStart: int(frag.OldPosition),
		OldCount: int(frag.OldLines),
		NewStart: int(frag.NewPosition),
		NewCount: int(frag.NewLines),
		Section:  frag.Comment,
		Lines:    make([]diffmark.Line, 0, len(frag.Lines)),
	}

	oldNum := int(frag.OldPosition)
	newNum := int(frag.NewPosition)
	for _, fl := range frag.Lines {
		line := diffmark.Line{
			Content:   strings.TrimSuffix(fl.Line, "\n"),
			NoNewline: !strings.HasSuffix(fl.Line, "\n"),
		}

		switch fl.Op {
		case gitdiff.OpContext:
			line.Type = diffmark.LineContext
			line.OldLineNum = oldNum
			line.NewLineNum = newNum
			oldNum++
			newNum++
		case gitdiff.OpDelete:
			line.Type = diffmark.LineDeleted
			line.OldLineNum = oldNum
			oldNum++
		case gitdiff.OpAdd:
			line.Type = diffmark.LineAdded
			line.NewLineNum = newNum
			newNum++
		}

		h.Lines = append(h.Lines, line)
	}
	return h
}
