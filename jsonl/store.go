// Package jsonl persists draft comments as a JSON Lines file, one comment
// per line.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	diffmark "github.com/diffmark/diffmark"
)

// Compile-time interface verification.
var _ diffmark.DraftStore = (*Store)(nil)

// Store reads and writes draft comments at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store backed by the file at path. The file does not
// need to exist yet.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string { return s.path }

// Load returns the stored drafts. A missing file is an empty store, not an
// error; a malformed line is an error naming the line number.
func (s *Store) Load() ([]diffmark.Comment, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return []diffmark.Comment{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open drafts file: %w", err)
	}
	defer f.Close()

	var comments []diffmark.Comment
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var c diffmark.Comment
		if err := json.Unmarshal(line, &c); err != nil {
			return nil, fmt.Errorf("parse drafts file line %d: %w", lineNum, err)
		}
		comments = append(comments, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read drafts file: %w", err)
	}

	return comments, nil
}

// Save replaces the stored drafts with comments. The file is written to a
// temporary sibling and renamed into place so a crash never leaves a
// half-written store.
func (s *Store) Save(comments []diffmark.Comment) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create drafts dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp drafts file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	for _, c := range comments {
		if err := enc.Encode(c); err != nil {
			tmp.Close()
			return fmt.Errorf("encode draft: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("write drafts file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close drafts file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace drafts file: %w", err)
	}
	return nil
}
