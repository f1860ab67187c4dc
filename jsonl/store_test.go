package jsonl_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	diffmark "github.com/diffmark/diffmark"
	"github.com/diffmark/diffmark/jsonl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Load(t *testing.T) {
	t.Parallel()

	t.Run("loads valid drafts file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "drafts.jsonl")
		content := `{"path":"main.go","begin_line":4,"end_line":7,"body":"rename this","created_at":"2026-08-29T10:00:00Z"}
{"path":"util.go","begin_line":12,"end_line":12,"body":"off by one?","created_at":"2026-08-29T10:05:00Z"}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		store := jsonl.NewStore(path)
		comments, err := store.Load()

		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "main.go", comments[0].Path)
		assert.Equal(t, 4, comments[0].BeginLine)
		assert.Equal(t, 7, comments[0].EndLine)
		assert.Equal(t, "off by one?", comments[1].Body)
	})

	t.Run("missing file is an empty store", func(t *testing.T) {
		t.Parallel()

		store := jsonl.NewStore(filepath.Join(t.TempDir(), "absent.jsonl"))
		comments, err := store.Load()

		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("returns error naming the malformed line", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "bad.jsonl")
		content := `{"path":"a.go","begin_line":1,"end_line":1,"body":"ok"}
not valid json
{"path":"b.go","begin_line":2,"end_line":2,"body":"ok"}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		store := jsonl.NewStore(path)
		_, err := store.Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("skips blank lines", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "gaps.jsonl")
		content := "{\"path\":\"a.go\",\"begin_line\":1,\"end_line\":1}\n\n{\"path\":\"b.go\",\"begin_line\":2,\"end_line\":2}\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		store := jsonl.NewStore(path)
		comments, err := store.Load()

		require.NoError(t, err)
		assert.Len(t, comments, 2)
	})
}

func TestStore_SaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "drafts.jsonl")
	store := jsonl.NewStore(path)

	drafts := []diffmark.Comment{
		{Path: "main.go", BeginLine: 3, EndLine: 9, Body: "extract a helper", CreatedAt: time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)},
		{Path: "main.go", BeginLine: 15, EndLine: 15, Body: "typo", CreatedAt: time.Date(2026, 8, 29, 9, 1, 0, 0, time.UTC)},
	}
	require.NoError(t, store.Save(drafts))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, drafts, loaded)

	// Save replaces, never appends.
	require.NoError(t, store.Save(drafts[:1]))
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}
