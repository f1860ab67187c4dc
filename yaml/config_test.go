package yaml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diffmark/diffmark/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("loads settings from file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yaml")
		content := `context_lines: 5
drafts_path: /tmp/drafts.jsonl
theme: light
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := yaml.Load(path)
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.ContextLines)
		assert.Equal(t, "/tmp/drafts.jsonl", cfg.DraftsPath)
		assert.Equal(t, "light", cfg.Theme)
		// Unset fields fall back to defaults.
		assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	})

	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, yaml.Default(), cfg)
		assert.Equal(t, 3, cfg.ContextLines)
		assert.NotEmpty(t, cfg.DraftsPath)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("context_lines: [not a number"), 0o644))

		_, err := yaml.Load(path)
		assert.Error(t, err)
	})
}
