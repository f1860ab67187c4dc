package logutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffmark/diffmark/logutil"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("writes JSON lines to the file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "logs", "diffmark.log")
		logger, closer, err := logutil.New("info", path)
		require.NoError(t, err)

		logger.Info().Str("event", "started").Msg("hello")
		closer()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"event":"started"`)
	})

	t.Run("rejects unknown levels", func(t *testing.T) {
		t.Parallel()

		_, _, err := logutil.New("loud", filepath.Join(t.TempDir(), "x.log"))
		assert.Error(t, err)
	})

	t.Run("level filters below threshold", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "diffmark.log")
		logger, closer, err := logutil.New("error", path)
		require.NoError(t, err)

		logger.Debug().Msg("hidden")
		logger.Error().Msg("visible")
		closer()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "hidden")
		assert.Contains(t, string(data), "visible")
	})
}
