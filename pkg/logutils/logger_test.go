package logutils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("writes json lines to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "reportbox.log")

		l, closer, err := New("info", path)
		require.NoError(t, err)

		l.Debug().Msg("hidden")
		l.Info().Str("component", "test").Msg("hello")
		closer()

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 1)

		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
		assert.Equal(t, "hello", entry["message"])
		assert.Equal(t, "test", entry["component"])
	})

	t.Run("appends across runs", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reportbox.log")

		for range 2 {
			l, closer, err := New("info", path)
			require.NoError(t, err)
			l.Info().Msg("run")
			closer()
		}

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(string(data), "\n"))
	})

	t.Run("invalid level", func(t *testing.T) {
		_, _, err := New("loud", "")
		require.Error(t, err)
	})

	t.Run("empty file discards", func(t *testing.T) {
		l, closer, err := New("debug", "")
		require.NoError(t, err)
		defer closer()
		l.Info().Msg("nowhere")
	})
}
