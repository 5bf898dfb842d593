package iojson

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string `json:"name"`
}

func TestWriteLines(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLines(&buf, []item{{Name: "a"}, {Name: "b"}}))
	assert.Equal(t, "{\"name\":\"a\"}\n{\"name\":\"b\"}\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteLines(&buf, []item{}))
	assert.Empty(t, buf.String())
}

func TestWriteWith(t *testing.T) {
	var out, errOut bytes.Buffer
	require.NoError(t, WriteWith(&out, &errOut, item{Name: "a"}))
	assert.JSONEq(t, `{"name":"a"}`, out.String())
	assert.Empty(t, errOut.String())

	out.Reset()
	require.NoError(t, WriteWith(&out, &errOut, math.Inf(1)))
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "json_error")
}

func TestFileReader(t *testing.T) {
	t.Run("reads named file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "in.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"name":"a"}]`), 0o644))

		var fr FileReader[[]item]
		fr.Set(path)
		assert.True(t, fr.Provided())

		got, err := fr.Read()
		require.NoError(t, err)
		assert.Equal(t, []item{{Name: "a"}}, got)
	})

	t.Run("reads piped stdin", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stdin.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name":"piped"}`), 0o644))
		f, err := os.Open(path)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()

		fr := FileReader[item]{Stdin: f}
		assert.True(t, fr.Provided())

		got, err := fr.Read()
		require.NoError(t, err)
		assert.Equal(t, "piped", got.Name)
	})

	t.Run("missing file", func(t *testing.T) {
		var fr FileReader[item]
		fr.Set(filepath.Join(t.TempDir(), "missing.json"))
		_, err := fr.Read()
		require.Error(t, err)
	})
}
