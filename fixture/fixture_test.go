package fixture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	fx, err := Load(Default)
	require.NoError(t, err)

	assert.Equal(t, Default, fx.Name())
	assert.Contains(t, string(fx.Bytes()), `"field6":"some string"`)
	assert.Equal(t, len(fx.Bytes()), fx.Len())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"field6":"x"}`), 0o644))

	fx, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, fx.Name())
	assert.Equal(t, `{"field6":"x"}`, string(fx.Bytes()))
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	blank := filepath.Join(dir, "blank.json")
	require.NoError(t, os.WriteFile(blank, []byte(" \n\t"), 0o644))

	tests := []struct {
		name   string
		source string
		want   error
	}{
		{"missing file", filepath.Join(dir, "nope.json"), ErrUnreadable},
		{"missing embedded", EmbedPrefix + "nope.json", ErrUnreadable},
		{"empty file", empty, ErrEmpty},
		{"whitespace only", blank, ErrEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.source)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadStdin(t *testing.T) {
	withStdin := func(t *testing.T, input string) {
		t.Helper()

		r, w, err := os.Pipe()
		require.NoError(t, err)

		_, err = w.WriteString(input)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		orig := os.Stdin
		os.Stdin = r
		t.Cleanup(func() {
			os.Stdin = orig
			r.Close()
		})
	}

	t.Run("object", func(t *testing.T) {
		withStdin(t, `{"field6":"piped"}`)

		fx, err := Load("-")
		require.NoError(t, err)

		assert.Equal(t, "stdin", fx.Name())
		assert.Equal(t, `{"field6":"piped"}`, string(fx.Bytes()))
	})

	t.Run("empty", func(t *testing.T) {
		withStdin(t, "")

		_, err := Load("-")
		assert.ErrorIs(t, err, ErrEmpty)
	})
}

func TestRead(t *testing.T) {
	fx, err := Read("inline", strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, "inline", fx.Name())

	_, err = Read("inline", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestNewCopies(t *testing.T) {
	data := []byte(`{"a":1}`)
	fx := New("copy", data)
	data[0] = 'X'

	assert.Equal(t, `{"a":1}`, string(fx.Bytes()))
}

func TestBundled(t *testing.T) {
	names := Bundled()

	assert.Contains(t, names, "simple.json")
	assert.Contains(t, names, "nested.json")

	for _, name := range names {
		_, err := Load(EmbedPrefix + name)
		assert.NoError(t, err, name)
	}
}
