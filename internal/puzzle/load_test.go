package puzzle

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBank(t *testing.T) {
	b, err := Default()
	require.NoError(t, err)
	require.Greater(t, b.Len(), 1)
	for i := 0; i < b.Len(); i++ {
		assert.NoError(t, b.At(i).Validate())
		for n := 1; n <= ClueCount; n++ {
			assert.NotEmpty(t, b.At(i).Clue(n), "puzzle %d clue %d", i, n)
		}
	}
}

func TestParseYAMLForms(t *testing.T) {
	data := []byte(`
- [Amble, a, b, c, d, e]
- solution: stroll
  clues: [v, w, x, y, z]
`)
	b, err := Parse(data, FormatYAML)
	require.NoError(t, err)
	require.Equal(t, 2, b.Len())
	assert.Equal(t, "amble", b.At(0).Solution)
	assert.Equal(t, "e", b.At(0).Clue(5))
	assert.Equal(t, "stroll", b.At(1).Solution)
	assert.Equal(t, "v", b.At(1).Clue(1))
}

func TestParseJSONForms(t *testing.T) {
	data := []byte(`[
		["amble", "a", "b", "c", "d", "e"],
		{"solution": "stroll", "clues": ["v", "w", "x", "y", "z"]}
	]`)
	b, err := Parse(data, FormatJSON)
	require.NoError(t, err)
	require.Equal(t, 2, b.Len())
	assert.Equal(t, "stroll", b.At(1).Solution)
	assert.Equal(t, "z", b.At(1).Clue(5))
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`[]`), FormatJSON)
	assert.ErrorIs(t, err, ErrEmptyBank)

	_, err = Parse([]byte(`- [amble, a, b]`), FormatYAML)
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = Parse([]byte(`- just a string`), FormatYAML)
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = Parse([]byte(`x`), Format("toml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "bank.yml")
	require.NoError(t, os.WriteFile(yml, []byte("- [veto, a, b, c, d, e]\n"), 0o644))
	b, err := LoadFile(yml)
	require.NoError(t, err)
	assert.Equal(t, "veto", b.At(0).Solution)

	txt := filepath.Join(dir, "bank.txt")
	require.NoError(t, os.WriteFile(txt, []byte("veto"), 0o644))
	_, err = LoadFile(txt)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "bank.json")
	require.NoError(t, os.WriteFile(file, []byte(`[["census","a","b","c","d","e"]]`), 0o644))

	ctx := context.Background()

	b, err := Load(ctx, Source{})
	require.NoError(t, err)
	def, err := Default()
	require.NoError(t, err)
	assert.Equal(t, def.Len(), b.Len())

	b, err = Load(ctx, Source{File: file})
	require.NoError(t, err)
	assert.Equal(t, "census", b.At(0).Solution)

	db := filepath.Join(dir, "bank.db")
	seed, err := NewBank([]Record{{Solution: "docket"}})
	require.NoError(t, err)
	require.NoError(t, SaveSQLite(ctx, db, seed))

	b, err = Load(ctx, Source{DB: db, File: file})
	require.NoError(t, err)
	assert.Equal(t, "docket", b.At(0).Solution)
}
