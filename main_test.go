package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecivilword/civilword/internal/puzzle"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func TestTodayCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PUZZLE_TZ", "UTC")
	t.Setenv("PUZZLE_DB", "")
	t.Setenv("PUZZLE_BANK_FILE", "")

	out := runCLI(t, "today", "--log-level", "error")
	assert.Contains(t, out, "📜 The Civil Word — ")
	assert.Contains(t, out, "  1. ")
	assert.Contains(t, out, "  2. ")
}

func TestImportCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PUZZLE_DB", "")
	t.Setenv("PUZZLE_BANK_FILE", "")

	db := filepath.Join(dir, "puzzles.db")
	out := runCLI(t, "import", "--db", db, "--log-level", "error")
	assert.Contains(t, out, "imported")

	got, err := puzzle.LoadSQLite(context.Background(), db)
	require.NoError(t, err)
	def, err := puzzle.Default()
	require.NoError(t, err)
	assert.Equal(t, def.Records(), got.Records())
}
