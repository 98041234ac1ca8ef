package share

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	now := time.Date(2026, 1, 5, 21, 30, 0, 0, time.UTC)
	got := Text("🟠🟠🔵⚫⚫", now, "")
	assert.Equal(t, "📜 The Civil Word — 2026-01-05\n🟠🟠🔵⚫⚫\nthecivilword.github.io", got)

	got = Text("🟠🟠🟠🟠🟠", now, "example.org")
	assert.True(t, strings.HasSuffix(got, "\nexample.org"))
}

func TestCopyUsesPrimary(t *testing.T) {
	var primary, fallback string
	c := &Copier{
		Primary:  func(s string) error { primary = s; return nil },
		Fallback: func(s string) error { fallback = s; return nil },
	}
	require.NoError(t, c.Copy("hello"))
	assert.Equal(t, "hello", primary)
	assert.Empty(t, fallback)
}

func TestCopyFallsBack(t *testing.T) {
	var buf bytes.Buffer
	c := &Copier{
		Primary:  func(string) error { return errors.New("no clipboard utility") },
		Fallback: OSC52(&buf),
	}
	require.NoError(t, c.Copy("hello"))
	assert.Contains(t, buf.String(), "\x1b]52;c;")
	assert.Contains(t, buf.String(), "aGVsbG8=") // base64("hello")
}

func TestCopyReportsFailure(t *testing.T) {
	boom := errors.New("boom")
	c := &Copier{
		Primary:  func(string) error { return boom },
		Fallback: OSC52(nil),
	}
	err := c.Copy("hello")
	assert.ErrorIs(t, err, ErrCopyFailed)
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, (&Copier{}).Copy("x"), ErrCopyFailed)
}
