package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thecivilword/civilword/internal/game"
	"github.com/thecivilword/civilword/internal/puzzle"
	"github.com/thecivilword/civilword/internal/share"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newModel(t *testing.T, copier *share.Copier) (*Model, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2025, 12, 18, 9, 0, 0, 0, time.UTC)}
	m, err := New(Options{
		Pick: func() (puzzle.Record, error) {
			return puzzle.Record{Solution: "amble", Clues: [puzzle.ClueCount]string{"walk", "slowly", "no hurry", "a gentle pace", "stroll"}}, nil
		},
		Now:      clock.Now,
		Debounce: time.Second,
		Copier:   copier,
	})
	require.NoError(t, err)
	return m, clock
}

func typeAndEnter(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
}

func TestNewFailsWithoutPuzzle(t *testing.T) {
	_, err := New(Options{Pick: func() (puzzle.Record, error) { return puzzle.Record{}, puzzle.ErrEmptyBank }})
	assert.ErrorIs(t, err, puzzle.ErrEmptyBank)
}

func TestTypingAGuess(t *testing.T) {
	m, _ := newModel(t, nil)

	typeAndEnter(m, "walk")
	assert.Equal(t, 1, m.Game().Attempts)
	assert.Equal(t, "", m.input.Value())

	v := m.View()
	assert.Contains(t, v, "🟠⚫⚫⚫⚫")
	assert.Contains(t, v, "no hurry")
	assert.Contains(t, v, "walk")
}

func TestMalformedGuessStaysInInput(t *testing.T) {
	m, _ := newModel(t, nil)

	typeAndEnter(m, "amb1e")
	assert.Equal(t, 0, m.Game().Attempts)
	assert.Equal(t, "amb1e", m.input.Value())
}

func TestDebounce(t *testing.T) {
	m, clock := newModel(t, nil)

	typeAndEnter(m, "walk")
	typeAndEnter(m, "roam")
	assert.Equal(t, 1, m.Game().Attempts, "second enter inside the window is dropped")

	clock.t = clock.t.Add(1100 * time.Millisecond)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 2, m.Game().Attempts)
}

func TestWinAndShare(t *testing.T) {
	var copied string
	m, _ := newModel(t, &share.Copier{Primary: func(s string) error { copied = s; return nil }})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, cmd, "nothing to share mid-game")

	typeAndEnter(m, "AMBLE")
	require.Equal(t, game.StatusWon, m.Game().Status)
	assert.Contains(t, m.View(), "- amble -")

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.NotNil(t, cmd)
	assert.Equal(t, "📜 The Civil Word — 2025-12-18\n🔵⚫⚫⚫⚫\nthecivilword.github.io", copied)
	assert.Contains(t, m.View(), "Copied result")

	m.Update(clearNoticeMsg{})
	assert.NotContains(t, m.View(), "Copied result")
}

func TestShareFailureShowsAlert(t *testing.T) {
	fail := func(string) error { return errors.New("nope") }
	m, _ := newModel(t, &share.Copier{Primary: fail, Fallback: fail})

	typeAndEnter(m, "amble")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Contains(t, m.View(), "Could not copy result to clipboard.")
	assert.Equal(t, game.StatusWon, m.Game().Status)
}

func TestNewGameResets(t *testing.T) {
	m, _ := newModel(t, nil)
	typeAndEnter(m, "walk")
	first := m.Game().ID

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	assert.NotEqual(t, first, m.Game().ID)
	assert.Equal(t, 0, m.Game().Attempts)
}

func TestNewGameResetsDebounce(t *testing.T) {
	m, _ := newModel(t, nil)
	typeAndEnter(m, "walk")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	typeAndEnter(m, "amble")
	assert.Equal(t, 1, m.Game().Attempts, "first guess of a new game is not debounced")
	assert.Equal(t, game.StatusWon, m.Game().Status)
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
