// internal/game/engine.go
//
// Core state machine for a single daily puzzle.
// Responsibilities:
//   - Create new games from a puzzle record (the only constructor).
//   - Validate guesses (non-empty, ASCII letters only) and count attempts.
//   - Track state transitions: playing → won/lost; terminal states ignore input.
//   - Reveal hints on misses: clue 3, clue 4, solution length, clue 5.
//
// Malformed input is not an error. It is dropped and reported as Ignored,
// without consuming an attempt.

package game

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/thecivilword/civilword/internal/puzzle"
)

// revealOrder lists the hints uncovered by the 1st..4th miss.
var revealOrder = []Slot{SlotClue3, SlotClue4, SlotLength, SlotClue5}

// New constructs a fresh game for rec.
func New(rec puzzle.Record) *Game {
	return &Game{
		ID:       uuid.NewString(),
		Puzzle:   rec,
		Target:   strings.ToLower(rec.Solution),
		Attempts: 0,
		Status:   StatusPlaying,
		History:  []string{},
	}
}

// Playing reports whether guesses are still accepted.
func (g *Game) Playing() bool { return g.Status == StatusPlaying }

// Submit applies one raw guess.
//
// Validation:
//   - Game must still be playing.
//   - Input must be non-empty and consist of A–Z / a–z only (no trimming).
//
// Any valid guess consumes an attempt. A match wins; the fifth miss loses;
// other misses reveal the next hint.
func (g *Game) Submit(raw string) Result {
	if !g.Playing() || raw == "" || !isAlpha(raw) {
		return g.result(Ignored)
	}

	guess := strings.ToLower(raw)
	g.Attempts++

	if guess == g.Target {
		g.Status = StatusWon
		return g.result(Won)
	}

	g.History = append(g.History, guess)
	if g.Attempts >= MaxAttempts {
		g.Status = StatusLost
		return g.result(Lost)
	}

	res := g.result(Incorrect)
	slot := revealOrder[g.Attempts-1]
	res.Reveal = &Reveal{Slot: slot, Text: g.slotText(slot)}
	return res
}

func (g *Game) result(o Outcome) Result {
	return Result{Outcome: o, Attempts: g.Attempts, Indicator: g.Indicator()}
}

// Indicator renders the attempt indicator for the current state.
func (g *Game) Indicator() string {
	return Indicator(g.Attempts, g.Status == StatusWon)
}

// Misses counts incorrect guesses.
func (g *Game) Misses() int {
	if g.Status == StatusWon {
		return g.Attempts - 1
	}
	return g.Attempts
}

// Visible reports whether a hidden slot has been revealed.
func (g *Game) Visible(s Slot) bool {
	for i, slot := range revealOrder {
		if slot == s {
			return i < g.Misses()
		}
	}
	return false
}

// Clue returns clue n (1-based) if it is visible, otherwise "".
func (g *Game) Clue(n int) string {
	switch n {
	case 1, 2:
		return g.Puzzle.Clue(n)
	case 3:
		return g.visibleText(SlotClue3)
	case 4:
		return g.visibleText(SlotClue4)
	case 5:
		return g.visibleText(SlotClue5)
	}
	return ""
}

// LengthHint returns "<N> letters" once revealed, otherwise "".
func (g *Game) LengthHint() string { return g.visibleText(SlotLength) }

// HistoryText joins incorrect guesses for display.
func (g *Game) HistoryText() string { return strings.Join(g.History, ", ") }

// Solution returns the target once the game is over, otherwise "".
func (g *Game) Solution() string {
	if g.Playing() {
		return ""
	}
	return g.Target
}

func (g *Game) visibleText(s Slot) string {
	if !g.Visible(s) {
		return ""
	}
	return g.slotText(s)
}

func (g *Game) slotText(s Slot) string {
	switch s {
	case SlotClue3:
		return g.Puzzle.Clue(3)
	case SlotClue4:
		return g.Puzzle.Clue(4)
	case SlotLength:
		return fmt.Sprintf("%d letters", len(g.Target))
	case SlotClue5:
		return g.Puzzle.Clue(5)
	}
	return ""
}

// isAlpha checks that a string consists only of ASCII letters, either case.
func isAlpha(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
