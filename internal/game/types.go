// internal/game/types.go
//
// Core type definitions for the puzzle state machine.
// Defines:
//   - Status: coarse game state (playing/won/lost).
//   - Outcome: what a single submission did (ignored/incorrect/won/lost).
//   - Slot + Reveal: which hidden hint a wrong guess uncovered.
//   - Game: state for a single in-progress or finished puzzle.

package game

import "github.com/thecivilword/civilword/internal/puzzle"

// MaxAttempts is the guess budget per puzzle.
const MaxAttempts = 5

// Status is the coarse state of a game.
type Status string

const (
	StatusPlaying Status = "playing"
	StatusWon     Status = "won"
	StatusLost    Status = "lost"
)

// Outcome describes the effect of one Submit call.
type Outcome int

const (
	// Ignored: empty or malformed input, or the game is already over.
	Ignored Outcome = iota
	// Incorrect: a counted miss; the game continues.
	Incorrect
	// Won: the guess matched the target.
	Won
	// Lost: the fifth miss.
	Lost
)

// String returns the lowercase outcome name used in JSON payloads.
func (o Outcome) String() string {
	switch o {
	case Incorrect:
		return "incorrect"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "ignored"
	}
}

// MarshalText lets Outcome encode as its name.
func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

// Slot names a hint that is hidden until enough misses accumulate.
type Slot string

const (
	SlotClue3  Slot = "clue3"
	SlotClue4  Slot = "clue4"
	SlotLength Slot = "length"
	SlotClue5  Slot = "clue5"
)

// Reveal is a hint uncovered by a wrong guess.
type Reveal struct {
	Slot Slot   `json:"slot"`
	Text string `json:"text"`
}

// Result is returned by Submit.
type Result struct {
	Outcome   Outcome `json:"outcome"`
	Attempts  int     `json:"attempts"`
	Indicator string  `json:"indicator"`
	Reveal    *Reveal `json:"reveal,omitempty"` // set only on a non-terminal miss
}

// Game holds the state of a single puzzle session.
type Game struct {
	ID       string        // Unique game identifier (UUID).
	Puzzle   puzzle.Record // The record being played; never modified.
	Target   string        // The solution word (always lowercase).
	Attempts int           // Counted guesses so far, 0..MaxAttempts.
	Status   Status        // playing until won or lost, then fixed.
	History  []string      // Incorrect guesses in order (lowercased).
}
