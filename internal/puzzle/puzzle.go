// internal/puzzle/puzzle.go
//
// Puzzle records and the puzzle bank.
// Responsibilities:
//   - Record: one daily puzzle (solution + five clues of increasing specificity).
//   - Bank: ordered, read-only list of records indexed 0..N-1.
//   - Validation of solutions (lowercase a–z, non-empty).
//
// Notes:
//   - Records are immutable once loaded; callers receive copies.
//   - The bank shape mirrors the published puzzle list: [solution, clue1, ..., clue5].

package puzzle

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ClueCount is the number of clues attached to every puzzle.
const ClueCount = 5

var (
	// ErrEmptyBank is returned when a bank has no records.
	ErrEmptyBank = errors.New("puzzle: bank is empty")
	// ErrInvalidRecord is returned for records with a bad shape or solution.
	ErrInvalidRecord = errors.New("puzzle: invalid record")
	// ErrUnknownFormat is returned when a bank file extension is not recognised.
	ErrUnknownFormat = errors.New("puzzle: unknown bank format")
)

// Record is a single puzzle: the solution word and its five clues.
type Record struct {
	Solution string
	Clues    [ClueCount]string
}

// FromRow builds a Record from the six-column row form
// [solution, clue1, clue2, clue3, clue4, clue5].
func FromRow(row []string) (Record, error) {
	if len(row) != 1+ClueCount {
		return Record{}, fmt.Errorf("%w: want %d columns, got %d", ErrInvalidRecord, 1+ClueCount, len(row))
	}
	r := Record{Solution: strings.ToLower(row[0])}
	copy(r.Clues[:], row[1:])
	return r, r.Validate()
}

// Row returns the record in six-column row form.
func (r Record) Row() []string {
	out := make([]string, 0, 1+ClueCount)
	out = append(out, r.Solution)
	return append(out, r.Clues[:]...)
}

// Clue returns clue n (1-based). Out of range returns "".
func (r Record) Clue(n int) string {
	if n < 1 || n > ClueCount {
		return ""
	}
	return r.Clues[n-1]
}

// Validate checks that the solution is non-empty lowercase a–z.
func (r Record) Validate() error {
	if r.Solution == "" {
		return fmt.Errorf("%w: empty solution", ErrInvalidRecord)
	}
	if !isLowerAlpha(r.Solution) {
		return fmt.Errorf("%w: solution %q must be letters a-z", ErrInvalidRecord, r.Solution)
	}
	return nil
}

// Bank is an ordered, non-empty sequence of puzzle records.
type Bank struct {
	records []Record
}

// NewBank validates and wraps records. Solutions are lowercased first.
func NewBank(records []Record) (*Bank, error) {
	if len(records) == 0 {
		return nil, ErrEmptyBank
	}
	out := make([]Record, len(records))
	for i, r := range records {
		r.Solution = strings.ToLower(r.Solution)
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out[i] = r
	}
	return &Bank{records: out}, nil
}

// Len reports the number of records. A nil bank has length 0.
func (b *Bank) Len() int {
	if b == nil {
		return 0
	}
	return len(b.records)
}

// At returns record i.
func (b *Bank) At(i int) Record { return b.records[i] }

// Records returns a copy of all records in bank order.
func (b *Bank) Records() []Record {
	if b == nil {
		return nil
	}
	return append([]Record(nil), b.records...)
}

// Random returns a uniformly random record (practice mode).
func (b *Bank) Random() (Record, int, error) {
	if b.Len() == 0 {
		return Record{}, 0, ErrEmptyBank
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(b.Len())))
	if err != nil {
		return Record{}, 0, err
	}
	i := int(n.Int64())
	return b.records[i], i, nil
}

// isLowerAlpha reports whether s is all lowercase ASCII letters.
func isLowerAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
