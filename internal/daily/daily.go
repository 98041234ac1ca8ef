// internal/daily/daily.go
//
// Deterministic daily puzzle selection.
//
// Every player sees the same puzzle on the same local calendar day:
//   index = ((daysSinceLaunch mod N) + N) mod N
// where daysSinceLaunch counts whole calendar days from the launch date to now.
// Days before launch produce negative offsets that wrap into [0, N).

package daily

import (
	"fmt"
	"time"

	"github.com/thecivilword/civilword/internal/puzzle"
)

// DateLayout is the YYYY-MM-DD layout used for date keys and LAUNCH_DATE.
const DateLayout = "2006-01-02"

// Launch returns the launch date, 2025-12-18 at local midnight in loc.
func Launch(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(2025, time.December, 18, 0, 0, 0, 0, loc)
}

// ParseLaunch parses a YYYY-MM-DD launch date at midnight in loc.
func ParseLaunch(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("launch date %q: %w", s, err)
	}
	return t, nil
}

// DateKey returns YYYY-MM-DD for t in its own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysSince counts calendar days from launch's date to now's date, each taken
// in its own location. It is negative when now falls before launch.
func DaysSince(launch, now time.Time) int {
	return civilDay(now) - civilDay(launch)
}

// civilDay numbers the calendar date of t, ignoring clock time and zone offset.
// Using a UTC midnight keeps the difference exact across DST changes.
func civilDay(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}

// Index maps now onto a bank of n puzzles. It returns 0 when n < 1.
func Index(n int, launch, now time.Time) int {
	if n < 1 {
		return 0
	}
	days := DaysSince(launch, now)
	return ((days % n) + n) % n
}

// Puzzle is the outcome of a daily selection.
type Puzzle struct {
	Record puzzle.Record
	Index  int    // position in the bank
	Date   string // YYYY-MM-DD in now's location
	Day    int    // days since launch, possibly negative
}

// Select picks today's puzzle from the bank.
func Select(bank *puzzle.Bank, launch, now time.Time) (Puzzle, error) {
	if bank.Len() == 0 {
		return Puzzle{}, puzzle.ErrEmptyBank
	}
	idx := Index(bank.Len(), launch, now)
	return Puzzle{
		Record: bank.At(idx),
		Index:  idx,
		Date:   DateKey(now),
		Day:    DaysSince(launch, now),
	}, nil
}
