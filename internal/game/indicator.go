package game

import "strings"

// Indicator symbols.
const (
	SymbolUnused  = "⚫"
	SymbolMiss    = "🟠"
	SymbolCorrect = "🔵"
)

// Indicator builds the fixed-length attempt indicator: one orange circle per
// miss, a blue circle for the winning attempt, black for unused slots.
// attempts is clamped to [0, MaxAttempts].
func Indicator(attempts int, won bool) string {
	if attempts < 0 {
		attempts = 0
	}
	if attempts > MaxAttempts {
		attempts = MaxAttempts
	}
	var b strings.Builder
	for i := 1; i <= MaxAttempts; i++ {
		switch {
		case won && i == attempts:
			b.WriteString(SymbolCorrect)
		case i <= attempts:
			b.WriteString(SymbolMiss)
		default:
			b.WriteString(SymbolUnused)
		}
	}
	return b.String()
}
