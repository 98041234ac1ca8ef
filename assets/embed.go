// Package assets embeds the default puzzle bank shipped with the binary.
//
// The bank is used when neither PUZZLE_DB nor PUZZLE_BANK_FILE is set, so the
// game always has something to serve out of the box.
package assets

import (
	_ "embed"
)

//go:embed puzzles.yaml
var puzzlesYAML []byte

// DefaultBank returns the raw YAML of the embedded puzzle bank.
func DefaultBank() []byte {
	out := make([]byte, len(puzzlesYAML))
	copy(out, puzzlesYAML)
	return out
}
