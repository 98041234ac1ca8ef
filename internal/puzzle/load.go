// internal/puzzle/load.go
//
// Loading the puzzle bank.
//
// Sources, in order of precedence (Load):
//   1. SQLite database (PUZZLE_DB) with a `puzzles` table.
//   2. A bank file (PUZZLE_BANK_FILE), YAML or JSON by extension.
//   3. The embedded default bank shipped in assets/.
//
// File formats accept either the row form used by the published bank
//   - [ballot, "clue one", "clue two", "clue three", "clue four", "clue five"]
// or an object form
//   - {solution: ballot, clues: ["clue one", ...]}

package puzzle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/thecivilword/civilword/assets"
)

// Format names a bank file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Source selects where Load reads the bank from. Empty fields are skipped.
type Source struct {
	DB   string // SQLite path
	File string // YAML or JSON file
}

// Load resolves the bank from src, falling back to the embedded default.
func Load(ctx context.Context, src Source) (*Bank, error) {
	switch {
	case src.DB != "":
		log.Info().Str("db", src.DB).Msg("loading puzzle bank from sqlite")
		return LoadSQLite(ctx, src.DB)
	case src.File != "":
		log.Info().Str("file", src.File).Msg("loading puzzle bank from file")
		return LoadFile(src.File)
	default:
		return Default()
	}
}

// Default parses the embedded bank.
func Default() (*Bank, error) {
	return Parse(assets.DefaultBank(), FormatYAML)
}

// LoadFile reads a bank file; the format follows the extension.
func LoadFile(path string) (*Bank, error) {
	f, err := formatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data, f)
}

func formatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
}

// Parse decodes a bank in the given format.
func Parse(data []byte, f Format) (*Bank, error) {
	var entries []entry
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("decode yaml bank: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&entries); err != nil {
			return nil, fmt.Errorf("decode json bank: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	records := make([]Record, 0, len(entries))
	for i, e := range entries {
		r, err := e.record()
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		records = append(records, r)
	}
	return NewBank(records)
}

// entry is one decoded bank item, in either row or object form.
type entry struct {
	row []string
	obj *object
}

type object struct {
	Solution string   `json:"solution" yaml:"solution"`
	Clues    []string `json:"clues" yaml:"clues"`
}

func (e entry) record() (Record, error) {
	if e.obj != nil {
		return FromRow(append([]string{e.obj.Solution}, e.obj.Clues...))
	}
	return FromRow(e.row)
}

// UnmarshalYAML accepts a sequence (row form) or a mapping (object form).
func (e *entry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		return value.Decode(&e.row)
	case yaml.MappingNode:
		e.obj = &object{}
		return value.Decode(e.obj)
	}
	return fmt.Errorf("%w: line %d is neither a list nor a mapping", ErrInvalidRecord, value.Line)
}

// UnmarshalJSON accepts an array (row form) or an object (object form).
func (e *entry) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &e.row)
	}
	e.obj = &object{}
	return json.Unmarshal(trimmed, e.obj)
}
