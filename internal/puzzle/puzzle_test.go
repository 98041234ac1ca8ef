package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRow(t *testing.T) {
	r, err := FromRow([]string{"AMBLE", "c1", "c2", "c3", "c4", "c5"})
	require.NoError(t, err)
	assert.Equal(t, "amble", r.Solution)
	assert.Equal(t, "c1", r.Clue(1))
	assert.Equal(t, "c5", r.Clue(5))
	assert.Equal(t, "", r.Clue(0))
	assert.Equal(t, "", r.Clue(6))
	assert.Equal(t, []string{"amble", "c1", "c2", "c3", "c4", "c5"}, r.Row())
}

func TestFromRowRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		row  []string
	}{
		{"too short", []string{"amble", "c1"}},
		{"too long", []string{"amble", "1", "2", "3", "4", "5", "6"}},
		{"empty solution", []string{"", "1", "2", "3", "4", "5"}},
		{"digits", []string{"amb1e", "1", "2", "3", "4", "5"}},
		{"space", []string{"civil word", "1", "2", "3", "4", "5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRow(tt.row)
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestNewBank(t *testing.T) {
	_, err := NewBank(nil)
	assert.ErrorIs(t, err, ErrEmptyBank)

	b, err := NewBank([]Record{{Solution: "Veto"}, {Solution: "quorum"}})
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, "veto", b.At(0).Solution)

	_, err = NewBank([]Record{{Solution: "ok"}, {Solution: "n0"}})
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

func TestBankRecordsIsACopy(t *testing.T) {
	b, err := NewBank([]Record{{Solution: "veto"}})
	require.NoError(t, err)

	recs := b.Records()
	recs[0].Solution = "mutated"
	assert.Equal(t, "veto", b.At(0).Solution)
}

func TestRandom(t *testing.T) {
	var empty *Bank
	_, _, err := empty.Random()
	assert.ErrorIs(t, err, ErrEmptyBank)

	b, err := NewBank([]Record{{Solution: "veto"}, {Solution: "recall"}, {Solution: "pardon"}})
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		r, idx, err := b.Random()
		require.NoError(t, err)
		require.True(t, idx >= 0 && idx < b.Len())
		assert.Equal(t, b.At(idx), r)
	}
}
