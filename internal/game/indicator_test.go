package game

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestIndicator(t *testing.T) {
	tests := []struct {
		attempts int
		won      bool
		want     string
	}{
		{0, false, "⚫⚫⚫⚫⚫"},
		{1, true, "🔵⚫⚫⚫⚫"},
		{2, true, "🟠🔵⚫⚫⚫"},
		{3, true, "🟠🟠🔵⚫⚫"},
		{4, true, "🟠🟠🟠🔵⚫"},
		{5, true, "🟠🟠🟠🟠🔵"},
		{1, false, "🟠⚫⚫⚫⚫"},
		{3, false, "🟠🟠🟠⚫⚫"},
		{5, false, "🟠🟠🟠🟠🟠"},
		{-2, false, "⚫⚫⚫⚫⚫"},
		{9, false, "🟠🟠🟠🟠🟠"},
	}
	for _, tt := range tests {
		got := Indicator(tt.attempts, tt.won)
		assert.Equal(t, tt.want, got, "attempts=%d won=%v", tt.attempts, tt.won)
		assert.Equal(t, MaxAttempts, utf8.RuneCountInString(got))
	}
}
