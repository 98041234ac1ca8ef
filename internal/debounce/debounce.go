// Package debounce suppresses rapid repeated guess submissions.
//
// This is a presentation concern: the game engine accepts every call, and
// front ends consult a Gate before forwarding input.
package debounce

import (
	"time"

	"golang.org/x/time/rate"
)

// Gate admits at most one event per window.
type Gate struct {
	lim *rate.Limiter
}

// New returns a Gate for window. A window <= 0 admits everything.
func New(window time.Duration) *Gate {
	limit := rate.Inf
	if window > 0 {
		limit = rate.Every(window)
	}
	return &Gate{lim: rate.NewLimiter(limit, 1)}
}

// Allow reports whether an event at now may pass, and if so starts a new window.
// A nil Gate admits everything.
func (g *Gate) Allow(now time.Time) bool {
	if g == nil {
		return true
	}
	return g.lim.AllowN(now, 1)
}
