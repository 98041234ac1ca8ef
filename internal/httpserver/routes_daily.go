// internal/httpserver/routes_daily.go
//
// GET /daily describes today's puzzle without starting a game:
// the date key, bank index, day number, and the two opening clues.
// The solution and later clues are never exposed here.

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/thecivilword/civilword/internal/daily"
)

// todayRes is returned by GET /daily.
type todayRes struct {
	Date    string   `json:"date"`
	Day     int      `json:"day"`
	Index   int      `json:"index"`
	Puzzles int      `json:"puzzles"`
	Clues   []string `json:"clues"`
}

// mountDaily registers the /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleToday)
	})
}

// handleToday reports today's selection.
func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	p, err := daily.Select(s.opts.Bank, s.opts.Launch, s.now())
	if err != nil {
		log.Error().Err(err).Msg("select daily puzzle")
		writeError(w, http.StatusInternalServerError, "no_puzzle")
		return
	}
	_ = json.NewEncoder(w).Encode(todayRes{
		Date:    p.Date,
		Day:     p.Day,
		Index:   p.Index,
		Puzzles: s.opts.Bank.Len(),
		Clues:   []string{p.Record.Clue(1), p.Record.Clue(2)},
	})
}
