// internal/httpserver/server.go
//
// HTTP server wiring for The Civil Word.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/daily".
//   - Game endpoints: POST /game/new, POST /game/guess, GET /game/state, GET /game/share.
//   - Session cookie handling (signed JWT carrying an opaque session ID).
//
// Notes:
//   - The server only hosts a single-player session per browser. There are no
//     accounts and nothing is recorded once the process exits.
//   - Guess debounce is enforced per session here, not in the game engine.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/thecivilword/civilword/internal/daily"
	"github.com/thecivilword/civilword/internal/debounce"
	"github.com/thecivilword/civilword/internal/game"
	"github.com/thecivilword/civilword/internal/puzzle"
	"github.com/thecivilword/civilword/internal/share"
	"github.com/thecivilword/civilword/internal/store"
)

// SessionCookie is the cookie holding the signed session token.
const SessionCookie = "civilword_session"

// Options configures a Server.
type Options struct {
	Bank          *puzzle.Bank
	Launch        time.Time
	Location      *time.Location   // calendar zone for "today"; nil means time.Local
	Now           func() time.Time // clock; nil means time.Now
	Debounce      time.Duration
	SessionSecret string
	SessionTTL    time.Duration
	ClientOrigin  string
	ShareSite     string
	Secure        bool // mark cookies Secure + SameSite=None
}

// Server bundles router, session store and puzzle bank.
type Server struct {
	r     *chi.Mux
	store store.Store
	opts  Options

	mu       sync.Mutex          // serialises game access and guards sessions
	sessions map[string]*session // live sessions, dropped once their token expires
}

// session is the server-side bookkeeping for one session token.
type session struct {
	gate    *debounce.Gate // submission debounce for the current game
	expires time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opts Options) *Server {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 48 * time.Hour
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	s := &Server{r: chi.NewRouter(), store: st, opts: opts, sessions: make(map[string]*session)}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"civilword","endpoints":["/health","/daily","POST /game/new","POST /game/guess","/game/state","/game/share"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.mountDaily(s.r)

	s.r.Route("/game", func(r chi.Router) {
		r.Use(s.withSession)
		r.Post("/new", s.handleNewGame)
		r.Post("/guess", s.handleGuess)
		r.Get("/state", s.handleState)
		r.Get("/share", s.handleShare)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Start serves HTTP on addr until ctx is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- hs.ListenAndServe() }()
	go s.sweepEvery(ctx, time.Minute)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return hs.Shutdown(shutdownCtx)
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// now returns the current time in the configured calendar zone.
func (s *Server) now() time.Time { return s.opts.Now().In(s.opts.Location) }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.opts.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeError writes {"error":code} with status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Mode string `json:"mode"` // "daily" (default) | "practice"
}
type newGameRes struct {
	Mode  string        `json:"mode"`
	Date  string        `json:"date"`
	Index int           `json:"index"`
	Game  game.Snapshot `json:"game"`
}

// handleNewGame replaces the session's game with a fresh one.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}

	now := s.now()
	res := newGameRes{Mode: "daily", Date: daily.DateKey(now)}
	var rec puzzle.Record
	switch strings.ToLower(req.Mode) {
	case "", "daily":
		p, err := daily.Select(s.opts.Bank, s.opts.Launch, now)
		if err != nil {
			log.Error().Err(err).Msg("select daily puzzle")
			writeError(w, http.StatusInternalServerError, "no_puzzle")
			return
		}
		rec, res.Index = p.Record, p.Index
	case "practice":
		var err error
		rec, res.Index, err = s.opts.Bank.Random()
		if err != nil {
			log.Error().Err(err).Msg("select practice puzzle")
			writeError(w, http.StatusInternalServerError, "no_puzzle")
			return
		}
		res.Mode = "practice"
	default:
		writeError(w, http.StatusBadRequest, "bad_mode")
		return
	}

	sid := sessionID(r)
	g := game.New(rec)
	res.Game = g.Snapshot()
	if err := s.store.Save(r.Context(), sid, g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	s.mu.Lock()
	s.session(sid).gate = debounce.New(s.opts.Debounce)
	s.mu.Unlock()
	log.Debug().Str("session", sid).Str("game", g.ID).Str("mode", res.Mode).Int("index", res.Index).Msg("new game")

	_ = json.NewEncoder(w).Encode(res)
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	Guess string `json:"guess"`
}
type guessRes struct {
	Result game.Result   `json:"result"`
	Game   game.Snapshot `json:"game"`
}

// handleGuess applies one guess to the session's game.
// A second guess inside the debounce window is rejected with 429.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sid := sessionID(r)
	g, err := s.store.Get(r.Context(), sid)
	if err != nil {
		writeError(w, http.StatusNotFound, "no_game")
		return
	}

	s.mu.Lock()
	if g.Playing() && !s.session(sid).gate.Allow(s.opts.Now()) {
		s.mu.Unlock()
		writeError(w, http.StatusTooManyRequests, "debounced")
		return
	}
	res := g.Submit(req.Guess)
	snap := g.Snapshot()
	s.mu.Unlock()

	log.Debug().Str("session", sid).Str("game", g.ID).Stringer("outcome", res.Outcome).Int("attempts", res.Attempts).Msg("guess")
	_ = json.NewEncoder(w).Encode(guessRes{Result: res, Game: snap})
}

// session returns the bookkeeping for sid, creating it if needed. Caller holds s.mu.
func (s *Server) session(sid string) *session {
	ss, ok := s.sessions[sid]
	if !ok {
		ss = &session{gate: debounce.New(s.opts.Debounce), expires: s.opts.Now().Add(s.opts.SessionTTL)}
		s.sessions[sid] = ss
	}
	return ss
}

// sweep forgets sessions whose token has expired, along with their games.
func (s *Server) sweep(ctx context.Context) {
	now := s.opts.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for sid, ss := range s.sessions {
		if now.Before(ss.expires) {
			continue
		}
		delete(s.sessions, sid)
		if err := s.store.Delete(ctx, sid); err != nil {
			log.Warn().Err(err).Str("session", sid).Msg("drop expired session")
		}
	}
}

// sweepEvery runs sweep on a ticker until ctx is cancelled.
func (s *Server) sweepEvery(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.sweep(ctx)
		}
	}
}

// handleState returns the session's current game view.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, http.StatusNotFound, "no_game")
		return
	}
	s.mu.Lock()
	snap := g.Snapshot()
	s.mu.Unlock()
	_ = json.NewEncoder(w).Encode(snap)
}

// handleShare returns the share text for a finished game.
// Copying to the clipboard is left to the client.
func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	g, err := s.store.Get(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, http.StatusNotFound, "no_game")
		return
	}
	s.mu.Lock()
	playing, indicator := g.Playing(), g.Indicator()
	s.mu.Unlock()
	if playing {
		writeError(w, http.StatusConflict, "game_in_progress")
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{
		"text": share.Text(indicator, s.now(), s.opts.ShareSite),
	})
}

// ----------------------------- sessions ------------------------------------

// ctxSessionKey is the context key type for the session ID.
type ctxSessionKey struct{}

// sessionID returns the session ID placed in context by withSession.
func sessionID(r *http.Request) string {
	sid, _ := r.Context().Value(ctxSessionKey{}).(string)
	return sid
}

// withSession resolves the session from a bearer token or cookie, issuing a
// new one when it is missing, invalid, or expired.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid, exp, err := s.parseToken(bearerOrCookie(r))
		if err != nil {
			s.sweep(r.Context())
			sid = uuid.NewString()
			var tok string
			tok, exp, err = s.signToken(sid)
			if err != nil {
				log.Error().Err(err).Msg("sign session")
				writeError(w, http.StatusInternalServerError, "sign_failed")
				return
			}
			s.setSessionCookie(w, tok, exp)
			w.Header().Set("X-Session-Token", tok)
		}
		s.mu.Lock()
		s.session(sid).expires = exp
		s.mu.Unlock()
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

var errNoToken = errors.New("no session token")

// parseToken validates an HS256 session token and returns its subject and expiry.
func (s *Server) parseToken(tok string) (string, time.Time, error) {
	if tok == "" {
		return "", time.Time{}, errNoToken
	}
	claims := &jwt.RegisteredClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.SessionSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.opts.Now))
	if err != nil {
		return "", time.Time{}, err
	}
	if !t.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return "", time.Time{}, errNoToken
	}
	return claims.Subject, claims.ExpiresAt.Time, nil
}

// signToken creates an HS256 token for sid expiring after SessionTTL.
func (s *Server) signToken(sid string) (string, time.Time, error) {
	now := s.opts.Now()
	exp := now.Add(s.opts.SessionTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString([]byte(s.opts.SessionSecret))
	return ss, exp, err
}

// setSessionCookie writes the session cookie with appropriate security attributes.
func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.opts.Secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from the Authorization header or session cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}
