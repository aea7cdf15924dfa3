// internal/httpserver/server.go
//
// HTTP server wiring for the hangman JSON API.
// Responsibilities:
//   - Router + middleware (JSON, request IDs, panic recovery, timeouts, request logging).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints: POST /game/new, POST /game/guess (bearer game token).
//   - Daily endpoints: mounted under /daily (routes_daily.go).
//   - History: GET /stats/{player}; finished games are recorded best effort.
//
// Notes:
//   - Games live in the in-memory store; guesses run under the store lock.
//   - The history is optional; without it /stats answers 503 and the
//     one-daily-game rule only holds for the lifetime of the process.

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
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/figure"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/history"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

// defaultPlayer names games started without a player.
const defaultPlayer = "web"

// Options configures a Server.
type Options struct {
	Store     store.Store    // required
	Words     *words.Source  // required
	History   *history.Store // optional
	MaxWrong  int            // wrong guesses per game; 0 selects the default
	Secret    string         // token secret
	TokenTTL  time.Duration  // token lifetime
	DailySalt string         // salt for the daily word
}

// Server bundles router, game store, word source and history.
type Server struct {
	r       *chi.Mux
	store   store.Store
	words   *words.Source
	history *history.Store
	tokens  *tokenIssuer
	opts    Options

	dailyMu    sync.Mutex
	dailyGames map[string]string // player|language|date -> game ID
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) (*Server, error) {
	if opts.Store == nil || opts.Words == nil {
		return nil, errors.New("httpserver: store and word source are required")
	}
	tokens, err := newTokenIssuer(opts.Secret, opts.TokenTTL)
	if err != nil {
		return nil, err
	}
	s := &Server{
		r:          chi.NewRouter(),
		store:      opts.Store,
		words:      opts.Words,
		history:    opts.History,
		tokens:     tokens,
		opts:       opts,
		dailyGames: make(map[string]string),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"hangman","endpoints":["/health","POST /game/new","POST /game/guess","POST /daily/new","/daily/leaderboard","/stats/{player}"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.words.Stats())
	})

	s.r.Post("/game/new", s.handleNewGame)
	s.r.Post("/game/guess", s.handleGuess)
	s.r.Get("/stats/{player}", s.handleStats)
	s.mountDaily(s.r)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s, nil
}

// Handler exposes the router (useful for tests).
func (s *Server) Handler() http.Handler { return s.r }

// Run serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

// ------------------------------ GAME ---------------------------------------

// newGameReq/Res payloads for POST /game/new and POST /daily/new.
type newGameReq struct {
	Language string `json:"language"` // "english" | "german" | "1" | "2"; default English
	Player   string `json:"player"`   // optional; recorded in the history
}
type newGameRes struct {
	GameID    string    `json:"gameId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Language  string    `json:"language"`
	Masked    string    `json:"masked"`
	Guessed   []string  `json:"guessed"`
	Wrong     int       `json:"wrong"`
	MaxWrong  int       `json:"maxWrong"`
	Daily     string    `json:"daily,omitempty"`
}

// handleNewGame draws a random word and starts a game.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	lang := words.ParseLanguage(req.Language)
	word, err := s.words.Random(lang)
	if err != nil {
		log.Error().Err(err).Str("language", string(lang)).Msg("draw word")
		writeError(w, http.StatusInternalServerError, "word_list_unavailable")
		return
	}
	_, _ = s.startGame(w, r, lang, word, playerName(req.Player), "")
}

// startGame stores a new game and answers with its token.
func (s *Server) startGame(w http.ResponseWriter, r *http.Request, lang words.Language, word, player, daily string) (*game.Game, bool) {
	g := game.New(lang, word, s.opts.MaxWrong)
	if err := s.store.Save(r.Context(), g); err != nil {
		log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return nil, false
	}
	log.Debug().Str("gameId", g.ID).Str("player", player).Str("language", string(lang)).Msg("game started")
	return g, s.issueToken(w, g.Snapshot(), player, daily)
}

// issueToken signs a token for the game in snap and writes the new-game
// response. It reports whether the response succeeded.
func (s *Server) issueToken(w http.ResponseWriter, snap game.Snapshot, player, daily string) bool {
	tok, exp, err := s.tokens.sign(snap.ID, player, daily)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return false
	}
	writeJSON(w, http.StatusOK, newGameRes{
		GameID:    snap.ID,
		Token:     tok,
		ExpiresAt: exp,
		Language:  string(snap.Language),
		Masked:    snap.Masked,
		Guessed:   snap.Guessed,
		Wrong:     snap.Wrong,
		MaxWrong:  snap.MaxWrong,
		Daily:     daily,
	})
	return true
}

// guessReq/Res payloads for POST /game/guess.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}
type guessRes struct {
	game.Snapshot
	Hit    bool     `json:"hit"`
	Figure []string `json:"figure"`
}

// handleGuess applies one guess to a game owned by the bearer token and
// records the game once it finishes.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	tok, err := bearer(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	claims, err := s.tokens.verify(tok)
	if err != nil || claims.Subject != req.GameID {
		writeError(w, http.StatusUnauthorized, "invalid_token")
		return
	}

	var (
		out     game.Outcome
		snap    game.Snapshot
		g       *game.Game
		guessed error
	)
	err = s.store.Update(r.Context(), req.GameID, func(gm *game.Game) error {
		out, guessed = gm.Guess(req.Guess)
		snap, g = gm.Snapshot(), gm
		return nil
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
		return
	case err != nil:
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	case errors.Is(guessed, game.ErrFinished):
		writeError(w, http.StatusConflict, guessed.Error())
		return
	case guessed != nil:
		writeError(w, http.StatusBadRequest, guessed.Error())
		return
	}

	if out.State != game.StatePlaying {
		s.record(r.Context(), g, claims)
	}
	writeJSON(w, http.StatusOK, guessRes{
		Snapshot: snap,
		Hit:      out.Hit,
		Figure:   figure.Render(snap.Wrong),
	})
}

// record stores a finished game in the history; failures are only logged.
func (s *Server) record(ctx context.Context, g *game.Game, claims *gameClaims) {
	if s.history == nil {
		return
	}
	res := history.FromGame(g, claims.Player, claims.Daily, time.Now().UTC())
	if err := s.history.Record(ctx, res); err != nil {
		log.Warn().Err(err).Str("gameId", g.ID).Msg("record game")
	}
}

// ------------------------------ STATS --------------------------------------

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, "history_disabled")
		return
	}
	player := chi.URLParam(r, "player")
	st, err := s.history.Stats(r.Context(), player)
	if err != nil {
		log.Error().Err(err).Str("player", player).Msg("load stats")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	recent, err := s.history.Recent(r.Context(), player, 10)
	if err != nil {
		log.Error().Err(err).Str("player", player).Msg("load recent games")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": st, "recent": recent})
}

// ------------------------------ helpers ------------------------------------

func playerName(p string) string {
	if p = strings.TrimSpace(p); p != "" {
		return p
	}
	return defaultPlayer
}

// decodeOptional decodes a JSON body, treating an empty body as {}.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
