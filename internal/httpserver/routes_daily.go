// internal/httpserver/routes_daily.go
//
// HTTP routes for the "daily word" mode.
// Exposes two endpoints under /daily:
//   - POST /daily/new         → start today's game for a player and language
//   - GET  /daily/leaderboard → today's (or ?date=) winners for ?language=
//
// Guesses go through POST /game/guess like any other game; the token
// carries the date so the finished game is recorded as a daily result.
// Each player gets one daily game per language and day: a repeat
// /daily/new while the game is open re-issues a token for that same game,
// and once it is finished (in memory or in the history) the answer is 409.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/daily"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/history"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
		r.Get("/leaderboard", s.handleDailyLeaderboard)
	})
}

// dailyWord returns today's date key and word for lang.
func (s *Server) dailyWord(lang words.Language, now time.Time) (string, string, error) {
	n, err := s.words.Size(lang)
	if err != nil {
		return "", "", err
	}
	idx := daily.WordIndex(now, s.opts.DailySalt, string(lang), n)
	word, err := s.words.Word(lang, idx)
	return daily.DateKey(now), word, err
}

// handleDailyNew starts today's game. A player is required so the
// once-per-day rule can be enforced.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	player := strings.TrimSpace(req.Player)
	if player == "" {
		writeError(w, http.StatusBadRequest, "player_required")
		return
	}
	lang := words.ParseLanguage(req.Language)
	date, word, err := s.dailyWord(lang, time.Now().UTC())
	if err != nil {
		log.Error().Err(err).Str("language", string(lang)).Msg("daily word")
		writeError(w, http.StatusInternalServerError, "word_list_unavailable")
		return
	}

	key := player + "|" + string(lang) + "|" + date
	s.dailyMu.Lock()
	defer s.dailyMu.Unlock()

	if s.history != nil {
		played, err := s.history.DailyPlayed(r.Context(), player, string(lang), date)
		if err != nil {
			log.Error().Err(err).Str("player", player).Msg("check daily")
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}
		if played {
			writeError(w, http.StatusConflict, "already_played")
			return
		}
	}

	// Reuse the open game for this player, language and day.
	if id, ok := s.dailyGames[key]; ok {
		var snap game.Snapshot
		err := s.store.Update(r.Context(), id, func(g *game.Game) error {
			snap = g.Snapshot()
			return nil
		})
		switch {
		case err == nil && snap.State != game.StatePlaying:
			writeError(w, http.StatusConflict, "already_played")
			return
		case err == nil:
			log.Debug().Str("gameId", id).Str("player", player).Msg("daily game resumed")
			s.issueToken(w, snap, player, date)
			return
		case !errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
	}

	g, ok := s.startGame(w, r, lang, word, player, date)
	if !ok {
		return
	}
	pruneDaily(s.dailyGames, date)
	s.dailyGames[key] = g.ID
}

// pruneDaily drops entries for days other than date.
func pruneDaily(m map[string]string, date string) {
	for k := range m {
		if !strings.HasSuffix(k, "|"+date) {
			delete(m, k)
		}
	}
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date     string          `json:"date"`
	Language string          `json:"language"`
	Top      []history.LBRow `json:"top"`
}

// handleDailyLeaderboard returns the winners for the given date (default today).
func (s *Server) handleDailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusServiceUnavailable, "history_disabled")
		return
	}
	q := r.URL.Query()
	lang := words.ParseLanguage(q.Get("language"))
	date := q.Get("date")
	if date == "" {
		date = daily.DateKey(time.Now())
	}
	rows, err := s.history.DailyLeaderboard(r.Context(), string(lang), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Language: string(lang), Top: rows})
}
