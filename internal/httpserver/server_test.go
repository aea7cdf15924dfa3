package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robalobadob/hangman/internal/history"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

func newTestServer(t *testing.T, withHistory bool) (*Server, *history.Store) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"english.txt", "german.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("cat\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	var hist *history.Store
	if withHistory {
		var err error
		hist, err = history.Open(filepath.Join(dir, "h.db"))
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = hist.Close() })
	}
	s, err := New(Options{
		Store:     store.NewMemoryStore(),
		Words:     words.NewSource(dir),
		History:   hist,
		Secret:    "test-secret",
		TokenTTL:  time.Hour,
		DailySalt: "salt",
	})
	if err != nil {
		t.Fatal(err)
	}
	return s, hist
}

func do(t *testing.T, s *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func newGame(t *testing.T, s *Server, path string, body any) newGameRes {
	t.Helper()
	rec := do(t, s, http.MethodPost, path, "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("%s: status %d: %s", path, rec.Code, rec.Body.String())
	}
	var res newGameRes
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	return res
}

func guess(t *testing.T, s *Server, g newGameRes, letter string) (*httptest.ResponseRecorder, guessRes) {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/game/guess", g.Token, guessReq{GameID: g.GameID, Guess: letter})
	var res guessRes
	if rec.Code == http.StatusOK {
		if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
			t.Fatal(err)
		}
	}
	return rec, res
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t, false)
	rec := do(t, s, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != `{"ok":true}` {
		t.Fatalf("health = %d %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestGameFlowRecordsHistory(t *testing.T) {
	s, _ := newTestServer(t, true)
	g := newGame(t, s, "/game/new", newGameReq{Language: "german", Player: "ana"})
	if g.Masked != "_ _ _" || g.MaxWrong != 7 || g.Language != "German" {
		t.Fatalf("new game = %+v", g)
	}

	rec, res := guess(t, s, g, "x")
	if rec.Code != http.StatusOK || res.Hit || res.Wrong != 1 || len(res.Figure) != 1 {
		t.Fatalf("miss: %d %+v", rec.Code, res)
	}
	for _, l := range []string{"C", "a"} {
		if rec, res = guess(t, s, g, l); rec.Code != http.StatusOK || !res.Hit {
			t.Fatalf("guess %q: %d %+v", l, rec.Code, res)
		}
	}
	if res.Answer != "" {
		t.Fatal("answer leaked before the game ended")
	}
	_, res = guess(t, s, g, "t")
	if res.State != "won" || res.Answer != "cat" || res.Masked != "c a t" {
		t.Fatalf("final = %+v", res)
	}

	if rec, _ := guess(t, s, g, "z"); rec.Code != http.StatusConflict {
		t.Fatalf("guess after win: status %d", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/stats/ana", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: %d %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Stats  history.Stats    `json:"stats"`
		Recent []history.Result `json:"recent"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Stats.GamesPlayed != 1 || body.Stats.Wins != 1 || len(body.Recent) != 1 {
		t.Fatalf("stats = %+v", body)
	}
	if body.Recent[0].Guesses != "xcat" || body.Recent[0].Language != "German" {
		t.Errorf("recorded = %+v", body.Recent[0])
	}
}

func TestGuessValidation(t *testing.T) {
	s, _ := newTestServer(t, false)
	g := newGame(t, s, "/game/new", nil)

	for _, bad := range []string{"", "ab", " ", "1"} {
		if rec, _ := guess(t, s, g, bad); rec.Code != http.StatusBadRequest {
			t.Errorf("guess %q: status %d, want 400", bad, rec.Code)
		}
	}
	_, _ = guess(t, s, g, "c")
	if rec, _ := guess(t, s, g, "c"); rec.Code != http.StatusBadRequest {
		t.Errorf("repeat: status %d, want 400", rec.Code)
	}
}

func TestGuessNeedsMatchingToken(t *testing.T) {
	s, _ := newTestServer(t, false)
	a := newGame(t, s, "/game/new", nil)
	b := newGame(t, s, "/game/new", nil)

	if rec := do(t, s, http.MethodPost, "/game/guess", "", guessReq{GameID: a.GameID, Guess: "c"}); rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/game/guess", b.Token, guessReq{GameID: a.GameID, Guess: "c"}); rec.Code != http.StatusUnauthorized {
		t.Errorf("foreign token: status %d", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/game/guess", "garbage", guessReq{GameID: a.GameID, Guess: "c"}); rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status %d", rec.Code)
	}

	other, _ := newTestServer(t, false)
	if rec := do(t, other, http.MethodPost, "/game/guess", a.Token, guessReq{GameID: a.GameID, Guess: "c"}); rec.Code != http.StatusNotFound {
		t.Errorf("unknown game: status %d", rec.Code)
	}
}

func TestDailyOncePerDay(t *testing.T) {
	s, _ := newTestServer(t, true)
	if rec := do(t, s, http.MethodPost, "/daily/new", "", newGameReq{}); rec.Code != http.StatusBadRequest {
		t.Fatalf("daily without player: status %d", rec.Code)
	}

	g := newGame(t, s, "/daily/new", newGameReq{Player: "ana"})
	if g.Daily == "" {
		t.Fatal("daily game without date")
	}
	for _, l := range []string{"c", "a", "t"} {
		_, _ = guess(t, s, g, l)
	}
	if rec := do(t, s, http.MethodPost, "/daily/new", "", newGameReq{Player: "ana"}); rec.Code != http.StatusConflict {
		t.Fatalf("second daily: status %d", rec.Code)
	}

	rec := do(t, s, http.MethodGet, "/daily/leaderboard?language=english&date="+g.Daily, "", nil)
	var lb lbRes
	if err := json.NewDecoder(rec.Body).Decode(&lb); err != nil {
		t.Fatal(err)
	}
	if len(lb.Top) != 1 || lb.Top[0].Player != "ana" {
		t.Fatalf("leaderboard = %+v", lb)
	}
}

func TestStatsWithoutHistory(t *testing.T) {
	s, _ := newTestServer(t, false)
	if rec := do(t, s, http.MethodGet, "/stats/ana", "", nil); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status %d", rec.Code)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	ti, err := newTokenIssuer("secret", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	tok, _, err := ti.sign("game-1", "ana", "2026-10-18")
	if err != nil {
		t.Fatal(err)
	}
	c, err := ti.verify(tok)
	if err != nil {
		t.Fatal(err)
	}
	if c.Subject != "game-1" || c.Player != "ana" || c.Daily != "2026-10-18" {
		t.Fatalf("claims = %+v", c)
	}

	other, _ := newTokenIssuer("another", time.Minute)
	if _, err := other.verify(tok); err == nil {
		t.Fatal("token verified with a different secret")
	}
	if _, err := newTokenIssuer("", time.Minute); err == nil {
		t.Fatal("empty secret accepted")
	}
}

func TestDailyNewResumesOpenGame(t *testing.T) {
	s, _ := newTestServer(t, true)
	first := newGame(t, s, "/daily/new", newGameReq{Player: "ana"})
	for _, l := range []string{"x", "y", "c", "a"} {
		_, _ = guess(t, s, first, l)
	}

	again := newGame(t, s, "/daily/new", newGameReq{Player: "ana"})
	if again.GameID != first.GameID {
		t.Fatalf("second /daily/new started game %s, want %s", again.GameID, first.GameID)
	}
	if again.Wrong != 2 || again.Masked != "c a _" || again.Daily != first.Daily {
		t.Fatalf("resumed game = %+v", again)
	}

	// The re-issued token drives the same game.
	if _, res := guess(t, s, again, "t"); res.State != "won" || res.Wrong != 2 {
		t.Fatalf("finish resumed game: %+v", res)
	}
	if rec := do(t, s, http.MethodPost, "/daily/new", "", newGameReq{Player: "ana"}); rec.Code != http.StatusConflict {
		t.Fatalf("daily after finishing: status %d", rec.Code)
	}

	other := newGame(t, s, "/daily/new", newGameReq{Player: "bo"})
	if other.GameID == first.GameID {
		t.Fatal("another player got ana's daily game")
	}
	german := newGame(t, s, "/daily/new", newGameReq{Player: "ana", Language: "german"})
	if german.GameID == first.GameID {
		t.Fatal("german daily reused the english game")
	}
}

func TestDailyOncePerDayWithoutHistory(t *testing.T) {
	s, _ := newTestServer(t, false)
	g := newGame(t, s, "/daily/new", newGameReq{Player: "ana"})
	for _, l := range []string{"q", "w", "e", "r", "u", "i", "o"} {
		_, _ = guess(t, s, g, l)
	}
	if rec := do(t, s, http.MethodPost, "/daily/new", "", newGameReq{Player: "ana"}); rec.Code != http.StatusConflict {
		t.Fatalf("daily after losing: status %d", rec.Code)
	}
}

func TestPruneDailyKeepsOnlyDate(t *testing.T) {
	m := map[string]string{
		"ana|English|2026-10-17": "a",
		"ana|English|2026-10-18": "b",
		"bo|German|2026-10-18":   "c",
	}
	pruneDaily(m, "2026-10-18")
	if len(m) != 2 || m["ana|English|2026-10-18"] != "b" || m["bo|German|2026-10-18"] != "c" {
		t.Fatalf("after prune: %v", m)
	}
}
