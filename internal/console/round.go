package console

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/daily"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/history"
	"github.com/robalobadob/hangman/internal/words"
)

// ErrDailyPlayed is returned by Round.Run when the player already finished
// today's word in the chosen language.
var ErrDailyPlayed = errors.New("daily word already played")

// Round configures one console game.
type Round struct {
	Words     *words.Source
	History   *history.Store // optional
	Player    string
	MaxWrong  int
	Language  string // skips the menu when set
	Daily     bool
	DailySalt string
	Now       func() time.Time // defaults to time.Now
}

// Run shows the intro, picks the language and word, plays the game on s
// and records it. Word-list errors are returned unchanged so the caller
// can treat them as fatal; io.EOF means input ended before the game did,
// and the unfinished game is not recorded.
func (rd Round) Run(ctx context.Context, s *Session) (*game.Game, error) {
	now := time.Now
	if rd.Now != nil {
		now = rd.Now
	}

	s.Intro()
	var lang words.Language
	if rd.Language != "" {
		lang = words.ParseLanguage(rd.Language)
	} else {
		lang = s.SelectLanguage()
	}

	var (
		word, date string
		err        error
	)
	if rd.Daily {
		today := now().UTC()
		date = daily.DateKey(today)
		if rd.History != nil {
			played, err := rd.History.DailyPlayed(ctx, rd.Player, string(lang), date)
			if err != nil {
				log.Warn().Err(err).Msg("check daily game")
			} else if played {
				s.Notice("You already played today's word! Come back tomorrow.")
				return nil, ErrDailyPlayed
			}
		}
		var n int
		if n, err = rd.Words.Size(lang); err == nil {
			word, err = rd.Words.Word(lang, daily.WordIndex(today, rd.DailySalt, string(lang), n))
		}
	} else {
		word, err = rd.Words.Random(lang)
	}
	if err != nil {
		return nil, err
	}

	g := game.New(lang, word, rd.MaxWrong)
	log.Debug().Str("gameId", g.ID).Str("language", string(lang)).Bool("daily", rd.Daily).Msg("game started")

	state, err := s.Play(g)
	if err != nil {
		return g, err
	}
	log.Debug().Str("gameId", g.ID).Str("state", string(state)).Int("wrong", g.Wrong).Msg("game finished")

	if rd.History != nil {
		res := history.FromGame(g, rd.Player, date, now().UTC())
		if err := rd.History.Record(ctx, res); err != nil {
			log.Warn().Err(err).Msg("failed to record game")
		}
	}
	return g, nil
}
