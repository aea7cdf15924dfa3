// internal/game/engine.go
//
// Core game engine for a single hangman round.
// Responsibilities:
//   - Create new games with a bounded number of wrong guesses.
//   - Validate guesses (one character, not a space, a letter, not repeated).
//   - Reveal every position of a correct letter; count wrong letters.
//   - Track state transitions: playing → won/lost.
//
// Notes:
//   - Letters are compared as runes after lowercasing and NFC normalisation,
//     so "Ü" and "ü" are the same guess.
//   - Rejected guesses never change the game.

package game

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/robalobadob/hangman/internal/figure"
	"github.com/robalobadob/hangman/internal/words"
)

// Validation errors returned by Guess. None of them changes the game.
var (
	ErrFinished  = errors.New("game finished")
	ErrNotSingle = errors.New("enter exactly one letter")
	ErrSpace     = errors.New("space is not a letter")
	ErrNotLetter = errors.New("numbers and special characters are not letters")
	ErrRepeated  = errors.New("letter already guessed")
)

// New constructs a new game for answer.
// maxWrong is clamped to [1, figure.Stages]; zero or less selects
// DefaultMaxWrong.
func New(lang words.Language, answer string, maxWrong int) *Game {
	if maxWrong <= 0 {
		maxWrong = DefaultMaxWrong
	}
	if maxWrong > figure.Stages {
		maxWrong = figure.Stages
	}

	ans := []rune(norm.NFC.String(strings.ToLower(answer)))
	revealed := make([]rune, len(ans))
	for i := range revealed {
		revealed[i] = Placeholder
	}
	g := &Game{
		ID:        uuid.NewString(),
		Language:  lang,
		Answer:    string(ans),
		MaxWrong:  maxWrong,
		StartedAt: time.Now().UTC(),
		answer:    ans,
		revealed:  revealed,
		state:     StatePlaying,
	}
	if len(ans) == 0 {
		g.state = StateWon
	}
	return g
}

// Guess validates and applies one guess, mutating the game state.
//
// Validation, in order:
//   - Game must not be finished.
//   - Input must be exactly one character.
//   - That character must not be a space.
//   - It must be a letter.
//   - It must not have been guessed before.
//
// State transitions:
//   - No placeholder left → won (even with attempts to spare).
//   - Otherwise, wrong guesses reaching MaxWrong → lost.
func (g *Game) Guess(input string) (Outcome, error) {
	if g.state != StatePlaying {
		return Outcome{State: g.state, Wrong: g.Wrong}, ErrFinished
	}
	input = norm.NFC.String(strings.ToLower(input))
	if utf8.RuneCountInString(input) != 1 {
		return Outcome{State: g.state, Wrong: g.Wrong}, ErrNotSingle
	}
	r, _ := utf8.DecodeRuneInString(input)
	switch {
	case r == ' ':
		return Outcome{State: g.state, Wrong: g.Wrong}, ErrSpace
	case !unicode.IsLetter(r):
		return Outcome{State: g.state, Wrong: g.Wrong}, ErrNotLetter
	case g.hasGuessed(r):
		return Outcome{State: g.state, Wrong: g.Wrong}, ErrRepeated
	}

	g.guessed = append(g.guessed, r)
	out := Outcome{Letter: input}
	for i, a := range g.answer {
		if a == r {
			g.revealed[i] = r
			out.Revealed++
		}
	}
	out.Hit = out.Revealed > 0
	if !out.Hit {
		g.Wrong++
	}

	switch {
	case !g.hasPlaceholder():
		g.state = StateWon
	case g.Wrong >= g.MaxWrong:
		g.state = StateLost
	}
	out.Wrong, out.State = g.Wrong, g.state
	return out, nil
}

// State reports the current game state.
func (g *Game) State() State { return g.state }

// Finished reports whether the game was won or lost.
func (g *Game) Finished() bool { return g.state != StatePlaying }

// Remaining is the number of wrong guesses left.
func (g *Game) Remaining() int { return g.MaxWrong - g.Wrong }

// Revealed renders the revealed buffer with single spaces between
// positions, e.g. "c a _".
func (g *Game) Revealed() string {
	parts := make([]string, len(g.revealed))
	for i, r := range g.revealed {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

// Guessed returns the accepted letters in the order they were guessed.
func (g *Game) Guessed() []string {
	out := make([]string, len(g.guessed))
	for i, r := range g.guessed {
		out[i] = string(r)
	}
	return out
}

// Snapshot copies the client-visible state of the game.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		ID:        g.ID,
		Language:  g.Language,
		Masked:    g.Revealed(),
		Guessed:   g.Guessed(),
		Wrong:     g.Wrong,
		MaxWrong:  g.MaxWrong,
		Remaining: g.Remaining(),
		State:     g.state,
	}
	if g.Finished() {
		s.Answer = g.Answer
	}
	return s
}

func (g *Game) hasGuessed(r rune) bool {
	for _, x := range g.guessed {
		if x == r {
			return true
		}
	}
	return false
}

func (g *Game) hasPlaceholder() bool {
	for _, r := range g.revealed {
		if r == Placeholder {
			return true
		}
	}
	return false
}
