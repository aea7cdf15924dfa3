// internal/game/types.go
//
// Core type definitions for the hangman engine.
// Defines:
//   - State: playing / won / lost.
//   - Game: state for a single in-progress or finished round.
//   - Outcome and Snapshot: what a guess produced and what a client may see.

package game

import (
	"time"

	"github.com/robalobadob/hangman/internal/words"
)

// State is the coarse lifecycle state of a game.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Placeholder marks an unrevealed position of the secret word.
const Placeholder = '_'

// DefaultMaxWrong is the number of wrong guesses that ends a game.
const DefaultMaxWrong = 7

// Game holds the state of a single hangman round.
// Mutate it only through Guess so the revealed buffer, the guessed letters
// and the wrong-guess counter stay consistent.
type Game struct {
	ID        string         // Unique game identifier (UUID).
	Language  words.Language // Language the word was drawn from.
	Answer    string         // The secret word (lowercase).
	MaxWrong  int            // Wrong guesses allowed before the game is lost.
	Wrong     int            // Wrong guesses so far.
	StartedAt time.Time

	answer   []rune
	revealed []rune
	guessed  []rune
	state    State
}

// Outcome describes the effect of one accepted guess.
type Outcome struct {
	Letter   string `json:"letter"`
	Hit      bool   `json:"hit"`      // letter occurs in the word
	Revealed int    `json:"revealed"` // positions uncovered by this guess
	Wrong    int    `json:"wrong"`    // wrong-guess counter after the guess
	State    State  `json:"state"`
}

// Snapshot is the client-visible view of a game. Answer is only set once
// the game is finished.
type Snapshot struct {
	ID        string         `json:"gameId"`
	Language  words.Language `json:"language"`
	Masked    string         `json:"masked"`
	Guessed   []string       `json:"guessed"`
	Wrong     int            `json:"wrong"`
	MaxWrong  int            `json:"maxWrong"`
	Remaining int            `json:"remaining"`
	State     State          `json:"state"`
	Answer    string         `json:"answer,omitempty"`
}
