// Package console runs a hangman game on a line-oriented terminal.
//
// The session owns the presentation: banner, language menu, prompts and
// diagnostics. Game rules live in the game package; the session only maps
// engine results and errors to text.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/hangman/internal/figure"
	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/history"
	"github.com/robalobadob/hangman/internal/words"
)

const banner = `
 _
| |
| |__   __ _ _ __   __ _ _ __ ___   __ _ _ __
| '_ \ / _` + "`" + ` | '_ \ / _` + "`" + ` | '_ ` + "`" + ` _ \ / _` + "`" + ` | '_ \
| | | | (_| | | | | (_| | | | | | | (_| | | | |
|_| |_|\__,_|_| |_|\__, |_| |_| |_|\__,_|_| |_|
                    __/ |
                   |___/
`

// Session reads player input line by line and writes to out.
type Session struct {
	in  *bufio.Reader
	out io.Writer
	p   Palette
}

// NewSession returns a session over in and out using palette p.
func NewSession(in io.Reader, out io.Writer, p Palette) *Session {
	return &Session{in: bufio.NewReader(in), out: out, p: p}
}

// Intro prints the banner and the rules.
func (s *Session) Intro() {
	s.println(s.p.Paint(s.p.Title, banner))
	s.println(s.p.Paint(s.p.Alert, "Hello, User!"))
	s.println(s.p.Paint(s.p.Info, "Let's play Hangman!") + "\n")
	s.println("In this game you have to try to guess a secret word!\n" +
		"Careful you only have limited tries to find it out!")
	s.println(s.p.Paint(s.p.Alert, "Hint! ") + "The words are made out of " +
		s.p.Paint(s.p.Accent, "nouns") + ", " +
		s.p.Paint(s.p.Accent, "verbs") + " and " +
		s.p.Paint(s.p.Accent, "adjectives") + "!")
}

// SelectLanguage shows the language menu and resolves one line of input.
// Unrecognised or missing input selects the default language.
func (s *Session) SelectLanguage() words.Language {
	s.println("Choose a " + s.p.Paint(s.p.Choice, "language") + " for the words:")
	for i, lang := range words.Languages {
		s.println(fmt.Sprintf("Type %d. for %s", i+1, s.p.Paint(s.p.Choice, string(lang))))
	}
	s.println("Enter the " + s.p.Paint(s.p.Good, "number") + " for your choice:")
	line, _ := s.readLine()
	return words.Resolve(line)
}

// Play runs the turn loop until g is won or lost and returns the final
// state. It returns io.EOF (with the game unfinished) if input ends first.
func (s *Session) Play(g *game.Game) (game.State, error) {
	for !g.Finished() {
		s.println(g.Revealed())
		fmt.Fprint(s.out, s.p.Paint(s.p.Prompt, "Guess a Letter: "))

		line, err := s.readLine()
		if err != nil {
			s.println("")
			return g.State(), err
		}
		out, err := g.Guess(line)
		if err != nil {
			s.reject(g, err)
			continue
		}
		if !out.Hit {
			for _, l := range figure.Render(out.Wrong) {
				s.println(s.p.Paint(s.p.Figure, l))
			}
		}
	}

	if g.State() == game.StateWon {
		s.println(s.p.Paint(s.p.Good, "Congrats! you win! ") +
			"The correct word was: " + s.p.Paint(s.p.Accent, g.Answer))
	} else {
		s.println(s.p.Paint(s.p.Alert, "You lose! ") +
			"The correct word was: " + s.p.Paint(s.p.Accent, g.Answer))
	}
	return g.State(), nil
}

// Notice prints a highlighted one-line message.
func (s *Session) Notice(msg string) {
	s.println(s.p.Paint(s.p.Alert, msg))
}

// Stats prints a player's history summary followed by recent games.
func (s *Session) Stats(st history.Stats, recent []history.Result) {
	s.println(fmt.Sprintf("Player: %s", s.p.Paint(s.p.Accent, st.Player)))
	s.println(fmt.Sprintf("Games played: %d  Wins: %d  Streak: %d  Best streak: %d",
		st.GamesPlayed, st.Wins, st.Streak, st.BestStreak))
	for _, r := range recent {
		outcome := s.p.Paint(s.p.Alert, "lost")
		if r.Won {
			outcome = s.p.Paint(s.p.Good, "won ")
		}
		daily := ""
		if r.DailyDate != "" {
			daily = " (daily " + r.DailyDate + ")"
		}
		s.println(fmt.Sprintf("  %s  %s  %-8s %-14s %d wrong%s",
			r.FinishedAt.Local().Format("2006-01-02 15:04"), outcome, r.Language, r.Word, r.WrongGuesses, daily))
	}
}

func (s *Session) reject(g *game.Game, err error) {
	switch {
	case errors.Is(err, game.ErrNotSingle):
		s.Notice("Please enter only a single letter!")
	case errors.Is(err, game.ErrSpace):
		s.Notice("You cannot use space!")
	case errors.Is(err, game.ErrNotLetter):
		s.Notice("You cannot use numbers or special characters!")
	case errors.Is(err, game.ErrRepeated):
		s.Notice("You cannot guess the same letter twice!")
		s.println("Guessed letters: " + s.p.Paint(s.p.Alert, "["+strings.Join(g.Guessed(), ", ")+"]"))
	default:
		s.Notice(err.Error())
	}
}

// readLine reads one line without its line terminator. A final line
// without a newline is returned before io.EOF.
func (s *Session) readLine() (string, error) {
	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Session) println(line string) {
	fmt.Fprintln(s.out, line)
}
