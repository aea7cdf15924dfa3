// Package figure draws the hangman, one line per wrong guess.
package figure

// stages are drawn top to bottom; stage n shows the first n lines.
var stages = [...]string{
	"+=====∞===",
	"|/    |",
	"|    (_)",
	`|    \|/`,
	"|     |",
	`|    / \`,
	"8----------",
}

// Stages is the number of wrong guesses the figure can show.
const Stages = len(stages)

// Render returns the first n lines of the figure. n is clamped to
// [0, Stages].
func Render(n int) []string {
	if n < 0 {
		n = 0
	}
	if n > Stages {
		n = Stages
	}
	out := make([]string, n)
	copy(out, stages[:n])
	return out
}
