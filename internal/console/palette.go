package console

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Palette holds the ANSI sequences used to style console text. The zero
// value prints plain text.
type Palette struct {
	Title  string
	Alert  string
	Info   string
	Accent string
	Choice string
	Prompt string
	Good   string
	Figure string
	Reset  string
}

// ANSIPalette returns the coloured palette.
func ANSIPalette() Palette {
	return Palette{
		Title:  "\033[92m",
		Alert:  "\033[91m",
		Info:   "\033[36m",
		Accent: "\033[96m",
		Choice: "\033[93m",
		Prompt: "\033[94m",
		Good:   "\033[92m",
		Figure: "\033[95m",
		Reset:  "\033[0m",
	}
}

// DetectPalette returns ANSIPalette when f is a terminal and NO_COLOR is
// unset, and the plain palette otherwise.
func DetectPalette(f *os.File) Palette {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return Palette{}
	}
	fd := f.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return ANSIPalette()
	}
	return Palette{}
}

// Stdout returns os.Stdout wrapped so ANSI sequences also work on Windows
// consoles.
func Stdout() io.Writer {
	return colorable.NewColorableStdout()
}

// Paint wraps s in style, or returns s unchanged when style is empty.
func (p Palette) Paint(style, s string) string {
	if style == "" {
		return s
	}
	return style + s + p.Reset
}
