// internal/words/words.go
//
// Word list management for the hangman engine.
//
// Responsibilities:
//   - Map a menu choice or a configured name to a supported Language.
//   - Load one word list per language, either from WORDS_DIR or from the
//     lists embedded in the binary (assets package).
//   - Normalise entries (NFC, language-aware lowercasing) and drop entries
//     that could never be completed (anything that is not all letters).
//   - Pick a uniformly random word (crypto/rand).
//
// Word list files:
//   WORDS_DIR/english.txt, WORDS_DIR/german.txt
//   One word per line, UTF-8. Files that are not valid UTF-8 are decoded as
//   Windows-1252 (a superset of Latin-1), which covers older German lists.
//   Blank lines and lines starting with '#' are ignored.

package words

import (
	"bufio"
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/robalobadob/hangman/assets"
)

var (
	// ErrMissingList is returned when a language's word list cannot be opened.
	ErrMissingList = errors.New("words: word list missing")
	// ErrEmptyList is returned when a word list holds no usable words.
	ErrEmptyList = errors.New("words: word list is empty")
)

// Source loads and caches the word list of each language.
// The zero value is not usable; construct with NewSource.
type Source struct {
	dir string

	mu    sync.Mutex
	lists map[Language][]string
}

// NewSource returns a Source reading from dir. An empty dir selects the
// embedded default lists.
func NewSource(dir string) *Source {
	return &Source{dir: dir, lists: make(map[Language][]string)}
}

// List returns the normalised word list for lang, loading it on first use.
func (s *Source) List(lang Language) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if l, ok := s.lists[lang]; ok {
		return l, nil
	}
	l, err := s.load(lang)
	if err != nil {
		return nil, err
	}
	s.lists[lang] = l
	return l, nil
}

// Random returns a uniformly random word from lang's list.
func (s *Source) Random(lang Language) (string, error) {
	l, err := s.List(lang)
	if err != nil {
		return "", err
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(l))))
	if err != nil {
		return "", fmt.Errorf("words: random index: %w", err)
	}
	return l[n.Int64()], nil
}

func (s *Source) load(lang Language) ([]string, error) {
	var (
		raw    []byte
		err    error
		origin string
	)
	if s.dir != "" {
		origin = filepath.Join(s.dir, lang.File())
		raw, err = os.ReadFile(origin)
	} else {
		origin = "embedded:" + lang.File()
		raw, err = assets.WordList(lang.File())
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMissingList, origin, err)
	}

	list, dropped := parse(lang, decode(raw))
	if dropped > 0 {
		log.Warn().Str("language", string(lang)).Str("source", origin).Int("dropped", dropped).
			Msg("skipped entries that are not single alphabetic words")
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyList, origin)
	}
	log.Debug().Str("language", string(lang)).Str("source", origin).Int("words", len(list)).Msg("word list loaded")
	return list, nil
}

// decode returns raw as text, treating non-UTF-8 input as Windows-1252.
func decode(raw []byte) string {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return string(raw)
	}
	out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
	if err != nil {
		// Windows-1252 maps every byte, so this only guards against a broken decoder.
		return string(raw)
	}
	return string(out)
}

// parse splits text into words, lowercasing with lang's case rules.
// It returns the kept words and the number of dropped entries.
func parse(lang Language, text string) ([]string, int) {
	lower := cases.Lower(lang.Tag())
	var (
		out     []string
		dropped int
	)
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		w := strings.TrimSpace(sc.Text())
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		w = norm.NFC.String(lower.String(w))
		if !isAlpha(w) {
			dropped++
			continue
		}
		out = append(out, w)
	}
	return out, dropped
}

// isAlpha reports whether s is non-empty and made only of letters.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
