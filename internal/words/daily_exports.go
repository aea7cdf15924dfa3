// internal/words/daily_exports.go
//
// Indexed access to the word lists for the daily-word mode.
// The daily package turns a date into an index; these helpers turn the
// index back into a word of the selected language.

package words

import "fmt"

// Size returns the number of words in lang's list.
func (s *Source) Size(lang Language) (int, error) {
	l, err := s.List(lang)
	if err != nil {
		return 0, err
	}
	return len(l), nil
}

// Word returns the i-th word of lang's list.
func (s *Source) Word(lang Language, i int) (string, error) {
	l, err := s.List(lang)
	if err != nil {
		return "", err
	}
	if i < 0 || i >= len(l) {
		return "", fmt.Errorf("words: index %d out of range for %s list of %d", i, lang, len(l))
	}
	return l[i], nil
}

// Stats returns the list size of every language that loads successfully.
func (s *Source) Stats() map[Language]int {
	out := make(map[Language]int, len(Languages))
	for _, lang := range Languages {
		if n, err := s.Size(lang); err == nil {
			out[lang] = n
		}
	}
	return out
}
