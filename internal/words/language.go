package words

import (
	"strings"

	"golang.org/x/text/language"
)

// Language identifies one of the supported word lists.
type Language string

const (
	English Language = "English"
	German  Language = "German"
)

// DefaultLanguage is used whenever a choice is not recognised.
const DefaultLanguage = English

// Languages lists the supported languages in menu order.
var Languages = []Language{English, German}

// Resolve maps a language-menu choice to a Language.
// "1" selects English and "2" selects German; any other input, including
// the empty string, falls back to DefaultLanguage.
func Resolve(choice string) Language {
	switch choice {
	case "1":
		return English
	case "2":
		return German
	default:
		return DefaultLanguage
	}
}

// ParseLanguage maps a configured name ("english", "German", "de", ...) to
// a Language, falling back to DefaultLanguage like Resolve does.
func ParseLanguage(name string) Language {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "english", "en":
		return English
	case "german", "deutsch", "de":
		return German
	default:
		return Resolve(strings.TrimSpace(name))
	}
}

// File is the word list file name for the language.
func (l Language) File() string {
	return strings.ToLower(string(l)) + ".txt"
}

// Tag is the BCP 47 tag used for case folding.
func (l Language) Tag() language.Tag {
	if l == German {
		return language.German
	}
	return language.English
}
