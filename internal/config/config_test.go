package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"LOG_LEVEL", "WORDS_DIR", "HANGMAN_MAX_WRONG", "HANGMAN_PLAYER",
		"DAILY_SALT", "PORT", "HANGMAN_SECRET", "TOKEN_TTL_HOURS"} {
		t.Setenv(k, "")
	}
	t.Setenv("USER", "ana")

	c := Load()
	if c.MaxWrong != 7 || c.Port != "5175" || c.Player != "ana" || c.TokenTTL != 24*time.Hour {
		t.Fatalf("unexpected defaults %+v", c)
	}
	if c.WordsDir != "" || c.LogLevel != "" {
		t.Fatalf("unexpected defaults %+v", c)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HANGMAN_MAX_WRONG", "5")
	t.Setenv("HANGMAN_PLAYER", "bo")
	t.Setenv("HANGMAN_DB", "")
	t.Setenv("TOKEN_TTL_HOURS", "nope")

	c := Load()
	if c.MaxWrong != 5 || c.Player != "bo" {
		t.Fatalf("overrides not applied: %+v", c)
	}
	if c.DBPath != "" {
		t.Fatalf("empty HANGMAN_DB must disable history, got %q", c.DBPath)
	}
	if c.TokenTTL != 24*time.Hour {
		t.Fatalf("invalid TOKEN_TTL_HOURS should fall back, got %v", c.TokenTTL)
	}
}
