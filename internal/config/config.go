// Package config reads the runtime configuration from the environment.
// Call godotenv.Load before Load so values from a .env file are visible.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robalobadob/hangman/internal/game"
)

// Config holds every tunable of the console game and the HTTP API.
type Config struct {
	LogLevel  string        // LOG_LEVEL; empty lets the caller pick a default
	WordsDir  string        // WORDS_DIR; empty uses the embedded lists
	MaxWrong  int           // HANGMAN_MAX_WRONG
	DBPath    string        // HANGMAN_DB; empty disables the history
	Player    string        // HANGMAN_PLAYER, else $USER, else "guest"
	DailySalt string        // DAILY_SALT
	Port      string        // PORT
	Secret    string        // HANGMAN_SECRET
	TokenTTL  time.Duration // TOKEN_TTL_HOURS
}

// Load returns the configuration with defaults applied.
func Load() *Config {
	return &Config{
		LogLevel:  os.Getenv("LOG_LEVEL"),
		WordsDir:  os.Getenv("WORDS_DIR"),
		MaxWrong:  envInt("HANGMAN_MAX_WRONG", game.DefaultMaxWrong),
		DBPath:    envStr("HANGMAN_DB", "./data/hangman.db"),
		Player:    getEnv("HANGMAN_PLAYER", getEnv("USER", "guest")),
		DailySalt: getEnv("DAILY_SALT", "local_dev_salt"),
		Port:      getEnv("PORT", "5175"),
		Secret:    getEnv("HANGMAN_SECRET", "dev_secret_change_me"),
		TokenTTL:  time.Duration(envInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
	}
}

// getEnv returns k's value, or def when k is unset or empty.
func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

// envStr is like getEnv but keeps an explicitly empty value, so
// HANGMAN_DB= disables the history.
func envStr(k, def string) string {
	if v, ok := os.LookupEnv(k); ok {
		return strings.TrimSpace(v)
	}
	return def
}

func envInt(k string, def int) int {
	if n, err := strconv.Atoi(getEnv(k, "")); err == nil && n > 0 {
		return n
	}
	return def
}
