package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/internal/config"
	"github.com/robalobadob/hangman/internal/console"
	"github.com/robalobadob/hangman/internal/history"
	"github.com/robalobadob/hangman/internal/httpserver"
	"github.com/robalobadob/hangman/internal/store"
	"github.com/robalobadob/hangman/internal/words"
)

func main() {
	serve := flag.Bool("serve", false, "serve the JSON game API instead of playing in the console")
	dailyMode := flag.Bool("daily", false, "play today's word")
	stats := flag.Bool("stats", false, "print your game history and exit")
	lang := flag.String("lang", "", "word language (english or german); skips the menu")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	setupLogging(cfg.LogLevel, *serve)

	src := words.NewSource(cfg.WordsDir)
	hist := openHistory(cfg.DBPath)
	if hist != nil {
		defer hist.Close()
	}

	switch {
	case *serve:
		runServer(cfg, src, hist)
	case *stats:
		printStats(cfg, hist)
	default:
		playConsole(cfg, src, hist, *lang, *dailyMode)
	}
}

// setupLogging logs to stderr so it never mixes with the game on stdout.
// The console game defaults to warn, the server to info.
func setupLogging(level string, serve bool) {
	if level == "" {
		level = "warn"
		if serve {
			level = "info"
		}
	}
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// openHistory opens the history database; an empty path disables it.
func openHistory(path string) *history.Store {
	if path == "" {
		return nil
	}
	h, err := history.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("failed to open history database")
	}
	return h
}

func runServer(cfg *config.Config, src *words.Source, hist *history.Store) {
	for _, l := range words.Languages {
		if _, err := src.List(l); err != nil {
			log.Fatal().Err(err).Msg("failed to load word lists")
		}
	}
	srv, err := httpserver.New(httpserver.Options{
		Store:     store.NewMemoryStore(),
		Words:     src,
		History:   hist,
		MaxWrong:  cfg.MaxWrong,
		Secret:    cfg.Secret,
		TokenTTL:  cfg.TokenTTL,
		DailySalt: cfg.DailySalt,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log.Info().Str("port", cfg.Port).Bool("history", hist != nil).Msg("starting hangman server")
	if err := srv.Run(ctx, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

func printStats(cfg *config.Config, hist *history.Store) {
	s := console.NewSession(os.Stdin, console.Stdout(), console.DetectPalette(os.Stdout))
	if hist == nil {
		s.Notice("History is disabled (HANGMAN_DB is empty).")
		return
	}
	ctx := context.Background()
	st, err := hist.Stats(ctx, cfg.Player)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load stats")
	}
	recent, err := hist.Recent(ctx, cfg.Player, 10)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load recent games")
	}
	s.Stats(st, recent)
}

func playConsole(cfg *config.Config, src *words.Source, hist *history.Store, langName string, dailyMode bool) {
	s := console.NewSession(os.Stdin, console.Stdout(), console.DetectPalette(os.Stdout))
	_, err := console.Round{
		Words:     src,
		History:   hist,
		Player:    cfg.Player,
		MaxWrong:  cfg.MaxWrong,
		Language:  langName,
		Daily:     dailyMode,
		DailySalt: cfg.DailySalt,
	}.Run(context.Background(), s)

	switch {
	case err == nil, errors.Is(err, console.ErrDailyPlayed):
	case errors.Is(err, io.EOF):
		log.Info().Msg("input closed before the game ended")
	case errors.Is(err, words.ErrMissingList), errors.Is(err, words.ErrEmptyList):
		log.Fatal().Err(err).Msg("failed to load word list")
	default:
		log.Fatal().Err(err).Msg("reading input")
	}
}
