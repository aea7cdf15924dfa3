package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/robalobadob/hangman/internal/game"
	"github.com/robalobadob/hangman/internal/words"
)

func TestSaveGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := game.New(words.English, "cat", 0)
	if err := s.Save(ctx, g); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, g.ID)
	if err != nil || got != g {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) err = %v", err)
	}
}

func TestUpdateSerialisesGuesses(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := game.New(words.English, "abcdefghijklmnopqrstuvwxyz", 0)
	_ = s.Save(ctx, g)

	var wg sync.WaitGroup
	for r := 'a'; r <= 'z'; r++ {
		wg.Add(1)
		go func(l string) {
			defer wg.Done()
			_ = s.Update(ctx, g.ID, func(g *game.Game) error {
				_, err := g.Guess(l)
				return err
			})
		}(string(r))
	}
	wg.Wait()

	if g.State() != game.StateWon || len(g.Guessed()) != 26 {
		t.Fatalf("state %s with %d guesses", g.State(), len(g.Guessed()))
	}
}

func TestUpdatePassesErrorsThrough(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := game.New(words.English, "cat", 0)
	_ = s.Save(ctx, g)

	err := s.Update(ctx, g.ID, func(g *game.Game) error {
		_, err := g.Guess("42")
		return err
	})
	if !errors.Is(err, game.ErrNotSingle) {
		t.Fatalf("err = %v, want ErrNotSingle", err)
	}
	if err := s.Update(ctx, "missing", func(*game.Game) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
