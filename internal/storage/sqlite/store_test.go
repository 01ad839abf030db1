package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"annochess/internal/catalog"
	"annochess/internal/storage"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "games.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(" "); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()

	created, err := s.CreateGame(ctx, catalog.Game{
		VariantName: "Sicilian",
		Event:       "Casual",
		WhitePlayer: "Ann",
		BlackPlayer: "Ben",
		PGN:         "1. e4 c5",
		Explanations: []catalog.Annotation{
			{Ply: 2, Content: "The Sicilian."},
			{Ply: 0, Content: "Start here."},
			{Ply: 2, Content: "duplicate"},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}

	got, err := s.GetGame(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.VariantName != "Sicilian" || got.WhitePlayer != "Ann" || got.PGN != "1. e4 c5" {
		t.Fatalf("unexpected game %+v", got)
	}
	if len(got.Explanations) != 2 {
		t.Fatalf("expected 2 explanations, got %+v", got.Explanations)
	}
	first := got.Explanations[0]
	if first.Ply != 2 || first.Content != "The Sicilian." || first.MoveNumber != 2 || first.Color {
		t.Fatalf("insertion order or derived fields lost: %+v", first)
	}
	if got.Explanations[1].Ply != 0 || got.Explanations[1].MoveNumber != 1 {
		t.Fatalf("unexpected second explanation %+v", got.Explanations[1])
	}
}

func TestGetGameNotFound(t *testing.T) {
	s := openTempStore(t)
	if _, err := s.GetGame(context.Background(), 42); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListGamesOrderedByID(t *testing.T) {
	s := openTempStore(t)
	ctx := context.Background()
	for _, name := range []string{"Caro-Kann", "Dutch", "Pirc"} {
		if _, err := s.CreateGame(ctx, catalog.Game{VariantName: name, PGN: "1. e4"}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}
	games, err := s.ListGames(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("expected 3 games, got %d", len(games))
	}
	for i := 1; i < len(games); i++ {
		if games[i-1].ID >= games[i].ID {
			t.Fatalf("listing not ordered by id: %d then %d", games[i-1].ID, games[i].ID)
		}
	}
	if games[0].VariantName != "Caro-Kann" || games[0].Explanations == nil {
		t.Fatalf("unexpected first game %+v", games[0])
	}
}

func TestEmptyListing(t *testing.T) {
	games, err := openTempStore(t).ListGames(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if games == nil || len(games) != 0 {
		t.Fatalf("expected empty non-nil listing, got %v", games)
	}
}

func TestCreateRequiresVariant(t *testing.T) {
	if _, err := openTempStore(t).CreateGame(context.Background(), catalog.Game{PGN: "1. e4"}); err == nil {
		t.Fatalf("expected variant name error")
	}
}
