package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"annochess/internal/catalog"
)

func TestNilStoreIsEmpty(t *testing.T) {
	var s *Store
	games, err := s.ListGames(context.Background())
	if err != nil || len(games) != 0 {
		t.Fatalf("expected empty listing, got %v %v", games, err)
	}
	if _, err := s.GetGame(context.Background(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.CreateGame(context.Background(), catalog.Game{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if NewStore(nil) != nil {
		t.Fatalf("NewStore(nil) should be nil")
	}
}

func TestUniquePliesKeepsFirst(t *testing.T) {
	in := []catalog.Annotation{
		{Ply: 2, Content: "first"},
		{Ply: 0, Content: "start"},
		{Ply: 2, Content: "second"},
		{Ply: 4, Content: ""},
	}
	got := UniquePlies(in)
	want := []catalog.Annotation{{Ply: 2, Content: "first"}, {Ply: 0, Content: "start"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v", got)
	}
}

func TestFromCatalogDerivesMoveNumberAndColor(t *testing.T) {
	row := fromCatalog(catalog.Game{
		VariantName: "Ruy Lopez",
		PGN:         "1. e4 e5 2. Nf3 Nc6 3. Bb5",
		Explanations: []catalog.Annotation{
			{Ply: 5, MoveNumber: 99, Content: "The Spanish bishop."},
			{Ply: 0, Content: "Start."},
		},
	})
	if len(row.Explanations) != 2 {
		t.Fatalf("expected 2 explanations, got %d", len(row.Explanations))
	}
	if e := row.Explanations[0]; e.MoveNumber != 3 || !e.Color {
		t.Fatalf("ply 5: move_number %d color %v", e.MoveNumber, e.Color)
	}
	if e := row.Explanations[1]; e.MoveNumber != 1 || e.Color {
		t.Fatalf("ply 0: move_number %d color %v", e.MoveNumber, e.Color)
	}
	back := row.toCatalog()
	if back.VariantName != "Ruy Lopez" || back.Explanations[0].Content != "The Spanish bishop." {
		t.Fatalf("round trip lost fields: %+v", back)
	}
}
