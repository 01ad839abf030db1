package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"annochess/internal/catalog"
)

const sample = `Some preamble that is ignored.
===JOGO===
VARIANT: Italian Game
EVENT: Club training
WHITE: Alice
BLACK: Bob
PGN: 1. e4 e5 2. Nf3 Nc6 3. Bc4
---EXPLICAÇÕES---
PLY 0: Before the first move.
PLY 5: The bishop eyes f7.
It also prepares castling.
PLY 3:
PLY 5: ignored duplicate
===FIM===

===JOGO===
VARIANT: Unfinished
EVENT: x
WHITE: a
BLACK: b
PGN: 1. d4

===GAME===
VARIANT: Missing black
EVENT: x
WHITE: a
PGN: 1. c4
===END===

===GAME===
VARIANT: Broken line
EVENT: Blitz
WHITE: Carol
BLACK: Dan
PGN: 1. e4 e5 2. Qxh7
---ANNOTATIONS---
PLY 1: King pawn.
===END===
`

func TestParse(t *testing.T) {
	games, skips, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	if len(skips) != 2 {
		t.Fatalf("expected 2 skips, got %+v", skips)
	}
	if skips[0].Block != 2 || skips[0].Reason != "missing end marker" {
		t.Fatalf("unexpected first skip %+v", skips[0])
	}
	if skips[1].Block != 3 || skips[1].Reason != "missing BLACK" {
		t.Fatalf("unexpected second skip %+v", skips[1])
	}

	g := games[0]
	if g.VariantName != "Italian Game" || g.Event != "Club training" || g.WhitePlayer != "Alice" || g.BlackPlayer != "Bob" {
		t.Fatalf("unexpected metadata %+v", g)
	}
	if g.PGN != "1. e4 e5 2. Nf3 Nc6 3. Bc4" {
		t.Fatalf("unexpected pgn %q", g.PGN)
	}
	if len(g.Explanations) != 2 {
		t.Fatalf("expected 2 annotations, got %+v", g.Explanations)
	}
	a := g.Explanations[1]
	if a.Ply != 5 || a.MoveNumber != 3 || !a.Color {
		t.Fatalf("unexpected derived fields %+v", a)
	}
	if a.Content != "The bishop eyes f7.\nIt also prepares castling." {
		t.Fatalf("unexpected content %q", a.Content)
	}
	if z := g.Explanations[0]; z.Ply != 0 || z.MoveNumber != 1 || z.Color {
		t.Fatalf("unexpected ply 0 annotation %+v", z)
	}

	if games[1].VariantName != "Broken line" || len(games[1].Explanations) != 1 {
		t.Fatalf("english markers not honoured: %+v", games[1])
	}
}

func TestParseWithoutAnnotations(t *testing.T) {
	in := "===JOGO===\r\nVARIANT: London\r\nEVENT: e\r\nWHITE: w\r\nBLACK: b\r\nPGN: 1. d4 d5 2. Bf4\r\n===FIM===\r\n"
	games, skips, err := Parse(strings.NewReader(in))
	if err != nil || len(skips) != 0 || len(games) != 1 {
		t.Fatalf("unexpected result %v %v %v", games, skips, err)
	}
	if games[0].PGN != "1. d4 d5 2. Bf4" || len(games[0].Explanations) != 0 {
		t.Fatalf("unexpected game %+v", games[0])
	}
}

type memWriter struct {
	games []catalog.Game
	fail  error
}

func (m *memWriter) CreateGame(_ context.Context, g catalog.Game) (catalog.Game, error) {
	if m.fail != nil {
		return catalog.Game{}, m.fail
	}
	g.ID = int64(len(m.games) + 1)
	m.games = append(m.games, g)
	return g, nil
}

func TestImport(t *testing.T) {
	w := &memWriter{}
	res, err := Import(context.Background(), strings.NewReader(sample), w)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Games != 2 || res.Explanations != 3 {
		t.Fatalf("unexpected counts %+v", res)
	}
	if len(w.games) != 2 {
		t.Fatalf("invalid movetext should still be stored, got %d games", len(w.games))
	}
	if len(res.Invalid) != 1 || res.Invalid[0].Variant != "Broken line" || res.Invalid[0].ID != 2 {
		t.Fatalf("unexpected invalid list %+v", res.Invalid)
	}
	if len(res.Skipped) != 2 {
		t.Fatalf("unexpected skips %+v", res.Skipped)
	}
}

func TestImportStopsOnStorageError(t *testing.T) {
	boom := errors.New("disk full")
	_, err := Import(context.Background(), strings.NewReader(sample), &memWriter{fail: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("expected storage error, got %v", err)
	}
}
