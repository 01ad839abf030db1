package viewer

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/corentings/chess/v2"
)

func TestParseMovetextSAN(t *testing.T) {
	got, err := ParseMovetext("1. e4 e5 2. Nf3")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"e4", "e5", "Nf3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestParseMovetextWithResultAndComments(t *testing.T) {
	got, err := ParseMovetext("1. e4 {king pawn} e5 2. Nf3 Nc6 1-0")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 plies, got %v", got)
	}
}

func TestParseMovetextBlank(t *testing.T) {
	got, err := ParseMovetext("   ")
	if err != nil {
		t.Fatalf("blank movetext should parse: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no moves, got %v", got)
	}
}

func TestParseMovetextIllegal(t *testing.T) {
	_, err := ParseMovetext("1. e4 e5 2. Qxh7")
	if !errors.Is(err, ErrInvalidMovetext) {
		t.Fatalf("expected ErrInvalidMovetext, got %v", err)
	}
}

func TestNormalizeMovetext(t *testing.T) {
	got := normalizeMovetext("1. e4 e5")
	if !strings.HasPrefix(got, "[Event \"?\"]\n\n1. e4 e5 *") {
		t.Fatalf("unexpected normalized text %q", got)
	}
	got = normalizeMovetext("[Event \"x\"]\n\n1. e4 1-0")
	if strings.Contains(got, "[Event \"?\"]") || strings.Contains(got, " *") {
		t.Fatalf("complete PGN should not be changed: %q", got)
	}
}

func TestReplayMatchesStartPosition(t *testing.T) {
	g, err := Replay([]string{"e4", "e5"}, 0)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if g.FEN() != chess.NewGame().FEN() {
		t.Fatalf("ply 0 should be the initial position, got %s", g.FEN())
	}
}

func TestReplayOutOfRange(t *testing.T) {
	if _, err := Replay([]string{"e4"}, 2); err == nil {
		t.Fatalf("expected error for ply beyond move count")
	}
	if _, err := Replay([]string{"e4"}, -1); err == nil {
		t.Fatalf("expected error for negative ply")
	}
}
