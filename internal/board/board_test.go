package board

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/corentings/chess/v2"
)

func startBoard() *chess.Board {
	return chess.NewGame().Position().Board()
}

func TestTextInitialPosition(t *testing.T) {
	lines := strings.Split(Text(startBoard()), "\n")
	if len(lines) != 9 {
		t.Fatalf("expected 9 lines, got %d", len(lines))
	}
	if lines[0] != "8 ♜ ♞ ♝ ♛ ♚ ♝ ♞ ♜" {
		t.Fatalf("unexpected rank 8: %q", lines[0])
	}
	if lines[4] != "4 · · · · · · · ·" {
		t.Fatalf("unexpected rank 4: %q", lines[4])
	}
	if lines[7] != "1 ♖ ♘ ♗ ♕ ♔ ♗ ♘ ♖" {
		t.Fatalf("unexpected rank 1: %q", lines[7])
	}
	if lines[8] != "  a b c d e f g h" {
		t.Fatalf("unexpected footer: %q", lines[8])
	}
}

func TestTextAfterMove(t *testing.T) {
	g := chess.NewGame()
	if err := g.PushNotationMove("e4", chess.AlgebraicNotation{}, nil); err != nil {
		t.Fatalf("push: %v", err)
	}
	lines := strings.Split(Text(g.Position().Board()), "\n")
	if lines[4] != "4 · · · · ♙ · · ·" {
		t.Fatalf("pawn not on e4: %q", lines[4])
	}
}

func TestSVGShape(t *testing.T) {
	out := SVG(startBoard(), 320)
	if !strings.HasPrefix(out, "<svg") || !strings.HasSuffix(out, "</svg>") {
		t.Fatalf("not an svg element")
	}
	if n := strings.Count(out, "<rect"); n != 64 {
		t.Fatalf("expected 64 squares, got %d", n)
	}
	if n := strings.Count(out, `class="piece"`); n != 32 {
		t.Fatalf("expected 32 pieces, got %d", n)
	}
	if !strings.Contains(out, `width="320"`) {
		t.Fatalf("size not applied")
	}
}

func TestIsDark(t *testing.T) {
	if !isDark(chess.A1) || isDark(chess.H1) || !isDark(chess.H8) {
		t.Fatalf("square colours are off")
	}
}

func TestRenderPNG(t *testing.T) {
	r := NewRenderer(40)
	data, err := r.RenderPNG(context.Background(), startBoard())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds() != r.Bounds() {
		t.Fatalf("bounds %v, want %v", img.Bounds(), r.Bounds())
	}
	// Top-left pixel of the empty e4 square.
	rect := r.squareRect(chess.E4, image.Pt(r.margin(), r.margin()))
	got := img.At(rect.Min.X+1, rect.Min.Y+1)
	want := squareColor(chess.E4)
	gr, gg, gb, _ := got.RGBA()
	wr, wg, wb, _ := want.RGBA()
	if gr != wr || gg != wg || gb != wb {
		t.Fatalf("e4 colour %v, want %v", got, want)
	}
}

func TestRenderPNGNilBoard(t *testing.T) {
	if _, err := NewRenderer(0).RenderPNG(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil board")
	}
}

func TestRenderPNGCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewRenderer(0).RenderPNG(ctx, startBoard()); err == nil {
		t.Fatalf("expected context error")
	}
}

type countingCollector struct {
	mu       sync.Mutex
	counters map[string]int64
}

func (c *countingCollector) IncCounter(name string, delta int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counters == nil {
		c.counters = map[string]int64{}
	}
	c.counters[name] += delta
}
func (c *countingCollector) SetGauge(string, int64)           {}
func (c *countingCollector) ObserveHistogram(string, float64) {}

func TestCacheHitsAndMisses(t *testing.T) {
	coll := &countingCollector{}
	c, err := NewCache(NewRenderer(24), 4, coll)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	g := chess.NewGame()
	first, err := c.PNG(context.Background(), g.FEN(), g.Position().Board())
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	second, err := c.PNG(context.Background(), g.FEN(), g.Position().Board())
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("cached image differs")
	}
	if coll.counters["annochess_board_cache_misses_total"] != 1 || coll.counters["annochess_board_cache_hits_total"] != 1 {
		t.Fatalf("unexpected counters %v", coll.counters)
	}
	if c.Len() != 1 {
		t.Fatalf("expected one cached image, got %d", c.Len())
	}
}
