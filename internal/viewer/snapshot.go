package viewer

import (
	"annochess/internal/catalog"
)

// Option is one entry of the game selector.
type Option struct {
	ID          int64  `json:"id"`
	VariantName string `json:"variant_name"`
}

// Snapshot is everything the presentation layer draws for a State.
type Snapshot struct {
	Kind        string   `json:"kind"`
	GameID      *int64   `json:"game_id"`
	Title       string   `json:"title"`
	WhitePlayer string   `json:"white_player"`
	BlackPlayer string   `json:"black_player"`
	Players     string   `json:"players"`
	Event       string   `json:"event"`
	Annotation  string   `json:"annotation"`
	Paragraphs  []string `json:"paragraphs"`
	Ply         int      `json:"ply"`
	MoveCount   int      `json:"move_count"`
	Counter     string   `json:"counter"`
	FEN         string   `json:"fen"`
	LastMove    string   `json:"last_move"`
	CanAdvance  bool     `json:"can_advance"`
	CanRetreat  bool     `json:"can_retreat"`
	Error       string   `json:"error,omitempty"`
	Loading     bool     `json:"loading"`
	Games       []Option `json:"games"`
	Board       string   `json:"board,omitempty"`
}

// NewSnapshot describes s against the catalog c. The Board field is left for
// the caller, which owns the rendering.
func NewSnapshot(s State, c *catalog.Catalog, r *Resolver) Snapshot {
	text := r.Resolve(s)
	snap := Snapshot{
		Kind:       "state",
		Title:      r.Title(s),
		Players:    r.Players(s),
		Annotation: text,
		Paragraphs: Paragraphs(text),
		Ply:        s.Ply(),
		MoveCount:  s.MoveCount(),
		Counter:    r.Counter(s),
		FEN:        s.FEN(),
		LastMove:   s.LastMove(),
		CanAdvance: s.CanAdvance(),
		CanRetreat: s.CanRetreat(),
		Games:      Options(c),
	}
	if g, ok := s.Game(); ok {
		id := g.ID
		snap.GameID = &id
		snap.WhitePlayer = g.WhitePlayer
		snap.BlackPlayer = g.BlackPlayer
		snap.Event = g.Event
	}
	if err := s.Err(); err != nil {
		snap.Error = err.Error()
	}
	return snap
}

// Options lists the selector entries of c in catalog order.
func Options(c *catalog.Catalog) []Option {
	games := c.Games()
	out := make([]Option, 0, len(games))
	for _, g := range games {
		out = append(out, Option{ID: g.ID, VariantName: g.VariantName})
	}
	return out
}
