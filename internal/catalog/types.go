package catalog

// Annotation is the commentary attached to one ply of a Game.
type Annotation struct {
	Ply        int    `json:"ply"`
	MoveNumber int    `json:"move_number"`
	Color      bool   `json:"color"` // true when white made the move
	Content    string `json:"content"`
}

// Game is one annotated game as served by the listing endpoint.
type Game struct {
	ID           int64        `json:"id"`
	VariantName  string       `json:"variant_name"`
	Event        string       `json:"event"`
	WhitePlayer  string       `json:"white_player"`
	BlackPlayer  string       `json:"black_player"`
	PGN          string       `json:"pgn"`
	Explanations []Annotation `json:"explanations"`
}

// AnnotationAt returns the first annotation recorded for ply. Later entries
// with the same ply are ignored.
func (g Game) AnnotationAt(ply int) (Annotation, bool) {
	for _, a := range g.Explanations {
		if a.Ply == ply {
			return a, true
		}
	}
	return Annotation{}, false
}

// MoveNumberForPly returns the full-move number shown next to a ply.
func MoveNumberForPly(ply int) int { return ply/2 + 1 }

// ColorForPly reports whether the move that produced ply was played by white.
func ColorForPly(ply int) bool { return ply%2 == 1 }
