// Package board draws chess positions: SVG markup for the web page, PNG
// images, and a Unicode text board for terminals.
package board

import (
	"strings"

	"github.com/corentings/chess/v2"
)

var (
	ranks = []chess.Rank{chess.Rank8, chess.Rank7, chess.Rank6, chess.Rank5, chess.Rank4, chess.Rank3, chess.Rank2, chess.Rank1}
	files = []chess.File{chess.FileA, chess.FileB, chess.FileC, chess.FileD, chess.FileE, chess.FileF, chess.FileG, chess.FileH}
)

var glyphs = map[chess.Piece]string{
	chess.WhiteKing:   "♔",
	chess.WhiteQueen:  "♕",
	chess.WhiteRook:   "♖",
	chess.WhiteBishop: "♗",
	chess.WhiteKnight: "♘",
	chess.WhitePawn:   "♙",
	chess.BlackKing:   "♚",
	chess.BlackQueen:  "♛",
	chess.BlackRook:   "♜",
	chess.BlackBishop: "♝",
	chess.BlackKnight: "♞",
	chess.BlackPawn:   "♟",
}

// Glyph returns the Unicode chess symbol for p, or "" for no piece.
func Glyph(p chess.Piece) string {
	return glyphs[p]
}

// Text renders b as eight rank lines, white at the bottom, followed by the
// file letters. Empty squares are shown as a middle dot.
func Text(b *chess.Board) string {
	var sb strings.Builder
	for _, r := range ranks {
		sb.WriteString(r.String())
		for _, f := range files {
			sb.WriteByte(' ')
			if g := Glyph(b.Piece(chess.NewSquare(f, r))); g != "" {
				sb.WriteString(g)
			} else {
				sb.WriteString("·")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h")
	return sb.String()
}
