package board

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/corentings/chess/v2"
)

var (
	lightSquare    = color.RGBA{233, 207, 163, 255}
	darkSquare     = color.RGBA{187, 136, 96, 255}
	coordinateText = color.RGBA{90, 62, 40, 255}
)

// isDark reports whether sq is a dark square; a1 is dark.
func isDark(sq chess.Square) bool {
	return (int(sq.File())+int(sq.Rank()))%2 == 0
}

func squareColor(sq chess.Square) color.RGBA {
	if isDark(sq) {
		return darkSquare
	}
	return lightSquare
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// SVG renders b as an inline SVG element of the given pixel size, white at the
// bottom. Pieces are Unicode glyphs so the markup stays self-contained.
func SVG(b *chess.Board, size int) string {
	if size <= 0 {
		size = 480
	}
	const sq = 60
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" class="board" width="%d" height="%d" viewBox="0 0 %d %d" role="img" aria-label="chess board">`,
		size, size, sq*8, sq*8)
	for row, r := range ranks {
		for col, f := range files {
			s := chess.NewSquare(f, r)
			x, y := col*sq, row*sq
			fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s"/>`, x, y, sq, sq, hex(squareColor(s)))
			if g := Glyph(b.Piece(s)); g != "" {
				fmt.Fprintf(&sb, `<text class="piece" x="%d" y="%d" font-size="48" text-anchor="middle" dominant-baseline="central">%s</text>`,
					x+sq/2, y+sq/2+2, g)
			}
		}
	}
	for col, f := range files {
		fmt.Fprintf(&sb, `<text class="coord" x="%d" y="%d" font-size="10" fill="%s">%s</text>`, col*sq+sq-9, sq*8-3, hex(coordinateText), f.String())
	}
	for row, r := range ranks {
		fmt.Fprintf(&sb, `<text class="coord" x="2" y="%d" font-size="10" fill="%s">%s</text>`, row*sq+11, hex(coordinateText), r.String())
	}
	sb.WriteString(`</svg>`)
	return sb.String()
}
