package board

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"
	"sync"

	"github.com/corentings/chess/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultSquareSize is the square edge in pixels used when none is configured.
const DefaultSquareSize = 56

var (
	whiteToken  = color.RGBA{248, 246, 240, 255}
	blackToken  = color.RGBA{34, 34, 38, 255}
	marginColor = color.RGBA{245, 236, 220, 255}
)

// Renderer draws PNG images of a board.
type Renderer struct {
	SquareSize int

	mu     sync.RWMutex
	tokens map[tokenKey]image.Image
}

type tokenKey struct {
	piece chess.Piece
	size  int
}

// NewRenderer returns a renderer with the given square size in pixels.
func NewRenderer(squareSize int) *Renderer {
	if squareSize <= 0 {
		squareSize = DefaultSquareSize
	}
	return &Renderer{SquareSize: squareSize, tokens: make(map[tokenKey]image.Image)}
}

// Bounds returns the image rectangle produced by RenderPNG.
func (r *Renderer) Bounds() image.Rectangle {
	side := r.SquareSize*8 + 2*r.margin()
	return image.Rect(0, 0, side, side)
}

func (r *Renderer) margin() int {
	return r.SquareSize / 3
}

// RenderPNG encodes b as a PNG image, white at the bottom, with file and rank
// labels in the margin.
func (r *Renderer) RenderPNG(ctx context.Context, b *chess.Board) ([]byte, error) {
	if b == nil {
		return nil, errors.New("board is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img := image.NewRGBA(r.Bounds())
	draw.Draw(img, img.Bounds(), image.NewUniform(marginColor), image.Point{}, draw.Src)
	origin := image.Pt(r.margin(), r.margin())

	r.drawSquares(img, origin)
	if err := r.drawPieces(img, b, origin); err != nil {
		return nil, err
	}
	r.drawCoordinates(img, origin)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) squareRect(sq chess.Square, origin image.Point) image.Rectangle {
	x := origin.X + int(sq.File())*r.SquareSize
	y := origin.Y + (7-int(sq.Rank()))*r.SquareSize
	return image.Rect(x, y, x+r.SquareSize, y+r.SquareSize)
}

func (r *Renderer) drawSquares(dst draw.Image, origin image.Point) {
	for _, rank := range ranks {
		for _, file := range files {
			sq := chess.NewSquare(file, rank)
			draw.Draw(dst, r.squareRect(sq, origin), image.NewUniform(squareColor(sq)), image.Point{}, draw.Src)
		}
	}
}

func (r *Renderer) drawPieces(dst *image.RGBA, b *chess.Board, origin image.Point) error {
	for sq, piece := range b.SquareMap() {
		if piece == chess.NoPiece {
			continue
		}
		token, err := r.token(piece, r.SquareSize)
		if err != nil {
			return err
		}
		rect := r.squareRect(sq, origin)
		draw.Draw(dst, rect, token, image.Point{}, draw.Over)

		ink := blackToken
		if piece.Color() == chess.Black {
			ink = whiteToken
		}
		drawCentered(dst, rect, pieceLetter(piece.Type()), ink)
	}
	return nil
}

func (r *Renderer) drawCoordinates(dst *image.RGBA, origin image.Point) {
	m := r.margin()
	for _, file := range files {
		rect := r.squareRect(chess.NewSquare(file, chess.Rank1), origin)
		label := image.Rect(rect.Min.X, rect.Max.Y, rect.Max.X, rect.Max.Y+m)
		drawCentered(dst, label, file.String(), coordinateText)
	}
	for _, rank := range ranks {
		rect := r.squareRect(chess.NewSquare(chess.FileA, rank), origin)
		label := image.Rect(rect.Min.X-m, rect.Min.Y, rect.Min.X, rect.Max.Y)
		drawCentered(dst, label, rank.String(), coordinateText)
	}
}

// token rasterizes the disc drawn under a piece letter. Results are kept per
// piece and size.
func (r *Renderer) token(piece chess.Piece, size int) (image.Image, error) {
	key := tokenKey{piece: piece, size: size}

	r.mu.RLock()
	if img, ok := r.tokens[key]; ok {
		r.mu.RUnlock()
		return img, nil
	}
	r.mu.RUnlock()

	icon, err := oksvg.ReadIconStream(strings.NewReader(tokenSVG(piece.Color())))
	if err != nil {
		return nil, fmt.Errorf("parse token svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	r.mu.Lock()
	r.tokens[key] = img
	r.mu.Unlock()
	return img, nil
}

func tokenSVG(c chess.Color) string {
	fill, stroke := whiteToken, blackToken
	if c == chess.Black {
		fill, stroke = blackToken, whiteToken
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="100" height="100" viewBox="0 0 100 100">`+
		`<circle cx="50" cy="50" r="36" fill="%s" stroke="%s" stroke-width="5"/></svg>`, hex(fill), hex(stroke))
}

func pieceLetter(t chess.PieceType) string {
	switch t {
	case chess.King:
		return "K"
	case chess.Queen:
		return "Q"
	case chess.Rook:
		return "R"
	case chess.Bishop:
		return "B"
	case chess.Knight:
		return "N"
	case chess.Pawn:
		return "P"
	}
	return ""
}

func drawCentered(dst draw.Image, rect image.Rectangle, text string, clr color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(clr), Face: face}
	w := d.MeasureString(text).Round()
	m := face.Metrics()
	h := (m.Ascent + m.Descent).Round()
	x := rect.Min.X + (rect.Dx()-w)/2
	y := rect.Min.Y + (rect.Dy()-h)/2 + m.Ascent.Round()
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}
