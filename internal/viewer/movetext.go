package viewer

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/corentings/chess/v2"
)

// ErrInvalidMovetext is returned when a game's movetext cannot be read or
// contains an illegal move.
var ErrInvalidMovetext = errors.New("invalid movetext")

// ParseMovetext reads movetext such as "1. e4 e5 2. Nf3" and returns its moves
// as SAN tokens. Blank movetext is an empty game.
func ParseMovetext(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	opt, err := chess.PGN(strings.NewReader(normalizeMovetext(text)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMovetext, err)
	}
	g := chess.NewGame(opt)

	moves := g.Moves()
	positions := g.Positions()
	if len(positions) < len(moves) {
		return nil, fmt.Errorf("%w: %d positions for %d moves", ErrInvalidMovetext, len(positions), len(moves))
	}

	out := make([]string, len(moves))
	notation := chess.AlgebraicNotation{}
	for i, mv := range moves {
		out[i] = notation.Encode(positions[i], mv)
	}
	return out, nil
}

// Replay applies the first ply moves to a new game from the standard initial
// position.
func Replay(moves []string, ply int) (*chess.Game, error) {
	if ply < 0 || ply > len(moves) {
		return nil, fmt.Errorf("ply %d out of range [0, %d]", ply, len(moves))
	}
	g := chess.NewGame()
	for i := 0; i < ply; i++ {
		if err := g.PushNotationMove(moves[i], chess.AlgebraicNotation{}, nil); err != nil {
			return nil, fmt.Errorf("apply move %d (%s): %w", i+1, moves[i], err)
		}
	}
	return g, nil
}

var resultTokens = []string{"1-0", "0-1", "1/2-1/2", "*"}

// normalizeMovetext turns bare movetext into a one-game PGN document: a tag
// section is added when missing and an unknown result terminates the moves.
func normalizeMovetext(text string) string {
	body := strings.TrimSpace(text)
	var b strings.Builder
	if !strings.HasPrefix(body, "[") {
		b.WriteString("[Event \"?\"]\n\n")
	}
	b.WriteString(body)
	fields := strings.Fields(body)
	last := ""
	if len(fields) > 0 {
		last = fields[len(fields)-1]
	}
	if !slices.Contains(resultTokens, last) {
		b.WriteString(" *")
	}
	b.WriteString("\n")
	return b.String()
}
