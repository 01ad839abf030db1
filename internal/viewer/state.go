// Package viewer implements ply navigation over an annotated game and the
// lookup of the commentary shown for each ply.
//
// State is a value: every navigation operation returns a new State and leaves
// the receiver untouched. The displayed position is always rebuilt by
// replaying the move list from the initial position, never by applying or
// undoing a single move.
package viewer

import (
	"github.com/corentings/chess/v2"
	"go.uber.org/zap"

	"annochess/internal/catalog"
	"annochess/internal/logging"
)

// State is the navigation state of one viewer.
type State struct {
	game  *catalog.Game
	moves []string
	ply   int
	err   error

	fen   string
	board *chess.Board
}

// Initial returns the state right after the catalog resolves: the first game
// selected when there is one, nothing selected otherwise.
func Initial(c *catalog.Catalog) State {
	if g, ok := c.Default(); ok {
		return State{}.Select(g)
	}
	return State{}
}

// Select parses g's movetext and resets navigation to ply 0. When the movetext
// cannot be parsed the game stays selected with no moves, so navigation is
// frozen at the initial position and Err reports why.
func (s State) Select(g catalog.Game) State {
	game := g
	moves, err := ParseMovetext(g.PGN)
	if err != nil {
		logging.L().Warn("movetext rejected",
			zap.Int64("game_id", g.ID),
			zap.String("variant", g.VariantName),
			zap.Error(err))
		return State{game: &game, moves: nil, err: err}
	}
	return State{game: &game, moves: moves}.at(0)
}

// Advance moves one ply forward. At the last ply it is a no-op.
func (s State) Advance() State {
	if s.ply >= len(s.moves) {
		return s
	}
	return s.at(s.ply + 1)
}

// Retreat moves one ply back. At ply 0 it is a no-op.
func (s State) Retreat() State {
	if s.ply <= 0 {
		return s
	}
	return s.at(s.ply - 1)
}

// Goto jumps to ply, clamped to [0, MoveCount()].
func (s State) Goto(ply int) State {
	if ply < 0 {
		ply = 0
	}
	if ply > len(s.moves) {
		ply = len(s.moves)
	}
	if ply == s.ply && s.board != nil {
		return s
	}
	return s.at(ply)
}

// at rebuilds the position for ply by full replay.
func (s State) at(ply int) State {
	g, err := Replay(s.moves, ply)
	if err != nil {
		logging.L().Error("replay failed", zap.Int("ply", ply), zap.Error(err))
		return s
	}
	next := s
	next.ply = ply
	next.fen = g.FEN()
	next.board = g.Position().Board()
	return next
}

// Selected reports whether a game is selected.
func (s State) Selected() bool { return s.game != nil }

// Game returns the selected game.
func (s State) Game() (catalog.Game, bool) {
	if s.game == nil {
		return catalog.Game{}, false
	}
	return *s.game, true
}

// Ply returns the current ply index.
func (s State) Ply() int { return s.ply }

// MoveCount returns the number of plies in the selected game.
func (s State) MoveCount() int { return len(s.moves) }

// Moves returns a copy of the SAN move list.
func (s State) Moves() []string { return append([]string(nil), s.moves...) }

// Err returns the movetext error of the selected game, if any.
func (s State) Err() error { return s.err }

// CanAdvance reports whether Advance would change the state.
func (s State) CanAdvance() bool { return s.ply < len(s.moves) }

// CanRetreat reports whether Retreat would change the state.
func (s State) CanRetreat() bool { return s.ply > 0 }

// LastMove returns the SAN of the move that led to the current ply.
func (s State) LastMove() string {
	if s.ply == 0 || s.ply > len(s.moves) {
		return ""
	}
	return s.moves[s.ply-1]
}

// FEN returns the derived position in FEN.
func (s State) FEN() string {
	if s.fen == "" {
		return startFEN
	}
	return s.fen
}

// Board returns the derived position's board.
func (s State) Board() *chess.Board {
	if s.board == nil {
		return chess.NewGame().Position().Board()
	}
	return s.board
}

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
