// Package storage persists annotated games. The gorm store in this package
// targets Postgres; package sqlite holds a file-backed store for local use.
package storage

import (
	"context"
	"errors"

	"annochess/internal/catalog"
)

// ErrNotFound is returned when a game does not exist.
var ErrNotFound = errors.New("game not found")

// ErrNotConfigured is returned by writes on a store without a database.
var ErrNotConfigured = errors.New("storage is not configured")

// Repository is the set of game operations both stores provide.
type Repository interface {
	// ListGames returns every game with its explanations, ordered by id.
	ListGames(ctx context.Context) ([]catalog.Game, error)
	// GetGame returns one game or ErrNotFound.
	GetGame(ctx context.Context, id int64) (catalog.Game, error)
	// CreateGame stores g and its explanations and returns it with the
	// assigned id.
	CreateGame(ctx context.Context, g catalog.Game) (catalog.Game, error)
	Close() error
}

// UniquePlies drops annotations whose ply already appeared earlier, keeping
// the first, and drops those with blank content. Order is preserved.
func UniquePlies(in []catalog.Annotation) []catalog.Annotation {
	seen := make(map[int]struct{}, len(in))
	out := make([]catalog.Annotation, 0, len(in))
	for _, a := range in {
		if a.Content == "" {
			continue
		}
		if _, dup := seen[a.Ply]; dup {
			continue
		}
		seen[a.Ply] = struct{}{}
		out = append(out, a)
	}
	return out
}
