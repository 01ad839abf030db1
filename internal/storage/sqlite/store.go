// Package sqlite provides a SQLite-backed game store.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"annochess/internal/catalog"
	"annochess/internal/storage"
)

//go:embed schema.sql
var schema string

// Store persists games in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.Repository = (*Store)(nil)

// Open opens a SQLite game store and applies the embedded schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateGame inserts g and its explanations in one transaction.
func (s *Store) CreateGame(ctx context.Context, g catalog.Game) (catalog.Game, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Game{}, err
	}
	if s == nil || s.sqlDB == nil {
		return catalog.Game{}, storage.ErrNotConfigured
	}
	if strings.TrimSpace(g.VariantName) == "" {
		return catalog.Game{}, fmt.Errorf("variant name is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return catalog.Game{}, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO games (variant_name, event, white_player, black_player, pgn, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		g.VariantName, g.Event, g.WhitePlayer, g.BlackPlayer, g.PGN, time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return catalog.Game{}, fmt.Errorf("insert game: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return catalog.Game{}, fmt.Errorf("game id: %w", err)
	}

	out := g
	out.ID = id
	out.Explanations = nil
	for _, a := range storage.UniquePlies(g.Explanations) {
		a.MoveNumber = catalog.MoveNumberForPly(a.Ply)
		a.Color = catalog.ColorForPly(a.Ply)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO explanations (game_id, ply, move_number, color, content) VALUES (?, ?, ?, ?, ?)`,
			id, a.Ply, a.MoveNumber, a.Color, a.Content,
		); err != nil {
			return catalog.Game{}, fmt.Errorf("insert explanation ply %d: %w", a.Ply, err)
		}
		out.Explanations = append(out.Explanations, a)
	}
	if err := tx.Commit(); err != nil {
		return catalog.Game{}, fmt.Errorf("commit: %w", err)
	}
	if out.Explanations == nil {
		out.Explanations = []catalog.Annotation{}
	}
	return out, nil
}

// GetGame returns one game by id.
func (s *Store) GetGame(ctx context.Context, id int64) (catalog.Game, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Game{}, err
	}
	if s == nil || s.sqlDB == nil {
		return catalog.Game{}, storage.ErrNotFound
	}
	var g catalog.Game
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, variant_name, event, white_player, black_player, pgn FROM games WHERE id = ?`, id,
	).Scan(&g.ID, &g.VariantName, &g.Event, &g.WhitePlayer, &g.BlackPlayer, &g.PGN)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Game{}, storage.ErrNotFound
	}
	if err != nil {
		return catalog.Game{}, fmt.Errorf("get game %d: %w", id, err)
	}
	byGame, err := s.explanations(ctx, `WHERE game_id = ?`, id)
	if err != nil {
		return catalog.Game{}, err
	}
	g.Explanations = orEmpty(byGame[id])
	return g, nil
}

// ListGames returns every game ordered by id.
func (s *Store) ListGames(ctx context.Context) ([]catalog.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return []catalog.Game{}, nil
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, variant_name, event, white_player, black_player, pgn FROM games ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	games := []catalog.Game{}
	for rows.Next() {
		var g catalog.Game
		if err := rows.Scan(&g.ID, &g.VariantName, &g.Event, &g.WhitePlayer, &g.BlackPlayer, &g.PGN); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate games: %w", err)
	}

	byGame, err := s.explanations(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range games {
		games[i].Explanations = orEmpty(byGame[games[i].ID])
	}
	return games, nil
}

// explanations loads explanation rows matching where, grouped by game and in
// insertion order.
func (s *Store) explanations(ctx context.Context, where string, args ...any) (map[int64][]catalog.Annotation, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT game_id, ply, move_number, color, content FROM explanations `+where+` ORDER BY id ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list explanations: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]catalog.Annotation)
	for rows.Next() {
		var (
			gameID int64
			a      catalog.Annotation
		)
		if err := rows.Scan(&gameID, &a.Ply, &a.MoveNumber, &a.Color, &a.Content); err != nil {
			return nil, fmt.Errorf("scan explanation: %w", err)
		}
		out[gameID] = append(out[gameID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate explanations: %w", err)
	}
	return out, nil
}

func orEmpty(a []catalog.Annotation) []catalog.Annotation {
	if a == nil {
		return []catalog.Annotation{}
	}
	return a
}
