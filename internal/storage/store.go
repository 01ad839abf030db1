package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"annochess/internal/catalog"
)

// Store wraps a gorm DB instance. A nil *Store behaves as an empty, read-only
// repository.
type Store struct {
	db *gorm.DB
}

var _ Repository = (*Store)(nil)

// NewStore creates a new store helper from a gorm DB.
func NewStore(db *gorm.DB) *Store {
	if db == nil {
		return nil
	}
	return &Store{db: db}
}

func inInsertionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("explanations.id ASC")
}

// ListGames returns all games ordered by id, explanations in insertion order.
func (s *Store) ListGames(ctx context.Context) ([]catalog.Game, error) {
	if s == nil {
		return []catalog.Game{}, nil
	}
	var rows []Game
	if err := s.db.WithContext(ctx).
		Preload("Explanations", inInsertionOrder).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	out := make([]catalog.Game, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toCatalog())
	}
	return out, nil
}

// GetGame fetches a game by id.
func (s *Store) GetGame(ctx context.Context, id int64) (catalog.Game, error) {
	if s == nil {
		return catalog.Game{}, ErrNotFound
	}
	var row Game
	err := s.db.WithContext(ctx).
		Preload("Explanations", inInsertionOrder).
		First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return catalog.Game{}, ErrNotFound
	}
	if err != nil {
		return catalog.Game{}, fmt.Errorf("get game %d: %w", id, err)
	}
	return row.toCatalog(), nil
}

// CreateGame inserts the game and its explanations in one transaction.
func (s *Store) CreateGame(ctx context.Context, g catalog.Game) (catalog.Game, error) {
	if s == nil {
		return catalog.Game{}, ErrNotConfigured
	}
	row := fromCatalog(g)
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	}); err != nil {
		return catalog.Game{}, fmt.Errorf("create game: %w", err)
	}
	return row.toCatalog(), nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
