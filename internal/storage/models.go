package storage

import (
	"time"

	"annochess/internal/catalog"
)

// Game is an annotated game row.
type Game struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	VariantName  string `gorm:"size:100;not null"`
	Event        string `gorm:"size:200"`
	WhitePlayer  string `gorm:"size:100"`
	BlackPlayer  string `gorm:"size:100"`
	PGN          string `gorm:"type:text;not null"`
	CreatedAt    time.Time
	Explanations []Explanation `gorm:"constraint:OnDelete:CASCADE;"`
}

// Explanation is the commentary attached to one ply of a game.
type Explanation struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	GameID     int64 `gorm:"not null;uniqueIndex:idx_explanation_game_ply"`
	Ply        int   `gorm:"not null;uniqueIndex:idx_explanation_game_ply"`
	MoveNumber int   `gorm:"not null"`
	Color      bool
	Content    string `gorm:"type:text;not null"`
}

func (g Game) toCatalog() catalog.Game {
	out := catalog.Game{
		ID:           g.ID,
		VariantName:  g.VariantName,
		Event:        g.Event,
		WhitePlayer:  g.WhitePlayer,
		BlackPlayer:  g.BlackPlayer,
		PGN:          g.PGN,
		Explanations: make([]catalog.Annotation, 0, len(g.Explanations)),
	}
	for _, e := range g.Explanations {
		out.Explanations = append(out.Explanations, catalog.Annotation{
			Ply:        e.Ply,
			MoveNumber: e.MoveNumber,
			Color:      e.Color,
			Content:    e.Content,
		})
	}
	return out
}

func fromCatalog(g catalog.Game) Game {
	row := Game{
		VariantName: g.VariantName,
		Event:       g.Event,
		WhitePlayer: g.WhitePlayer,
		BlackPlayer: g.BlackPlayer,
		PGN:         g.PGN,
	}
	for _, a := range UniquePlies(g.Explanations) {
		row.Explanations = append(row.Explanations, Explanation{
			Ply:        a.Ply,
			MoveNumber: catalog.MoveNumberForPly(a.Ply),
			Color:      catalog.ColorForPly(a.Ply),
			Content:    a.Content,
		})
	}
	return row
}
