package importer

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"annochess/internal/catalog"
	"annochess/internal/logging"
	"annochess/internal/viewer"
)

// Writer stores one game and returns it with its assigned id.
type Writer interface {
	CreateGame(ctx context.Context, g catalog.Game) (catalog.Game, error)
}

// Invalid names a stored game whose movetext does not parse.
type Invalid struct {
	ID      int64  `json:"id"`
	Variant string `json:"variant"`
	Error   string `json:"error"`
}

// Result summarises an import.
type Result struct {
	Games        int            `json:"games"`
	Explanations int            `json:"explanations"`
	Created      []catalog.Game `json:"-"`
	Skipped      []Skip         `json:"skipped"`
	Invalid      []Invalid      `json:"invalid"`
}

// Import parses r and stores every game through w. Games whose movetext fails
// to parse are stored anyway and listed in Result.Invalid; the viewer reports
// them when they are selected. A storage error stops the import and is
// returned with the result so far.
func Import(ctx context.Context, r io.Reader, w Writer) (Result, error) {
	games, skips, err := Parse(r)
	if err != nil {
		return Result{}, err
	}
	res := Result{Skipped: skips}
	for _, s := range skips {
		logging.L().Warn("block skipped", zap.Int("block", s.Block), zap.String("reason", s.Reason))
	}

	for _, g := range games {
		created, err := w.CreateGame(ctx, g)
		if err != nil {
			return res, fmt.Errorf("store %q: %w", g.VariantName, err)
		}
		res.Games++
		res.Explanations += len(created.Explanations)
		res.Created = append(res.Created, created)

		if _, perr := viewer.ParseMovetext(g.PGN); perr != nil {
			res.Invalid = append(res.Invalid, Invalid{ID: created.ID, Variant: g.VariantName, Error: perr.Error()})
			logging.L().Warn("stored game has invalid movetext",
				zap.Int64("game_id", created.ID),
				zap.String("variant", g.VariantName),
				zap.Error(perr))
			continue
		}
		logging.L().Info("game imported",
			zap.Int64("game_id", created.ID),
			zap.String("variant", g.VariantName),
			zap.Int("explanations", len(created.Explanations)))
	}
	return res, nil
}
