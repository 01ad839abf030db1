package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"annochess/internal/cache"
	"annochess/internal/importer"
	"annochess/internal/logging"
)

func addImport(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load annotated games from a text file into the store.",
		Long: `Load annotated games from a text file into the store.

Each game sits between ===GAME=== and ===END=== (or ===JOGO=== and ===FIM===).
The header carries VARIANT:, EVENT:, WHITE:, BLACK: and PGN: lines; after
---ANNOTATIONS--- every "PLY N:" starts the explanation for that ply.
Use "-" to read from standard input.`,
		Example: `
annochess import openings.txt
cat openings.txt | annochess import -
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = os.Stdin
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			repo, err := openStore(opts.cfg)
			if err != nil {
				return err
			}
			defer repo.Close()

			res, err := importer.Import(cmd.Context(), in, repo)
			printImport(cmd.OutOrStdout(), res)
			if err != nil {
				return err
			}

			if opts.cfg.RedisURL != "" && res.Games > 0 {
				rc, err := cache.Open(cmd.Context(), opts.cfg.RedisURL, opts.cfg.CatalogCacheTTL, nil)
				if err != nil {
					logging.L().Warn("catalog cache not invalidated", zap.Error(err))
					return nil
				}
				defer rc.Close()
				if err := rc.Invalidate(cmd.Context()); err != nil {
					logging.L().Warn("catalog cache not invalidated", zap.Error(err))
				}
			}
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func printImport(w io.Writer, res importer.Result) {
	ok := color.New(color.FgGreen, color.Bold)
	warn := color.New(color.FgYellow)
	_, _ = ok.Fprintf(w, "Imported %d games with %d explanations\n", res.Games, res.Explanations)

	if len(res.Created) > 0 {
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow("ID", "VARIANT", "EXPLANATIONS")
		for _, g := range res.Created {
			tbl.AddRow(strconv.FormatInt(g.ID, 10), g.VariantName, strconv.Itoa(len(g.Explanations)))
		}
		_, _ = fmt.Fprintln(w, tbl)
	}
	for _, inv := range res.Invalid {
		_, _ = warn.Fprintf(w, "game %d (%s) has invalid moves: %s\n", inv.ID, inv.Variant, inv.Error)
	}
	for _, s := range res.Skipped {
		_, _ = warn.Fprintf(w, "skipped block %d: %s\n", s.Block, s.Reason)
	}
}
