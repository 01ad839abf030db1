package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"annochess/internal/catalog"
	"annochess/internal/viewer"
)

func addList(topLevel *cobra.Command, opts *rootOptions) {
	var url string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the stored games.",
		Example: `
annochess list
annochess list --url http://localhost:8080
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			src, closeFn, err := gameSource(opts, url)
			if err != nil {
				return err
			}
			defer closeFn()

			games, err := src.FetchGames(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(games) == 0 {
				_, _ = color.New(color.Faint, color.Italic).Fprintln(out, "no games")
				return nil
			}
			_, _ = fmt.Fprintln(out, gameTable(games))
			return nil
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "read from a running server instead of the local store")
	topLevel.AddCommand(cmd)
}

func gameTable(games []catalog.Game) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow("ID", "VARIANT", "WHITE", "BLACK", "PLIES", "EXPLANATIONS")
	for _, g := range games {
		plies := "invalid"
		if moves, err := viewer.ParseMovetext(g.PGN); err == nil {
			plies = strconv.Itoa(len(moves))
		}
		tbl.AddRow(strconv.FormatInt(g.ID, 10), g.VariantName, g.WhitePlayer, g.BlackPlayer, plies, strconv.Itoa(len(g.Explanations)))
	}
	return tbl
}

// gameSource reads games from url when set, else from the configured store.
func gameSource(opts *rootOptions, url string) (catalog.Source, func(), error) {
	if url == "" {
		url = opts.cfg.CatalogURL
	}
	if url != "" {
		return catalog.NewHTTPSource(url, opts.cfg.FetchTimeout), func() {}, nil
	}
	repo, err := openStore(opts.cfg)
	if err != nil {
		return nil, nil, err
	}
	return catalog.SourceFunc(repo.ListGames), func() { _ = repo.Close() }, nil
}
