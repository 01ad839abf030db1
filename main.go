package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"annochess/internal/config"
	"annochess/internal/logging"
	"annochess/internal/msgcat"
	"annochess/internal/storage"
	"annochess/internal/storage/sqlite"
	"annochess/internal/templates"
	"annochess/internal/viewer"
)

// rootOptions is shared by every subcommand.
type rootOptions struct {
	cfg       config.Config
	logLevel  string
	logFormat string
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "annochess",
		Short:        "Step through annotated chess games in the browser or the terminal.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = opts.logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = opts.logFormat
			}
			opts.cfg = cfg
			templates.SetCommit(commit)
			return logging.Init(cfg.LogLevel, cfg.LogFormat)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "console", "log format (console or json)")

	addServe(cmd, opts)
	addImport(cmd, opts)
	addList(cmd, opts)
	addView(cmd, opts)
	addVersion(cmd)
	return cmd
}

// openStore opens Postgres when a database URL is configured and the SQLite
// file otherwise.
func openStore(cfg config.Config) (storage.Repository, error) {
	if cfg.DatabaseURL != "" {
		s, err := storage.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return s, nil
	}
	s, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
	}
	return s, nil
}

func newResolver(cfg config.Config) (*viewer.Resolver, error) {
	msgs, err := msgcat.New(cfg.MessagesDir)
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	return viewer.NewResolver(msgs), nil
}
