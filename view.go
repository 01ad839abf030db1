package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"annochess/internal/config"
	"annochess/internal/logging"
	"annochess/internal/tui"
)

func addView(topLevel *cobra.Command, opts *rootOptions) {
	var url, logFile string
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Step through the games in the terminal.",
		Example: `
annochess view
annochess view --url http://localhost:8080 --log-file /tmp/annochess.log
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Log lines on the terminal would tear the full-screen UI.
			closeLog, err := logToFile(logFile, opts.cfg)
			if err != nil {
				return err
			}
			defer closeLog()

			src, closeFn, err := gameSource(opts, url)
			if err != nil {
				return err
			}
			defer closeFn()

			resolver, err := newResolver(opts.cfg)
			if err != nil {
				return err
			}

			_, err = tea.NewProgram(tui.New(cmd.Context(), src, resolver), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "read from a running server instead of the local store")
	cmd.Flags().StringVar(&logFile, "log-file", "annochess-view.log", "file receiving log lines while the viewer runs")
	topLevel.AddCommand(cmd)
}

// logToFile points the global logger at path, appending.
func logToFile(path string, cfg config.Config) (func(), error) {
	f, err := tea.LogToFile(path, "annochess")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	if err := logging.InitWriter(cfg.LogLevel, cfg.LogFormat, f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return func() { _ = f.Close() }, nil
}
