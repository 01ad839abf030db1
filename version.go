package main

import (
	"fmt"
	"os/exec"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var commit = "dev"
var buildDate = ""

func init() {
	info, ok := debug.ReadBuildInfo()
	if ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "dev" && len(s.Value) >= 7 {
					commit = s.Value[:7]
				}
			case "vcs.time":
				if t, err := time.Parse(time.RFC3339, s.Value); err == nil && buildDate == "" {
					buildDate = t.Format("2006-01-02")
				}
			}
		}
	}
	if commit == "dev" {
		if out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output(); err == nil {
			commit = strings.TrimSpace(string(out))
		}
	}
}

func addVersion(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the build commit and date.",
		Run: func(cmd *cobra.Command, _ []string) {
			date := buildDate
			if date == "" {
				date = "unknown"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "annochess %s (%s)\n", commit, date)
		},
	}
	topLevel.AddCommand(cmd)
}
