package main

import (
	"fmt"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yacobolo/uitheme/internal/translog"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List logged transform sessions, newest first",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		logDir := getStringWithFallback("log-dir", "log.dir", translog.DefaultDir)
		sessions, err := translog.NewLogger(afero.NewOsFs(), logDir).List()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(sessions) == 0 {
			fmt.Fprintf(out, "No sessions in %s\n", logDir)
			return nil
		}
		for _, s := range sessions {
			fmt.Fprintf(out, "%s  %s  %d files, %d changes\n",
				s.ID, s.StartedAt.Local().Format(time.DateTime), len(s.Files()), len(s.Records))
		}
		return nil
	},
}
