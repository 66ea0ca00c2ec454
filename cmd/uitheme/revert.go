package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yacobolo/uitheme"
	"github.com/yacobolo/uitheme/internal/translog"
)

var revertCmd = &cobra.Command{
	Use:   "revert <session-id>",
	Short: "Undo the changes of a transform session",
	Long: `Print how to run the generated revert script of a session, or restore
the files in process with --apply. Files edited after the run are restored
anyway and reported.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runRevert,
}

func init() {
	revertCmd.Flags().Bool("apply", false, "Restore the files now instead of printing the script")
}

func runRevert(cmd *cobra.Command, args []string) error {
	id := args[0]
	logDir := getStringWithFallback("log-dir", "log.dir", translog.DefaultDir)
	quiet := getBoolWithFallback("quiet", "quiet", false)
	fs := afero.NewOsFs()
	out := cmd.OutOrStdout()

	apply, _ := cmd.Flags().GetBool("apply")
	if !apply {
		store := translog.NewLogger(fs, logDir)
		if _, err := store.Load(id); err != nil {
			return err
		}
		script := store.ScriptPath(id)
		if _, err := fs.Stat(script); errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("session %s has no revert script (nothing changed)", id)
		}
		fmt.Fprintf(out, "Revert with: sh %s\n", script)
		return nil
	}

	result, err := uitheme.Revert(fs, logDir, id)
	if err != nil {
		return fmt.Errorf("revert failed: %w", err)
	}
	if quiet {
		return nil
	}
	for _, path := range result.Restored {
		fmt.Fprintf(out, "restored %s\n", path)
	}
	for _, path := range result.Modified {
		fmt.Fprintf(os.Stderr, "Warning: %s was modified after session %s\n", path, id)
	}
	return nil
}
