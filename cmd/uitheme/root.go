package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "uitheme",
	Short: "Semantic theme migration for Catalyst-style components",
	Long: `Rewrites hardcoded palette classes in React component sources into
semantic theme tokens, prefixes component names and logs every change so
the whole run can be reverted with one generated script.`,
	// Default behavior: run transform when no subcommand is given.
	// We must call loadConfig here because PreRunE of transformCmd
	// is not triggered when delegating via rootCmd.RunE. Transform flags
	// are not parsed on the root command, so only the config file, env
	// and persistent flags apply.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runTransform(cmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".uitheme.yaml", "Config file path")
	rootCmd.PersistentFlags().String("log-dir", ".uitheme", "Session and revert script directory")

	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(revertCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
