package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/uitheme"
	"github.com/yacobolo/uitheme/internal/logging"
	"github.com/yacobolo/uitheme/internal/prefix"
	"github.com/yacobolo/uitheme/internal/report"
	"github.com/yacobolo/uitheme/internal/transforms"
)

var transformCmd = &cobra.Command{
	Use:     "transform",
	Aliases: []string{"run"},
	Short:   "Apply the theming transforms to component sources",
	Long: `Run every transform unit, in phase order, over the component sources.
Files that fail to transform or validate are left untouched. Every change is
logged into a session and a revert script is generated for live runs.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runTransform,
}

func init() {
	f := transformCmd.Flags()
	f.String("src", "src", "Component source directory")
	f.String("out", "", "Write results under this directory instead of rewriting sources")
	f.StringSlice("include", nil, "Glob patterns (relative to --src) of files to transform")
	f.StringSlice("exclude", nil, "Transform units to skip (see `uitheme list`)")
	f.Bool("dry-run", false, "Compute and log changes without writing files")
	f.Bool("diff", false, "Print unified diffs of a dry run")
	f.Int("concurrency", 0, "Files processed in parallel (0 = number of CPUs)")
	f.String("prefix", prefix.DefaultPrefix, "Component name prefix")
	f.String("utils-import", transforms.DefaultUtilsImport, "Module that exports cn")
	f.String("header", transforms.DefaultHeader, "Header comment added to every file")
	f.StringSlice("nocheck", nil, "Files that get a @ts-nocheck directive")
	f.Bool("lexical-regions", false, "Skip braces inside strings and comments when locating colors objects")
	f.String("output-format", "", "Output format: text|summary|full|json|markdown")
	f.Bool("print-transform", true, "Show (transform) suffix on entries")
	f.Bool("show-skipped", false, "List why transforms did not apply")
	f.Bool("watch", false, "Re-run on source changes until interrupted")
	f.Duration("debounce", 200*time.Millisecond, "Watch mode: wait this long for more changes")
}

func runTransform(cmd *cobra.Command, _ []string) error {
	config, err := buildTransformConfig()
	if err != nil {
		return err
	}
	config.Command = strings.Join(os.Args, " ")
	if wd, err := os.Getwd(); err == nil {
		config.WorkDir = wd
	}

	verbose := getBoolWithFallback("verbose", "verbose", false)
	quiet := getBoolWithFallback("quiet", "quiet", false)
	logger, err := logging.New(verbose, quiet)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	format := outputFormat(quiet)
	reportConfig := report.Config{
		UseColors:      getBoolWithFallback("color", "color", false),
		PrintTransform: getBoolWithFallback("print-transform", "transform.print-transform", true),
		PrintDiffs:     config.Diff,
		IncludeSkipped: getBoolWithFallback("show-skipped", "transform.show-skipped", false),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if getBoolWithFallback("watch", "transform.watch", false) {
		return watch(ctx, config, logger, func(result *uitheme.Result) {
			if !quiet {
				_ = uitheme.WriteOutput(os.Stdout, result, format, reportConfig)
			}
		})
	}

	result, err := uitheme.Run(ctx, afero.NewOsFs(), config, logger)
	if err != nil {
		return fmt.Errorf("transform failed: %w", err)
	}

	if !quiet {
		if err := uitheme.WriteOutput(os.Stdout, result, format, reportConfig); err != nil {
			return err
		}
	}

	// Failed files were left untouched, but the run still fails
	if result.Summary.Failed() {
		return errFailed
	}
	return nil
}

func watch(ctx context.Context, config uitheme.Config, logger *zap.Logger, emit func(*uitheme.Result)) error {
	logger.Info("watching for changes", zap.String("src", config.SrcDir))
	err := uitheme.Watch(ctx, config, logger, func(result *uitheme.Result, err error) {
		if err != nil {
			logger.Error("watch run failed", zap.Error(err))
			return
		}
		emit(result)
	})
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
