// Package uitheme migrates Catalyst-style UI component sources to a semantic
// theming layer.
//
// A run applies an ordered set of transform units to every component source
// under a directory, validates each result, writes it back (or into a mirror
// directory) and logs every change into a session from which a revert script
// is generated.
//
// # Transforming
//
//	config := uitheme.DefaultConfig()
//	config.SrcDir = "src/components"
//	result, err := uitheme.Run(ctx, afero.NewOsFs(), config, logger)
//
// Files that fail to transform or validate are left untouched and reported in
// result.Summary; the rest of the batch is still processed.
//
// # Reverting
//
// Each live run saves its session under LogDir and writes an executable
// POSIX shell script that restores every touched file:
//
//	sh .uitheme/revert/revert-<session>.sh
//
// # CLI Tool
//
// uitheme also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/uitheme/cmd/uitheme@latest
package uitheme

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/yacobolo/uitheme/internal/audit"
	"github.com/yacobolo/uitheme/internal/pipeline"
	"github.com/yacobolo/uitheme/internal/prefix"
	"github.com/yacobolo/uitheme/internal/region"
	"github.com/yacobolo/uitheme/internal/transform"
	"github.com/yacobolo/uitheme/internal/transforms"
	"github.com/yacobolo/uitheme/internal/translog"
)

// Config holds run configuration
type Config struct {
	SrcDir      string   // "src/components"
	OutDir      string   // Mirror output here instead of rewriting SrcDir
	Include     []string // ["**/*.{tsx,jsx,ts}"]
	DryRun      bool     // Compute and log changes without writing
	Diff        bool     // Attach unified diffs in dry runs
	Concurrency int      // Files processed at once (0 = GOMAXPROCS)

	ExcludeTransforms []string // Unit names to skip, e.g. ["file-header"]
	Prefix            string   // Component prefix (default "Catalyst")
	UtilsImport       string   // Module exporting cn (default "@/lib/utils")
	Header            string   // File header comment
	NocheckFiles      []string // ts-nocheck allowlist
	Mappings          []transform.MappingSpec
	LexicalRegions    bool          // Skip braces in strings and comments when matching colors objects
	Debounce          time.Duration // Watch only: how long changes are collected before a run

	LogDir     string            // Session and revert script directory (default ".uitheme")
	WorkDir    string            // Recorded in the session; relative paths in the revert script resolve against it
	Command    string            // Recorded in the session metadata
	LogOptions []translog.Option // Clock and id overrides, mostly for tests
}

// DefaultConfig returns a Config with the CLI defaults
func DefaultConfig() Config {
	return Config{
		SrcDir:       "src",
		Include:      pipeline.DefaultInclude,
		Prefix:       prefix.DefaultPrefix,
		UtilsImport:  transforms.DefaultUtilsImport,
		Header:       transforms.DefaultHeader,
		NocheckFiles: transforms.DefaultNocheckFiles,
		LogDir:       translog.DefaultDir,
	}
}

// Result is the outcome of Run
type Result struct {
	Summary      *pipeline.Summary
	Session      *translog.Session
	SessionPath  string // Saved session, live runs only
	RevertScript string // Generated script, live runs with changes only
	Warnings     []string
}

// ScanMode returns the region scan mode selected by the config
func (c Config) ScanMode() region.ScanMode {
	if c.LexicalRegions {
		return region.ScanLexical
	}
	return region.ScanNaive
}

// Registry builds the phase ordered transform registry for the config.
// Unknown excluded names are returned as warnings.
func (c Config) Registry() (*pipeline.Registry, []string, error) {
	mappings, err := transform.CompileMappings(c.Mappings)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid color mapping: %w", err)
	}

	registry, unknown := transforms.Default(transforms.Options{
		UtilsImport:  c.UtilsImport,
		Prefix:       c.Prefix,
		NocheckFiles: c.NocheckFiles,
		Mappings:     mappings,
		Header:       c.Header,
		ScanMode:     c.ScanMode(),
		Exclude:      c.ExcludeTransforms,
	})

	var warnings []string
	for _, name := range unknown {
		warnings = append(warnings, fmt.Sprintf("unknown transform %q in exclude list", name))
	}
	return registry, warnings, nil
}

func (c Config) metadata() map[string]string {
	meta := map[string]string{
		translog.MetaWorkDir: c.WorkDir,
		"src":                c.SrcDir,
		"dry_run":            strconv.FormatBool(c.DryRun),
	}
	if c.OutDir != "" {
		meta["out"] = c.OutDir
	}
	if c.Command != "" {
		meta["command"] = c.Command
	}
	if len(c.ExcludeTransforms) > 0 {
		meta["exclude"] = strings.Join(c.ExcludeTransforms, ",")
	}
	return meta
}

func (c Config) runner(fs afero.Fs, logger *zap.Logger) (*pipeline.Runner, []string, error) {
	registry, warnings, err := c.Registry()
	if err != nil {
		return nil, nil, err
	}
	for _, w := range warnings {
		logger.Warn(w)
	}

	return &pipeline.Runner{
		FS:       fs,
		Registry: registry,
		Logger:   logger,
		Options: pipeline.Options{
			SrcDir:      c.SrcDir,
			OutDir:      c.OutDir,
			Include:     c.Include,
			DryRun:      c.DryRun,
			Diff:        c.Diff,
			Concurrency: c.Concurrency,
		},
	}, warnings, nil
}

// Run transforms every source under config.SrcDir.
//
// Live runs save the session and, when anything changed, generate the revert
// script. Per-file failures do not make Run fail; check Summary.Failed.
func Run(ctx context.Context, fs afero.Fs, config Config, logger *zap.Logger) (*Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	runner, warnings, err := config.runner(fs, logger)
	if err != nil {
		return nil, err
	}

	store := translog.NewLogger(fs, config.LogDir, config.LogOptions...)
	session := store.Start(config.metadata())

	summary, err := runner.Run(ctx, session)
	if err != nil {
		return nil, err
	}

	result := &Result{Summary: summary, Session: session, Warnings: warnings}
	if err := finish(store, result, config.DryRun, logger); err != nil {
		return result, err
	}
	return result, nil
}

// Watch runs the transforms whenever sources under config.SrcDir change,
// until ctx is done. Every run gets its own session, finished like Run's,
// and is handed to onRun.
func Watch(ctx context.Context, config Config, logger *zap.Logger, onRun func(*Result, error)) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	fs := afero.NewOsFs()

	runner, warnings, err := config.runner(fs, logger)
	if err != nil {
		return err
	}

	store := translog.NewLogger(fs, config.LogDir, config.LogOptions...)
	return pipeline.Watch(ctx, runner, pipeline.WatchOptions{
		Debounce: config.Debounce,
		NewSession: func() *translog.Session {
			return store.Start(config.metadata())
		},
		OnRun: func(summary *pipeline.Summary, session *translog.Session, err error) {
			if err != nil {
				if onRun != nil {
					onRun(nil, err)
				}
				return
			}
			result := &Result{Summary: summary, Session: session, Warnings: warnings}
			err = finish(store, result, config.DryRun, logger)
			if onRun != nil {
				onRun(result, err)
			}
		},
	})
}

// finish ends the session of a run. Live runs are saved and get a revert
// script when they recorded anything.
func finish(store *translog.Logger, result *Result, dryRun bool, logger *zap.Logger) error {
	session := result.Session
	if err := session.End(); err != nil {
		return err
	}
	if dryRun {
		return nil
	}

	if err := store.Save(session); err != nil {
		return err
	}
	result.SessionPath = store.SessionPath(session.ID)

	if len(session.Records) > 0 {
		path, err := store.GenerateRevertScript(session)
		if err != nil {
			return err
		}
		result.RevertScript = path
	}

	logger.Debug("run complete",
		zap.String("session", session.ID),
		zap.Int("records", len(session.Records)),
		zap.Bool("failed", result.Summary.Failed()))
	return nil
}

// TransformSource runs the configured units over a single source without
// touching any filesystem
func TransformSource(content, filename string, config Config) (pipeline.FileResult, error) {
	registry, _, err := config.Registry()
	if err != nil {
		return pipeline.FileResult{}, err
	}
	return registry.Process(content, filename)
}

// Audit reports palette classes left outside colors and styles objects
func Audit(fs afero.Fs, config Config) (audit.Result, error) {
	files, _, err := pipeline.Discover(fs, config.SrcDir, config.Include)
	if err != nil {
		return audit.Result{}, err
	}
	return audit.Scan(fs, config.SrcDir, files, audit.Options{
		Suggestions: transforms.PaletteSuggestions(),
		ScanMode:    config.ScanMode(),
	}), nil
}

// Revert restores the files of a saved session in process. It returns the
// files whose content changed since the run, which were overwritten anyway.
func Revert(fs afero.Fs, logDir, sessionID string) (translog.RevertResult, error) {
	store := translog.NewLogger(fs, logDir)
	session, err := store.Load(sessionID)
	if err != nil {
		return translog.RevertResult{}, err
	}
	return translog.Revert(fs, session)
}
