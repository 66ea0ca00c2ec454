package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yacobolo/uitheme/internal/translog"
)

// Options controls one run
type Options struct {
	SrcDir      string
	OutDir      string   // Mirror output here; empty rewrites SrcDir in place
	Include     []string // Globs relative to SrcDir
	DryRun      bool
	Diff        bool // Attach unified diffs to outcomes in dry runs
	Concurrency int  // Files processed at once; 0 means GOMAXPROCS
}

// Runner applies a Registry to every discovered file
type Runner struct {
	FS       afero.Fs
	Registry *Registry
	Logger   *zap.Logger
	Options  Options
}

func (r *Runner) log() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r *Runner) concurrency() int {
	if r.Options.Concurrency > 0 {
		return r.Options.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

// Run discovers files and transforms them. Records of files that succeeded
// are merged into session (which may be nil) in path order. The returned
// error is only set for failures that stop the whole batch; per-file
// failures are reported in the Summary.
func (r *Runner) Run(ctx context.Context, session *translog.Session) (*Summary, error) {
	files, stats, err := Discover(r.FS, r.Options.SrcDir, r.Options.Include)
	if err != nil {
		return nil, err
	}
	r.log().Debug("discovered files",
		zap.String("src", r.Options.SrcDir),
		zap.Int("selected", stats.FilesSelected),
		zap.Int("skipped", stats.FilesSkipped))

	summary, err := r.RunFiles(ctx, session, files)
	if summary != nil {
		summary.Stats = stats
	}
	return summary, err
}

// RunFiles transforms the given paths (relative to SrcDir)
func (r *Runner) RunFiles(ctx context.Context, session *translog.Session, files []string) (*Summary, error) {
	if r.Registry == nil {
		return nil, fmt.Errorf("runner has no registry")
	}

	outcomes := make([]FileOutcome, len(files))
	buffers := make([]*translog.Buffer, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency())
	for i, rel := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i], buffers[i] = r.processFile(rel)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &Summary{DryRun: r.Options.DryRun, Files: outcomes}
	if session != nil {
		summary.SessionID = session.ID
		for i, b := range buffers {
			if b == nil || outcomes[i].Err != nil {
				continue
			}
			if err := session.Merge(b); err != nil {
				return summary, fmt.Errorf("log %s: %w", outcomes[i].Path, err)
			}
		}
	}
	return summary, nil
}

func (r *Runner) targetPath(rel string) string {
	dir := r.Options.SrcDir
	if r.Options.OutDir != "" {
		dir = r.Options.OutDir
	}
	return filepath.Join(dir, filepath.FromSlash(rel))
}

// processFile runs one file end to end. Any failure leaves the file as it
// was on disk.
func (r *Runner) processFile(rel string) (FileOutcome, *translog.Buffer) {
	log := r.log().With(zap.String("file", rel))
	out := FileOutcome{Path: rel, Target: r.targetPath(rel)}

	data, err := afero.ReadFile(r.FS, filepath.Join(r.Options.SrcDir, filepath.FromSlash(rel)))
	if err != nil {
		out.Err = fmt.Errorf("read %s: %w", rel, err)
		log.Warn("read failed", zap.Error(err))
		return out, nil
	}

	res, err := r.Registry.Process(string(data), rel)
	out.NoOps = res.NoOps
	for _, a := range res.Applied {
		out.Applied = append(out.Applied, a.Meta.Name)
		out.Changes += len(a.Changes)
	}
	if err != nil {
		out.Err = err
		log.Warn("transform failed", zap.Error(err))
		return out, nil
	}

	buf := translog.NewBuffer(out.Target)
	for _, a := range res.Applied {
		buf.Log(a.Meta.Name, a.Meta.Description, a.Meta.Category, a.Before, a.After, a.Changes)
	}
	out.Content = res.Content

	if r.Options.DryRun {
		if r.Options.Diff && res.Changed() {
			out.Diff = unifiedDiff(rel, res.Original, res.Content)
		}
		log.Debug("dry run", zap.Strings("applied", out.Applied))
		return out, buf
	}

	if !res.Changed() && r.Options.OutDir == "" {
		return out, buf
	}
	if err := r.write(out.Target, res.Content); err != nil {
		out.Err = fmt.Errorf("write %s: %w", out.Target, err)
		log.Warn("write failed", zap.Error(err))
		return out, nil
	}
	out.Written = true
	log.Debug("written", zap.String("target", out.Target), zap.Strings("applied", out.Applied))
	return out, buf
}

func (r *Runner) write(path, content string) error {
	if err := r.FS.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(r.FS, path, []byte(content), 0o644)
}

func unifiedDiff(rel, before, after string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + rel,
		ToFile:   "b/" + rel,
		Context:  3,
	})
	if err != nil {
		return ""
	}
	return diff
}
