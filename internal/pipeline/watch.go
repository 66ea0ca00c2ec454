package pipeline

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/yacobolo/uitheme/internal/translog"
)

// WatchOptions configures Watch
type WatchOptions struct {
	// Debounce is how long events are collected before a run
	Debounce time.Duration
	// NewSession returns the session for one run; nil disables logging
	NewSession func() *translog.Session
	// OnRun is called after every run
	OnRun func(summary *Summary, session *translog.Session, err error)
}

// Watch re-runs the pipeline on source files as they change, until ctx is
// done. Only files under the runner's SrcDir that match its include globs
// are processed. The runner's FS must be the OS filesystem.
func Watch(ctx context.Context, r *Runner, opts WatchOptions) error {
	if opts.Debounce <= 0 {
		opts.Debounce = 200 * time.Millisecond
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addTree(watcher, r.Options.SrcDir); err != nil {
		return err
	}

	selected := func() map[string]bool {
		files, _, err := Discover(r.FS, r.Options.SrcDir, r.Options.Include)
		if err != nil {
			r.log().Warn("discover failed", zap.Error(err))
			return nil
		}
		set := make(map[string]bool, len(files))
		for _, f := range files {
			set[f] = true
		}
		return set
	}

	// Hashes of what the runner itself wrote, so its own writes do not
	// trigger another run.
	written := map[string]string{}
	pending := map[string]bool{}
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.log().Warn("watch error", zap.Error(err))

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				_ = addTree(watcher, ev.Name)
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			rel, err := filepath.Rel(r.Options.SrcDir, ev.Name)
			if err != nil || strings.HasPrefix(rel, "..") {
				continue
			}
			pending[filepath.ToSlash(rel)] = true
			if timer == nil {
				timer = time.NewTimer(opts.Debounce)
			} else {
				timer.Reset(opts.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			files := filterPending(pending, selected(), written, r)
			pending = map[string]bool{}
			if len(files) == 0 {
				continue
			}

			var session *translog.Session
			if opts.NewSession != nil {
				session = opts.NewSession()
			}
			summary, err := r.RunFiles(ctx, session, files)
			if summary != nil {
				for _, f := range summary.Files {
					if f.Written && r.Options.OutDir == "" {
						written[f.Path] = translog.Hash(f.Content)
					}
				}
			}
			if opts.OnRun != nil {
				opts.OnRun(summary, session, err)
			}
		}
	}
}

func filterPending(pending, selected map[string]bool, written map[string]string, r *Runner) []string {
	var files []string
	for rel := range pending {
		if !selected[rel] {
			continue
		}
		if h, ok := written[rel]; ok {
			data, err := readSource(r, rel)
			if err == nil && translog.Hash(data) == h {
				continue
			}
		}
		files = append(files, rel)
	}
	sort.Strings(files)
	return files
}

func readSource(r *Runner, rel string) (string, error) {
	data, err := afero.ReadFile(r.FS, filepath.Join(r.Options.SrcDir, filepath.FromSlash(rel)))
	return string(data), err
}

// addTree watches dir and every directory below it, skipping node_modules
func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
