package pipeline

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/spf13/afero"
)

// DefaultInclude matches component sources
var DefaultInclude = []string{"**/*.{tsx,jsx,ts}"}

// DiscoverStats tracks file discovery
type DiscoverStats struct {
	FilesDiscovered int // Matched by the include globs
	FilesSelected   int // Kept after filtering
	FilesSkipped    int // Dropped: node_modules, declarations, gitignored
}

// Discover expands include globs under srcDir and returns slash separated
// paths relative to srcDir, sorted.
//
// Two-layer filtering:
// 1. Pattern check: node_modules and *.d.ts are never transformed
// 2. Gitignore check: paths matched by srcDir/.gitignore are skipped
func Discover(fs afero.Fs, srcDir string, include []string) ([]string, DiscoverStats, error) {
	var stats DiscoverStats
	if len(include) == 0 {
		include = DefaultInclude
	}

	info, err := fs.Stat(srcDir)
	if err != nil {
		return nil, stats, fmt.Errorf("source directory %s: %w", srcDir, err)
	}
	if !info.IsDir() {
		return nil, stats, fmt.Errorf("source directory %s: not a directory", srcDir)
	}

	base := afero.NewBasePathFs(fs, srcDir)
	gi, err := loadGitIgnore(base)
	if err != nil {
		return nil, stats, err
	}

	fsys := afero.NewIOFS(base)
	seen := map[string]bool{}
	var files []string
	for _, pattern := range include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, stats, fmt.Errorf("include pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			stats.FilesDiscovered++

			if shouldSkipFile(match, gi) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesSelected++
		}
	}

	sort.Strings(files)
	return files, stats, nil
}

// loadGitIgnore reads .gitignore at the root of fs. A missing file is fine.
func loadGitIgnore(fs afero.Fs) (*ignore.GitIgnore, error) {
	data, err := afero.ReadFile(fs, ".gitignore")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read .gitignore: %w", err)
	}
	return ignore.CompileIgnoreLines(strings.Split(string(data), "\n")...), nil
}

func shouldSkipFile(rel string, gi *ignore.GitIgnore) bool {
	if strings.HasSuffix(rel, ".d.ts") {
		return true
	}
	for _, part := range strings.Split(rel, "/") {
		if part == "node_modules" {
			return true
		}
	}
	return gi != nil && gi.MatchesPath(rel)
}
