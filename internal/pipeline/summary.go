package pipeline

import (
	"sort"

	"github.com/yacobolo/uitheme/internal/transform"
)

// FileOutcome is what happened to one file
type FileOutcome struct {
	Path    string              // Relative to SrcDir, slash separated
	Target  string              // Path written (or that would be written)
	Applied []string            // Units that changed the file, in order
	NoOps   map[string][]string // Units that did not apply, with reasons
	Changes int                 // Change spans across all applied units
	Err     error
	Written bool
	Diff    string // Unified diff, dry runs only
	Content string // Final content of a successful file
}

// Changed reports whether any unit changed the file
func (o FileOutcome) Changed() bool {
	return o.Err == nil && len(o.Applied) > 0
}

// Summary is the result of a run
type Summary struct {
	SessionID string
	DryRun    bool
	Stats     DiscoverStats
	Files     []FileOutcome
}

// Counts returns how many files changed, stayed unchanged and failed
func (s *Summary) Counts() (changed, unchanged, failed int) {
	for _, f := range s.Files {
		switch {
		case f.Err != nil:
			failed++
		case len(f.Applied) > 0:
			changed++
		default:
			unchanged++
		}
	}
	return changed, unchanged, failed
}

// Failed reports whether any file ended in a transform or validation error.
// No-ops never fail a run.
func (s *Summary) Failed() bool {
	for _, f := range s.Files {
		if f.Err != nil {
			return true
		}
	}
	return false
}

// Errors returns the failed outcomes
func (s *Summary) Errors() []FileOutcome {
	var out []FileOutcome
	for _, f := range s.Files {
		if f.Err != nil {
			out = append(out, f)
		}
	}
	return out
}

// ValidationFailures counts files rejected by post-transform checks
func (s *Summary) ValidationFailures() int {
	n := 0
	for _, f := range s.Files {
		if transform.IsValidation(f.Err) {
			n++
		}
	}
	return n
}

// UnitCounts returns how many files each unit changed, by name
func (s *Summary) UnitCounts() map[string]int {
	counts := map[string]int{}
	for _, f := range s.Files {
		if f.Err != nil {
			continue
		}
		for _, name := range f.Applied {
			counts[name]++
		}
	}
	return counts
}

// UnitNames returns the keys of UnitCounts, sorted
func (s *Summary) UnitNames() []string {
	counts := s.UnitCounts()
	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
