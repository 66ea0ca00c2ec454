package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/yacobolo/uitheme/internal/pipeline"
)

// StatsReporter prints run statistics and skipped transforms
type StatsReporter struct {
	w         io.Writer
	useColors bool
}

// NewStatsReporter creates a statistics reporter
func NewStatsReporter(w io.Writer, useColors bool) *StatsReporter {
	return &StatsReporter{
		w:         w,
		useColors: useColors,
	}
}

// PrintStatistics outputs discovery and outcome counts
func (r *StatsReporter) PrintStatistics(s *pipeline.Summary) {
	changed, unchanged, failed := s.Counts()
	changes := 0
	for _, f := range s.Files {
		if f.Err == nil {
			changes += f.Changes
		}
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Transform Statistics", r.useColors))
	fmt.Fprintln(r.w, "--------------------")

	if s.SessionID != "" {
		fmt.Fprintf(r.w, "Session:             %s\n", s.SessionID)
	}
	fmt.Fprintf(r.w, "Files Discovered:    %d\n", s.Stats.FilesDiscovered)
	fmt.Fprintf(r.w, "Files Skipped:       %d\n", s.Stats.FilesSkipped)
	fmt.Fprintf(r.w, "Files Changed:       %d\n", changed)
	fmt.Fprintf(r.w, "Files Unchanged:     %d\n", unchanged)
	fmt.Fprintf(r.w, "Files Failed:        %d\n", failed)
	fmt.Fprintf(r.w, "Validation Failures: %d\n", s.ValidationFailures())
	fmt.Fprintf(r.w, "Changes:             %d\n", changes)
}

// PrintTransformProgress shows how many files each unit changed, with a bar
// relative to the number of processed files
func (r *StatsReporter) PrintTransformProgress(s *pipeline.Summary) {
	counts := s.UnitCounts()
	if len(counts) == 0 {
		return
	}

	names := s.UnitNames()
	sort.SliceStable(names, func(i, j int) bool {
		return counts[names[i]] > counts[names[j]]
	})
	width := 0
	for _, n := range names {
		width = max(width, len(n))
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Transforms Applied", r.useColors))
	fmt.Fprintln(r.w, "------------------")
	for _, n := range names {
		fmt.Fprintf(r.w, "%-*s %s %d\n", width, n, bar(counts[n], len(s.Files), 20), counts[n])
	}
}

func bar(n, total, width int) string {
	if total <= 0 {
		return "[" + strings.Repeat("░", width) + "]"
	}
	filled := n * width / total
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// PrintSkipped lists no-op reasons grouped by transform
func (r *StatsReporter) PrintSkipped(s *pipeline.Summary) {
	reasons := map[string]map[string]int{}
	for _, f := range s.Files {
		for name, rs := range f.NoOps {
			if reasons[name] == nil {
				reasons[name] = map[string]int{}
			}
			for _, reason := range rs {
				reasons[name][reason]++
			}
		}
	}
	if len(reasons) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Skipped Transforms", r.useColors))
	fmt.Fprintln(r.w, "------------------")

	names := make([]string, 0, len(reasons))
	for n := range reasons {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		rs := make([]string, 0, len(reasons[n]))
		for reason := range reasons[n] {
			rs = append(rs, reason)
		}
		sort.Strings(rs)
		for _, reason := range rs {
			fmt.Fprintf(r.w, "• %s: %s (%s)\n", n, reason, pluralizeCount(reasons[n][reason], "file", "files"))
		}
	}
}
