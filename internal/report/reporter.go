package report

import (
	"fmt"
	"io"
	"os"

	"github.com/yacobolo/uitheme/internal/pipeline"
)

// Config controls terminal rendering
type Config struct {
	UseColors         bool // Force colors (default: auto-detect)
	PrintTransform    bool // Show (transform) suffix
	PrintDiffs        bool // Print dry run diffs after the entries
	IncludeSkipped    bool // List no-op reasons
	RevertScript      string
	RevertInstruction string // Overrides the default "sh <script>" hint
}

// Reporter prints golangci-lint style lines for a run
type Reporter struct {
	w         io.Writer
	useColors bool
	config    Config
}

// NewReporter creates a new reporter with the given configuration
func NewReporter(w io.Writer, config Config) *Reporter {
	return &Reporter{
		w:         w,
		useColors: ShouldUseColors(config),
		config:    config,
	}
}

// ShouldUseColors determines if colors should be enabled
func ShouldUseColors(config Config) bool {
	if config.UseColors {
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if fileInfo, err := os.Stdout.Stat(); err == nil && fileInfo.Mode()&os.ModeCharDevice != 0 {
		return true
	}
	return false
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintEntries outputs one line per entry
func (r *Reporter) PrintEntries(entries []Entry) {
	for _, e := range entries {
		r.printEntry(e)
	}
}

// printEntry formats a single entry: path: text (transform)
func (r *Reporter) printEntry(e Entry) {
	location := e.File + ":"

	suffix := ""
	if r.config.PrintTransform && e.Transform != "" {
		suffix = fmt.Sprintf(" (%s)", e.Transform)
	}

	text := e.Text
	switch e.Severity {
	case SeverityError:
		text = RenderStyle(StyleRed, text, r.useColors)
	case SeverityWarning:
		text = RenderStyle(StyleYellow, text, r.useColors)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		text,
		RenderStyle(StyleGray, suffix, r.useColors))
}

// PrintDiffs outputs the unified diffs of a dry run
func (r *Reporter) PrintDiffs(s *pipeline.Summary) {
	for _, f := range s.Files {
		if f.Diff == "" {
			continue
		}
		fmt.Fprintln(r.w, "")
		fmt.Fprint(r.w, f.Diff)
	}
}

// PrintSummary outputs file counts and a per-transform breakdown
func (r *Reporter) PrintSummary(s *pipeline.Summary) {
	changed, unchanged, failed := s.Counts()
	total := changed + unchanged + failed

	fmt.Fprintln(r.w, "")
	verb := "changed"
	if s.DryRun {
		verb = "would change"
	}
	line := fmt.Sprintf("%s (%d %s, %d unchanged, %d failed):",
		pluralizeCount(total, "file", "files"), changed, verb, unchanged, failed)
	style := StyleGreen
	if failed > 0 {
		style = StyleRed
	}
	fmt.Fprintln(r.w, RenderStyle(style, line, r.useColors))

	counts := s.UnitCounts()
	for _, name := range s.UnitNames() {
		fmt.Fprintf(r.w, "* %s: %s\n", name, pluralizeCount(counts[name], "file", "files"))
	}

	if s.DryRun {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Dry run: no files were written", r.useColors))
		return
	}

	if r.config.RevertScript != "" && changed > 0 {
		hint := r.config.RevertInstruction
		if hint == "" {
			hint = "sh " + r.config.RevertScript
		}
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Revert with: "+hint, r.useColors))
	}
	if failed > 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: failed files were left untouched; run with --verbose for details", r.useColors))
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
