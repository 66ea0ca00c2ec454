package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/yacobolo/uitheme/internal/pipeline"
)

// WriteMarkdown writes a shareable report of a run
func WriteMarkdown(w io.Writer, s *pipeline.Summary) error {
	var b strings.Builder
	changed, unchanged, failed := s.Counts()

	b.WriteString("# Theme Migration Report\n\n")
	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| **Status** | %s |\n", statusBadge(s))
	if s.SessionID != "" {
		fmt.Fprintf(&b, "| **Session** | `%s` |\n", s.SessionID)
	}
	fmt.Fprintf(&b, "| **Files Discovered** | %d |\n", s.Stats.FilesDiscovered)
	fmt.Fprintf(&b, "| **Files Changed** | %d |\n", changed)
	fmt.Fprintf(&b, "| **Files Unchanged** | %d |\n", unchanged)
	fmt.Fprintf(&b, "| **Files Failed** | %d (%d validation) |\n", failed, s.ValidationFailures())
	b.WriteString("\n")

	if names := s.UnitNames(); len(names) > 0 {
		counts := s.UnitCounts()
		b.WriteString("## Transforms\n\n")
		b.WriteString("| Transform | Files |\n")
		b.WriteString("|-----------|-------|\n")
		for _, n := range names {
			fmt.Fprintf(&b, "| `%s` | %d |\n", n, counts[n])
		}
		b.WriteString("\n")
	}

	if errs := s.Errors(); len(errs) > 0 {
		b.WriteString("## Failures\n\n")
		b.WriteString("| File | Transform | Error |\n")
		b.WriteString("|------|-----------|-------|\n")
		for _, f := range errs {
			e := errorEntry(f.Path, f.Err)
			fmt.Fprintf(&b, "| `%s` | %s | %s |\n", f.Path, orDash(e.Transform), escapeCell(e.Text))
		}
		b.WriteString("\n")
	}

	if changed > 0 {
		b.WriteString("## Changed Files\n\n")
		for _, f := range s.Files {
			if !f.Changed() {
				continue
			}
			fmt.Fprintf(&b, "- `%s`: %s\n", f.Path, strings.Join(f.Applied, ", "))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n\n*Generated by uitheme*\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func statusBadge(s *pipeline.Summary) string {
	_, _, failed := s.Counts()
	switch {
	case failed > 0:
		return "🔴 Failed"
	case s.DryRun:
		return "🟡 Dry run"
	default:
		return "🟢 Applied"
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return "`" + s + "`"
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
