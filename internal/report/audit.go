package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/yacobolo/uitheme/internal/audit"
)

// AuditReporter prints leftover palette classes in golangci-lint format
type AuditReporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewAuditReporter creates an audit reporter
func NewAuditReporter(w io.Writer, useColors, printLines, printLinterName bool) *AuditReporter {
	return &AuditReporter{
		w:               w,
		useColors:       useColors,
		printLines:      printLines,
		printLinterName: printLinterName,
	}
}

// PrintIssues outputs issues sorted by file, line and column
func (r *AuditReporter) PrintIssues(issues []audit.Issue) {
	audit.SortIssues(issues)
	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue: file:line:col: message (linter)
func (r *AuditReporter) printIssue(issue audit.Issue) {
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		issue.Text,
		RenderStyle(StyleGray, linterSuffix, r.useColors))

	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}
		caret := buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}
}

// buildCaretIndicator creates the "^" indicator aligned with the column.
// Tabs in the prefix are kept so the caret lines up in any tab width.
func buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := column - 1
	if prefixLen > len(sourceLine) {
		prefixLen = len(sourceLine)
	}

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}
	return padding.String() + "^"
}

// PrintSummary outputs the issue count
func (r *AuditReporter) PrintSummary(res audit.Result) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintf(r.w, "%s in %s\n",
		pluralizeCount(len(res.Issues), "issue", "issues"),
		pluralizeCount(res.FilesScanned, "file", "files"))

	withFix := 0
	for _, is := range res.Issues {
		if is.Replacement != nil {
			withFix++
		}
	}
	if withFix > 0 {
		fmt.Fprintf(r.w, "* %d with a semantic token mapping\n", withFix)
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(r.w, "• %s\n", w)
	}

	if len(res.Issues) > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: add mappings under transform.mappings and run uitheme transform again", r.useColors))
	}
}
