// Package audit finds palette classes left in component sources after
// theming.
//
// A themed component should only reference semantic tokens (bg-primary,
// text-muted-foreground, ...) outside its colors and styles objects. The
// audit reports every remaining palette class (bg-zinc-950, text-white,
// data-hover:bg-blue-500/10, ...) with its exact position.
package audit

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/yacobolo/uitheme/internal/region"
)

var (
	// $2 is the class with its variants, $3 the bare utility
	paletteClass = regexp.MustCompile(
		`(^|[\s"'` + "`" + `{(\[,])((?:[\w-]+:)*((?:bg|text|border|ring|fill|stroke|divide|outline|from|via|to)-` +
			`(?:(?:zinc|gray|slate|neutral|stone|blue|red)-\d{2,3}|white|black)(?:/[\d.]+)?))\b`)

	// Comment lines are never reported
	commentPattern = regexp.MustCompile(`^\s*(?://|/?\*)`)
)

// Options configures a scan
type Options struct {
	// Suggestions maps a bare palette utility to its semantic token
	Suggestions map[string]string
	// IncludeProtected also reports classes inside colors and styles objects
	IncludeProtected bool
	// ScanMode is passed to the region index
	ScanMode region.ScanMode
}

// Result of scanning a set of files
type Result struct {
	Issues       []Issue
	FilesScanned int
	Warnings     []string // Files that could not be read
}

// Scan reads files (relative to srcDir) and reports leftover palette
// classes. Unreadable files are reported as warnings and skipped.
func Scan(fs afero.Fs, srcDir string, files []string, opts Options) Result {
	var res Result
	for _, rel := range files {
		data, err := afero.ReadFile(fs, filepath.Join(srcDir, filepath.FromSlash(rel)))
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("skipped %s: %v", rel, err))
			continue
		}
		res.FilesScanned++
		res.Issues = append(res.Issues, ScanSource(string(data), rel, opts)...)
	}
	SortIssues(res.Issues)
	return res
}

// ScanSource reports leftover palette classes in one file
func ScanSource(content, filename string, opts Options) []Issue {
	var idx *region.Index
	if !opts.IncludeProtected {
		idx = region.NewIndex(content, region.WithScanMode(opts.ScanMode))
	}

	var issues []Issue
	lineStart := 0
	for lineNum, line := range strings.Split(content, "\n") {
		start := lineStart
		lineStart += len(line) + 1

		if commentPattern.MatchString(line) {
			continue
		}
		for _, m := range paletteClass.FindAllStringSubmatchIndex(line, -1) {
			if idx != nil && idx.Protected(start+m[4]) {
				continue
			}
			issues = append(issues, newIssue(filename, lineNum+1, line, m, opts.Suggestions))
		}
	}
	return issues
}

func newIssue(filename string, lineNum int, line string, m []int, suggestions map[string]string) Issue {
	class := line[m[4]:m[5]]
	utility := line[m[6]:m[7]]

	issue := Issue{
		FromLinter:  Linter,
		Text:        fmt.Sprintf(IssueHardcodedPalette, class),
		Severity:    SeverityWarning,
		SourceLines: []string{strings.TrimRight(line, "\r")},
		Pos: IssuePos{
			Filename: filename,
			Line:     lineNum,
			Column:   m[4] + 1,
		},
	}
	if token, ok := suggestions[utility]; ok {
		replacement := strings.TrimSuffix(class, utility) + token
		issue.Text = fmt.Sprintf(IssueHardcodedPaletteSuggest, class, replacement)
		issue.Replacement = &Replacement{NewText: replacement, InlineLength: len(class)}
	}
	return issue
}

// SortIssues orders issues by file, then line, then column
func SortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})
}
