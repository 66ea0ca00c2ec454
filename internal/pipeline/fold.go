package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/yacobolo/uitheme/internal/transform"
)

// Applied is one unit that changed a file
type Applied struct {
	Phase    Phase
	Meta     transform.Metadata
	Before   string
	After    string
	Changes  []transform.ChangeSpan
	Warnings []string
}

// FileResult is the fold of every unit over one file
type FileResult struct {
	Original string
	Content  string
	Applied  []Applied
	NoOps    map[string][]string // unit name -> reasons
}

// Changed reports whether any unit changed the file
func (f FileResult) Changed() bool {
	return len(f.Applied) > 0
}

// Process runs every stage over content in phase order and validates the
// final result. On error the returned FileResult still lists what ran, but
// its Content must not be written.
func (r *Registry) Process(content, filename string) (FileResult, error) {
	res := FileResult{
		Original: content,
		Content:  content,
		NoOps:    map[string][]string{},
	}

	for _, s := range r.Stages() {
		meta := s.Unit.Metadata()
		out, err := transform.Apply(s.Unit, res.Content, filename)
		if err != nil {
			if len(out.Warnings) > 0 {
				res.NoOps[meta.Name] = out.Warnings
			}
			return res, err
		}
		if !out.Changed {
			if len(out.Warnings) > 0 {
				res.NoOps[meta.Name] = out.Warnings
			}
			continue
		}
		res.Applied = append(res.Applied, Applied{
			Phase:    s.Phase,
			Meta:     meta,
			Before:   res.Content,
			After:    out.Content,
			Changes:  out.Changes,
			Warnings: out.Warnings,
		})
		res.Content = out.Content
	}

	if res.Changed() {
		if err := Validate(res.Original, res.Content, filename); err != nil {
			return res, err
		}
	}
	return res, nil
}

var exportPattern = regexp.MustCompile(`(?m)^\s*export\s`)

// Validate checks the post-conditions of a transformed file: an exporting
// module still exports something, and brace, paren and bracket deltas are
// unchanged.
func Validate(original, transformed, filename string) error {
	if exportPattern.MatchString(original) && !exportPattern.MatchString(transformed) {
		return transform.ValidationError(filename, "transformed file no longer contains an export")
	}

	before := transform.MeasureBalance(original)
	after := transform.MeasureBalance(transformed)
	if before != after {
		return transform.ValidationError(filename, "bracket balance changed: "+balanceDiff(before, after))
	}
	return nil
}

func balanceDiff(before, after transform.Balance) string {
	var parts []string
	add := func(name string, b, a int) {
		if b != a {
			parts = append(parts, fmt.Sprintf("%s %d -> %d", name, b, a))
		}
	}
	add("braces", before.Braces, after.Braces)
	add("parens", before.Parens, after.Parens)
	add("brackets", before.Brackets, after.Brackets)
	return strings.Join(parts, ", ")
}
