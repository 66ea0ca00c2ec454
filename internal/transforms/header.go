package transforms

import (
	"path"
	"regexp"
	"strings"

	"github.com/yacobolo/uitheme/internal/transform"
)

// DefaultHeader is the comment added to every themed file
const DefaultHeader = "// Themed by uitheme. Do not edit the semantic color blocks by hand."

// DefaultNocheckFiles are sources known not to type check after theming
var DefaultNocheckFiles = []string{"combobox.tsx", "listbox.tsx", "dropdown.tsx"}

const nocheckDirective = "// @ts-nocheck"

var (
	useClientLine = regexp.MustCompile(`^\s*['"]use client['"];?[ \t]*\r?\n`)
	nocheckLine   = regexp.MustCompile(`^\s*// @ts-nocheck[ \t]*\r?\n`)
)

// TsNocheck prepends "// @ts-nocheck" to allowlisted files. An entry
// matches when it equals the file name or is a path suffix of it.
func TsNocheck(files []string) transform.Unit {
	return transform.Func{
		Meta: transform.Metadata{
			Name:        "ts-nocheck",
			Description: "Disable type checking for files that cannot be typed after theming",
			Category:    transform.CategoryQuality,
		},
		Fn: func(content, filename string) (transform.Result, error) {
			if filename == "" {
				return transform.Unchanged(content, "No filename provided"), nil
			}
			if !matchesAllowlist(filename, files) {
				return transform.Unchanged(content), nil
			}
			if strings.Contains(content, nocheckDirective) {
				return transform.Unchanged(content, "ts-nocheck already present"), nil
			}
			return transform.Result{
				Content: nocheckDirective + "\n" + content,
				Changed: true,
				Changes: []transform.ChangeSpan{{To: nocheckDirective, Type: "insert", Context: "file start"}},
			}, nil
		},
	}
}

func matchesAllowlist(filename string, files []string) bool {
	filename = strings.ReplaceAll(filename, "\\", "/")
	base := path.Base(filename)
	for _, f := range files {
		f = strings.TrimPrefix(strings.ReplaceAll(f, "\\", "/"), "./")
		if f == "" {
			continue
		}
		if base == f || filename == f || strings.HasSuffix(filename, "/"+f) {
			return true
		}
	}
	return false
}

// FileHeader inserts header once, after a leading ts-nocheck or
// 'use client' directive.
func FileHeader(header string) transform.Unit {
	if header == "" {
		header = DefaultHeader
	}
	return transform.Func{
		Meta: transform.Metadata{
			Name:        "file-header",
			Description: "Add the themed file header",
			Category:    transform.CategoryFormat,
		},
		Fn: func(content, _ string) (transform.Result, error) {
			if strings.Contains(content, header) {
				return transform.Unchanged(content, "Header already present"), nil
			}

			at := 0
			for _, re := range []*regexp.Regexp{nocheckLine, useClientLine} {
				if loc := re.FindStringIndex(content[at:]); loc != nil {
					at += loc[1]
				}
			}
			out := content[:at] + header + "\n" + content[at:]
			return transform.Result{
				Content: out,
				Changed: true,
				Changes: []transform.ChangeSpan{{To: header, Type: "insert", Context: "file header"}},
			}, nil
		},
	}
}
