package report

import (
	"errors"
	"fmt"
	"sort"

	"github.com/yacobolo/uitheme/internal/pipeline"
	"github.com/yacobolo/uitheme/internal/transform"
)

// Severity of an entry
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Entry is one line of the golangci-style report: "path: text (transform)"
type Entry struct {
	File      string // Relative to the source directory
	Text      string // "4 changes", "PARSE_ERROR: failed to parse ..."
	Transform string // Unit that produced the entry, if known
	Code      string // Error code for failures
	Severity  string
}

// Entries flattens a summary into report lines, sorted by file. Failures
// always appear; applied units are listed per file. No-op reasons are only
// included when withNoOps is set, since almost every file skips some unit.
func Entries(s *pipeline.Summary, withNoOps bool) []Entry {
	var out []Entry
	for _, f := range s.Files {
		if f.Err != nil {
			out = append(out, errorEntry(f.Path, f.Err))
			continue
		}
		for _, name := range f.Applied {
			out = append(out, Entry{File: f.Path, Text: "transformed", Transform: name, Severity: SeverityInfo})
		}
		if !withNoOps {
			continue
		}
		for _, name := range sortedKeys(f.NoOps) {
			for _, reason := range f.NoOps[name] {
				out = append(out, Entry{File: f.Path, Text: "skipped: " + reason, Transform: name, Severity: SeverityWarning})
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].File < out[j].File
	})
	return out
}

func errorEntry(file string, err error) Entry {
	var te *transform.Error
	if errors.As(err, &te) {
		msg := te.Message
		if msg == "" && te.Err != nil {
			msg = te.Err.Error()
		}
		return Entry{
			File:      file,
			Text:      fmt.Sprintf("%s: %s", te.Code, msg),
			Transform: te.Transform,
			Code:      te.Code,
			Severity:  SeverityError,
		}
	}
	return Entry{File: file, Text: err.Error(), Severity: SeverityError}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
