package semantic

import (
	"regexp"
	"strings"

	"github.com/yacobolo/uitheme/internal/region"
	"github.com/yacobolo/uitheme/internal/transform"
)

// No-op reasons reported by Transform
const (
	WarnNoColors       = "No colors object found in component"
	WarnUnknownKind    = "Unknown component type, no semantic colors available"
	WarnAlreadyPresent = "Semantic colors already present"
	WarnNoPattern      = "Could not find colors object pattern to add semantic colors"
)

// Meta describes the injector unit
var Meta = transform.Metadata{
	Name:        "semantic-colors",
	Description: "Add primary, secondary, destructive, accent and muted entries to component colors objects",
	Category:    transform.CategorySemantic,
}

var semanticKey = regexp.MustCompile(`(?:^|[\s{,])['"]?(?:primary|secondary|destructive|accent|muted)['"]?\s*:`)

// Transform adds the semantic block for the detected component kind.
//
// Detection and splicing are checked separately: a colors object that is
// found but cannot be closed is reported with WarnNoPattern and the input is
// returned unchanged.
func Transform(input string) (transform.Result, error) {
	return transform.Execute(Meta, func() (transform.Result, error) {
		return inject(input), nil
	})
}

// Unit exposes the injector to the pipeline
func Unit() transform.Unit {
	return transform.Func{
		Meta: Meta,
		Fn: func(content, _ string) (transform.Result, error) {
			return inject(content), nil
		},
	}
}

func inject(input string) transform.Result {
	target, found := colorsTarget(region.NewIndex(input))
	if !found {
		return transform.Unchanged(input, WarnNoColors)
	}

	kind, ok := DetectKind(input)
	if !ok {
		return transform.Unchanged(input, WarnUnknownKind)
	}

	if semanticKey.MatchString(input) {
		return transform.Unchanged(input, WarnAlreadyPresent)
	}

	if !target.Terminated {
		return transform.Unchanged(input, WarnNoPattern)
	}

	entries := Block(kind)
	content := splice(input, target, entries)

	changes := make([]transform.ChangeSpan, 0, len(entries))
	for _, e := range entries {
		changes = append(changes, transform.ChangeSpan{
			To:      e.Key,
			Type:    "semantic-color",
			Context: kind.String(),
		})
	}
	return transform.Result{Content: content, Changed: true, Changes: changes}
}

// colorsTarget picks the object to extend: the first top level colors
// object, else the first nested one.
func colorsTarget(idx *region.Index) (region.Span, bool) {
	var nested *region.Span
	for _, s := range idx.Spans() {
		switch s.Kind {
		case region.AnchorColors:
			return s, true
		case region.AnchorNestedColors:
			if nested == nil {
				s := s
				nested = &s
			}
		}
	}
	if nested != nil {
		return *nested, true
	}
	return region.Span{}, false
}

func splice(input string, target region.Span, entries []Entry) string {
	body := input[target.Open+1 : target.Close]
	trimmed := strings.TrimRight(body, " \t\r\n")
	insertAt := target.Open + 1 + len(trimmed)

	closeIndent, ownLine := lineIndent(input, target.Close)
	if !ownLine {
		closeIndent, _ = lineIndent(input, target.Anchor)
	}
	unit := indentUnit(input)

	// The separating comma belongs after the last entry's code, before any
	// trailing line comment.
	code := stripLineComments(trimmed)
	commaAt := target.Open + 1 + len(code)

	var b strings.Builder
	b.Grow(len(input) + 512)
	if code != "" && !strings.HasSuffix(code, ",") {
		b.WriteString(input[:commaAt])
		b.WriteByte(',')
		b.WriteString(input[commaAt:insertAt])
	} else {
		b.WriteString(input[:insertAt])
	}
	b.WriteByte('\n')
	b.WriteString(render(entries, closeIndent+unit, unit))
	b.WriteString(closeIndent)
	b.WriteString(input[target.Close:])
	return b.String()
}

// stripLineComments drops trailing // comments, line by line from the end,
// and returns what is left with trailing whitespace removed.
func stripLineComments(body string) string {
	for {
		start := strings.LastIndexByte(body, '\n') + 1
		at := lineCommentStart(body[start:])
		if at < 0 {
			return body
		}
		body = strings.TrimRight(body[:start+at], " \t\r\n")
	}
}

// lineCommentStart returns the offset of a // outside string literals, or -1.
func lineCommentStart(line string) int {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			return i
		}
	}
	return -1
}

// lineIndent returns the leading whitespace of the line holding pos and
// whether only whitespace precedes pos on that line.
func lineIndent(content string, pos int) (string, bool) {
	start := strings.LastIndexByte(content[:pos], '\n') + 1
	prefix := content[start:pos]
	indent := prefix[:len(prefix)-len(strings.TrimLeft(prefix, " \t"))]
	return indent, len(indent) == len(prefix)
}

// indentUnit guesses one indentation level from the file: a tab when any
// line is tab indented, otherwise the smallest space indent (2 by default).
func indentUnit(content string) string {
	smallest := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if line[0] == '\t' {
			return "\t"
		}
		n := len(line) - len(strings.TrimLeft(line, " "))
		if n > 0 && (smallest == 0 || n < smallest) {
			smallest = n
		}
	}
	if smallest == 0 || smallest > 4 {
		smallest = 2
	}
	return strings.Repeat(" ", smallest)
}
