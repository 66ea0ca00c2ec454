// Package region detects protected regions in component source.
//
// A protected region is the body of a colors or styles object literal:
//
//	const colors = { ... }
//	colors: { ... }          (nested, e.g. inside styles)
//	const styles = { ... }
//
// Token rewrites skip offsets inside these bodies so structured color tables
// are not corrupted. The index is built once per content and answers queries
// with a binary search over the span table.
package region

import (
	"regexp"
	"sort"
)

// AnchorKind identifies which declaration opened a region
type AnchorKind int

// Anchor kinds
const (
	AnchorColors       AnchorKind = iota // const colors = {
	AnchorNestedColors                   // colors: {
	AnchorStyles                         // const styles = {
)

func (k AnchorKind) String() string {
	switch k {
	case AnchorColors:
		return "colors"
	case AnchorNestedColors:
		return "nested-colors"
	case AnchorStyles:
		return "styles"
	default:
		return "unknown"
	}
}

// IsColors reports whether the anchor declares a colors object
func (k AnchorKind) IsColors() bool {
	return k == AnchorColors || k == AnchorNestedColors
}

// Span is one anchored object literal.
//
// Open and Close are byte offsets of the braces. An object left open at end
// of file has Terminated=false and Close=len(content).
type Span struct {
	Kind       AnchorKind
	Anchor     int // Start of the anchor text
	Open       int
	Close      int
	Terminated bool
}

// Contains reports whether offset lies strictly between the braces
func (s Span) Contains(offset int) bool {
	return offset > s.Open && offset < s.Close
}

// ScanMode selects how closing braces are located
type ScanMode int

const (
	// ScanNaive counts every brace, including braces inside string literals
	// and comments. This is the historical behavior and the default.
	ScanNaive ScanMode = iota
	// ScanLexical skips braces inside strings, template literals and
	// comments by running a JavaScript lexer over the object body.
	ScanLexical
)

type anchorPattern struct {
	kind AnchorKind
	re   *regexp.Regexp
}

var anchorPatterns = []anchorPattern{
	{kind: AnchorColors, re: regexp.MustCompile(`const\s+colors\s*=\s*\{`)},
	{kind: AnchorNestedColors, re: regexp.MustCompile(`(?:^|[^\w$.'"])colors\s*:\s*\{`)},
	{kind: AnchorStyles, re: regexp.MustCompile(`const\s+styles\s*=\s*\{`)},
}

// Option configures an Index
type Option func(*Index)

// WithScanMode overrides the brace matching strategy
func WithScanMode(mode ScanMode) Option {
	return func(idx *Index) {
		idx.mode = mode
	}
}

// Index is the span table for one content string
type Index struct {
	content string
	mode    ScanMode
	spans   []Span // Sorted by Open
}

// NewIndex scans content for every anchor and matches its braces
func NewIndex(content string, opts ...Option) *Index {
	idx := &Index{content: content}
	for _, opt := range opts {
		opt(idx)
	}

	for _, p := range anchorPatterns {
		for _, m := range p.re.FindAllStringIndex(content, -1) {
			open := m[1] - 1
			anchor := m[0]
			// The nested pattern consumes one leading boundary character.
			if p.kind == AnchorNestedColors && content[anchor] != 'c' {
				anchor++
			}
			closeAt, ok := idx.matchBrace(open)
			idx.spans = append(idx.spans, Span{
				Kind:       p.kind,
				Anchor:     anchor,
				Open:       open,
				Close:      closeAt,
				Terminated: ok,
			})
		}
	}

	sort.Slice(idx.spans, func(i, j int) bool {
		return idx.spans[i].Open < idx.spans[j].Open
	})
	return idx
}

// IsProtected is a convenience wrapper for one-off queries
func IsProtected(content string, offset int) bool {
	return NewIndex(content).Protected(offset)
}

// Spans returns a copy of the span table
func (idx *Index) Spans() []Span {
	out := make([]Span, len(idx.spans))
	copy(out, idx.spans)
	return out
}

// Nearest returns the span whose opening brace is the closest one before
// offset. Inner anchors win over the objects that enclose them.
func (idx *Index) Nearest(offset int) (Span, bool) {
	i := sort.Search(len(idx.spans), func(i int) bool {
		return idx.spans[i].Open >= offset
	})
	if i == 0 {
		return Span{}, false
	}
	return idx.spans[i-1], true
}

// Protected reports whether offset lies inside the nearest anchored object.
//
// Only the nearest anchor is consulted: an offset after a nested colors
// object has closed is not protected even when an outer styles object is
// still open.
func (idx *Index) Protected(offset int) bool {
	span, ok := idx.Nearest(offset)
	if !ok {
		return false
	}
	return span.Contains(offset)
}

// matchBrace finds the brace closing the one at open
func (idx *Index) matchBrace(open int) (int, bool) {
	if idx.mode == ScanLexical {
		return matchBraceLexical(idx.content, open)
	}
	return matchBraceNaive(idx.content, open)
}

func matchBraceNaive(content string, open int) (int, bool) {
	depth := 0
	for i := open; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return len(content), false
}
