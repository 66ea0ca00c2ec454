package transform

import (
	"strings"

	"github.com/yacobolo/uitheme/internal/region"
)

// Guard decides whether the token at offset must be left untouched
type Guard func(idx *region.Index, offset int) bool

// GuardProtected skips anything inside a colors or styles object
func GuardProtected(idx *region.Index, offset int) bool {
	return idx.Protected(offset)
}

// GuardCSSVariable only skips palette colors assigned to custom properties
// inside a colors or styles object
func GuardCSSVariable(idx *region.Index, offset int) bool {
	return idx.InCSSVariable(offset)
}

// RegexOptions configures NewProtectedRegex
type RegexOptions struct {
	Name        string
	Description string
	Category    Category
	Mappings    []ColorMapping
	ChangeType  string // Recorded on every ChangeSpan, e.g. "color-token"

	// ContentFilter, when set, is evaluated once before any mapping; false
	// short-circuits the unit to a no-op.
	ContentFilter func(content string) bool

	// Guard overrides the protection check for protected mappings.
	// Defaults to GuardProtected.
	Guard Guard

	// ScanMode is passed to the region index.
	ScanMode region.ScanMode
}

// ProtectedRegex applies a list of mappings while honoring protected regions
type ProtectedRegex struct {
	opts RegexOptions
}

// NewProtectedRegex builds the unit
func NewProtectedRegex(opts RegexOptions) *ProtectedRegex {
	if opts.Guard == nil {
		opts.Guard = GuardProtected
	}
	if opts.Category == "" {
		opts.Category = CategorySemantic
	}
	if opts.ChangeType == "" {
		opts.ChangeType = "replace"
	}
	return &ProtectedRegex{opts: opts}
}

// Metadata returns the unit metadata
func (p *ProtectedRegex) Metadata() Metadata {
	return Metadata{
		Name:        p.opts.Name,
		Description: p.opts.Description,
		Category:    p.opts.Category,
	}
}

// Mappings returns the mappings in application order
func (p *ProtectedRegex) Mappings() []ColorMapping {
	return p.opts.Mappings
}

// Apply runs every mapping in array order. Later mappings see the output of
// earlier ones, so specific patterns must come before generic ones.
func (p *ProtectedRegex) Apply(content, _ string) (Result, error) {
	if p.opts.ContentFilter != nil && !p.opts.ContentFilter(content) {
		return Unchanged(content), nil
	}

	current := content
	var changes []ChangeSpan
	for _, m := range p.opts.Mappings {
		next, spans := p.applyMapping(current, m)
		if len(spans) == 0 {
			continue
		}
		current = next
		changes = append(changes, spans...)
	}

	if len(changes) == 0 {
		return Unchanged(content), nil
	}
	return Result{Content: current, Changed: true, Changes: changes}, nil
}

// applyMapping builds a new string for one mapping. The region index is
// computed against the input of this mapping, never a partially rewritten
// string.
func (p *ProtectedRegex) applyMapping(content string, m ColorMapping) (string, []ChangeSpan) {
	matches := m.Pattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content, nil
	}

	var idx *region.Index
	if m.Protected {
		idx = region.NewIndex(content, region.WithScanMode(p.opts.ScanMode))
	}

	var b strings.Builder
	var spans []ChangeSpan
	last := 0
	for _, match := range matches {
		if m.Protected && p.opts.Guard(idx, tokenOffset(match)) {
			continue
		}

		from := content[match[0]:match[1]]
		to := string(m.Pattern.ExpandString(nil, m.Replacement, content, match))
		if from == to {
			continue
		}
		lead := content[match[0]:tokenOffset(match)]

		b.WriteString(content[last:match[0]])
		b.WriteString(to)
		last = match[1]

		spans = append(spans, ChangeSpan{
			From:    strings.TrimPrefix(from, lead),
			To:      strings.TrimPrefix(to, lead),
			Type:    p.opts.ChangeType,
			Context: m.Description,
		})
	}
	if len(spans) == 0 {
		return content, nil
	}
	b.WriteString(content[last:])
	return b.String(), spans
}

// tokenOffset is where the rewritten token starts. Patterns built with
// ClassToken capture their leading boundary as group 1; the token begins
// right after it. Any other pattern is checked at the match start.
func tokenOffset(match []int) int {
	if len(match) >= 4 && match[2] == match[0] && match[3] >= 0 {
		return match[3]
	}
	return match[0]
}
