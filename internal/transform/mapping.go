package transform

import (
	"fmt"
	"regexp"
)

// ColorMapping is a single token rewrite rule.
//
// Replacement supports $1-style expansion. Protected mappings are skipped for
// matches inside protected regions (see package region).
type ColorMapping struct {
	Pattern     *regexp.Regexp
	Replacement string
	Description string
	Protected   bool
}

// MakeProtected returns a copy of m subject to protected-region exclusion
func MakeProtected(m ColorMapping) ColorMapping {
	m.Protected = true
	return m
}

// classBoundary is what may precede a utility class: start of text,
// whitespace, a quote or backtick, a variant colon, or an opening delimiter.
const classBoundary = "(^|[\\s\"'`:{(\\[,])"

// ClassToken compiles a pattern matching a Tailwind utility class as a whole
// token, optionally behind variants ("hover:", "dark:"). The leading
// boundary is captured as $1 so replacements must start with "${1}".
func ClassToken(class string) *regexp.Regexp {
	return regexp.MustCompile(classBoundary + regexp.QuoteMeta(class) + `\b`)
}

// ClassMapping builds a protected mapping from one utility class to another
func ClassMapping(from, to, description string) ColorMapping {
	return MakeProtected(ColorMapping{
		Pattern:     ClassToken(from),
		Replacement: "${1}" + to,
		Description: description,
	})
}

// MappingSpec is the serializable form of a ColorMapping (config files)
type MappingSpec struct {
	Pattern     string `koanf:"pattern" json:"pattern"`
	Replacement string `koanf:"replacement" json:"replacement"`
	Description string `koanf:"description" json:"description"`
	Protected   bool   `koanf:"protected" json:"protected"`
}

// Compile turns s into a mapping
func (s MappingSpec) Compile() (ColorMapping, error) {
	if s.Pattern == "" {
		return ColorMapping{}, fmt.Errorf("mapping %q: empty pattern", s.Description)
	}
	re, err := regexp.Compile(s.Pattern)
	if err != nil {
		return ColorMapping{}, fmt.Errorf("mapping %q: %w", s.Description, err)
	}
	desc := s.Description
	if desc == "" {
		desc = s.Pattern + " -> " + s.Replacement
	}
	return ColorMapping{
		Pattern:     re,
		Replacement: s.Replacement,
		Description: desc,
		Protected:   s.Protected,
	}, nil
}

// CompileMappings compiles specs in order, stopping at the first bad pattern
func CompileMappings(specs []MappingSpec) ([]ColorMapping, error) {
	mappings := make([]ColorMapping, 0, len(specs))
	for _, s := range specs {
		m, err := s.Compile()
		if err != nil {
			return nil, err
		}
		mappings = append(mappings, m)
	}
	return mappings, nil
}
