package region

import (
	"regexp"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

var (
	customPropertyPrefix = regexp.MustCompile(`^--[\w-]+:`)
	quotedKeySuffix      = regexp.MustCompile(`['"][^'"\n]+['"]\s*:\s*$`)
)

// InCSSVariable reports whether offset sits inside an arbitrary-value
// bracket that assigns a palette color to a custom property, e.g.
//
//	[--btn-bg:var(--color-zinc-900)]
//
// It is a refinement of Protected: brackets outside a colors or styles
// object never count.
func (idx *Index) InCSSVariable(offset int) bool {
	if !idx.Protected(offset) {
		return false
	}

	open, closeAt, ok := enclosingBracket(idx.content, offset)
	if !ok {
		return false
	}
	return IsColorVariableExpr(idx.content[open+1 : closeAt])
}

// IsColorVariableExpr reports whether body (the text between the brackets)
// is "--name:...var(--color-...)...".
func IsColorVariableExpr(body string) bool {
	if !customPropertyPrefix.MatchString(body) {
		return false
	}

	lexer := css.NewLexer(parse.NewInputString(body))
	sawVar := false
	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return false
		case css.WhitespaceToken:
			continue
		case css.FunctionToken:
			sawVar = strings.EqualFold(string(text), "var(")
			continue
		}
		if sawVar && strings.HasPrefix(string(text), "--color-") {
			return true
		}
		sawVar = false
	}
}

// enclosingBracket finds the tightest [ ... ] around offset on one token.
// Arbitrary values never contain whitespace or quotes, so the scan stops at
// either.
func enclosingBracket(content string, offset int) (int, int, bool) {
	if offset < 0 || offset >= len(content) {
		return 0, 0, false
	}

	open := -1
	for i := offset; i >= 0; i-- {
		c := content[i]
		if c == '[' {
			open = i
			break
		}
		if c == ']' && i != offset || isTokenBreak(c) {
			return 0, 0, false
		}
	}
	if open < 0 {
		return 0, 0, false
	}

	for i := offset; i < len(content); i++ {
		c := content[i]
		if c == ']' {
			return open, i, true
		}
		if isTokenBreak(c) {
			return 0, 0, false
		}
	}
	return 0, 0, false
}

func isTokenBreak(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\'', '"', '`':
		return true
	}
	return false
}

// InColorsArrayElement reports whether offset is inside an array that is
// the value of a quoted key within a colors object:
//
//	const colors = {
//	  'dark/zinc': [ ... ],
//	}
func (idx *Index) InColorsArrayElement(offset int) bool {
	span, ok := idx.Nearest(offset)
	if !ok || !span.Kind.IsColors() || !span.Contains(offset) {
		return false
	}

	depth := 0
	for i := offset - 1; i > span.Open; i-- {
		switch idx.content[i] {
		case ']':
			depth++
		case '[':
			if depth > 0 {
				depth--
				continue
			}
			// Arbitrary-value brackets inside an element are not the array.
			if quotedKeySuffix.MatchString(idx.content[span.Open+1 : i]) {
				return true
			}
		}
	}
	return false
}
