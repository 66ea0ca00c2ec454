package region

import (
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

// matchBraceLexical matches the brace at open while ignoring braces inside
// strings, template literals and comments. Template substitutions are
// handled by the lexer itself, so "${" never counts as an object brace.
func matchBraceLexical(content string, open int) (int, bool) {
	lexer := js.NewLexer(parse.NewInputString(content[open:]))

	depth := 0
	pos := open
	for {
		tt, text := lexer.Next()
		if tt == js.ErrorToken {
			// The lexer skips a stray rune and keeps going; a nil token means
			// end of input or an unterminated comment/string.
			if text == nil {
				return len(content), false
			}
			pos += len(text)
			continue
		}

		switch tt {
		case js.OpenBraceToken:
			depth++
		case js.CloseBraceToken:
			depth--
			if depth == 0 {
				return pos, true
			}
		}
		pos += len(text)
	}
}
