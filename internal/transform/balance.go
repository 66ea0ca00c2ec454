package transform

// Balance holds open-minus-close counts for the three bracket pairs
type Balance struct {
	Braces   int
	Parens   int
	Brackets int
}

// MeasureBalance counts bracket deltas over raw text. String and comment
// content is not special-cased.
func MeasureBalance(content string) Balance {
	var b Balance
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '{':
			b.Braces++
		case '}':
			b.Braces--
		case '(':
			b.Parens++
		case ')':
			b.Parens--
		case '[':
			b.Brackets++
		case ']':
			b.Brackets--
		}
	}
	return b
}
