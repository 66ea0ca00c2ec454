package semantic

import (
	"fmt"
	"strings"
)

// Tokens are the semantic keys injected into every colors object, in order
var Tokens = []string{"primary", "secondary", "destructive", "accent", "muted"}

// Entry is one key of a semantic block. A value with more than one class
// string is rendered as an array.
type Entry struct {
	Key    string
	Values []string
}

// Block returns the semantic entries for k
func Block(k Kind) []Entry {
	render, ok := renderers[k]
	if !ok {
		return nil
	}
	entries := make([]Entry, 0, len(Tokens))
	for _, token := range Tokens {
		entries = append(entries, Entry{Key: token, Values: render(token)})
	}
	return entries
}

var renderers = map[Kind]func(token string) []string{
	KindBadge: func(t string) []string {
		return []string{fmt.Sprintf(
			"bg-%[1]s/15 text-%[1]s group-data-hover:bg-%[1]s/25 dark:bg-%[1]s/10 dark:group-data-hover:bg-%[1]s/20", t)}
	},
	KindAlert: func(t string) []string {
		return []string{fmt.Sprintf("bg-%[1]s/10 text-%[1]s ring-%[1]s/20", t)}
	},
	KindButton: func(t string) []string {
		return []string{
			fmt.Sprintf("text-%[1]s-foreground [--btn-hover-overlay:var(--color-white)]/10", t),
			fmt.Sprintf("[--btn-bg:var(--color-%[1]s)] [--btn-border:var(--color-%[1]s)]/90", t),
			fmt.Sprintf("[--btn-icon:var(--color-%[1]s-foreground)]/60 data-active:[--btn-icon:var(--color-%[1]s-foreground)]/80 data-hover:[--btn-icon:var(--color-%[1]s-foreground)]/80", t),
		}
	},
	KindSwitch: func(t string) []string {
		return []string{
			fmt.Sprintf("[--switch-bg-ring:var(--color-%[1]s)]/90 [--switch-bg:var(--color-%[1]s)] dark:[--switch-bg-ring:transparent]", t),
			fmt.Sprintf("[--switch-shadow:var(--color-black)]/10 [--switch:var(--color-%[1]s-foreground)] [--switch-ring:var(--color-%[1]s)]/90", t),
		}
	},
	KindRadio: func(t string) []string {
		return []string{
			fmt.Sprintf("[--radio-checked-bg:var(--color-%[1]s)] [--radio-checked-border:var(--color-%[1]s)]/90", t),
			fmt.Sprintf("[--radio-checked-indicator:var(--color-%[1]s-foreground)]", t),
		}
	},
	KindCheckbox: func(t string) []string {
		return []string{
			fmt.Sprintf("[--checkbox-check:var(--color-%[1]s-foreground)] [--checkbox-checked-bg:var(--color-%[1]s)]", t),
			fmt.Sprintf("[--checkbox-checked-border:var(--color-%[1]s)]/90", t),
		}
	},
}

// render writes entries at the given indentation. Every entry ends with a
// trailing comma.
func render(entries []Entry, indent, unit string) string {
	var b strings.Builder
	for _, e := range entries {
		if len(e.Values) == 1 {
			fmt.Fprintf(&b, "%s%s: '%s',\n", indent, e.Key, e.Values[0])
			continue
		}
		fmt.Fprintf(&b, "%s%s: [\n", indent, e.Key)
		for _, v := range e.Values {
			fmt.Fprintf(&b, "%s%s'%s',\n", indent, unit, v)
		}
		fmt.Fprintf(&b, "%s],\n", indent)
	}
	return b.String()
}
