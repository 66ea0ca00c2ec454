package transforms

import (
	"context"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yacobolo/uitheme/internal/syntax"
	"github.com/yacobolo/uitheme/internal/transform"
)

// RemoveDuplicateProps drops repeated attributes inside a JSX opening tag.
// The last occurrence is kept since it is the one React applies.
func RemoveDuplicateProps() transform.Unit {
	return transform.Func{
		Meta: transform.Metadata{
			Name:        "remove-duplicate-props",
			Description: "Remove duplicated JSX attributes, keeping the last one",
			Category:    transform.CategoryQuality,
		},
		Fn: removeDuplicateProps,
	}
}

type attr struct {
	name       string
	start, end int // Includes the whitespace before the attribute
}

type removal struct {
	start, end int
	tag, attr  string
}

func removeDuplicateProps(content, filename string) (transform.Result, error) {
	src := []byte(content)
	tree, err := syntax.Parse(context.Background(), src, filename)
	if err != nil {
		return transform.Unchanged(content, fmt.Sprintf("duplicate props not checked: %v", err)), nil
	}
	defer tree.Close()

	var removals []removal
	var warnings []string

	walkTags(tree.RootNode(), func(tag *sitter.Node) {
		name := "fragment"
		if n := tag.ChildByFieldName("name"); n != nil {
			name = syntax.Text(n, src)
		}
		attrs := tagAttrs(tag, src)

		last := map[string]int{}
		for j, a := range attrs {
			last[a.name] = j
		}
		for j, a := range attrs {
			if last[a.name] == j {
				continue
			}
			if transform.MeasureBalance(content[a.start:a.end]) != (transform.Balance{}) {
				warnings = append(warnings, fmt.Sprintf("kept duplicate %s on <%s>: value is not balanced", a.name, name))
				continue
			}
			removals = append(removals, removal{start: a.start, end: a.end, tag: name, attr: a.name})
		}
	})

	if len(removals) == 0 {
		return transform.Unchanged(content, warnings...), nil
	}

	// A tag nested in a removed attribute value goes with it.
	sort.Slice(removals, func(i, j int) bool { return removals[i].start < removals[j].start })

	var b strings.Builder
	var changes []transform.ChangeSpan
	pos := 0
	for _, r := range removals {
		if r.start < pos {
			continue
		}
		b.WriteString(content[pos:r.start])
		pos = r.end
		changes = append(changes, transform.ChangeSpan{
			From:    strings.TrimSpace(content[r.start:r.end]),
			Type:    "remove-prop",
			Context: r.tag,
		})
	}
	b.WriteString(content[pos:])
	return transform.Result{Content: b.String(), Changed: true, Warnings: warnings, Changes: changes}, nil
}

// walkTags calls fn for every opening and self-closing JSX element under n,
// in source order.
func walkTags(n *sitter.Node, fn func(*sitter.Node)) {
	switch n.Type() {
	case "jsx_opening_element", "jsx_self_closing_element":
		fn(n)
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		walkTags(n.NamedChild(i), fn)
	}
}

// tagAttrs lists the named attributes of a tag. Spreads are skipped. Each
// range starts where the previous sibling ends so the separating whitespace
// is removed with the attribute.
func tagAttrs(tag *sitter.Node, src []byte) []attr {
	var attrs []attr
	for i := 0; i < int(tag.NamedChildCount()); i++ {
		n := tag.NamedChild(i)
		if n.Type() != "jsx_attribute" || n.NamedChildCount() == 0 {
			continue
		}
		start := int(n.StartByte())
		if prev := n.PrevSibling(); prev != nil {
			start = int(prev.EndByte())
		}
		attrs = append(attrs, attr{
			name:  syntax.Text(n.NamedChild(0), src),
			start: start,
			end:   int(n.EndByte()),
		})
	}
	return attrs
}
