// Package prefix renames component declarations and their types to a
// library prefix (Catalyst style "Button" -> "CatalystButton") over a
// tree-sitter syntax tree (TSX, or TypeScript for .ts files).
//
// The tree is never mutated. A visitor walks it and returns replacement text
// per byte range; edits are applied to the source right to left once the
// walk is complete.
package prefix

import (
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yacobolo/uitheme/internal/syntax"
)

type edit struct {
	start, end uint32
	text       string
}

// applyEdits splices edits into src. Overlapping edits keep the first one
// recorded for a range.
func applyEdits(src []byte, edits []edit) string {
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].start > edits[j].start
	})

	out := string(src)
	last := uint32(len(src)) + 1
	for _, e := range edits {
		if e.end > last {
			continue
		}
		out = out[:e.start] + e.text + out[e.end:]
		last = e.start
	}
	return out
}

func text(n *sitter.Node, src []byte) string {
	return syntax.Text(n, src)
}

func isCapitalized(name string) bool {
	return name != "" && strings.ToUpper(name[:1]) == name[:1] && strings.ToLower(name[:1]) != name[:1]
}

// topLevel yields the declarations directly under program, unwrapping
// export statements.
func topLevel(root *sitter.Node, fn func(decl *sitter.Node, exported bool)) {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() != "export_statement" {
			fn(child, false)
			continue
		}
		if decl := child.ChildByFieldName("declaration"); decl != nil {
			fn(decl, true)
		}
	}
}
