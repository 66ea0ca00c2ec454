// Package syntax parses component sources with tree-sitter. The grammar is
// picked from the file extension: plain TypeScript for .ts, .mts and .cts
// (angle-bracket casts are valid there), TSX for everything else.
package syntax

import (
	"context"
	"fmt"
	"path"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Language returns the grammar for filename. An empty filename gets TSX.
func Language(filename string) *sitter.Language {
	switch strings.ToLower(path.Ext(filename)) {
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	default:
		return tsx.GetLanguage()
	}
}

// Parse builds a tree for src. A tree with syntax errors is rejected so that
// no unit ever emits output derived from a partial parse. The caller closes
// the returned tree.
func Parse(ctx context.Context, src []byte, filename string) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(Language(filename))

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, fmt.Errorf("no syntax tree")
	}
	root := tree.RootNode()
	if root.HasError() {
		bad := FirstError(root)
		tree.Close()
		if bad != nil {
			return nil, fmt.Errorf("syntax error at line %d, column %d", bad.StartPoint().Row+1, bad.StartPoint().Column+1)
		}
		return nil, fmt.Errorf("syntax error")
	}
	return tree, nil
}

// FirstError returns the first ERROR or missing node under n, depth first
func FirstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() && !child.IsMissing() {
			continue
		}
		if bad := FirstError(child); bad != nil {
			return bad
		}
	}
	return nil
}

// Text returns the source covered by n
func Text(n *sitter.Node, src []byte) string {
	return string(src[n.StartByte():n.EndByte()])
}
