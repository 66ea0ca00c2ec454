package prefix

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yacobolo/uitheme/internal/syntax"
	"github.com/yacobolo/uitheme/internal/transform"
)

// DefaultPrefix is used when no prefix is configured
const DefaultPrefix = "Catalyst"

// Types renames top level type aliases and interfaces to carry prefix and
// exports every prefixed Props type.
func Types(prefix string) transform.Unit {
	return transform.Func{
		Meta: transform.Metadata{
			Name:        "catalyst-prefix-types",
			Description: fmt.Sprintf("Prefix type names with %q and export Props types", prefix),
			Category:    transform.CategoryAST,
		},
		Fn: func(content, filename string) (transform.Result, error) {
			return run("catalyst-prefix-types", prefix, content, filename, planTypes)
		},
	}
}

// Components renames top level components to carry prefix and updates every
// reference in the file (JSX tags, identifiers, shorthand properties).
func Components(prefix string) transform.Unit {
	return transform.Func{
		Meta: transform.Metadata{
			Name:        "catalyst-prefix-components",
			Description: fmt.Sprintf("Prefix component names with %q", prefix),
			Category:    transform.CategoryAST,
		},
		Fn: func(content, filename string) (transform.Result, error) {
			return run("catalyst-prefix-components", prefix, content, filename, planComponents)
		},
	}
}

// plan fills in the renames for one file
type plan func(r *renamer, root *sitter.Node)

func run(name, prefix, content, filename string, p plan) (transform.Result, error) {
	if prefix == "" {
		return transform.Unchanged(content, "no prefix configured"), nil
	}

	src := []byte(content)
	tree, err := syntax.Parse(context.Background(), src, filename)
	if err != nil {
		perr := transform.ParseError(name, filename, err)
		return transform.Unchanged(content, perr.Message), perr
	}
	defer tree.Close()

	r := &renamer{
		src:    src,
		prefix: prefix,
		values: map[string]string{},
		types:  map[string]string{},
	}
	root := tree.RootNode()
	p(r, root)
	if len(r.values) == 0 && len(r.types) == 0 && len(r.edits) == 0 {
		return transform.Unchanged(content, r.warnings...), nil
	}

	r.walk(root, nil)
	if len(r.edits) == 0 {
		return transform.Unchanged(content, r.warnings...), nil
	}
	return transform.Result{
		Content:  applyEdits(src, r.edits),
		Changed:  true,
		Warnings: r.warnings,
		Changes:  r.changes,
	}, nil
}

type renamer struct {
	src      []byte
	prefix   string
	values   map[string]string // identifier renames
	types    map[string]string // type_identifier renames
	edits    []edit
	changes  []transform.ChangeSpan
	warnings []string
}

func (r *renamer) prefixed(name string) string {
	return r.prefix + name
}

func planTypes(r *renamer, root *sitter.Node) {
	declared := map[string]bool{}
	topLevel(root, func(decl *sitter.Node, _ bool) {
		if isTypeDecl(decl) {
			if name := decl.ChildByFieldName("name"); name != nil {
				declared[text(name, r.src)] = true
			}
		}
	})

	topLevel(root, func(decl *sitter.Node, exported bool) {
		if !isTypeDecl(decl) {
			return
		}
		nameNode := decl.ChildByFieldName("name")
		if nameNode == nil {
			return
		}
		name := text(nameNode, r.src)
		final := name
		if !strings.HasPrefix(name, r.prefix) {
			final = r.prefixed(name)
			if declared[final] {
				r.warnings = append(r.warnings, fmt.Sprintf("not renaming type %s: %s already declared", name, final))
				final = name
			} else {
				r.types[name] = final
				r.changes = append(r.changes, transform.ChangeSpan{
					From: name, To: final, Type: "rename", Context: decl.Type(),
				})
			}
		}

		if exported || !strings.Contains(final, "Props") || !strings.HasPrefix(final, r.prefix) {
			return
		}
		keyword := strings.Fields(text(decl, r.src))[0]
		r.edits = append(r.edits, edit{start: decl.StartByte(), end: decl.StartByte(), text: "export "})
		r.changes = append(r.changes, transform.ChangeSpan{
			From:    keyword + " " + final,
			To:      "export " + keyword + " " + final,
			Type:    "export",
			Context: decl.Type(),
		})
	})
}

func isTypeDecl(n *sitter.Node) bool {
	return n.Type() == "type_alias_declaration" || n.Type() == "interface_declaration"
}

var componentWrappers = map[string]bool{
	"forwardRef":       true,
	"React.forwardRef": true,
	"memo":             true,
	"React.memo":       true,
}

func planComponents(r *renamer, root *sitter.Node) {
	declared := map[string]bool{}
	var candidates []*sitter.Node
	var kinds []string

	topLevel(root, func(decl *sitter.Node, _ bool) {
		switch decl.Type() {
		case "function_declaration", "class_declaration":
			if name := decl.ChildByFieldName("name"); name != nil {
				declared[text(name, r.src)] = true
				if decl.Type() == "function_declaration" {
					candidates = append(candidates, name)
					kinds = append(kinds, decl.Type())
				}
			}
		case "lexical_declaration", "variable_declaration":
			for i := 0; i < int(decl.NamedChildCount()); i++ {
				d := decl.NamedChild(i)
				name := d.ChildByFieldName("name")
				if d.Type() != "variable_declarator" || name == nil || name.Type() != "identifier" {
					continue
				}
				declared[text(name, r.src)] = true
				if value := d.ChildByFieldName("value"); value != nil && r.isComponentValue(value) {
					candidates = append(candidates, name)
					kinds = append(kinds, value.Type())
				}
			}
		}
	})

	for i, nameNode := range candidates {
		name := text(nameNode, r.src)
		if !isCapitalized(name) || strings.HasPrefix(name, r.prefix) {
			continue
		}
		final := r.prefixed(name)
		if declared[final] {
			r.warnings = append(r.warnings, fmt.Sprintf("not renaming %s: %s already declared", name, final))
			continue
		}
		r.values[name] = final
		r.changes = append(r.changes, transform.ChangeSpan{
			From: name, To: final, Type: "rename", Context: kinds[i],
		})
	}
}

func (r *renamer) isComponentValue(value *sitter.Node) bool {
	switch value.Type() {
	case "arrow_function", "function_expression", "function":
		return true
	case "call_expression":
		fn := value.ChildByFieldName("function")
		return fn != nil && componentWrappers[text(fn, r.src)]
	}
	return false
}

// walk visits every node and records replacement edits. Declaration names
// are visited in the enclosing scope; everything else sees the names the
// node binds.
func (r *renamer) walk(n *sitter.Node, sc scopes) {
	switch n.Type() {
	case "import_statement", "comment", "string":
		return
	case "identifier":
		r.rename(n, sc, r.values, "")
		return
	case "type_identifier":
		r.rename(n, sc, r.types, "")
		return
	case "shorthand_property_identifier":
		name := text(n, r.src)
		r.rename(n, sc, r.values, name+": ")
		return
	}

	var nameNode *sitter.Node
	if scopeNodes[n.Type()] {
		if nameNode = n.ChildByFieldName("name"); nameNode != nil {
			r.walk(nameNode, sc)
		}
		sc = append(sc[:len(sc):len(sc)], declaredIn(n, r.src))
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if nameNode != nil && child.StartByte() == nameNode.StartByte() && child.EndByte() == nameNode.EndByte() {
			continue
		}
		r.walk(child, sc)
	}
}

func (r *renamer) rename(n *sitter.Node, sc scopes, renames map[string]string, lead string) {
	name := text(n, r.src)
	to, ok := renames[name]
	if !ok || sc.shadowed(name) {
		return
	}
	r.edits = append(r.edits, edit{start: n.StartByte(), end: n.EndByte(), text: lead + to})
}
