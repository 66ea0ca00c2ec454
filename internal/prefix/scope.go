package prefix

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// scopeNodes open a new lexical scope for the names they declare
var scopeNodes = map[string]bool{
	"function_declaration":           true,
	"function_expression":            true,
	"function":                       true,
	"generator_function_declaration": true,
	"arrow_function":                 true,
	"method_definition":              true,
	"statement_block":                true,
	"for_statement":                  true,
	"for_in_statement":               true,
	"catch_clause":                   true,
	"class_body":                     true,
	"type_alias_declaration":         true,
	"interface_declaration":          true,
}

type scopes []map[string]bool

func (s scopes) shadowed(name string) bool {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i][name] {
			return true
		}
	}
	return false
}

// declaredIn collects the names a scope node binds: its parameters and type
// parameters, loop and catch bindings, and the direct declarations of a
// block.
func declaredIn(n *sitter.Node, src []byte) map[string]bool {
	names := map[string]bool{}

	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		for i := 0; i < int(tp.NamedChildCount()); i++ {
			if name := tp.NamedChild(i).ChildByFieldName("name"); name != nil {
				names[text(name, src)] = true
			}
		}
	}

	switch n.Type() {
	case "arrow_function":
		if p := n.ChildByFieldName("parameter"); p != nil {
			bindPattern(p, src, names)
		}
		fallthrough
	case "function_declaration", "function_expression", "function", "generator_function_declaration", "method_definition":
		if params := n.ChildByFieldName("parameters"); params != nil {
			for i := 0; i < int(params.NamedChildCount()); i++ {
				param := params.NamedChild(i)
				if pattern := param.ChildByFieldName("pattern"); pattern != nil {
					bindPattern(pattern, src, names)
				}
			}
		}
	case "for_statement":
		if init := n.ChildByFieldName("initializer"); init != nil {
			bindDeclaration(init, src, names)
		}
	case "for_in_statement":
		if left := n.ChildByFieldName("left"); left != nil {
			bindPattern(left, src, names)
		}
	case "catch_clause":
		if p := n.ChildByFieldName("parameter"); p != nil {
			bindPattern(p, src, names)
		}
	case "statement_block":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			bindDeclaration(n.NamedChild(i), src, names)
		}
	}
	return names
}

func bindDeclaration(n *sitter.Node, src []byte, names map[string]bool) {
	switch n.Type() {
	case "lexical_declaration", "variable_declaration":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			decl := n.NamedChild(i)
			if decl.Type() != "variable_declarator" {
				continue
			}
			if name := decl.ChildByFieldName("name"); name != nil {
				bindPattern(name, src, names)
			}
		}
	case "function_declaration", "generator_function_declaration", "class_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			names[text(name, src)] = true
		}
	}
}

// bindPattern records every identifier a destructuring pattern binds
func bindPattern(n *sitter.Node, src []byte, names map[string]bool) {
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		names[text(n, src)] = true
	case "pair_pattern":
		if v := n.ChildByFieldName("value"); v != nil {
			bindPattern(v, src, names)
		}
	case "assignment_pattern", "object_assignment_pattern":
		if l := n.ChildByFieldName("left"); l != nil {
			bindPattern(l, src, names)
		}
	case "object_pattern", "array_pattern", "rest_pattern":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			bindPattern(n.NamedChild(i), src, names)
		}
	}
}
