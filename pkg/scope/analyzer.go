package scope

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// Analyze builds the scope graph for a parsed file. The walk is a single
// synchronous pass; definitions are registered before their identifier
// leaves are visited, so references never race their own declarations.
//
// Var hoisting is approximated: every binding lands in the scope of its
// syntactic position. That is sufficient for component and prop
// resolution, which only ever looks up names declared before use.
func Analyze(root *ts.Node, source []byte) *Tree {
	t := &Tree{
		byNode:   make(map[uintptr]*Scope),
		defNodes: make(map[uintptr]bool),
		source:   source,
	}

	t.Root = &Scope{
		Kind:      KindProgram,
		Node:      root,
		Variables: make(map[string]*Variable),
	}
	t.byNode[root.Id()] = t.Root

	t.visit(root, t.Root)
	return t
}

func (t *Tree) newScope(kind Kind, node *ts.Node, upper *Scope) *Scope {
	s := &Scope{
		Kind:      kind,
		Node:      node,
		Upper:     upper,
		Variables: make(map[string]*Variable),
	}
	upper.children = append(upper.children, s)
	t.byNode[node.Id()] = s
	return s
}

func (t *Tree) visit(node *ts.Node, current *Scope) {
	kind := node.Kind()

	switch kind {
	case "function_declaration", "generator_function_declaration":
		// The name binds in the enclosing scope.
		if name := node.ChildByFieldName("name"); name != nil {
			t.declareIdent(current, name, node, DefFunction)
		}
		inner := t.newScope(KindFunction, node, current)
		t.declareParams(inner, node)
		t.visitChildrenSkippingName(node, inner)
		return

	case "function_expression", "function", "generator_function",
		"arrow_function", "method_definition":
		inner := t.newScope(KindFunction, node, current)
		// A named function expression binds its own name inside itself.
		if name := node.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
			t.declareIdent(inner, name, node, DefFunction)
		}
		t.declareParams(inner, node)
		t.visitChildrenSkippingName(node, inner)
		return

	case "class_declaration":
		if name := node.ChildByFieldName("name"); name != nil {
			t.declareIdent(current, name, node, DefClass)
		}
		t.visitChildrenSkippingName(node, current)
		return

	case "statement_block":
		// Function bodies already opened a scope at the function node.
		parent := node.Parent()
		if parent != nil && isFunctionLikeKind(parent.Kind()) {
			t.visitChildren(node, current)
			return
		}
		inner := t.newScope(KindBlock, node, current)
		t.visitChildren(node, inner)
		return

	case "for_statement", "for_in_statement":
		inner := t.newScope(KindBlock, node, current)
		t.visitChildren(node, inner)
		return

	case "variable_declarator":
		if name := node.ChildByFieldName("name"); name != nil {
			for _, ident := range bindingIdentifiers(name) {
				t.declareIdent(current, ident, node, DefVariable)
			}
		}
		t.visitChildren(node, current)
		return

	case "import_statement":
		t.declareImports(current, node)
		return

	case "identifier", "shorthand_property_identifier":
		t.reference(current, node)
		return
	}

	if isTypeOnlyKind(kind) {
		// Type positions never produce runtime references.
		return
	}

	t.visitChildren(node, current)
}

func (t *Tree) visitChildren(node *ts.Node, s *Scope) {
	for i := uint(0); i < uint(node.NamedChildCount()); i++ {
		t.visit(node.NamedChild(i), s)
	}
}

// visitChildrenSkippingName visits named children except the node's
// "name" field, which was already declared.
func (t *Tree) visitChildrenSkippingName(node *ts.Node, s *Scope) {
	name := node.ChildByFieldName("name")
	for i := uint(0); i < uint(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if name != nil && child.Id() == name.Id() {
			continue
		}
		t.visit(child, s)
	}
}

func (t *Tree) declareIdent(s *Scope, ident, decl *ts.Node, kind DefKind) {
	t.defNodes[ident.Id()] = true
	s.declare(ident.Utf8Text(t.source), Def{Kind: kind, Name: ident, Decl: decl})
}

func (t *Tree) declareParams(s *Scope, fn *ts.Node) {
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		// Arrow with a single bare parameter.
		if p := fn.ChildByFieldName("parameter"); p != nil {
			for _, ident := range bindingIdentifiers(p) {
				t.declareIdent(s, ident, fn, DefParameter)
			}
		}
		return
	}
	for i := uint(0); i < uint(params.NamedChildCount()); i++ {
		param := params.NamedChild(i)
		target := param
		// TS wraps parameters: required_parameter / optional_parameter
		// carry the binding under the "pattern" field.
		if pk := param.Kind(); pk == "required_parameter" || pk == "optional_parameter" {
			if p := param.ChildByFieldName("pattern"); p != nil {
				target = p
			}
		}
		for _, ident := range bindingIdentifiers(target) {
			t.declareIdent(s, ident, param, DefParameter)
		}
	}
}

func (t *Tree) declareImports(s *Scope, imp *ts.Node) {
	for i := uint(0); i < uint(imp.NamedChildCount()); i++ {
		clause := imp.NamedChild(i)
		if clause.Kind() != "import_clause" {
			continue
		}
		for j := uint(0); j < uint(clause.NamedChildCount()); j++ {
			item := clause.NamedChild(j)
			switch item.Kind() {
			case "identifier":
				// Default import.
				t.declareIdent(s, item, imp, DefImport)
			case "namespace_import":
				for k := uint(0); k < uint(item.NamedChildCount()); k++ {
					if id := item.NamedChild(k); id.Kind() == "identifier" {
						t.declareIdent(s, id, imp, DefImport)
					}
				}
			case "named_imports":
				for k := uint(0); k < uint(item.NamedChildCount()); k++ {
					spec := item.NamedChild(k)
					if spec.Kind() != "import_specifier" {
						continue
					}
					ident := spec.ChildByFieldName("alias")
					if ident == nil {
						ident = spec.ChildByFieldName("name")
					}
					if ident != nil {
						t.declareIdent(s, ident, spec, DefImport)
					}
				}
			}
		}
	}
}

func (t *Tree) reference(s *Scope, ident *ts.Node) {
	if t.defNodes[ident.Id()] {
		return
	}
	ref := &Reference{Node: ident, From: s}
	if v := s.Resolve(ident.Utf8Text(t.source)); v != nil {
		ref.Variable = v
		v.References = append(v.References, ref)
	}
	s.Refs = append(s.Refs, ref)
}

// bindingIdentifiers collects every identifier bound by a binding
// pattern: plain identifiers, object/array patterns at arbitrary depth,
// defaults, and rest elements.
func bindingIdentifiers(pattern *ts.Node) []*ts.Node {
	if pattern == nil {
		return nil
	}
	switch pattern.Kind() {
	case "identifier", "shorthand_property_identifier_pattern":
		return []*ts.Node{pattern}
	case "object_pattern", "array_pattern":
		var out []*ts.Node
		for i := uint(0); i < uint(pattern.NamedChildCount()); i++ {
			out = append(out, bindingIdentifiers(pattern.NamedChild(i))...)
		}
		return out
	case "pair_pattern":
		return bindingIdentifiers(pattern.ChildByFieldName("value"))
	case "object_assignment_pattern", "assignment_pattern":
		return bindingIdentifiers(pattern.ChildByFieldName("left"))
	case "rest_pattern":
		var out []*ts.Node
		for i := uint(0); i < uint(pattern.NamedChildCount()); i++ {
			out = append(out, bindingIdentifiers(pattern.NamedChild(i))...)
		}
		return out
	}
	return nil
}

func isFunctionLikeKind(kind string) bool {
	switch kind {
	case "function_declaration", "generator_function_declaration",
		"function_expression", "function", "generator_function",
		"arrow_function", "method_definition":
		return true
	}
	return false
}

func isTypeOnlyKind(kind string) bool {
	switch kind {
	case "type_annotation", "type_arguments", "type_parameters",
		"interface_declaration", "type_alias_declaration":
		return true
	}
	return false
}
