// Package scope builds a lexical scope graph over a tree-sitter
// JavaScript/TypeScript tree: variable definitions, references, and the
// upper-scope chain used for name resolution. The graph is read-only
// once built; the lint engine walks it but never mutates the tree.
package scope

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// Kind classifies a scope.
type Kind int

const (
	// KindProgram is the top-level module scope.
	KindProgram Kind = iota
	// KindFunction is a scope opened by any function-like node.
	KindFunction
	// KindBlock is a scope opened by a statement block or for-statement.
	KindBlock
)

// DefKind classifies how a variable was introduced.
type DefKind string

const (
	DefVariable  DefKind = "variable"
	DefFunction  DefKind = "function"
	DefClass     DefKind = "class"
	DefParameter DefKind = "parameter"
	DefImport    DefKind = "import"
)

// Def records one definition site of a variable.
type Def struct {
	// Kind is how the name was introduced.
	Kind DefKind
	// Name is the defining identifier node.
	Name *ts.Node
	// Decl is the enclosing declaration node (declarator, function,
	// class, import specifier).
	Decl *ts.Node
}

// Reference is one read of a variable from some scope.
type Reference struct {
	// Node is the identifier node performing the read.
	Node *ts.Node
	// From is the scope the read occurs in.
	From *Scope
	// Variable is the resolved target, nil for globals.
	Variable *Variable
}

// Variable is a named binding with its definitions and every reference
// that resolved to it.
type Variable struct {
	Name       string
	Defs       []Def
	References []*Reference

	used bool
}

// Used reports whether the variable was explicitly marked as used.
func (v *Variable) Used() bool { return v.used }

// Scope is one lexical scope. Upper points at the enclosing scope;
// resolution walks the Upper chain.
type Scope struct {
	Kind      Kind
	Node      *ts.Node
	Upper     *Scope
	Variables map[string]*Variable
	// Refs are all references made directly in this scope.
	Refs []*Reference

	children []*Scope
}

// Resolve finds name in this scope or any upper scope. Returns nil for
// globals and undeclared names.
func (s *Scope) Resolve(name string) *Variable {
	for cur := s; cur != nil; cur = cur.Upper {
		if v, ok := cur.Variables[name]; ok {
			return v
		}
	}
	return nil
}

func (s *Scope) declare(name string, def Def) *Variable {
	v, ok := s.Variables[name]
	if !ok {
		v = &Variable{Name: name}
		s.Variables[name] = v
	}
	v.Defs = append(v.Defs, def)
	return v
}

// Tree is the scope graph for one parsed file.
type Tree struct {
	Root *Scope

	byNode   map[uintptr]*Scope
	defNodes map[uintptr]bool
	source   []byte
}

// ScopeFor returns the innermost scope containing node, falling back to
// the program scope.
func (t *Tree) ScopeFor(node *ts.Node) *Scope {
	for n := node; n != nil; n = n.Parent() {
		if s, ok := t.byNode[n.Id()]; ok {
			return s
		}
	}
	return t.Root
}

// MarkUsed resolves name from the scope at node and flags the variable
// as used, suppressing unused-variable style diagnostics downstream.
// Returns false when the name does not resolve.
func (t *Tree) MarkUsed(name string, at *ts.Node) bool {
	v := t.ScopeFor(at).Resolve(name)
	if v == nil {
		return false
	}
	v.used = true
	return true
}
