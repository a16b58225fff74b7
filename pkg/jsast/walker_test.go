package jsast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ts "github.com/tree-sitter/go-tree-sitter"
)

func TestWalkEnterBeforeChildrenExitAfter(t *testing.T) {
	root := parse(t, "order.js", `function f() { return 1; }`)

	var events []string
	vis := NewVisitors()
	vis.OnEnter("function_declaration", func(*ts.Node) { events = append(events, "enter fn") })
	vis.OnExit("function_declaration", func(*ts.Node) { events = append(events, "exit fn") })
	vis.OnEnter("return_statement", func(*ts.Node) { events = append(events, "enter return") })
	Walk(root, vis)

	assert.Equal(t, []string{"enter fn", "enter return", "exit fn"}, events)
}

func TestWalkObserversFireInRegistrationOrder(t *testing.T) {
	root := parse(t, "regorder.js", `const a = 1;`)

	var events []string
	vis := NewVisitors()
	vis.OnEnter("variable_declarator", func(*ts.Node) { events = append(events, "first") })
	vis.OnEnter("variable_declarator", func(*ts.Node) { events = append(events, "second") })
	Walk(root, vis)

	assert.Equal(t, []string{"first", "second"}, events)
}

func TestWalkAnyKind(t *testing.T) {
	root := parse(t, "any.js", `const a = 1;`)

	named := 0
	vis := NewVisitors()
	vis.OnEnter(AnyKind, func(*ts.Node) { named++ })
	Walk(root, vis)

	// program, lexical_declaration, variable_declarator, identifier, number.
	assert.Equal(t, 5, named)
}

func TestMergePreservesOrderAcrossSets(t *testing.T) {
	root := parse(t, "merge.js", `const a = 1;`)

	var events []string
	base := NewVisitors()
	base.OnEnter("variable_declarator", func(*ts.Node) { events = append(events, "base") })
	extra := NewVisitors()
	extra.OnEnter("variable_declarator", func(*ts.Node) { events = append(events, "extra") })
	extra.OnExit("program", func(*ts.Node) { events = append(events, "finalize") })

	base.Merge(extra)
	base.Merge(nil)
	Walk(root, base)

	require.Equal(t, []string{"base", "extra", "finalize"}, events)
}

func TestWalkNilSafe(t *testing.T) {
	Walk(nil, NewVisitors())

	root := parse(t, "nil.js", `const a = 1;`)
	Walk(root, nil)
}
