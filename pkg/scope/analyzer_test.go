package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/jsxray/jsxray/pkg/parser"
)

func analyzeSource(t *testing.T, filename, source string) (*Tree, *ts.Node) {
	t.Helper()
	pm := parser.NewManager(nil)
	t.Cleanup(func() { pm.Close() })

	tree, err := pm.ParseFile([]byte(source), filename)
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	root := tree.RootNode()
	return Analyze(root, []byte(source)), root
}

func nodeOfKind(node *ts.Node, kind string) *ts.Node {
	if node.Kind() == kind {
		return node
	}
	for i := uint(0); i < uint(node.NamedChildCount()); i++ {
		if found := nodeOfKind(node.NamedChild(i), kind); found != nil {
			return found
		}
	}
	return nil
}

func TestAnalyzeTopLevelDeclarations(t *testing.T) {
	tree, _ := analyzeSource(t, "decls.js", `
const a = 1;
function f() {}
class C {}
`)

	a := tree.Root.Resolve("a")
	require.NotNil(t, a)
	assert.Equal(t, DefVariable, a.Defs[0].Kind)

	f := tree.Root.Resolve("f")
	require.NotNil(t, f)
	assert.Equal(t, DefFunction, f.Defs[0].Kind)

	c := tree.Root.Resolve("C")
	require.NotNil(t, c)
	assert.Equal(t, DefClass, c.Defs[0].Kind)

	assert.Nil(t, tree.Root.Resolve("missing"))
}

func TestAnalyzeFunctionScopeShadowing(t *testing.T) {
	tree, root := analyzeSource(t, "shadow.js", `
const a = 1;
function f(a) { return a; }
`)

	fn := nodeOfKind(root, "function_declaration")
	require.NotNil(t, fn)

	inner := tree.ScopeFor(nodeOfKind(fn, "return_statement"))
	v := inner.Resolve("a")
	require.NotNil(t, v)
	assert.Equal(t, DefParameter, v.Defs[0].Kind)

	outer := tree.Root.Resolve("a")
	require.NotNil(t, outer)
	assert.Equal(t, DefVariable, outer.Defs[0].Kind)
	assert.NotSame(t, outer, v)
}

func TestAnalyzeReferencesResolve(t *testing.T) {
	tree, _ := analyzeSource(t, "refs.js", `
const target = 1;
use(target);
use(target);
`)

	v := tree.Root.Resolve("target")
	require.NotNil(t, v)
	assert.Len(t, v.References, 2)
	for _, ref := range v.References {
		assert.Same(t, v, ref.Variable)
	}
}

func TestAnalyzeDestructuredParameters(t *testing.T) {
	tree, root := analyzeSource(t, "pattern.js", `function f({a, b: c, d = 1, ...rest}) { return a; }`)

	inner := tree.ScopeFor(nodeOfKind(root, "return_statement"))
	for _, name := range []string{"a", "c", "d", "rest"} {
		v := inner.Resolve(name)
		require.NotNil(t, v, name)
		assert.Equal(t, DefParameter, v.Defs[0].Kind)
	}
	assert.Nil(t, tree.Root.Resolve("a"), "parameters stay out of the program scope")
}

func TestAnalyzeImports(t *testing.T) {
	tree, _ := analyzeSource(t, "imports.js", `
import React, { useState as state } from 'react';
import * as ns from 'lib';
`)

	for _, name := range []string{"React", "state", "ns"} {
		v := tree.Root.Resolve(name)
		require.NotNil(t, v, name)
		assert.Equal(t, DefImport, v.Defs[0].Kind)
	}
	assert.Nil(t, tree.Root.Resolve("useState"), "aliased imports bind the alias only")
}

func TestAnalyzeBlockScoping(t *testing.T) {
	tree, root := analyzeSource(t, "block.js", `
function f() {
  if (x) {
    const inner = 1;
    use(inner);
  }
}
`)

	use := nodeOfKind(root, "call_expression")
	require.NotNil(t, use)
	assert.NotNil(t, tree.ScopeFor(use).Resolve("inner"))

	fnBody := nodeOfKind(root, "function_declaration")
	assert.Nil(t, tree.ScopeFor(fnBody).Resolve("inner"))
}

func TestMarkUsed(t *testing.T) {
	tree, root := analyzeSource(t, "used.js", `const a = 1;`)

	v := tree.Root.Resolve("a")
	require.NotNil(t, v)
	assert.False(t, v.Used())

	assert.True(t, tree.MarkUsed("a", root))
	assert.True(t, v.Used())
	assert.False(t, tree.MarkUsed("missing", root))
}

func TestAnalyzeTypeAnnotationsNotReferenced(t *testing.T) {
	tree, _ := analyzeSource(t, "typed.ts", `
const Props = 1;
function f(p: Props) { return p; }
`)

	v := tree.Root.Resolve("Props")
	require.NotNil(t, v)
	assert.Empty(t, v.References, "type positions are not value reads")
}
