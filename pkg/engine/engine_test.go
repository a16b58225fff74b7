package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/jsxray/jsxray/pkg/jsast"
	"github.com/jsxray/jsxray/pkg/parser"
	"github.com/jsxray/jsxray/pkg/pragma"
	"github.com/jsxray/jsxray/pkg/report"
)

// nopRule satisfies the rule contract without observing anything, so
// tests can drive the detection walk and inspect registry state.
type nopRule struct{}

func (nopRule) Name() string                    { return "nop" }
func (nopRule) Meta() Meta                      { return Meta{} }
func (nopRule) Create(*Context) *jsast.Visitors { return jsast.NewVisitors() }

func parseTree(t *testing.T, filename, source string) *ts.Node {
	t.Helper()
	pm := parser.NewManager(nil)
	t.Cleanup(func() { pm.Close() })

	tree, err := pm.ParseFile([]byte(source), filename)
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	return tree.RootNode()
}

func detectSource(t *testing.T, filename, source string) *Context {
	t.Helper()
	root := parseTree(t, filename, source)
	ctx := NewContext(root, []byte(source), filename, pragma.DefaultSettings(), nil, report.NewCollector())
	Detect(ctx, nopRule{})
	return ctx
}

// listOne asserts exactly one confident component and returns it.
func listOne(t *testing.T, reg *Registry) *Component {
	t.Helper()
	comps := reg.List()
	require.Len(t, comps, 1)
	for _, comp := range comps {
		return comp
	}
	return nil
}

// findKind returns the first node of the given kind in prefix order.
func findKind(node *ts.Node, kind string) *ts.Node {
	if node.Kind() == kind {
		return node
	}
	for i := uint(0); i < uint(node.NamedChildCount()); i++ {
		if found := findKind(node.NamedChild(i), kind); found != nil {
			return found
		}
	}
	return nil
}

func usedNames(comp *Component) []string {
	names := make([]string, 0, len(comp.UsedProps))
	for _, p := range comp.UsedProps {
		names = append(names, dotted(p))
	}
	return names
}

func dotted(p UsedProp) string {
	out := ""
	for i, n := range p.AllNames {
		if i > 0 {
			out += "."
		}
		out += n
	}
	return out
}
