package engine

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/jsxray/jsxray/pkg/jsast"
)

// defaultPropsTracker extracts statically declared default values:
// defaultProps assignments and class fields, the ES5 getDefaultProps
// factory method, and destructuring parameter defaults on function
// components. Dynamic shapes set the unresolved sentinel.
type defaultPropsTracker struct {
	ctx *Context
}

func newDefaultPropsTracker(ctx *Context) *defaultPropsTracker {
	return &defaultPropsTracker{ctx: ctx}
}

func (t *defaultPropsTracker) register(vis *jsast.Visitors) {
	vis.OnEnter("assignment_expression", t.visitAssignment)
	vis.OnEnter("field_definition", t.visitField)
	vis.OnEnter("public_field_definition", t.visitField)
	vis.OnEnter("pair", t.visitPair)
	for _, kind := range []string{
		"function_declaration", "function_expression", "function",
		"arrow_function",
	} {
		vis.OnEnter(kind, t.visitFunction)
	}
}

func (t *defaultPropsTracker) visitAssignment(node *ts.Node) {
	left := node.ChildByFieldName("left")
	if left == nil || left.Kind() != "member_expression" {
		return
	}
	if jsast.PropertyName(left.ChildByFieldName("property"), t.ctx.Source) != "defaultProps" {
		return
	}
	comp := t.ctx.RelatedComponent(left)
	if comp == nil {
		return
	}
	t.applyDefaults(comp.Node, node.ChildByFieldName("right"))
}

func (t *defaultPropsTracker) visitField(node *ts.Node) {
	if jsast.PropertyName(node.ChildByFieldName("property"), t.ctx.Source) != "defaultProps" {
		return
	}
	if !t.insideComponent(node) {
		return
	}
	t.applyDefaults(node, node.ChildByFieldName("value"))
}

// visitPair handles the ES5 factory's getDefaultProps method, whose
// return value carries the defaults.
func (t *defaultPropsTracker) visitPair(node *ts.Node) {
	parent := node.Parent()
	if parent == nil || parent.Kind() != "object" || t.ctx.Registry.Get(parent) == nil {
		return
	}
	if jsast.PropertyName(node.ChildByFieldName("key"), t.ctx.Source) != "getDefaultProps" {
		return
	}
	fn := jsast.Unwrap(node.ChildByFieldName("value"))
	if !jsast.IsFunctionLike(fn) {
		return
	}
	returns := jsast.ReturnedExpressions(fn)
	if len(returns) != 1 {
		t.ctx.Registry.Set(node, Facts{DefaultsUnresolved: Bool(true)})
		return
	}
	t.applyDefaults(node, returns[0])
}

// visitFunction records destructuring parameter defaults on function
// components: ({a = 1}) => ... declares a default for a.
func (t *defaultPropsTracker) visitFunction(node *ts.Node) {
	if t.ctx.Registry.Get(node) == nil && !t.wrapperArgument(node) {
		return
	}
	params := jsast.FunctionParameters(node)
	if len(params) == 0 || params[0].Kind() != "object_pattern" {
		return
	}
	defaults := make(map[string]DefaultProp)
	pattern := params[0]
	for i := uint(0); i < uint(pattern.NamedChildCount()); i++ {
		child := pattern.NamedChild(i)
		switch child.Kind() {
		case "object_assignment_pattern":
			left := child.ChildByFieldName("left")
			right := child.ChildByFieldName("right")
			if left == nil || right == nil {
				continue
			}
			name := jsast.PropertyName(left, t.ctx.Source)
			if name == "" {
				continue
			}
			defaults[name] = DefaultProp{Source: right.Utf8Text(t.ctx.Source), Node: child}
		case "pair_pattern":
			value := child.ChildByFieldName("value")
			if value == nil || value.Kind() != "assignment_pattern" {
				continue
			}
			name := jsast.PropertyName(child.ChildByFieldName("key"), t.ctx.Source)
			right := value.ChildByFieldName("right")
			if name == "" || right == nil {
				continue
			}
			defaults[name] = DefaultProp{Source: right.Utf8Text(t.ctx.Source), Node: child}
		}
	}
	if len(defaults) > 0 {
		t.ctx.Registry.Set(node, Facts{DefaultProps: defaults})
	}
}

func (t *defaultPropsTracker) wrapperArgument(fn *ts.Node) bool {
	for n := fn.Parent(); n != nil; n = n.Parent() {
		switch n.Kind() {
		case "parenthesized_expression", "as_expression",
			"satisfies_expression", "non_null_expression", "arguments":
			continue
		case "call_expression":
			return t.ctx.Registry.Get(n) != nil
		}
		return false
	}
	return false
}

func (t *defaultPropsTracker) insideComponent(node *ts.Node) bool {
	for n := node; n != nil; n = n.Parent() {
		if t.ctx.Registry.Get(n) != nil {
			return true
		}
	}
	return false
}

// applyDefaults extracts a defaults object literal into per-prop
// source snippets.
func (t *defaultPropsTracker) applyDefaults(at *ts.Node, value *ts.Node) {
	value = jsast.Unwrap(value)
	if value == nil || value.Kind() != "object" {
		t.ctx.Registry.Set(at, Facts{DefaultsUnresolved: Bool(true)})
		return
	}
	defaults := make(map[string]DefaultProp)
	unresolved := false
	for i := uint(0); i < uint(value.NamedChildCount()); i++ {
		child := value.NamedChild(i)
		switch child.Kind() {
		case "spread_element":
			unresolved = true
		case "pair":
			key := child.ChildByFieldName("key")
			if key == nil || key.Kind() == "computed_property_name" {
				unresolved = true
				continue
			}
			name := jsast.PropertyName(key, t.ctx.Source)
			if name == "" {
				unresolved = true
				continue
			}
			v := child.ChildByFieldName("value")
			src := ""
			if v != nil {
				src = v.Utf8Text(t.ctx.Source)
			}
			defaults[name] = DefaultProp{Source: src, Node: child}
		case "shorthand_property_identifier":
			name := child.Utf8Text(t.ctx.Source)
			defaults[name] = DefaultProp{Source: name, Node: child}
		case "comment":
		default:
			unresolved = true
		}
	}
	facts := Facts{DefaultProps: defaults}
	if unresolved {
		facts.DefaultsUnresolved = Bool(true)
	}
	t.ctx.Registry.Set(at, facts)
}
