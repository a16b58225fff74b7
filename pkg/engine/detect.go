package engine

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/jsxray/jsxray/pkg/jsast"
)

// detector holds the classification observers. Classification answers,
// per syntactic shape, "is this node the start of a component
// definition" and writes the answer into the registry.
type detector struct {
	ctx *Context
}

func (d *detector) register(vis *jsast.Visitors) {
	vis.OnEnter("class_declaration", d.visitClass)
	vis.OnEnter("class", d.visitClass)
	vis.OnEnter("object", d.visitObject)
	vis.OnEnter("call_expression", d.visitCall)
	for _, kind := range []string{
		"function_declaration", "generator_function_declaration",
		"function_expression", "function", "generator_function",
		"arrow_function",
	} {
		vis.OnEnter(kind, d.visitFunction)
	}
	vis.OnEnter("this", d.visitThis)
}

// visitClass confirms ES6 class components: the heritage clause must
// name the recognized component base.
func (d *detector) visitClass(node *ts.Node) {
	if !d.isES6Component(node) {
		return
	}
	comp := d.ctx.Registry.Add(node, ConfidenceConfirmed)
	if name := node.ChildByFieldName("name"); name != nil {
		comp.Name = d.ctx.Text(name)
	}
}

// isES6Component checks the class heritage for Component/PureComponent,
// bare or qualified by the pragma.
func (d *detector) isES6Component(class *ts.Node) bool {
	heritage := jsast.FindChildByKind(class, "class_heritage")
	if heritage == nil {
		return false
	}
	text := heritage.Utf8Text(d.ctx.Source)
	// Strip the extends keyword and any type arguments before matching.
	text = strings.TrimSpace(strings.TrimPrefix(text, "extends"))
	if i := strings.IndexByte(text, '<'); i >= 0 {
		text = text[:i]
	}
	for _, name := range strings.Fields(text) {
		if d.ctx.Pragma.IsComponentBase(strings.TrimSuffix(name, ",")) {
			return true
		}
	}
	return false
}

// visitObject confirms ES5 factory components: an object expression
// passed directly to the createClass factory.
func (d *detector) visitObject(node *ts.Node) {
	parent := node.Parent()
	for parent != nil && parent.Kind() == "arguments" {
		parent = parent.Parent()
	}
	if !jsast.IsCallExpression(parent) {
		return
	}
	callee := jsast.CalleeText(parent, d.ctx.Source)
	if !d.ctx.Pragma.IsCreateClassCallee(callee) {
		return
	}
	comp := d.ctx.Registry.Add(node, ConfidenceConfirmed)
	if comp.Name == "" {
		comp.Name = bindingName(parent, d.ctx.Source)
	}
}

// visitCall confirms wrapper components: a recognized wrapper call
// whose first argument is function-like. A wrapper call that is itself
// an argument of another wrapper call stays tentative so that exactly
// one component is registered for memo(forwardRef(fn)).
func (d *detector) visitCall(node *ts.Node) {
	callee := jsast.CalleeText(node, d.ctx.Source)
	if !d.ctx.Pragma.IsWrapperCallee(callee) {
		return
	}
	if !d.wrapperHasFunction(node) {
		return
	}
	confidence := ConfidenceConfirmed
	if d.insideWrapperCall(node) {
		confidence = ConfidenceTentative
	}
	comp := d.ctx.Registry.Add(node, confidence)
	if comp.Name == "" {
		comp.Name = bindingName(node, d.ctx.Source)
	}
}

// wrapperHasFunction reports whether a wrapper call wraps a function
// in its first argument: a direct function, or a nested wrapper call
// that does. memo(forwardRef(fn)) confirms on the outer call. Later
// arguments never qualify; memo's comparator is not a component.
func (d *detector) wrapperHasFunction(call *ts.Node) bool {
	args := jsast.CallArguments(call)
	if len(args) == 0 {
		return false
	}
	v := jsast.Unwrap(args[0])
	if jsast.IsFunctionLike(v) {
		return true
	}
	return jsast.IsCallExpression(v) &&
		d.ctx.Pragma.IsWrapperCallee(jsast.CalleeText(v, d.ctx.Source)) &&
		d.wrapperHasFunction(v)
}

// insideWrapperCall reports whether node sits (through parens and TS
// casts) in the argument list of a recognized wrapper call.
func (d *detector) insideWrapperCall(node *ts.Node) bool {
	n := node.Parent()
	for n != nil {
		switch n.Kind() {
		case "parenthesized_expression", "as_expression",
			"satisfies_expression", "non_null_expression", "arguments":
			n = n.Parent()
			continue
		case "call_expression":
			return d.ctx.Pragma.IsWrapperCallee(jsast.CalleeText(n, d.ctx.Source))
		}
		return false
	}
	return false
}

// visitFunction classifies plain functions and arrows through the
// stateless-component test. Async generators are rejected outright.
// Every other function becomes at least a tentative record so facts
// observed inside it can later be staged to a confident ancestor by
// the list merge.
func (d *detector) visitFunction(node *ts.Node) {
	if jsast.IsAsync(node) && jsast.IsGenerator(node) {
		d.ctx.Registry.Add(node, ConfidenceRejected)
		return
	}

	confidence, ok := d.classifyStateless(node)
	// A function handed to a wrapper call belongs to the wrapper node;
	// its own record stays tentative.
	if !ok || d.insideWrapperCall(node) {
		d.ctx.Registry.Add(node, ConfidenceTentative)
		return
	}
	comp := d.ctx.Registry.Add(node, confidence)
	comp.candidate = true
	if comp.Name == "" {
		comp.Name = functionName(node, d.ctx.Source)
	}
}

// visitThis rejects stateless components that reference this: when a
// property access on this sits inside a function classified as a
// stateless component, that function's confidence is forced to 0.
func (d *detector) visitThis(node *ts.Node) {
	parent := node.Parent()
	if parent == nil || !jsast.IsMemberExpression(parent) {
		return
	}
	for n := parent; n != nil; n = n.Parent() {
		kind := n.Kind()
		if kind == "method_definition" || kind == "class_body" {
			// this belongs to a class instance.
			return
		}
		if !jsast.IsFunctionLike(n) {
			continue
		}
		if comp := d.ctx.Registry.Get(n); comp != nil &&
			(comp.candidate || comp.Confidence >= ConfidenceConfirmed) {
			demoted := d.ctx.Registry.Add(n, ConfidenceRejected)
			demoted.ThisUsages = append(demoted.ThisUsages, node)
			return
		}
		// Arrows don't bind this; keep climbing through them.
		if !jsast.IsArrowFunction(n) {
			return
		}
	}
}

// functionName returns a function's own name or its binding name.
func functionName(fn *ts.Node, source []byte) string {
	if name := fn.ChildByFieldName("name"); name != nil {
		return name.Utf8Text(source)
	}
	return bindingName(fn, source)
}

// bindingName walks outward (through parens, TS casts and wrapper call
// layers) to the construct node is bound to and returns that name:
// variable declarator, assignment target, object property key, or
// class field.
func bindingName(node *ts.Node, source []byte) string {
	n := node.Parent()
	for n != nil {
		switch n.Kind() {
		case "parenthesized_expression", "as_expression",
			"satisfies_expression", "non_null_expression",
			"arguments", "call_expression":
			n = n.Parent()
			continue
		case "variable_declarator":
			if name := n.ChildByFieldName("name"); name != nil && name.Kind() == "identifier" {
				return name.Utf8Text(source)
			}
			return ""
		case "assignment_expression":
			left := n.ChildByFieldName("left")
			if left == nil {
				return ""
			}
			if left.Kind() == "identifier" {
				return left.Utf8Text(source)
			}
			if left.Kind() == "member_expression" {
				return jsast.PropertyName(left.ChildByFieldName("property"), source)
			}
			return ""
		case "pair":
			return jsast.PropertyName(n.ChildByFieldName("key"), source)
		case "field_definition", "public_field_definition":
			return jsast.PropertyName(n.ChildByFieldName("property"), source)
		case "export_statement":
			return ""
		}
		return ""
	}
	return ""
}
