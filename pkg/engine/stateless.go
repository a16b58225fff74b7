package engine

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/jsxray/jsxray/pkg/jsast"
)

// classifyStateless applies the stateless-component test to a function
// or arrow node. First matching positional rule decides. The returned
// confidence is confirmed for JSX-returning shapes and tentative for
// only-null returners; ok is false when the shape is not a component
// candidate at all (the silent-skip path).
func (d *detector) classifyStateless(fn *ts.Node) (Confidence, bool) {
	src := d.ctx.Source
	returnsJSX := jsast.ReturnsJSX(fn)
	returnsNull := jsast.ReturnsOnlyNull(fn, src)

	verdict := func(ok bool) (Confidence, bool) {
		if !ok {
			return ConfidenceRejected, false
		}
		if returnsJSX {
			return ConfidenceConfirmed, true
		}
		if returnsNull {
			return ConfidenceTentative, true
		}
		return ConfidenceRejected, false
	}

	// Named function declarations judge their own name: unnamed or
	// capitalized passes, lowercase never classifies.
	if jsast.IsFunctionDeclaration(fn) {
		name := ""
		if n := fn.ChildByFieldName("name"); n != nil {
			name = n.Utf8Text(src)
		}
		if name != "" && !jsast.IsUppercaseName(name) {
			return ConfidenceRejected, false
		}
		return verdict(true)
	}

	parent := effectiveParent(fn)
	if parent == nil {
		return ConfidenceRejected, false
	}

	switch parent.Kind() {
	case "variable_declarator":
		name := parent.ChildByFieldName("name")
		if name == nil || name.Kind() != "identifier" {
			return ConfidenceRejected, false
		}
		return verdict(jsast.IsUppercaseName(name.Utf8Text(src)))

	case "assignment_expression":
		left := parent.ChildByFieldName("left")
		if left == nil {
			return ConfidenceRejected, false
		}
		// obj[x.y] = props => ... : acceptable only when it returns
		// JSX or only null; no name to judge.
		if left.Kind() == "subscript_expression" {
			return verdict(true)
		}
		name := ""
		if left.Kind() == "identifier" {
			name = left.Utf8Text(src)
		} else if left.Kind() == "member_expression" {
			name = jsast.PropertyName(left.ChildByFieldName("property"), src)
		}
		if name == "" {
			return ConfidenceRejected, false
		}
		return verdict(jsast.IsUppercaseName(name))

	case "pair":
		// { Foo: () => <jsx/> } needs a capitalized, non-computed key
		// and an anonymous function value; a lowercase key is the
		// render-prop pattern and never classifies.
		key := parent.ChildByFieldName("key")
		if key == nil || key.Kind() == "computed_property_name" {
			return ConfidenceRejected, false
		}
		if !jsast.IsUppercaseName(jsast.PropertyName(key, src)) {
			return ConfidenceRejected, false
		}
		if n := fn.ChildByFieldName("name"); n != nil {
			return ConfidenceRejected, false
		}
		return verdict(true)

	case "field_definition", "public_field_definition":
		prop := parent.ChildByFieldName("property")
		return verdict(jsast.IsUppercaseName(jsast.PropertyName(prop, src)))

	case "export_statement":
		// export default () => <jsx/>
		name := ""
		if n := fn.ChildByFieldName("name"); n != nil {
			name = n.Utf8Text(src)
		}
		return verdict(name == "" || jsast.IsUppercaseName(name))

	case "return_statement":
		// A closure returned by another function must itself produce
		// JSX; the uppercase check propagates to the outer binding.
		if !returnsJSX {
			return ConfidenceRejected, false
		}
		return verdict(outerBindingAcceptable(fn, src))

	case "arrow_function":
		// fn is the expression body of an enclosing arrow.
		body := parent.ChildByFieldName("body")
		if body == nil || !jsast.Covers(body, fn) {
			return ConfidenceRejected, false
		}
		if !returnsJSX {
			return ConfidenceRejected, false
		}
		return verdict(outerBindingAcceptable(fn, src))
	}

	// Any other position: no structural claim to being a component.
	return ConfidenceRejected, false
}

// effectiveParent returns the structurally relevant parent of fn,
// skipping parentheses, TypeScript casts, and trailing comma-sequence
// wrappers.
func effectiveParent(fn *ts.Node) *ts.Node {
	n := fn.Parent()
	for n != nil {
		switch n.Kind() {
		case "parenthesized_expression", "as_expression",
			"satisfies_expression", "non_null_expression",
			"sequence_expression":
			n = n.Parent()
		default:
			return n
		}
	}
	return nil
}

// outerBindingAcceptable propagates the uppercase-name requirement to
// the binding of the nearest enclosing function: unnamed outer bindings
// pass, lowercase ones fail.
func outerBindingAcceptable(fn *ts.Node, source []byte) bool {
	for n := fn.Parent(); n != nil; n = n.Parent() {
		if !jsast.IsFunctionLike(n) {
			continue
		}
		name := functionName(n, source)
		return name == "" || jsast.IsUppercaseName(name)
	}
	return true
}
