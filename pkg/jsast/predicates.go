// Package jsast provides stateless predicates and extraction helpers over
// tree-sitter JavaScript/TypeScript syntax nodes, plus the traversal
// driver used to run merged visitor sets in a single depth-first walk.
package jsast

import (
	"unicode"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// IsJSXKind reports whether kind names a JSX-producing node.
func IsJSXKind(kind string) bool {
	return kind == "jsx_element" || kind == "jsx_self_closing_element" || kind == "jsx_fragment"
}

// IsFunctionLike reports whether node is any function-shaped construct:
// declarations, expressions, generators, arrows, and class methods.
func IsFunctionLike(node *ts.Node) bool {
	if node == nil {
		return false
	}
	switch node.Kind() {
	case "function_declaration", "generator_function_declaration",
		"function_expression", "function", "generator_function",
		"arrow_function", "method_definition":
		return true
	}
	return false
}

// IsArrowFunction reports whether node is an arrow function expression.
func IsArrowFunction(node *ts.Node) bool {
	return node != nil && node.Kind() == "arrow_function"
}

// IsFunctionDeclaration reports whether node is a (generator) function
// declaration.
func IsFunctionDeclaration(node *ts.Node) bool {
	if node == nil {
		return false
	}
	kind := node.Kind()
	return kind == "function_declaration" || kind == "generator_function_declaration"
}

// IsGenerator reports whether node is a generator function of any shape.
func IsGenerator(node *ts.Node) bool {
	if node == nil {
		return false
	}
	kind := node.Kind()
	return kind == "generator_function" || kind == "generator_function_declaration"
}

// IsAsync reports whether a function-like node carries the async keyword.
// The keyword is an anonymous leading token, so all children are scanned.
func IsAsync(node *ts.Node) bool {
	if node == nil {
		return false
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Kind() == "async" {
			return true
		}
		// async always precedes the parameter list.
		if child.Kind() == "formal_parameters" {
			break
		}
	}
	return false
}

// IsCallExpression reports whether node is a call expression.
func IsCallExpression(node *ts.Node) bool {
	return node != nil && node.Kind() == "call_expression"
}

// IsMemberExpression reports whether node accesses a property, either by
// dot (member_expression) or bracket (subscript_expression).
func IsMemberExpression(node *ts.Node) bool {
	if node == nil {
		return false
	}
	kind := node.Kind()
	return kind == "member_expression" || kind == "subscript_expression"
}

// IsComputedMember reports whether node is a bracket property access.
func IsComputedMember(node *ts.Node) bool {
	return node != nil && node.Kind() == "subscript_expression"
}

// IsParenthesized reports whether node is wrapped in parentheses.
func IsParenthesized(node *ts.Node) bool {
	return node != nil && node.Parent() != nil && node.Parent().Kind() == "parenthesized_expression"
}

// UnwrapParens strips any layers of parenthesized_expression around node.
func UnwrapParens(node *ts.Node) *ts.Node {
	for node != nil && node.Kind() == "parenthesized_expression" {
		node = node.NamedChild(0)
	}
	return node
}

// UnwrapTSExpression strips TypeScript-only expression wrappers
// (as-casts, satisfies, non-null assertions) to reach the value node.
func UnwrapTSExpression(node *ts.Node) *ts.Node {
	for node != nil {
		switch node.Kind() {
		case "as_expression", "satisfies_expression", "non_null_expression":
			node = node.NamedChild(0)
		default:
			return node
		}
	}
	return node
}

// Unwrap strips parens, TS wrappers, and trailing comma-sequences,
// returning the effective value expression. A sequence expression
// evaluates to its final operand.
func Unwrap(node *ts.Node) *ts.Node {
	for node != nil {
		switch node.Kind() {
		case "parenthesized_expression":
			node = node.NamedChild(0)
		case "as_expression", "satisfies_expression", "non_null_expression":
			node = node.NamedChild(0)
		case "sequence_expression":
			count := uint(node.NamedChildCount())
			if count == 0 {
				return node
			}
			node = node.NamedChild(count - 1)
		default:
			return node
		}
	}
	return node
}

// CalleeText returns the raw callee source of a call_expression.
// Handles "forwardRef(...)" -> "forwardRef" and
// "React.forwardRef(...)" -> "React.forwardRef".
func CalleeText(node *ts.Node, source []byte) string {
	if node == nil || node.Kind() != "call_expression" {
		return ""
	}
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	return fn.Utf8Text(source)
}

// CallArguments returns the named argument nodes of a call_expression.
func CallArguments(node *ts.Node) []*ts.Node {
	if node == nil || node.Kind() != "call_expression" {
		return nil
	}
	args := node.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	out := make([]*ts.Node, 0, uint(args.NamedChildCount()))
	for i := uint(0); i < uint(args.NamedChildCount()); i++ {
		out = append(out, args.NamedChild(i))
	}
	return out
}

// FirstFunctionArgument returns the first call argument that is
// function-like after unwrapping parens and TS casts, or nil.
func FirstFunctionArgument(call *ts.Node) *ts.Node {
	for _, arg := range CallArguments(call) {
		v := Unwrap(arg)
		if IsFunctionLike(v) {
			return v
		}
	}
	return nil
}

// FunctionParameters returns a function's parameter pattern nodes in
// order, unwrapping TypeScript required/optional parameter wrappers.
// A bare-identifier arrow parameter yields that identifier.
func FunctionParameters(fn *ts.Node) []*ts.Node {
	if fn == nil {
		return nil
	}
	params := fn.ChildByFieldName("parameters")
	if params == nil {
		// Arrows may take a single unparenthesized identifier.
		if p := fn.ChildByFieldName("parameter"); p != nil {
			return []*ts.Node{p}
		}
		return nil
	}
	out := make([]*ts.Node, 0, uint(params.NamedChildCount()))
	for i := uint(0); i < uint(params.NamedChildCount()); i++ {
		p := params.NamedChild(i)
		switch p.Kind() {
		case "required_parameter", "optional_parameter":
			if pat := p.ChildByFieldName("pattern"); pat != nil {
				p = pat
			}
		}
		out = append(out, p)
	}
	return out
}

// PropertyName returns the text of a property key node (pair keys,
// member properties, shorthand identifiers). Computed keys yield "".
func PropertyName(node *ts.Node, source []byte) string {
	if node == nil {
		return ""
	}
	switch node.Kind() {
	case "property_identifier", "identifier", "shorthand_property_identifier",
		"shorthand_property_identifier_pattern", "private_property_identifier":
		return node.Utf8Text(source)
	case "string":
		// Strip the quote tokens.
		if uint(node.NamedChildCount()) > 0 {
			return node.NamedChild(0).Utf8Text(source)
		}
		return ""
	case "number":
		return node.Utf8Text(source)
	}
	return ""
}

// IsUppercaseName reports whether a name starts with an uppercase letter.
// Component names are conventionally capitalized; lowercase bindings are
// never treated as components.
func IsUppercaseName(name string) bool {
	if name == "" {
		return false
	}
	return unicode.IsUpper([]rune(name)[0])
}

// ContainsJSX recursively checks if any descendant is a JSX element.
func ContainsJSX(node *ts.Node) bool {
	if node == nil {
		return false
	}
	if IsJSXKind(node.Kind()) {
		return true
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		if ContainsJSX(node.Child(i)) {
			return true
		}
	}
	return false
}

// containsJSXShallow is ContainsJSX without descending into nested
// function-likes, so a closure returning a closure does not count as
// the outer function returning JSX.
func containsJSXShallow(node *ts.Node) bool {
	if node == nil {
		return false
	}
	if IsJSXKind(node.Kind()) {
		return true
	}
	if IsFunctionLike(node) {
		return false
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		if containsJSXShallow(node.Child(i)) {
			return true
		}
	}
	return false
}

// ReturnedExpressions collects the expressions a function-like node can
// return: the expression body of an arrow, or the argument of every
// return statement in the body, without descending into nested functions.
func ReturnedExpressions(fn *ts.Node) []*ts.Node {
	if fn == nil {
		return nil
	}
	body := fn.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	if body.Kind() != "statement_block" {
		// Arrow expression body.
		return []*ts.Node{Unwrap(body)}
	}
	var out []*ts.Node
	collectReturns(body, &out)
	return out
}

func collectReturns(node *ts.Node, out *[]*ts.Node) {
	for i := uint(0); i < uint(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if IsFunctionLike(child) {
			continue
		}
		if child.Kind() == "return_statement" {
			if uint(child.NamedChildCount()) > 0 {
				*out = append(*out, Unwrap(child.NamedChild(0)))
			} else {
				*out = append(*out, nil)
			}
			continue
		}
		collectReturns(child, out)
	}
}

// ReturnsJSX reports whether any return path of fn yields JSX.
func ReturnsJSX(fn *ts.Node) bool {
	for _, expr := range ReturnedExpressions(fn) {
		if expr == nil {
			continue
		}
		if containsJSXShallow(expr) {
			return true
		}
	}
	return false
}

// ReturnsOnlyNull reports whether fn has at least one return and every
// return yields the literal null (or is bare). Such functions are
// component candidates whose classification stays tentative.
func ReturnsOnlyNull(fn *ts.Node, source []byte) bool {
	exprs := ReturnedExpressions(fn)
	if len(exprs) == 0 {
		return false
	}
	sawNull := false
	for _, expr := range exprs {
		if expr == nil {
			continue
		}
		if expr.Kind() != "null" && expr.Utf8Text(source) != "null" {
			return false
		}
		sawNull = true
	}
	return sawNull
}

// MemberSegment is one step of a decomposed member-expression chain.
type MemberSegment struct {
	Name     string
	Computed bool
	Node     *ts.Node
}

// MemberPath decomposes a member-expression chain into its root object
// node and the ordered property segments, root-first. For
// `a.b[c].d` it returns the `a` identifier node and segments b, (computed), d.
func MemberPath(node *ts.Node, source []byte) (*ts.Node, []MemberSegment) {
	var segments []MemberSegment
	for node != nil && IsMemberExpression(node) {
		var seg MemberSegment
		if node.Kind() == "subscript_expression" {
			seg = MemberSegment{Computed: true, Node: node}
		} else {
			prop := node.ChildByFieldName("property")
			seg = MemberSegment{Name: PropertyName(prop, source), Node: node}
		}
		segments = append([]MemberSegment{seg}, segments...)
		node = UnwrapTSExpression(node.ChildByFieldName("object"))
	}
	return node, segments
}

// OutermostMember climbs to the top of the member-expression chain that
// node participates in as an object. Returns node itself when its parent
// does not extend the chain.
func OutermostMember(node *ts.Node) *ts.Node {
	for {
		parent := node.Parent()
		if parent == nil || !IsMemberExpression(parent) {
			return node
		}
		obj := parent.ChildByFieldName("object")
		if obj == nil || obj.Id() != node.Id() {
			return node
		}
		node = parent
	}
}

// IsDecorator reports whether node is a decorator.
func IsDecorator(node *ts.Node) bool {
	return node != nil && node.Kind() == "decorator"
}

// IsTypeAnnotationKind reports whether kind belongs to TypeScript's type
// syntax rather than runtime code.
func IsTypeAnnotationKind(kind string) bool {
	switch kind {
	case "type_annotation", "type_arguments", "type_parameters",
		"interface_declaration", "type_alias_declaration",
		"interface_body", "object_type", "property_signature",
		"predefined_type", "type_identifier", "generic_type",
		"union_type", "intersection_type":
		return true
	}
	return false
}

// FindChildByKind returns the first direct child with the given kind.
func FindChildByKind(node *ts.Node, kind string) *ts.Node {
	if node == nil {
		return nil
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		child := node.Child(i)
		if child.Kind() == kind {
			return child
		}
	}
	return nil
}

// nativeObjectProps are Object.prototype members that must never be
// recorded as prop usages when accessed through a props object.
var nativeObjectProps = map[string]bool{
	"constructor":          true,
	"hasOwnProperty":       true,
	"isPrototypeOf":        true,
	"propertyIsEnumerable": true,
	"toLocaleString":       true,
	"toString":             true,
	"valueOf":              true,
}

// IsNativeObjectProp reports whether name is inherited from
// Object.prototype.
func IsNativeObjectProp(name string) bool {
	return nativeObjectProps[name]
}
