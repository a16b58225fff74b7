package engine

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/jsxray/jsxray/pkg/jsast"
	"github.com/jsxray/jsxray/pkg/scope"
)

// declaredPropsTracker extracts statically declared prop shapes:
// propTypes assignments and class fields, ES5 factory propTypes keys,
// TypeScript parameter types, plus the displayName and
// shouldComponentUpdate presence flags. Shapes it cannot resolve mark
// the component's declarations as unresolved so consumer rules
// suppress their checks instead of reporting against an empty set.
type declaredPropsTracker struct {
	ctx *Context
	// types collects interface and type-alias bodies by name for the
	// program-exit parameter-type pass.
	types map[string]*ts.Node
	// annotated are function components whose first parameter carries
	// a type annotation, resolved once all type declarations are seen.
	annotated []*ts.Node
}

func newDeclaredPropsTracker(ctx *Context) *declaredPropsTracker {
	return &declaredPropsTracker{ctx: ctx, types: make(map[string]*ts.Node)}
}

func (t *declaredPropsTracker) register(vis *jsast.Visitors) {
	vis.OnEnter("assignment_expression", t.visitAssignment)
	vis.OnEnter("field_definition", t.visitField)
	vis.OnEnter("public_field_definition", t.visitField)
	vis.OnEnter("pair", t.visitPair)
	vis.OnEnter("method_definition", t.visitMethod)
	vis.OnEnter("interface_declaration", t.collectInterface)
	vis.OnEnter("type_alias_declaration", t.collectAlias)
	for _, kind := range []string{
		"function_declaration", "function_expression", "function",
		"arrow_function",
	} {
		vis.OnEnter(kind, t.visitFunction)
	}
	vis.OnExit("program", t.finalize)
}

// visitAssignment attributes Foo.propTypes and Foo.displayName writes
// back to the component Foo resolves to.
func (t *declaredPropsTracker) visitAssignment(node *ts.Node) {
	left := node.ChildByFieldName("left")
	if left == nil || left.Kind() != "member_expression" {
		return
	}
	attr := jsast.PropertyName(left.ChildByFieldName("property"), t.ctx.Source)
	if attr != "propTypes" && attr != "displayName" {
		return
	}
	comp := t.ctx.RelatedComponent(left)
	if comp == nil {
		return
	}
	if attr == "displayName" {
		t.ctx.Registry.Set(comp.Node, Facts{HasDisplayName: Bool(true)})
		return
	}
	t.applyDeclared(comp.Node, node.ChildByFieldName("right"))
}

// visitField handles static class fields: propTypes and displayName.
func (t *declaredPropsTracker) visitField(node *ts.Node) {
	if t.nearestComponentNode(node) == nil {
		return
	}
	switch jsast.PropertyName(node.ChildByFieldName("property"), t.ctx.Source) {
	case "propTypes":
		t.applyDeclared(node, node.ChildByFieldName("value"))
	case "displayName":
		t.ctx.Registry.Set(node, Facts{HasDisplayName: Bool(true)})
	}
}

// visitPair handles the ES5 factory object keys.
func (t *declaredPropsTracker) visitPair(node *ts.Node) {
	parent := node.Parent()
	if parent == nil || parent.Kind() != "object" || t.ctx.Registry.Get(parent) == nil {
		return
	}
	switch jsast.PropertyName(node.ChildByFieldName("key"), t.ctx.Source) {
	case "propTypes":
		t.applyDeclared(node, node.ChildByFieldName("value"))
	case "displayName":
		t.ctx.Registry.Set(node, Facts{HasDisplayName: Bool(true)})
	}
}

// visitMethod flags shouldComponentUpdate implementations.
func (t *declaredPropsTracker) visitMethod(node *ts.Node) {
	if jsast.PropertyName(node.ChildByFieldName("name"), t.ctx.Source) != "shouldComponentUpdate" {
		return
	}
	if t.nearestComponentNode(node) == nil {
		return
	}
	t.ctx.Registry.Set(node, Facts{HasSCU: Bool(true)})
}

func (t *declaredPropsTracker) nearestComponentNode(node *ts.Node) *Component {
	for n := node; n != nil; n = n.Parent() {
		if c := t.ctx.Registry.Get(n); c != nil {
			return c
		}
	}
	return nil
}

func (t *declaredPropsTracker) collectInterface(node *ts.Node) {
	name := node.ChildByFieldName("name")
	body := node.ChildByFieldName("body")
	if name != nil && body != nil {
		t.types[name.Utf8Text(t.ctx.Source)] = body
	}
}

func (t *declaredPropsTracker) collectAlias(node *ts.Node) {
	name := node.ChildByFieldName("name")
	value := node.ChildByFieldName("value")
	if name != nil && value != nil && value.Kind() == "object_type" {
		t.types[name.Utf8Text(t.ctx.Source)] = value
	}
}

// visitFunction queues functions whose first parameter is annotated;
// the annotation is resolved at program exit so that type declarations
// appearing later in the file still bind.
func (t *declaredPropsTracker) visitFunction(node *ts.Node) {
	if firstParamType(node) != nil {
		t.annotated = append(t.annotated, node)
	}
}

func (t *declaredPropsTracker) finalize(*ts.Node) {
	for _, fn := range t.annotated {
		owner := fn
		if t.ctx.Registry.Get(fn) == nil {
			if !t.isRegisteredWrapperArg(fn) {
				continue
			}
		}
		typeNode := firstParamType(fn)
		var body *ts.Node
		switch typeNode.Kind() {
		case "type_identifier":
			body = t.types[typeNode.Utf8Text(t.ctx.Source)]
		case "object_type":
			body = typeNode
		}
		if body == nil {
			continue
		}
		declared := t.typeBodyProps(body, "")
		if len(declared) > 0 {
			t.ctx.Registry.Set(owner, Facts{DeclaredProps: declared})
		}
	}
}

func (t *declaredPropsTracker) isRegisteredWrapperArg(fn *ts.Node) bool {
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

// firstParamType returns the type node annotating a function's first
// parameter, or nil.
func firstParamType(fn *ts.Node) *ts.Node {
	params := fn.ChildByFieldName("parameters")
	if params == nil || uint(params.NamedChildCount()) == 0 {
		return nil
	}
	first := params.NamedChild(0)
	switch first.Kind() {
	case "required_parameter", "optional_parameter":
	default:
		return nil
	}
	annotation := first.ChildByFieldName("type")
	if annotation == nil {
		return nil
	}
	// type_annotation wraps the actual type node after the colon.
	if uint(annotation.NamedChildCount()) == 0 {
		return nil
	}
	return annotation.NamedChild(0)
}

// typeBodyProps extracts declared props from an interface body or
// object type: one entry per property signature, required unless the
// signature is marked optional.
func (t *declaredPropsTracker) typeBodyProps(body *ts.Node, prefix string) map[string]DeclaredProp {
	out := make(map[string]DeclaredProp)
	for i := uint(0); i < uint(body.NamedChildCount()); i++ {
		sig := body.NamedChild(i)
		if sig.Kind() != "property_signature" {
			continue
		}
		name := jsast.PropertyName(sig.ChildByFieldName("name"), t.ctx.Source)
		if name == "" {
			continue
		}
		full := name
		if prefix != "" {
			full = prefix + "." + name
		}
		out[full] = DeclaredProp{
			FullName:   full,
			Name:       name,
			IsRequired: !hasOptionalMarker(sig),
			Node:       sig,
		}
		if nested := nestedObjectType(sig); nested != nil {
			for k, v := range t.typeBodyProps(nested, full) {
				out[k] = v
			}
		}
	}
	return out
}

func hasOptionalMarker(sig *ts.Node) bool {
	for i := uint(0); i < uint(sig.ChildCount()); i++ {
		if sig.Child(i).Kind() == "?" {
			return true
		}
	}
	return false
}

func nestedObjectType(sig *ts.Node) *ts.Node {
	annotation := sig.ChildByFieldName("type")
	if annotation == nil || uint(annotation.NamedChildCount()) == 0 {
		return nil
	}
	inner := annotation.NamedChild(0)
	if inner.Kind() == "object_type" {
		return inner
	}
	return nil
}

// applyDeclared extracts a propTypes object expression and stores the
// result, falling back to the unresolved sentinel for shapes that are
// not statically known.
func (t *declaredPropsTracker) applyDeclared(at *ts.Node, value *ts.Node) {
	declared, unresolved := t.extractDeclared(value)
	facts := Facts{DeclaredProps: declared}
	if unresolved {
		facts.DeclaredUnresolved = Bool(true)
	}
	t.ctx.Registry.Set(at, facts)
}

// extractDeclared reads a propTypes object literal. Spreads, computed
// keys, and initializers that do not resolve to an object literal all
// report unresolved.
func (t *declaredPropsTracker) extractDeclared(value *ts.Node) (map[string]DeclaredProp, bool) {
	value = jsast.Unwrap(value)
	if value == nil {
		return nil, true
	}
	if value.Kind() == "identifier" {
		value = t.resolveObjectBinding(value)
		if value == nil {
			return nil, true
		}
	}
	if value.Kind() != "object" {
		return nil, true
	}
	return t.objectLiteralProps(value, "")
}

// resolveObjectBinding follows `Foo.propTypes = shared` to the object
// literal `shared` was initialized with, when it is in scope.
func (t *declaredPropsTracker) resolveObjectBinding(ident *ts.Node) *ts.Node {
	v := t.ctx.Scopes.ScopeFor(ident).Resolve(ident.Utf8Text(t.ctx.Source))
	if v == nil || len(v.Defs) == 0 {
		return nil
	}
	def := v.Defs[len(v.Defs)-1]
	if def.Kind != scope.DefVariable || def.Decl == nil {
		return nil
	}
	value := jsast.Unwrap(def.Decl.ChildByFieldName("value"))
	if value != nil && value.Kind() == "object" {
		return value
	}
	return nil
}

func (t *declaredPropsTracker) objectLiteralProps(obj *ts.Node, prefix string) (map[string]DeclaredProp, bool) {
	out := make(map[string]DeclaredProp)
	unresolved := false
	for i := uint(0); i < uint(obj.NamedChildCount()); i++ {
		child := obj.NamedChild(i)
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
			full := name
			if prefix != "" {
				full = prefix + "." + name
			}
			value := jsast.Unwrap(child.ChildByFieldName("value"))
			out[full] = DeclaredProp{
				FullName:   full,
				Name:       name,
				IsRequired: isRequiredValidator(value, t.ctx.Source),
				Node:       child,
			}
			if shape := shapeArgument(value, t.ctx.Source); shape != nil {
				nested, nestedUnresolved := t.objectLiteralProps(shape, full)
				for k, v := range nested {
					out[k] = v
				}
				unresolved = unresolved || nestedUnresolved
			}
		case "comment":
		default:
			unresolved = true
		}
	}
	return out, unresolved
}

// isRequiredValidator reports whether a validator chain ends in
// .isRequired.
func isRequiredValidator(value *ts.Node, source []byte) bool {
	if value == nil || value.Kind() != "member_expression" {
		return false
	}
	return jsast.PropertyName(value.ChildByFieldName("property"), source) == "isRequired"
}

// shapeArgument returns the object literal inside a shape(...) call,
// looking through a trailing .isRequired.
func shapeArgument(value *ts.Node, source []byte) *ts.Node {
	if value == nil {
		return nil
	}
	if value.Kind() == "member_expression" && isRequiredValidator(value, source) {
		value = jsast.UnwrapTSExpression(value.ChildByFieldName("object"))
	}
	if value == nil || value.Kind() != "call_expression" {
		return nil
	}
	callee := jsast.CalleeText(value, source)
	if callee != "shape" && !endsWithSegment(callee, "shape") && callee != "exact" && !endsWithSegment(callee, "exact") {
		return nil
	}
	args := jsast.CallArguments(value)
	if len(args) == 0 {
		return nil
	}
	arg := jsast.Unwrap(args[0])
	if arg != nil && arg.Kind() == "object" {
		return arg
	}
	return nil
}

func endsWithSegment(callee, name string) bool {
	n := len(callee) - len(name)
	return n > 0 && callee[n-1] == '.' && callee[n:] == name
}
