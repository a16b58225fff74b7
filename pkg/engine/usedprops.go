package engine

import (
	"fmt"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/jsxray/jsxray/pkg/jsast"
)

// lifecycleWithProps are the class methods whose first parameter is a
// props object (current, next or previous, depending on the method).
var lifecycleWithProps = map[string]bool{
	"constructor":                      true,
	"componentWillReceiveProps":        true,
	"UNSAFE_componentWillReceiveProps": true,
	"shouldComponentUpdate":            true,
	"componentWillUpdate":              true,
	"UNSAFE_componentWillUpdate":       true,
	"componentDidUpdate":               true,
	"getDerivedStateFromProps":         true,
}

// propScope maps local variable names to resolved prop paths for one
// function. Scopes copy on first write: a scope that never introduces
// an alias keeps sharing its parent's map.
type propScope struct {
	fn     *ts.Node
	vars   map[string][]string
	shared bool
}

// usedPropsTracker records which props a component reads. It observes
// member chains and destructuring patterns, resolving them through the
// scoped alias map, and attributes one usage fact per outermost chain
// to the enclosing component via the registry's parent climb.
type usedPropsTracker struct {
	ctx   *Context
	stack []*propScope
	// updaters marks functions passed to setState whose second
	// parameter carries the props object.
	updaters map[uintptr]bool
}

func newUsedPropsTracker(ctx *Context) *usedPropsTracker {
	return &usedPropsTracker{ctx: ctx, updaters: make(map[uintptr]bool)}
}

func (t *usedPropsTracker) register(vis *jsast.Visitors) {
	vis.OnEnter("program", t.pushScope)
	vis.OnExit("program", t.popScope)
	for _, kind := range []string{
		"function_declaration", "generator_function_declaration",
		"function_expression", "function", "generator_function",
		"arrow_function", "method_definition",
	} {
		vis.OnEnter(kind, t.enterFunction)
		vis.OnExit(kind, t.popScope)
	}
	vis.OnEnter("member_expression", t.visitMember)
	vis.OnEnter("subscript_expression", t.visitMember)
	vis.OnEnter("call_expression", t.visitCall)
	vis.OnEnter("variable_declarator", t.visitDeclarator)
}

func (t *usedPropsTracker) pushScope(node *ts.Node) {
	s := &propScope{fn: node, shared: true}
	if len(t.stack) > 0 {
		s.vars = t.stack[len(t.stack)-1].vars
	}
	t.stack = append(t.stack, s)
}

func (t *usedPropsTracker) popScope(*ts.Node) {
	if len(t.stack) > 0 {
		t.stack = t.stack[:len(t.stack)-1]
	}
}

// bind records a local alias for a prop path in the innermost scope,
// cloning the shared map on first write.
func (t *usedPropsTracker) bind(name string, path []string) {
	if len(t.stack) == 0 || name == "" {
		return
	}
	s := t.stack[len(t.stack)-1]
	if s.shared || s.vars == nil {
		clone := make(map[string][]string, len(s.vars)+1)
		for k, v := range s.vars {
			clone[k] = v
		}
		s.vars = clone
		s.shared = false
	}
	s.vars[name] = path
}

func (t *usedPropsTracker) lookup(name string) ([]string, bool) {
	if len(t.stack) == 0 {
		return nil, false
	}
	path, ok := t.stack[len(t.stack)-1].vars[name]
	return path, ok
}

// enterFunction pushes a fresh scope and seeds it when the function
// receives props through a parameter: function components and wrapper
// arguments (first parameter), props-carrying lifecycle methods (first
// parameter), and setState updaters (second parameter).
func (t *usedPropsTracker) enterFunction(fn *ts.Node) {
	t.pushScope(fn)

	if t.updaters[fn.Id()] {
		t.seedParam(fn, 1, true)
		return
	}
	if name, ok := t.componentMethodName(fn); ok && lifecycleWithProps[name] {
		t.seedParam(fn, 0, true)
		return
	}
	if comp := t.ctx.Registry.Get(fn); comp != nil {
		// A destructured first parameter is processed for every
		// tentative function (the facts only surface if the list
		// merge finds a confident owner); an identifier parameter
		// becomes a props root only for real component candidates.
		asProps := comp.Confidence >= ConfidenceConfirmed || comp.candidate || t.isWrapperArgument(fn)
		t.seedParam(fn, 0, asProps)
	}
}

// isWrapperArgument reports whether fn is the wrapped function of a
// registered wrapper call, so the component record lives on the call.
// Only the first argument position qualifies; a comparator or other
// trailing argument does not receive props.
func (t *usedPropsTracker) isWrapperArgument(fn *ts.Node) bool {
	n := fn.Parent()
	for n != nil {
		switch n.Kind() {
		case "parenthesized_expression", "as_expression",
			"satisfies_expression", "non_null_expression", "arguments":
			n = n.Parent()
		case "call_expression":
			if t.ctx.Registry.Get(n) == nil {
				return false
			}
			args := jsast.CallArguments(n)
			return len(args) > 0 && jsast.Unwrap(args[0]).Id() == fn.Id()
		default:
			return false
		}
	}
	return false
}

// componentMethodName returns the method or factory-property name when
// fn is the body of a method inside a registered component: a class
// method_definition or an ES5 factory object property.
func (t *usedPropsTracker) componentMethodName(fn *ts.Node) (string, bool) {
	if fn.Kind() == "method_definition" {
		if t.nearestComponent(fn) == nil {
			return "", false
		}
		return jsast.PropertyName(fn.ChildByFieldName("name"), t.ctx.Source), true
	}
	parent := fn.Parent()
	if parent == nil || parent.Kind() != "pair" {
		return "", false
	}
	if t.nearestComponent(parent) == nil {
		return "", false
	}
	return jsast.PropertyName(parent.ChildByFieldName("key"), t.ctx.Source), true
}

// nearestComponent climbs the parent chain to the closest node with a
// tentative-or-better registry record.
func (t *usedPropsTracker) nearestComponent(node *ts.Node) *Component {
	for n := node; n != nil; n = n.Parent() {
		if c := t.ctx.Registry.Get(n); c != nil {
			return c
		}
	}
	return nil
}

// seedParam makes parameter idx a props root: an identifier becomes a
// whole-object alias, an object pattern destructures immediately.
// asProps gates the identifier form; object patterns always process.
func (t *usedPropsTracker) seedParam(fn *ts.Node, idx int, asProps bool) {
	params := jsast.FunctionParameters(fn)
	if idx >= len(params) {
		return
	}
	pattern := params[idx]
	switch pattern.Kind() {
	case "identifier":
		if asProps {
			t.bind(pattern.Utf8Text(t.ctx.Source), []string{})
		}
	case "object_pattern":
		t.destructure(pattern, nil, DeclKindNone)
	}
}

// visitMember records one usage fact for the outermost props member
// chain: this.props.* inside class and factory components, or a scoped
// alias root inside function components and lifecycle methods.
func (t *usedPropsTracker) visitMember(node *ts.Node) {
	if parent := node.Parent(); parent != nil && jsast.IsMemberExpression(parent) {
		if obj := parent.ChildByFieldName("object"); obj != nil && obj.Id() == node.Id() {
			return
		}
	}

	root, segments := jsast.MemberPath(node, t.ctx.Source)
	base, rest, ok := t.resolveChain(root, segments, node)
	if !ok || len(rest) == 0 {
		return
	}
	if root != nil && root.Kind() == "identifier" {
		t.ctx.MarkUsed(root.Utf8Text(t.ctx.Source), node)
	}
	if len(base) == 0 && !rest[0].Computed && jsast.IsNativeObjectProp(rest[0].Name) {
		return
	}

	names := append([]string{}, base...)
	for _, seg := range rest {
		if seg.Computed {
			// A computed access poisons exhaustiveness checking on
			// the owner; the fact survives as a computed sentinel.
			key := t.computedKeyText(seg.Node)
			names = append(names, key)
			t.ctx.Registry.Set(node, Facts{
				UsedProps:             []UsedProp{{Name: names[0], AllNames: names, Node: node, Computed: true}},
				IgnorePropsValidation: Bool(true),
			})
			return
		}
		if seg.Name == "" {
			return
		}
		names = append(names, seg.Name)
	}
	t.ctx.Registry.Set(node, Facts{
		UsedProps: []UsedProp{{Name: names[0], AllNames: names, Node: node}},
	})
}

func (t *usedPropsTracker) computedKeyText(member *ts.Node) string {
	if member == nil {
		return ""
	}
	if idx := member.ChildByFieldName("index"); idx != nil {
		return idx.Utf8Text(t.ctx.Source)
	}
	return ""
}

// resolveChain classifies the root of a member chain: this.props inside
// a component yields an empty base with the post-props segments, a
// scope alias yields its bound path with all segments.
func (t *usedPropsTracker) resolveChain(root *ts.Node, segments []jsast.MemberSegment, at *ts.Node) (base []string, rest []jsast.MemberSegment, ok bool) {
	if root == nil {
		return nil, nil, false
	}
	switch root.Kind() {
	case "this":
		if len(segments) == 0 || segments[0].Computed || segments[0].Name != "props" {
			return nil, nil, false
		}
		if t.nearestComponent(at) == nil {
			return nil, nil, false
		}
		return nil, segments[1:], true
	case "identifier":
		path, bound := t.lookup(root.Utf8Text(t.ctx.Source))
		if !bound {
			return nil, nil, false
		}
		return path, segments, true
	}
	return nil, nil, false
}

// visitCall records setState usage and flags updater functions whose
// second parameter will carry props.
func (t *usedPropsTracker) visitCall(node *ts.Node) {
	fn := node.ChildByFieldName("function")
	if fn == nil || fn.Kind() != "member_expression" {
		return
	}
	obj := fn.ChildByFieldName("object")
	if obj == nil || obj.Kind() != "this" {
		return
	}
	if jsast.PropertyName(fn.ChildByFieldName("property"), t.ctx.Source) != "setState" {
		return
	}
	t.ctx.Registry.Set(node, Facts{SetStateUsages: []*ts.Node{node}})
	if updater := jsast.FirstFunctionArgument(node); updater != nil {
		t.updaters[updater.Id()] = true
	}
}

// visitDeclarator handles alias bindings and destructuring from a props
// source: const a = props.a.b extends the alias map, const {x} = props
// destructures.
func (t *usedPropsTracker) visitDeclarator(node *ts.Node) {
	value := jsast.Unwrap(node.ChildByFieldName("value"))
	if value == nil {
		return
	}
	base, ok := t.resolveValuePath(value, node)
	if !ok {
		return
	}
	name := node.ChildByFieldName("name")
	if name == nil {
		return
	}
	switch name.Kind() {
	case "identifier":
		t.bind(name.Utf8Text(t.ctx.Source), base)
	case "object_pattern":
		t.destructure(name, base, DeclKindNone)
	}
}

// resolveValuePath resolves an initializer expression to a prop path
// when it denotes the props object or a sub-path of it.
func (t *usedPropsTracker) resolveValuePath(value *ts.Node, at *ts.Node) ([]string, bool) {
	switch {
	case value.Kind() == "identifier":
		path, ok := t.lookup(value.Utf8Text(t.ctx.Source))
		return path, ok
	case jsast.IsMemberExpression(value):
		root, segments := jsast.MemberPath(value, t.ctx.Source)
		base, rest, ok := t.resolveChain(root, segments, at)
		if !ok {
			return nil, false
		}
		names := append([]string{}, base...)
		for _, seg := range rest {
			if seg.Computed || seg.Name == "" {
				return nil, false
			}
			names = append(names, seg.Name)
		}
		return names, true
	}
	return nil, false
}

// destructure records one fact per destructured key and binds the
// introduced locals, recursing into nested object patterns. A rest
// element or computed key anywhere in the pattern disables
// exhaustiveness checking for the whole component instead of producing
// partial facts.
func (t *usedPropsTracker) destructure(pattern *ts.Node, base []string, declKind DeclKind) {
	if patternDefeatsAnalysis(pattern) {
		t.ctx.Registry.Set(pattern, Facts{IgnorePropsValidation: Bool(true)})
		return
	}
	t.destructureKeys(pattern, base, declKind)
}

// patternDefeatsAnalysis scans an object pattern recursively for rest
// elements and computed keys. Nested patterns can hide behind a per-key
// default ({ a: { ...rest } = {} }), so assignment pattern lefts are
// scanned too.
func patternDefeatsAnalysis(pattern *ts.Node) bool {
	for i := uint(0); i < uint(pattern.NamedChildCount()); i++ {
		child := pattern.NamedChild(i)
		switch child.Kind() {
		case "rest_pattern":
			return true
		case "pair_pattern":
			if key := child.ChildByFieldName("key"); key != nil && key.Kind() == "computed_property_name" {
				return true
			}
			value := child.ChildByFieldName("value")
			if value != nil && value.Kind() == "assignment_pattern" {
				value = value.ChildByFieldName("left")
			}
			if value != nil && value.Kind() == "object_pattern" {
				if patternDefeatsAnalysis(value) {
					return true
				}
			}
		}
	}
	return false
}

func (t *usedPropsTracker) destructureKeys(pattern *ts.Node, base []string, declKind DeclKind) {
	for i := uint(0); i < uint(pattern.NamedChildCount()); i++ {
		child := pattern.NamedChild(i)
		switch child.Kind() {
		case "shorthand_property_identifier_pattern":
			name := child.Utf8Text(t.ctx.Source)
			t.recordKey(child, base, name, declKind)
			t.bind(name, appendPath(base, name))

		case "object_assignment_pattern":
			// { a = fallback }: the fact carries the init decl kind
			// so the list merge can filter it for sub-confident owners.
			left := child.ChildByFieldName("left")
			if left == nil || left.Kind() != "shorthand_property_identifier_pattern" {
				panic(fmt.Sprintf("used-props: unhandled assignment pattern target %q", childKind(left)))
			}
			name := left.Utf8Text(t.ctx.Source)
			t.recordKey(child, base, name, DeclKindInit)
			t.bind(name, appendPath(base, name))

		case "pair_pattern":
			key := jsast.PropertyName(child.ChildByFieldName("key"), t.ctx.Source)
			if key == "" {
				// A key PropertyName can't render (empty string
				// literal) defeats exhaustiveness checking the same
				// way a computed key does.
				t.ctx.Registry.Set(child, Facts{IgnorePropsValidation: Bool(true)})
				continue
			}
			t.destructureValue(child.ChildByFieldName("value"), base, key, declKind)

		case "comment":

		default:
			panic(fmt.Sprintf("used-props: unhandled pattern node %q", child.Kind()))
		}
	}
}

// destructureValue handles the value side of a pair pattern: rename
// aliases, nested patterns, and per-key defaults.
func (t *usedPropsTracker) destructureValue(value *ts.Node, base []string, key string, declKind DeclKind) {
	if value == nil {
		return
	}
	path := appendPath(base, key)
	switch value.Kind() {
	case "identifier":
		t.recordKey(value, base, key, declKind)
		t.bind(value.Utf8Text(t.ctx.Source), path)
	case "object_pattern":
		t.recordKey(value, base, key, declKind)
		t.destructureKeys(value, path, declKind)
	case "array_pattern":
		// Index positions are not prop names; the key itself is used.
		t.recordKey(value, base, key, declKind)
	case "assignment_pattern":
		left := value.ChildByFieldName("left")
		if left != nil && left.Kind() == "identifier" {
			t.recordKey(value, base, key, DeclKindInit)
			t.bind(left.Utf8Text(t.ctx.Source), path)
			return
		}
		if left != nil && left.Kind() == "object_pattern" {
			t.recordKey(value, base, key, DeclKindInit)
			t.destructureKeys(left, path, DeclKindInit)
			return
		}
		if left != nil && left.Kind() == "array_pattern" {
			t.recordKey(value, base, key, DeclKindInit)
			return
		}
		panic(fmt.Sprintf("used-props: unhandled default pattern target %q", childKind(left)))
	default:
		panic(fmt.Sprintf("used-props: unhandled pattern value %q", value.Kind()))
	}
}

func (t *usedPropsTracker) recordKey(at *ts.Node, base []string, key string, declKind DeclKind) {
	if len(base) == 0 && jsast.IsNativeObjectProp(key) {
		return
	}
	names := appendPath(base, key)
	t.ctx.Registry.Set(at, Facts{
		UsedProps: []UsedProp{{Name: names[0], AllNames: names, Node: at, DeclKind: declKind}},
	})
}

func appendPath(base []string, name string) []string {
	path := make([]string, 0, len(base)+1)
	path = append(path, base...)
	return append(path, name)
}

func childKind(n *ts.Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.Kind()
}
