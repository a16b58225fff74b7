package engine

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/jsxray/jsxray/pkg/jsast"
	"github.com/jsxray/jsxray/pkg/scope"
)

// RelatedComponent resolves a member expression like Foo.propTypes back
// to the component node Foo names. It resolves the root identifier in
// the lexical scope at the member, scans the variable's references for a
// matching dotted path, and falls back to the declaration site, walking
// any remaining path segments as object-literal property lookups. The
// resolved node is registered tentatively so later facts attach to it.
// Returns nil when any step fails to resolve statically.
func (c *Context) RelatedComponent(member *ts.Node) *Component {
	root, segments := jsast.MemberPath(member, c.Source)
	if root == nil || root.Kind() != "identifier" || len(segments) == 0 {
		return nil
	}
	// The final segment is the attribute being assigned (propTypes,
	// displayName); everything before it names the component.
	path := segments[:len(segments)-1]
	rootName := root.Utf8Text(c.Source)
	fullPath := rootName
	for _, seg := range path {
		if seg.Computed || seg.Name == "" {
			return nil
		}
		fullPath += "." + seg.Name
	}

	variable := c.Scopes.ScopeFor(member).Resolve(rootName)
	if variable == nil {
		return nil
	}

	node := c.componentFromReferences(variable, fullPath, member)
	if node == nil {
		node = c.componentFromDeclaration(variable, path)
	}
	if node == nil {
		return nil
	}
	node = jsast.Unwrap(node)
	return c.Registry.Add(node, ConfidenceTentative)
}

// componentFromReferences looks for a write through the dotted path,
// e.g. an earlier `Foo.Bar = () => ...` when resolving Foo.Bar.propTypes.
func (c *Context) componentFromReferences(v *scope.Variable, fullPath string, origin *ts.Node) *ts.Node {
	for _, ref := range v.References {
		outer := jsast.OutermostMember(ref.Node)
		target := outer
		// For a single-segment path the bare identifier reference is
		// the match; for dotted paths the enclosing member chain must
		// spell the path exactly.
		if outer.Id() != ref.Node.Id() {
			target = matchPathPrefix(ref.Node, fullPath, c.Source)
			if target == nil {
				continue
			}
		} else if ref.Node.Utf8Text(c.Source) != fullPath {
			continue
		}
		if origin != nil && jsast.Covers(origin, target) {
			continue
		}
		parent := target.Parent()
		if parent == nil {
			continue
		}
		switch parent.Kind() {
		case "assignment_expression":
			left := parent.ChildByFieldName("left")
			right := parent.ChildByFieldName("right")
			if left != nil && right != nil && left.Id() == target.Id() {
				if value := jsast.Unwrap(right); value != nil && value.Kind() != "identifier" {
					return value
				}
			}
		case "variable_declarator":
			if value := jsast.Unwrap(parent.ChildByFieldName("value")); value != nil && value.Kind() != "identifier" {
				return value
			}
		}
	}
	return nil
}

// matchPathPrefix climbs the member chain rooted at ref until the chain
// text equals fullPath. Returns the matching member node or nil.
func matchPathPrefix(ref *ts.Node, fullPath string, source []byte) *ts.Node {
	for n := ref.Parent(); n != nil && jsast.IsMemberExpression(n); n = n.Parent() {
		if n.Utf8Text(source) == fullPath {
			return n
		}
	}
	return nil
}

// componentFromDeclaration falls back to the variable's definition and
// walks the remaining path segments through nested object literals.
func (c *Context) componentFromDeclaration(v *scope.Variable, path []jsast.MemberSegment) *ts.Node {
	if len(v.Defs) == 0 {
		return nil
	}
	def := v.Defs[len(v.Defs)-1]
	var node *ts.Node
	switch def.Kind {
	case scope.DefFunction, scope.DefClass:
		node = def.Decl
	case scope.DefVariable:
		if def.Decl != nil {
			node = jsast.Unwrap(def.Decl.ChildByFieldName("value"))
		}
	default:
		return nil
	}
	for _, seg := range path {
		node = objectProperty(node, seg.Name, c.Source)
		if node == nil {
			return nil
		}
	}
	return node
}

// objectProperty returns the value of the named property inside an
// object literal, or nil when node is not an object or lacks the key.
func objectProperty(node *ts.Node, name string, source []byte) *ts.Node {
	if node == nil || node.Kind() != "object" || name == "" {
		return nil
	}
	for i := uint(0); i < uint(node.NamedChildCount()); i++ {
		pair := node.NamedChild(i)
		if pair.Kind() != "pair" {
			continue
		}
		if jsast.PropertyName(pair.ChildByFieldName("key"), source) == name {
			return jsast.Unwrap(pair.ChildByFieldName("value"))
		}
	}
	return nil
}
