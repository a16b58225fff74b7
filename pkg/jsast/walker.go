package jsast

import (
	ts "github.com/tree-sitter/go-tree-sitter"
)

// VisitFunc is an observer callback invoked with the visited node.
type VisitFunc func(node *ts.Node)

// AnyKind registers an observer for every node kind.
const AnyKind = "*"

// Visitors is an ordered observer list keyed by node kind. Multiple
// independent passes (detection, prop tracking, consumer rules) register
// their callbacks here and are all driven by one Walk: every observer
// sees every node in the same single pass, and observers fire in
// registration order within a node's visit. Consumer rules depend on
// that relative ordering for correct side effects.
type Visitors struct {
	enter map[string][]VisitFunc
	exit  map[string][]VisitFunc
}

// NewVisitors returns an empty observer set.
func NewVisitors() *Visitors {
	return &Visitors{
		enter: make(map[string][]VisitFunc),
		exit:  make(map[string][]VisitFunc),
	}
}

// OnEnter registers fn to run when a node of the given kind is entered,
// before any of its children are visited.
func (v *Visitors) OnEnter(kind string, fn VisitFunc) {
	v.enter[kind] = append(v.enter[kind], fn)
}

// OnExit registers fn to run when a node of the given kind is exited,
// after all of its children were visited. OnExit("program", ...) is the
// finalization hook for a run.
func (v *Visitors) OnExit(kind string, fn VisitFunc) {
	v.exit[kind] = append(v.exit[kind], fn)
}

// Merge appends all of other's observers after v's own, preserving
// registration order within each set.
func (v *Visitors) Merge(other *Visitors) {
	if other == nil {
		return
	}
	for kind, fns := range other.enter {
		v.enter[kind] = append(v.enter[kind], fns...)
	}
	for kind, fns := range other.exit {
		v.exit[kind] = append(v.exit[kind], fns...)
	}
}

// Walk drives the merged observer set over the tree rooted at root in a
// single depth-first pass: enter callbacks, then children, then exit
// callbacks. Only named nodes are visited; punctuation and keyword
// tokens are skipped. The tree is immutable during the walk and every
// visited node carries its parent reference via node.Parent().
func Walk(root *ts.Node, v *Visitors) {
	if root == nil || v == nil {
		return
	}
	walkNode(root, v)
}

func walkNode(node *ts.Node, v *Visitors) {
	kind := node.Kind()

	for _, fn := range v.enter[AnyKind] {
		fn(node)
	}
	for _, fn := range v.enter[kind] {
		fn(node)
	}

	for i := uint(0); i < uint(node.NamedChildCount()); i++ {
		walkNode(node.NamedChild(i), v)
	}

	for _, fn := range v.exit[kind] {
		fn(node)
	}
	for _, fn := range v.exit[AnyKind] {
		fn(node)
	}
}
