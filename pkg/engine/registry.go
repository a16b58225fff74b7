package engine

import (
	"log/slog"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/jsxray/jsxray/pkg/jsast"
)

// Registry is the central per-run component store, keyed by node
// identity. A registry instance lives for exactly one rule run over one
// file; nothing survives past program exit.
type Registry struct {
	components map[uintptr]*Component
	logger     *slog.Logger

	// MergeFilter decides which used-prop facts staged from tentative
	// descendants survive the List merge into a confident ancestor.
	// The default drops facts recorded from destructuring initializer
	// defaults; the predicate is deliberately tunable because the
	// keep/drop boundary is pinned by observed behavior, not intent.
	MergeFilter func(UsedProp) bool
}

// NewRegistry creates an empty registry for one rule run.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		components: make(map[uintptr]*Component),
		logger:     logger,
		MergeFilter: func(p UsedProp) bool {
			return p.DeclKind != DeclKindInit
		},
	}
}

// Add upserts a component record for node. Confidence combines
// monotonically: the record keeps the max of all observed values,
// except that confidence 0 is terminal and can never rise again.
// Returns the (possibly pre-existing) record.
func (r *Registry) Add(node *ts.Node, confidence Confidence) *Component {
	id := node.Id()
	comp, ok := r.components[id]
	if !ok {
		comp = &Component{
			Node:       node,
			Confidence: confidence,
			rejected:   confidence == ConfidenceRejected,
		}
		r.components[id] = comp
		return comp
	}

	if confidence == ConfidenceRejected {
		comp.rejected = true
		comp.Confidence = ConfidenceRejected
		return comp
	}
	if comp.rejected {
		return comp
	}
	if confidence > comp.Confidence {
		comp.Confidence = confidence
	}
	return comp
}

// Get returns the record for node iff its confidence is at least
// tentative, else nil.
func (r *Registry) Get(node *ts.Node) *Component {
	if node == nil {
		return nil
	}
	comp, ok := r.components[node.Id()]
	if !ok || comp.Confidence < ConfidenceTentative {
		return nil
	}
	return comp
}

// Set records facts against the component owning node. When node is not
// itself a known component, the parent chain is climbed until a
// component of confidence >= 1 is found; no-op when none exists. Facts
// can therefore be recorded from any descendant without the caller
// resolving the owner first.
func (r *Registry) Set(node *ts.Node, facts Facts) {
	for n := node; n != nil; n = n.Parent() {
		if comp, ok := r.components[n.Id()]; ok && comp.Confidence >= ConfidenceTentative {
			comp.apply(facts)
			return
		}
	}
}

// List returns the confident components keyed by node identity.
//
// Two phases: first, used-prop facts recorded on every sub-confident
// record are staged for the nearest confident ancestor (climbing the
// parent chain, stopping at a decorator boundary), filtered through
// MergeFilter. Then only confidence-2 records are emitted, each
// augmented with its staged facts. Detection confidence often resolves
// only after usage was seen, so facts from the low-confidence window
// must not be lost.
func (r *Registry) List() map[uintptr]*Component {
	staged := make(map[uintptr][]UsedProp)

	for _, comp := range r.components {
		if comp.Confidence >= ConfidenceConfirmed || len(comp.UsedProps) == 0 {
			continue
		}
		anc := r.confidentAncestor(comp.Node)
		if anc == nil {
			continue
		}
		for _, p := range comp.UsedProps {
			if r.MergeFilter == nil || r.MergeFilter(p) {
				staged[anc.Node.Id()] = append(staged[anc.Node.Id()], p)
			}
		}
	}

	out := make(map[uintptr]*Component)
	for id, comp := range r.components {
		if comp.Confidence < ConfidenceConfirmed {
			continue
		}
		if props := staged[id]; len(props) > 0 {
			comp.UsedProps = mergeUsedProps(comp.UsedProps, props)
		}
		out[id] = comp
	}
	return out
}

// confidentAncestor climbs the parent chain looking for a confirmed
// component, stopping at a decorator boundary.
func (r *Registry) confidentAncestor(node *ts.Node) *Component {
	for n := node.Parent(); n != nil; n = n.Parent() {
		if jsast.IsDecorator(n) {
			return nil
		}
		if comp, ok := r.components[n.Id()]; ok && comp.Confidence >= ConfidenceConfirmed {
			return comp
		}
	}
	return nil
}

// All returns every record regardless of confidence, rejected ones
// included. Diagnostics that care about demoted components (a function
// component that touched this, say) read the full table; List stays
// the confident view.
func (r *Registry) All() []*Component {
	out := make([]*Component, 0, len(r.components))
	for _, comp := range r.components {
		out = append(out, comp)
	}
	return out
}

// Len returns the count of confident components.
func (r *Registry) Len() int {
	n := 0
	for _, comp := range r.components {
		if comp.Confidence >= ConfidenceConfirmed {
			n++
		}
	}
	return n
}
