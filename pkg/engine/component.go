// Package engine is the component-detection and fact-aggregation core:
// a per-file registry of component-like constructs with confidence
// scoring, fed by a merged single-pass tree walk that combines
// detection, prop-usage tracking, declared-prop extraction,
// default-value extraction, and one consumer rule.
package engine

import (
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// Confidence is the detection strength for a component record.
type Confidence int

const (
	// ConfidenceRejected marks a node as definitively not a component.
	// Terminal: once rejected a record can never rise again.
	ConfidenceRejected Confidence = 0
	// ConfidenceTentative marks a maybe-component kept only so nested
	// facts can later be attributed to a confident ancestor.
	ConfidenceTentative Confidence = 1
	// ConfidenceConfirmed marks a detected component.
	ConfidenceConfirmed Confidence = 2
)

// DeclKind tags how a used-prop fact was produced. Facts produced from
// a destructuring initializer default are filtered out of the List
// merge by default.
type DeclKind string

const (
	DeclKindNone DeclKind = ""
	DeclKindInit DeclKind = "init"
)

// UsedProp is one observed prop read. AllNames is the full dotted or
// destructured path: accessing props.a.b yields Name "a",
// AllNames [a b].
type UsedProp struct {
	Name     string
	AllNames []string
	Node     *ts.Node
	// Computed marks an access through a computed key. It disables
	// exhaustiveness checks on the owner instead of being dropped.
	Computed bool
	DeclKind DeclKind
}

// key serializes the identity of a fact for dedup: two facts are
// equivalent iff names match and path arrays serialize identically.
func (u UsedProp) key() string {
	var sb strings.Builder
	sb.WriteString(u.Name)
	sb.WriteByte('\x00')
	sb.WriteString(strings.Join(u.AllNames, "\x1f"))
	if u.Computed {
		sb.WriteString("\x00computed")
	}
	return sb.String()
}

// DeclaredProp is one statically declared prop.
type DeclaredProp struct {
	// FullName is the dotted path for nested shapes, Name its last
	// segment.
	FullName   string
	Name       string
	IsRequired bool
	Node       *ts.Node
}

// DefaultProp is one statically declared default value.
type DefaultProp struct {
	// Source is the raw source text of the default expression.
	Source string
	Node   *ts.Node
}

// Component is a classified construct believed to define a UI
// component, keyed by its owning AST node.
type Component struct {
	Node       *ts.Node
	Confidence Confidence
	// Name is the binding or declaration name, empty for anonymous
	// components.
	Name string

	UsedProps []UsedProp

	DeclaredProps map[string]DeclaredProp
	// DeclaredUnresolved is the sentinel for prop declarations whose
	// shape could not be statically determined: consumers must
	// suppress checks, never treat it as an empty declaration.
	DeclaredUnresolved bool

	DefaultProps       map[string]DefaultProp
	DefaultsUnresolved bool

	// IgnorePropsValidation disables prop exhaustiveness checks for
	// this component (spread destructuring, computed keys).
	IgnorePropsValidation bool

	HasDisplayName bool
	HasSCU         bool
	SetStateUsages []*ts.Node
	// ThisUsages are this-expressions observed inside a function
	// component, each the cause of a confidence demotion.
	ThisUsages []*ts.Node

	rejected bool
	// candidate marks a function that passed the stateless test on its
	// own shape, as opposed to the blanket tentative record every
	// function receives.
	candidate bool
}

// Facts is the partial-update payload for Registry.Set. Nil pointer
// fields are left untouched; UsedProps merge with dedup; maps union.
type Facts struct {
	UsedProps []UsedProp

	DeclaredProps      map[string]DeclaredProp
	DeclaredUnresolved *bool

	DefaultProps       map[string]DefaultProp
	DefaultsUnresolved *bool

	IgnorePropsValidation *bool
	HasDisplayName        *bool
	HasSCU                *bool
	Name                  *string

	SetStateUsages []*ts.Node
}

// Bool returns a pointer to b, for Facts fields.
func Bool(b bool) *bool { return &b }

// String returns a pointer to s, for Facts fields.
func String(s string) *string { return &s }

func (c *Component) apply(f Facts) {
	c.UsedProps = mergeUsedProps(c.UsedProps, f.UsedProps)

	if len(f.DeclaredProps) > 0 {
		if c.DeclaredProps == nil {
			c.DeclaredProps = make(map[string]DeclaredProp, len(f.DeclaredProps))
		}
		for k, v := range f.DeclaredProps {
			c.DeclaredProps[k] = v
		}
	}
	if f.DeclaredUnresolved != nil {
		c.DeclaredUnresolved = *f.DeclaredUnresolved
	}

	if len(f.DefaultProps) > 0 {
		if c.DefaultProps == nil {
			c.DefaultProps = make(map[string]DefaultProp, len(f.DefaultProps))
		}
		for k, v := range f.DefaultProps {
			c.DefaultProps[k] = v
		}
	}
	if f.DefaultsUnresolved != nil {
		c.DefaultsUnresolved = *f.DefaultsUnresolved
	}

	if f.IgnorePropsValidation != nil {
		c.IgnorePropsValidation = *f.IgnorePropsValidation
	}
	if f.HasDisplayName != nil {
		c.HasDisplayName = *f.HasDisplayName
	}
	if f.HasSCU != nil {
		c.HasSCU = *f.HasSCU
	}
	if f.Name != nil && c.Name == "" {
		c.Name = *f.Name
	}

	c.SetStateUsages = append(c.SetStateUsages, f.SetStateUsages...)
}

// mergeUsedProps appends src facts to dst, skipping facts already
// present under the equivalence rule. Merge order is stable so the
// operation commutes up to ordering.
func mergeUsedProps(dst []UsedProp, src []UsedProp) []UsedProp {
	if len(src) == 0 {
		return dst
	}
	seen := make(map[string]bool, len(dst))
	for _, p := range dst {
		seen[p.key()] = true
	}
	for _, p := range src {
		k := p.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		dst = append(dst, p)
	}
	return dst
}
