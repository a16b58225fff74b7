// Package pragma resolves the factory identifier (default React), the
// fragment identifier (default Fragment), and the set of recognized
// component wrapper functions for one lint run. Bindings are resolved
// once per file from settings, pragma comments, and imports, then cached
// on the run context for the duration of the tree walk.
package pragma

import (
	"regexp"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"
)

// Wrapper names a higher-order component wrapper call. Property is the
// bare function name; Object, when set, additionally matches the
// qualified form Object.Property.
type Wrapper struct {
	Property string
	Object   string
}

// Settings are the recognized engine options, plain-struct style.
type Settings struct {
	// Pragma is the factory identifier, default "React".
	Pragma string
	// Fragment is the fragment identifier, default "Fragment".
	Fragment string
	// WrapperFunctions are extra HOC wrappers beyond memo/forwardRef.
	WrapperFunctions []Wrapper
	// Version is the targeted React version: a semver string or
	// "detect". Empty falls back to DefaultVersion.
	Version string
	// DefaultVersion is used when Version is empty or detection fails.
	DefaultVersion string
}

// DefaultSettings returns the engine defaults.
func DefaultSettings() Settings {
	return Settings{
		Pragma:   "React",
		Fragment: "Fragment",
	}
}

// Bindings are the per-run resolved identifiers.
type Bindings struct {
	Pragma   string
	Fragment string
	// ReactImported is true when the file imports the "react" module.
	ReactImported bool

	wrappers []Wrapper
}

var (
	jsxPragmaRe  = regexp.MustCompile(`@jsx\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	jsxFragRe    = regexp.MustCompile(`@jsxFrag\s+([A-Za-z_$][A-Za-z0-9_$.]*)`)
	validPragma  = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
)

// Resolve computes the bindings for one file. A leading `@jsx` pragma
// comment overrides the configured factory name, matching how the AST
// producer treats JSX.
func Resolve(root *ts.Node, source []byte, s Settings) Bindings {
	b := Bindings{
		Pragma:   s.Pragma,
		Fragment: s.Fragment,
	}
	if b.Pragma == "" {
		b.Pragma = "React"
	}
	if b.Fragment == "" {
		b.Fragment = "Fragment"
	}

	if root != nil {
		scanLeadingComments(root, source, &b)
		b.ReactImported = hasReactImport(root, source)
	}

	// memo/forwardRef are always recognized, optionally qualified by
	// the pragma; createReactClass covers the ES5 factory path.
	b.wrappers = []Wrapper{
		{Property: "memo", Object: b.Pragma},
		{Property: "forwardRef", Object: b.Pragma},
		{Property: "createReactClass"},
		{Property: "createClass", Object: b.Pragma},
	}
	b.wrappers = append(b.wrappers, s.WrapperFunctions...)

	return b
}

// scanLeadingComments checks comments before the first statement for
// @jsx / @jsxFrag overrides.
func scanLeadingComments(root *ts.Node, source []byte, b *Bindings) {
	for i := uint(0); i < uint(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Kind() != "comment" {
			return
		}
		text := child.Utf8Text(source)
		if m := jsxPragmaRe.FindStringSubmatch(text); m != nil && validPragma.MatchString(m[1]) {
			b.Pragma = m[1]
		}
		if m := jsxFragRe.FindStringSubmatch(text); m != nil {
			b.Fragment = m[1]
		}
	}
}

// hasReactImport reports whether any import statement sources the
// "react" module.
func hasReactImport(root *ts.Node, source []byte) bool {
	for i := uint(0); i < uint(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Kind() != "import_statement" {
			continue
		}
		src := child.ChildByFieldName("source")
		if src == nil {
			continue
		}
		spec := strings.Trim(src.Utf8Text(source), `"'`)
		if spec == "react" {
			return true
		}
	}
	return false
}

// IsWrapperCallee reports whether a callee source string names a
// recognized component wrapper. Bare property names always match;
// qualified forms match when the wrapper declares an object.
func (b Bindings) IsWrapperCallee(callee string) bool {
	if callee == "" {
		return false
	}
	for _, w := range b.wrappers {
		if callee == w.Property {
			return true
		}
		if w.Object != "" && callee == w.Object+"."+w.Property {
			return true
		}
	}
	return false
}

// IsCreateClassCallee reports whether callee names the ES5 component
// factory (createReactClass or pragma.createClass).
func (b Bindings) IsCreateClassCallee(callee string) bool {
	return callee == "createReactClass" || callee == b.Pragma+".createClass"
}

// IsComponentBase reports whether a heritage name refers to the
// component base class: Component/PureComponent, bare or qualified by
// the pragma.
func (b Bindings) IsComponentBase(name string) bool {
	switch name {
	case "Component", "PureComponent",
		b.Pragma + ".Component", b.Pragma + ".PureComponent":
		return true
	}
	return false
}
