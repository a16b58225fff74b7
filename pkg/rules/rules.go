// Package rules contains the built-in lint rules. Each rule implements
// the engine's consumer contract: it is handed a run context once per
// file, returns the visitors it wants merged into the single walk, and
// reads finalized component state from its program-exit observer.
package rules

import (
	"sort"

	"github.com/jsxray/jsxray/pkg/engine"
)

// All returns every built-in rule sorted by name.
func All() []engine.Rule {
	rules := []engine.Rule{
		DisplayName{},
		NoMultiComp{},
		NoThisInSFC{},
		NoUnusedPropTypes{},
		PropTypes{},
		RequireDefaultProps{},
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Name() < rules[j].Name() })
	return rules
}

// ByName finds a built-in rule by its name.
func ByName(name string) (engine.Rule, bool) {
	for _, r := range All() {
		if r.Name() == name {
			return r, true
		}
	}
	return nil, false
}
