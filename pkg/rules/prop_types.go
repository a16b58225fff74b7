package rules

import (
	"fmt"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/jsxray/jsxray/pkg/engine"
	"github.com/jsxray/jsxray/pkg/jsast"
	"github.com/jsxray/jsxray/pkg/report"
)

// PropTypes reports prop reads that have no matching declaration in
// the component's declared shape. Components with unresolved
// declarations or a disabled-exhaustiveness flag are skipped entirely
// rather than half-checked.
type PropTypes struct{}

func (PropTypes) Name() string { return "prop-types" }

func (PropTypes) Meta() engine.Meta {
	return engine.Meta{
		Description: "Disallow missing props validation in a component definition",
		Severity:    report.SeverityError,
	}
}

func (PropTypes) Create(ctx *engine.Context) *jsast.Visitors {
	vis := jsast.NewVisitors()
	vis.OnExit("program", func(*ts.Node) {
		for _, comp := range ctx.Registry.List() {
			if comp.IgnorePropsValidation || comp.DeclaredUnresolved {
				continue
			}
			for _, used := range comp.UsedProps {
				if used.Computed {
					continue
				}
				if declaredCovers(comp.DeclaredProps, used.AllNames) {
					continue
				}
				ctx.Report(used.Node, fmt.Sprintf("'%s' is missing in props validation",
					strings.Join(used.AllNames, ".")))
			}
		}
	})
	return vis
}

// declaredCovers reports whether a used prop path is satisfied by the
// declared shape. Every prefix of the path must be declared; a declared
// prefix with no nested declarations is an opaque validator and covers
// everything beneath it.
func declaredCovers(declared map[string]engine.DeclaredProp, path []string) bool {
	if len(path) == 0 {
		return true
	}
	for k := 1; k <= len(path); k++ {
		prefix := strings.Join(path[:k], ".")
		if _, ok := declared[prefix]; !ok {
			return false
		}
		if k == len(path) {
			return true
		}
		if !hasNestedDeclarations(declared, prefix) {
			return true
		}
	}
	return false
}

func hasNestedDeclarations(declared map[string]engine.DeclaredProp, prefix string) bool {
	dotted := prefix + "."
	for k := range declared {
		if strings.HasPrefix(k, dotted) {
			return true
		}
	}
	return false
}
