package rules

import (
	"fmt"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/jsxray/jsxray/pkg/engine"
	"github.com/jsxray/jsxray/pkg/jsast"
	"github.com/jsxray/jsxray/pkg/report"
)

// RequireDefaultProps reports optional declared props that have no
// default value. Only top-level props are checked; nested shape keys
// default through their parent.
type RequireDefaultProps struct{}

func (RequireDefaultProps) Name() string { return "require-default-props" }

func (RequireDefaultProps) Meta() engine.Meta {
	return engine.Meta{
		Description: "Enforce a defaultProps definition for every prop that is not a required prop",
		Severity:    report.SeverityWarning,
	}
}

func (RequireDefaultProps) Create(ctx *engine.Context) *jsast.Visitors {
	vis := jsast.NewVisitors()
	vis.OnExit("program", func(*ts.Node) {
		for _, comp := range ctx.Registry.List() {
			if comp.DeclaredUnresolved || comp.DefaultsUnresolved {
				continue
			}
			for full, decl := range comp.DeclaredProps {
				if decl.IsRequired || strings.Contains(full, ".") {
					continue
				}
				if _, ok := comp.DefaultProps[decl.Name]; ok {
					continue
				}
				ctx.Report(decl.Node, fmt.Sprintf(
					"propType %q is not required, but has no corresponding defaultProps declaration", decl.Name))
			}
		}
	})
	return vis
}
