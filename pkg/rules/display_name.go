package rules

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/jsxray/jsxray/pkg/engine"
	"github.com/jsxray/jsxray/pkg/jsast"
	"github.com/jsxray/jsxray/pkg/report"
)

// DisplayName reports components whose name cannot be determined: no
// binding or declaration name and no displayName declaration. Anonymous
// components render as <Unknown> in devtools and stack traces.
type DisplayName struct{}

func (DisplayName) Name() string { return "display-name" }

func (DisplayName) Meta() engine.Meta {
	return engine.Meta{
		Description: "Disallow missing displayName in a component definition",
		Severity:    report.SeverityWarning,
	}
}

func (DisplayName) Create(ctx *engine.Context) *jsast.Visitors {
	vis := jsast.NewVisitors()
	vis.OnExit("program", func(*ts.Node) {
		for _, comp := range ctx.Registry.List() {
			if comp.HasDisplayName || comp.Name != "" {
				continue
			}
			ctx.Report(comp.Node, "Component definition is missing display name")
		}
	})
	return vis
}
