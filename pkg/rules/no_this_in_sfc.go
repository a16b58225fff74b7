package rules

import (
	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/jsxray/jsxray/pkg/engine"
	"github.com/jsxray/jsxray/pkg/jsast"
	"github.com/jsxray/jsxray/pkg/report"
)

// NoThisInSFC reports this-expressions inside function components.
// Detection demotes such components to rejected the moment a this
// access is seen, so the rule reads the full registry table, demoted
// records included, instead of the confident list.
type NoThisInSFC struct{}

func (NoThisInSFC) Name() string { return "no-this-in-sfc" }

func (NoThisInSFC) Meta() engine.Meta {
	return engine.Meta{
		Description: "Disallow this from being used in stateless functional components",
		Severity:    report.SeverityError,
	}
}

func (NoThisInSFC) Create(ctx *engine.Context) *jsast.Visitors {
	vis := jsast.NewVisitors()
	vis.OnExit("program", func(*ts.Node) {
		for _, comp := range ctx.Registry.All() {
			for _, this := range comp.ThisUsages {
				ctx.Report(this, "Stateless functional components should not use `this`")
			}
		}
	})
	return vis
}
