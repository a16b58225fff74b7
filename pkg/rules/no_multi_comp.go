package rules

import (
	"sort"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/jsxray/jsxray/pkg/engine"
	"github.com/jsxray/jsxray/pkg/jsast"
	"github.com/jsxray/jsxray/pkg/report"
)

// NoMultiComp reports every component after the first, in source
// order, when one file defines more than one.
type NoMultiComp struct{}

func (NoMultiComp) Name() string { return "no-multi-comp" }

func (NoMultiComp) Meta() engine.Meta {
	return engine.Meta{
		Description: "Disallow multiple component definitions per file",
		Severity:    report.SeverityWarning,
	}
}

func (NoMultiComp) Create(ctx *engine.Context) *jsast.Visitors {
	vis := jsast.NewVisitors()
	vis.OnExit("program", func(*ts.Node) {
		list := ctx.Registry.List()
		if len(list) < 2 {
			return
		}
		comps := make([]*engine.Component, 0, len(list))
		for _, comp := range list {
			comps = append(comps, comp)
		}
		sort.Slice(comps, func(i, j int) bool {
			return comps[i].Node.StartByte() < comps[j].Node.StartByte()
		})
		for _, comp := range comps[1:] {
			ctx.Report(comp.Node, "Declare only one component per file")
		}
	})
	return vis
}
