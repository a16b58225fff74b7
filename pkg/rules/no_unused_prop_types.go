package rules

import (
	"fmt"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/jsxray/jsxray/pkg/engine"
	"github.com/jsxray/jsxray/pkg/jsast"
	"github.com/jsxray/jsxray/pkg/report"
)

// NoUnusedPropTypes reports declared props that are never read.
// Exhaustiveness can only be judged when prop usage is fully known, so
// components flagged as ignore (spread or computed access) are skipped,
// as are components implementing shouldComponentUpdate, which commonly
// read props through the method's own parameter patterns dynamically.
type NoUnusedPropTypes struct{}

func (NoUnusedPropTypes) Name() string { return "no-unused-prop-types" }

func (NoUnusedPropTypes) Meta() engine.Meta {
	return engine.Meta{
		Description: "Disallow definitions of unused propTypes",
		Severity:    report.SeverityWarning,
	}
}

func (NoUnusedPropTypes) Create(ctx *engine.Context) *jsast.Visitors {
	vis := jsast.NewVisitors()
	vis.OnExit("program", func(*ts.Node) {
		for _, comp := range ctx.Registry.List() {
			if comp.IgnorePropsValidation || comp.HasSCU {
				continue
			}
			exact, prefixes := usedPathSets(comp.UsedProps)
			for full, decl := range comp.DeclaredProps {
				if usageCovers(full, exact, prefixes) {
					continue
				}
				ctx.Report(decl.Node, fmt.Sprintf("'%s' PropType is defined but prop is never used", full))
			}
		}
	})
	return vis
}

// usedPathSets indexes the used facts: exact holds every full dotted
// path read, prefixes additionally holds every intermediate step.
func usedPathSets(used []engine.UsedProp) (exact, prefixes map[string]bool) {
	exact = make(map[string]bool, len(used))
	prefixes = make(map[string]bool, len(used))
	for _, p := range used {
		exact[strings.Join(p.AllNames, ".")] = true
		for k := 1; k <= len(p.AllNames); k++ {
			prefixes[strings.Join(p.AllNames[:k], ".")] = true
		}
	}
	return exact, prefixes
}

// usageCovers reports whether a declared path was consumed: read
// directly, read through a deeper access, or subsumed by a read of an
// enclosing object.
func usageCovers(full string, exact, prefixes map[string]bool) bool {
	if prefixes[full] {
		return true
	}
	for i := len(full) - 1; i > 0; i-- {
		if full[i] != '.' {
			continue
		}
		if exact[full[:i]] {
			return true
		}
	}
	return false
}
