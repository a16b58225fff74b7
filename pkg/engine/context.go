package engine

import (
	"log/slog"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/jsxray/jsxray/pkg/jsast"
	"github.com/jsxray/jsxray/pkg/pragma"
	"github.com/jsxray/jsxray/pkg/report"
	"github.com/jsxray/jsxray/pkg/rsversion"
	"github.com/jsxray/jsxray/pkg/scope"
)

// Meta carries rule metadata used when rendering diagnostics.
type Meta struct {
	Description string
	Severity    report.Severity
}

// Rule is the consumer rule contract: called once per run to produce
// the visitor set that is merged into the engine's own walk. Rules may
// call Registry.Get/Set/List freely and report diagnostics through the
// context.
type Rule interface {
	Name() string
	Meta() Meta
	Create(ctx *Context) *jsast.Visitors
}

// Context is the per-run environment handed to trackers and the
// consumer rule. One Context serves exactly one (file, rule) pair and
// is garbage after the walk completes.
type Context struct {
	Path   string
	Source []byte
	Root   *ts.Node

	Registry *Registry
	Scopes   *scope.Tree
	Pragma   pragma.Bindings
	Settings pragma.Settings
	Version  *rsversion.Gate
	Logger   *slog.Logger

	rule      Rule
	collector *report.Collector
}

// NewContext assembles a run context. The registry is created fresh;
// scope tree, pragma bindings and version gate are resolved here when
// not supplied by the caller.
func NewContext(root *ts.Node, source []byte, path string, settings pragma.Settings, logger *slog.Logger, collector *report.Collector) *Context {
	if logger == nil {
		logger = slog.Default()
	}
	bindings := pragma.Resolve(root, source, settings)
	return &Context{
		Path:      path,
		Source:    source,
		Root:      root,
		Registry:  NewRegistry(logger),
		Scopes:    scope.Analyze(root, source),
		Pragma:    bindings,
		Settings:  settings,
		Version:   rsversion.New(settings, bindings, logger),
		Logger:    logger,
		collector: collector,
	}
}

// Report emits a diagnostic at node on behalf of the current rule.
func (c *Context) Report(node *ts.Node, message string) {
	if c.collector == nil || node == nil {
		return
	}
	name := ""
	severity := report.SeverityWarning
	if c.rule != nil {
		name = c.rule.Name()
		if s := c.rule.Meta().Severity; s != "" {
			severity = s
		}
	}
	c.collector.Add(report.Issue{
		Rule:     name,
		Severity: severity,
		Message:  message,
		Path:     c.Path,
		Start:    jsast.StartPosition(node),
		End:      jsast.EndPosition(node),
	})
}

// Text returns the raw source for node.
func (c *Context) Text(node *ts.Node) string {
	if node == nil {
		return ""
	}
	return node.Utf8Text(c.Source)
}

// MarkUsed flags a variable as used so unused-variable style
// diagnostics stay quiet about names the engine consumed.
func (c *Context) MarkUsed(name string, at *ts.Node) {
	if c.Scopes != nil {
		c.Scopes.MarkUsed(name, at)
	}
}

// Detect runs the merged single-pass walk for one rule: detection, the
// three satellite fact passes, and the rule's own visitors all observe
// every node in one traversal; the rule reads finalized state from its
// program-exit observer.
func Detect(ctx *Context, rule Rule) {
	ctx.rule = rule

	vis := jsast.NewVisitors()

	d := &detector{ctx: ctx}
	d.register(vis)

	newUsedPropsTracker(ctx).register(vis)
	newDeclaredPropsTracker(ctx).register(vis)
	newDefaultPropsTracker(ctx).register(vis)

	vis.Merge(rule.Create(ctx))

	jsast.Walk(ctx.Root, vis)
}
