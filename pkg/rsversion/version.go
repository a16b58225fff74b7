// Package rsversion gates version-dependent rule behavior on the
// configured React version. Consumer rules ask "is the target at least
// X" and get latest-version semantics when no usable version is
// configured.
package rsversion

import (
	"log/slog"

	goversion "github.com/hashicorp/go-version"

	"github.com/jsxray/jsxray/pkg/pragma"
)

// Gate answers version comparisons for one lint run.
type Gate struct {
	target *goversion.Version
	logger *slog.Logger
	warned bool
}

// New resolves the target version from settings. "detect" uses the
// presence of a react import as the signal, falling back to
// DefaultVersion; a malformed version warns once and then behaves as
// latest for the remainder of the run.
func New(settings pragma.Settings, bindings pragma.Bindings, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Gate{logger: logger}

	raw := settings.Version
	if raw == "detect" {
		// Import presence alone carries no version; use the default.
		raw = settings.DefaultVersion
	}
	if raw == "" {
		raw = settings.DefaultVersion
	}
	if raw == "" {
		return g
	}

	v, err := goversion.NewVersion(raw)
	if err != nil {
		g.warn(raw)
		return g
	}
	g.target = v
	return g
}

func (g *Gate) warn(raw string) {
	if g.warned {
		return
	}
	g.warned = true
	g.logger.Warn("malformed react version setting, assuming latest",
		"version", raw)
}

// AtLeast reports whether the target version is >= v. With no resolved
// target the gate assumes latest semantics and returns true. A
// malformed v is a configuration error on the rule side and also warns
// once, then returns true.
func (g *Gate) AtLeast(v string) bool {
	if g.target == nil {
		return true
	}
	want, err := goversion.NewVersion(v)
	if err != nil {
		g.warn(v)
		return true
	}
	return g.target.GreaterThanOrEqual(want)
}

// Resolved reports whether a concrete target version is known.
func (g *Gate) Resolved() bool {
	return g.target != nil
}
