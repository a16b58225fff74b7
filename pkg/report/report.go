// Package report defines the diagnostic model shared by all rules and
// the collectors/renderers the CLI uses.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/jsxray/jsxray/pkg/jsast"
)

// Severity is the diagnostic severity level.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one diagnostic emitted by a rule at a source location.
type Issue struct {
	Rule     string         `json:"rule"`
	Severity Severity       `json:"severity"`
	Message  string         `json:"message"`
	Path     string         `json:"path"`
	Start    jsast.Position `json:"start"`
	End      jsast.Position `json:"end"`
}

// Collector accumulates issues across files and rule runs. Safe for
// concurrent use by lint workers.
type Collector struct {
	mu     sync.Mutex
	issues []Issue
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add appends an issue.
func (c *Collector) Add(issue Issue) {
	c.mu.Lock()
	c.issues = append(c.issues, issue)
	c.mu.Unlock()
}

// Issues returns the collected issues in deterministic order:
// path, then line, then column, then rule name.
func (c *Collector) Issues() []Issue {
	c.mu.Lock()
	out := make([]Issue, len(c.issues))
	copy(out, c.issues)
	c.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Start.Line != b.Start.Line {
			return a.Start.Line < b.Start.Line
		}
		if a.Start.Column != b.Start.Column {
			return a.Start.Column < b.Start.Column
		}
		return a.Rule < b.Rule
	})
	return out
}

// Len returns the number of collected issues.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.issues)
}

// WriteText renders issues one per line in file:line:col format.
func WriteText(w io.Writer, issues []Issue) {
	for _, issue := range issues {
		fmt.Fprintf(w, "%s:%d:%d: %s: %s (%s)\n",
			issue.Path, issue.Start.Line, issue.Start.Column,
			issue.Severity, issue.Message, issue.Rule)
	}
}

// WriteJSON renders issues as a JSON array.
func WriteJSON(w io.Writer, issues []Issue) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if issues == nil {
		issues = []Issue{}
	}
	return enc.Encode(issues)
}
