package rules

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsxray/jsxray/pkg/engine"
	"github.com/jsxray/jsxray/pkg/parser"
	"github.com/jsxray/jsxray/pkg/pragma"
	"github.com/jsxray/jsxray/pkg/report"
)

// lintSource runs one rule over one source string and returns the
// collected issues in deterministic order.
func lintSource(t *testing.T, rule engine.Rule, filename, source string) []report.Issue {
	t.Helper()
	pm := parser.NewManager(nil)
	t.Cleanup(func() { pm.Close() })

	tree, err := pm.ParseFile([]byte(source), filename)
	require.NoError(t, err)
	t.Cleanup(tree.Close)

	collector := report.NewCollector()
	ctx := engine.NewContext(tree.RootNode(), []byte(source), filename, pragma.DefaultSettings(), nil, collector)
	engine.Detect(ctx, rule)
	return collector.Issues()
}

func messages(issues []report.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Message)
	}
	return out
}

func TestAllRulesSortedAndNamed(t *testing.T) {
	rules := All()
	require.Len(t, rules, 6)

	names := make([]string, 0, len(rules))
	for _, r := range rules {
		assert.NotEmpty(t, r.Name())
		assert.NotEmpty(t, r.Meta().Description)
		names = append(names, r.Name())
	}
	assert.True(t, sort.StringsAreSorted(names))
}

func TestByName(t *testing.T) {
	rule, ok := ByName("prop-types")
	require.True(t, ok)
	assert.Equal(t, "prop-types", rule.Name())

	_, ok = ByName("no-such-rule")
	assert.False(t, ok)
}
