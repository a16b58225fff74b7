package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoMultiCompReportsAfterFirst(t *testing.T) {
	issues := lintSource(t, NoMultiComp{}, "multi.jsx", `
function Foo() { return <div/>; }
function Bar() { return <p/>; }
function Baz() { return <span/>; }
`)

	require.Len(t, issues, 2)
	for _, issue := range issues {
		assert.Equal(t, "Declare only one component per file", issue.Message)
	}
	// Source order decides which definitions are surplus.
	assert.Equal(t, 3, int(issues[0].Start.Line))
	assert.Equal(t, 4, int(issues[1].Start.Line))
}

func TestNoMultiCompSingleComponent(t *testing.T) {
	issues := lintSource(t, NoMultiComp{}, "single.jsx", `function Foo() { return <div/>; }`)
	assert.Empty(t, issues)
}

func TestNoMultiCompMixedKinds(t *testing.T) {
	issues := lintSource(t, NoMultiComp{}, "mixed.jsx", `
class Foo extends React.Component {
  render() { return <div/>; }
}
const Bar = () => <p/>;
`)
	require.Len(t, issues, 1)
}
