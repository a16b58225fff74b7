package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoThisInSFCReportsFunctionComponent(t *testing.T) {
	issues := lintSource(t, NoThisInSFC{}, "sfc.jsx", `
function Foo() { return <div>{this.props.a}</div>; }
`)

	require.Len(t, issues, 1)
	assert.Equal(t, "Stateless functional components should not use `this`", issues[0].Message)
}

func TestNoThisInSFCAllowsClassComponent(t *testing.T) {
	issues := lintSource(t, NoThisInSFC{}, "class.jsx", `
class Foo extends React.Component {
  render() { return <div>{this.props.a}</div>; }
}
`)
	assert.Empty(t, issues)
}

func TestNoThisInSFCIgnoresPlainHelper(t *testing.T) {
	issues := lintSource(t, NoThisInSFC{}, "helper.jsx", `
function helper() { return this.value; }
`)
	assert.Empty(t, issues)
}

func TestNoThisInSFCArrowComponent(t *testing.T) {
	issues := lintSource(t, NoThisInSFC{}, "arrow.jsx", `
const Foo = () => <div>{this.props.a}</div>;
`)
	require.Len(t, issues, 1)
}
