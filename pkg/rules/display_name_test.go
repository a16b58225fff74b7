package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayNameAnonymousDefaultExport(t *testing.T) {
	issues := lintSource(t, DisplayName{}, "anon.jsx", `export default () => <div/>;`)

	require.Len(t, issues, 1)
	assert.Equal(t, "Component definition is missing display name", issues[0].Message)
}

func TestDisplayNameNamedComponent(t *testing.T) {
	issues := lintSource(t, DisplayName{}, "named.jsx", `const Foo = () => <div/>;`)
	assert.Empty(t, issues)
}

func TestDisplayNameExplicitDeclaration(t *testing.T) {
	issues := lintSource(t, DisplayName{}, "explicit.jsx", `
export default createReactClass({
  displayName: 'Widget',
  render: function() { return <div/>; }
});
`)
	assert.Empty(t, issues)
}

func TestDisplayNameAnonymousFactory(t *testing.T) {
	issues := lintSource(t, DisplayName{}, "factory.jsx", `
export default createReactClass({
  render: function() { return <div/>; }
});
`)
	require.Len(t, issues, 1)
}
