package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelatedComponentDirectBinding(t *testing.T) {
	ctx := detectSource(t, "direct.jsx", `
const Foo = () => <div/>;
Foo.propTypes = { a: PropTypes.string };
`)

	comp := listOne(t, ctx.Registry)
	assert.Equal(t, "arrow_function", comp.Node.Kind())
	require.Contains(t, comp.DeclaredProps, "a",
		"facts assigned through the binding name attach to the component node")
}

func TestRelatedComponentObjectLiteralPath(t *testing.T) {
	ctx := detectSource(t, "objpath.jsx", `
const Widgets = {
  Panel: () => <div/>
};
Widgets.Panel.propTypes = { a: PropTypes.string };
`)

	comp := listOne(t, ctx.Registry)
	assert.Equal(t, "Panel", comp.Name)
	require.Contains(t, comp.DeclaredProps, "a")
}

func TestRelatedComponentReferenceWrite(t *testing.T) {
	ctx := detectSource(t, "refwrite.jsx", `
const Foo = () => <div/>;
Foo.Bar = () => <p/>;
Foo.Bar.propTypes = { a: PropTypes.string };
`)

	comps := ctx.Registry.List()
	require.Len(t, comps, 2)
	var bar *Component
	for _, comp := range comps {
		if comp.Name == "Bar" {
			bar = comp
		}
	}
	require.NotNil(t, bar)
	require.Contains(t, bar.DeclaredProps, "a")
}

func TestRelatedComponentFunctionDeclaration(t *testing.T) {
	ctx := detectSource(t, "fndecl.jsx", `
function Foo(props) { return <div>{props.a}</div>; }
Foo.defaultProps = { a: 1 };
`)

	comp := listOne(t, ctx.Registry)
	require.Contains(t, comp.DefaultProps, "a")
}

func TestRelatedComponentUnresolvedName(t *testing.T) {
	ctx := detectSource(t, "unresolved.jsx", `
const Foo = () => <div/>;
Bar.propTypes = { a: PropTypes.string };
`)

	comp := listOne(t, ctx.Registry)
	assert.Empty(t, comp.DeclaredProps,
		"declarations on an unknown name must not attach anywhere")
}

func TestRelatedComponentClassDeclaration(t *testing.T) {
	ctx := detectSource(t, "classdecl.jsx", `
class Foo extends React.Component {
  render() { return <div>{this.props.a}</div>; }
}
Foo.propTypes = { a: PropTypes.string };
`)

	comp := listOne(t, ctx.Registry)
	require.Contains(t, comp.DeclaredProps, "a")
}
