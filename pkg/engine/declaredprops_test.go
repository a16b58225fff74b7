package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeclaredPropsAssignment(t *testing.T) {
	ctx := detectSource(t, "declared.jsx", `
const Foo = (props) => <div>{props.a}</div>;
Foo.propTypes = {
  a: PropTypes.string.isRequired,
  b: PropTypes.number
};
`)

	comp := listOne(t, ctx.Registry)
	require.Len(t, comp.DeclaredProps, 2)
	assert.True(t, comp.DeclaredProps["a"].IsRequired)
	assert.False(t, comp.DeclaredProps["b"].IsRequired)
	assert.False(t, comp.DeclaredUnresolved)
}

func TestDeclaredPropsShape(t *testing.T) {
	ctx := detectSource(t, "shape.jsx", `
const Foo = (props) => <div>{props.user.name}</div>;
Foo.propTypes = {
  user: PropTypes.shape({
    name: PropTypes.string.isRequired
  }).isRequired
};
`)

	comp := listOne(t, ctx.Registry)
	require.Contains(t, comp.DeclaredProps, "user")
	require.Contains(t, comp.DeclaredProps, "user.name")
	assert.True(t, comp.DeclaredProps["user"].IsRequired)
	assert.True(t, comp.DeclaredProps["user.name"].IsRequired)
	assert.Equal(t, "name", comp.DeclaredProps["user.name"].Name)
}

func TestDeclaredPropsStaticClassField(t *testing.T) {
	ctx := detectSource(t, "field.jsx", `
class Foo extends React.Component {
  static propTypes = { a: PropTypes.string };
  render() { return <div>{this.props.a}</div>; }
}
`)

	comp := listOne(t, ctx.Registry)
	require.Contains(t, comp.DeclaredProps, "a")
}

func TestDeclaredPropsFactoryKey(t *testing.T) {
	ctx := detectSource(t, "factorykey.jsx", `
var Foo = createReactClass({
  propTypes: { a: PropTypes.string },
  render: function() { return <div>{this.props.a}</div>; }
});
`)

	comp := listOne(t, ctx.Registry)
	require.Contains(t, comp.DeclaredProps, "a")
}

func TestDeclaredPropsSpreadUnresolved(t *testing.T) {
	ctx := detectSource(t, "spread.jsx", `
const Foo = (props) => <div>{props.a}</div>;
Foo.propTypes = { ...common };
`)

	comp := listOne(t, ctx.Registry)
	assert.True(t, comp.DeclaredUnresolved)
}

func TestDeclaredPropsSharedObjectBinding(t *testing.T) {
	ctx := detectSource(t, "shared.jsx", `
const shared = { a: PropTypes.string };
const Foo = (props) => <div>{props.a}</div>;
Foo.propTypes = shared;
`)

	comp := listOne(t, ctx.Registry)
	require.Contains(t, comp.DeclaredProps, "a")
	assert.False(t, comp.DeclaredUnresolved)
}

func TestDeclaredPropsDynamicValueUnresolved(t *testing.T) {
	ctx := detectSource(t, "dynamic.jsx", `
const Foo = (props) => <div>{props.a}</div>;
Foo.propTypes = buildPropTypes();
`)

	comp := listOne(t, ctx.Registry)
	assert.True(t, comp.DeclaredUnresolved)
}

func TestDeclaredPropsTypeScriptInterface(t *testing.T) {
	ctx := detectSource(t, "iface.tsx", `
interface Props {
  a: string;
  b?: number;
}
function Foo(props: Props) { return <div>{props.a}</div>; }
`)

	comp := listOne(t, ctx.Registry)
	require.Len(t, comp.DeclaredProps, 2)
	assert.True(t, comp.DeclaredProps["a"].IsRequired)
	assert.False(t, comp.DeclaredProps["b"].IsRequired)
}

func TestDeclaredPropsTypeAliasAfterComponent(t *testing.T) {
	ctx := detectSource(t, "alias.tsx", `
const Foo = (props: Props) => <div>{props.a}</div>;
type Props = { a: string };
`)

	comp := listOne(t, ctx.Registry)
	require.Contains(t, comp.DeclaredProps, "a",
		"type declarations after the component still bind at program exit")
}

func TestDeclaredPropsInlineObjectType(t *testing.T) {
	ctx := detectSource(t, "inline.tsx",
		`const Foo = (props: { a: string }) => <div>{props.a}</div>;`)

	comp := listOne(t, ctx.Registry)
	require.Contains(t, comp.DeclaredProps, "a")
}

func TestDeclaredPropsNestedObjectType(t *testing.T) {
	ctx := detectSource(t, "nestedtype.tsx", `
interface Props {
  user: { name: string };
}
function Foo(props: Props) { return <div>{props.user.name}</div>; }
`)

	comp := listOne(t, ctx.Registry)
	require.Contains(t, comp.DeclaredProps, "user")
	require.Contains(t, comp.DeclaredProps, "user.name")
}

func TestDisplayNameAssignmentFlag(t *testing.T) {
	ctx := detectSource(t, "display.jsx", `
const Foo = () => <div/>;
Foo.displayName = 'Foo';
`)

	comp := listOne(t, ctx.Registry)
	assert.True(t, comp.HasDisplayName)
}

func TestShouldComponentUpdateFlag(t *testing.T) {
	ctx := detectSource(t, "scu.jsx", `
class Foo extends React.Component {
  shouldComponentUpdate(nextProps) { return nextProps.a !== this.props.a; }
  render() { return <div>{this.props.a}</div>; }
}
`)

	comp := listOne(t, ctx.Registry)
	assert.True(t, comp.HasSCU)
}
