package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsedPropsClassMemberChain(t *testing.T) {
	ctx := detectSource(t, "chain.jsx", `
class Foo extends React.Component {
  render() { return <div>{this.props.x.y}</div>; }
}
`)

	comp := listOne(t, ctx.Registry)
	require.Len(t, comp.UsedProps, 1)
	assert.Equal(t, "x", comp.UsedProps[0].Name)
	assert.Equal(t, []string{"x", "y"}, comp.UsedProps[0].AllNames)
}

func TestUsedPropsIdentifierParameter(t *testing.T) {
	ctx := detectSource(t, "param.jsx", `function Foo(props) { return <div>{props.a}</div>; }`)

	comp := listOne(t, ctx.Registry)
	assert.Equal(t, []string{"a"}, usedNames(comp))
}

func TestUsedPropsDestructuredParameter(t *testing.T) {
	ctx := detectSource(t, "destructure.jsx",
		`function Foo({a, b: renamed}) { return <div>{a}{renamed}</div>; }`)

	comp := listOne(t, ctx.Registry)
	assert.ElementsMatch(t, []string{"a", "b"}, usedNames(comp))
}

func TestUsedPropsNestedDestructuring(t *testing.T) {
	ctx := detectSource(t, "nested.jsx",
		`function Foo({user: {name}}) { return <div>{name}</div>; }`)

	comp := listOne(t, ctx.Registry)
	assert.ElementsMatch(t, []string{"user", "user.name"}, usedNames(comp))
}

func TestUsedPropsRestPatternDisablesChecks(t *testing.T) {
	ctx := detectSource(t, "rest.jsx",
		`function Foo({a, ...rest}) { return <div>{a}</div>; }`)

	comp := listOne(t, ctx.Registry)
	assert.True(t, comp.IgnorePropsValidation)
	assert.Empty(t, comp.UsedProps, "partial facts must not leak out of a spread pattern")
}

func TestUsedPropsRestPatternOnPlainFunction(t *testing.T) {
	ctx := detectSource(t, "plainrest.jsx",
		`function helper({a, ...rest}) { return a; }`)

	fn := findKind(ctx.Root, "function_declaration")
	require.NotNil(t, fn)
	comp := ctx.Registry.Get(fn)
	require.NotNil(t, comp)
	assert.True(t, comp.IgnorePropsValidation)
	assert.Empty(t, comp.UsedProps)
}

func TestUsedPropsAliasBinding(t *testing.T) {
	ctx := detectSource(t, "alias.jsx", `
function Foo(props) {
  const data = props.data;
  return <div>{data.value}</div>;
}
`)

	comp := listOne(t, ctx.Registry)
	assert.ElementsMatch(t, []string{"data", "data.value"}, usedNames(comp))
}

func TestUsedPropsDestructuredFromThisProps(t *testing.T) {
	ctx := detectSource(t, "fromthis.jsx", `
class Foo extends React.Component {
  render() {
    const {a, b} = this.props;
    return <div>{a}{b}</div>;
  }
}
`)

	comp := listOne(t, ctx.Registry)
	assert.ElementsMatch(t, []string{"a", "b"}, usedNames(comp))
}

func TestUsedPropsComputedAccess(t *testing.T) {
	ctx := detectSource(t, "computed.jsx",
		`function Foo(props) { return <div>{props[key]}</div>; }`)

	comp := listOne(t, ctx.Registry)
	assert.True(t, comp.IgnorePropsValidation)
	require.Len(t, comp.UsedProps, 1)
	assert.True(t, comp.UsedProps[0].Computed)
}

func TestUsedPropsNativePropSkipped(t *testing.T) {
	ctx := detectSource(t, "native.jsx", `
function Foo(props) {
  const owned = props.hasOwnProperty('a');
  return <div>{owned}</div>;
}
`)

	comp := listOne(t, ctx.Registry)
	assert.Empty(t, comp.UsedProps)
}

func TestUsedPropsLifecycleParameter(t *testing.T) {
	ctx := detectSource(t, "lifecycle.jsx", `
class Foo extends React.Component {
  componentDidUpdate(prevProps) {
    track(prevProps.visited);
  }
  render() { return <div/>; }
}
`)

	comp := listOne(t, ctx.Registry)
	assert.ElementsMatch(t, []string{"visited"}, usedNames(comp))
}

func TestUsedPropsFactoryLifecycleParameter(t *testing.T) {
	ctx := detectSource(t, "factorylife.jsx", `
var Foo = createReactClass({
  componentWillReceiveProps: function(nextProps) {
    track(nextProps.incoming);
  },
  render: function() { return <div/>; }
});
`)

	comp := listOne(t, ctx.Registry)
	assert.ElementsMatch(t, []string{"incoming"}, usedNames(comp))
}

func TestUsedPropsSetStateUpdater(t *testing.T) {
	ctx := detectSource(t, "updater.jsx", `
class Foo extends React.Component {
  bump() {
    this.setState((state, props) => ({next: props.count + 1}));
  }
  render() { return <div/>; }
}
`)

	comp := listOne(t, ctx.Registry)
	assert.Len(t, comp.SetStateUsages, 1)
	assert.ElementsMatch(t, []string{"count"}, usedNames(comp))
}

func TestUsedPropsWrapperArgumentStaged(t *testing.T) {
	ctx := detectSource(t, "wrapped.jsx",
		`const Foo = React.memo(({kept, dropped = 1}) => <div>{kept}{dropped}</div>);`)

	comp := listOne(t, ctx.Registry)
	assert.Equal(t, []string{"kept"}, usedNames(comp),
		"defaulted keys from the staged merge are filtered")
}

func TestUsedPropsHelperParameterNotProps(t *testing.T) {
	ctx := detectSource(t, "helperparam.jsx", `
function Foo(props) {
  const format = value => value.label;
  return <div>{format(props.item)}</div>;
}
`)

	comp := listOne(t, ctx.Registry)
	assert.ElementsMatch(t, []string{"item"}, usedNames(comp),
		"reads through a helper's own parameter are not prop facts")
}

func TestUsedPropsOutsideComponentIgnored(t *testing.T) {
	ctx := detectSource(t, "outside.jsx", `
const value = this.props.a;
function Foo() { return <div/>; }
`)

	comp := listOne(t, ctx.Registry)
	assert.Empty(t, comp.UsedProps)
}

func TestUsedPropsRestBehindKeyDefault(t *testing.T) {
	ctx := detectSource(t, "restdefault.jsx",
		`function Foo({ a: { b, ...rest } = {} }) { return <div>{b}</div>; }`)

	comp := listOne(t, ctx.Registry)
	assert.True(t, comp.IgnorePropsValidation)
	assert.Empty(t, comp.UsedProps,
		"a rest element behind a per-key default still suppresses facts")
}

func TestUsedPropsArrayPatternWithDefault(t *testing.T) {
	ctx := detectSource(t, "arraydefault.jsx",
		`function Foo({ a: [x] = [] }) { return <div>{x}</div>; }`)

	comp := listOne(t, ctx.Registry)
	assert.ElementsMatch(t, []string{"a"}, usedNames(comp))
}

func TestUsedPropsEmptyStringKeyDisablesChecks(t *testing.T) {
	ctx := detectSource(t, "emptykey.jsx",
		`function Foo({ '': x }) { return <div>{x}</div>; }`)

	comp := listOne(t, ctx.Registry)
	assert.True(t, comp.IgnorePropsValidation)
}

func TestUsedPropsWrapperComparatorNotSeeded(t *testing.T) {
	ctx := detectSource(t, "comparatorprops.jsx",
		`const Foo = React.memo(props => <div>{props.a}</div>, (prev, next) => prev.id === next.id);`)

	comp := listOne(t, ctx.Registry)
	assert.ElementsMatch(t, []string{"a"}, usedNames(comp),
		"the comparator's parameters are not props roots")
}
