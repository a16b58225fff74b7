package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequireDefaultPropsMissingDefault(t *testing.T) {
	issues := lintSource(t, RequireDefaultProps{}, "missing.jsx", `
function Foo(props) { return <div>{props.a}</div>; }
Foo.propTypes = { a: PropTypes.string };
`)

	assert.Equal(t, []string{
		`propType "a" is not required, but has no corresponding defaultProps declaration`,
	}, messages(issues))
}

func TestRequireDefaultPropsSatisfied(t *testing.T) {
	issues := lintSource(t, RequireDefaultProps{}, "satisfied.jsx", `
function Foo(props) { return <div>{props.a}</div>; }
Foo.propTypes = { a: PropTypes.string };
Foo.defaultProps = { a: 1 };
`)
	assert.Empty(t, issues)
}

func TestRequireDefaultPropsRequiredNeedsNoDefault(t *testing.T) {
	issues := lintSource(t, RequireDefaultProps{}, "required.jsx", `
function Foo(props) { return <div>{props.a}</div>; }
Foo.propTypes = { a: PropTypes.string.isRequired };
`)
	assert.Empty(t, issues)
}

func TestRequireDefaultPropsNestedShapeKeysSkipped(t *testing.T) {
	issues := lintSource(t, RequireDefaultProps{}, "nested.jsx", `
function Foo(props) { return <div>{props.user.name}</div>; }
Foo.propTypes = {
  user: PropTypes.shape({ name: PropTypes.string }).isRequired
};
`)
	assert.Empty(t, issues, "nested shape keys default through their parent")
}

func TestRequireDefaultPropsParameterDefaultCounts(t *testing.T) {
	issues := lintSource(t, RequireDefaultProps{}, "paramdefault.jsx", `
function Foo({a = 1}) { return <div>{a}</div>; }
Foo.propTypes = { a: PropTypes.number };
`)
	assert.Empty(t, issues)
}

func TestRequireDefaultPropsUnresolvedDefaultsSkip(t *testing.T) {
	issues := lintSource(t, RequireDefaultProps{}, "unresolved.jsx", `
function Foo(props) { return <div>{props.a}</div>; }
Foo.propTypes = { a: PropTypes.string };
Foo.defaultProps = computeDefaults();
`)
	assert.Empty(t, issues)
}
