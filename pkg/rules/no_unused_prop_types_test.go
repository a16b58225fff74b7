package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoUnusedPropTypesReportsUnread(t *testing.T) {
	issues := lintSource(t, NoUnusedPropTypes{}, "unused.jsx", `
function Foo(props) { return <div>{props.a}</div>; }
Foo.propTypes = {
  a: PropTypes.string,
  b: PropTypes.number
};
`)

	assert.Equal(t, []string{"'b' PropType is defined but prop is never used"}, messages(issues))
}

func TestNoUnusedPropTypesAllRead(t *testing.T) {
	issues := lintSource(t, NoUnusedPropTypes{}, "used.jsx", `
function Foo(props) { return <div>{props.a}</div>; }
Foo.propTypes = { a: PropTypes.string };
`)
	assert.Empty(t, issues)
}

func TestNoUnusedPropTypesDeepReadCoversParent(t *testing.T) {
	issues := lintSource(t, NoUnusedPropTypes{}, "deep.jsx", `
function Foo(props) { return <div>{props.user.name}</div>; }
Foo.propTypes = {
  user: PropTypes.shape({ name: PropTypes.string })
};
`)
	assert.Empty(t, issues)
}

func TestNoUnusedPropTypesWholeObjectReadCoversShape(t *testing.T) {
	issues := lintSource(t, NoUnusedPropTypes{}, "whole.jsx", `
function Foo(props) { return <div>{render(props.user)}</div>; }
Foo.propTypes = {
  user: PropTypes.shape({ name: PropTypes.string })
};
`)
	assert.Empty(t, issues, "reading the enclosing object consumes its shape keys")
}

func TestNoUnusedPropTypesSkipsWithSCU(t *testing.T) {
	issues := lintSource(t, NoUnusedPropTypes{}, "scu.jsx", `
class Foo extends React.Component {
  static propTypes = { a: PropTypes.string };
  shouldComponentUpdate() { return true; }
  render() { return <div/>; }
}
`)
	assert.Empty(t, issues)
}

func TestNoUnusedPropTypesSkipsIgnoredComponent(t *testing.T) {
	issues := lintSource(t, NoUnusedPropTypes{}, "ignored.jsx", `
function Foo({...rest}) { return <div/>; }
Foo.propTypes = { a: PropTypes.string };
`)
	assert.Empty(t, issues)
}
