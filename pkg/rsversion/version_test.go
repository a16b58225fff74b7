package rsversion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsxray/jsxray/pkg/pragma"
)

func gate(settings pragma.Settings) *Gate {
	return New(settings, pragma.Bindings{}, nil)
}

func TestExplicitVersion(t *testing.T) {
	g := gate(pragma.Settings{Version: "16.3.0"})

	assert.True(t, g.Resolved())
	assert.True(t, g.AtLeast("16.0.0"))
	assert.True(t, g.AtLeast("16.3.0"))
	assert.False(t, g.AtLeast("16.4.0"))
}

func TestEmptyVersionAssumesLatest(t *testing.T) {
	g := gate(pragma.Settings{})

	assert.False(t, g.Resolved())
	assert.True(t, g.AtLeast("999.0.0"))
}

func TestDetectFallsBackToDefault(t *testing.T) {
	g := gate(pragma.Settings{Version: "detect", DefaultVersion: "15.0.0"})

	assert.True(t, g.Resolved())
	assert.False(t, g.AtLeast("16.0.0"))
	assert.True(t, g.AtLeast("15.0.0"))
}

func TestDetectWithoutDefaultAssumesLatest(t *testing.T) {
	g := gate(pragma.Settings{Version: "detect"})

	assert.False(t, g.Resolved())
	assert.True(t, g.AtLeast("18.0.0"))
}

func TestMalformedVersionAssumesLatest(t *testing.T) {
	g := gate(pragma.Settings{Version: "not-a-version"})

	assert.False(t, g.Resolved())
	assert.True(t, g.AtLeast("17.0.0"))
}

func TestMalformedComparisonAssumesLatest(t *testing.T) {
	g := gate(pragma.Settings{Version: "16.0.0"})

	assert.True(t, g.AtLeast("garbage"))
}
