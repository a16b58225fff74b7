package util

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetOptimalPoolSize(t *testing.T) {
	size := GetOptimalPoolSize()

	assert.GreaterOrEqual(t, size, 4)
	assert.LessOrEqual(t, size, 32)

	expected := runtime.NumCPU() * 2
	if expected < 4 {
		expected = 4
	}
	if expected > 32 {
		expected = 32
	}
	assert.Equal(t, expected, size)
}

func TestGetOptimalPoolSizeWithOverride(t *testing.T) {
	assert.Equal(t, 7, GetOptimalPoolSizeWithOverride(7))
	assert.Equal(t, GetOptimalPoolSize(), GetOptimalPoolSizeWithOverride(0))
	assert.Equal(t, GetOptimalPoolSize(), GetOptimalPoolSizeWithOverride(-1))
}
