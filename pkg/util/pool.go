package util

import "runtime"

// GetOptimalPoolSize sizes worker and parser pools from the host CPU
// count. Twice the core count keeps cores busy while goroutines block
// in CGO during tree-sitter parsing; the bounds keep small machines
// parallel and big machines from hoarding parser memory. Parser pools
// and lint worker pools must agree on this value so workers never
// stall waiting for an available parser.
func GetOptimalPoolSize() int {
	return clamp(runtime.NumCPU()*2, 4, 32)
}

// GetOptimalPoolSizeWithOverride honors an explicit worker count when
// override is positive, otherwise sizes from the host.
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
