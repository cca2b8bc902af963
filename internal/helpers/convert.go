// Package helpers provides small utility functions for numeric clamping
// and text normalization.
//
// These helpers are used throughout opsdocs where values cross trust
// boundaries (config, query parameters, markdown source) and need to be
// forced into a valid range or shape.
package helpers

// clampInt restricts v to the range [minVal, maxVal].
// Used internally for int-based clamping.
func clampInt(v, minVal, maxVal int) int {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// ClampInt restricts v to the range [lowerLimit, upperLimit].
func ClampInt(v, lowerLimit, upperLimit int) int {
	return clampInt(v, lowerLimit, upperLimit)
}
