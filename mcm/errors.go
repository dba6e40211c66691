package mcm

import "errors"

// Sentinel errors reported by the model. Returned errors wrap these with
// context; match them with errors.Is.
var (
	// ErrInvalidInput reports malformed parameters: a non-positive bin
	// count, a degenerate value range, an out-of-range observation, a
	// non-square matrix, or inconsistent bin edges.
	ErrInvalidInput = errors.New("mcm: invalid input")

	// ErrNoCoverage reports a forecast distribution whose probability mass
	// cannot cover the full sampling range.
	ErrNoCoverage = errors.New("mcm: no probability coverage")
)
