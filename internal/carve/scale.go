package carve

import (
	"errors"
	"fmt"
)

// ErrDegenerateRange is returned when an input array has no spread to
// rescale (all values equal), which would divide by zero.
var ErrDegenerateRange = errors.New("carve: degenerate value range")

// MinMaxScale linearly remaps values so that the observed minimum maps
// to min and the observed maximum maps to max. The input slice is not
// modified.
func MinMaxScale(values []float64, min, max float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("carve: no values to scale")
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return nil, fmt.Errorf("%w: all %d values equal %g", ErrDegenerateRange, len(values), lo)
	}

	scale := (max - min) / (hi - lo)
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = min + (v-lo)*scale
	}
	return out, nil
}
