package finalize

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// NormalizeMinMax maps values linearly onto [0, 255]. When every value is
// equal (including the empty case) the result is all zero.
func NormalizeMinMax(values []float64) []uint8 {
	out := make([]uint8, len(values))
	if len(values) == 0 {
		return out
	}
	lo, hi := floats.Min(values), floats.Max(values)
	if !(hi > lo) {
		return out
	}
	span := hi - lo
	for i, v := range values {
		out[i] = clamp8(math.Round((v - lo) * 255 / span))
	}
	return out
}
