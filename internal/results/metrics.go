// internal/results/metrics.go
package results

import (
	"math"
	"slices"
)

// quantile returns the q-quantile (0..1) of values using linear interpolation.
// The input slice is not reordered.
func quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	cp := slices.Clone(values)
	slices.Sort(cp)
	if q <= 0 {
		return cp[0]
	}
	if q >= 1 {
		return cp[len(cp)-1]
	}
	pos := q * float64(len(cp)-1)
	l := int(math.Floor(pos))
	r := int(math.Ceil(pos))
	if l == r {
		return cp[l]
	}
	frac := pos - float64(l)
	return cp[l]*(1-frac) + cp[r]*frac
}

// mean divides a summed duration by its sample count. ok is false when there
// are no samples, so callers never report a made-up zero.
func mean(sum float64, n int) (avg float64, ok bool) {
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
