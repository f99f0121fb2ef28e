package synth

import "math"

// softLimit compresses the excess above threshold by ratio and caps
// the magnitude at ceiling. Negative inputs mirror.
func softLimit(x, threshold, ratio, ceiling float64) float64 {
	a := math.Abs(x)
	if a <= threshold {
		return x
	}
	return math.Copysign(math.Min(threshold+(a-threshold)*ratio, ceiling), x)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
