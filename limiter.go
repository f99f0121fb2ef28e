package synth

import "math"

// AdaptiveLimiter tracks a slow exponential peak estimate and nudges
// master gain and compression ratio toward safe values, then applies
// two soft-limit stages with an absolute output ceiling of 0.95.
// Gain and ratio are smoothed, never stepped.
type AdaptiveLimiter struct {
	peak  float64
	gain  float64
	ratio float64
}

func (l *AdaptiveLimiter) InitAudio(Params) {
	l.peak = 0
	l.gain = 1
	l.ratio = 1
}

func (l *AdaptiveLimiter) Process(x float64) float64 {
	l.peak = l.peak*0.9995 + math.Abs(x)*0.0005

	if l.peak > 0.8 {
		l.ratio = math.Min(l.ratio*0.999+0.3*0.001, 0.8)
		l.gain = math.Max(l.gain*0.9999+0.7*0.0001, 0.4)
	} else if l.peak < 0.3 {
		l.ratio = math.Max(l.ratio*0.999+1.0*0.001, 0.3)
		l.gain = math.Min(l.gain*0.9999+1.0*0.0001, 1.2)
	}

	y := x * l.gain
	y = softLimit(y, 0.7, l.ratio, math.Inf(1))
	return softLimit(y, 0.85, 0.1, 0.95)
}
