package synth

import "math"

// A droneOscillator renders a weighted harmonic stack over a single
// wrapping phase accumulator. Invariants: freq > 0, harmonic weights
// in [0.05, 1].
type droneOscillator struct {
	phase     float64
	freq      float64
	amp       float64
	harmonics [8]float64
}

func (o *droneOscillator) advance(sampleRate float64) {
	_, o.phase = math.Modf(o.phase + o.freq/sampleRate)
}

// subBass is the two-harmonic rendering used by oscillator 0.
func (o *droneOscillator) subBass() float64 {
	return math.Sin(2*math.Pi*o.phase) + 0.3*math.Sin(4*math.Pi*o.phase)
}

// harmonicStack sums the weighted harmonic bank. patternMod scales
// harmonics above the third, so the bass pattern mostly shapes the
// upper partials.
func (o *droneOscillator) harmonicStack(patternMod float64) float64 {
	out := 0.0
	for h, w := range o.harmonics {
		s := math.Sin(2*math.Pi*o.phase*float64(h+1)) * w
		if h > 2 {
			s *= patternMod
		}
		out += s
	}
	return out
}
