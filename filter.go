package synth

import "math"

// resonanceFilter is a 4-pole cascade of one-pole low-pass stages with
// a resonance feedback term between the first two stages.
type resonanceFilter struct {
	Params    Params
	state     [4]float64
	cutoff    float64
	resonance float64
}

func (f *resonanceFilter) InitAudio(p Params) {
	f.Params = p
	f.state = [4]float64{}
}

func (f *resonanceFilter) Filter(x float64) float64 {
	g := math.Min(f.cutoff*2*math.Pi/f.Params.SampleRate, 0.99)
	fb := f.resonance + f.resonance/(1-g)
	f.state[0] += g * (x - f.state[0] + fb*(f.state[0]-f.state[1]))
	f.state[1] += g * (f.state[0] - f.state[1])
	f.state[2] += g * (f.state[1] - f.state[2])
	f.state[3] += g * (f.state[2] - f.state[3])
	return f.state[3]
}
