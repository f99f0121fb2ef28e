package synth

import "math"

// Saturator is a single-stage tanh waveshaper for tape-style
// coloration. Drive and output gain are set by the orchestrator.
type Saturator struct {
	drive      float64
	outputGain float64
}

func (s *Saturator) InitAudio(Params) {
	s.drive = 1.5
	s.outputGain = 0.7
}

func (s *Saturator) Process(x float64) float64 {
	return math.Tanh(x*s.drive) * s.outputGain
}
