package synth

import "math"

// evolutionState is the set of independently paced phases that keep
// the soundscape moving even when the feature vector is frozen: a
// ~30 s evolution phase, a ~2 s micro-variation timer, per-oscillator
// harmonic drift, and a slow walk through the ambient scales.
type evolutionState struct {
	Params     Params
	phase      float64 // [0,1), ~30 s period
	microTimer float64 // [0,1), ~2 s period

	patternMemory      [16]float64 // ring of recent complexity scores
	memoryPos          int
	memorySum          float64
	temporalComplexity float64

	harmonicDrift  [4]float64 // clamped to [0.3, 2]
	scaleEvolution float64    // [0,4)
}

func (e *evolutionState) InitAudio(p Params) {
	e.Params = p
	e.phase = 0
	e.microTimer = 0
	e.patternMemory = [16]float64{}
	e.memoryPos = 0
	e.memorySum = 0
	e.temporalComplexity = 0
	e.harmonicDrift = [4]float64{1, 1, 1, 1}
	e.scaleEvolution = 0
}

// advance steps all phases by one sample, pushes the given pattern
// complexity into the ring buffer, and reports whether the
// micro-variation timer just crossed below the ambient-trigger window.
func (e *evolutionState) advance(complexity float64) (ambientWindow bool) {
	sr := e.Params.SampleRate

	e.phase += 1 / (sr * 30)
	if e.phase >= 1 {
		e.phase -= 1
	}

	prev := e.microTimer
	e.microTimer += 1 / (sr * 2)
	if e.microTimer >= 1 {
		e.microTimer -= 1
	}
	ambientWindow = e.microTimer < 0.1 && prev >= 0.1

	e.memorySum += complexity - e.patternMemory[e.memoryPos]
	e.patternMemory[e.memoryPos] = complexity
	e.memoryPos = (e.memoryPos + 1) % len(e.patternMemory)
	e.temporalComplexity = e.memorySum / float64(len(e.patternMemory))

	for i := range e.harmonicDrift {
		speed := 1 / (sr * (10 + float64(i)*5))
		amount := math.Sin(e.phase*2*math.Pi*float64(i+1)) * 0.1
		e.harmonicDrift[i] = clamp(e.harmonicDrift[i]+speed*amount, 0.3, 2)
	}

	drift := 1 / (sr * 20)
	e.scaleEvolution += drift * (1 + e.temporalComplexity*0.5)
	if e.scaleEvolution >= 4 {
		e.scaleEvolution -= 4
	}

	return ambientWindow
}

// patternComplexity scores the current feature vector with a small
// phase-locked ripple so the score keeps moving under frozen input.
func (e *evolutionState) patternComplexity(f FeatureVector) float64 {
	base := f.Activity*0.3 + f.Chaos*0.4 + f.Symmetry*0.2 + f.ClusterCount*0.1
	ripple := math.Sin(e.phase*4*math.Pi) * 0.05
	return clamp(base+ripple, 0, 1)
}
