package synth

import "math"

// patternPeriod is how long one bass intensity slot stays active
// before the sequencer crossfades into the next, in seconds.
const patternPeriod = 4.0

// DroneLayer is the additive foundation of the soundscape: a
// two-harmonic sub-bass plus three oscillators rendering up to eight
// weighted harmonics each, shaped by a cycling bass pattern, a ~2.5 Hz
// rhythm accent, and a resonant low-pass. Each oscillator and the
// summed layer are soft limited.
type DroneLayer struct {
	Params      Params
	oscillators [4]droneOscillator
	baseFreqs   [4]float64
	modPhase    float64
	filter      resonanceFilter

	patterns      [8]float64
	pattern       int
	patternTimer  float64
	rhythmTrigger float64
}

func (d *DroneLayer) InitAudio(p Params) {
	d.Params = p
	d.filter.InitAudio(p)
	d.filter.cutoff = 200
	d.filter.resonance = 0.7

	d.baseFreqs = [4]float64{32.7, 65.4, 82.4, 98.0} // C1, C2, E2, G2
	amps := [4]float64{0.9, 0.7, 0.6, 0.5}
	for i := range d.oscillators {
		o := &d.oscillators[i]
		o.phase = 0
		o.freq = d.baseFreqs[i]
		o.amp = amps[i]
		o.harmonics = [8]float64{1, 0.8, 0.6, 0.4, 0.3, 0.2, 0.15, 0.1}
	}

	d.patterns = [8]float64{0.2, 0.5, 0.8, 0.3, 0.7, 0.4, 0.9, 0.6}
	d.pattern = 0
	d.patternTimer = 0
	d.rhythmTrigger = 0
	d.modPhase = 0
}

// Process renders one sample of the drone layer.
func (d *DroneLayer) Process() float64 {
	sr := d.Params.SampleRate

	d.patternTimer += 1 / sr
	if d.patternTimer >= patternPeriod {
		d.pattern = (d.pattern + 1) % len(d.patterns)
		d.patternTimer = 0
	}
	fade := math.Min(d.patternTimer/patternPeriod, 1)
	patternMod := d.patterns[d.pattern]*(1-fade) + d.patterns[(d.pattern+1)%len(d.patterns)]*fade

	d.rhythmTrigger += 2.5 / sr
	rhythmMod := 0.0
	if d.rhythmTrigger >= 1 {
		d.rhythmTrigger -= 1
		rhythmMod = patternMod * 0.3
	}

	out := 0.0
	for i := range d.oscillators {
		o := &d.oscillators[i]
		var x float64
		if i == 0 {
			x = o.subBass() * (1 + rhythmMod)
		} else {
			x = o.harmonicStack(patternMod)
		}
		x *= o.amp * (1 + math.Sin(2*math.Pi*d.modPhase)*0.05*patternMod)
		out += softLimit(x, 0.7, 0.2, 0.85)
		o.advance(sr)
	}

	d.modPhase += 0.2 / sr
	if d.modPhase >= 1 {
		d.modPhase -= 1
	}

	return softLimit(d.filter.Filter(out*0.15), 0.7, 0.2, 0.85)
}

// UpdateParameters derives amplitudes, frequency drift, harmonic
// distribution and filter settings from the current simulation state.
// Called from the orchestrator's coarse recompute, not per sample.
func (d *DroneLayer) UpdateParameters(population, darkness, mod float64, regions *RegionMatrix) {
	baseAmp := 0.3 + population*0.3
	brightness := 0.6 - darkness*0.5 + mod*0.3

	d.modPhase += 0.002
	breathing := (math.Sin(d.modPhase)*0.5 + 0.5) * 0.1

	var regionalActivity, regionalComplexity float64
	for _, r := range regions {
		regionalActivity += r.Density * r.Activity
		regionalComplexity += r.Complexity
	}
	regionalMod := math.Min(regionalActivity/16, 1)

	// High activity accelerates the pattern cycle slightly.
	if regionalMod > 0.5 {
		d.patternTimer += 0.5 / d.Params.SampleRate
	}
	for i := range d.patterns {
		d.patterns[i] = clamp(d.patterns[i]*0.9+regions[i%16].Complexity*0.1, 0.1, 1)
	}

	ampScale := [4]float64{0.8, 0.9, 0.7, 0.6}
	for i := range d.oscillators {
		o := &d.oscillators[i]
		o.amp = (baseAmp*ampScale[i] + regionalMod*0.2) * (1 + breathing)

		drift := regionalComplexity * 0.02
		darknessOffset := darkness * 3 * (float64(i) - 1.5)
		o.freq = math.Max(d.baseFreqs[i]*(1+drift)+darknessOffset, 1)

		for h := range o.harmonics {
			base := 1 / math.Sqrt(float64(h)+1)
			harmonicMod := brightness * (1 + mod*0.3)
			regionHM := regions[h%16].Activity
			emphasis := 1 + regionHM*0.1
			if h > 3 {
				emphasis = brightness*1.5 + regionHM*0.3
			}
			o.harmonics[h] = clamp(base*harmonicMod*emphasis, 0.05, 1)
		}
	}

	filterMod := math.Sin(mod*80)*20 + regionalMod*15
	d.filter.cutoff = clamp(100+(1-darkness)*180+mod*60+filterMod, 50, 400)
	d.filter.resonance = clamp(0.2+darkness*0.3+regionalComplexity*0.1, 0.1, 0.7)
}

// SetBaseFrequencies retunes the drone fundamentals; the orchestrator
// points them at sub-octaves of the current scale.
func (d *DroneLayer) SetBaseFrequencies(base [4]float64) {
	d.baseFreqs = base
}
