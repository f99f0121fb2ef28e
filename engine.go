package synth

import (
	"log"
	"math"
	"math/rand"
	"time"
)

// FeatureVector is the eight-float summary of simulation state pushed
// by the update thread each tick. Components are normalized to roughly
// [0,1]; Generation carries the generation counter mod 1000 over 1000.
// The engine copies it on update and never aliases caller memory.
type FeatureVector struct {
	Population     float64
	Density        float64
	Activity       float64
	ClusterCount   float64
	AvgClusterSize float64
	Symmetry       float64
	Chaos          float64
	Generation     float64
}

func (f FeatureVector) array() [8]float64 {
	return [8]float64{
		f.Population, f.Density, f.Activity, f.ClusterCount,
		f.AvgClusterSize, f.Symmetry, f.Chaos, f.Generation,
	}
}

// updateInterval is the coarse parameter-recompute cadence in samples;
// 64 samples is about 1.45 ms at 44.1 kHz.
const updateInterval = 64

// Engine composes the synthesis chain into a single stereo sample
// generator: drone and sample layers mixed, then reverb, saturation
// and adaptive limiting. It is not safe for concurrent use; wrap it in
// a Handle to share it between an update and a render thread.
type Engine struct {
	Params Params

	Drone     DroneLayer
	Samples   *SampleBank
	Modulator *Modulator
	Reverb    Reverb
	Saturator Saturator
	Limiter   AdaptiveLimiter
	Cells     CellAggregator

	features      FeatureVector
	updateCounter uint64
	evolution     evolutionState
	synthesisMix  float64
	ambientCount  uint64

	scaleNotes    [7]float64
	lastMilestone uint64
}

// NewEngine constructs an engine at the given sample rate. All buffers
// are allocated here; the render path never allocates. rng drives the
// voice micro-variation; nil seeds one from the clock.
func NewEngine(sampleRate float64, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e := &Engine{
		Samples:   NewSampleBank(rng),
		Modulator: NewModulator(),
	}
	Init(e, Params{SampleRate: sampleRate})
	e.evolution.InitAudio(e.Params)
	e.synthesisMix = 0.7
	e.scaleNotes = defaultScale
	return e
}

// UpdateFeatures replaces the last-known feature vector wholesale.
func (e *Engine) UpdateFeatures(f FeatureVector) {
	e.features = f
}

// UpdateCellData recomputes the region matrix from a live-cell
// snapshot. This is the expensive per-cell pass and must stay off the
// render path.
func (e *Engine) UpdateCellData(cells []Cell, cameraX, cameraY, viewportSize float64) {
	e.Cells.Update(cells, cameraX, cameraY, viewportSize)
}

// GenerateStereoSample renders one output frame. The right channel is
// slightly attenuated for width; this is not spatialization.
func (e *Engine) GenerateStereoSample() (left, right float64) {
	e.stepEvolution()

	if e.updateCounter%updateInterval == 0 {
		e.updateParameters()
	}
	e.updateCounter++

	drone := e.Drone.Process()
	samples := e.Samples.Process()
	mixed := drone*e.synthesisMix + samples*(1-e.synthesisMix)

	reverbed := e.Reverb.Process(mixed)
	saturated := e.Saturator.Process(reverbed)
	limited := e.Limiter.Process(saturated)

	return limited * 0.8, limited * 0.96 * 0.8
}

// stepEvolution runs once per sample: advances the evolution clock and
// applies its continuous perturbations to frequencies, harmonics,
// reverb wetness and the synthesis mix.
func (e *Engine) stepEvolution() {
	ambient := e.evolution.advance(e.evolution.patternComplexity(e.features))

	phaseSin := math.Sin(e.evolution.phase * 2 * math.Pi)
	microSin := math.Sin(e.evolution.microTimer * 8 * math.Pi)

	for i := range e.Drone.oscillators {
		o := &e.Drone.oscillators[i]
		drift := e.evolution.harmonicDrift[i%4]
		micro := 1 + microSin*0.002*float64(i+1)
		slow := 1 + phaseSin*0.008
		o.freq = math.Max(e.Drone.baseFreqs[i]*drift*micro*slow, 1)

		for h := range o.harmonics {
			wobble := math.Sin(e.evolution.phase*float64(h+1)*0.7*2*math.Pi) * 0.1
			o.harmonics[h] = clamp(o.harmonics[h]*(1+wobble), 0.1, 1)
		}
	}

	wetDrift := math.Cos(e.evolution.phase*3*math.Pi) * 0.05
	e.Reverb.wet = clamp(e.Reverb.wet+wetDrift, 0.1, 0.8)

	if ambient && e.evolution.temporalComplexity > 0.3 {
		e.triggerAmbient()
	}

	baseMix := 0.3 + e.evolution.temporalComplexity*0.4
	e.synthesisMix = clamp(baseMix+phaseSin*0.15, 0.1, 0.9)
}

// triggerAmbient fires a lute, a low bell, or a two-note harmony from
// the evolved modal scale, cycling the variant across triggers. Runs
// at most once per micro-variation cycle, and only while the recent
// pattern complexity is high enough.
func (e *Engine) triggerAmbient() {
	scaleIdx := int(math.Mod(e.evolution.scaleEvolution+e.evolution.temporalComplexity, 4))
	notes := ambientScales[scaleIdx]

	noteIdx := int(e.evolution.phase*7) % 7
	note := notes[noteIdx] * e.evolution.harmonicDrift[noteIdx%4]
	vol := 0.2 + e.evolution.temporalComplexity*0.3

	switch e.ambientCount % 3 {
	case 0:
		e.Samples.TriggerLute(note, vol)
	case 1:
		e.Samples.TriggerBell(note*0.5, vol)
	default:
		e.Samples.TriggerLute(note, vol*0.7)
		e.Samples.TriggerLute(note*1.25, vol*0.5) // third above
	}
	e.ambientCount++
}

// updateParameters runs every updateInterval samples: derives the
// musical scale, retunes the drone, fires milestone and gated note
// triggers, and recomputes mix, wetness and saturation.
func (e *Engine) updateParameters() {
	mod := e.Modulator.Modulate(e.features.array())
	f := e.features

	mode := int((f.Symmetry+f.Chaos)*4) % 4
	rootHz := 55 * math.Exp2(f.Symmetry-0.5)
	scale := BuildScale(rootHz, mode)
	if scale != e.scaleNotes {
		log.Printf("scale root %.1f Hz, mode %d", rootHz, mode)
	}
	e.scaleNotes = scale

	// Drone fundamentals: sub-octaves of scale degrees 0, 2, 4.
	e.Drone.SetBaseFrequencies([4]float64{
		scale[0] * 0.25,
		scale[0] * 0.5,
		scale[2] * 0.5,
		scale[4] * 0.5,
	})

	// Milestone bell every 100 generations. The feature carries the
	// generation mod 1000, so once the counter wraps past 1000 no
	// further milestones fire; they mark early growth, not uptime.
	gen := uint64(f.Generation*1000 + 0.5)
	if gen/100 > e.lastMilestone/100 {
		e.Samples.TriggerBell(scale[0], 1)
		e.lastMilestone = gen
	}

	droneIntensity := f.Population * (1 + mod[0]*0.5)
	droneDarkness := (1 - f.Symmetry) * (1 + f.Chaos*0.3)
	regions := e.Cells.Regions()
	e.Drone.UpdateParameters(droneIntensity, droneDarkness, mod[0], &regions)

	// Each gate pairs a feature threshold with a cadence on the sample
	// counter so bursts of activity do not flood the voice pool.
	if f.Activity > 0.05 {
		intensity := math.Min(f.Activity*8, 1)

		if f.Activity > 0.15 && e.updateCounter%128 == 0 {
			idx := int(mod[1]*7) % 7
			note := scale[idx] * (1 + mod[1]*0.1)
			e.Samples.TriggerLute(note, intensity*0.6)
			if f.Population > 0.7 && e.updateCounter%256 == 0 {
				e.Samples.TriggerLute(note*1.25, intensity*0.4)
			}
		}
		if f.Activity > 0.25 && e.updateCounter%512 == 0 {
			idx := int(mod[2]*7) % 7
			e.Samples.TriggerLute(scale[idx]*(1+mod[2]*0.1), intensity*0.5)
		}
		if f.Chaos > 0.25 && e.updateCounter%192 == 0 {
			note := scale[int(mod[6]*7)%7]
			shift := 0.944 // semitone down
			if mod[6] > 0.5 {
				shift = 1.059 // semitone up
			}
			e.Samples.TriggerLute(note*shift, intensity*0.4)
		}
		if f.Density > 0.6 && e.updateCounter%256 == 0 {
			e.Samples.TriggerLute(scale[0]*0.5, intensity*0.7)
		}
		if f.ClusterCount > 0.8 && f.Symmetry > 0.3 {
			e.Samples.TriggerLute(scale[6]*2, intensity*0.6)
		}
	}

	genF := f.Generation * 1000
	if math.Mod(genF, 60) < 1 && mod[2] > 0.4 {
		bellScale := [7]float64{130.81, 146.83, 164.81, 174.61, 196, 220, 246.94}
		note := bellScale[int(mod[3]*7)%7] * (1 + f.Symmetry*0.2)
		e.Samples.TriggerBell(note, 0.4+f.Activity*0.3)
	}
	if f.Activity > 0.2 && f.Symmetry > 0.3 && e.updateCounter%128 == 0 {
		high := [4]float64{220, 246.94, 277.18, 311.13}
		note := high[int(f.Activity*4)%4] * (1 + f.Population*0.2)
		e.Samples.TriggerBell(note, f.Activity*0.5)
	}
	if f.Density > 0.4 && f.AvgClusterSize > 0.5 && e.updateCounter%256 == 0 {
		deep := [4]float64{65.41, 73.42, 82.41, 98}
		e.Samples.TriggerBell(deep[int(f.Density*4)%4]*(1+mod[3]*0.3), f.Density*8)
	}
	if f.Chaos > 0.4 && mod[4] > 0.6 && e.updateCounter%192 == 0 {
		cluster := [4]float64{138.59, 155.56, 185, 207.65}
		e.Samples.TriggerBell(cluster[int(f.Chaos*4)%4]*(0.99+f.Chaos*0.02), f.Chaos*0.6)
	}
	if f.Symmetry > 0.7 && math.Mod(genF, 80) < 1 {
		arp := [3]float64{164.81, 196, 246.94}
		for i, freq := range arp {
			e.Samples.TriggerBell(freq*(1+mod[5]*0.1), (f.Symmetry+float64(i)*0.05)*0.4)
		}
	}

	activityFactor := math.Min(f.Activity*5, 1)
	e.synthesisMix = clamp(0.3+activityFactor*0.4+f.Chaos*0.6+mod[7]*0.4, 0, 1)

	e.Reverb.SetWet(0.2 + (1-f.Density)*0.3 + f.Activity*0.2)

	intensity := f.Population + f.Activity*2
	e.Saturator.drive = 1.2 + intensity*0.8
	e.Saturator.outputGain = 0.6 + mod[4]*0.2
}

// ScaleRoot returns the current scale's root frequency in Hz. External
// rhythm generators lock their sub-bass to this.
func (e *Engine) ScaleRoot() float64 { return e.scaleNotes[0] }

// ScaleNotes returns the current seven-note scale.
func (e *Engine) ScaleNotes() [7]float64 { return e.scaleNotes }

// SetSynthesisMix nudges the synth/sample blend, clamped to [0,1]. The
// orchestrator's next recompute may move it again; the setter is an
// immediate nudge, not a permanent override.
func (e *Engine) SetSynthesisMix(mix float64) {
	e.synthesisMix = clamp(mix, 0, 1)
}
