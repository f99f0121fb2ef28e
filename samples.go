package synth

import (
	"math"
	"math/rand"
)

// maxVoices caps concurrent voices per bank. Triggers past the cap are
// dropped, not queued.
const maxVoices = 6

type sampleData struct {
	data     []float64
	baseFreq float64
}

// A voice plays one baked sample buffer at a pitch ratio with an
// exponentially decaying amplitude. Playback is non-interpolating.
type voice struct {
	data       []float64 // shared with the bank, read-only
	position   float64
	pitchRatio float64
	amplitude  float64
	decayRate  float64
}

// SampleBank holds procedurally baked lute and bell buffers and a
// bounded pool of playing voices. The RNG drives per-voice detune and
// velocity variation and is injected so tests can fix the seed.
type SampleBank struct {
	Params Params
	lutes  []sampleData
	bells  []sampleData
	voices []voice
	rand   *rand.Rand
}

func NewSampleBank(rng *rand.Rand) *SampleBank {
	return &SampleBank{rand: rng}
}

func (b *SampleBank) InitAudio(p Params) {
	b.Params = p
	b.lutes = b.lutes[:0]
	b.bells = b.bells[:0]
	for _, freq := range []float64{220, 293.66, 369.99, 440} {
		b.lutes = append(b.lutes, bakeLute(p.SampleRate, freq, 2))
	}
	for _, freq := range []float64{130.81, 164.81, 196, 220} {
		b.bells = append(b.bells, bakeBell(p.SampleRate, freq, 4))
	}
	b.voices = make([]voice, 0, maxVoices)
}

// bakeLute renders a plucked-string tone: four decaying harmonics
// under a fast attack and slow sustain envelope.
func bakeLute(sampleRate, freq, duration float64) sampleData {
	data := make([]float64, int(sampleRate*duration))
	for i := range data {
		t := float64(i) / sampleRate
		phase := 2 * math.Pi * freq * t
		env := math.Exp(-t*3) * math.Exp(-t*0.8)
		s := math.Sin(phase) +
			0.6*math.Sin(2*phase) +
			0.3*math.Sin(3*phase) +
			0.15*math.Sin(4*phase)
		data[i] = s * env * 0.3
	}
	return sampleData{data: data, baseFreq: freq}
}

// Inharmonic partials of a struck bell; higher partials decay faster.
var bellPartials = [5]struct{ ratio, amp float64 }{
	{1, 1}, {2.76, 0.6}, {5.40, 0.25}, {8.93, 0.12}, {13.34, 0.06},
}

func bakeBell(sampleRate, freq, duration float64) sampleData {
	data := make([]float64, int(sampleRate*duration))
	for i := range data {
		t := float64(i) / sampleRate
		s := 0.0
		for _, p := range bellPartials {
			decay := math.Exp(-t * (0.3 + p.ratio*0.1))
			s += math.Sin(2*math.Pi*freq*p.ratio*t) * p.amp * decay
		}
		attack := 1.0
		if t < 0.01 {
			attack = (t / 0.01) * (t / 0.01)
		}
		data[i] = s * attack * 0.2
	}
	return sampleData{data: data, baseFreq: freq}
}

// TriggerLute starts a plucked voice near note Hz with slight random
// detune and velocity variation. Dropped when the pool is full.
func (b *SampleBank) TriggerLute(note, velocity float64) {
	if len(b.voices) >= maxVoices {
		return
	}
	s := closestSample(b.lutes, note)
	b.voices = append(b.voices, voice{
		data:       s.data,
		pitchRatio: note / s.baseFreq * (1 + (b.rand.Float64()-0.5)*0.01),
		amplitude:  velocity * (0.6 + b.rand.Float64()*0.3) * 0.7,
		decayRate:  0.998 + b.rand.Float64()*0.002,
	})
}

// TriggerBell starts a bell voice near note Hz. Bells decay slower and
// get a slightly narrower detune than lutes.
func (b *SampleBank) TriggerBell(note, velocity float64) {
	if len(b.voices) >= maxVoices {
		return
	}
	s := closestSample(b.bells, note)
	b.voices = append(b.voices, voice{
		data:       s.data,
		pitchRatio: note / s.baseFreq * (1 + (b.rand.Float64()-0.5)*0.008),
		amplitude:  velocity * (0.5 + b.rand.Float64()*0.4) * 0.6,
		decayRate:  0.9999 + b.rand.Float64()*0.0001,
	})
}

func closestSample(samples []sampleData, freq float64) *sampleData {
	best := &samples[0]
	for i := 1; i < len(samples); i++ {
		if math.Abs(samples[i].baseFreq-freq) < math.Abs(best.baseFreq-freq) {
			best = &samples[i]
		}
	}
	return best
}

// Process sums all live voices, scales for polyphony, soft limits, and
// drops voices that ran out of sample or decayed below audibility.
func (b *SampleBank) Process() float64 {
	out := 0.0
	gain := 1 / (1 + float64(len(b.voices))*0.15)

	live := b.voices[:0]
	for i := range b.voices {
		v := &b.voices[i]
		pos := int(v.position)
		if pos >= len(v.data) {
			continue
		}
		out += v.data[pos] * v.amplitude * gain
		v.position += v.pitchRatio
		v.amplitude *= v.decayRate
		if v.amplitude > 0.001 {
			live = append(live, *v)
		}
	}
	b.voices = live

	return softLimit(out*0.25, 0.8, 0.2, 0.95)
}

// ActiveVoices reports the number of live voices.
func (b *SampleBank) ActiveVoices() int { return len(b.voices) }
