package synth

// Delay times in seconds, mutually prime-ish so the lines never echo
// in phase.
var reverbDelayTimes = [8]float64{0.023, 0.031, 0.041, 0.053, 0.067, 0.079, 0.097, 0.113}

// hadamard8 is the ±0.5 Hadamard feedback matrix. It is orthogonal, so
// feedback energy is diffused across all lines without coloring the
// decay.
var hadamard8 = [8][8]float64{
	{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5},
	{0.5, -0.5, 0.5, -0.5, 0.5, -0.5, 0.5, -0.5},
	{0.5, 0.5, -0.5, -0.5, 0.5, 0.5, -0.5, -0.5},
	{0.5, -0.5, -0.5, 0.5, 0.5, -0.5, -0.5, 0.5},
	{0.5, 0.5, 0.5, 0.5, -0.5, -0.5, -0.5, -0.5},
	{0.5, -0.5, 0.5, -0.5, -0.5, 0.5, -0.5, 0.5},
	{0.5, 0.5, -0.5, -0.5, -0.5, -0.5, 0.5, 0.5},
	{0.5, -0.5, -0.5, 0.5, -0.5, 0.5, 0.5, -0.5},
}

// Reverb is an eight-line feedback delay network with Hadamard
// cross-feedback. Output is a dry/wet blend.
type Reverb struct {
	Params Params
	lines  [8]delayLine
	wet    float64
}

func (r *Reverb) InitAudio(p Params) {
	r.Params = p
	for i, t := range reverbDelayTimes {
		r.lines[i] = newDelayLine(int(p.SampleRate * t))
	}
	r.wet = 0.3
}

func (r *Reverb) Process(dry float64) float64 {
	var outs [8]float64
	for i := range r.lines {
		outs[i] = r.lines[i].read()
	}

	wet := 0.0
	for i := range r.lines {
		fb := 0.0
		for j, y := range outs {
			fb += y * hadamard8[i][j] * 0.7
		}
		r.lines[i].write(dry + fb)
		wet += outs[i]
	}
	wet /= 8

	return dry*(1-r.wet) + wet*r.wet
}

// SetWet clamps and sets the dry/wet blend.
func (r *Reverb) SetWet(w float64) { r.wet = clamp(w, 0, 1) }
