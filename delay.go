package synth

// delayLine is a fixed-length circular buffer. read taps the oldest
// sample; write stores at the current position and advances.
// Invariant: i < len(buf).
type delayLine struct {
	buf []float64
	i   int
}

func newDelayLine(n int) delayLine {
	return delayLine{buf: make([]float64, n)}
}

func (d *delayLine) read() float64 { return d.buf[d.i] }

func (d *delayLine) write(x float64) {
	d.buf[d.i] = x
	d.i = (d.i + 1) % len(d.buf)
}
