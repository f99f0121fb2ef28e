package synth

// Modulator maps the eight feature inputs to eight modulation scalars
// in [0,1] through a fixed 8→16→8 feed-forward pass. The weights are
// hand-authored constants biasing different hidden units toward
// different feature sub-ranges; nothing here is trained or updated.
type Modulator struct {
	inputWeights  [16][8]float64
	hiddenWeights [8][16]float64
	hiddenBias    [16]float64
	outputBias    [8]float64
}

func NewModulator() *Modulator {
	m := &Modulator{}
	for i := 0; i < 16; i++ {
		for j := 0; j < 8; j++ {
			switch i % 4 {
			case 0:
				m.inputWeights[i][j] = pick(j < 2, 0.8, 0.2)
			case 1:
				m.inputWeights[i][j] = pick(j == 2 || j == 6, 0.9, 0.1)
			case 2:
				m.inputWeights[i][j] = pick(j > 3, 0.7, 0.3)
			case 3:
				m.inputWeights[i][j] = 0.5 + (float64(i)-8)*0.1
			}
		}
		m.hiddenBias[i] = -0.5 + float64(i)/16
	}
	for i := 0; i < 8; i++ {
		for j := 0; j < 16; j++ {
			switch i {
			case 0:
				m.hiddenWeights[i][j] = pick(j < 4, 0.6, 0.2)
			case 1:
				m.hiddenWeights[i][j] = pick(j >= 4 && j < 8, 0.7, 0.1)
			case 2:
				m.hiddenWeights[i][j] = pick(j >= 8 && j < 12, 0.8, 0.2)
			case 3:
				m.hiddenWeights[i][j] = pick(j >= 12, 0.9, 0.3)
			default:
				m.hiddenWeights[i][j] = 0.4 + float64((i+j)%3)*0.2
			}
		}
	}
	return m
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}

// tanhApprox is the rational approximation x(27+x²)/(27+9x²); cheap,
// odd, and within a few percent of tanh on the range we feed it.
func tanhApprox(x float64) float64 {
	x2 := x * x
	return x * (27 + x2) / (27 + 9*x2)
}

// Modulate rescales features from [0,1] into [-1,1], runs the forward
// pass, and rescales the outputs back to [0,1]. Finite inputs always
// yield eight finite outputs.
func (m *Modulator) Modulate(features [8]float64) [8]float64 {
	var in [8]float64
	for i, f := range features {
		in[i] = clamp(f*2-1, -1, 1)
	}

	var hidden [16]float64
	for i := range hidden {
		sum := m.hiddenBias[i]
		for j, x := range in {
			sum += x * m.inputWeights[i][j]
		}
		hidden[i] = tanhApprox(sum)
	}

	var out [8]float64
	for i := range out {
		sum := m.outputBias[i]
		for j, h := range hidden {
			sum += h * m.hiddenWeights[i][j]
		}
		// tanhApprox overshoots ±1 for large sums; the contract is [0,1].
		out[i] = clamp((tanhApprox(sum)+1)/2, 0, 1)
	}
	return out
}
