package synth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDroneBounded(t *testing.T) {
	var d DroneLayer
	Init(&d, Params{SampleRate: 44100})
	for i := 0; i < 44100; i++ {
		x := d.Process()
		if math.IsNaN(x) || math.Abs(x) > 0.85 {
			t.Fatalf("sample %d out of bounds: %v", i, x)
		}
	}
}

func TestDroneAudibleAtRest(t *testing.T) {
	// Even with no parameter updates the layer must produce signal.
	var d DroneLayer
	Init(&d, Params{SampleRate: 44100})
	var energy float64
	for i := 0; i < 44100; i++ {
		x := d.Process()
		energy += x * x
	}
	assert.Greater(t, energy, 1e-4)
}

func TestDroneUpdateParametersClamps(t *testing.T) {
	var d DroneLayer
	Init(&d, Params{SampleRate: 44100})

	var regions RegionMatrix
	for i := range regions {
		regions[i] = Region{Density: 1, Activity: 1, Complexity: 1}
	}
	d.UpdateParameters(1, 1, 1, &regions)

	assert.GreaterOrEqual(t, d.filter.cutoff, 50.0)
	assert.LessOrEqual(t, d.filter.cutoff, 400.0)
	assert.GreaterOrEqual(t, d.filter.resonance, 0.1)
	assert.LessOrEqual(t, d.filter.resonance, 0.7)
	for i := range d.oscillators {
		assert.GreaterOrEqual(t, d.oscillators[i].freq, 1.0, "oscillator %d", i)
		for h, v := range d.oscillators[i].harmonics {
			assert.GreaterOrEqual(t, v, 0.05, "osc %d harmonic %d", i, h)
			assert.LessOrEqual(t, v, 1.0, "osc %d harmonic %d", i, h)
		}
	}
	for i, p := range d.patterns {
		assert.GreaterOrEqual(t, p, 0.1, "pattern %d", i)
		assert.LessOrEqual(t, p, 1.0, "pattern %d", i)
	}
}

func TestDroneRetune(t *testing.T) {
	var d DroneLayer
	Init(&d, Params{SampleRate: 44100})
	base := [4]float64{27.5, 55, 82.5, 110}
	d.SetBaseFrequencies(base)
	var regions RegionMatrix
	d.UpdateParameters(0.5, 0, 0, &regions)
	for i := range d.oscillators {
		assert.InDelta(t, base[i], d.oscillators[i].freq, base[i]*0.1+5, "oscillator %d", i)
	}
}

func BenchmarkDroneProcess(b *testing.B) {
	var d DroneLayer
	Init(&d, Params{SampleRate: 44100})
	for i := 0; i < b.N; i++ {
		d.Process()
	}
}
