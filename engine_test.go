package synth

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(seed int64) *Engine {
	return NewEngine(44100, rand.New(rand.NewSource(seed)))
}

func TestEngineStability(t *testing.T) {
	e := newTestEngine(1)
	e.UpdateFeatures(FeatureVector{
		Population: 0.8, Density: 0.7, Activity: 0.9,
		ClusterCount: 0.6, AvgClusterSize: 0.5,
		Symmetry: 0.4, Chaos: 0.9, Generation: 0.5,
	})
	for i := 0; i < 20000; i++ {
		l, r := e.GenerateStereoSample()
		if math.IsNaN(l) || math.IsNaN(r) || math.Abs(l) > 1 || math.Abs(r) > 1 {
			t.Fatalf("sample %d out of range: %v, %v", i, l, r)
		}
	}
}

func TestEngineLivenessUnderFrozenInput(t *testing.T) {
	// With an all-zero feature vector held for 30 seconds the
	// evolution clock must keep the drone audible in every window.
	e := newTestEngine(2)
	e.UpdateFeatures(FeatureVector{})
	const window = 2 * 44100
	for w := 0; w < 15; w++ {
		var energy float64
		for i := 0; i < window; i++ {
			l, _ := e.GenerateStereoSample()
			energy += l * l
		}
		assert.Greater(t, energy, 1e-4, "window %d went silent", w)
	}
}

func TestEngineMilestoneBell(t *testing.T) {
	e := newTestEngine(3)
	f := FeatureVector{
		Population: 0.8, Density: 0.7, Activity: 0.3,
		ClusterCount: 0.2, AvgClusterSize: 0.1,
		Symmetry: 0.9, Chaos: 0.1, Generation: 0.099,
	}
	e.UpdateFeatures(f)
	for i := 0; i < updateInterval; i++ {
		e.GenerateStereoSample()
	}
	require.Zero(t, e.lastMilestone, "generation 99 is not a milestone")

	f.Generation = 0.100
	e.UpdateFeatures(f)
	for i := 0; i < 2*updateInterval; i++ {
		e.GenerateStereoSample()
	}
	assert.Equal(t, uint64(100), e.lastMilestone)

	// Scale derived from the same recompute: root 55·2^0.4, mode 0.
	assert.InDelta(t, 72.57, e.ScaleRoot(), 0.2)
	notes := e.ScaleNotes()
	for i := 1; i < 7; i++ {
		assert.Greater(t, notes[i], notes[i-1])
	}
}

func TestEngineMilestoneFiresOnce(t *testing.T) {
	e := newTestEngine(4)
	f := FeatureVector{Symmetry: 0.5, Generation: 0.2}
	e.UpdateFeatures(f)
	for i := 0; i < 10*updateInterval; i++ {
		e.GenerateStereoSample()
	}
	assert.Equal(t, uint64(200), e.lastMilestone, "repeated recomputes at one generation must not re-arm")
}

func TestEngineDeterministicWithSeed(t *testing.T) {
	a := newTestEngine(7)
	b := newTestEngine(7)
	f := FeatureVector{Population: 0.5, Activity: 0.4, Chaos: 0.3, Generation: 0.05}
	a.UpdateFeatures(f)
	b.UpdateFeatures(f)
	for i := 0; i < 5000; i++ {
		al, ar := a.GenerateStereoSample()
		bl, br := b.GenerateStereoSample()
		require.Equal(t, al, bl, "left sample %d", i)
		require.Equal(t, ar, br, "right sample %d", i)
	}
}

func TestAmbientVariantsCycle(t *testing.T) {
	e := newTestEngine(8)

	// Successive triggers must walk through all three variants: a lute,
	// a low bell, then a two-note harmony.
	e.triggerAmbient()
	require.Equal(t, 1, e.Samples.ActiveVoices())
	e.triggerAmbient()
	require.Equal(t, 2, e.Samples.ActiveVoices())
	e.triggerAmbient()
	require.Equal(t, 4, e.Samples.ActiveVoices(), "harmony variant adds two voices")

	var lens []int
	for _, v := range e.Samples.voices {
		lens = append(lens, len(v.data))
	}
	// Lute buffers are 2 s, bell buffers 4 s.
	assert.Equal(t, []int{2 * 44100, 4 * 44100, 2 * 44100, 2 * 44100}, lens)
}

func TestEngineStereoWidth(t *testing.T) {
	e := newTestEngine(5)
	for i := 0; i < 1000; i++ {
		l, r := e.GenerateStereoSample()
		assert.InDelta(t, l*0.96, r, 1e-12)
	}
}

func BenchmarkGenerateStereoSample(b *testing.B) {
	e := newTestEngine(6)
	e.UpdateFeatures(FeatureVector{Population: 0.6, Activity: 0.5, Chaos: 0.4})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.GenerateStereoSample()
	}
}
