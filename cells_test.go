package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellAggregatorDirect(t *testing.T) {
	var a CellAggregator

	// A dense 3×3 block in the top-left region of a 64-unit viewport
	// centered on the origin.
	var cells []Cell
	for x := int32(-30); x < -27; x++ {
		for y := int32(-30); y < -27; y++ {
			cells = append(cells, Cell{x, y})
		}
	}
	a.Update(cells, 0, 0, 64)
	r := a.Regions()

	assert.InDelta(t, 9.0/maxCellsPerRegion, r[0].Density, 1e-9)
	assert.Greater(t, r[0].Activity, 0.0)
	for i := 1; i < 16; i++ {
		assert.Zero(t, r[i], "region %d should be empty", i)
	}
}

func TestCellAggregatorDiscardsOutOfView(t *testing.T) {
	var a CellAggregator
	a.Update([]Cell{{1000, 1000}, {-1000, 0}}, 0, 0, 64)
	assert.Equal(t, RegionMatrix{}, a.Regions())
}

func TestCellAggregatorSampledBounded(t *testing.T) {
	var a CellAggregator

	// 800 cells crammed into one region forces the sampled path.
	cells := make([]Cell, 0, 800)
	for i := int32(0); i < 800; i++ {
		cells = append(cells, Cell{X: -32 + i%16, Y: -32 + (i/16)%16})
	}
	require.Greater(t, len(cells), directCellLimit)

	a.Update(cells, 0, 0, 64)

	for i, n := range a.sampled {
		assert.LessOrEqual(t, n, maxCellsPerRegion, "region %d inspected too many cells", i)
	}
	r := a.Regions()
	// A region at its sampling cap reports full density.
	assert.InDelta(t, 1.0, r[0].Density, 1e-9)
	assert.LessOrEqual(t, r[0].Activity, 1.0)
	assert.LessOrEqual(t, r[0].Complexity, 1.0)
}

func TestCellAggregatorReplacesWholesale(t *testing.T) {
	var a CellAggregator
	a.Update([]Cell{{-30, -30}, {-30, -29}}, 0, 0, 64)
	first := a.Regions()
	a.Update(nil, 0, 0, 64)
	assert.Equal(t, RegionMatrix{}, a.Regions())
	assert.NotEqual(t, RegionMatrix{}, first, "returned matrix is a copy, not a view")
}

func TestLocalIntensity(t *testing.T) {
	cells := []Cell{{0, 0}, {1, 0}, {0, 1}, {10, 10}}
	got := localIntensity(Cell{0, 0}, cells)
	// Three cells inside the 3×3 neighborhood, out of nine slots.
	assert.InDelta(t, 3.0/9.0, got, 1e-9)
}

func BenchmarkAggregatorSampled(b *testing.B) {
	var a CellAggregator
	cells := make([]Cell, 2000)
	for i := range cells {
		cells[i] = Cell{X: int32(i%60) - 30, Y: int32(i/60) - 30}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.Update(cells, 0, 0, 64)
	}
}
