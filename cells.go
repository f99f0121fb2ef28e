package synth

import "math"

// Cell is one live-cell coordinate from the simulation grid.
type Cell struct {
	X, Y int32
}

// Region summarizes one spatial bucket of the viewport.
type Region struct {
	Density    float64
	Activity   float64
	Complexity float64
}

// RegionMatrix is the 4×4 grid of region summaries, row-major.
type RegionMatrix [16]Region

const (
	// Populations above this size take the bucketed, sampled path;
	// below it every cell is inspected directly.
	directCellLimit = 200
	// Per-region sampling cap on the bucketed path. Without it the
	// pairwise complexity pass is O(n²) in live cells.
	maxCellsPerRegion = 50
)

// CellAggregator downsamples raw live-cell coordinates into a
// RegionMatrix. Each update replaces the matrix wholesale; readers
// never observe a partial recompute.
type CellAggregator struct {
	regions    RegionMatrix
	totalCells int
	buckets    [16][]Cell // reused across updates
	sampled    [16]int    // cells actually inspected per region
	scratch    [][2]int32
}

// Update recomputes the region matrix from a cell snapshot. cameraX,
// cameraY and viewportSize define the visible area bucketed into the
// 4×4 grid.
func (a *CellAggregator) Update(cells []Cell, cameraX, cameraY, viewportSize float64) {
	var next RegionMatrix
	a.totalCells = len(cells)
	a.sampled = [16]int{}
	if len(cells) > directCellLimit {
		a.updateSampled(&next, cells, cameraX, cameraY, viewportSize)
	} else {
		a.updateDirect(&next, cells, cameraX, cameraY, viewportSize)
	}
	a.regions = next
}

// Regions returns the current matrix by value.
func (a *CellAggregator) Regions() RegionMatrix { return a.regions }

// TotalCells reports the size of the last snapshot.
func (a *CellAggregator) TotalCells() int { return a.totalCells }

// regionIndex buckets a cell into the 4×4 grid covering the viewport
// centered on the camera. Cells outside the viewport are discarded.
func regionIndex(c Cell, cameraX, cameraY, viewportSize float64) (int, bool) {
	regionSize := viewportSize / 4
	rx := int(math.Floor((float64(c.X) - cameraX + viewportSize/2) / regionSize))
	ry := int(math.Floor((float64(c.Y) - cameraY + viewportSize/2) / regionSize))
	if rx < 0 || rx >= 4 || ry < 0 || ry >= 4 {
		return 0, false
	}
	return ry*4 + rx, true
}

func (a *CellAggregator) updateDirect(next *RegionMatrix, cells []Cell, cameraX, cameraY, viewportSize float64) {
	for _, c := range cells {
		idx, ok := regionIndex(c, cameraX, cameraY, viewportSize)
		if !ok {
			continue
		}
		next[idx].Density++
		next[idx].Activity += localIntensity(c, cells)
		next[idx].Complexity += a.localComplexity(c, cells)
		a.sampled[idx]++
	}
	for i := range next {
		r := &next[i]
		r.Density /= maxCellsPerRegion
		n := math.Max(r.Density, 1)
		r.Activity /= n
		r.Complexity /= n
	}
}

func (a *CellAggregator) updateSampled(next *RegionMatrix, cells []Cell, cameraX, cameraY, viewportSize float64) {
	for i := range a.buckets {
		a.buckets[i] = a.buckets[i][:0]
	}
	for _, c := range cells {
		if idx, ok := regionIndex(c, cameraX, cameraY, viewportSize); ok {
			a.buckets[idx] = append(a.buckets[idx], c)
		}
	}

	for idx, bucket := range a.buckets {
		if len(bucket) == 0 {
			continue
		}
		count := len(bucket)
		step := 1
		if count > maxCellsPerRegion {
			step = count / maxCellsPerRegion
			count = maxCellsPerRegion
		}

		var intensity, complexity float64
		for i := 0; i < len(bucket) && a.sampled[idx] < count; i += step {
			intensity += localIntensity(bucket[i], bucket)
			complexity += a.localComplexity(bucket[i], bucket)
			a.sampled[idx]++
		}

		next[idx] = Region{
			Density:    float64(count) / maxCellsPerRegion,
			Activity:   intensity / float64(count),
			Complexity: complexity / float64(count),
		}
	}
}

// localIntensity is the occupied fraction of the 3×3 neighborhood
// around c.
func localIntensity(c Cell, cells []Cell) float64 {
	n := 0
	for _, o := range cells {
		dx, dy := o.X-c.X, o.Y-c.Y
		if dx*dx+dy*dy <= 9 {
			n++
		}
	}
	return math.Min(float64(n)/9, 1)
}

// localComplexity scores the regularity of the 5×5 neighborhood around
// c as the mean inverse distance over all neighbor pairs. Fewer than
// three neighbors score zero.
func (a *CellAggregator) localComplexity(c Cell, cells []Cell) float64 {
	a.scratch = a.scratch[:0]
	for _, o := range cells {
		dx, dy := o.X-c.X, o.Y-c.Y
		if dx*dx+dy*dy <= 25 {
			a.scratch = append(a.scratch, [2]int32{dx, dy})
		}
	}
	if len(a.scratch) <= 2 {
		return 0
	}
	score := 0.0
	for i, p := range a.scratch {
		for j, q := range a.scratch {
			if i == j {
				continue
			}
			dx := float64(p[0] - q[0])
			dy := float64(p[1] - q[1])
			if d := dx*dx + dy*dy; d > 0 {
				score += 1 / math.Sqrt(d)
			}
		}
	}
	return math.Min(score/float64(len(a.scratch)), 1)
}
