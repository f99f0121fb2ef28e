package synth

import (
	"log"
	"math"
	"sync"
	"sync/atomic"
)

// Handle is the shared entry point to a single Engine: the simulation
// thread pushes features and cell snapshots through it, the render
// thread pulls samples. The render path never blocks; when the lock is
// contended it substitutes silence for the frame. Master volume is
// lock-free so a UI thread can move it at any time.
type Handle struct {
	mu     sync.Mutex
	engine *Engine
	volume atomic.Uint64 // float64 bits, clamped [0,2]
}

func NewHandle(e *Engine) *Handle {
	h := &Handle{engine: e}
	h.SetMasterVolume(0.7)
	return h
}

// UpdateFeatures replaces the engine's feature vector. May block
// briefly behind the render thread; feature pushes are cheap and the
// update thread has no latency budget.
func (h *Handle) UpdateFeatures(f FeatureVector) {
	h.mu.Lock()
	h.engine.UpdateFeatures(f)
	h.mu.Unlock()
}

// UpdateCellData feeds a live-cell snapshot to the spatial aggregator.
// Skipped on contention; the next snapshot supersedes it anyway.
func (h *Handle) UpdateCellData(cells []Cell, cameraX, cameraY, viewportSize float64) {
	if !h.mu.TryLock() {
		return
	}
	h.engine.UpdateCellData(cells, cameraX, cameraY, viewportSize)
	h.mu.Unlock()
}

// GenerateStereoSample renders one frame, or silence when the update
// thread holds the lock.
func (h *Handle) GenerateStereoSample() (left, right float64) {
	if !h.mu.TryLock() {
		return 0, 0
	}
	left, right = h.engine.GenerateStereoSample()
	h.mu.Unlock()
	vol := h.MasterVolume()
	return left * vol, right * vol
}

// GenerateSamples fills buf under a single lock acquisition. buf is
// zeroed when the lock is contended.
func (h *Handle) GenerateSamples(buf [][2]float64) {
	if !h.mu.TryLock() {
		for i := range buf {
			buf[i] = [2]float64{}
		}
		return
	}
	vol := h.MasterVolume()
	for i := range buf {
		l, r := h.engine.GenerateStereoSample()
		buf[i] = [2]float64{l * vol, r * vol}
	}
	h.mu.Unlock()
}

// SetMasterVolume clamps to [0,2]; values above 1 are the intentional
// overdrive region.
func (h *Handle) SetMasterVolume(v float64) {
	v = clamp(v, 0, 2)
	h.volume.Store(math.Float64bits(v))
	if v > 1 {
		log.Printf("master volume %.0f%% (overdrive)", v*100)
	}
}

func (h *Handle) MasterVolume() float64 {
	return math.Float64frombits(h.volume.Load())
}

// SetSynthesisMix sets the synth/sample blend, clamped to [0,1].
// Skipped on contention.
func (h *Handle) SetSynthesisMix(mix float64) {
	if !h.mu.TryLock() {
		return
	}
	h.engine.SetSynthesisMix(mix)
	h.mu.Unlock()
}

// ScaleRoot reports the current scale root for an external rhythm
// generator, or ok=false when the engine is busy rendering.
func (h *Handle) ScaleRoot() (root float64, ok bool) {
	if !h.mu.TryLock() {
		return 0, false
	}
	root = h.engine.ScaleRoot()
	h.mu.Unlock()
	return root, true
}
