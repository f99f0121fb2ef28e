// Command demo plays the engine standalone, sweeping a synthetic
// feature vector and a drifting cell population so every layer gets
// exercised without the simulation attached.
package main

import (
	"log"
	"math"
	"math/rand"
	"time"

	synth "github.com/ururus/gameofdeath"
)

func main() {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	engine := synth.NewEngine(44100, rng)
	handle := synth.NewHandle(engine)

	player := synth.NewPlayer(handle)
	if err := player.Start(); err != nil {
		log.Fatal(err)
	}
	defer player.Stop()

	cells := make([]synth.Cell, 300)
	for i := range cells {
		cells[i] = synth.Cell{X: int32(rng.Intn(64) - 32), Y: int32(rng.Intn(64) - 32)}
	}

	gen := 0
	tick := time.NewTicker(50 * time.Millisecond)
	for range tick.C {
		t := float64(gen) * 0.05
		handle.UpdateFeatures(synth.FeatureVector{
			Population:     0.5 + 0.4*math.Sin(t/7),
			Density:        0.5 + 0.3*math.Sin(t/11),
			Activity:       0.3 + 0.25*math.Sin(t/5),
			ClusterCount:   0.4 + 0.3*math.Sin(t/13),
			AvgClusterSize: 0.5 + 0.2*math.Sin(t/23),
			Symmetry:       0.5 + 0.45*math.Sin(t/17),
			Chaos:          0.5 + 0.45*math.Sin(t/19),
			Generation:     float64(gen%1000) / 1000,
		})

		// Random-walk the cells so the region matrix keeps changing.
		for i := range cells {
			cells[i].X += int32(rng.Intn(3) - 1)
			cells[i].Y += int32(rng.Intn(3) - 1)
		}
		handle.UpdateCellData(cells, 0, 0, 64)

		if root, ok := handle.ScaleRoot(); ok && gen%200 == 0 {
			log.Printf("scale root %.1f Hz", root)
		}
		gen++
	}
}
