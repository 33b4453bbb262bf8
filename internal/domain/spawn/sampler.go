// Package spawn draws the random quantities of the simulation: square sizes,
// spawn positions and per-tick drift.
package spawn

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/okian/boxshot/internal/domain/model"
)

// Drift constants. Each tick an entity moves by (u+DriftBiasX)*DriftStep
// horizontally and (v+DriftBiasY)*DriftStep vertically, u and v uniform in
// [0, 1): a mean of -1.25 units left and +10 units down per tick.
const (
	DriftStep  = 5.0
	DriftBiasX = -0.75
	DriftBiasY = 1.5
)

// Sampler produces the random values used by the spawn and motion tasks.
// It is not safe for concurrent use.
type Sampler struct {
	size   distuv.Uniform
	x      distuv.Uniform
	y      distuv.Uniform
	driftX distuv.Uniform
	driftY distuv.Uniform
}

// NewSampler creates a sampler for the given viewport. All draws share src,
// so a fixed seed replays the same game.
func NewSampler(vp model.Viewport, src rand.Source) *Sampler {
	return &Sampler{
		size:   distuv.Uniform{Min: model.MinSize, Max: model.MaxSize, Src: src},
		x:      distuv.Uniform{Min: 0, Max: vp.Width, Src: src},
		y:      distuv.Uniform{Min: 0, Max: vp.Height, Src: src},
		driftX: distuv.Uniform{Min: DriftBiasX, Max: DriftBiasX + 1, Src: src},
		driftY: distuv.Uniform{Min: DriftBiasY, Max: DriftBiasY + 1, Src: src},
	}
}

// NewSource returns a PCG source for seed.
func NewSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
}

// Size draws a side length in [MinSize, MaxSize).
func (s *Sampler) Size() float64 {
	return s.size.Rand()
}

// Position draws a point uniformly inside the viewport.
func (s *Sampler) Position() model.Point {
	return model.Point{X: s.x.Rand(), Y: s.y.Rand()}
}

// Drift draws one tick of motion.
func (s *Sampler) Drift() model.Point {
	return model.Point{
		X: s.driftX.Rand() * DriftStep,
		Y: s.driftY.Rand() * DriftStep,
	}
}
