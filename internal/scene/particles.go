package scene

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// ParticleField is a static point cloud. The position buffer is written once
// by NewParticleField and only read afterwards.
type ParticleField struct {
	Color Color
	Size  float64

	positions []float32
}

// NewParticleField draws count points with every component uniform in
// [-spread/2, spread/2].
func NewParticleField(rng *rand.Rand, count int, spread float64) *ParticleField {
	positions := make([]float32, 0, count*3)
	for i := 0; i < count; i++ {
		positions = append(positions,
			float32(randFloatSpread(rng, spread)),
			float32(randFloatSpread(rng, spread)),
			float32(randFloatSpread(rng, spread)),
		)
	}
	return &ParticleField{
		Color:     ParticleColor,
		Size:      ParticleSize,
		positions: positions,
	}
}

func randFloatSpread(rng *rand.Rand, spread float64) float64 {
	return spread * (0.5 - rng.Float64())
}

func (p *ParticleField) Count() int {
	return len(p.positions) / 3
}

func (p *ParticleField) At(i int) mgl64.Vec3 {
	return mgl64.Vec3{
		float64(p.positions[i*3]),
		float64(p.positions[i*3+1]),
		float64(p.positions[i*3+2]),
	}
}

// Positions returns a copy of the flat xyz buffer.
func (p *ParticleField) Positions() []float32 {
	out := make([]float32, len(p.positions))
	copy(out, p.positions)
	return out
}

// Each calls fn for every point without copying the buffer.
func (p *ParticleField) Each(fn func(i int, x, y, z float32)) {
	for i := 0; i < len(p.positions); i += 3 {
		fn(i/3, p.positions[i], p.positions[i+1], p.positions[i+2])
	}
}

// Diameter is the on-screen size in pixels of a point at the given view depth
// in a buffer height pixels tall. Points shrink with distance but never below
// one pixel.
func (p *ParticleField) Diameter(height, depth float64) float64 {
	return math.Max(p.Size*(height/2)/depth, 1)
}
