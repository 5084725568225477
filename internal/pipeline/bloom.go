package pipeline

import "math"

// BloomParams configures the glow pass. Brightness below Threshold does not
// glow, Strength scales the glow and Radius (0..1) spreads it toward the
// coarser blur levels.
type BloomParams struct {
	Threshold float64
	Strength  float64
	Radius    float64
}

// DefaultBloom is the fixed bloom setup of the scene. The tuning values also
// list an exposure of 0.5, which nothing applies.
var DefaultBloom = BloomParams{
	Threshold: 0,
	Strength:  2.5,
	Radius:    0.5,
}

// The glow is built from a chain of progressively half-sized blurred copies.
const (
	MipLevels = 5

	// HighPassSmoothWidth softens the luminance cut at Threshold.
	HighPassSmoothWidth = 0.01
)

var (
	// KernelRadii is the gaussian radius used at each mip level.
	KernelRadii = [MipLevels]int{3, 5, 7, 9, 11}

	// MipFactors weights each level before the radius adjustment.
	MipFactors = [MipLevels]float64{1.0, 0.8, 0.6, 0.4, 0.2}
)

// LevelWeight is the contribution of mip level i for the given radius.
func (p BloomParams) LevelWeight(i int) float64 {
	f := MipFactors[i]
	return f + ((1.2-f)-f)*p.Radius
}

// Luminance is the luma the high pass measures, with Rec. 601 weights.
func Luminance(r, g, b float64) float64 {
	return 0.299*r + 0.587*g + 0.114*b
}

// HighPass returns how much of a pixel with luminance lum passes into the
// glow: 0 below Threshold, 1 above Threshold+HighPassSmoothWidth, smooth in
// between.
func (p BloomParams) HighPass(lum float64) float64 {
	return smoothstep(p.Threshold, p.Threshold+HighPassSmoothWidth, lum)
}

func smoothstep(edge0, edge1, x float64) float64 {
	t := (x - edge0) / (edge1 - edge0)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

// GaussianWeights returns the normalized one-sided gaussian coefficients for
// a kernel radius, sigma = radius, index 0 being the center tap.
func GaussianWeights(radius int) []float64 {
	sigma := float64(radius)
	weights := make([]float64, radius)
	sum := 0.0
	for i := range weights {
		x := float64(i)
		w := 0.39894 * math.Exp(-0.5*x*x/(sigma*sigma)) / sigma
		weights[i] = w
		if i == 0 {
			sum += w
		} else {
			sum += 2 * w
		}
	}
	for i := range weights {
		weights[i] /= sum
	}
	return weights
}
