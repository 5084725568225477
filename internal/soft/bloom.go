package soft

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blend"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/transform"

	"orbitscene/internal/pipeline"
)

// ApplyBloom adds the glow of src on top of it. The bright part of the frame
// is blurred at pipeline.MipLevels successively halved sizes, and the levels
// are scaled back up, weighted and summed.
func ApplyBloom(src *image.RGBA, p pipeline.BloomParams) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return src
	}

	bright := adjust.Apply(src, func(c color.RGBA) color.RGBA {
		lum := pipeline.Luminance(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255)
		return scaleColor(c, p.HighPass(lum))
	})

	var glow *image.RGBA
	level := image.Image(bright)
	mw, mh := w, h
	for i := 0; i < pipeline.MipLevels; i++ {
		mw, mh = half(mw), half(mh)
		down := transform.Resize(level, mw, mh, transform.Linear)
		blurred := blur.Gaussian(down, float64(pipeline.KernelRadii[i]))
		level = blurred

		weight := p.Strength * p.LevelWeight(i)
		up := transform.Resize(blurred, w, h, transform.Linear)
		up = adjust.Apply(up, func(c color.RGBA) color.RGBA {
			return scaleColor(c, weight)
		})
		if glow == nil {
			glow = up
		} else {
			glow = blend.Add(glow, up)
		}
	}

	return blend.Add(src, glow)
}

func half(n int) int {
	return max((n+1)/2, 1)
}

func scaleColor(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: scaleByte(c.R, f),
		G: scaleByte(c.G, f),
		B: scaleByte(c.B, f),
		A: c.A,
	}
}

func scaleByte(v uint8, f float64) uint8 {
	return uint8(math.Min(math.Round(float64(v)*f), 255))
}
