package engine3D

import (
	"orbitscene/internal/engine3D/shader"
	"orbitscene/internal/pipeline"
	"orbitscene/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// bloomChain is the GPU side of the glow: a bright-pass target, a
// horizontal/vertical ping-pong pair per mip and a composite target.
type bloomChain struct {
	highPass  shader.Pass
	blur      [pipeline.MipLevels]shader.Pass
	composite shader.Pass

	bright    *rl.RenderTexture2D
	mips      [pipeline.MipLevels][2]*rl.RenderTexture2D
	composed  *rl.RenderTexture2D
	params    pipeline.BloomParams
	hasParams bool
}

func newBloomChain(programs *shader.Programs) *bloomChain {
	b := &bloomChain{
		highPass:  shader.SetupPass(programs.HighPass, "highpass", nil, nil, nil),
		composite: shader.SetupPass(programs.Composite, "composite", nil, nil, nil),
	}
	for i := range b.blur {
		weights := pipeline.GaussianWeights(pipeline.KernelRadii[i])
		b.blur[i] = shader.SetupPass(programs.Blur[i], "blur", nil, shader.Constants{"Weights": toFloat32s(weights)}, nil)
	}
	return b
}

// MipSize is the size of bloom level i for a w×h buffer: half the buffer at
// level 0, halving again per level, never below one pixel.
func MipSize(w, h int32, level int) (int32, int32) {
	mw, mh := (w+1)/2, (h+1)/2
	for i := 0; i < level; i++ {
		mw, mh = (mw+1)/2, (mh+1)/2
	}
	return max(mw, 1), max(mh, 1)
}

func (b *bloomChain) resize(w, h int32) {
	b.unloadTargets()

	bw, bh := MipSize(w, h, 0)
	b.bright = loadTarget(bw, bh)
	b.composed = loadTarget(bw, bh)
	for i := range b.mips {
		mw, mh := MipSize(w, h, i)
		b.mips[i][0] = loadTarget(mw, mh)
		b.mips[i][1] = loadTarget(mw, mh)
	}
	utils.Debug("Bloom: %d levels from %dx%d", pipeline.MipLevels, bw, bh)
}

func loadTarget(w, h int32) *rl.RenderTexture2D {
	rt := rl.LoadRenderTexture(w, h)
	rl.SetTextureFilter(rt.Texture, rl.FilterBilinear)
	rl.SetTextureWrap(rt.Texture, rl.TextureWrapClamp)
	return &rt
}

func (b *bloomChain) ready() bool {
	if b.bright == nil || b.bright.ID == 0 || b.composed == nil || b.composed.ID == 0 {
		return false
	}
	for i := range b.mips {
		if b.mips[i][0] == nil || b.mips[i][0].ID == 0 || b.mips[i][1] == nil || b.mips[i][1].ID == 0 {
			return false
		}
	}
	return true
}

// setParams refreshes the uniforms that depend on the bloom parameters.
func (b *bloomChain) setParams(p pipeline.BloomParams) {
	if b.hasParams && b.params == p {
		return
	}
	b.params, b.hasParams = p, true

	b.highPass.Constants = shader.Constants{
		"Threshold":   {float32(p.Threshold)},
		"SmoothWidth": {float32(pipeline.HighPassSmoothWidth)},
	}
	shader.UpdatePassUniforms(&b.highPass)

	factors := make([]float32, pipeline.MipLevels)
	for i := range factors {
		factors[i] = float32(p.LevelWeight(i))
	}
	b.composite.Constants = shader.Constants{"Strength": {float32(p.Strength)}}
	b.composite.Arrays = shader.Constants{"Factors": factors}
	shader.UpdatePassUniforms(&b.composite)
}

// apply runs high pass, the blur mips and the composite.
func (b *bloomChain) apply(src *rl.Texture2D, p pipeline.BloomParams) {
	b.setParams(p)

	draw(&b.highPass, src, b.bright)

	input := &b.bright.Texture
	for i := range b.blur {
		pass := &b.blur[i]
		shader.SetDirection(pass, 1, 0)
		draw(pass, input, b.mips[i][0])

		shader.SetDirection(pass, 0, 1)
		draw(pass, &b.mips[i][0].Texture, b.mips[i][1])

		input = &b.mips[i][1].Texture
	}

	b.composite.Textures = []*rl.Texture2D{nil}
	for i := 1; i < pipeline.MipLevels; i++ {
		b.composite.Textures = append(b.composite.Textures, &b.mips[i][1].Texture)
	}
	draw(&b.composite, &b.mips[0][1].Texture, b.composed)
}

func (b *bloomChain) result() *rl.Texture2D {
	return &b.composed.Texture
}

// draw renders the render texture src through pass into target, stretching
// to the target size. Render textures are stored upside down, so the source
// rectangle is flipped. Texel offsets step in target pixels.
func draw(pass *shader.Pass, src *rl.Texture2D, target *rl.RenderTexture2D) {
	rl.BeginTextureMode(*target)
	rl.ClearBackground(rl.Black)
	rl.BeginShaderMode(pass.Shader)

	shader.ApplyPass(pass, src, target.Texture.Width, target.Texture.Height)

	srcRec := rl.NewRectangle(0, 0, float32(src.Width), -float32(src.Height))
	dstRec := rl.NewRectangle(0, 0, float32(target.Texture.Width), float32(target.Texture.Height))
	rl.DrawTexturePro(*src, srcRec, dstRec, rl.NewVector2(0, 0), 0, rl.White)

	rl.EndShaderMode()
	rl.EndTextureMode()
}

func (b *bloomChain) unloadTargets() {
	for _, rt := range []*rl.RenderTexture2D{b.bright, b.composed} {
		if rt != nil {
			rl.UnloadRenderTexture(*rt)
		}
	}
	b.bright, b.composed = nil, nil
	for i := range b.mips {
		for j := range b.mips[i] {
			if b.mips[i][j] != nil {
				rl.UnloadRenderTexture(*b.mips[i][j])
				b.mips[i][j] = nil
			}
		}
	}
}

func toFloat32s(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}
