package shader

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ApplyPass sets the precomputed uniforms and binds the pass textures. Slot 0
// is the texture being drawn unless mainTexture is nil. Texel offsets are in
// units of the targetWidth×targetHeight surface being drawn into.
func ApplyPass(pass *Pass, mainTexture *rl.Texture2D, targetWidth, targetHeight int32) {
	shader := pass.Shader
	parameters := &pass.Parameters

	for _, uniform := range pass.Uniforms {
		if uniform.Count > 1 {
			rl.SetShaderValueV(shader, uniform.Location, uniform.Values, uniform.Type, uniform.Count)
		} else {
			rl.SetShaderValue(shader, uniform.Location, uniform.Values, uniform.Type)
		}
	}

	if parameters.TexelSize != -1 {
		texel := TexelSize(targetWidth, targetHeight)
		rl.SetShaderValue(shader, parameters.TexelSize, texel[:], rl.ShaderUniformVec2)
	}

	for i := 0; i < MaxTextures; i++ {
		var texture *rl.Texture2D

		if i < len(pass.Textures) {
			texture = pass.Textures[i]
		}
		if i == 0 && mainTexture != nil {
			texture = mainTexture
		}

		// unbound slots sample black
		if texture == nil && i > 0 && parameters.TextureSamplers[i] != -1 {
			if BlackTexture == nil {
				InitDefaults()
			}
			texture = BlackTexture
		}

		if texture == nil {
			continue
		}

		if parameters.TextureResolutions[i] != -1 {
			w, h := float32(texture.Width), float32(texture.Height)
			rl.SetShaderValue(shader, parameters.TextureResolutions[i], []float32{w, h, w, h}, rl.ShaderUniformVec4)
		}

		// slot 0 is bound by the draw call itself
		if i > 0 && parameters.TextureSamplers[i] != -1 {
			rl.SetShaderValueTexture(shader, parameters.TextureSamplers[i], *texture)
		}
	}
}

// SetDirection sets the blur axis of a separable blur pass.
func SetDirection(pass *Pass, x, y float32) {
	if pass.Parameters.Direction != -1 {
		rl.SetShaderValue(pass.Shader, pass.Parameters.Direction, []float32{x, y}, rl.ShaderUniformVec2)
	}
}

// SetVec3 sets a vec3 uniform looked up by name each call. Used for values
// that change every frame.
func SetVec3(shader rl.Shader, name string, x, y, z float32) {
	if loc := rl.GetShaderLocation(shader, name); loc != -1 {
		rl.SetShaderValue(shader, loc, []float32{x, y, z}, rl.ShaderUniformVec3)
	}
}

// TexelSize is the size of one pixel of a width×height surface in texture
// coordinates.
func TexelSize(width, height int32) [2]float32 {
	return [2]float32{1 / float32(max(width, 1)), 1 / float32(max(height, 1))}
}
