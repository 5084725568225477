package shader

import (
	"fmt"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// MaxTextures is the number of sampler slots a pass can bind.
const MaxTextures = 5

// Constants maps uniform names, without the g_ prefix, to values. In a pass's
// Constants one to four values set a float or a vector; in its Arrays any
// number of values set a float array.
type Constants map[string][]float32

// Parameters holds the uniform locations shared by the post passes.
type Parameters struct {
	TexelSize          int32
	Direction          int32
	TextureSamplers    [MaxTextures]int32
	TextureResolutions [MaxTextures]int32
}

// PrecomputedUniform is a constant resolved to its location once.
type PrecomputedUniform struct {
	Location int32
	Type     rl.ShaderUniformDataType
	Values   []float32
	Count    int32
}

// Pass is one shader invocation with its bound textures and constants.
type Pass struct {
	Name       string
	Shader     rl.Shader
	Textures   []*rl.Texture2D
	Parameters Parameters
	Constants  Constants
	Arrays     Constants
	Uniforms   []PrecomputedUniform
}

// ResolveShaderLocations queries a shader for all uniform locations needed for rendering.
func ResolveShaderLocations(shader rl.Shader) Parameters {
	parameters := Parameters{
		TexelSize: rl.GetShaderLocation(shader, "g_TexelSize"),
		Direction: rl.GetShaderLocation(shader, "g_Direction"),
	}

	for i := 0; i < MaxTextures; i++ {
		parameters.TextureResolutions[i] = rl.GetShaderLocation(shader, fmt.Sprintf("g_Texture%dResolution", i))
		parameters.TextureSamplers[i] = rl.GetShaderLocation(shader, fmt.Sprintf("g_Texture%d", i))

		// g_Texture0 is renamed to raylib's texture0 by the preprocessor
		if i == 0 && parameters.TextureSamplers[i] == -1 {
			parameters.TextureSamplers[i] = rl.GetShaderLocation(shader, "texture0")
		}
	}

	return parameters
}

// SetupPass initializes a shader pass with resolved locations and precomputed uniforms.
func SetupPass(shader rl.Shader, name string, constants, arrays Constants, textures []*rl.Texture2D) Pass {
	pass := Pass{
		Name:       name,
		Shader:     shader,
		Textures:   textures,
		Parameters: ResolveShaderLocations(shader),
		Constants:  constants,
		Arrays:     arrays,
	}

	UpdatePassUniforms(&pass)

	return pass
}

// UpdatePassUniforms rebuilds the precomputed uniforms list from the Constants
// and Arrays maps. Call this after modifying either at runtime.
func UpdatePassUniforms(pass *Pass) {
	pass.Uniforms = pass.Uniforms[:0]
	pass.Uniforms = appendUniforms(pass.Uniforms, pass.Shader, pass.Constants, false)
	pass.Uniforms = appendUniforms(pass.Uniforms, pass.Shader, pass.Arrays, true)
}

func appendUniforms(dst []PrecomputedUniform, shader rl.Shader, values Constants, array bool) []PrecomputedUniform {
	for _, k := range sortedKeys(values) {
		v := values[k]
		if len(v) == 0 || (!array && len(v) > 4) {
			continue
		}

		loc := int32(-1)
		for _, candidate := range UniformNames(k, array) {
			loc = rl.GetShaderLocation(shader, candidate)
			if loc != -1 {
				break
			}
		}
		if loc == -1 {
			continue
		}

		uType, count := UniformLayout(len(v), array)
		dst = append(dst, PrecomputedUniform{
			Location: loc,
			Type:     uType,
			Values:   v,
			Count:    count,
		})
	}
	return dst
}

func sortedKeys(values Constants) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UniformNames lists the GLSL names tried for a constant. Arrays are also
// looked up by their first element, which some drivers require.
func UniformNames(key string, array bool) []string {
	names := []string{"g_" + key, key}
	if array {
		names = append(names, "g_"+key+"[0]")
	}
	return names
}

// UniformLayout maps a value count to the raylib uniform type and the
// element count passed to the driver.
func UniformLayout(n int, array bool) (rl.ShaderUniformDataType, int32) {
	if array {
		return rl.ShaderUniformFloat, int32(n)
	}
	switch n {
	case 2:
		return rl.ShaderUniformVec2, 1
	case 3:
		return rl.ShaderUniformVec3, 1
	case 4:
		return rl.ShaderUniformVec4, 1
	default:
		return rl.ShaderUniformFloat, 1
	}
}
