package shader

import (
	"fmt"
	"sort"
	"strings"

	"orbitscene/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// GLSLVersion is the header of every preprocessed source.
const GLSLVersion = "#version 330"

// PreprocessShader prepares a shader body for compilation:
// - Adding the version header
// - Injecting combo defines (sorted, so the output is stable)
// - Adding GLSL compatibility macros
func PreprocessShader(source string, combos map[string]int, name string) string {
	var sb strings.Builder
	sb.WriteString(GLSLVersion)
	sb.WriteString("\n")

	keys := make([]string, 0, len(combos))
	for k := range combos {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("#define %s %d\n", k, combos[k]))
	}

	sb.WriteString("#define saturate(x) clamp(x, 0.0, 1.0)\n")
	sb.WriteString("#define lerp mix\n")
	sb.WriteString("#define g_Texture0 texture0\n")

	for _, required := range requiredCombos(source) {
		if _, ok := combos[required]; !ok {
			utils.Warn("Shader: %s uses %s but no combo sets it", name, required)
		}
	}

	sb.WriteString(strings.TrimLeft(source, "\n"))
	return sb.String()
}

// requiredCombos lists the combo names a source depends on.
func requiredCombos(source string) []string {
	var out []string
	for _, name := range []string{"KERNEL_RADIUS", "MIP_LEVELS"} {
		if strings.Contains(source, name) {
			out = append(out, name)
		}
	}
	return out
}

// LoadShader compiles a vertex/fragment pair. A failed compile is reported
// as an error with an empty shader.
func LoadShader(name, vertex, fragment string, combos map[string]int) (rl.Shader, error) {
	utils.Debug("Shader: Preprocessing %s (Combos: %v)", name, combos)

	vSource := PreprocessShader(vertex, combos, name)
	fSource := PreprocessShader(fragment, combos, name)

	var shader rl.Shader
	var panicErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = fmt.Errorf("shader %s: compilation panic: %v", name, r)
				shader = rl.Shader{}
			}
		}()
		shader = rl.LoadShaderFromMemory(vSource, fSource)
	}()

	if panicErr != nil {
		return rl.Shader{}, panicErr
	}
	// raylib falls back to its default shader when compilation fails
	if shader.ID == 0 || shader.ID == rl.GetShaderIdDefault() {
		return rl.Shader{}, fmt.Errorf("shader %s: compilation failed", name)
	}

	utils.Info("Shader: %s - Loaded successfully (ID: %d)", name, shader.ID)
	return shader, nil
}

// Programs is the full set of shaders the renderer needs.
type Programs struct {
	Lit       rl.Shader
	Stars     rl.Shader
	HighPass  rl.Shader
	Blur      []rl.Shader
	Composite rl.Shader
	Output    rl.Shader
}

// LoadPrograms compiles every program. kernelRadii gives one blur variant
// per mip level. On error the programs loaded so far are released.
func LoadPrograms(kernelRadii []int, mipLevels int) (*Programs, error) {
	p := &Programs{}
	var err error

	if p.Lit, err = LoadShader("lit", litVertex, litFragment, nil); err != nil {
		return nil, err
	}
	if p.Stars, err = LoadShader("stars", starVertex, starFragment, nil); err != nil {
		p.Unload()
		return nil, err
	}
	if p.HighPass, err = LoadShader("highpass", postVertex, highPassFragment, nil); err != nil {
		p.Unload()
		return nil, err
	}
	for _, radius := range kernelRadii {
		blur, err := LoadShader(fmt.Sprintf("blur%d", radius), postVertex, blurFragment, map[string]int{"KERNEL_RADIUS": radius})
		if err != nil {
			p.Unload()
			return nil, err
		}
		p.Blur = append(p.Blur, blur)
	}
	if p.Composite, err = LoadShader("composite", postVertex, compositeFragment, map[string]int{"MIP_LEVELS": mipLevels}); err != nil {
		p.Unload()
		return nil, err
	}
	if p.Output, err = LoadShader("output", postVertex, outputFragment, nil); err != nil {
		p.Unload()
		return nil, err
	}
	return p, nil
}

func (p *Programs) Unload() {
	for _, s := range p.all() {
		if s.ID != 0 {
			rl.UnloadShader(s)
		}
	}
	*p = Programs{}
}

func (p *Programs) all() []rl.Shader {
	out := []rl.Shader{p.Lit, p.Stars, p.HighPass, p.Composite, p.Output}
	return append(out, p.Blur...)
}
