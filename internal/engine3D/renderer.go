package engine3D

import (
	"fmt"

	"orbitscene/internal/engine3D/shader"
	"orbitscene/internal/pipeline"
	"orbitscene/internal/scene"
	"orbitscene/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws the scene with raylib. It must be created and used on the
// thread that owns the window's GL context.
type Renderer struct {
	Width, Height int32

	programs *shader.Programs
	objects  []RenderObject
	models   map[*scene.SphereGeometry]*rl.Model
	built    []*scene.Mesh
	stars    *starField

	sceneTarget *rl.RenderTexture2D
	bloom       *bloomChain
	output      shader.Pass
}

// NewRenderer compiles the shaders. The window must already be open.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{}
	if err := r.Acquire(); err != nil {
		return nil, err
	}
	return r, nil
}

// Acquire (re)creates every GPU resource except the size-dependent targets,
// which the next Resize allocates.
func (r *Renderer) Acquire() error {
	r.release()

	if !rl.IsWindowReady() {
		return fmt.Errorf("acquire: %w", pipeline.ErrSurfaceLost)
	}

	shader.InitDefaults()
	programs, err := shader.LoadPrograms(pipeline.KernelRadii[:], pipeline.MipLevels)
	if err != nil {
		return fmt.Errorf("load shaders: %w", err)
	}
	r.programs = programs
	r.output = shader.SetupPass(programs.Output, "output", nil, nil, nil)
	r.bloom = newBloomChain(programs)

	utils.Debug("Renderer: acquired (%d blur programs)", len(programs.Blur))
	return nil
}

// Resize reallocates the render targets when the buffer size changes.
func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	w, h := int32(width), int32(height)
	if r.sceneTarget != nil && r.Width == w && r.Height == h {
		return
	}
	r.Width, r.Height = w, h

	if r.sceneTarget != nil {
		rl.UnloadRenderTexture(*r.sceneTarget)
	}
	rt := rl.LoadRenderTexture(w, h)
	rl.SetTextureFilter(rt.Texture, rl.FilterBilinear)
	r.sceneTarget = &rt

	if r.bloom != nil {
		r.bloom.resize(w, h)
	}
	utils.Debug("Renderer: targets %dx%d", w, h)
}

// RenderScene draws the lit spheres and the starfield into the scene target.
func (r *Renderer) RenderScene(s *scene.Scene) error {
	if err := r.ready(); err != nil {
		return err
	}
	if !sameMeshes(r.built, s.Meshes) {
		if r.models != nil {
			unloadModels(r.models)
		}
		r.objects, r.models = buildRenderObjects(s.Meshes, r.programs.Lit)
		r.built = append(r.built[:0], s.Meshes...)
	}
	if r.stars == nil || r.stars.field != s.Particles {
		if r.stars != nil {
			r.stars.unload()
		}
		r.stars = newStarField(s.Particles, r.programs.Stars)
	}

	cam := s.Camera
	rl.BeginTextureMode(*r.sceneTarget)
	rl.ClearBackground(linearColor(s.Background))

	// the camera struct only enables depth testing; the matrices come from
	// the scene camera
	rl.BeginMode3D(rl.Camera3D{
		Position:   toVector3(cam.WorldPosition()),
		Target:     toVector3(cam.Target),
		Up:         toVector3(cam.Up),
		Fovy:       float32(cam.Fov),
		Projection: rl.CameraPerspective,
	})
	rl.SetMatrixProjection(toMatrix(cam.Projection))
	rl.SetMatrixModelview(toMatrix(cam.View))

	r.setLighting(s)
	for _, ro := range r.objects {
		r.setMaterial(ro.Mesh.Material)
		rl.DrawModel(*ro.Model, toVector3(ro.Mesh.WorldPosition()), 1, rl.White)
	}

	r.stars.draw(r.Width, r.Height)

	rl.EndMode3D()
	rl.EndTextureMode()
	return nil
}

func (r *Renderer) setLighting(s *scene.Scene) {
	lit := r.programs.Lit

	eye := s.Camera.WorldPosition()
	shader.SetVec3(lit, "g_ViewPosition", float32(eye.X()), float32(eye.Y()), float32(eye.Z()))

	light := s.PointLight
	pos := light.WorldPosition()
	shader.SetVec3(lit, "g_LightPosition", float32(pos.X()), float32(pos.Y()), float32(pos.Z()))
	lr, lg, lb := light.Color.Linear()
	shader.SetVec3(lit, "g_LightColor", float32(lr*light.Intensity), float32(lg*light.Intensity), float32(lb*light.Intensity))
	setFloat(lit, "g_LightDistance", light.Distance)
	setFloat(lit, "g_LightDecay", light.Decay)

	ar, ag, ab := s.Ambient.Color.Linear()
	k := s.Ambient.Intensity
	shader.SetVec3(lit, "g_AmbientColor", float32(ar*k), float32(ag*k), float32(ab*k))
}

func (r *Renderer) setMaterial(m *scene.StandardMaterial) {
	lit := r.programs.Lit
	br, bg, bb := m.Color.Linear()
	shader.SetVec3(lit, "g_BaseColor", float32(br), float32(bg), float32(bb))
	er, eg, eb := m.Emissive.Linear()
	shader.SetVec3(lit, "g_Emissive", float32(er), float32(eg), float32(eb))
	setFloat(lit, "g_Roughness", m.Roughness)
	setFloat(lit, "g_Metalness", m.Metalness)
}

func setFloat(s rl.Shader, name string, v float64) {
	if loc := rl.GetShaderLocation(s, name); loc != -1 {
		rl.SetShaderValue(s, loc, []float32{float32(v)}, rl.ShaderUniformFloat)
	}
}

func setVec2(s rl.Shader, name string, x, y float32) {
	if loc := rl.GetShaderLocation(s, name); loc != -1 {
		rl.SetShaderValue(s, loc, []float32{x, y}, rl.ShaderUniformVec2)
	}
}

// Bloom filters the scene target into the glow target.
func (r *Renderer) Bloom(params pipeline.BloomParams) error {
	if err := r.ready(); err != nil {
		return err
	}
	r.bloom.apply(&r.sceneTarget.Texture, params)
	return nil
}

// Present draws scene plus glow to the window. The caller owns
// BeginDrawing/EndDrawing.
func (r *Renderer) Present() error {
	if err := r.ready(); err != nil {
		return err
	}

	src := &r.sceneTarget.Texture
	r.output.Textures = []*rl.Texture2D{nil, r.bloom.result()}

	rl.ClearBackground(rl.Black)
	rl.BeginShaderMode(r.output.Shader)
	shader.ApplyPass(&r.output, src, int32(rl.GetRenderWidth()), int32(rl.GetRenderHeight()))

	srcRec := rl.NewRectangle(0, 0, float32(src.Width), -float32(src.Height))
	dstRec := rl.NewRectangle(0, 0, float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
	rl.DrawTexturePro(*src, srcRec, dstRec, rl.NewVector2(0, 0), 0, rl.White)

	rl.EndShaderMode()
	return nil
}

// Close releases every GPU resource.
func (r *Renderer) Close() {
	r.release()
	shader.ReleaseDefaults()
}

func (r *Renderer) ready() error {
	if r.programs == nil || r.sceneTarget == nil || r.sceneTarget.ID == 0 || r.bloom == nil || !r.bloom.ready() {
		return pipeline.ErrSurfaceLost
	}
	return nil
}

func (r *Renderer) release() {
	if r.models != nil {
		unloadModels(r.models)
		r.models = nil
		r.objects = nil
		r.built = r.built[:0]
	}
	if r.stars != nil {
		r.stars.unload()
		r.stars = nil
	}
	if r.bloom != nil {
		r.bloom.unloadTargets()
		r.bloom = nil
	}
	if r.sceneTarget != nil {
		rl.UnloadRenderTexture(*r.sceneTarget)
		r.sceneTarget = nil
	}
	if r.programs != nil {
		r.programs.Unload()
		r.programs = nil
	}
}

func sameMeshes(a, b []*scene.Mesh) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
