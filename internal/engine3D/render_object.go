package engine3D

import (
	"github.com/go-gl/mathgl/mgl64"

	"orbitscene/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// RenderObject pairs a scene mesh with the GPU model drawn for it. Meshes
// sharing a geometry share one model.
type RenderObject struct {
	Mesh  *scene.Mesh
	Model *rl.Model
}

// buildRenderObjects uploads one sphere model per distinct geometry and binds
// the lighting shader to it.
func buildRenderObjects(meshes []*scene.Mesh, lit rl.Shader) ([]RenderObject, map[*scene.SphereGeometry]*rl.Model) {
	models := make(map[*scene.SphereGeometry]*rl.Model)
	objects := make([]RenderObject, 0, len(meshes))

	for _, m := range meshes {
		model, ok := models[m.Geometry]
		if !ok {
			g := m.Geometry
			mesh := rl.GenMeshSphere(float32(g.Radius), g.HeightSegments, g.WidthSegments)
			loaded := rl.LoadModelFromMesh(mesh)
			if loaded.Materials != nil {
				loaded.Materials.Shader = lit
			}
			model = &loaded
			models[g] = model
		}
		objects = append(objects, RenderObject{Mesh: m, Model: model})
	}
	return objects, models
}

func unloadModels(models map[*scene.SphereGeometry]*rl.Model) {
	for _, model := range models {
		rl.UnloadModel(*model)
	}
}

// toMatrix converts a column-major mgl64 matrix to raylib's layout, where
// Mn is element n in column-major order.
func toMatrix(m mgl64.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: float32(m[0]), M1: float32(m[1]), M2: float32(m[2]), M3: float32(m[3]),
		M4: float32(m[4]), M5: float32(m[5]), M6: float32(m[6]), M7: float32(m[7]),
		M8: float32(m[8]), M9: float32(m[9]), M10: float32(m[10]), M11: float32(m[11]),
		M12: float32(m[12]), M13: float32(m[13]), M14: float32(m[14]), M15: float32(m[15]),
	}
}

func toVector3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}

// linearColor converts a packed sRGB color to a linear 8-bit raylib color.
func linearColor(c scene.Color) rl.Color {
	r, g, b := c.Linear()
	return rl.NewColor(uint8(r*255+0.5), uint8(g*255+0.5), uint8(b*255+0.5), 255)
}
