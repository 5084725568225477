package engine3D

import (
	"runtime"

	"orbitscene/internal/engine3D/shader"
	"orbitscene/internal/scene"
	"orbitscene/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// maxStarsPerBatch keeps every vertex index of a batch within uint16.
const maxStarsPerBatch = 65536 / 4

// quadCorners are the texcoords of a star quad, as offsets from its center in
// units of its diameter.
var quadCorners = [4][2]float32{{-0.5, -0.5}, {0.5, -0.5}, {0.5, 0.5}, {-0.5, 0.5}}

// starBatch is the vertex data of up to maxStarsPerBatch stars. Each star is a
// quad of four vertices at its center, spread by the star shader.
type starBatch struct {
	vertices []float32
	corners  []float32
	indices  []uint16
}

func buildStarBatches(p *scene.ParticleField) []starBatch {
	var batches []starBatch
	var b *starBatch

	p.Each(func(i int, x, y, z float32) {
		if i%maxStarsPerBatch == 0 {
			n := min(p.Count()-i, maxStarsPerBatch)
			batches = append(batches, starBatch{
				vertices: make([]float32, 0, n*12),
				corners:  make([]float32, 0, n*8),
				indices:  make([]uint16, 0, n*6),
			})
			b = &batches[len(batches)-1]
		}

		base := uint16(len(b.vertices) / 3)
		for _, c := range quadCorners {
			b.vertices = append(b.vertices, x, y, z)
			b.corners = append(b.corners, c[0], c[1])
		}
		b.indices = append(b.indices, base, base+1, base+2, base, base+2, base+3)
	})
	return batches
}

// starField is the starfield uploaded once as static meshes.
type starField struct {
	field    *scene.ParticleField
	batches  []starBatch
	meshes   []rl.Mesh
	material rl.Material
	program  rl.Shader
	pinner   runtime.Pinner
}

func newStarField(p *scene.ParticleField, program rl.Shader) *starField {
	sf := &starField{
		field:    p,
		batches:  buildStarBatches(p),
		material: rl.LoadMaterialDefault(),
		program:  program,
	}
	sf.material.Shader = program

	for i := range sf.batches {
		b := &sf.batches[i]
		// the mesh keeps pointers into Go memory for its whole lifetime
		sf.pinner.Pin(&b.vertices[0])
		sf.pinner.Pin(&b.corners[0])
		sf.pinner.Pin(&b.indices[0])

		mesh := rl.Mesh{
			VertexCount:   int32(len(b.vertices) / 3),
			TriangleCount: int32(len(b.indices) / 3),
			Vertices:      &b.vertices[0],
			Texcoords:     &b.corners[0],
			Indices:       &b.indices[0],
		}
		rl.UploadMesh(&mesh, false)
		sf.meshes = append(sf.meshes, mesh)
	}

	utils.Debug("Stars: %d points in %d meshes", p.Count(), len(sf.meshes))
	return sf
}

// draw renders the stars additively into a width×height target.
func (sf *starField) draw(width, height int32) {
	if len(sf.meshes) == 0 {
		return
	}

	cr, cg, cb := sf.field.Color.Linear()
	setVec2(sf.program, "g_Viewport", float32(width), float32(height))
	setFloat(sf.program, "g_PointSize", sf.field.Size)
	setFloat(sf.program, "g_PointScale", float64(height)/2)
	shader.SetVec3(sf.program, "g_Color", float32(cr), float32(cg), float32(cb))

	rl.BeginBlendMode(rl.BlendAdditive)
	for _, mesh := range sf.meshes {
		rl.DrawMesh(mesh, sf.material, rl.MatrixIdentity())
	}
	rl.EndBlendMode()
}

func (sf *starField) unload() {
	for i := range sf.meshes {
		mesh := &sf.meshes[i]
		// the arrays are Go memory; only the GPU buffers go through raylib
		mesh.Vertices, mesh.Texcoords, mesh.Indices = nil, nil, nil
		rl.UnloadMesh(mesh)
	}
	sf.meshes = nil
	sf.pinner.Unpin()

	// the program belongs to shader.Programs
	sf.material.Shader.ID = rl.GetShaderIdDefault()
	rl.UnloadMaterial(sf.material)
}
