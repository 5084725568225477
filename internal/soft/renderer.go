package soft

import (
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/clone"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"

	"orbitscene/internal/pipeline"
	"orbitscene/internal/scene"
	"orbitscene/internal/utils"
)

// PresentFunc receives every presented frame.
type PresentFunc func(frame image.Image) error

// Renderer rasterizes the scene on the CPU. Spheres are drawn as shaded
// discs in back-to-front order; stars are size-attenuated dots.
type Renderer struct {
	width, height int

	dc     *gg.Context
	frame  *image.RGBA
	output *image.RGBA
	last   *image.RGBA
	lost   bool

	onPresent PresentFunc
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// OnPresent sets the hook called with each presented frame.
func (r *Renderer) OnPresent(fn PresentFunc) {
	r.onPresent = fn
}

func (r *Renderer) Acquire() error {
	r.dc = nil
	r.frame, r.output = nil, nil
	r.lost = false
	if r.width > 0 && r.height > 0 {
		r.dc = gg.NewContext(r.width, r.height)
	}
	return nil
}

// Lose discards the drawing surface, as a device reset would. Rendering
// fails with pipeline.ErrSurfaceLost until Acquire.
func (r *Renderer) Lose() {
	r.lost = true
}

func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	if r.dc == nil {
		r.dc = gg.NewContext(width, height)
		return
	}
	if err := r.dc.Resize(width, height); err != nil {
		utils.Warn("Soft renderer: resize %dx%d: %v", width, height, err)
	}
}

func (r *Renderer) Size() (width, height int) {
	return r.width, r.height
}

// Last returns the most recently presented frame, or nil.
func (r *Renderer) Last() *image.RGBA {
	return r.last
}

type projectedSphere struct {
	mesh   *scene.Mesh
	x, y   float64
	radius float64
	depth  float64
}

func (r *Renderer) RenderScene(s *scene.Scene) error {
	if r.lost || r.dc == nil {
		return pipeline.ErrSurfaceLost
	}

	dc := r.dc
	br, bg, bb := s.Background.RGB()
	dc.ClearWithColor(gg.RGB(br, bg, bb))

	spheres := r.projectSpheres(s)

	// stars farther than every sphere go underneath, the rest on top
	farthest := math.Inf(1)
	if len(spheres) > 0 {
		farthest = spheres[0].depth
	}
	r.drawStars(s, func(depth float64) bool { return depth >= farthest })
	for _, sp := range spheres {
		r.drawSphere(s, sp)
	}
	r.drawStars(s, func(depth float64) bool { return depth < farthest })

	if err := dc.FlushGPU(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	r.frame = clone.AsRGBA(dc.Image())
	return nil
}

// projectSpheres returns the visible meshes sorted far to near.
func (r *Renderer) projectSpheres(s *scene.Scene) []projectedSphere {
	cam := s.Camera
	focal := float64(r.height) / 2 / math.Tan(mgl64.DegToRad(cam.Fov)/2)

	out := make([]projectedSphere, 0, len(s.Meshes))
	for _, m := range s.Meshes {
		center := m.WorldPosition()
		depth := cam.Depth(center)
		if depth <= cam.Near {
			continue
		}
		ndc, ok := cam.Project(center)
		if !ok {
			continue
		}
		x, y := r.toScreen(ndc)
		out = append(out, projectedSphere{
			mesh:   m,
			x:      x,
			y:      y,
			radius: m.Geometry.Radius * focal / depth,
			depth:  depth,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].depth > out[j].depth })
	return out
}

func (r *Renderer) toScreen(ndc mgl64.Vec3) (x, y float64) {
	return (ndc.X() + 1) / 2 * float64(r.width), (1 - ndc.Y()) / 2 * float64(r.height)
}

// drawSphere fills the disc with a focal radial gradient whose focus sits on
// the brightest point of the surface.
func (r *Renderer) drawSphere(s *scene.Scene, sp projectedSphere) {
	center := sp.mesh.WorldPosition()
	eye := s.Camera.WorldPosition()
	radius := sp.mesh.Geometry.Radius
	lights := Lights{Point: s.PointLight, Ambient: s.Ambient}

	v := eye.Sub(center).Normalize()
	l := s.PointLight.WorldPosition().Sub(center).Normalize()

	bright := l.Add(v)
	if bright.Len() < 1e-9 {
		bright = v
	}
	bright = bright.Normalize()
	dark := perpendicular(l.Mul(-1), v)

	shadeAt := func(n mgl64.Vec3) gg.RGBA {
		c := Shade(sp.mesh.Material, lights, center.Add(n.Mul(radius)), n, eye)
		return gg.RGB(Encode(c.X()), Encode(c.Y()), Encode(c.Z()))
	}

	fx, fy := sp.x, sp.y
	if ndc, ok := s.Camera.Project(center.Add(bright.Mul(radius))); ok {
		fx, fy = r.toScreen(ndc)
	}

	brush := gg.NewRadialGradientBrush(sp.x, sp.y, 0, sp.radius).
		SetFocus(fx, fy).
		AddColorStop(0, shadeAt(bright)).
		AddColorStop(0.6, shadeAt(v)).
		AddColorStop(1, shadeAt(dark))

	r.dc.SetFillBrush(brush)
	r.dc.DrawCircle(sp.x, sp.y, sp.radius)
	if err := r.dc.Fill(); err != nil {
		utils.Debug("Soft renderer: sphere fill: %v", err)
	}
}

// perpendicular returns the unit part of d orthogonal to v, falling back to
// any unit vector orthogonal to v when d is parallel to it.
func perpendicular(d, v mgl64.Vec3) mgl64.Vec3 {
	p := d.Sub(v.Mul(d.Dot(v)))
	if p.Len() < 1e-9 {
		p = mgl64.Vec3{0, 1, 0}.Cross(v)
		if p.Len() < 1e-9 {
			p = mgl64.Vec3{1, 0, 0}.Cross(v)
		}
	}
	return p.Normalize()
}

// drawStars batches every star accepted by keep into one path.
func (r *Renderer) drawStars(s *scene.Scene, keep func(depth float64) bool) {
	cam := s.Camera
	p := s.Particles
	drawn := 0

	p.Each(func(_ int, x, y, z float32) {
		pos := mgl64.Vec3{float64(x), float64(y), float64(z)}
		depth := cam.Depth(pos)
		if depth <= cam.Near || !keep(depth) {
			return
		}
		ndc, ok := cam.Project(pos)
		if !ok || ndc.X() < -1 || ndc.X() > 1 || ndc.Y() < -1 || ndc.Y() > 1 {
			return
		}
		sx, sy := r.toScreen(ndc)
		r.dc.DrawPoint(sx, sy, p.Diameter(float64(r.height), depth)/2)
		drawn++
	})

	if drawn == 0 {
		return
	}
	cr, cg, cb := p.Color.RGB()
	r.dc.SetRGB(cr, cg, cb)
	if err := r.dc.Fill(); err != nil {
		utils.Debug("Soft renderer: star fill: %v", err)
	}
}

func (r *Renderer) Bloom(params pipeline.BloomParams) error {
	if r.lost || r.frame == nil {
		return pipeline.ErrSurfaceLost
	}
	r.output = ApplyBloom(r.frame, params)
	return nil
}

func (r *Renderer) Present() error {
	if r.lost || r.output == nil {
		return pipeline.ErrSurfaceLost
	}
	r.last = r.output
	if r.onPresent != nil {
		if err := r.onPresent(r.last); err != nil {
			return fmt.Errorf("present hook: %w", err)
		}
	}
	return nil
}
