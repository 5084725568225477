package scene

import "github.com/go-gl/mathgl/mgl64"

// Camera is a perspective camera. Fov is the vertical field of view in degrees.
type Camera struct {
	Node
	Fov    float64
	Aspect float64
	Near   float64
	Far    float64
	Up     mgl64.Vec3
	Target mgl64.Vec3

	Projection mgl64.Mat4
	View       mgl64.Mat4
}

func NewPerspectiveCamera(fov, aspect, near, far float64) *Camera {
	c := &Camera{
		Node:   Node{Name: "camera"},
		Fov:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Up:     mgl64.Vec3{0, 1, 0},
	}
	c.UpdateProjectionMatrix()
	c.LookAt(mgl64.Vec3{})
	return c
}

func (c *Camera) UpdateProjectionMatrix() {
	c.Projection = mgl64.Perspective(mgl64.DegToRad(c.Fov), c.Aspect, c.Near, c.Far)
}

// SetAspect changes the aspect ratio and rebuilds the projection.
func (c *Camera) SetAspect(aspect float64) {
	c.Aspect = aspect
	c.UpdateProjectionMatrix()
}

// LookAt aims the camera at target. The view matrix is rebuilt from the
// current world position every call, nothing is accumulated.
func (c *Camera) LookAt(target mgl64.Vec3) {
	c.Target = target
	c.View = mgl64.LookAtV(c.WorldPosition(), target, c.Up)
}

func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection.Mul4(c.View)
}

// Project maps a world point to normalized device coordinates. ok is false
// for points behind the camera or outside the near/far range.
func (c *Camera) Project(p mgl64.Vec3) (ndc mgl64.Vec3, ok bool) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return mgl64.Vec3{}, false
	}
	ndc = clip.Vec3().Mul(1 / clip.W())
	return ndc, ndc.Z() >= -1 && ndc.Z() <= 1
}

// Depth returns the view-space distance of p along the viewing direction.
func (c *Camera) Depth(p mgl64.Vec3) float64 {
	return -c.View.Mul4x1(p.Vec4(1)).Z()
}
