package scene

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func newTestScene() *Scene {
	return Build(rand.New(rand.NewPCG(1, 2)), 16.0/9.0)
}

func TestBuildHierarchy(t *testing.T) {
	s := newTestScene()

	require.Len(t, s.Meshes, 4)
	assert.Same(t, s.Central, s.Meshes[0])
	assert.Len(t, s.Central.Children, 3)

	for i, orbiter := range s.Orbiters {
		assert.Same(t, &s.Central.Node, orbiter.Parent, "orbiter %d", i+1)
		assert.Same(t, s.Central.Material, orbiter.Material)
		assert.Equal(t, OrbiterRadius, orbiter.Geometry.Radius)
		assert.Equal(t, OrbiterStartPositions[i], orbiter.Position)
	}
	assert.Same(t, s.Orbiters[0].Geometry, s.Orbiters[2].Geometry)
	assert.Equal(t, CentralRadius, s.Central.Geometry.Radius)

	h := s.Handles()
	assert.Same(t, s.Camera, h.Camera)
	for i := range h.Orbiters {
		assert.Same(t, &s.Orbiters[i].Node, h.Orbiters[i])
	}
}

func TestBuildCamera(t *testing.T) {
	s := newTestScene()

	assert.Equal(t, mgl64.Vec3{0, 0, CameraDistance}, s.Camera.Position)
	assert.Equal(t, CameraFov, s.Camera.Fov)
	assert.InDelta(t, 16.0/9.0, s.Camera.Aspect, tol)

	ndc, ok := s.Camera.Project(mgl64.Vec3{})
	require.True(t, ok)
	assert.InDelta(t, 0, ndc.X(), tol)
	assert.InDelta(t, 0, ndc.Y(), tol)
	assert.InDelta(t, CameraDistance, s.Camera.Depth(mgl64.Vec3{}), 1e-6)
}

func TestWorldPositionFollowsParent(t *testing.T) {
	s := newTestScene()
	s.Central.Position = mgl64.Vec3{1, 2, 3}
	s.Orbiters[1].Position = mgl64.Vec3{0, 0, 10}

	assert.Equal(t, mgl64.Vec3{1, 2, 13}, s.Orbiters[1].WorldPosition())
}

func TestNodeAddReparents(t *testing.T) {
	a := &Node{Name: "a"}
	b := &Node{Name: "b"}
	child := &Node{Name: "child"}

	a.Add(child)
	b.Add(child)

	assert.Empty(t, a.Children)
	assert.Equal(t, []*Node{child}, b.Children)
	assert.Same(t, b, child.Parent)
}

func TestLookAtDoesNotDrift(t *testing.T) {
	s := newTestScene()
	cam := s.Camera

	cam.Position = mgl64.Vec3{30, 0, 40}
	cam.LookAt(mgl64.Vec3{})
	first := cam.View

	for i := 0; i < 1000; i++ {
		cam.LookAt(mgl64.Vec3{})
	}
	assert.True(t, first.ApproxEqualThreshold(cam.View, tol))
}

func TestSetAspect(t *testing.T) {
	s := newTestScene()
	s.Camera.SetAspect(2)
	want := mgl64.Perspective(mgl64.DegToRad(CameraFov), 2, CameraNear, CameraFar)
	assert.True(t, want.ApproxEqualThreshold(s.Camera.Projection, tol))
}

func TestParticleField(t *testing.T) {
	s := newTestScene()
	p := s.Particles

	require.Equal(t, ParticleCount, p.Count())
	assert.Equal(t, ParticleColor, p.Color)

	half := float32(ParticleSpread / 2)
	p.Each(func(i int, x, y, z float32) {
		for _, v := range []float32{x, y, z} {
			if v < -half || v > half {
				t.Fatalf("particle %d component %v out of range", i, v)
			}
		}
	})

	snapshot := p.Positions()
	snapshot[0] = 99999
	assert.NotEqual(t, float32(99999), p.Positions()[0], "Positions must return a copy")
}

func TestParticleFieldDeterministicForSeed(t *testing.T) {
	a := NewParticleField(rand.New(rand.NewPCG(5, 5)), 100, ParticleSpread)
	b := NewParticleField(rand.New(rand.NewPCG(5, 5)), 100, ParticleSpread)
	assert.Equal(t, a.Positions(), b.Positions())
}

func TestParticleDiameter(t *testing.T) {
	p := &ParticleField{Size: ParticleSize}

	assert.InDelta(t, 7.2, p.Diameter(720, 50), 1e-12, "half the buffer height over depth")
	assert.InDelta(t, 3.6, p.Diameter(720, 100), 1e-12)
	assert.Equal(t, 1.0, p.Diameter(720, 1000), "never below one pixel")
}

func TestPointLightAttenuation(t *testing.T) {
	l := &PointLight{Intensity: PointLightIntensity, Distance: PointLightDistance, Decay: PointLightDecay}

	assert.InDelta(t, 0, l.Attenuation(PointLightDistance), tol)
	assert.InDelta(t, 0, l.Attenuation(40), tol)

	d := 10.0
	ratio := d / PointLightDistance
	window := 1 - math.Pow(ratio, 4)
	assert.InDelta(t, window*window/(d*d), l.Attenuation(d), tol)

	// very close distances are capped by the 0.01 floor
	assert.InDelta(t, 100, l.Attenuation(0), tol)

	unbounded := &PointLight{Decay: 2}
	assert.InDelta(t, 0.01, unbounded.Attenuation(10), tol)
}

func TestColorRGB(t *testing.T) {
	r, g, b := BodyColor.RGB()
	assert.InDelta(t, 1.0, r, tol)
	assert.InDelta(t, 0x40/255.0, g, tol)
	assert.InDelta(t, 0x13/255.0, b, tol)

	r8, g8, b8, a8 := ParticleColor.RGBA8()
	assert.Equal(t, [4]uint8{0x88, 0x88, 0x88, 0xff}, [4]uint8{r8, g8, b8, a8})
}

func TestColorLinear(t *testing.T) {
	r, g, b := Color(0xffffff).Linear()
	assert.InDelta(t, 1.0, r, tol)
	assert.InDelta(t, 1.0, g, tol)
	assert.InDelta(t, 1.0, b, tol)

	r, _, _ = BackgroundColor.Linear()
	assert.Equal(t, 0.0, r)

	// mid grey darkens
	gr, _, _ := ParticleColor.Linear()
	assert.InDelta(t, 0.246, gr, 1e-3)
}
