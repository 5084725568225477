package animation

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbitscene/internal/scene"
)

const tol = 1e-9

var sampleTimes = []float64{0, 0.016, 0.5, 1, 1.5, 2.513, 10, 61.7, 3600, 86400.25}

type recordingCompositor struct {
	calls     int
	positions [][3]mgl64.Vec3
	err       error
}

func (r *recordingCompositor) Render(s *scene.Scene) error {
	r.calls++
	var bodies [3]mgl64.Vec3
	for i, o := range s.Orbiters {
		bodies[i] = o.Position
	}
	r.positions = append(r.positions, bodies)
	return r.err
}

func newTestCore(t *testing.T, clock TimeSource) (*Core, *scene.Scene, *recordingCompositor) {
	t.Helper()
	s := scene.Build(rand.New(rand.NewPCG(3, 4)), 1.5)
	comp := &recordingCompositor{}
	return NewCore(clock, s, comp), s, comp
}

func TestOrbitIdentities(t *testing.T) {
	for _, ts := range sampleTimes {
		p := Orbits(ts)
		assert.InDelta(t, -p.Bodies[0].Y(), p.Bodies[0].X(), tol, "x1 = -y1 at t=%v", ts)
		assert.InDelta(t, p.Bodies[1].Y(), p.Bodies[1].X(), tol, "x2 = y2 at t=%v", ts)
		assert.Equal(t, 0.0, p.Bodies[2].X(), "x3 = 0 at t=%v", ts)
		assert.InDelta(t, 2500, p.CameraX*p.CameraX+p.CameraZ*p.CameraZ, 1e-6, "camera radius at t=%v", ts)
	}
}

func TestOrbitsAtZero(t *testing.T) {
	p := Orbits(0)

	assert.InDelta(t, 0, p.Bodies[0].X(), tol)
	assert.InDelta(t, 0, p.Bodies[0].Y(), tol)
	assert.InDelta(t, 10, p.Bodies[0].Z(), tol)

	assert.InDelta(t, 10, p.Bodies[1].X(), tol)
	assert.InDelta(t, 10, p.Bodies[1].Y(), tol)
	assert.InDelta(t, 0, p.Bodies[1].Z(), tol)

	assert.InDelta(t, 0, p.Bodies[2].X(), tol)
	assert.InDelta(t, 11*math.Sin(2.5*1.5), p.Bodies[2].Y(), tol)
	assert.InDelta(t, 11*math.Cos(2.5*1.5), p.Bodies[2].Z(), tol)

	assert.InDelta(t, 50*math.Sin(0.125*1.5), p.CameraX, tol)
	assert.InDelta(t, 50*math.Cos(0.125*1.5), p.CameraZ, tol)
}

func TestOrbitsArePure(t *testing.T) {
	for _, ts := range sampleTimes {
		assert.Equal(t, Orbits(ts), Orbits(ts))
	}
}

func TestFrameAppliesPositionsAndRendersOnce(t *testing.T) {
	clock := &ManualClock{}
	core, s, comp := newTestCore(t, clock)
	cameraY := s.Camera.Position.Y()

	clock.Set(2.25)
	core.Frame()

	require.Equal(t, 1, comp.calls)
	want := Orbits(2.25)
	for i := range want.Bodies {
		assert.Equal(t, want.Bodies[i], s.Orbiters[i].Position)
		assert.Equal(t, want.Bodies[i], comp.positions[0][i], "compositor sees updated positions")
	}
	assert.Equal(t, mgl64.Vec3{want.CameraX, cameraY, want.CameraZ}, s.Camera.Position)
	assert.Equal(t, mgl64.Vec3{}, s.Camera.Target)

	snap := core.Last()
	assert.Equal(t, 2.25, snap.Elapsed)
	assert.Equal(t, uint64(1), snap.Frames)
	assert.Equal(t, want, snap.Positions)
}

func TestFrameIsStatelessAcrossFrames(t *testing.T) {
	clock := &ManualClock{}
	core, s, _ := newTestCore(t, clock)

	clock.Set(4)
	core.Frame()
	view := s.Camera.View
	bodies := [3]mgl64.Vec3{s.Orbiters[0].Position, s.Orbiters[1].Position, s.Orbiters[2].Position}

	fresh, s2, _ := newTestCore(t, clock)
	fresh.Frame()

	assert.True(t, view.ApproxEqualThreshold(s2.Camera.View, tol))
	for i := range bodies {
		assert.Equal(t, bodies[i], s2.Orbiters[i].Position)
	}
}

func TestCameraKeepsHeight(t *testing.T) {
	clock := &ManualClock{}
	core, s, _ := newTestCore(t, clock)
	s.Camera.Position = mgl64.Vec3{0, 7, 50}

	for i := 0; i < 5; i++ {
		clock.Advance(0.75)
		core.Frame()
		assert.Equal(t, 7.0, s.Camera.Position.Y())
	}
}

func TestCameraFacesOrigin(t *testing.T) {
	clock := &ManualClock{}
	core, s, _ := newTestCore(t, clock)

	for _, ts := range sampleTimes {
		clock.Set(ts)
		core.Frame()
		ndc, ok := s.Camera.Project(mgl64.Vec3{})
		require.True(t, ok)
		assert.InDelta(t, 0, ndc.X(), 1e-9, "t=%v", ts)
		assert.InDelta(t, 0, ndc.Y(), 1e-9, "t=%v", ts)
	}
}

func TestParticlesUntouchedByFrames(t *testing.T) {
	clock := &ManualClock{}
	core, s, _ := newTestCore(t, clock)
	before := s.Particles.Positions()

	for i := 0; i < 20; i++ {
		clock.Advance(1.0 / 60)
		core.Frame()
	}

	assert.Equal(t, before, s.Particles.Positions())
}

func TestFrameSurvivesCompositorErrors(t *testing.T) {
	clock := &ManualClock{}
	core, _, comp := newTestCore(t, clock)
	comp.err = errors.New("surface lost")

	core.Frame()
	core.Frame()
	assert.Equal(t, 2, comp.calls)
	assert.True(t, core.failing)

	comp.err = nil
	core.Frame()
	assert.Equal(t, 3, comp.calls)
	assert.False(t, core.failing)
	assert.Equal(t, uint64(3), core.Last().Frames)
}

func TestManualClockMonotonic(t *testing.T) {
	c := &ManualClock{}
	c.Set(5)
	c.Set(3)
	assert.Equal(t, 5.0, c.Now())
	c.Advance(-1)
	assert.Equal(t, 5.0, c.Now())
	c.Advance(0.5)
	assert.Equal(t, 5.5, c.Now())
}

func TestSystemClockMonotonic(t *testing.T) {
	c := NewSystemClock()
	a := c.Now()
	time.Sleep(time.Millisecond)
	b := c.Now()
	assert.GreaterOrEqual(t, a, 0.0)
	assert.Greater(t, b, a)
}
