package animation

import (
	"github.com/go-gl/mathgl/mgl64"

	"orbitscene/internal/scene"
	"orbitscene/internal/utils"
)

// Compositor renders one finished frame of the scene.
type Compositor interface {
	Render(s *scene.Scene) error
}

// Snapshot records what the last frame computed.
type Snapshot struct {
	Elapsed   float64
	Positions Positions
	Frames    uint64
}

// Core moves the orbiting bodies and the camera from elapsed time and hands
// the scene to the compositor. It keeps no state between frames other than
// the clock, so the same time always yields the same scene.
type Core struct {
	clock      TimeSource
	scene      *scene.Scene
	handles    scene.Handles
	compositor Compositor

	last    Snapshot
	failing bool
}

func NewCore(clock TimeSource, s *scene.Scene, compositor Compositor) *Core {
	return &Core{
		clock:      clock,
		scene:      s,
		handles:    s.Handles(),
		compositor: compositor,
	}
}

// Apply writes the transforms for time t into the scene without rendering.
func (c *Core) Apply(t float64) Positions {
	p := Orbits(t)

	for i, body := range c.handles.Orbiters {
		body.Position = p.Bodies[i]
	}

	camera := c.handles.Camera
	camera.Position = mgl64.Vec3{p.CameraX, camera.Position.Y(), p.CameraZ}
	camera.LookAt(mgl64.Vec3{})

	return p
}

// Frame samples the clock once, updates the scene and renders it. Render
// failures drop the frame; the next call tries again.
func (c *Core) Frame() {
	t := c.clock.Now()
	p := c.Apply(t)

	c.last = Snapshot{Elapsed: t, Positions: p, Frames: c.last.Frames + 1}

	if err := c.compositor.Render(c.scene); err != nil {
		if !c.failing {
			utils.Warn("Frame %d dropped: %v", c.last.Frames, err)
		}
		c.failing = true
		return
	}
	if c.failing {
		utils.Info("Rendering recovered at frame %d", c.last.Frames)
		c.failing = false
	}
}

func (c *Core) Last() Snapshot {
	return c.last
}
