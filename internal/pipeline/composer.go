package pipeline

import (
	"errors"
	"fmt"
	"math"

	"orbitscene/internal/scene"
	"orbitscene/internal/utils"
)

// ErrSurfaceLost reports that the backend lost its drawing surface. The
// current frame is abandoned and the surface is re-acquired before the next.
var ErrSurfaceLost = errors.New("render surface lost")

// Backend is the graphics collaborator. RenderScene rasterizes into an
// intermediate buffer, Bloom filters that buffer into the output surface and
// Present finishes the frame.
type Backend interface {
	Acquire() error
	Resize(width, height int)
	RenderScene(s *scene.Scene) error
	Bloom(params BloomParams) error
	Present() error
}

// Pass is one stage of the composition.
type Pass interface {
	Name() string
	Apply(b Backend, s *scene.Scene) error
}

type RenderPass struct{}

func (RenderPass) Name() string { return "render" }

func (RenderPass) Apply(b Backend, s *scene.Scene) error {
	return b.RenderScene(s)
}

type BloomPass struct {
	Params BloomParams
}

func (BloomPass) Name() string { return "bloom" }

func (p BloomPass) Apply(b Backend, _ *scene.Scene) error {
	return b.Bloom(p.Params)
}

// Composer runs its passes in order against one shared surface.
type Composer struct {
	backend Backend
	passes  []Pass

	width, height int
	pixelRatio    float64
	lost          bool
}

// NewComposer returns the fixed two-pass chain: scene render, then bloom.
func NewComposer(backend Backend, width, height int, pixelRatio float64) *Composer {
	c := &Composer{
		backend:    backend,
		passes:     []Pass{RenderPass{}, BloomPass{Params: DefaultBloom}},
		pixelRatio: 1,
	}
	c.SetPixelRatio(pixelRatio)
	c.SetSize(width, height)
	return c
}

func (c *Composer) Passes() []Pass {
	return c.passes
}

// SetSize sets the logical surface size. The backend receives the size scaled
// by the pixel ratio.
func (c *Composer) SetSize(width, height int) {
	c.width, c.height = width, height
	c.backend.Resize(c.BufferSize())
}

func (c *Composer) SetPixelRatio(ratio float64) {
	if ratio <= 0 {
		ratio = 1
	}
	c.pixelRatio = ratio
	if c.width > 0 && c.height > 0 {
		c.backend.Resize(c.BufferSize())
	}
}

func (c *Composer) Size() (width, height int) {
	return c.width, c.height
}

func (c *Composer) PixelRatio() float64 {
	return c.pixelRatio
}

// BufferSize is the backing size in device pixels.
func (c *Composer) BufferSize() (width, height int) {
	return int(math.Floor(float64(c.width) * c.pixelRatio)), int(math.Floor(float64(c.height) * c.pixelRatio))
}

// Render composes one frame.
func (c *Composer) Render(s *scene.Scene) error {
	if c.lost {
		if err := c.backend.Acquire(); err != nil {
			return fmt.Errorf("re-acquire surface: %w", err)
		}
		c.backend.Resize(c.BufferSize())
		c.lost = false
		utils.Info("Composer: surface re-acquired")
	}

	for _, pass := range c.passes {
		if err := pass.Apply(c.backend, s); err != nil {
			if errors.Is(err, ErrSurfaceLost) {
				c.lost = true
			}
			return fmt.Errorf("%s pass: %w", pass.Name(), err)
		}
	}

	if err := c.backend.Present(); err != nil {
		if errors.Is(err, ErrSurfaceLost) {
			c.lost = true
		}
		return fmt.Errorf("present: %w", err)
	}
	return nil
}
