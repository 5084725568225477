package app

import (
	"math/rand/v2"

	"orbitscene/internal/animation"
	"orbitscene/internal/pipeline"
	"orbitscene/internal/scene"
	"orbitscene/internal/scheduler"
	"orbitscene/internal/utils"
)

// Options are the startup inputs of an App.
type Options struct {
	Width, Height int
	PixelRatio    float64
	Seed          int64
}

// App owns everything that lives for the whole run: the scene, the render
// pipeline, the animation core and the frame scheduler.
type App struct {
	Scene     *scene.Scene
	Composer  *pipeline.Composer
	Core      *animation.Core
	Scheduler *scheduler.Scheduler

	width, height int
}

// New builds the scene and wires it to backend, clock and host. Nothing is
// rendered until Start.
func New(opts Options, backend pipeline.Backend, clock animation.TimeSource, host scheduler.Host) *App {
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = 1, 1
	}

	seed := uint64(opts.Seed)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	s := scene.Build(rng, float64(width)/float64(height))
	composer := pipeline.NewComposer(backend, width, height, opts.PixelRatio)
	core := animation.NewCore(clock, s, composer)

	a := &App{
		Scene:    s,
		Composer: composer,
		Core:     core,
		width:    width,
		height:   height,
	}
	a.Scheduler = scheduler.New(host, core.Frame)

	utils.Info("Scene ready: %d meshes, %d stars, surface %dx%d @%.2gx",
		len(s.Meshes), s.Particles.Count(), width, height, composer.PixelRatio())
	return a
}

// Resize follows a change of the display surface. Non-positive sizes are
// ignored and repeating a size changes nothing.
func (a *App) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		utils.Debug("Resize: ignoring %dx%d", width, height)
		return
	}
	if width == a.width && height == a.height {
		return
	}
	a.width, a.height = width, height

	a.Scene.Camera.SetAspect(float64(width) / float64(height))
	a.Composer.SetSize(width, height)
	utils.Debug("Resize: %dx%d", width, height)
}

func (a *App) Size() (width, height int) {
	return a.width, a.height
}

func (a *App) Start() {
	a.Scheduler.Start()
}

func (a *App) Stop() {
	a.Scheduler.Stop()
}
