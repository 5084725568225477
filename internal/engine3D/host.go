package engine3D

import (
	"context"

	"orbitscene/internal/scheduler"
	"orbitscene/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// idleWait is how long the loop sleeps between event polls while no frame
// callback is registered.
const idleWait = 1.0 / 60

// ResizeFunc receives the new logical window size.
type ResizeFunc func(width, height int)

// Host runs raylib's window loop and dispatches frame callbacks once per
// refresh. Presentation is paced by vsync or raylib's target FPS.
type Host struct {
	scheduler.Queue

	resize  []ResizeFunc
	overlay []func()
}

func NewHost() *Host {
	return &Host{}
}

// OnResize registers fn to be told about window size changes.
func (h *Host) OnResize(fn ResizeFunc) {
	h.resize = append(h.resize, fn)
}

// OnOverlay registers fn to draw on top of each dispatched frame.
func (h *Host) OnOverlay(fn func()) {
	h.overlay = append(h.overlay, fn)
}

// Run loops until the window is closed or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	width, height := rl.GetScreenWidth(), rl.GetScreenHeight()

	for !rl.WindowShouldClose() {
		if err := ctx.Err(); err != nil {
			utils.Info("Host: stopping: %v", err)
			return nil
		}

		if rl.IsWindowResized() {
			w, hh := rl.GetScreenWidth(), rl.GetScreenHeight()
			if w != width || hh != height {
				width, height = w, hh
				h.notifyResize(width, height)
			}
		}

		if h.Pending() == 0 {
			rl.WaitTime(idleWait)
			rl.PollInputEvents()
			continue
		}

		rl.BeginDrawing()
		h.Dispatch()
		for _, draw := range h.overlay {
			draw()
		}
		rl.EndDrawing()
	}

	utils.Info("Host: window closed")
	return nil
}

func (h *Host) notifyResize(width, height int) {
	utils.Debug("Host: window resized to %dx%d", width, height)
	for _, fn := range h.resize {
		fn(width, height)
	}
}
