package soft

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"

	"orbitscene/internal/animation"
	"orbitscene/internal/scheduler"
	"orbitscene/internal/utils"
)

// Host drives frame callbacks without a display. Each refresh advances Clock
// by one frame interval, so a run is reproducible.
type Host struct {
	scheduler.Queue

	Clock *animation.ManualClock
	FPS   float64
}

func NewHost(fps float64) *Host {
	if fps <= 0 {
		fps = 60
	}
	return &Host{Clock: &animation.ManualClock{}, FPS: fps}
}

// Run dispatches up to frames refreshes, fewer if nothing is registered or ctx
// is done. Returns the number of refreshes that ran a callback.
func (h *Host) Run(ctx context.Context, frames int) (int, error) {
	done := 0
	for done < frames {
		if err := ctx.Err(); err != nil {
			return done, err
		}
		if h.Pending() == 0 {
			utils.Debug("Headless host: nothing registered after %d frames", done)
			break
		}
		h.Dispatch()
		done++
		h.Clock.Advance(1 / h.FPS)
	}
	return done, nil
}

// Capture writes presented frames as numbered PNG files under Dir.
type Capture struct {
	Dir   string
	count int
}

func NewCapture(dir string) (*Capture, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create capture dir: %w", err)
	}
	return &Capture{Dir: dir}, nil
}

// Write saves frame as frame_NNNN.png. It fits Renderer.OnPresent.
func (c *Capture) Write(frame image.Image) error {
	path := filepath.Join(c.Dir, fmt.Sprintf("frame_%04d.png", c.count))
	if err := gg.NewContextForImage(frame).SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	c.count++
	utils.Debug("Capture: wrote %s", path)
	return nil
}

// Count is the number of frames written.
func (c *Capture) Count() int {
	return c.count
}
