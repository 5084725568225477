package debug

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"orbitscene/internal/animation"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Section is a titled group of overlay rows.
type Section struct {
	Title string
	Rows  []string
}

// Stats is what the overlay shows for one frame.
type Stats struct {
	FPS           float64
	FrameTime     float64
	Snapshot      animation.Snapshot
	Width, Height int
	PixelRatio    float64
	AllocMB       float64
}

// Sections formats stats into the overlay layout.
func Sections(s Stats) []Section {
	p := s.Snapshot.Positions
	bodies := make([]string, 0, len(p.Bodies))
	for i, b := range p.Bodies {
		bodies = append(bodies, fmt.Sprintf("Orbiter %d: (%.2f, %.2f, %.2f)", i+1, b.X(), b.Y(), b.Z()))
	}

	return []Section{
		{Title: "Timing:", Rows: []string{
			fmt.Sprintf("FPS: %.1f", s.FPS),
			fmt.Sprintf("Frame Time: %.2f ms", s.FrameTime*1000),
			fmt.Sprintf("Elapsed: %.2f s", s.Snapshot.Elapsed),
			fmt.Sprintf("Frames: %d", s.Snapshot.Frames),
		}},
		{Title: "Scene:", Rows: append(bodies,
			fmt.Sprintf("Camera: (%.2f, %.2f)", p.CameraX, p.CameraZ),
		)},
		{Title: "Surface:", Rows: []string{
			fmt.Sprintf("Window: %dx%d @%.2gx", s.Width, s.Height, s.PixelRatio),
			fmt.Sprintf("Allocated: %.2f MB", s.AllocMB),
		}},
	}
}

// Overlay draws the stats panel in the top-left corner.
type Overlay struct {
	snapshot   func() animation.Snapshot
	pixelRatio float64

	fontHeight int
	lineHeight int

	lastUpdateTime time.Time
	frameCount     int
	fps            float64
	memStats       runtime.MemStats
}

func NewOverlay(snapshot func() animation.Snapshot, pixelRatio float64) *Overlay {
	return &Overlay{
		snapshot:       snapshot,
		pixelRatio:     pixelRatio,
		lastUpdateTime: time.Now(),
	}
}

func (o *Overlay) updateLayout(screenHeight int) {
	scale := math.Max(1.0, float64(screenHeight)/1080.0)
	o.fontHeight = int(16 * scale)
	o.lineHeight = int(22 * scale)
}

// tick counts a frame and refreshes the once-per-second figures.
func (o *Overlay) tick(now time.Time) {
	o.frameCount++
	if elapsed := now.Sub(o.lastUpdateTime); elapsed >= time.Second {
		o.fps = float64(o.frameCount) / elapsed.Seconds()
		o.frameCount = 0
		o.lastUpdateTime = now
		runtime.ReadMemStats(&o.memStats)
	}
}

// Draw must run between BeginDrawing and EndDrawing.
func (o *Overlay) Draw() {
	o.tick(time.Now())
	o.updateLayout(rl.GetScreenHeight())

	stats := Stats{
		FPS:        o.fps,
		FrameTime:  float64(rl.GetFrameTime()),
		Snapshot:   o.snapshot(),
		Width:      rl.GetScreenWidth(),
		Height:     rl.GetScreenHeight(),
		PixelRatio: o.pixelRatio,
		AllocMB:    float64(o.memStats.Alloc) / 1024 / 1024,
	}

	sections := Sections(stats)
	rows := 0
	for _, s := range sections {
		rows += len(s.Rows) + 2
	}
	rl.DrawRectangle(0, 0, int32(22*o.fontHeight), int32(rows*o.lineHeight), rl.NewColor(0, 0, 0, 160))

	x, y := int32(10), int32(6)
	for i, s := range sections {
		if i > 0 {
			y += int32(o.lineHeight / 2)
		}
		o.text(s.Title, x, y, headerColor)
		y += int32(o.lineHeight)
		for _, row := range s.Rows {
			o.text(row, x+10, y, rl.White)
			y += int32(o.lineHeight)
		}
	}
}

var headerColor = rl.NewColor(255, 200, 120, 255)

func (o *Overlay) text(s string, x, y int32, color rl.Color) {
	rl.DrawText(s, x, y, int32(o.fontHeight), color)
}
