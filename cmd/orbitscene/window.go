package main

import (
	"context"
	"errors"
	"fmt"

	"orbitscene/internal/app"
	"orbitscene/internal/config"
	"orbitscene/internal/debug"
	"orbitscene/internal/engine3D"
	"orbitscene/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func runWindow(ctx context.Context, cfg *config.Config, seed int64) error {
	var flags uint32 = rl.FlagVsyncHint | rl.FlagWindowResizable
	if cfg.Window.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	if cfg.Window.HighDPI {
		flags |= rl.FlagWindowHighdpi
	}
	rl.SetConfigFlags(flags)

	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return errors.New("failed to open window")
	}
	if cfg.Window.TargetFPS > 0 {
		rl.SetTargetFPS(int32(cfg.Window.TargetFPS))
	}

	ratio := pixelRatio(cfg.Window)
	defer utils.CloseX11()

	renderer, err := engine3D.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to init renderer: %w", err)
	}
	defer renderer.Close()

	host := engine3D.NewHost()
	a := app.New(app.Options{
		Width:      rl.GetScreenWidth(),
		Height:     rl.GetScreenHeight(),
		PixelRatio: ratio,
		Seed:       seed,
	}, renderer, engine3D.NewClock(), host)
	host.OnResize(a.Resize)

	if utils.ShowDebugUI {
		overlay := debug.NewOverlay(a.Core.Last, ratio)
		host.OnOverlay(overlay.Draw)
	}

	a.Start()
	defer a.Stop()

	utils.Info("Starting render loop...")
	return host.Run(ctx)
}

// pixelRatio prefers the configured ratio, then raylib's DPI scale, then the
// X11 screen density.
func pixelRatio(w config.WindowConfig) float64 {
	if w.PixelRatio > 0 {
		return w.PixelRatio
	}
	if scale := rl.GetWindowScaleDPI(); scale.X > 1 {
		return float64(scale.X)
	}
	ratio, err := utils.DisplayPixelRatio()
	if err != nil {
		utils.Debug("Pixel ratio: %v, using 1", err)
		return 1
	}
	return ratio
}
