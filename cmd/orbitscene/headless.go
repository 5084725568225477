package main

import (
	"context"
	"fmt"

	"orbitscene/internal/app"
	"orbitscene/internal/config"
	"orbitscene/internal/soft"
	"orbitscene/internal/utils"
)

func runHeadless(ctx context.Context, cfg *config.Config, seed int64) error {
	host := soft.NewHost(cfg.Headless.FPS)
	renderer := soft.NewRenderer()

	if cfg.Headless.Out != "" {
		capture, err := soft.NewCapture(cfg.Headless.Out)
		if err != nil {
			return err
		}
		renderer.OnPresent(capture.Write)
		defer func() {
			utils.Info("Headless: wrote %d frames to %s", capture.Count(), capture.Dir)
		}()
	}

	a := app.New(app.Options{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		PixelRatio: cfg.Window.PixelRatio,
		Seed:       seed,
	}, renderer, host.Clock, host)

	a.Start()
	defer a.Stop()

	n, err := host.Run(ctx, cfg.Headless.Frames)
	if err != nil {
		return fmt.Errorf("headless run stopped after %d frames: %w", n, err)
	}
	utils.Info("Headless: rendered %d frames", n)
	return nil
}
