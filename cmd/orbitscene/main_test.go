package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbitscene/internal/config"
	"orbitscene/internal/utils"
)

func TestApplyFlagsOnlyOverridesGivenFlags(t *testing.T) {
	cfg := config.Default()
	cfg.Window.Width = 1024

	applyFlags(&cfg, flagValues{width: 640, height: 480}, map[string]bool{"height": true})

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
}

func TestApplyFlagsFPSTarget(t *testing.T) {
	cfg := config.Default()
	applyFlags(&cfg, flagValues{fps: 30}, map[string]bool{"fps": true})
	assert.Equal(t, 30, cfg.Window.TargetFPS)
	assert.Equal(t, 60.0, cfg.Headless.FPS)

	cfg = config.Default()
	applyFlags(&cfg, flagValues{fps: 24, headless: true, frames: 10, out: "frames", seed: 9},
		map[string]bool{"fps": true, "headless": true, "frames": true, "out": true, "seed": true})
	assert.True(t, cfg.Headless.Enabled)
	assert.Equal(t, 24.0, cfg.Headless.FPS)
	assert.Zero(t, cfg.Window.TargetFPS)
	assert.Equal(t, 10, cfg.Headless.Frames)
	assert.Equal(t, "frames", cfg.Headless.Out)
	assert.Equal(t, int64(9), cfg.Headless.Seed)
}

func TestLoadConfigDefaultsWithoutPath(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), *cfg)
}

func TestSetupLogging(t *testing.T) {
	defer func(level utils.LogLevel, debug bool) {
		utils.CurrentLevel, utils.DebugMode, utils.ShowDebugUI = level, debug, debug
	}(utils.CurrentLevel, utils.DebugMode)

	require.NoError(t, setupLogging(config.LogConfig{Level: "info"}))
	assert.Equal(t, utils.LevelInfo, utils.CurrentLevel)
	assert.False(t, utils.ShowDebugUI)

	require.NoError(t, setupLogging(config.LogConfig{Level: "error", Debug: true}))
	assert.Equal(t, utils.LevelDebug, utils.CurrentLevel)
	assert.True(t, utils.ShowDebugUI)

	assert.Error(t, setupLogging(config.LogConfig{Level: "loud"}))
}
