package utils

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	flags := log.Flags()
	prevLevel := CurrentLevel
	SetOutput(buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		log.SetFlags(flags)
		CurrentLevel = prevLevel
	})
	return buf
}

func TestLogLevelFiltering(t *testing.T) {
	buf := captureLog(t)
	CurrentLevel = LevelInfo

	Debug("hidden %d", 1)
	Info("shown %d", 2)
	Error("failed: %s", "boom")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO] shown 2")
	assert.Contains(t, out, "[ERROR] failed: boom")
}

func TestRaylibLogCallback(t *testing.T) {
	buf := captureLog(t)
	CurrentLevel = LevelWarn

	RaylibLogCallback(3, "INFO: context ready")
	assert.Empty(t, buf.String())

	RaylibLogCallback(4, "WARNING: shader fallback")
	assert.Contains(t, buf.String(), "[WARN] [RAYLIB] WARNING: shader fallback")

	ShowRaylibInfo = true
	defer func() { ShowRaylibInfo = false }()
	RaylibLogCallback(3, "INFO: context ready")
	assert.Contains(t, buf.String(), "[INFO] [RAYLIB] INFO: context ready")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    LogLevel
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{" warning ", LevelWarn, false},
		{"error", LevelError, false},
		{"verbose", LevelWarn, true},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestPixelRatioFromScreen(t *testing.T) {
	// 1920px over 508mm is 96 dpi.
	ratio, err := PixelRatioFromScreen(1920, 508)
	require.NoError(t, err)
	assert.Equal(t, 1.0, ratio)

	// 3840px over the same width is a 2x display.
	ratio, err = PixelRatioFromScreen(3840, 508)
	require.NoError(t, err)
	assert.Equal(t, 2.0, ratio)

	// low density clamps to 1
	ratio, err = PixelRatioFromScreen(800, 600)
	require.NoError(t, err)
	assert.Equal(t, 1.0, ratio)

	_, err = PixelRatioFromScreen(1920, 0)
	assert.Error(t, err)
}
