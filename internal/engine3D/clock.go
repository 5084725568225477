package engine3D

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Clock reports seconds since its creation from raylib's timer, which starts
// with the window.
type Clock struct {
	start float64
}

func NewClock() *Clock {
	return &Clock{start: rl.GetTime()}
}

func (c *Clock) Now() float64 {
	return rl.GetTime() - c.start
}
