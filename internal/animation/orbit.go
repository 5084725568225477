package animation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	OrbitSpeed       = 2.5
	CameraOrbitSpeed = 0.125

	// TimeOffset keeps the third body and the camera out of phase with the
	// first two so the orbiting bodies never collide.
	TimeOffset = 1.5

	innerOrbitRadius  = 10.0
	outerOrbitRadius  = 11.0
	cameraOrbitRadius = 50.0
)

// Positions is one frame's worth of transforms. The camera only moves in the
// horizontal plane, its height is left as placed.
type Positions struct {
	Bodies  [3]mgl64.Vec3
	CameraX float64
	CameraZ float64
}

// Orbits evaluates the closed-form orbit of every moving object at elapsed
// time t (seconds). Body positions are local to the central body.
func Orbits(t float64) Positions {
	phase := OrbitSpeed * t
	offsetTime := t + TimeOffset
	offsetPhase := OrbitSpeed * offsetTime
	cameraPhase := CameraOrbitSpeed * offsetTime

	sin, cos := math.Sin(phase), math.Cos(phase)

	return Positions{
		Bodies: [3]mgl64.Vec3{
			// left to right
			{-innerOrbitRadius * sin, innerOrbitRadius * sin, innerOrbitRadius * cos},
			// right to left
			{innerOrbitRadius * cos, innerOrbitRadius * cos, innerOrbitRadius * sin},
			// bottom to top
			{0, outerOrbitRadius * math.Sin(offsetPhase), outerOrbitRadius * math.Cos(offsetPhase)},
		},
		CameraX: cameraOrbitRadius * math.Sin(cameraPhase),
		CameraZ: cameraOrbitRadius * math.Cos(cameraPhase),
	}
}
