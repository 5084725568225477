package scene

import "github.com/go-gl/mathgl/mgl64"

// Fixed scene parameters.
const (
	CameraFov      = 50.0
	CameraNear     = 1.0
	CameraFar      = 10000.0
	CameraDistance = 50.0

	CentralRadius  = 4.0
	OrbiterRadius  = 1.5
	SphereSegments = 30

	BodyColor     Color = 0xff4013
	BodyEmissive  Color = 0x000000
	BodyRoughness       = 0.3
	BodyMetalness       = 0.35

	PointLightColor     Color = 0xffffff
	PointLightIntensity       = 8.0
	PointLightDistance        = 29.0
	PointLightDecay           = 2.0

	AmbientColor     Color = 0x404040
	AmbientIntensity       = 5.0

	ParticleCount  = 10000
	ParticleSpread = 2000.0
	ParticleColor  Color = 0x888888
	ParticleSize         = 1.0

	BackgroundColor Color = 0x000000
)

var (
	PointLightPosition = mgl64.Vec3{-15, 15, -15}

	// Placement before the first frame overwrites it.
	OrbiterStartPositions = [3]mgl64.Vec3{
		{-15, 15, -15},
		{0, 0, 15},
		{20, 0, -20},
	}
)
