package scene

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// Scene is the complete static hierarchy. Everything is created once by Build.
type Scene struct {
	Camera     *Camera
	PointLight *PointLight
	Ambient    *AmbientLight
	Central    *Mesh
	Orbiters   [3]*Mesh
	Particles  *ParticleField
	Background Color

	// Meshes lists every mesh in draw order.
	Meshes []*Mesh
}

// Handles are the objects the animation mutates every frame.
type Handles struct {
	Orbiters [3]*Node
	Camera   *Camera
}

// Build assembles the scene. aspect is the initial surface aspect ratio.
func Build(rng *rand.Rand, aspect float64) *Scene {
	camera := NewPerspectiveCamera(CameraFov, aspect, CameraNear, CameraFar)
	camera.Position = mgl64.Vec3{0, 0, CameraDistance}
	camera.LookAt(mgl64.Vec3{})

	pointLight := &PointLight{
		Node:      Node{Name: "pointLight", Position: PointLightPosition},
		Color:     PointLightColor,
		Intensity: PointLightIntensity,
		Distance:  PointLightDistance,
		Decay:     PointLightDecay,
	}

	material := &StandardMaterial{
		Color:     BodyColor,
		Emissive:  BodyEmissive,
		Roughness: BodyRoughness,
		Metalness: BodyMetalness,
	}

	central := &Mesh{
		Node:     Node{Name: "central"},
		Geometry: &SphereGeometry{Radius: CentralRadius, WidthSegments: SphereSegments, HeightSegments: SphereSegments},
		Material: material,
	}

	orbiterGeometry := &SphereGeometry{Radius: OrbiterRadius, WidthSegments: SphereSegments, HeightSegments: SphereSegments}
	s := &Scene{
		Camera:     camera,
		PointLight: pointLight,
		Ambient:    &AmbientLight{Color: AmbientColor, Intensity: AmbientIntensity},
		Central:    central,
		Particles:  NewParticleField(rng, ParticleCount, ParticleSpread),
		Background: BackgroundColor,
		Meshes:     []*Mesh{central},
	}

	names := [3]string{"orbiter1", "orbiter2", "orbiter3"}
	for i := range s.Orbiters {
		orbiter := &Mesh{
			Node:     Node{Name: names[i], Position: OrbiterStartPositions[i]},
			Geometry: orbiterGeometry,
			Material: material,
		}
		central.Add(&orbiter.Node)
		s.Orbiters[i] = orbiter
		s.Meshes = append(s.Meshes, orbiter)
	}

	return s
}

func (s *Scene) Handles() Handles {
	return Handles{
		Orbiters: [3]*Node{&s.Orbiters[0].Node, &s.Orbiters[1].Node, &s.Orbiters[2].Node},
		Camera:   s.Camera,
	}
}
