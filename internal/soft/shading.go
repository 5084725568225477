package soft

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"orbitscene/internal/scene"
)

// Lights is what a surface point is lit by.
type Lights struct {
	Point   *scene.PointLight
	Ambient *scene.AmbientLight
}

// Shade returns the linear outgoing color of a material at world point p with
// unit normal n, seen from eye. It evaluates the same model as the GPU
// backend: Lambert diffuse plus GGX specular under one point light, and a
// diffuse ambient term.
func Shade(m *scene.StandardMaterial, lights Lights, p, n, eye mgl64.Vec3) mgl64.Vec3 {
	base := linearVec(m.Color)
	diffuse := base.Mul(1 - m.Metalness)
	f0 := mgl64.Vec3{0.04, 0.04, 0.04}.Mul(1 - m.Metalness).Add(base.Mul(m.Metalness))
	alpha := math.Max(m.Roughness*m.Roughness, 0.0525)

	color := mgl64.Vec3{}

	if light := lights.Point; light != nil {
		toLight := light.WorldPosition().Sub(p)
		d := toLight.Len()
		if d > 0 {
			l := toLight.Mul(1 / d)
			v := eye.Sub(p).Normalize()
			h := l.Add(v).Normalize()

			nl := clamp01(n.Dot(l))
			nv := clamp01(n.Dot(v)) + 1e-5
			nh := clamp01(n.Dot(h))
			vh := clamp01(v.Dot(h))

			irradiance := linearVec(light.Color).Mul(light.Intensity * light.Attenuation(d) * nl)

			fresnel := f0.Add(mgl64.Vec3{1, 1, 1}.Sub(f0).Mul(math.Pow(1-vh, 5)))
			specular := fresnel.Mul(smithVisibility(nl, nv, alpha) * ggx(nh, alpha))
			brdf := diffuse.Mul(1 / math.Pi).Add(specular)

			color = color.Add(mul3(irradiance, brdf))
		}
	}

	if amb := lights.Ambient; amb != nil {
		ambient := linearVec(amb.Color).Mul(amb.Intensity)
		color = color.Add(mul3(ambient, diffuse.Mul(1/math.Pi)))
	}

	return color.Add(linearVec(m.Emissive))
}

func ggx(nh, alpha float64) float64 {
	a2 := alpha * alpha
	denom := nh*nh*(a2-1) + 1
	return a2 / (math.Pi * denom * denom)
}

func smithVisibility(nl, nv, alpha float64) float64 {
	a2 := alpha * alpha
	gv := nl * math.Sqrt(a2+(1-a2)*nv*nv)
	gl := nv * math.Sqrt(a2+(1-a2)*nl*nl)
	return 0.5 / math.Max(gv+gl, 1e-6)
}

func linearVec(c scene.Color) mgl64.Vec3 {
	r, g, b := c.Linear()
	return mgl64.Vec3{r, g, b}
}

func mul3(a, b mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{a[0] * b[0], a[1] * b[1], a[2] * b[2]}
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

// Encode converts a linear component to sRGB in [0, 1].
func Encode(v float64) float64 {
	v = clamp01(v)
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}
