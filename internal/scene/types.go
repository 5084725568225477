package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Color is a packed 0xRRGGBB value.
type Color uint32

// RGB returns the components in [0, 1].
func (c Color) RGB() (r, g, b float64) {
	return float64(c>>16&0xff) / 255, float64(c>>8&0xff) / 255, float64(c&0xff) / 255
}

// Linear returns the components converted from sRGB to linear light.
func (c Color) Linear() (r, g, b float64) {
	r, g, b = c.RGB()
	return srgbToLinear(r), srgbToLinear(g), srgbToLinear(b)
}

func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// RGBA8 returns the components as bytes with an opaque alpha.
func (c Color) RGBA8() (r, g, b, a uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c), 0xff
}

// Node is an element of the scene graph. Position is relative to Parent.
type Node struct {
	Name     string
	Position mgl64.Vec3
	Parent   *Node
	Children []*Node
}

// Add parents each child to n.
func (n *Node) Add(children ...*Node) {
	for _, child := range children {
		if child.Parent != nil {
			child.Parent.remove(child)
		}
		child.Parent = n
		n.Children = append(n.Children, child)
	}
}

func (n *Node) remove(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			return
		}
	}
}

// WorldPosition composes positions up the parent chain.
func (n *Node) WorldPosition() mgl64.Vec3 {
	pos := n.Position
	for p := n.Parent; p != nil; p = p.Parent {
		pos = pos.Add(p.Position)
	}
	return pos
}

// SphereGeometry describes a UV sphere.
type SphereGeometry struct {
	Radius         float64
	WidthSegments  int
	HeightSegments int
}

// StandardMaterial is a metalness/roughness surface description.
type StandardMaterial struct {
	Color     Color
	Emissive  Color
	Roughness float64
	Metalness float64
}

type Mesh struct {
	Node
	Geometry *SphereGeometry
	Material *StandardMaterial
}

type PointLight struct {
	Node
	Color     Color
	Intensity float64
	Distance  float64
	Decay     float64
}

// Attenuation returns the distance falloff at distance d: inverse-power decay
// windowed to reach zero at Distance. A zero Distance disables the window.
func (l *PointLight) Attenuation(d float64) float64 {
	falloff := 1 / math.Max(math.Pow(d, l.Decay), 0.01)
	if l.Distance > 0 {
		ratio := d / l.Distance
		window := clamp01(1 - ratio*ratio*ratio*ratio)
		falloff *= window * window
	}
	return falloff
}

type AmbientLight struct {
	Color     Color
	Intensity float64
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
