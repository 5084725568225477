package engine3D

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orbitscene/internal/engine3D/shader"
	"orbitscene/internal/scene"
)

func TestMipSize(t *testing.T) {
	tests := []struct {
		w, h  int32
		level int
		ww    int32
		wh    int32
	}{
		{1920, 1080, 0, 960, 540},
		{1920, 1080, 1, 480, 270},
		{1920, 1080, 4, 60, 34},
		{801, 601, 0, 401, 301},
		{1, 1, 0, 1, 1},
		{2, 2, 4, 1, 1},
	}
	for _, tt := range tests {
		w, h := MipSize(tt.w, tt.h, tt.level)
		assert.Equal(t, tt.ww, w, "%dx%d level %d", tt.w, tt.h, tt.level)
		assert.Equal(t, tt.wh, h, "%dx%d level %d", tt.w, tt.h, tt.level)
	}
}

func TestToMatrixKeepsColumnMajorOrder(t *testing.T) {
	m := toMatrix(mgl64.Translate3D(1, 2, 3))
	assert.Equal(t, float32(1), m.M12)
	assert.Equal(t, float32(2), m.M13)
	assert.Equal(t, float32(3), m.M14)
	assert.Equal(t, float32(1), m.M15)
	assert.Equal(t, float32(0), m.M3)

	cam := scene.NewPerspectiveCamera(scene.CameraFov, 1, scene.CameraNear, scene.CameraFar)
	p := toMatrix(cam.Projection)
	assert.Equal(t, float32(-1), p.M11, "perspective w row")
	assert.Equal(t, float32(0), p.M15)
}

func TestLinearColor(t *testing.T) {
	c := linearColor(0xffffff)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(255), c.A)

	grey := linearColor(scene.ParticleColor)
	assert.InDelta(t, 63, int(grey.G), 1)
}

func TestBlurStepsInLevelPixels(t *testing.T) {
	// level 1 of a 1080p buffer reads the 960x540 level 0 but draws 480x270
	target := shader.TexelSize(MipSize(1920, 1080, 1))
	input := shader.TexelSize(MipSize(1920, 1080, 0))

	assert.Equal(t, [2]float32{1.0 / 480, 1.0 / 270}, target)
	assert.Equal(t, 2*input[0], target[0], "horizontal step matches the vertical pass")
}

func TestBuildStarBatches(t *testing.T) {
	field := scene.NewParticleField(rand.New(rand.NewPCG(4, 4)), 3, scene.ParticleSpread)

	batches := buildStarBatches(field)
	require.Len(t, batches, 1)
	b := batches[0]
	assert.Len(t, b.vertices, 3*4*3)
	assert.Len(t, b.corners, 3*4*2)
	assert.Len(t, b.indices, 3*6)

	// every corner of a quad sits on its star
	second := field.At(1)
	for v := 4; v < 8; v++ {
		assert.Equal(t, float32(second.X()), b.vertices[v*3])
		assert.Equal(t, float32(second.Z()), b.vertices[v*3+2])
	}
	assert.Equal(t, []uint16{4, 5, 6, 4, 6, 7}, b.indices[6:12])
	assert.Equal(t, []float32{-0.5, -0.5, 0.5, -0.5, 0.5, 0.5, -0.5, 0.5}, b.corners[:8])
}

func TestBuildStarBatchesSplitsAtIndexLimit(t *testing.T) {
	field := scene.NewParticleField(rand.New(rand.NewPCG(4, 4)), maxStarsPerBatch+2, scene.ParticleSpread)

	batches := buildStarBatches(field)
	require.Len(t, batches, 2)
	assert.Len(t, batches[0].indices, maxStarsPerBatch*6)
	assert.Equal(t, uint16(65535), batches[0].indices[len(batches[0].indices)-1])
	assert.Len(t, batches[1].vertices, 2*4*3)
	assert.Equal(t, uint16(0), batches[1].indices[0], "indices restart per batch")
}

func TestBuildStarBatchesFullField(t *testing.T) {
	field := scene.NewParticleField(rand.New(rand.NewPCG(1, 1)), scene.ParticleCount, scene.ParticleSpread)
	batches := buildStarBatches(field)

	quads := 0
	for _, b := range batches {
		quads += len(b.indices) / 6
	}
	assert.Equal(t, scene.ParticleCount, quads)
}
