package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-aviator/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.Equal(t, [3]float32{0, 1, -2}, c.Position())
	assert.Equal(t, [3]float32{0, -1, 2}, c.Direction())
	assert.Equal(t, [3]float32{0, 1, 0}, c.Up())
	assert.InDelta(t, float64(math32.Pi/3), float64(c.Fov()), 1e-7)
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(1024), c.Far())
	w, h := c.Viewport()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	assert.Equal(t, common.ViewMatrix(c.Position(), c.Direction(), c.Up()), c.View())
	assert.Equal(t, common.PerspectiveMatrix(800, 600, c.Fov(), 0.1, 1024), c.Perspective())
}

func TestCameraLooksAtOrigin(t *testing.T) {
	c := NewCamera()
	// The camera looks from (0,1,-2) through (0,0,0): the origin lies on the view axis.
	p := common.TransformPoint(c.View(), [3]float32{0, 0, 0})
	assert.InDelta(t, 0, float64(p[0]), 1e-6)
	assert.InDelta(t, 0, float64(p[1]), 1e-6)
	assert.InDelta(t, float64(math32.Sqrt(5)), float64(p[2]), 1e-5)
}

func TestSettersRecomputeMatrices(t *testing.T) {
	c := NewCamera()
	before := c.View()
	c.SetPosition([3]float32{0, 2, -4})
	assert.NotEqual(t, before, c.View())

	c.SetDirection([3]float32{0, 0, 1})
	assert.Equal(t, common.ViewMatrix([3]float32{0, 2, -4}, [3]float32{0, 0, 1}, [3]float32{0, 1, 0}), c.View())

	c.SetUp([3]float32{1, 0, 0})
	assert.Equal(t, [3]float32{1, 0, 0}, c.Up())
	assert.Equal(t, common.ViewMatrix([3]float32{0, 2, -4}, [3]float32{0, 0, 1}, [3]float32{1, 0, 0}), c.View())

	c.SetViewport(1024, 512)
	assert.InDelta(t, float64(c.Perspective()[1][1]/2), float64(c.Perspective()[0][0]), 1e-6)

	c.SetViewport(0, 100)
	w, h := c.Viewport()
	assert.Equal(t, 1024, w)
	assert.Equal(t, 512, h)
}

func TestOptions(t *testing.T) {
	c := NewCamera(
		WithPosition(1, 2, 3),
		WithDirection(0, 0, -1),
		WithUp(0, 1, 0),
		WithFov(1),
		WithClipPlanes(1, 100),
		WithViewport(640, 480),
	)
	assert.Equal(t, [3]float32{1, 2, 3}, c.Position())
	assert.Equal(t, float32(1), c.Fov())
	assert.Equal(t, float32(100), c.Far())
	assert.Equal(t, common.PerspectiveMatrix(640, 480, 1, 1, 100), c.Perspective())

	assert.Panics(t, func() { WithClipPlanes(0, 1) })
	assert.Panics(t, func() { WithClipPlanes(2, 1) })
}
