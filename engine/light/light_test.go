package light

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-aviator/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestDefaultLight(t *testing.T) {
	l := NewLight()
	assert.Equal(t, [3]float32{2, 2, 0}, l.Direction())
	assert.True(t, l.Enabled())
	assert.Equal(t, l.Direction(), l.Uniform())

	cam := l.ShadowCamera()
	assert.Equal(t, [3]float32{2, 2, 0}, cam.Position())
	assert.Equal(t, [3]float32{-2, -2, 0}, cam.Direction())

	// The origin sits straight ahead of the shadow camera.
	p := common.TransformPoint(cam.View(), [3]float32{0, 0, 0})
	assert.InDelta(t, 0, float64(p[0]), 1e-6)
	assert.InDelta(t, 0, float64(p[1]), 1e-6)
	assert.InDelta(t, float64(math32.Sqrt(8)), float64(p[2]), 1e-5)
}

func TestDisabledLightUploadsZero(t *testing.T) {
	l := NewLight(WithEnabled(false))
	assert.Equal(t, [3]float32{}, l.Uniform())
	l.SetEnabled(true)
	assert.Equal(t, [3]float32{2, 2, 0}, l.Uniform())
}

func TestSetDirectionMovesShadowCamera(t *testing.T) {
	l := NewLight(WithDirection(0, 5, 0))
	assert.Equal(t, [3]float32{0, 0, 1}, l.ShadowCamera().Up())

	l.SetDirection([3]float32{1, 1, 1})
	assert.Equal(t, [3]float32{1, 1, 1}, l.ShadowCamera().Position())
	assert.Equal(t, [3]float32{-1, -1, -1}, l.ShadowCamera().Direction())
	assert.Equal(t, [3]float32{0, 1, 0}, l.ShadowCamera().Up())
}

func TestSetVerticalDirectionKeepsViewValid(t *testing.T) {
	l := NewLight()
	l.SetDirection([3]float32{0, 3, 0})

	cam := l.ShadowCamera()
	assert.Equal(t, [3]float32{0, 0, 1}, cam.Up())

	view := cam.View()
	for row := 0; row < 3; row++ {
		axis := [3]float32{view[row][0], view[row][1], view[row][2]}
		assert.NotEqual(t, [3]float32{}, axis, "view row %d", row)
	}
	p := common.TransformPoint(view, [3]float32{0, 0, 0})
	assert.InDelta(t, 0, float64(p[0]), 1e-6)
	assert.InDelta(t, 0, float64(p[1]), 1e-6)
	assert.InDelta(t, 3, float64(p[2]), 1e-5)
}

func TestZeroDirectionPanics(t *testing.T) {
	assert.Panics(t, func() { NewLight(WithDirection(0, 0, 0)) })
	assert.Panics(t, func() { NewLight().SetDirection([3]float32{}) })
}
