package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func requireMatNear(t *testing.T, want, got Mat4) {
	t.Helper()
	w, g := want.Flatten(), got.Flatten()
	require.InDeltaSlice(t, w[:], g[:], eps)
}

// glOf reinterprets the row-vector matrix as mgl32's column-major storage.
func glOf(m Mat4) mgl32.Mat4 {
	return mgl32.Mat4(m.Flatten())
}

func TestMulIdentity(t *testing.T) {
	m := Mat4{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	assert.Equal(t, m, Mul(m, Identity()))
	assert.Equal(t, m, Mul(Identity(), m))
}

func TestMulKnownProduct(t *testing.T) {
	a := Mat4{
		{1, 2, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	b := Mat4{
		{1, 0, 0, 0},
		{3, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	want := Mat4{
		{7, 2, 0, 0},
		{3, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	assert.Equal(t, want, Mul(a, b))
}

func TestRotationMatchesMathgl(t *testing.T) {
	tests := []struct {
		axis Axis
		gl   func(float32) mgl32.Mat4
	}{
		{AxisX, mgl32.HomogRotate3DX},
		{AxisY, mgl32.HomogRotate3DY},
		{AxisZ, mgl32.HomogRotate3DZ},
	}
	for _, tt := range tests {
		t.Run(tt.axis.String(), func(t *testing.T) {
			for _, angle := range []float32{0, 0.3, 1, math32.Pi / 2, 2.5, -1.2} {
				got := glOf(Rotation(angle, tt.axis))
				want := tt.gl(angle)
				assert.True(t, want.ApproxEqualThreshold(got, eps), "angle %v: want %v got %v", angle, want, got)
			}
		})
	}
}

func TestRotationOrthonormal(t *testing.T) {
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		for angle := float32(-6); angle <= 6; angle += 0.37 {
			r := Rotation(angle, axis)
			requireMatNear(t, Identity(), Mul(r, r.Transpose()))
			assert.InDelta(t, 1.0, float64(glOf(r).Mat3().Det()), eps, "axis %v angle %v", axis, angle)
		}
	}
}

func TestRotationUnknownAxisIsIdentity(t *testing.T) {
	assert.Equal(t, Identity(), Rotation(1.1, Axis(7)))
}

func TestComposeOrder(t *testing.T) {
	s := Scale(2, 3, 0.5)
	r := Rotation(0.7, AxisY)
	tr := Translation(1, -2, 4)
	p := Mul(Rotation(0.2, AxisZ), Translation(0, 5, 0))

	got := Compose(s, r, tr, p)
	requireMatNear(t, Mul(s, Mul(r, Mul(tr, p))), got)

	want := glOf(p).Mul4(glOf(tr)).Mul4(glOf(r)).Mul4(glOf(s))
	assert.True(t, want.ApproxEqualThreshold(glOf(got), eps))

	swapped := Compose(tr, r, s, p)
	assert.False(t, glOf(swapped).ApproxEqualThreshold(glOf(got), eps), "reordering must change the model")
}

func TestTransformPointScaleThenTranslate(t *testing.T) {
	m := Compose(Scale(2, 1, 1), Identity(), Translation(5, 0, 0), Identity())

	assert.InDeltaSlice(t, []float32{5, 0, 0}, sl(TransformPoint(m, [3]float32{0, 0, 0})), eps)
	assert.InDeltaSlice(t, []float32{7, 0, 0}, sl(TransformPoint(m, [3]float32{1, 0, 0})), eps)
}

func TestTransformPointMatchesMathgl(t *testing.T) {
	m := Compose(Scale(1, 2, 3), Rotation(0.4, AxisX), Translation(3, 2, 1), Identity())
	p := [3]float32{0.5, -1, 2}
	want := glOf(m).Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1})
	assert.InDeltaSlice(t, []float32{want[0], want[1], want[2]}, sl(TransformPoint(m, p)), eps)
}

func TestInvert(t *testing.T) {
	m := Compose(Scale(2, 4, 0.5), Rotation(1.3, AxisZ), Translation(-3, 1, 2), Identity())
	inv, ok := Invert(m)
	require.True(t, ok)
	requireMatNear(t, Identity(), Mul(m, inv))

	_, ok = Invert(Scale(0, 1, 1))
	assert.False(t, ok)
}

func TestNormalMatrixKeepsNormalsPerpendicular(t *testing.T) {
	m := Scale(4, 1, 1)
	n := NormalMatrix(m)
	// A plane with normal (1,1,0) contains the tangent (1,-1,0).
	tangent := TransformPoint(m, [3]float32{1, -1, 0})
	normal := TransformPoint(n, [3]float32{1, 1, 0})
	dot := tangent[0]*normal[0] + tangent[1]*normal[1] + tangent[2]*normal[2]
	assert.InDelta(t, 0, float64(dot), eps)
}

func TestViewMatrixMapsCameraToOrigin(t *testing.T) {
	pos := [3]float32{0, 1, -2}
	dir := [3]float32{0, -1, 2}
	v := ViewMatrix(pos, dir, [3]float32{0, 1, 0})

	assert.InDeltaSlice(t, []float32{0, 0, 0}, sl(TransformPoint(v, pos)), eps)

	ahead := [3]float32{pos[0] + dir[0], pos[1] + dir[1], pos[2] + dir[2]}
	got := TransformPoint(v, ahead)
	assert.InDelta(t, 0, float64(got[0]), eps)
	assert.InDelta(t, 0, float64(got[1]), eps)
	assert.InDelta(t, float64(math32.Sqrt(5)), float64(got[2]), eps)
}

func TestPerspectiveDepthRange(t *testing.T) {
	p := PerspectiveMatrix(800, 600, math32.Pi/3, 0.1, 1024)
	f := 1 / math32.Tan(math32.Pi/6)
	assert.InDelta(t, float64(f*0.75), float64(p[0][0]), eps)
	assert.InDelta(t, float64(f), float64(p[1][1]), eps)

	near := TransformPoint(p, [3]float32{0, 0, 0.1})
	far := TransformPoint(p, [3]float32{0, 0, 1024})
	assert.InDelta(t, 0, float64(near[2]), 1e-4)
	assert.InDelta(t, 1, float64(far[2]), 1e-4)
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]float32{}))
	assert.Len(t, SliceToBytes([]float32{1, 2, 3}), 12)

	m := Identity().Flatten()
	assert.Len(t, StructToBytes(&m), 64)
}

func sl(v [3]float32) []float32 {
	return v[:]
}
