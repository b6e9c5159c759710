package common

import (
	"unsafe"

	"github.com/chewxy/math32"
)

// Mat4 is a 4x4 homogeneous transform. The inner arrays are rows and points are
// treated as row vectors, so a point p maps to p·M and the translation lives in row 3.
type Mat4 [4][4]float32

// Axis selects one of the three principal axes for Rotation.
type Axis int

const (
	// AxisX selects the x axis.
	AxisX Axis = iota

	// AxisY selects the y axis.
	AxisY

	// AxisZ selects the z axis.
	AxisZ
)

// String returns the lowercase axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

// Identity returns the 4x4 identity matrix.
//
// Returns:
//   - Mat4: the identity matrix
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul multiplies two matrices with the plain triple loop.
// Result: out[i][j] = Σ_k a[i][k] * b[k][j]
//
// Parameters:
//   - a: left-hand matrix
//   - b: right-hand matrix
//
// Returns:
//   - Mat4: the product a·b
func Mul(a, b Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for k := 0; k < 4; k++ {
			r := a[i][k]
			for j := 0; j < 4; j++ {
				out[i][j] += r * b[k][j]
			}
		}
	}
	return out
}

// Scale returns a diagonal scale matrix.
//
// Parameters:
//   - x, y, z: scale factors along each axis
//
// Returns:
//   - Mat4: the scale matrix
func Scale(x, y, z float32) Mat4 {
	return Mat4{
		{x, 0, 0, 0},
		{0, y, 0, 0},
		{0, 0, z, 0},
		{0, 0, 0, 1},
	}
}

// Translation returns a matrix that offsets points by (x, y, z).
//
// Parameters:
//   - x, y, z: offset along each axis
//
// Returns:
//   - Mat4: the translation matrix
func Translation(x, y, z float32) Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{x, y, z, 1},
	}
}

// Rotation returns a matrix rotating by angle radians about the given axis.
// An axis outside AxisX, AxisY and AxisZ yields the identity.
//
// Parameters:
//   - angle: rotation angle in radians
//   - axis: the principal axis to rotate about
//
// Returns:
//   - Mat4: the rotation matrix
func Rotation(angle float32, axis Axis) Mat4 {
	s, c := math32.Sincos(angle)
	switch axis {
	case AxisX:
		return Mat4{
			{1, 0, 0, 0},
			{0, c, s, 0},
			{0, -s, c, 0},
			{0, 0, 0, 1},
		}
	case AxisY:
		return Mat4{
			{c, 0, -s, 0},
			{0, 1, 0, 0},
			{s, 0, c, 0},
			{0, 0, 0, 1},
		}
	case AxisZ:
		return Mat4{
			{c, s, 0, 0},
			{-s, c, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, 1},
		}
	default:
		return Identity()
	}
}

// Compose builds a model matrix in the fixed order scale, rotate, translate, parent.
// Result: scale · (rotate · (translate · parent))
//
// Parameters:
//   - scale: the local scale matrix
//   - rotate: the local rotation matrix
//   - translate: the local translation matrix
//   - parent: the model matrix pushed down by the parent (identity at the root)
//
// Returns:
//   - Mat4: the composed model matrix
func Compose(scale, rotate, translate, parent Mat4) Mat4 {
	return Mul(scale, Mul(rotate, Mul(translate, parent)))
}

// TransformPoint maps p through m as the row vector (x, y, z, 1).
// The result is divided by w when w is neither 0 nor 1.
//
// Parameters:
//   - m: the transform to apply
//   - p: the point to transform
//
// Returns:
//   - [3]float32: the transformed point
func TransformPoint(m Mat4, p [3]float32) [3]float32 {
	var out [4]float32
	v := [4]float32{p[0], p[1], p[2], 1}
	for j := 0; j < 4; j++ {
		for k := 0; k < 4; k++ {
			out[j] += v[k] * m[k][j]
		}
	}
	if out[3] != 0 && out[3] != 1 {
		return [3]float32{out[0] / out[3], out[1] / out[3], out[2] / out[3]}
	}
	return [3]float32{out[0], out[1], out[2]}
}

// Transpose returns m with rows and columns swapped.
func (m Mat4) Transpose() Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}

// Flatten returns the 16 elements of m row by row. Because WGSL reads matrices column by column,
// the shader sees the transpose, which is the column-vector form of the same transform.
//
// Returns:
//   - [16]float32: the flattened matrix
func (m Mat4) Flatten() [16]float32 {
	var out [16]float32
	for i := 0; i < 4; i++ {
		copy(out[i*4:i*4+4], m[i][:])
	}
	return out
}

// Mat4FromFlat unflattens 16 row-major elements produced by Flatten.
//
// Parameters:
//   - f: the flattened matrix
//
// Returns:
//   - Mat4: the matrix
func Mat4FromFlat(f [16]float32) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		copy(out[i][:], f[i*4:i*4+4])
	}
	return out
}

// Invert computes the inverse of m using the Laplace expansion (cofactor) method.
// If m is singular the identity is returned with ok set to false.
//
// Parameters:
//   - m: the matrix to invert
//
// Returns:
//   - Mat4: the inverse of m
//   - bool: false if m is singular
func Invert(m Mat4) (Mat4, bool) {
	f := m.Flatten()
	var out [16]float32

	// 2x2 sub-determinants of the upper and lower halves.
	s0 := f[0]*f[5] - f[4]*f[1]
	s1 := f[0]*f[6] - f[4]*f[2]
	s2 := f[0]*f[7] - f[4]*f[3]
	s3 := f[1]*f[6] - f[5]*f[2]
	s4 := f[1]*f[7] - f[5]*f[3]
	s5 := f[2]*f[7] - f[6]*f[3]

	c5 := f[10]*f[15] - f[14]*f[11]
	c4 := f[9]*f[15] - f[13]*f[11]
	c3 := f[9]*f[14] - f[13]*f[10]
	c2 := f[8]*f[15] - f[12]*f[11]
	c1 := f[8]*f[14] - f[12]*f[10]
	c0 := f[8]*f[13] - f[12]*f[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return Identity(), false
	}
	invDet := 1.0 / det

	out[0] = (f[5]*c5 - f[6]*c4 + f[7]*c3) * invDet
	out[1] = (-f[1]*c5 + f[2]*c4 - f[3]*c3) * invDet
	out[2] = (f[13]*s5 - f[14]*s4 + f[15]*s3) * invDet
	out[3] = (-f[9]*s5 + f[10]*s4 - f[11]*s3) * invDet

	out[4] = (-f[4]*c5 + f[6]*c2 - f[7]*c1) * invDet
	out[5] = (f[0]*c5 - f[2]*c2 + f[3]*c1) * invDet
	out[6] = (-f[12]*s5 + f[14]*s2 - f[15]*s1) * invDet
	out[7] = (f[8]*s5 - f[10]*s2 + f[11]*s1) * invDet

	out[8] = (f[4]*c4 - f[5]*c2 + f[7]*c0) * invDet
	out[9] = (-f[0]*c4 + f[1]*c2 - f[3]*c0) * invDet
	out[10] = (f[12]*s4 - f[13]*s2 + f[15]*s0) * invDet
	out[11] = (-f[8]*s4 + f[9]*s2 - f[11]*s0) * invDet

	out[12] = (-f[4]*c3 + f[5]*c1 - f[6]*c0) * invDet
	out[13] = (f[0]*c3 - f[1]*c1 + f[2]*c0) * invDet
	out[14] = (-f[12]*s3 + f[13]*s1 - f[14]*s0) * invDet
	out[15] = (f[8]*s3 - f[9]*s1 + f[10]*s0) * invDet

	return Mat4FromFlat(out), true
}

// NormalMatrix returns the inverse transpose of m, which carries surface normals
// through m without skewing them under non-uniform scale.
//
// Parameters:
//   - m: the model matrix
//
// Returns:
//   - Mat4: the normal matrix
func NormalMatrix(m Mat4) Mat4 {
	inv, _ := Invert(m)
	return inv.Transpose()
}

// ViewMatrix creates a left-handed view matrix for a camera at position looking along direction.
// The direction does not need to be normalized.
//
// Parameters:
//   - position: camera position in world space
//   - direction: the direction the camera faces
//   - up: the world up vector (typically 0,1,0)
//
// Returns:
//   - Mat4: the view matrix
func ViewMatrix(position, direction, up [3]float32) Mat4 {
	f := normalize3(direction)
	s := normalize3(cross3(up, f))
	u := cross3(f, s)

	p := [3]float32{
		-position[0]*s[0] - position[1]*s[1] - position[2]*s[2],
		-position[0]*u[0] - position[1]*u[1] - position[2]*u[2],
		-position[0]*f[0] - position[1]*f[1] - position[2]*f[2],
	}

	return Mat4{
		{s[0], u[0], f[0], 0},
		{s[1], u[1], f[1], 0},
		{s[2], u[2], f[2], 0},
		{p[0], p[1], p[2], 1},
	}
}

// PerspectiveMatrix creates a left-handed perspective projection for a viewport of the given size.
// Depth is mapped to the WebGPU clip range [0, 1].
//
// Parameters:
//   - width: viewport width in pixels
//   - height: viewport height in pixels
//   - fovY: vertical field of view in radians
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - Mat4: the projection matrix
func PerspectiveMatrix(width, height int, fovY, near, far float32) Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(height) / float32(width)
	}
	f := 1 / math32.Tan(fovY/2)
	depth := far / (far - near)

	return Mat4{
		{f * aspect, 0, 0, 0},
		{0, f, 0, 0},
		{0, 0, depth, 1},
		{0, 0, -near * depth, 0},
	}
}

func cross3(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize3(v [3]float32) [3]float32 {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}
