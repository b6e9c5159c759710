package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-aviator/common"
	"github.com/chewxy/math32"
)

type cameraImpl struct {
	mu *sync.Mutex

	position  [3]float32
	direction [3]float32
	up        [3]float32

	fov  float32
	near float32
	far  float32

	width, height int

	view        common.Mat4
	perspective common.Mat4
}

// Camera defines the interface for a fixed look-direction camera.
// The view matrix is left-handed and built from position, direction and up; the perspective
// matrix maps depth into [0, 1]. Both are recomputed whenever an input changes.
type Camera interface {
	// Position returns the camera position.
	//
	// Returns:
	//   - [3]float32: the position
	Position() [3]float32

	// Direction returns the look direction. It need not be normalized.
	//
	// Returns:
	//   - [3]float32: the direction
	Direction() [3]float32

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - [3]float32: the up vector
	Up() [3]float32

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// Viewport returns the viewport size used for the aspect ratio.
	//
	// Returns:
	//   - width, height: the viewport size in pixels
	Viewport() (width, height int)

	// SetPosition moves the camera.
	//
	// Parameters:
	//   - position: the new position
	SetPosition(position [3]float32)

	// SetDirection changes the look direction.
	//
	// Parameters:
	//   - direction: the new direction
	SetDirection(direction [3]float32)

	// SetUp changes the up vector.
	//
	// Parameters:
	//   - up: the new up vector, must not be parallel to the direction
	SetUp(up [3]float32)

	// SetViewport changes the viewport size. Non-positive sizes are ignored.
	//
	// Parameters:
	//   - width, height: the viewport size in pixels
	SetViewport(width, height int)

	// View returns the current view matrix.
	//
	// Returns:
	//   - common.Mat4: the view matrix
	View() common.Mat4

	// Perspective returns the current perspective matrix.
	//
	// Returns:
	//   - common.Mat4: the perspective matrix
	Perspective() common.Mat4
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera at (0, 1, -2) looking along (0, -1, 2) with a π/3 field of view,
// clip planes 0.1 and 1024 and an 800x600 viewport, unless overridden.
//
// Parameters:
//   - options: variadic list of CameraBuilderOption functions
//
// Returns:
//   - Camera: the new camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:        &sync.Mutex{},
		position:  [3]float32{0, 1, -2},
		direction: [3]float32{0, -1, 2},
		up:        [3]float32{0, 1, 0},
		fov:       math32.Pi / 3,
		near:      0.1,
		far:       1024,
		width:     800,
		height:    600,
	}
	for _, opt := range options {
		opt(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Direction() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.direction
}

func (c *cameraImpl) Up() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Viewport() (width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

func (c *cameraImpl) SetPosition(position [3]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = position
	c.updateMatrices()
}

func (c *cameraImpl) SetDirection(direction [3]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.direction = direction
	c.updateMatrices()
}

func (c *cameraImpl) SetUp(up [3]float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
	c.updateMatrices()
}

func (c *cameraImpl) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width, c.height = width, height
	c.updateMatrices()
}

func (c *cameraImpl) View() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *cameraImpl) Perspective() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.perspective
}

// updateMatrices recomputes the view and perspective matrices. Callers hold c.mu.
func (c *cameraImpl) updateMatrices() {
	c.view = common.ViewMatrix(c.position, c.direction, c.up)
	c.perspective = common.PerspectiveMatrix(c.width, c.height, c.fov, c.near, c.far)
}
