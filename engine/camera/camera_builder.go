package camera

// CameraBuilderOption is a functional option applied to a camera during construction via NewCamera.
type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the camera position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = [3]float32{x, y, z}
	}
}

// WithDirection sets the camera look direction.
//
// Parameters:
//   - x, y, z: direction components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's direction
func WithDirection(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.direction = [3]float32{x, y, z}
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = [3]float32{x, y, z}
	}
}

// WithFov sets the camera's vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithClipPlanes sets the near and far clipping plane distances.
//
// Parameters:
//   - near: near plane distance
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's clip planes
func WithClipPlanes(near, far float32) CameraBuilderOption {
	if near <= 0 || far <= near {
		panic("camera: WithClipPlanes requires 0 < near < far")
	}
	return func(c *cameraImpl) {
		c.near = near
		c.far = far
	}
}

// WithViewport sets the viewport size used for the aspect ratio.
//
// Parameters:
//   - width, height: viewport size in pixels
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's viewport
func WithViewport(width, height int) CameraBuilderOption {
	return func(c *cameraImpl) {
		if width > 0 && height > 0 {
			c.width, c.height = width, height
		}
	}
}
