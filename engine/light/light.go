package light

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-aviator/engine/camera"
	"github.com/chewxy/math32"
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu *sync.Mutex

	direction [3]float32
	enabled   bool
	shadowCam camera.Camera
}

// Light is the scene's single white directional light. The direction points from the scene
// towards the light and need not be normalized.
//
// A light also carries the camera a shadow pass would render from: placed at the light
// direction and looking back through the origin.
type Light interface {
	// Direction returns the direction towards the light.
	//
	// Returns:
	//   - [3]float32: the direction as given
	Direction() [3]float32

	// SetDirection changes the light direction and moves the shadow camera with it.
	// The shadow camera up vector switches to +z while the direction is vertical.
	//
	// Parameters:
	//   - direction: the new direction, must not be zero
	SetDirection(direction [3]float32)

	// Enabled reports whether the light contributes diffuse shading.
	Enabled() bool

	// SetEnabled switches the diffuse contribution on or off.
	SetEnabled(enabled bool)

	// Uniform returns the direction uploaded for shading: Direction when enabled, zero otherwise.
	// A zero direction leaves only the hemisphere term.
	Uniform() [3]float32

	// ShadowCamera returns the camera looking from the light towards the origin.
	ShadowCamera() camera.Camera
}

var _ Light = &lightImpl{}

// NewLight creates an enabled light towards (2, 2, 0).
//
// Parameters:
//   - options: variadic list of LightBuilderOption functions
//
// Returns:
//   - Light: the new light
func NewLight(options ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:        &sync.Mutex{},
		direction: [3]float32{2, 2, 0},
		enabled:   true,
	}
	for _, opt := range options {
		opt(l)
	}
	if l.direction == [3]float32{} {
		panic("light: direction must not be zero")
	}
	l.shadowCam = camera.NewCamera(shadowPose(l.direction)...)
	return l
}

func (l *lightImpl) Direction() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.direction
}

func (l *lightImpl) SetDirection(direction [3]float32) {
	if direction == [3]float32{} {
		panic("light: direction must not be zero")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.direction = direction
	l.shadowCam.SetUp(shadowUp(direction))
	l.shadowCam.SetPosition(direction)
	l.shadowCam.SetDirection([3]float32{-direction[0], -direction[1], -direction[2]})
}

func (l *lightImpl) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

func (l *lightImpl) Uniform() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled {
		return [3]float32{}
	}
	return l.direction
}

func (l *lightImpl) ShadowCamera() camera.Camera {
	return l.shadowCam
}

// shadowPose places the shadow camera at d looking at the origin.
func shadowPose(d [3]float32) []camera.CameraBuilderOption {
	up := shadowUp(d)
	return []camera.CameraBuilderOption{
		camera.WithPosition(d[0], d[1], d[2]),
		camera.WithDirection(-d[0], -d[1], -d[2]),
		camera.WithUp(up[0], up[1], up[2]),
	}
}

// shadowUp is +y, or +z when d is parallel to +y.
func shadowUp(d [3]float32) [3]float32 {
	if math32.Abs(d[0]) < 1e-6 && math32.Abs(d[2]) < 1e-6 {
		return [3]float32{0, 0, 1}
	}
	return [3]float32{0, 1, 0}
}
