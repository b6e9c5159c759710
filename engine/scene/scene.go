package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-aviator/engine/camera"
	"github.com/Carmen-Shannon/oxy-aviator/engine/light"
	"github.com/Carmen-Shannon/oxy-aviator/engine/renderer"
	"github.com/pkg/errors"
)

// Drawable is anything that can issue draw commands on a frame surface.
type Drawable interface {
	Draw(target renderer.Surface) error
}

// Updater advances per-frame state before the frame is drawn.
type Updater func() error

type scene struct {
	mu *sync.Mutex

	name   string
	active bool

	cam   camera.Camera
	light light.Light
	r     renderer.Renderer

	drawables []Drawable
	updaters  []Updater
}

// Scene holds the camera, the light, the renderer and an ordered list of drawables.
// Scenes can be hot-swapped via the Active flag.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the view camera.
	Camera() camera.Camera

	// Light returns the scene's directional light.
	Light() light.Light

	// LightCamera returns the camera looking from the light. It is not used for drawing.
	LightCamera() camera.Camera

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Add appends drawables. Drawables draw in the order they were added.
	//
	// Parameters:
	//   - drawables: the drawables to append
	Add(drawables ...Drawable)

	// Drawables returns the drawables in draw order.
	Drawables() []Drawable

	// AddUpdater appends a per-frame update step.
	//
	// Parameters:
	//   - u: the update step
	AddUpdater(u Updater)

	// Update runs every update step in order and stops at the first failure.
	//
	// Returns:
	//   - error: the first update error
	Update() error

	// SceneBlock returns the per-frame uniforms from the view camera and the light.
	SceneBlock() renderer.SceneBlock

	// Draw draws every drawable in order and stops at the first failure.
	//
	// Parameters:
	//   - target: the frame surface
	//
	// Returns:
	//   - error: the first draw error
	Draw(target renderer.Surface) error
}

var _ Scene = &scene{}

// NewScene creates an active, empty Scene.
//
// Parameters:
//   - name: the scene identifier
//   - cam: the view camera
//   - r: the renderer drawing the scene
//   - options: variadic list of SceneBuilderOption functions
//
// Returns:
//   - Scene: the new scene
func NewScene(name string, cam camera.Camera, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if cam == nil || r == nil {
		panic("scene: NewScene requires a camera and a renderer")
	}
	s := &scene{
		mu:     &sync.Mutex{},
		name:   name,
		active: true,
		cam:    cam,
		r:      r,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.light == nil {
		s.light = light.NewLight()
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Light() light.Light {
	return s.light
}

func (s *scene) LightCamera() camera.Camera {
	return s.light.ShadowCamera()
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) Add(drawables ...Drawable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range drawables {
		if d == nil {
			panic("scene: Add requires non-nil drawables")
		}
	}
	s.drawables = append(s.drawables, drawables...)
}

func (s *scene) Drawables() []Drawable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Drawable(nil), s.drawables...)
}

func (s *scene) AddUpdater(u Updater) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updaters = append(s.updaters, u)
}

func (s *scene) Update() error {
	s.mu.Lock()
	updaters := append([]Updater(nil), s.updaters...)
	s.mu.Unlock()

	for _, u := range updaters {
		if err := u(); err != nil {
			return errors.Wrapf(err, "scene %s: update", s.name)
		}
	}
	return nil
}

func (s *scene) SceneBlock() renderer.SceneBlock {
	return renderer.SceneBlock{
		View:           s.cam.View(),
		Perspective:    s.cam.Perspective(),
		LightDirection: s.light.Uniform(),
	}
}

func (s *scene) Draw(target renderer.Surface) error {
	for _, d := range s.Drawables() {
		if err := d.Draw(target); err != nil {
			return errors.Wrapf(err, "scene %s", s.name)
		}
	}
	return nil
}
