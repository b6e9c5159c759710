package scene

import (
	"github.com/Carmen-Shannon/oxy-aviator/engine/assembly"
	"github.com/Carmen-Shannon/oxy-aviator/engine/camera"
	"github.com/Carmen-Shannon/oxy-aviator/engine/config"
	"github.com/Carmen-Shannon/oxy-aviator/engine/renderer"
	"github.com/Carmen-Shannon/oxy-aviator/engine/sea"
	"github.com/Carmen-Shannon/oxy-aviator/engine/wave"
	"github.com/pkg/errors"
)

// Aviator is the airplane-over-the-sea scene. The airplane draws first, then the sea.
type Aviator interface {
	Scene

	// Airplane returns the six-part airplane assembly.
	Airplane() assembly.Assembly

	// Sea returns the animated sea.
	Sea() sea.Sea
}

type aviator struct {
	Scene
	airplane assembly.Assembly
	sea      sea.Sea
}

var _ Aviator = &aviator{}

// NewAviator builds the aviator scene on r from cfg. The sea mesh is re-generated once per Update.
//
// Parameters:
//   - r: the renderer that creates the meshes and draws the scene
//   - cfg: a validated configuration
//
// Returns:
//   - Aviator: the new scene
//   - error: an error if a mesh cannot be created
func NewAviator(r renderer.Renderer, cfg config.Config) (Aviator, error) {
	cam := camera.NewCamera(
		camera.WithPosition(cfg.Camera.Position[0], cfg.Camera.Position[1], cfg.Camera.Position[2]),
		camera.WithDirection(cfg.Camera.Direction[0], cfg.Camera.Direction[1], cfg.Camera.Direction[2]),
		camera.WithFov(cfg.Camera.Fov),
		camera.WithClipPlanes(cfg.Camera.Near, cfg.Camera.Far),
		camera.WithViewport(cfg.Window.Width, cfg.Window.Height),
	)

	airplane, err := assembly.NewAirplane(r)
	if err != nil {
		return nil, errors.Wrap(err, "aviator: airplane")
	}
	s, err := sea.NewSea(r, sea.WithAnimatorOptions(WaveOptions(cfg.Wave)...))
	if err != nil {
		return nil, errors.Wrap(err, "aviator: sea")
	}

	base := NewScene("aviator", cam, r,
		WithDrawables(airplane, s),
		WithUpdaters(s.Wave),
	)
	return &aviator{Scene: base, airplane: airplane, sea: s}, nil
}

// WaveOptions maps the wave section of a config to animator options. A zero seed leaves the
// animator randomly seeded.
//
// Parameters:
//   - cfg: the wave settings
//
// Returns:
//   - []wave.AnimatorBuilderOption: the animator options
func WaveOptions(cfg config.WaveConfig) []wave.AnimatorBuilderOption {
	opts := []wave.AnimatorBuilderOption{
		wave.WithAmplitudeRange(cfg.AmplitudeMin, cfg.AmplitudeMax),
		wave.WithSpeedRange(cfg.SpeedMin, cfg.SpeedMax),
	}
	if cfg.Seed != 0 {
		opts = append(opts, wave.WithSeed(cfg.Seed))
	}
	if mode, ok := wave.ParseDisplacementMode(cfg.Mode); ok {
		opts = append(opts, wave.WithDisplacementMode(mode))
	}
	return opts
}

func (a *aviator) Airplane() assembly.Assembly {
	return a.airplane
}

func (a *aviator) Sea() sea.Sea {
	return a.sea
}
