package config

import (
	"io"
	"os"
	"slices"

	"github.com/chewxy/math32"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned by Validate when a field is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full set of runtime settings for the aviator programs.
// Zero fields in a decoded file fall back to Default.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Renderer RendererConfig `toml:"renderer"`
	Camera   CameraConfig   `toml:"camera"`
	Wave     WaveConfig     `toml:"wave"`
	Engine   EngineConfig   `toml:"engine"`
}

// WindowConfig holds the platform window settings.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// RendererConfig selects and tunes the rendering backend.
type RendererConfig struct {
	Backend       string     `toml:"backend"`      // "wgpu" or "headless"
	PresentMode   string     `toml:"present_mode"` // "vsync" or "uncapped"
	MSAA          int        `toml:"msaa"`         // 1 or 4
	ForceSoftware bool       `toml:"force_software"`
	ClearColor    [4]float64 `toml:"clear_color"`
}

// CameraConfig positions the view camera.
type CameraConfig struct {
	Position  [3]float32 `toml:"position"`
	Direction [3]float32 `toml:"direction"`
	Fov       float32    `toml:"fov"`
	Near      float32    `toml:"near"`
	Far       float32    `toml:"far"`
}

// WaveConfig seeds the sea oscillators.
type WaveConfig struct {
	Seed         uint64  `toml:"seed"`
	AmplitudeMin float32 `toml:"amplitude_min"`
	AmplitudeMax float32 `toml:"amplitude_max"`
	SpeedMin     float32 `toml:"speed_min"`
	SpeedMax     float32 `toml:"speed_max"`
	Mode         string  `toml:"mode"` // "cumulative" or "from_base"
}

// EngineConfig controls the frame loop.
type EngineConfig struct {
	FrameLimit float64 `toml:"frame_limit"` // frames per second, 0 = uncapped
	Frames     int     `toml:"frames"`      // headless frame count, 0 = until quit
	Profiling  bool    `toml:"profiling"`
	LogLevel   string  `toml:"log_level"`
}

// Default returns the stock aviator scene settings.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "aviator",
			Width:  800,
			Height: 600,
		},
		Renderer: RendererConfig{
			Backend:     "wgpu",
			PresentMode: "vsync",
			MSAA:        4,
			ClearColor:  [4]float64{0, 0, 1, 1},
		},
		Camera: CameraConfig{
			Position:  [3]float32{0, 1, -2},
			Direction: [3]float32{0, -1, 2},
			Fov:       math32.Pi / 3,
			Near:      0.1,
			Far:       1024,
		},
		Wave: WaveConfig{
			AmplitudeMin: 0.01,
			AmplitudeMax: 0.04,
			SpeedMin:     0.016,
			SpeedMax:     0.048,
			Mode:         "cumulative",
		},
		Engine: EngineConfig{
			LogLevel: "info",
		},
	}
}

// Load reads and validates a TOML config file. Keys missing from the file keep their defaults.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the decoded configuration
//   - error: an error if the file cannot be read, decoded or validated
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "config: open")
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: %s", path)
	}
	return cfg, nil
}

// Decode reads TOML from r on top of Default and validates the result.
//
// Parameters:
//   - r: the TOML source
//
// Returns:
//   - Config: the decoded configuration
//   - error: an error if decoding or validation fails
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
//
// Parameters:
//   - w: the destination writer
//
// Returns:
//   - error: an error if encoding fails
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks every field that has a restricted range.
//
// Returns:
//   - error: ErrInvalidConfig wrapped with the offending field, or nil
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "window size %dx%d", c.Window.Width, c.Window.Height)
	case !slices.Contains([]string{"wgpu", "headless"}, c.Renderer.Backend):
		return errors.Wrapf(ErrInvalidConfig, "renderer.backend %q", c.Renderer.Backend)
	case !slices.Contains([]string{"vsync", "uncapped"}, c.Renderer.PresentMode):
		return errors.Wrapf(ErrInvalidConfig, "renderer.present_mode %q", c.Renderer.PresentMode)
	case c.Renderer.MSAA != 1 && c.Renderer.MSAA != 4:
		return errors.Wrapf(ErrInvalidConfig, "renderer.msaa %d", c.Renderer.MSAA)
	case c.Camera.Fov <= 0 || c.Camera.Fov >= math32.Pi:
		return errors.Wrapf(ErrInvalidConfig, "camera.fov %v", c.Camera.Fov)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return errors.Wrapf(ErrInvalidConfig, "camera clip planes %v..%v", c.Camera.Near, c.Camera.Far)
	case c.Camera.Direction == [3]float32{}:
		return errors.Wrap(ErrInvalidConfig, "camera.direction is zero")
	case c.Wave.AmplitudeMin < 0 || c.Wave.AmplitudeMax < c.Wave.AmplitudeMin:
		return errors.Wrapf(ErrInvalidConfig, "wave amplitude range %v..%v", c.Wave.AmplitudeMin, c.Wave.AmplitudeMax)
	case c.Wave.SpeedMax < c.Wave.SpeedMin:
		return errors.Wrapf(ErrInvalidConfig, "wave speed range %v..%v", c.Wave.SpeedMin, c.Wave.SpeedMax)
	case !slices.Contains([]string{"cumulative", "from_base"}, c.Wave.Mode):
		return errors.Wrapf(ErrInvalidConfig, "wave.mode %q", c.Wave.Mode)
	case c.Engine.FrameLimit < 0 || c.Engine.Frames < 0:
		return errors.Wrap(ErrInvalidConfig, "engine frame_limit and frames must not be negative")
	case !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Engine.LogLevel):
		return errors.Wrapf(ErrInvalidConfig, "engine.log_level %q", c.Engine.LogLevel)
	}
	return nil
}
