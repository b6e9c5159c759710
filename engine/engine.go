package engine

import (
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-aviator/engine/config"
	"github.com/Carmen-Shannon/oxy-aviator/engine/logger"
	"github.com/Carmen-Shannon/oxy-aviator/engine/profiler"
	"github.com/Carmen-Shannon/oxy-aviator/engine/renderer"
	"github.com/Carmen-Shannon/oxy-aviator/engine/scene"
	"github.com/pkg/errors"
)

// Window is the part of a platform window the frame loop needs.
type Window interface {
	IsRunning() bool
	PollEvents() bool
	SetResizeCallback(callback func(width, height int))
}

// engine implements the Engine interface.
type engine struct {
	mu *sync.Mutex

	quitChannel chan struct{}
	quitOnce    sync.Once

	window Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	maxFrames        int           // 0 = run until quit
	frames           int

	configUpdates <-chan config.Config
	onFrame       func(frame int)
}

// Engine drives the frame loop: config reload, scene update, draw, present, event polling
// and profiling, in that order, on the calling goroutine.
type Engine interface {
	// AddScene registers a scene at the given z-index key.
	// Active scenes are updated and drawn in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining draw order (lower draws first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key, or nil.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// SetRenderFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Frames returns the number of frames completed by Run.
	Frames() int

	// Run executes frames until the window closes, Quit is called or the frame limit is reached.
	// Any frame error stops the loop.
	//
	// Returns:
	//   - error: the first frame error, or nil on a clean stop
	Run() error

	// Quit stops Run before its next frame. Safe to call multiple times and from any goroutine.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:          &sync.Mutex{},
		quitChannel: make(chan struct{}),
		scenes:      make(map[int]scene.Scene),
		profiler:    profiler.NewProfiler(time.Second),
	}
	for _, opt := range options {
		opt(e)
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			for _, s := range e.Scenes() {
				s.Renderer().Resize(width, height)
				s.Camera().SetViewport(width, height)
			}
		})
	}
	return e
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Frames() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

func (e *engine) Run() error {
	for {
		select {
		case <-e.quitChannel:
			return nil
		default:
		}
		if e.window != nil && !e.window.IsRunning() {
			return nil
		}
		if e.maxFrames > 0 && e.Frames() >= e.maxFrames {
			return nil
		}

		start := time.Now()
		e.drainConfigUpdates()

		if err := e.frame(); err != nil {
			return err
		}

		e.mu.Lock()
		e.frames++
		n := e.frames
		e.mu.Unlock()
		if e.onFrame != nil {
			e.onFrame(n)
		}

		if e.window != nil {
			e.window.PollEvents()
		}
		if e.profilingEnabled {
			e.profiler.Tick()
		}

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(start); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

// frame updates and draws every active scene. The first active scene's renderer owns the
// frame and its camera provides the scene block.
func (e *engine) frame() error {
	active := e.activeScenes()
	if len(active) == 0 {
		return nil
	}

	for _, s := range active {
		if err := s.Update(); err != nil {
			return errors.Wrapf(err, "engine: frame %d", e.Frames())
		}
	}

	r := active[0].Renderer()
	surface, err := r.BeginFrame(active[0].SceneBlock())
	if err != nil {
		return errors.Wrapf(err, "engine: frame %d", e.Frames())
	}
	for _, s := range active {
		if err := s.Draw(surface); err != nil {
			// The frame is abandoned, but it still has to be closed before returning.
			if endErr := r.EndFrame(); endErr != nil {
				logger.Warn("engine: end frame after draw failure: %v", endErr)
			}
			return errors.Wrapf(err, "engine: frame %d", e.Frames())
		}
	}
	if err := r.EndFrame(); err != nil {
		return errors.Wrapf(err, "engine: frame %d", e.Frames())
	}
	r.Present()
	return nil
}

func (e *engine) activeScenes() []scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()

	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var active []scene.Scene
	for _, k := range keys {
		if s := e.scenes[k]; s.Active() {
			active = append(active, s)
		}
	}
	return active
}

func (e *engine) drainConfigUpdates() {
	if e.configUpdates == nil {
		return
	}
	for {
		select {
		case cfg, ok := <-e.configUpdates:
			if !ok {
				e.configUpdates = nil
				return
			}
			e.applyConfig(cfg)
		default:
			return
		}
	}
}

// applyConfig applies the runtime-reloadable settings. Wave and camera settings seed scene
// state and only take effect on restart.
func (e *engine) applyConfig(cfg config.Config) {
	mode, _ := ParsePresentMode(cfg.Renderer.PresentMode)
	for _, s := range e.Scenes() {
		r := s.Renderer()
		r.SetClearColor(cfg.Renderer.ClearColor)
		r.SetPresentMode(mode)
	}
	if err := logger.SetLevel(cfg.Engine.LogLevel); err != nil {
		logger.Warn("engine: log level: %v", err)
	}
	e.profilingEnabled = cfg.Engine.Profiling
	e.SetRenderFrameLimit(cfg.Engine.FrameLimit)
	logger.Info("engine: config reloaded")
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameDuration(fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}

// ParsePresentMode maps a config present mode name to a renderer.PresentMode.
//
// Parameters:
//   - name: "vsync" or "uncapped"
//
// Returns:
//   - renderer.PresentMode: the mode, PresentModeVSync for unknown names
//   - bool: whether the name was recognized
func ParsePresentMode(name string) (renderer.PresentMode, bool) {
	switch name {
	case "vsync":
		return renderer.PresentModeVSync, true
	case "uncapped":
		return renderer.PresentModeUncapped, true
	default:
		return renderer.PresentModeVSync, false
	}
}

// RendererOptions maps the renderer section of a config to a backend type and builder options.
//
// Parameters:
//   - cfg: a validated configuration
//
// Returns:
//   - renderer.RendererBackendType: the selected backend
//   - []renderer.RendererBuilderOption: options for renderer.NewRenderer
func RendererOptions(cfg config.Config) (renderer.RendererBackendType, []renderer.RendererBuilderOption) {
	backend := renderer.BackendTypeWGPU
	if cfg.Renderer.Backend == "headless" {
		backend = renderer.BackendTypeHeadless
	}
	mode, _ := ParsePresentMode(cfg.Renderer.PresentMode)
	msaa := renderer.MSAA4x
	if cfg.Renderer.MSAA == 1 {
		msaa = renderer.MSAAOff
	}
	return backend, []renderer.RendererBuilderOption{
		renderer.WithPresentMode(mode),
		renderer.WithMSAA(msaa),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
		renderer.WithClearColor(cfg.Renderer.ClearColor),
		renderer.WithSize(cfg.Window.Width, cfg.Window.Height),
	}
}
