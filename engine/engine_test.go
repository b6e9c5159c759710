package engine

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-aviator/engine/camera"
	"github.com/Carmen-Shannon/oxy-aviator/engine/config"
	"github.com/Carmen-Shannon/oxy-aviator/engine/renderer"
	"github.com/Carmen-Shannon/oxy-aviator/engine/scene"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindow struct {
	running  bool
	polls    int
	onResize func(width, height int)
}

func (w *fakeWindow) IsRunning() bool { return w.running }

func (w *fakeWindow) PollEvents() bool {
	w.polls++
	return w.running
}

func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) { w.onResize = callback }

func newAviator(t *testing.T, options ...renderer.RendererBuilderOption) (scene.Aviator, renderer.Renderer, *renderer.Recorder) {
	t.Helper()
	rec := renderer.NewRecorder()
	r := renderer.NewRenderer(renderer.BackendTypeHeadless, nil, append([]renderer.RendererBuilderOption{renderer.WithRecorder(rec)}, options...)...)
	t.Cleanup(r.Release)
	cfg := config.Default()
	cfg.Wave.Seed = 1
	av, err := scene.NewAviator(r, cfg)
	require.NoError(t, err)
	return av, r, rec
}

func drawLabels(f renderer.FrameRecord) []string {
	out := make([]string, len(f.Draws))
	for i, d := range f.Draws {
		out[i] = d.Label
	}
	return out
}

func TestRunHeadlessFrames(t *testing.T) {
	av, _, rec := newAviator(t)
	e := NewEngine(WithScene(0, av), WithFrames(3))

	require.NoError(t, e.Run())
	assert.Equal(t, 3, e.Frames())

	frames := rec.Frames()
	require.Len(t, frames, 3)
	for _, f := range frames {
		assert.True(t, f.Ended)
		assert.True(t, f.Presented)
		assert.Equal(t, []string{"wing", "cockpit", "engine", "tail", "propeller", "blade", "sea"}, drawLabels(f))
	}
	assert.Equal(t, 3, av.Sea().Animator().Frame())
	assert.Equal(t, 3, rec.Meshes()[1].Updates)
}

func TestRunStopsOnDrawError(t *testing.T) {
	boom := errors.New("boom")
	av, r, rec := newAviator(t, renderer.WithDrawHook(func(cmd renderer.DrawCommand) error {
		if cmd.Label == "sea" {
			return boom
		}
		return nil
	}))
	e := NewEngine(WithScene(0, av), WithFrames(5))

	err := e.Run()
	assert.True(t, errors.Is(err, boom))
	assert.Zero(t, e.Frames())

	frames := rec.Frames()
	require.Len(t, frames, 1)
	assert.True(t, frames[0].Ended)
	assert.False(t, frames[0].Presented)

	// The renderer is left ready for another frame.
	_, err = r.BeginFrame(av.SceneBlock())
	assert.NoError(t, err)
}

func TestQuitAndWindowClose(t *testing.T) {
	av, _, _ := newAviator(t)
	w := &fakeWindow{running: true}

	var e Engine
	e = NewEngine(WithScene(0, av), WithWindow(w), WithFrameCallback(func(frame int) {
		if frame == 2 {
			e.Quit()
			e.Quit()
		}
	}))
	require.NoError(t, e.Run())
	assert.Equal(t, 2, e.Frames())
	assert.Equal(t, 2, w.polls)

	w2 := &fakeWindow{running: false}
	e2 := NewEngine(WithScene(0, av), WithWindow(w2))
	require.NoError(t, e2.Run())
	assert.Zero(t, e2.Frames())
}

func TestResizeUpdatesCameraViewport(t *testing.T) {
	av, _, _ := newAviator(t)
	w := &fakeWindow{running: true}
	NewEngine(WithScene(0, av), WithWindow(w))

	require.NotNil(t, w.onResize)
	w.onResize(1024, 512)
	width, height := av.Camera().Viewport()
	assert.Equal(t, 1024, width)
	assert.Equal(t, 512, height)
}

func TestInactiveScenesAreSkipped(t *testing.T) {
	av, r, rec := newAviator(t)
	idle := scene.NewScene("idle", camera.NewCamera(), r, scene.WithActive(false))
	e := NewEngine(WithScene(0, idle), WithScene(1, av), WithFrames(1))

	require.NoError(t, e.Run())
	frame, ok := rec.LastFrame()
	require.True(t, ok)
	assert.Len(t, frame.Draws, 7)
	assert.Equal(t, av.SceneBlock(), frame.Scene)
}

func TestConfigUpdatesAreApplied(t *testing.T) {
	av, _, rec := newAviator(t)
	updates := make(chan config.Config, 1)
	cfg := config.Default()
	cfg.Renderer.ClearColor = [4]float64{1, 0, 0, 1}
	cfg.Engine.Profiling = true
	updates <- cfg
	close(updates)

	e := NewEngine(WithScene(0, av), WithFrames(2), WithConfigUpdates(updates))
	require.NoError(t, e.Run())

	frames := rec.Frames()
	require.Len(t, frames, 2)
	assert.Equal(t, [4]float64{1, 0, 0, 1}, frames[0].Clear)
	assert.True(t, e.(*engine).profilingEnabled)
}

func TestRendererOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Renderer.Backend = "headless"
	cfg.Renderer.ClearColor = [4]float64{0.5, 0.5, 0.5, 1}

	backend, opts := RendererOptions(cfg)
	assert.Equal(t, renderer.BackendTypeHeadless, backend)

	rec := renderer.NewRecorder()
	r := renderer.NewRenderer(backend, nil, append(opts, renderer.WithRecorder(rec))...)
	defer r.Release()
	_, err := r.BeginFrame(renderer.SceneBlock{})
	require.NoError(t, err)
	frame, _ := rec.LastFrame()
	assert.Equal(t, cfg.Renderer.ClearColor, frame.Clear)

	mode, ok := ParsePresentMode("uncapped")
	assert.True(t, ok)
	assert.Equal(t, renderer.PresentModeUncapped, mode)
	_, ok = ParsePresentMode("triple")
	assert.False(t, ok)
}

func TestFrameDuration(t *testing.T) {
	assert.Zero(t, frameDuration(0))
	assert.Equal(t, int64(16666666), frameDuration(60).Nanoseconds())
}
