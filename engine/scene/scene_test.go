package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-aviator/common"
	"github.com/Carmen-Shannon/oxy-aviator/engine/camera"
	"github.com/Carmen-Shannon/oxy-aviator/engine/config"
	"github.com/Carmen-Shannon/oxy-aviator/engine/light"
	"github.com/Carmen-Shannon/oxy-aviator/engine/renderer"
	"github.com/Carmen-Shannon/oxy-aviator/engine/wave"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type labelDrawable struct {
	label string
	err   error
}

func (d labelDrawable) Draw(target renderer.Surface) error {
	if d.err != nil {
		return d.err
	}
	return target.Draw(renderer.DrawCommand{Label: d.label})
}

func collect(labels *[]string) renderer.Surface {
	return renderer.SurfaceFunc(func(cmd renderer.DrawCommand) error {
		*labels = append(*labels, cmd.Label)
		return nil
	})
}

func headless(t *testing.T) (renderer.Renderer, *renderer.Recorder) {
	t.Helper()
	rec := renderer.NewRecorder()
	r := renderer.NewRenderer(renderer.BackendTypeHeadless, nil, renderer.WithRecorder(rec))
	t.Cleanup(r.Release)
	return r, rec
}

func TestSceneDrawOrderAndAbort(t *testing.T) {
	r, _ := headless(t)
	boom := errors.New("boom")
	s := NewScene("test", camera.NewCamera(), r, WithDrawables(labelDrawable{label: "a"}))
	s.Add(labelDrawable{label: "b"}, labelDrawable{err: boom}, labelDrawable{label: "c"})

	var got []string
	err := s.Draw(collect(&got))
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Len(t, s.Drawables(), 4)
}

func TestSceneUpdateStopsAtFirstError(t *testing.T) {
	r, _ := headless(t)
	boom := errors.New("boom")
	var calls []int
	s := NewScene("test", camera.NewCamera(), r, WithUpdaters(
		func() error { calls = append(calls, 1); return nil },
		func() error { calls = append(calls, 2); return boom },
	))
	s.AddUpdater(func() error { calls = append(calls, 3); return nil })

	err := s.Update()
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "scene test")
	assert.Equal(t, []int{1, 2}, calls)
}

func TestSceneDefaults(t *testing.T) {
	r, _ := headless(t)
	cam := camera.NewCamera()
	s := NewScene("test", cam, r, WithActive(false))

	assert.Equal(t, "test", s.Name())
	assert.False(t, s.Active())
	s.SetActive(true)
	assert.True(t, s.Active())
	assert.Same(t, r, s.Renderer())
	assert.Equal(t, [3]float32{2, 2, 0}, s.Light().Direction())
	assert.Equal(t, [3]float32{2, 2, 0}, s.LightCamera().Position())
	assert.Equal(t, [3]float32{-2, -2, 0}, s.LightCamera().Direction())

	block := s.SceneBlock()
	assert.Equal(t, cam.View(), block.View)
	assert.Equal(t, cam.Perspective(), block.Perspective)
	assert.Equal(t, [3]float32{2, 2, 0}, block.LightDirection)
}

func TestSceneBlockFollowsLight(t *testing.T) {
	r, _ := headless(t)
	l := light.NewLight(light.WithDirection(0, 1, 1))
	s := NewScene("test", camera.NewCamera(), r, WithLight(l))
	assert.Equal(t, [3]float32{0, 1, 1}, s.SceneBlock().LightDirection)

	l.SetEnabled(false)
	assert.Equal(t, [3]float32{}, s.SceneBlock().LightDirection)
}

func TestNewScenePanicsWithoutCamera(t *testing.T) {
	r, _ := headless(t)
	assert.Panics(t, func() { NewScene("x", nil, r) })
}

func TestAviatorFrame(t *testing.T) {
	r, rec := headless(t)
	cfg := config.Default()
	cfg.Wave.Seed = 7

	av, err := NewAviator(r, cfg)
	require.NoError(t, err)
	assert.Equal(t, "aviator", av.Name())
	assert.Equal(t, []string{"wing", "cockpit", "engine", "tail", "propeller", "blade"}, av.Airplane().Names())

	before := av.Sea().Mesh()
	require.NoError(t, av.Update())
	assert.NotEqual(t, before.Vertices, av.Sea().Mesh().Vertices)
	assert.Equal(t, 1, av.Sea().Animator().Frame())

	surface, err := r.BeginFrame(av.SceneBlock())
	require.NoError(t, err)
	require.NoError(t, av.Draw(surface))
	require.NoError(t, r.EndFrame())

	frame, ok := rec.LastFrame()
	require.True(t, ok)
	labels := make([]string, len(frame.Draws))
	for i, d := range frame.Draws {
		labels[i] = d.Label
	}
	assert.Equal(t, []string{"wing", "cockpit", "engine", "tail", "propeller", "blade", "sea"}, labels)

	// Every part carries the airplane group scale pushed from the assembly.
	wing := frame.Draws[0].Uniforms.Model
	assert.Equal(t, common.Compose(common.Scale(0.8, 0.16, 3.0), common.Identity(), common.Identity(), common.Scale(0.2, 0.2, 0.2)), wing)

	meshes := rec.Meshes()
	require.Len(t, meshes, 2)
	assert.Equal(t, "airplane-cube", meshes[0].Label)
	assert.Equal(t, "sea", meshes[1].Label)
	assert.Equal(t, 1, meshes[1].Updates)
}

func TestAviatorSeedIsDeterministic(t *testing.T) {
	cfg := config.Default()
	cfg.Wave.Seed = 99

	r1, _ := headless(t)
	a, err := NewAviator(r1, cfg)
	require.NoError(t, err)
	r2, _ := headless(t)
	b, err := NewAviator(r2, cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Sea().Animator().Oscillators(), b.Sea().Animator().Oscillators())
}

func TestWaveOptions(t *testing.T) {
	cfg := config.Default().Wave
	cfg.Mode = "from_base"
	cfg.Seed = 3

	a := wave.NewAnimator([][3]float32{{1, 0, 0}}, WaveOptions(cfg)...)
	assert.Equal(t, wave.DisplacementFromBase, a.Mode())
	for _, o := range a.Oscillators() {
		assert.GreaterOrEqual(t, o.Amplitude, cfg.AmplitudeMin)
		assert.Less(t, o.Amplitude, cfg.AmplitudeMax)
	}
	assert.Len(t, WaveOptions(config.WaveConfig{}), 2)
}
