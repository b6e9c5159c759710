package node

import (
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-aviator/common"
	"github.com/Carmen-Shannon/oxy-aviator/engine/mesh"
	"github.com/Carmen-Shannon/oxy-aviator/engine/renderer"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cubeHandle(t *testing.T) renderer.MeshHandle {
	t.Helper()
	r := renderer.NewRenderer(renderer.BackendTypeHeadless, nil)
	t.Cleanup(r.Release)
	h, err := r.CreateMesh("cube", mesh.NewCube())
	require.NoError(t, err)
	return h
}

func capture(cmds *[]renderer.DrawCommand) renderer.Surface {
	return renderer.SurfaceFunc(func(cmd renderer.DrawCommand) error {
		*cmds = append(*cmds, cmd)
		return nil
	})
}

func TestScaleThenTranslate(t *testing.T) {
	n := NewNode(cubeHandle(t))
	n.SetScale(2, 1, 1)
	n.SetTranslation(5, 0, 0)

	m := n.ComputeModel()
	assert.InDeltaSlice(t, []float32{5, 0, 0}, sl(common.TransformPoint(m, [3]float32{0, 0, 0})), 1e-6)
	assert.InDeltaSlice(t, []float32{7, 0, 0}, sl(common.TransformPoint(m, [3]float32{1, 0, 0})), 1e-6)
}

func TestComputeModelAppliesParentLast(t *testing.T) {
	parent := common.Scale(0.2, 0.2, 0.2)
	n := NewNode(cubeHandle(t), WithTranslation(1.2, 0, 0), WithRotation(0.4, common.AxisX))
	n.SetParentModel(parent)

	want := common.Mul(common.Mul(common.Rotation(0.4, common.AxisX), common.Translation(1.2, 0, 0)), parent)
	got := n.ComputeModel()
	w, g := want.Flatten(), got.Flatten()
	assert.InDeltaSlice(t, w[:], g[:], 1e-6)

	// The translation is scaled by the parent.
	origin := common.TransformPoint(got, [3]float32{0, 0, 0})
	assert.InDelta(t, 0.24, float64(origin[0]), 1e-6)
}

func TestComputeModelIsPure(t *testing.T) {
	n := NewNode(cubeHandle(t), WithScale(1.2, 1, 1), WithTranslation(0.8, 0, 0))
	first := n.ComputeModel()
	assert.Equal(t, first, n.ComputeModel())
	assert.Equal(t, [3]float32{1.2, 1, 1}, n.Scale())
	assert.Equal(t, [3]float32{0.8, 0, 0}, n.Translation())
	assert.Equal(t, common.Identity(), n.ParentModel())
}

func TestDrawIssuesOneCommand(t *testing.T) {
	h := cubeHandle(t)
	params := renderer.DrawParameters{DepthTest: renderer.DepthLessEqual, DepthWrite: true, Multisample: true}
	n := NewNode(h,
		WithLabel("engine"),
		WithScale(0.4, 1, 1),
		WithTranslation(0.8, 0, 0),
		WithColor([3]float32{0.85, 0.82, 0.82}),
		WithDrawParameters(params),
	)

	var cmds []renderer.DrawCommand
	require.NoError(t, n.Draw(capture(&cmds)))
	require.Len(t, cmds, 1)

	cmd := cmds[0]
	assert.Equal(t, "engine", cmd.Label)
	assert.Equal(t, h, cmd.Mesh)
	assert.Equal(t, [3]float32{0.85, 0.82, 0.82}, cmd.Uniforms.ObjectColor)
	assert.Equal(t, n.ComputeModel(), cmd.Uniforms.Model)
	assert.Equal(t, params, cmd.Params)

	// Drawing does not change the node.
	require.NoError(t, n.Draw(capture(&cmds)))
	assert.Equal(t, cmds[0], cmds[1])
}

func TestDrawWrapsSurfaceError(t *testing.T) {
	boom := errors.New("boom")
	n := NewNode(cubeHandle(t), WithLabel("tail"))

	err := n.Draw(renderer.SurfaceFunc(func(renderer.DrawCommand) error { return boom }))
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "tail")
}

func TestDefaults(t *testing.T) {
	n := NewNode(cubeHandle(t))
	assert.True(t, strings.HasPrefix(n.Label(), "node-"))
	assert.Equal(t, [3]float32{1, 1, 1}, n.Color())
	angle, axis := n.Rotation()
	assert.Zero(t, angle)
	assert.Equal(t, common.AxisX, axis)
	assert.Equal(t, renderer.DepthLess, n.DrawParameters().DepthTest)
	assert.NotEqual(t, n.ID(), NewNode(n.Mesh()).ID())
}

func TestSetters(t *testing.T) {
	h := cubeHandle(t)
	n := NewNode(h)
	n.SetRotation(1.5, common.AxisZ)
	n.SetColor([3]float32{0.1, 0.2, 0.3})
	n.SetDrawParameters(renderer.DrawParameters{DepthTest: renderer.DepthAlways})

	other := cubeHandle(t)
	n.SetMesh(other)

	angle, axis := n.Rotation()
	assert.Equal(t, float32(1.5), angle)
	assert.Equal(t, common.AxisZ, axis)
	assert.Equal(t, [3]float32{0.1, 0.2, 0.3}, n.Color())
	assert.Equal(t, renderer.DepthAlways, n.DrawParameters().DepthTest)
	assert.Equal(t, other, n.Mesh())
}

func TestNilMeshPanics(t *testing.T) {
	assert.PanicsWithValue(t, "node: NewNode requires a mesh handle", func() {
		NewNode(nil)
	})
	n := NewNode(cubeHandle(t))
	assert.Panics(t, func() { n.SetMesh(nil) })
}

func sl(v [3]float32) []float32 {
	return v[:]
}
