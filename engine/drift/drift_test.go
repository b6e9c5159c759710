package drift

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-aviator/engine/mesh"
	"github.com/Carmen-Shannon/oxy-aviator/engine/wave"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviation(t *testing.T) {
	hi, avg := Deviation(mesh.NewControlRing())
	assert.InDelta(t, 0, hi, 1e-6)
	assert.InDelta(t, 0, avg, 1e-6)

	hi, avg = Deviation([][3]float32{{2, 0, 0}, {0, 1, 5}, {0, 0.5, 0}})
	assert.InDelta(t, 1, hi, 1e-6)
	assert.InDelta(t, 0.5, avg, 1e-6)

	hi, avg = Deviation(nil)
	assert.Zero(t, hi)
	assert.Zero(t, avg)
}

func TestRunSortedAndDeterministic(t *testing.T) {
	a := NewAnalyzer(WithSeeds(5, 2, 9), WithFrames(120), WithWorkers(3))
	results, err := a.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 6)

	for i, seed := range []uint64{2, 2, 5, 5, 9, 9} {
		assert.Equal(t, seed, results[i].Seed)
		assert.Equal(t, 120, results[i].Frames)
		assert.Empty(t, results[i].ExportPath)
	}
	assert.Equal(t, wave.DisplacementCumulative, results[0].Mode)
	assert.Equal(t, wave.DisplacementFromBase, results[1].Mode)

	again, err := NewAnalyzer(WithSeeds(9, 5, 2), WithFrames(120), WithWorkers(1)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, results, again)
}

func TestFromBaseStaysWithinAmplitude(t *testing.T) {
	results, err := NewAnalyzer(
		WithSeedRange(1, 4),
		WithFrames(300),
		WithModes(wave.DisplacementFromBase),
		WithAnimatorOptions(wave.WithAmplitudeRange(0.01, 0.04)),
	).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 4)
	for _, r := range results {
		assert.LessOrEqual(t, r.MaxDeviation, float32(0.04)+1e-5)
		assert.LessOrEqual(t, r.MeanDeviation, r.MaxDeviation)
	}
}

func TestZeroAmplitudeHasNoDrift(t *testing.T) {
	results, err := NewAnalyzer(
		WithSeeds(1),
		WithFrames(50),
		WithAnimatorOptions(wave.WithAmplitudeRange(0, 0)),
	).Run(context.Background())
	require.NoError(t, err)
	for _, r := range results {
		assert.InDelta(t, 0, r.MaxDeviation, 1e-6)
	}
}

func TestExportWritesGLB(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	results, err := NewAnalyzer(WithSeeds(3), WithFrames(10), WithModes(wave.DisplacementCumulative), WithExportDir(dir)).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)

	path := results[0].ExportPath
	assert.Equal(t, filepath.Join(dir, "sea-3-cumulative.glb"), path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	doc, err := gltf.Open(path)
	require.NoError(t, err)
	require.Len(t, doc.Meshes, 1)
	assert.Equal(t, "sea", doc.Meshes[0].Name)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewAnalyzer(WithSeeds(1, 2), WithFrames(10)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
