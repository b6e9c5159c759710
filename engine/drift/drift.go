package drift

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-aviator/engine/logger"
	"github.com/Carmen-Shannon/oxy-aviator/engine/mesh"
	"github.com/Carmen-Shannon/oxy-aviator/engine/wave"
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// Result is the drift of one seeded animator run in one displacement mode.
type Result struct {
	Seed   uint64
	Mode   wave.DisplacementMode
	Frames int

	// MaxDeviation is the largest |r - 1| seen over every frame and control point, where r is
	// the point's distance from the cylinder axis.
	MaxDeviation float32

	// MeanDeviation is the mean |r - 1| over the control points after the last frame.
	MeanDeviation float32

	// ExportPath is the GLB file of the final mesh, empty when exporting is off.
	ExportPath string
}

type analyzer struct {
	seeds     []uint64
	frames    int
	workers   int
	modes     []wave.DisplacementMode
	exportDir string
	options   []wave.AnimatorBuilderOption
}

// Analyzer measures how far the wave animator pushes the sea away from its rest shape.
// Every seed and mode pair runs on its own animator in a worker pool.
type Analyzer interface {
	// Run executes every seed and mode pair.
	//
	// Parameters:
	//   - ctx: cancels runs that have not finished
	//
	// Returns:
	//   - []Result: one result per pair sorted by seed, then mode
	//   - error: the first run error in that order, or ctx.Err()
	Run(ctx context.Context) ([]Result, error)
}

var _ Analyzer = &analyzer{}

// NewAnalyzer creates an Analyzer. Defaults: seeds 1..8, 600 frames, 4 workers, both modes, no export.
//
// Parameters:
//   - options: variadic list of AnalyzerBuilderOption functions
//
// Returns:
//   - Analyzer: the new analyzer
func NewAnalyzer(options ...AnalyzerBuilderOption) Analyzer {
	a := &analyzer{
		seeds:   []uint64{1, 2, 3, 4, 5, 6, 7, 8},
		frames:  600,
		workers: 4,
		modes:   []wave.DisplacementMode{wave.DisplacementCumulative, wave.DisplacementFromBase},
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

type job struct {
	seed uint64
	mode wave.DisplacementMode
}

func (a *analyzer) Run(ctx context.Context) ([]Result, error) {
	jobs := make([]job, 0, len(a.seeds)*len(a.modes))
	for _, seed := range a.seeds {
		for _, mode := range a.modes {
			jobs = append(jobs, job{seed: seed, mode: mode})
		}
	}
	if a.exportDir != "" {
		if err := os.MkdirAll(a.exportDir, 0o755); err != nil {
			return nil, errors.Wrap(err, "drift: export dir")
		}
	}

	pool := worker.NewDynamicWorkerPool(a.workers, 256, time.Second)
	results := make([]Result, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	for i, j := range jobs {
		wg.Add(1)
		idx, jb := i, j
		pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				res, err := a.run(ctx, jb)
				results[idx], errs[idx] = res, err
				return res, err
			},
		})
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Seed != results[j].Seed {
			return results[i].Seed < results[j].Seed
		}
		return results[i].Mode < results[j].Mode
	})
	return results, nil
}

func (a *analyzer) run(ctx context.Context, j job) (Result, error) {
	opts := append(append([]wave.AnimatorBuilderOption(nil), a.options...),
		wave.WithSeed(j.seed),
		wave.WithDisplacementMode(j.mode),
	)
	anim := wave.NewAnimator(mesh.NewControlRing(), opts...)

	res := Result{Seed: j.seed, Mode: j.mode, Frames: a.frames}
	points := anim.Points()
	for f := 0; f < a.frames; f++ {
		if f%64 == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		points = anim.Step()
		if m, _ := Deviation(points); m > res.MaxDeviation {
			res.MaxDeviation = m
		}
	}
	_, res.MeanDeviation = Deviation(points)

	if a.exportDir != "" {
		path, err := a.export(j, points)
		if err != nil {
			return Result{}, err
		}
		res.ExportPath = path
	}
	logger.Debug("drift: seed %d %s max %.4f mean %.4f", j.seed, j.mode, res.MaxDeviation, res.MeanDeviation)
	return res, nil
}

func (a *analyzer) export(j job, points [][3]float32) (string, error) {
	m, err := mesh.GenerateCylinder(points)
	if err != nil {
		return "", errors.Wrapf(err, "drift: seed %d", j.seed)
	}
	path := filepath.Join(a.exportDir, fmt.Sprintf("sea-%d-%s.glb", j.seed, j.mode))
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Wrapf(err, "drift: seed %d", j.seed)
	}
	defer f.Close()

	if err := mesh.WriteGLB(f, mesh.ExportPart{Name: "sea", Mesh: m, Color: [3]float32{0.41, 0.76, 0.76}}); err != nil {
		return "", errors.Wrapf(err, "drift: seed %d", j.seed)
	}
	return path, nil
}

// Deviation returns the max and mean distance of the points from the unit cylinder around the z axis.
//
// Parameters:
//   - points: the control points
//
// Returns:
//   - maxDev: the largest |r - 1|
//   - meanDev: the average |r - 1|, zero for no points
func Deviation(points [][3]float32) (maxDev, meanDev float32) {
	if len(points) == 0 {
		return 0, 0
	}
	var sum float32
	for _, p := range points {
		d := math32.Abs(math32.Hypot(p[0], p[1]) - 1)
		sum += d
		if d > maxDev {
			maxDev = d
		}
	}
	return maxDev, sum / float32(len(points))
}
