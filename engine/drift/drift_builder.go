package drift

import "github.com/Carmen-Shannon/oxy-aviator/engine/wave"

// AnalyzerBuilderOption is a functional option for configuring an Analyzer.
type AnalyzerBuilderOption func(*analyzer)

// WithSeeds sets the animator seeds to run.
func WithSeeds(seeds ...uint64) AnalyzerBuilderOption {
	return func(a *analyzer) {
		a.seeds = append([]uint64(nil), seeds...)
	}
}

// WithSeedRange runs seeds first, first+1, ..., first+n-1.
func WithSeedRange(first uint64, n int) AnalyzerBuilderOption {
	return func(a *analyzer) {
		a.seeds = a.seeds[:0:0]
		for i := 0; i < n; i++ {
			a.seeds = append(a.seeds, first+uint64(i))
		}
	}
}

// WithFrames sets how many steps each animator runs.
func WithFrames(n int) AnalyzerBuilderOption {
	return func(a *analyzer) {
		if n < 0 {
			panic("drift: WithFrames requires n >= 0")
		}
		a.frames = n
	}
}

// WithWorkers sets the worker pool size.
func WithWorkers(n int) AnalyzerBuilderOption {
	return func(a *analyzer) {
		if n <= 0 {
			panic("drift: WithWorkers requires n > 0")
		}
		a.workers = n
	}
}

// WithModes sets the displacement modes compared for every seed.
func WithModes(modes ...wave.DisplacementMode) AnalyzerBuilderOption {
	return func(a *analyzer) {
		a.modes = append([]wave.DisplacementMode(nil), modes...)
	}
}

// WithExportDir writes the final sea of every run as GLB into dir.
func WithExportDir(dir string) AnalyzerBuilderOption {
	return func(a *analyzer) {
		a.exportDir = dir
	}
}

// WithAnimatorOptions forwards options such as amplitude and speed ranges to every animator.
// Seed and mode are always set per run.
func WithAnimatorOptions(options ...wave.AnimatorBuilderOption) AnalyzerBuilderOption {
	return func(a *analyzer) {
		a.options = append(a.options, options...)
	}
}
