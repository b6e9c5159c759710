package wave

import "math/rand/v2"

// AnimatorBuilderOption is a functional option for configuring an Animator during construction.
type AnimatorBuilderOption func(*animatorImpl)

// WithSeed makes oscillator initialization deterministic by seeding a PCG source.
//
// Parameters:
//   - seed: the seed value
//
// Returns:
//   - AnimatorBuilderOption: functional option to set the seed
func WithSeed(seed uint64) AnimatorBuilderOption {
	return func(a *animatorImpl) {
		a.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithRand draws oscillator parameters from r instead of a fresh source.
//
// Parameters:
//   - r: the random source
//
// Returns:
//   - AnimatorBuilderOption: functional option to set the source
func WithRand(r *rand.Rand) AnimatorBuilderOption {
	return func(a *animatorImpl) {
		a.rng = r
	}
}

// WithAmplitudeRange overrides the uniform amplitude range [min, max).
//
// Parameters:
//   - min: smallest amplitude
//   - max: upper bound of the amplitude
//
// Returns:
//   - AnimatorBuilderOption: functional option to set the amplitude range
func WithAmplitudeRange(min, max float32) AnimatorBuilderOption {
	return func(a *animatorImpl) {
		a.amplitudeMin = min
		a.amplitudeSpan = max - min
	}
}

// WithSpeedRange overrides the uniform angular speed range [min, max), in radians per step.
//
// Parameters:
//   - min: slowest speed
//   - max: upper bound of the speed
//
// Returns:
//   - AnimatorBuilderOption: functional option to set the speed range
func WithSpeedRange(min, max float32) AnimatorBuilderOption {
	return func(a *animatorImpl) {
		a.speedMin = min
		a.speedSpan = max - min
	}
}

// WithDisplacementMode selects cumulative or from-base displacement. The default is DisplacementCumulative.
//
// Parameters:
//   - mode: the displacement mode
//
// Returns:
//   - AnimatorBuilderOption: functional option to set the mode
func WithDisplacementMode(mode DisplacementMode) AnimatorBuilderOption {
	return func(a *animatorImpl) {
		a.mode = mode
	}
}
