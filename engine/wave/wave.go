package wave

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
)

// DisplacementMode selects what each Step displaces.
type DisplacementMode int

const (
	// DisplacementCumulative displaces the previous step's output, so offsets compound and points
	// drift further from the base ring every frame. This is the classic aviator sea motion.
	DisplacementCumulative DisplacementMode = iota

	// DisplacementFromBase displaces the stored base points every step, so points stay within
	// one amplitude of the ring.
	DisplacementFromBase
)

// String returns the config name of the mode.
func (m DisplacementMode) String() string {
	switch m {
	case DisplacementCumulative:
		return "cumulative"
	case DisplacementFromBase:
		return "from_base"
	default:
		return "unknown"
	}
}

// ParseDisplacementMode maps a config name to a DisplacementMode.
//
// Parameters:
//   - name: "cumulative" or "from_base"
//
// Returns:
//   - DisplacementMode: the matching mode
//   - bool: false if the name is unknown
func ParseDisplacementMode(name string) (DisplacementMode, bool) {
	switch name {
	case "cumulative":
		return DisplacementCumulative, true
	case "from_base":
		return DisplacementFromBase, true
	default:
		return DisplacementCumulative, false
	}
}

// Oscillator drives one control point around a small circle in the xy plane.
// Phase advances by Speed every step; Amplitude and Speed never change.
type Oscillator struct {
	Phase     float32
	Amplitude float32
	Speed     float32
}

type animatorImpl struct {
	rng *rand.Rand

	mode          DisplacementMode
	amplitudeMin  float32
	amplitudeSpan float32
	speedMin      float32
	speedSpan     float32

	base        [][3]float32
	points      [][3]float32
	oscillators []Oscillator
	initial     []Oscillator
	frame       int
}

// Animator owns the oscillator state for a set of control points and displaces them once per frame.
// An Animator is not safe for concurrent use.
type Animator interface {
	// Step advances every oscillator by one frame.
	// For each point: x += a·cos(φ), y += a·sin(φ), z unchanged, then φ += speed.
	//
	// Returns:
	//   - [][3]float32: a copy of the displaced points
	Step() [][3]float32

	// Points returns a copy of the current displaced points.
	//
	// Returns:
	//   - [][3]float32: the current points
	Points() [][3]float32

	// Base returns a copy of the undisplaced points the animator was built from.
	//
	// Returns:
	//   - [][3]float32: the base points
	Base() [][3]float32

	// Oscillators returns a copy of the current oscillator state, one per point.
	//
	// Returns:
	//   - []Oscillator: the oscillators
	Oscillators() []Oscillator

	// Frame returns the number of steps taken since construction or the last Reset.
	//
	// Returns:
	//   - int: the step count
	Frame() int

	// Mode returns the displacement mode.
	//
	// Returns:
	//   - DisplacementMode: the mode
	Mode() DisplacementMode

	// Reset restores the base points, the initial phases and the frame counter.
	Reset()
}

var _ Animator = &animatorImpl{}

// NewAnimator creates an Animator for the given base points. Each point receives an oscillator
// with phase in [0, 2π), amplitude in [0.01, 0.04) and speed in [0.016, 0.048) unless overridden,
// drawn in that order per point. The source is seeded from the runtime unless WithSeed or WithRand is given.
//
// Parameters:
//   - base: the undisplaced control points (copied)
//   - options: functional options to configure the animator
//
// Returns:
//   - Animator: the new animator
func NewAnimator(base [][3]float32, options ...AnimatorBuilderOption) Animator {
	a := &animatorImpl{
		mode:          DisplacementCumulative,
		amplitudeMin:  0.01,
		amplitudeSpan: 0.03,
		speedMin:      0.016,
		speedSpan:     0.032,
	}
	for _, opt := range options {
		opt(a)
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if a.amplitudeSpan < 0 || a.speedSpan < 0 {
		panic("wave: NewAnimator requires min <= max for amplitude and speed ranges")
	}

	a.base = clonePoints(base)
	a.points = clonePoints(base)
	a.oscillators = make([]Oscillator, len(base))
	for i := range a.oscillators {
		a.oscillators[i] = Oscillator{
			Phase:     a.rng.Float32() * 2 * math32.Pi,
			Amplitude: a.amplitudeMin + a.rng.Float32()*a.amplitudeSpan,
			Speed:     a.speedMin + a.rng.Float32()*a.speedSpan,
		}
	}
	a.initial = append([]Oscillator(nil), a.oscillators...)
	return a
}

func (a *animatorImpl) Step() [][3]float32 {
	src := a.points
	if a.mode == DisplacementFromBase {
		src = a.base
	}
	for i := range a.oscillators {
		o := &a.oscillators[i]
		s, c := math32.Sincos(o.Phase)
		a.points[i] = [3]float32{
			src[i][0] + o.Amplitude*c,
			src[i][1] + o.Amplitude*s,
			src[i][2],
		}
		o.Phase += o.Speed
	}
	a.frame++
	return clonePoints(a.points)
}

func (a *animatorImpl) Points() [][3]float32 {
	return clonePoints(a.points)
}

func (a *animatorImpl) Base() [][3]float32 {
	return clonePoints(a.base)
}

func (a *animatorImpl) Oscillators() []Oscillator {
	return append([]Oscillator(nil), a.oscillators...)
}

func (a *animatorImpl) Frame() int {
	return a.frame
}

func (a *animatorImpl) Mode() DisplacementMode {
	return a.mode
}

func (a *animatorImpl) Reset() {
	copy(a.points, a.base)
	copy(a.oscillators, a.initial)
	a.frame = 0
}

func clonePoints(p [][3]float32) [][3]float32 {
	return append([][3]float32(nil), p...)
}
