package window

import "github.com/Carmen-Shannon/oxy-aviator/common"

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar. An empty title keeps the default.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = common.Coalesce(title, w.title)
	}
}

// WithSize sets the requested window size.
//
// Parameters:
//   - width: initial width in pixels
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width <= 0 || height <= 0 {
			panic("window: WithSize requires a positive size")
		}
		w.width, w.height = width, height
	}
}

// WithSizeLimits bounds the size the user can resize the window to.
//
// Parameters:
//   - minWidth, minHeight: the smallest allowed size in pixels
//   - maxWidth, maxHeight: the largest allowed size in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		if minWidth > maxWidth || minHeight > maxHeight {
			panic("window: WithSizeLimits requires min <= max")
		}
		w.minWidth, w.minHeight = minWidth, minHeight
		w.maxWidth, w.maxHeight = maxWidth, maxHeight
	}
}
