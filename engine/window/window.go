package window

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Window is the platform window the renderer presents to. Input handling is limited to closing:
// the Escape key and the window close button both end IsRunning.
type Window interface {
	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if the window is closed
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true until the window is asked to close.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// PollEvents processes pending window events without blocking.
	//
	// Returns:
	//   - bool: whether the window is still running afterwards
	PollEvents() bool

	// RequestClose asks the window to close. IsRunning reports false from then on.
	RequestClose()

	// Close destroys the window and releases platform resources.
	//
	// Returns:
	//   - error: error if the window was never created or is already closed
	Close() error

	// Width returns the current framebuffer width in pixels.
	Width() int

	// Height returns the current framebuffer height in pixels.
	Height() int
}

// engineWindow is the implementation of the Window interface.
type engineWindow struct {
	title string

	// Size limits applied while resizing.
	minWidth, minHeight int
	maxWidth, maxHeight int

	// Current framebuffer size, which can differ from the requested size on high-DPI displays.
	width  int
	height int

	internalWindow *glfwWindow

	onResize func(width, height int)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a window. It locks the calling goroutine to its OS thread,
// so call it from main.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the open window
//   - error: an error if GLFW cannot create the window
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "aviator",
		minWidth:  200,
		minHeight: 150,
		maxWidth:  3840,
		maxHeight: 2160,
		width:     800,
		height:    600,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) PollEvents() bool {
	return platformProcessMessages(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
