package window

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/cogentcore/webgpu/wgpu"
)

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Window provides platform windowing, input events and a frame-callback queue.
// Every callback runs on the thread that calls ProcessMessages.
type Window interface {
	// OnResize subscribes fn to window size and pixel density changes. Subscribers take no
	// arguments and query Size and PixelDensity themselves.
	//
	// Parameters:
	//   - fn: the function to call after each change
	OnResize(fn func())

	// RequestFrame queues fn to run once, after the next event poll. Frames requested while
	// the queue is being drained run on the following iteration.
	//
	// Parameters:
	//   - fn: the frame callback
	RequestFrame(fn func())

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetMouseButtonCallback sets the callback for mouse button press and release.
	//
	// Parameters:
	//   - callback: function receiving the button, whether it was pressed, and the cursor position
	SetMouseButtonCallback(callback func(button MouseButton, pressed bool, x, y float32))

	// SetMouseMoveCallback sets the callback for mouse movement.
	//
	// Parameters:
	//   - callback: function receiving mouse x, y position in window coordinates
	SetMouseMoveCallback(callback func(x, y float32))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop: poll events, then run queued frames.
	// Blocks until the window is closed.
	ProcessMessages()

	// Size returns the logical window size.
	//
	// Returns:
	//   - int, int: width and height in window coordinates
	Size() (width, height int)

	// PixelDensity returns framebuffer pixels per logical window unit.
	PixelDensity() float32
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	logger *log.Logger

	// title is the window title displayed in the title bar.
	title string

	// size limits applied to user resizes.
	maxWidth, maxHeight int
	minWidth, minHeight int

	// width and height are the logical window size.
	width, height int

	// density is framebuffer pixels per window unit.
	density float32

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	resizeSubscribers []func()

	frameMu sync.Mutex
	frames  []func()

	onScroll      func(delta float32)
	onMouseButton func(button MouseButton, pressed bool, x, y float32)
	onMouseMove   func(x, y float32)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
//   - error: an error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		logger:    log.Default(),
		title:     "oxy-stage",
		maxWidth:  -1,
		maxHeight: -1,
		minWidth:  320,
		minHeight: 200,
		width:     1280,
		height:    720,
		density:   1,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) OnResize(fn func()) {
	if fn != nil {
		w.resizeSubscribers = append(w.resizeSubscribers, fn)
	}
}

func (w *engineWindow) RequestFrame(fn func()) {
	if fn == nil {
		return
	}
	w.frameMu.Lock()
	w.frames = append(w.frames, fn)
	w.frameMu.Unlock()
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetMouseButtonCallback(callback func(button MouseButton, pressed bool, x, y float32)) {
	w.onMouseButton = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y float32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if !platformProcessMessages(w, w.pendingFrames() > 0) {
			break
		}
		w.runFrames()
	}
}

func (w *engineWindow) Size() (int, int) {
	return w.width, w.height
}

func (w *engineWindow) PixelDensity() float32 {
	return w.density
}

// setGeometry records a new size and density and notifies subscribers if either changed.
func (w *engineWindow) setGeometry(width, height int, density float32) {
	if width == w.width && height == w.height && density == w.density {
		return
	}
	w.width, w.height, w.density = width, height, density
	w.logger.Debug("window: geometry changed", "width", width, "height", height, "density", density)
	for _, fn := range w.resizeSubscribers {
		fn()
	}
}

func (w *engineWindow) pendingFrames() int {
	w.frameMu.Lock()
	defer w.frameMu.Unlock()
	return len(w.frames)
}

// runFrames runs the frames queued so far. Frames queued by these callbacks wait for the
// next iteration.
func (w *engineWindow) runFrames() {
	w.frameMu.Lock()
	batch := w.frames
	w.frames = nil
	w.frameMu.Unlock()

	for _, fn := range batch {
		fn()
	}
}
