package viewport

import (
	"errors"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrAlreadyRegistered is returned when Register is called more than once.
var ErrAlreadyRegistered = errors.New("viewport: resize handler already registered")

// MaxPixelRatio caps the pixel density used for the drawing buffer.
const MaxPixelRatio float32 = 2

// State is the last applied logical output size. Height is never zero once applied.
type State struct {
	Width  int
	Height int
}

// Display reports the current logical size and pixel density of the output window.
type Display interface {
	Size() (width, height int)
	PixelDensity() float32
}

// Output is the render target whose resolution follows the display. Size and ratio arrive
// in one call so the target is resized once per change.
type Output interface {
	SetSizeAndRatio(width, height int, ratio float32)
}

// AspectSetter is the projection that follows the display's aspect ratio.
type AspectSetter interface {
	SetAspect(aspect float32)
}

// ResizeSignal delivers a payload-less notification each time the display size changes.
type ResizeSignal interface {
	OnResize(fn func())
}

// synchronizer is the implementation of the Synchronizer interface.
type synchronizer struct {
	mu         sync.Mutex
	display    Display
	camera     AspectSetter
	output     Output
	logger     *log.Logger
	state      State
	ratio      float32
	registered bool
}

// Synchronizer keeps the camera projection and the render output consistent with the display.
type Synchronizer interface {
	// Resize applies a new logical size: the state, the camera aspect, the output size and the
	// clamped pixel ratio all change together. Non-positive sizes are logged and ignored.
	//
	// Parameters:
	//   - width: logical width
	//   - height: logical height
	Resize(width, height int)

	// HandleResize queries the display and applies its current size.
	HandleResize()

	// Register subscribes HandleResize to signal and applies the current display size once.
	//
	// Parameters:
	//   - signal: the platform resize notification source
	//
	// Returns:
	//   - error: ErrAlreadyRegistered on a second call
	Register(signal ResizeSignal) error

	// State returns the last applied size.
	State() State

	// PixelRatio returns the last applied pixel ratio.
	PixelRatio() float32
}

var _ Synchronizer = &synchronizer{}

// NewSynchronizer wires a display to the camera and output it drives. All three are required.
//
// Parameters:
//   - display: the size and density source
//   - camera: the projection to keep at the display's aspect ratio
//   - output: the render target to keep at the display's resolution
//   - options: variadic list of SynchronizerBuilderOption functions
//
// Returns:
//   - Synchronizer: the synchronizer, with no size applied yet
func NewSynchronizer(display Display, camera AspectSetter, output Output, options ...SynchronizerBuilderOption) Synchronizer {
	if display == nil || camera == nil || output == nil {
		panic("viewport: NewSynchronizer requires a display, camera and output")
	}
	s := &synchronizer{
		display: display,
		camera:  camera,
		output:  output,
		logger:  log.Default(),
		ratio:   1,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// ClampPixelRatio limits a display density to [1, MaxPixelRatio]. NaN maps to 1.
func ClampPixelRatio(density float32) float32 {
	if !(density >= 1) {
		return 1
	}
	return min(density, MaxPixelRatio)
}

func (s *synchronizer) Resize(width, height int) {
	s.apply(width, height, s.display.PixelDensity())
}

func (s *synchronizer) HandleResize() {
	w, h := s.display.Size()
	s.apply(w, h, s.display.PixelDensity())
}

func (s *synchronizer) apply(width, height int, density float32) {
	if width <= 0 || height <= 0 {
		s.logger.Warn("viewport: ignoring invalid size", "width", width, "height", height)
		return
	}
	ratio := ClampPixelRatio(density)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{Width: width, Height: height}
	s.camera.SetAspect(float32(width) / float32(height))
	s.output.SetSizeAndRatio(width, height, ratio)
	s.ratio = ratio

	s.logger.Debug("viewport: resized", "width", width, "height", height, "ratio", ratio)
}

func (s *synchronizer) Register(signal ResizeSignal) error {
	s.mu.Lock()
	if s.registered {
		s.mu.Unlock()
		return ErrAlreadyRegistered
	}
	s.registered = true
	s.mu.Unlock()

	signal.OnResize(s.HandleResize)
	s.HandleResize()
	return nil
}

func (s *synchronizer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *synchronizer) PixelRatio() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratio
}
