package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-stage/common"
)

// motionEpsilon is the smallest per-frame change still reported as movement.
const motionEpsilon = 1e-6

type orbitControllerImpl struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32

	radius    float32
	azimuth   float32
	elevation float32

	// pending input, drained by Update
	dAzimuth   float32
	dElevation float32
	dRadius    float32
	dPan       [3]float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	mouseSensitivity float32
	zoomSpeed        float32
	panSpeed         float32

	enabled         bool
	enableDamping   bool
	dampingFactor   float32
	autoRotate      bool
	autoRotateSpeed float32
}

var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates an orbit controller around the origin.
// Damping is off, auto-rotation is off, input is enabled.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(options ...OrbitControllerOption) OrbitController {
	oc := &orbitControllerImpl{
		mu:        &sync.Mutex{},
		radius:    10,
		elevation: 0,

		minRadius:    0.01,
		maxRadius:    10000,
		minElevation: -math.Pi/2 + 0.01,
		maxElevation: math.Pi/2 - 0.01,

		mouseSensitivity: 0.005,
		zoomSpeed:        1.0,
		panSpeed:         0.01,

		enabled:         true,
		dampingFactor:   0.05,
		autoRotateSpeed: 2.0,
	}
	for _, option := range options {
		option(oc)
	}
	oc.clampSpherical()
	oc.updatePosition()
	return oc
}

// updatePosition recomputes position from target and spherical coordinates.
// Caller must hold the mutex.
func (oc *orbitControllerImpl) updatePosition() {
	cosElev := float32(math.Cos(float64(oc.elevation)))
	sinElev := float32(math.Sin(float64(oc.elevation)))
	cosAzim := float32(math.Cos(float64(oc.azimuth)))
	sinAzim := float32(math.Sin(float64(oc.azimuth)))

	oc.position[0] = oc.target[0] + oc.radius*cosElev*sinAzim
	oc.position[1] = oc.target[1] + oc.radius*sinElev
	oc.position[2] = oc.target[2] + oc.radius*cosElev*cosAzim
}

// clampSpherical bounds radius and elevation. Caller must hold the mutex.
func (oc *orbitControllerImpl) clampSpherical() {
	oc.radius = common.Clamp(oc.radius, oc.minRadius, oc.maxRadius)
	oc.elevation = common.Clamp(oc.elevation, oc.minElevation, oc.maxElevation)
}

// localAxes returns the camera's right and up axes consistent with common.LookAt.
// Both are zero when position and target coincide. Caller must hold the mutex.
func (oc *orbitControllerImpl) localAxes() (right, up [3]float32) {
	bx := oc.position[0] - oc.target[0]
	by := oc.position[1] - oc.target[1]
	bz := oc.position[2] - oc.target[2]
	bLen := float32(math.Sqrt(float64(bx*bx + by*by + bz*bz)))
	if bLen < 1e-8 {
		return
	}
	bx, by, bz = bx/bLen, by/bLen, bz/bLen

	// right = normalize(cross((0,1,0), backward))
	rx, rz := bz, -bx
	rLen := float32(math.Sqrt(float64(rx*rx + rz*rz)))
	if rLen < 1e-8 {
		return
	}
	right = [3]float32{rx / rLen, 0, rz / rLen}
	up = [3]float32{
		by*right[2] - bz*right[1],
		bz*right[0] - bx*right[2],
		bx*right[1] - by*right[0],
	}
	return
}

func (oc *orbitControllerImpl) Position() [3]float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.position
}

func (oc *orbitControllerImpl) Target() [3]float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.target
}

func (oc *orbitControllerImpl) SetTarget(x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.target = [3]float32{x, y, z}
	oc.updatePosition()
}

func (oc *orbitControllerImpl) SetPosition(x, y, z float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	dx := x - oc.target[0]
	dy := y - oc.target[1]
	dz := z - oc.target[2]
	r := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
	if r < 1e-8 {
		return
	}
	oc.radius = r
	oc.azimuth = float32(math.Atan2(float64(dx), float64(dz)))
	oc.elevation = float32(math.Asin(float64(common.Clamp(dy/r, -1, 1))))
	oc.dAzimuth, oc.dElevation, oc.dRadius = 0, 0, 0
	oc.dPan = [3]float32{}
	oc.clampSpherical()
	oc.updatePosition()
}

func (oc *orbitControllerImpl) Rotate(dAzimuth, dElevation float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled {
		return
	}
	oc.dAzimuth += dAzimuth
	oc.dElevation += dElevation
}

func (oc *orbitControllerImpl) RotateByPixels(dx, dy float32) {
	oc.mu.Lock()
	s := oc.mouseSensitivity
	oc.mu.Unlock()
	// Dragging right swings the camera left around the target, dragging down raises it.
	oc.Rotate(-dx*s, dy*s)
}

func (oc *orbitControllerImpl) Zoom(delta float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled {
		return
	}
	oc.dRadius -= delta * oc.zoomSpeed
}

func (oc *orbitControllerImpl) Pan(dx, dy float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	if !oc.enabled {
		return
	}
	right, up := oc.localAxes()
	// Pan distance grows with radius so a pixel drag feels the same at any zoom level.
	scale := oc.panSpeed * oc.radius
	for i := 0; i < 3; i++ {
		oc.dPan[i] += (right[i]*dx + up[i]*dy) * scale
	}
}

func (oc *orbitControllerImpl) Update() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	if oc.autoRotate {
		oc.dAzimuth -= 2 * math.Pi / 60 / 60 * oc.autoRotateSpeed
	}

	f := float32(1)
	if oc.enableDamping {
		f = oc.dampingFactor
	}

	before := oc.position

	oc.azimuth += oc.dAzimuth * f
	oc.elevation += oc.dElevation * f
	oc.radius += oc.dRadius * f
	for i := 0; i < 3; i++ {
		oc.target[i] += oc.dPan[i] * f
	}
	oc.clampSpherical()
	oc.updatePosition()

	if oc.enableDamping {
		keep := 1 - f
		oc.dAzimuth *= keep
		oc.dElevation *= keep
		oc.dRadius *= keep
		for i := 0; i < 3; i++ {
			oc.dPan[i] *= keep
		}
	} else {
		oc.dAzimuth, oc.dElevation, oc.dRadius = 0, 0, 0
		oc.dPan = [3]float32{}
	}

	var moved float32
	for i := 0; i < 3; i++ {
		d := oc.position[i] - before[i]
		moved += d * d
	}
	return moved > motionEpsilon*motionEpsilon
}

func (oc *orbitControllerImpl) Radius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.radius
}

func (oc *orbitControllerImpl) Azimuth() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.azimuth
}

func (oc *orbitControllerImpl) Elevation() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.elevation
}

func (oc *orbitControllerImpl) DampingEnabled() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.enableDamping
}

func (oc *orbitControllerImpl) SetDamping(enabled bool, factor float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enableDamping = enabled
	if factor > 0 {
		oc.dampingFactor = common.Clamp(factor, 0, 1)
	}
}

func (oc *orbitControllerImpl) SetAutoRotate(enabled bool, speed float32) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.autoRotate = enabled
	oc.autoRotateSpeed = speed
}

func (oc *orbitControllerImpl) Enabled() bool {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.enabled
}

func (oc *orbitControllerImpl) SetEnabled(enabled bool) {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	oc.enabled = enabled
}

func (oc *orbitControllerImpl) MouseSensitivity() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.mouseSensitivity
}
