package camera

// OrbitController orbits a camera around a target point using spherical coordinates
// (radius, azimuth, elevation). User input is accumulated as pending deltas; Update applies
// them, either fully or, with damping enabled, a fraction per frame so motion eases out
// over several frames instead of snapping.
type OrbitController interface {
	// Position returns the camera's world-space position.
	Position() [3]float32

	// Target returns the orbit pivot.
	Target() [3]float32

	// SetTarget moves the pivot and recomputes the position from the current spherical state.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// SetPosition places the camera and re-derives radius, azimuth and elevation from the
	// offset to the target. Pending deltas are discarded.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// Rotate queues an orbit by the given angles in radians.
	//
	// Parameters:
	//   - dAzimuth: horizontal angle delta around the Y axis
	//   - dElevation: vertical angle delta
	Rotate(dAzimuth, dElevation float32)

	// RotateByPixels queues an orbit from a pointer drag, scaled by MouseSensitivity.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels since the last event
	RotateByPixels(dx, dy float32)

	// Zoom queues a radius change. Positive delta moves toward the target.
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// Pan queues a translation of both target and position along the camera's local right
	// and up axes.
	//
	// Parameters:
	//   - dx: movement along the right axis, scaled by PanSpeed
	//   - dy: movement along the up axis, scaled by PanSpeed
	Pan(dx, dy float32)

	// Update applies pending deltas for one frame.
	//
	// Returns:
	//   - bool: true if the camera moved
	Update() bool

	// Radius returns the current distance from target.
	Radius() float32

	// Azimuth returns the current horizontal angle in radians.
	Azimuth() float32

	// Elevation returns the current vertical angle from the horizontal plane in radians.
	Elevation() float32

	// DampingEnabled reports whether Update eases pending motion over several frames.
	DampingEnabled() bool

	// SetDamping enables or disables damping. Factor is clamped to (0, 1].
	//
	// Parameters:
	//   - enabled: whether damping is on
	//   - factor: fraction of the pending delta applied per Update
	SetDamping(enabled bool, factor float32)

	// SetAutoRotate toggles continuous rotation around the target.
	//
	// Parameters:
	//   - enabled: whether auto-rotation is on
	//   - speed: multiplier; 1.0 is one full turn per 60 seconds at 60 frames per second
	SetAutoRotate(enabled bool, speed float32)

	// Enabled reports whether user input is accepted.
	Enabled() bool

	// SetEnabled toggles acceptance of user input. Update keeps easing already queued motion.
	SetEnabled(enabled bool)

	// MouseSensitivity returns radians of rotation per dragged pixel.
	MouseSensitivity() float32
}
