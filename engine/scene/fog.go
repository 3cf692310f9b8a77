package scene

import "github.com/Carmen-Shannon/oxy-stage/common"

// Fog is linear distance fog: fragments closer than Near are unaffected, fragments past
// Far take Color entirely.
type Fog struct {
	Color common.Color
	Near  float32
	Far   float32
}

// DefaultFog returns light grey fog starting at 1000 and saturating at 10000 units.
func DefaultFog() *Fog {
	return &Fog{Color: common.Hex(0xcccccc), Near: 1000, Far: 10000}
}

// Factor returns the fog blend amount in [0, 1] for a view-space distance.
//
// Parameters:
//   - distance: distance from the eye
//
// Returns:
//   - float32: 0 for no fog, 1 for full fog color
func (f *Fog) Factor(distance float32) float32 {
	if f == nil || f.Far <= f.Near {
		return 0
	}
	return common.Clamp((distance-f.Near)/(f.Far-f.Near), 0, 1)
}
