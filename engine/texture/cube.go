package texture

// CubeSide indexes one face of a cube map. The order matches the suffixes used to name
// cube map files on disk.
type CubeSide int

const (
	CubeFront CubeSide = iota
	CubeBack
	CubeUp
	CubeDown
	CubeLeft
	CubeRight
)

var cubeSideNames = [6]string{"FRONT", "BACK", "UP", "DOWN", "LEFT", "RIGHT"}

// String returns the file suffix of the side.
func (s CubeSide) String() string {
	if s < 0 || int(s) >= len(cubeSideNames) {
		return "UNKNOWN"
	}
	return cubeSideNames[s]
}

// CubePaths returns the six face paths `<base><SIDE>.jpg` in FRONT, BACK, UP, DOWN, LEFT,
// RIGHT order.
//
// Parameters:
//   - base: directory and file prefix, for example "textures/sky_"
//
// Returns:
//   - [6]string: one path per CubeSide
func CubePaths(base string) [6]string {
	var out [6]string
	for i, side := range cubeSideNames {
		out[i] = base + side + ".jpg"
	}
	return out
}

// Cube is six equally sized square faces indexed by CubeSide.
type Cube struct {
	Name  string
	Faces [6]*Texture
}

// Size returns the edge length in pixels of every face.
func (c *Cube) Size() int {
	if c == nil || c.Faces[0] == nil {
		return 0
	}
	return c.Faces[0].Width
}

// GPULayerOrder returns the faces in the +X, -X, +Y, -Y, +Z, -Z layer order a GPU cube
// texture expects, looking down -Z with +Y up: RIGHT, LEFT, UP, DOWN, FRONT, BACK.
func (c *Cube) GPULayerOrder() [6]*Texture {
	return [6]*Texture{
		c.Faces[CubeRight], c.Faces[CubeLeft],
		c.Faces[CubeUp], c.Faces[CubeDown],
		c.Faces[CubeFront], c.Faces[CubeBack],
	}
}

func (c *Cube) validate() error {
	size := -1
	for _, f := range c.Faces {
		if f == nil || f.Width != f.Height || f.Width == 0 {
			return ErrCubeFaceMismatch
		}
		if size >= 0 && f.Width != size {
			return ErrCubeFaceMismatch
		}
		size = f.Width
	}
	return nil
}
