package model

// NewPlane builds a width×height plane in the XY plane facing +Z, subdivided into
// widthSegments×heightSegments quads. Segment counts below 1 are treated as 1.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//   - widthSegments: quads along X
//   - heightSegments: quads along Y
//
// Returns:
//   - Model: the plane model
func NewPlane(width, height float32, widthSegments, heightSegments int) Model {
	gridX := max(widthSegments, 1)
	gridY := max(heightSegments, 1)
	segW := width / float32(gridX)
	segH := height / float32(gridY)

	vertices := make([]GPUVertex, 0, (gridX+1)*(gridY+1))
	for iy := 0; iy <= gridY; iy++ {
		y := float32(iy)*segH - height/2
		for ix := 0; ix <= gridX; ix++ {
			x := float32(ix)*segW - width/2
			vertices = append(vertices, GPUVertex{
				Position: [3]float32{x, -y, 0},
				Normal:   [3]float32{0, 0, 1},
				TexCoord: [2]float32{float32(ix) / float32(gridX), 1 - float32(iy)/float32(gridY)},
			})
		}
	}

	row := uint32(gridX + 1)
	indices := make([]uint32, 0, gridX*gridY*6)
	for iy := uint32(0); iy < uint32(gridY); iy++ {
		for ix := uint32(0); ix < uint32(gridX); ix++ {
			a := ix + row*iy
			b := ix + row*(iy+1)
			c := ix + 1 + row*(iy+1)
			d := ix + 1 + row*iy
			indices = append(indices, a, b, d, b, c, d)
		}
	}
	return NewModel("plane", vertices, indices)
}

// boxFace describes one side of a box: outward normal n and in-plane axes u, v with u×v = n.
type boxFace struct {
	n, u, v [3]float32
}

var boxFaces = [6]boxFace{
	{n: [3]float32{1, 0, 0}, u: [3]float32{0, 0, -1}, v: [3]float32{0, 1, 0}},
	{n: [3]float32{-1, 0, 0}, u: [3]float32{0, 0, 1}, v: [3]float32{0, 1, 0}},
	{n: [3]float32{0, 1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, -1}},
	{n: [3]float32{0, -1, 0}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 0, 1}},
	{n: [3]float32{0, 0, 1}, u: [3]float32{1, 0, 0}, v: [3]float32{0, 1, 0}},
	{n: [3]float32{0, 0, -1}, u: [3]float32{-1, 0, 0}, v: [3]float32{0, 1, 0}},
}

// NewBox builds an axis-aligned box centered at the origin with flat-shaded faces
// (four vertices per face).
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//   - depth: extent along Z
//
// Returns:
//   - Model: the box model
func NewBox(width, height, depth float32) Model {
	half := [3]float32{width / 2, height / 2, depth / 2}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	vertices := make([]GPUVertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range boxFaces {
		base := uint32(len(vertices))
		for _, c := range corners {
			var p [3]float32
			for i := 0; i < 3; i++ {
				p[i] = (f.n[i] + f.u[i]*c[0] + f.v[i]*c[1]) * half[i]
			}
			vertices = append(vertices, GPUVertex{
				Position: p,
				Normal:   f.n,
				TexCoord: [2]float32{(c[0] + 1) / 2, 1 - (c[1]+1)/2},
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return NewModel("box", vertices, indices)
}
