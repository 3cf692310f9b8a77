package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-5

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i + 1)
	}
	Mul4(out[:], id[:], m[:])
	if out != m {
		t.Fatalf("Mul4(I, m) = %v, want %v", out, m)
	}
	Mul4(out[:], m[:], id[:])
	if out != m {
		t.Fatalf("Mul4(m, I) = %v, want %v", out, m)
	}
}

func TestPerspectiveAspect(t *testing.T) {
	var p [16]float32
	fov := float32(math.Pi / 4)
	Perspective(p[:], fov, 2, 0.1, 100)

	f := float32(1 / math.Tan(float64(fov)/2))
	if !near(p[5], f) {
		t.Errorf("p[5] = %v, want %v", p[5], f)
	}
	if !near(p[0], f/2) {
		t.Errorf("p[0] = %v, want %v", p[0], f/2)
	}
	if p[11] != -1 || p[15] != 0 {
		t.Errorf("p[11], p[15] = %v, %v, want -1, 0", p[11], p[15])
	}
}

func TestPerspectiveDepthRange(t *testing.T) {
	var p [16]float32
	n, f := float32(0.5), float32(50)
	Perspective(p[:], 1, 1, n, f)

	depth := func(z float32) float32 {
		clipZ := p[10]*z + p[14]
		clipW := p[11] * z
		return clipZ / clipW
	}
	if d := depth(-n); !near(d, 0) {
		t.Errorf("depth at near = %v, want 0", d)
	}
	if d := depth(-f); !near(d, 1) {
		t.Errorf("depth at far = %v, want 1", d)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	var v [16]float32
	eye := [3]float32{2.5, 3, 20}
	LookAt(v[:], eye, [3]float32{}, [3]float32{0, 1, 0})

	x := v[0]*eye[0] + v[4]*eye[1] + v[8]*eye[2] + v[12]
	y := v[1]*eye[0] + v[5]*eye[1] + v[9]*eye[2] + v[13]
	z := v[2]*eye[0] + v[6]*eye[1] + v[10]*eye[2] + v[14]
	if !near(x, 0) || !near(y, 0) || !near(z, 0) {
		t.Errorf("view * eye = (%v, %v, %v), want origin", x, y, z)
	}

	// The target must land on the negative view-space Z axis.
	tz := v[14]
	if tz >= 0 || !near(v[12], 0) || !near(v[13], 0) {
		t.Errorf("view * target = (%v, %v, %v), want (0, 0, <0)", v[12], v[13], tz)
	}
}

// The camera's flat matrices are reinterpreted as mgl32.Mat4 on the node graph, so both
// must agree element for element.
func TestFlatMatricesMatchMgl32(t *testing.T) {
	eye := [3]float32{2.5, 3, 20}
	center := [3]float32{1, -2, 0}
	var v [16]float32
	LookAt(v[:], eye, center, [3]float32{0, 1, 0})
	want := mgl32.LookAtV(mgl32.Vec3(eye), mgl32.Vec3(center), mgl32.Vec3{0, 1, 0})
	for i := range v {
		if !near(v[i], want[i]) {
			t.Fatalf("LookAt[%d] = %v, mgl32 = %v", i, v[i], want[i])
		}
	}

	var a, b, out [16]float32
	for i := range a {
		a[i] = float32(i%5) - 1.5
		b[i] = float32((i*7)%11) * 0.25
	}
	Mul4(out[:], a[:], b[:])
	prod := mgl32.Mat4(a).Mul4(mgl32.Mat4(b))
	for i := range out {
		if !near(out[i], prod[i]) {
			t.Fatalf("Mul4[%d] = %v, mgl32 = %v", i, out[i], prod[i])
		}
	}
}

func TestClamp(t *testing.T) {
	cases := []struct{ v, lo, hi, want float64 }{
		{3, 1, 2, 2},
		{0.5, 1, 2, 1},
		{1.5, 1, 2, 1.5},
	}
	for _, c := range cases {
		if got := Clamp(c.v, c.lo, c.hi); got != c.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
		}
	}
}

func TestFrustumIntersectsSphere(t *testing.T) {
	var view, proj, vp [16]float32
	LookAt(view[:], [3]float32{0, 0, 10}, [3]float32{}, [3]float32{0, 1, 0})
	Perspective(proj[:], math.Pi/4, 1, 0.1, 100)
	Mul4(vp[:], proj[:], view[:])
	f := ExtractFrustum(vp[:])

	if !f.IntersectsSphere([3]float32{}, 1) {
		t.Error("sphere at origin should be visible")
	}
	if f.IntersectsSphere([3]float32{0, 0, 20}, 1) {
		t.Error("sphere behind the camera should be culled")
	}
	if f.IntersectsSphere([3]float32{0, 0, -200}, 1) {
		t.Error("sphere past the far plane should be culled")
	}
	if !f.IntersectsSphere([3]float32{0, 0, 20}, 15) {
		t.Error("large sphere straddling the near plane should be visible")
	}
}
