package picking

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// near compares componentwise against an absolute tolerance. mgl32's
// ApproxEqualThreshold squares the threshold when a component is zero.
func near(a, b mgl32.Vec3, tol float32) bool {
	for i := range a {
		if mgl32.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestIDRoundTrip(t *testing.T) {
	tests := []int{0, 1, 255, 256, 70000, MaxID}
	for _, id := range tests {
		if got := DecodeID(EncodeID(id)); got != id {
			t.Errorf("DecodeID(EncodeID(%d)) = %d", id, got)
		}
	}
	if got := EncodeID(1); got != [3]byte{1, 0, 0} {
		t.Errorf("EncodeID(1) = %v, want red channel only", got)
	}
}

func TestMeshIndex(t *testing.T) {
	tests := []struct {
		id    int
		index int
		ok    bool
	}{
		{0, 0, false},
		{1, 0, true},
		{5, 4, true},
	}
	for _, tt := range tests {
		index, ok := MeshIndex(tt.id)
		if index != tt.index || ok != tt.ok {
			t.Errorf("MeshIndex(%d) = %d,%v, want %d,%v", tt.id, index, ok, tt.index, tt.ok)
		}
	}
}

func TestZoomMatrixMapsCursorToCenter(t *testing.T) {
	const W, H = 800, 600
	tests := []struct {
		name   string
		cx, cy float32
	}{
		{"center", 400, 300},
		{"top left", 10, 20},
		{"bottom right", 790, 590},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := ZoomMatrix(W, H, 1, 1, tt.cx, tt.cy)
			// NDC of the cursor pixel in the full viewport.
			ndc := mgl32.Vec4{2*tt.cx/W - 1, 2*(H-tt.cy)/H - 1, 0, 1}
			got := z.Mul4x1(ndc)
			if mgl32.Abs(got.X()) > 1e-3 || mgl32.Abs(got.Y()) > 1e-3 {
				t.Errorf("cursor maps to %v, want origin", got.Vec2())
			}
		})
	}
}

func TestZoomMatrixLayout(t *testing.T) {
	z := ZoomMatrix(800, 600, 1, 1, 100, 200)
	// y = 600-200 = 400; tx = (800-200)/1; ty = (600-800)/1
	want := mgl32.Mat4{800, 0, 0, 0, 0, 600, 0, 0, 0, 0, 1, 0, 600, -200, 0, 1}
	if z != want {
		t.Errorf("ZoomMatrix = %v, want %v", z, want)
	}
}

func TestScreenToRay(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(60), 4.0/3.0, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	inv := proj.Mul4(view).Inv()

	r := ScreenToRay(400, 300, 800, 600, inv)
	if !near(r.Direction, mgl32.Vec3{0, 0, -1}, 1e-4) {
		t.Errorf("direction = %v, want (0,0,-1)", r.Direction)
	}
	if mgl32.Abs(r.Origin.Z()-4.9) > 1e-3 {
		t.Errorf("origin z = %v, want near plane at 4.9", r.Origin.Z())
	}
}

func TestIntersectAABB(t *testing.T) {
	box := NewAABB(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{-1, -1, -1})

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float32
	}{
		{"front", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}}, true, 4},
		{"inside", Ray{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}}, true, 1},
		{"miss", Ray{mgl32.Vec3{3, 0, 5}, mgl32.Vec3{0, 0, -1}}, false, 0},
		{"behind", Ray{mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, 1}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if hit && mgl32.Abs(got-tt.wantT) > 1e-5 {
				t.Errorf("t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestNearest(t *testing.T) {
	r := Ray{mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, -1}}
	boxes := []AABB{
		NewAABB(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}),
		NewAABB(mgl32.Vec3{-1, -1, 4}, mgl32.Vec3{1, 1, 5}),
		NewAABB(mgl32.Vec3{5, 5, 5}, mgl32.Vec3{6, 6, 6}),
	}
	if got := r.Nearest(boxes); got != 1 {
		t.Errorf("Nearest = %d, want 1", got)
	}
	if got := r.Nearest(boxes[2:]); got != -1 {
		t.Errorf("Nearest = %d, want -1", got)
	}
}
