package model

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCorrectBasisSignProperty(t *testing.T) {
	tests := []struct {
		name     string
		v        Vertex
		wantSwap bool
	}{
		{
			name: "consistent",
			v: Vertex{
				Normal:    mgl32.Vec3{0, 0, 1},
				Tangent:   mgl32.Vec3{1, 0, 0},
				Bitangent: mgl32.Vec3{0, 1, 0},
			},
		},
		{
			name: "mirrored normal",
			v: Vertex{
				Normal:    mgl32.Vec3{0, 0, -1},
				Tangent:   mgl32.Vec3{1, 0, 0},
				Bitangent: mgl32.Vec3{0, 1, 0},
			},
			wantSwap: true,
		},
		{
			name: "skewed",
			v: Vertex{
				Normal:    mgl32.Vec3{0.3, -0.5, 0.8},
				Tangent:   mgl32.Vec3{0.7, 0.2, 0.1},
				Bitangent: mgl32.Vec3{-0.1, 0.9, 0.3},
			},
			wantSwap: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := tt.v
			correctBasis(&v)

			swapped := v.Tangent == tt.v.Bitangent && v.Bitangent == tt.v.Tangent
			if swapped != tt.wantSwap {
				t.Errorf("swapped = %v, want %v", swapped, tt.wantSwap)
			}
			c := v.Tangent.Cross(v.Bitangent)
			for axis := 0; axis < 3; axis++ {
				if sign(v.Normal[axis]) != sign(c[axis]) {
					t.Errorf("axis %d: normal %v vs T x B %v", axis, v.Normal, c)
				}
			}
		})
	}
}

func TestCorrectBasisSkipsDegenerate(t *testing.T) {
	v := Vertex{Normal: mgl32.Vec3{0, -1, 0}}
	correctBasis(&v)
	if v.Normal != (mgl32.Vec3{0, -1, 0}) {
		t.Errorf("degenerate basis changed normal to %v", v.Normal)
	}
}

func TestComputeTangentsFollowsUV(t *testing.T) {
	verts := []Vertex{
		{Position: mgl32.Vec3{0, 0, 0}, TexCoord: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec3{2, 0, 0}, TexCoord: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{0, 2, 0}, TexCoord: mgl32.Vec2{0, 1}},
	}
	computeTangents(verts, []uint32{0, 1, 2})
	for i, v := range verts {
		if !v.Tangent.ApproxEqual(mgl32.Vec3{1, 0, 0}) {
			t.Errorf("vertex %d tangent = %v", i, v.Tangent)
		}
		if !v.Bitangent.ApproxEqual(mgl32.Vec3{0, 1, 0}) {
			t.Errorf("vertex %d bitangent = %v", i, v.Bitangent)
		}
	}
}

func TestTangentsFromAttributeHandedness(t *testing.T) {
	verts := []Vertex{{Normal: mgl32.Vec3{0, 0, 1}}}
	tangentsFromAttribute(verts, [][4]float32{{1, 0, 0, -1}})
	if !verts[0].Bitangent.ApproxEqual(mgl32.Vec3{0, -1, 0}) {
		t.Errorf("bitangent = %v, want (0,-1,0)", verts[0].Bitangent)
	}
}

func TestComputeNormals(t *testing.T) {
	verts := []Vertex{
		{Position: mgl32.Vec3{0, 0, 0}},
		{Position: mgl32.Vec3{1, 0, 0}},
		{Position: mgl32.Vec3{0, 1, 0}},
	}
	computeNormals(verts, []uint32{0, 1, 2})
	for i, v := range verts {
		if !v.Normal.ApproxEqual(mgl32.Vec3{0, 0, 1}) {
			t.Errorf("vertex %d normal = %v", i, v.Normal)
		}
	}
}
