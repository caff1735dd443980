package model

import "github.com/go-gl/mathgl/mgl32"

// computeTangents accumulates per-triangle tangents and bitangents from UV
// deltas and normalizes them per vertex. Triangles with zero UV area are skipped.
func computeTangents(verts []Vertex, indices []uint32) {
	for i := range verts {
		verts[i].Tangent = mgl32.Vec3{}
		verts[i].Bitangent = mgl32.Vec3{}
	}

	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		v0, v1, v2 := verts[i0], verts[i1], verts[i2]

		e1 := v1.Position.Sub(v0.Position)
		e2 := v2.Position.Sub(v0.Position)
		du1, dv1 := v1.TexCoord[0]-v0.TexCoord[0], v1.TexCoord[1]-v0.TexCoord[1]
		du2, dv2 := v2.TexCoord[0]-v0.TexCoord[0], v2.TexCoord[1]-v0.TexCoord[1]

		denom := du1*dv2 - du2*dv1
		if denom == 0 {
			continue
		}
		r := 1 / denom
		t := e1.Mul(dv2 * r).Sub(e2.Mul(dv1 * r))
		b := e2.Mul(du1 * r).Sub(e1.Mul(du2 * r))

		for _, idx := range [3]uint32{i0, i1, i2} {
			verts[idx].Tangent = verts[idx].Tangent.Add(t)
			verts[idx].Bitangent = verts[idx].Bitangent.Add(b)
		}
	}

	for i := range verts {
		verts[i].Tangent = normalizeOrZero(verts[i].Tangent)
		verts[i].Bitangent = normalizeOrZero(verts[i].Bitangent)
	}
}

// tangentsFromAttribute derives the basis from a glTF TANGENT attribute,
// where w carries the bitangent handedness.
func tangentsFromAttribute(verts []Vertex, tangents [][4]float32) {
	for i := range verts {
		t := tangents[i]
		tan := mgl32.Vec3{t[0], t[1], t[2]}
		w := t[3]
		if w == 0 {
			w = 1
		}
		verts[i].Tangent = normalizeOrZero(tan)
		verts[i].Bitangent = normalizeOrZero(verts[i].Normal.Cross(tan).Mul(w))
	}
}

// correctBasis makes the normal agree in sign with tangent x bitangent on
// every axis. On disagreement tangent and bitangent are swapped and the
// normal is rebuilt from the swapped pair. Degenerate bases are left alone.
func correctBasis(v *Vertex) {
	c := v.Tangent.Cross(v.Bitangent)
	if c == (mgl32.Vec3{}) {
		return
	}
	for i := 0; i < 3; i++ {
		if sign(v.Normal[i]) != sign(c[i]) {
			v.Tangent, v.Bitangent = v.Bitangent, v.Tangent
			v.Normal = normalizeOrZero(c.Mul(-1))
			return
		}
	}
}

func sign(f float32) int {
	switch {
	case f > 0:
		return 1
	case f < 0:
		return -1
	default:
		return 0
	}
}

func normalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// computeNormals builds smooth normals from triangle faces for primitives
// that carry none.
func computeNormals(verts []Vertex, indices []uint32) {
	for i := 0; i+2 < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		e1 := verts[i1].Position.Sub(verts[i0].Position)
		e2 := verts[i2].Position.Sub(verts[i0].Position)
		n := e1.Cross(e2) // area weighted
		for _, idx := range [3]uint32{i0, i1, i2} {
			verts[idx].Normal = verts[idx].Normal.Add(n)
		}
	}
	for i := range verts {
		verts[i].Normal = normalizeOrZero(verts[i].Normal)
	}
}
