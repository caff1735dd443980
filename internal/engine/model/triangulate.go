package model

import "github.com/qmuntal/gltf"

// triangleList converts primitive indices of the given mode into a triangle
// list. ok is false for point and line modes, which have no triangles.
func triangleList(mode gltf.PrimitiveMode, idx []uint32) (tris []uint32, ok bool) {
	switch mode {
	case gltf.PrimitiveTriangles:
		n := len(idx) - len(idx)%3
		return idx[:n], true
	case gltf.PrimitiveTriangleStrip:
		if len(idx) < 3 {
			return nil, true
		}
		tris = make([]uint32, 0, (len(idx)-2)*3)
		for i := 0; i+2 < len(idx); i++ {
			a, b, c := idx[i], idx[i+1], idx[i+2]
			if i%2 == 1 {
				a, b = b, a // keep winding consistent
			}
			if a == b || b == c || a == c {
				continue
			}
			tris = append(tris, a, b, c)
		}
		return tris, true
	case gltf.PrimitiveTriangleFan:
		if len(idx) < 3 {
			return nil, true
		}
		tris = make([]uint32, 0, (len(idx)-2)*3)
		for i := 1; i+1 < len(idx); i++ {
			tris = append(tris, idx[0], idx[i], idx[i+1])
		}
		return tris, true
	default:
		return nil, false
	}
}

func sequentialIndices(n int) []uint32 {
	idx := make([]uint32, n)
	for i := range idx {
		idx[i] = uint32(i)
	}
	return idx
}
