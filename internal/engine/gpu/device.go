// Package gpu defines the small set of GPU operations the scene needs and
// an OpenGL 4.1 core implementation of them.
package gpu

import "github.com/Faultbox/sceneview/internal/engine/texture"

// Attribute describes one float vertex attribute inside an interleaved buffer.
type Attribute struct {
	Location   uint32
	Components int32
	Offset     uintptr // byte offset inside a vertex
}

// MeshDesc is everything needed to allocate an indexed triangle mesh.
type MeshDesc struct {
	Vertices   []float32 // interleaved
	Stride     int32     // bytes per vertex
	Attributes []Attribute
	Indices    []uint32
}

// MeshBuffers are the GPU handles backing one mesh.
type MeshBuffers struct {
	VAO, VBO, EBO uint32
	IndexCount    int32
}

// Device is the capability surface used by models and meshes.
type Device interface {
	CreateMesh(desc MeshDesc) (MeshBuffers, error)
	DeleteMesh(b MeshBuffers)
	CreateTexture(img *texture.Image) (uint32, error)
	DeleteTexture(id uint32)
	BindTexture(unit int, id uint32)
	DrawIndexed(b MeshBuffers)
}
