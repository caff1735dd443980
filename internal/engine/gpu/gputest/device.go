// Package gputest provides an in-memory gpu.Device for tests.
package gputest

import (
	"fmt"

	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/texture"
)

// Binding records one BindTexture call.
type Binding struct {
	Unit int
	ID   uint32
}

// Device records calls instead of talking to a GPU.
type Device struct {
	next uint32

	Meshes         map[uint32]gpu.MeshDesc // keyed by VAO
	Textures       map[uint32]*texture.Image
	TexturesMade   int
	DeletedMeshes  int
	DeletedTexture []uint32
	Bindings       []Binding
	Draws          []gpu.MeshBuffers
}

// New returns an empty recording device.
func New() *Device {
	return &Device{
		Meshes:   make(map[uint32]gpu.MeshDesc),
		Textures: make(map[uint32]*texture.Image),
	}
}

func (d *Device) handle() uint32 {
	d.next++
	return d.next
}

// CreateMesh records desc and hands out fresh handles.
func (d *Device) CreateMesh(desc gpu.MeshDesc) (gpu.MeshBuffers, error) {
	if len(desc.Vertices) == 0 || len(desc.Indices) == 0 {
		return gpu.MeshBuffers{}, gpu.ErrEmptyMesh
	}
	b := gpu.MeshBuffers{VAO: d.handle(), VBO: d.handle(), EBO: d.handle(), IndexCount: int32(len(desc.Indices))}
	d.Meshes[b.VAO] = desc
	return b, nil
}

// DeleteMesh forgets the mesh.
func (d *Device) DeleteMesh(b gpu.MeshBuffers) {
	delete(d.Meshes, b.VAO)
	d.DeletedMeshes++
}

// CreateTexture records img and hands out a fresh handle.
func (d *Device) CreateTexture(img *texture.Image) (uint32, error) {
	switch img.Channels {
	case 1, 3, 4:
	default:
		return 0, fmt.Errorf("%d channels: %w", img.Channels, texture.ErrUnsupportedFormat)
	}
	id := d.handle()
	d.Textures[id] = img
	d.TexturesMade++
	return id, nil
}

// DeleteTexture forgets the texture.
func (d *Device) DeleteTexture(id uint32) {
	delete(d.Textures, id)
	d.DeletedTexture = append(d.DeletedTexture, id)
}

// BindTexture records the binding.
func (d *Device) BindTexture(unit int, id uint32) {
	d.Bindings = append(d.Bindings, Binding{Unit: unit, ID: id})
}

// DrawIndexed records the draw.
func (d *Device) DrawIndexed(b gpu.MeshBuffers) {
	d.Draws = append(d.Draws, b)
}

// Reset clears recorded bindings and draws but keeps resources.
func (d *Device) Reset() {
	d.Bindings = nil
	d.Draws = nil
}
