package model

import (
	"fmt"

	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/shader"
)

// Mesh is one drawable glTF primitive.
type Mesh struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Textures []Texture
	Bounds   Bounds

	mode    LightMode
	buffers gpu.MeshBuffers
}

// newMesh computes bounds and uploads the mesh through dev.
func newMesh(dev gpu.Device, name string, verts []Vertex, indices []uint32, textures []Texture) (*Mesh, error) {
	m := &Mesh{
		Name:     name,
		Vertices: verts,
		Indices:  indices,
		Textures: textures,
		Bounds:   emptyBounds(),
		mode:     LightMap,
	}
	for _, v := range verts {
		m.Bounds.Extend(v.Position)
	}

	buffers, err := dev.CreateMesh(gpu.MeshDesc{
		Vertices:   flatten(verts),
		Stride:     VertexStride,
		Attributes: vertexAttributes,
		Indices:    indices,
	})
	if err != nil {
		return nil, fmt.Errorf("upload mesh %s: %w", name, err)
	}
	m.buffers = buffers
	return m, nil
}

func flatten(verts []Vertex) []float32 {
	out := make([]float32, 0, len(verts)*vertexFloats)
	for _, v := range verts {
		out = append(out, v.Position[:]...)
		out = append(out, v.Normal[:]...)
		out = append(out, v.TexCoord[:]...)
		out = append(out, v.Tangent[:]...)
		out = append(out, v.Bitangent[:]...)
	}
	return out
}

// LightMode returns the current lighting mode.
func (m *Mesh) LightMode() LightMode {
	return m.mode
}

// SetLightMode sets the lighting mode. Invalid modes are ignored.
func (m *Mesh) SetLightMode(mode LightMode) {
	if mode.Valid() {
		m.mode = mode
	}
}

// Click advances the lighting mode.
func (m *Mesh) Click() {
	m.mode = m.mode.Next()
}

// Draw binds the mesh textures to units 0..n-1, names the samplers by kind and
// per-kind ordinal (texture_diffuse1, texture_diffuse2, texture_specular1, ...)
// and draws. order is written to the id uniform and must be non-zero.
func (m *Mesh) Draw(u shader.Uniforms, dev gpu.Device, order int32) {
	var counts [4]int
	var present [4]bool
	for unit, tex := range m.Textures {
		dev.BindTexture(unit, tex.ID)
		n := 1
		if int(tex.Kind) < len(counts) {
			counts[tex.Kind]++
			n = counts[tex.Kind]
			present[tex.Kind] = present[tex.Kind] || tex.ID != 0
		}
		u.SetInt(fmt.Sprintf("%s%d", tex.Kind, n), int32(unit))
	}
	u.SetBool("hasDiffuse", present[TextureDiffuse])
	u.SetBool("hasSpecular", present[TextureSpecular])
	u.SetBool("hasNormal", present[TextureNormal])

	u.SetInt("id", order)
	u.SetInt("lightType", int32(m.mode)+1)

	dev.DrawIndexed(m.buffers)

	for unit := len(m.Textures) - 1; unit > 0; unit-- {
		dev.BindTexture(unit, 0)
	}
	dev.BindTexture(0, 0)
}

func (m *Mesh) destroy(dev gpu.Device) {
	dev.DeleteMesh(m.buffers)
	m.buffers = gpu.MeshBuffers{}
}
