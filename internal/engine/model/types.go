// Package model imports glTF scenes into GPU-resident meshes and draws them.
package model

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sceneview/internal/engine/gpu"
)

// Vertex is one interleaved vertex as laid out in the vertex buffer.
type Vertex struct {
	Position  mgl32.Vec3
	Normal    mgl32.Vec3
	TexCoord  mgl32.Vec2
	Tangent   mgl32.Vec3
	Bitangent mgl32.Vec3
}

// VertexStride is the size of a Vertex in bytes.
const VertexStride = int32(unsafe.Sizeof(Vertex{}))

// vertexFloats is the number of float32 values per vertex.
const vertexFloats = int(VertexStride / 4)

// vertexAttributes maps Vertex fields to shader locations 0..4.
var vertexAttributes = []gpu.Attribute{
	{Location: 0, Components: 3, Offset: unsafe.Offsetof(Vertex{}.Position)},
	{Location: 1, Components: 3, Offset: unsafe.Offsetof(Vertex{}.Normal)},
	{Location: 2, Components: 2, Offset: unsafe.Offsetof(Vertex{}.TexCoord)},
	{Location: 3, Components: 3, Offset: unsafe.Offsetof(Vertex{}.Tangent)},
	{Location: 4, Components: 3, Offset: unsafe.Offsetof(Vertex{}.Bitangent)},
}

// TextureKind is the material slot a texture fills.
type TextureKind int

const (
	TextureDiffuse TextureKind = iota
	TextureSpecular
	TextureNormal
	TextureMetallic
)

// String returns the sampler name prefix used by the shaders.
func (k TextureKind) String() string {
	switch k {
	case TextureDiffuse:
		return "texture_diffuse"
	case TextureSpecular:
		return "texture_specular"
	case TextureNormal:
		return "texture_normal"
	case TextureMetallic:
		return "texture_metallic"
	default:
		return fmt.Sprintf("texture_kind%d", int(k))
	}
}

// Texture is a GPU texture handle owned by a model's texture cache.
// ID is 0 when the image could not be loaded.
type Texture struct {
	ID   uint32
	Kind TextureKind
	Path string
}

// LightMode selects how a mesh is lit.
type LightMode int

const (
	LightVertex   LightMode = iota // per-vertex lighting
	LightFragment                  // per-fragment lighting
	LightMap                       // per-fragment with normal map
	lightModeCount
)

// Next returns the mode after m, wrapping around.
func (m LightMode) Next() LightMode {
	return (m + 1) % lightModeCount
}

// Valid reports whether m is one of the defined modes.
func (m LightMode) Valid() bool {
	return m >= 0 && m < lightModeCount
}

func (m LightMode) String() string {
	switch m {
	case LightVertex:
		return "vertex"
	case LightFragment:
		return "fragment"
	case LightMap:
		return "map"
	default:
		return fmt.Sprintf("LightMode(%d)", int(m))
	}
}

// ParseLightMode converts a mode name to a LightMode.
func ParseLightMode(s string) (LightMode, error) {
	for m := LightVertex; m < lightModeCount; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown light mode %q", s)
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// emptyBounds returns an inverted box that any point extends.
func emptyBounds() Bounds {
	return Bounds{
		Min: mgl32.Vec3{1e30, 1e30, 1e30},
		Max: mgl32.Vec3{-1e30, -1e30, -1e30},
	}
}

// Empty reports whether no point was ever added.
func (b Bounds) Empty() bool {
	return b.Min[0] > b.Max[0]
}

// Extend grows b to contain p.
func (b *Bounds) Extend(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Union grows b to contain o.
func (b *Bounds) Union(o Bounds) {
	if o.Empty() {
		return
	}
	b.Extend(o.Min)
	b.Extend(o.Max)
}

// ImportOptions controls asset conversion.
type ImportOptions struct {
	FlipUVs        bool // v = 1 - v, textures uploaded bottom row first
	Triangulate    bool // convert strips and fans to triangle lists
	BakeTransforms bool // apply node world transforms to vertices
}

// DefaultImportOptions returns the options used when nothing is configured.
func DefaultImportOptions() ImportOptions {
	return ImportOptions{FlipUVs: true, Triangulate: true}
}
