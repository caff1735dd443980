package model

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// quad is a unit square in the XY plane with UVs.
var (
	quadPositions = [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	quadNormals   = [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	quadUVs       = [][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	quadIndices   = []uint32{0, 1, 2, 0, 2, 3}
)

// sceneBuilder assembles small glTF documents for tests.
type sceneBuilder struct {
	t   *testing.T
	dir string
	doc *gltf.Document
}

func newSceneBuilder(t *testing.T) *sceneBuilder {
	t.Helper()
	return &sceneBuilder{t: t, dir: t.TempDir(), doc: gltf.NewDocument()}
}

// quadMesh adds a mesh with one textured quad primitive and returns its index.
func (s *sceneBuilder) quadMesh(name string, material *int) int {
	attrs := map[string]int{
		gltf.POSITION:   modeler.WritePosition(s.doc, quadPositions),
		gltf.NORMAL:     modeler.WriteNormal(s.doc, quadNormals),
		gltf.TEXCOORD_0: modeler.WriteTextureCoord(s.doc, quadUVs),
	}
	s.doc.Meshes = append(s.doc.Meshes, &gltf.Mesh{
		Name: name,
		Primitives: []*gltf.Primitive{{
			Attributes: attrs,
			Indices:    gltf.Index(modeler.WriteIndices(s.doc, quadIndices)),
			Material:   material,
		}},
	})
	return len(s.doc.Meshes) - 1
}

// node adds a node and returns its index.
func (s *sceneBuilder) node(mesh *int, children ...int) int {
	s.doc.Nodes = append(s.doc.Nodes, &gltf.Node{Mesh: mesh, Children: children})
	return len(s.doc.Nodes) - 1
}

// roots sets the nodes of the default scene.
func (s *sceneBuilder) roots(nodes ...int) {
	s.doc.Scenes[0].Nodes = nodes
}

// png writes a small PNG next to the asset and returns its relative URI.
func (s *sceneBuilder) png(name string, c color.Color) string {
	s.t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		s.t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		s.t.Fatal(err)
	}
	return name
}

// texture adds an image + texture pointing at uri and returns the texture index.
func (s *sceneBuilder) texture(uri string) int {
	s.doc.Images = append(s.doc.Images, &gltf.Image{URI: uri})
	s.doc.Textures = append(s.doc.Textures, &gltf.Texture{Source: gltf.Index(len(s.doc.Images) - 1)})
	return len(s.doc.Textures) - 1
}

// material adds a material and returns its index.
func (s *sceneBuilder) material(m *gltf.Material) *int {
	s.doc.Materials = append(s.doc.Materials, m)
	return gltf.Index(len(s.doc.Materials) - 1)
}

// save writes the document as GLB and returns the path.
func (s *sceneBuilder) save() string {
	s.t.Helper()
	path := filepath.Join(s.dir, "scene.glb")
	if err := gltf.SaveBinary(s.doc, path); err != nil {
		s.t.Fatalf("save glb: %v", err)
	}
	return path
}
