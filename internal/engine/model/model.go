package model

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/gpu"
	"github.com/Faultbox/sceneview/internal/engine/shader"
	"github.com/Faultbox/sceneview/internal/logger"
)

func log() *zap.Logger { return logger.Named("model") }

// Model is an imported scene: its meshes in document order and the textures they share.
type Model struct {
	Directory string

	meshes    []*Mesh
	textures  *textureCache
	dev       gpu.Device
	destroyed bool
}

// Meshes returns the meshes in draw order.
func (m *Model) Meshes() []*Mesh {
	return m.meshes
}

// TextureCount returns how many distinct texture paths were resolved.
func (m *Model) TextureCount() int {
	return m.textures.len()
}

// Bounds returns the union of all mesh bounds.
func (m *Model) Bounds() Bounds {
	b := emptyBounds()
	for _, mesh := range m.meshes {
		b.Union(mesh.Bounds)
	}
	return b
}

// MeshBounds returns the bounds of each mesh in draw order.
func (m *Model) MeshBounds() []Bounds {
	out := make([]Bounds, len(m.meshes))
	for i, mesh := range m.meshes {
		out[i] = mesh.Bounds
	}
	return out
}

// Draw sets the transform uniforms and draws every mesh. Mesh i is drawn
// with order i+1; 0 is left for "no mesh".
func (m *Model) Draw(u shader.Uniforms, model, view, projection mgl32.Mat4) {
	u.SetMat4("model", model)
	u.SetMat4("view", view)
	u.SetMat4("projection", projection)
	for i, mesh := range m.meshes {
		mesh.Draw(u, m.dev, int32(i+1))
	}
}

// ClickOnMesh cycles the light mode of mesh i. It reports false when i is out of range.
func (m *Model) ClickOnMesh(i int) bool {
	if i < 0 || i >= len(m.meshes) {
		return false
	}
	m.meshes[i].Click()
	log().Debug("mesh clicked", zap.Int("index", i), zap.String("mesh", m.meshes[i].Name),
		zap.Stringer("light", m.meshes[i].LightMode()))
	return true
}

// SetLightMode sets the light mode of every mesh.
func (m *Model) SetLightMode(mode LightMode) {
	for _, mesh := range m.meshes {
		mesh.SetLightMode(mode)
	}
}

// Destroy releases all GPU resources. Later calls do nothing.
func (m *Model) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	for _, mesh := range m.meshes {
		mesh.destroy(m.dev)
	}
	m.textures.release()
}
