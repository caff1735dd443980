package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/input"
	"github.com/Faultbox/sceneview/internal/engine/picking"
)

// boundsPadding covers the breathing displacement of the vertex shader.
const boundsPadding = 0.05

// pick resolves a click: a CPU ray test against mesh bounds first, then
// the GPU ID pass for the exact mesh.
func (r *Renderer) pick(c input.Click, view, proj mgl32.Mat4) {
	x, y := r.toPixels(c)
	if !r.rayHitsScene(x, y, view, proj) {
		log().Debug("pick missed every mesh", zap.Float32("x", x), zap.Float32("y", y))
		return
	}
	r.resolvePick(r.pickPass(x, y, view, proj))
}

// toPixels scales window coordinates to drawable pixels.
func (r *Renderer) toPixels(c input.Click) (x, y float32) {
	x, y = float32(c.X), float32(c.Y)
	if r.windowW > 0 && r.windowH > 0 {
		x *= float32(r.config.Width) / float32(r.windowW)
		y *= float32(r.config.Height) / float32(r.windowH)
	}
	return x, y
}

func (r *Renderer) rayHitsScene(x, y float32, view, proj mgl32.Mat4) bool {
	bounds := r.scene.MeshBounds()
	boxes := make([]picking.AABB, 0, len(bounds))
	pad := mgl32.Vec3{boundsPadding, boundsPadding, boundsPadding}
	for _, b := range bounds {
		if b.Empty() {
			continue
		}
		boxes = append(boxes, picking.NewAABB(b.Min.Sub(pad), b.Max.Add(pad)))
	}
	ray := picking.ScreenToRay(x, y, float32(r.config.Width), float32(r.config.Height), proj.Mul4(view).Inv())
	return ray.Nearest(boxes) >= 0
}

// pickPass renders mesh IDs into the 1x1 target with the cursor pixel
// zoomed to fill it and reads the pixel back.
func (r *Renderer) pickPass(x, y float32, view, proj mgl32.Mat4) [3]byte {
	w, h := r.pickTarget.Size()
	zoom := picking.ZoomMatrix(float32(r.config.Width), float32(r.config.Height), float32(w), float32(h), x, y)

	restore := r.pickTarget.BindWithViewport()
	r.pickTarget.Clear(0, 0, 0, 0)

	b := r.click.Bind()
	r.setSharedUniforms(b)
	r.scene.Draw(b, mgl32.Ident4(), view, zoom.Mul4(proj))
	b.Release()

	px := r.pickTarget.ReadPixel(0, 0)
	restore()
	return px
}

// resolvePick clicks the mesh encoded in px. Background does nothing.
func (r *Renderer) resolvePick(px [3]byte) (int, bool) {
	id := picking.DecodeID(px)
	index, ok := picking.MeshIndex(id)
	if !ok {
		log().Debug("pick hit background")
		return 0, false
	}
	if !r.scene.ClickOnMesh(index) {
		log().Warn("pick id out of range", zap.Int("id", id))
		return 0, false
	}
	return index, true
}
