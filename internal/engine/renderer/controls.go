package renderer

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/config"
	"github.com/Faultbox/sceneview/internal/engine/input"
	"github.com/Faultbox/sceneview/internal/engine/model"
)

func clampKernel(n int) int {
	return config.ClampKernelSize(n)
}

// SetAnimationTime sets the animation position, clamped to [0, duration].
func (r *Renderer) SetAnimationTime(t time.Duration) {
	r.animTime = min(max(t, 0), r.config.AnimationDuration)
}

// AnimationTime returns the animation position.
func (r *Renderer) AnimationTime() time.Duration { return r.animTime }

// normalizedTime is the animation position in [0, 1].
func (r *Renderer) normalizedTime() float32 {
	return float32(float64(r.animTime) / float64(r.config.AnimationDuration))
}

// SetLightMode sets the light mode of every mesh.
func (r *Renderer) SetLightMode(mode model.LightMode) {
	if !mode.Valid() {
		return
	}
	r.scene.SetLightMode(mode)
	log().Debug("light mode set", zap.Stringer("mode", mode))
}

// MoveLightToCamera places the light at the camera position.
func (r *Renderer) MoveLightToCamera() {
	r.light = r.cam.Position
	log().Debug("light moved", zap.Float32s("position", r.light[:]))
}

// Light returns the light position.
func (r *Renderer) Light() mgl32.Vec3 { return r.light }

// SetAOMode selects how ambient occlusion is shown.
func (r *Renderer) SetAOMode(mode AOMode) {
	r.ao = mode
	log().Debug("ao mode set", zap.Stringer("mode", mode))
}

// AOMode returns the ambient occlusion output mode.
func (r *Renderer) AOMode() AOMode { return r.ao }

// SetKernelSize clamps n to the supported range and regenerates the kernel.
func (r *Renderer) SetKernelSize(n int) {
	n = clampKernel(n)
	r.config.KernelSize = n
	r.kernel = NewKernel(n, r.rng)
	log().Debug("ssao kernel regenerated", zap.Int("size", n))
}

// KernelSize returns the number of SSAO samples.
func (r *Renderer) KernelSize() int { return len(r.kernel) }

// QueuePick schedules a pick at window coordinates for the next frame.
// It does nothing below ModePick.
func (r *Renderer) QueuePick(x, y int) {
	if r.config.Mode < ModePick {
		return
	}
	r.picks = append(r.picks, input.Click{X: x, Y: y})
}

// RequestScreenshot saves the next rendered frame as a PNG.
func (r *Renderer) RequestScreenshot() {
	r.screenshot = true
}
