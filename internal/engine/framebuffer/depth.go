package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// DepthTarget is a depth-only render target backed by a 32-bit float
// depth texture that later passes can sample.
type DepthTarget struct {
	fbo          uint32
	depthTexture uint32
	width        int32
	height       int32
	prevViewport [4]int32
}

// NewDepthTarget creates a depth target of the given size.
func NewDepthTarget(width, height int32) (*DepthTarget, error) {
	dt := &DepthTarget{width: max(width, 1), height: max(height, 1)}

	gl.GenFramebuffers(1, &dt.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, dt.fbo)

	gl.GenTextures(1, &dt.depthTexture)
	gl.BindTexture(gl.TEXTURE_2D, dt.depthTexture)
	dt.allocate()
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, dt.depthTexture, 0)

	// No color buffer for the depth pass
	gl.DrawBuffer(gl.NONE)
	gl.ReadBuffer(gl.NONE)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		dt.Destroy()
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return nil, fmt.Errorf("depth framebuffer incomplete: 0x%x", status)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return dt, nil
}

func (dt *DepthTarget) allocate() {
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT32F, dt.width, dt.height, 0,
		gl.DEPTH_COMPONENT, gl.FLOAT, nil)
}

// Bind makes the target current, sets the viewport to its size and clears depth.
func (dt *DepthTarget) Bind() {
	gl.GetIntegerv(gl.VIEWPORT, &dt.prevViewport[0])
	gl.BindFramebuffer(gl.FRAMEBUFFER, dt.fbo)
	gl.Viewport(0, 0, dt.width, dt.height)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
}

// Unbind restores the default framebuffer and the viewport saved by Bind.
func (dt *DepthTarget) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(dt.prevViewport[0], dt.prevViewport[1], dt.prevViewport[2], dt.prevViewport[3])
}

// BindTexture binds the depth texture to the given texture unit.
func (dt *DepthTarget) BindTexture(unit int) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, dt.depthTexture)
}

// Size returns the target dimensions.
func (dt *DepthTarget) Size() (width, height int32) {
	return dt.width, dt.height
}

// Resize reallocates the depth texture when the size changes.
func (dt *DepthTarget) Resize(width, height int32) {
	width, height = max(width, 1), max(height, 1)
	if width == dt.width && height == dt.height {
		return
	}
	dt.width, dt.height = width, height
	gl.BindTexture(gl.TEXTURE_2D, dt.depthTexture)
	dt.allocate()
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Destroy releases the GPU resources.
func (dt *DepthTarget) Destroy() {
	if dt.fbo != 0 {
		gl.DeleteFramebuffers(1, &dt.fbo)
		dt.fbo = 0
	}
	if dt.depthTexture != 0 {
		gl.DeleteTextures(1, &dt.depthTexture)
		dt.depthTexture = 0
	}
}
