// Package camera provides the free-fly camera used by the viewer.
package camera

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPitch is the pitch limit in degrees. Looking straight up or down would
// make forward parallel to up and the view matrix degenerate.
const MaxPitch = 89.0

// MoveState is the set of movement directions held this frame.
type MoveState struct {
	Forward, Back bool
	Left, Right   bool
	Up, Down      bool
}

// Any reports whether any direction is held.
func (m MoveState) Any() bool {
	return m.Forward || m.Back || m.Left || m.Right || m.Up || m.Down
}

// Fly is a first-person camera steered by yaw and pitch in degrees.
type Fly struct {
	Position mgl32.Vec3
	Up       mgl32.Vec3

	// Speed is in world units per millisecond.
	Speed float32
	// Sensitivity scales mouse deltas into degrees.
	Sensitivity float32

	yaw, pitch float32
	forward    mgl32.Vec3
}

// NewFly creates a camera at pos looking along the given yaw and pitch.
func NewFly(pos mgl32.Vec3, yaw, pitch float32) *Fly {
	c := &Fly{
		Position:    pos,
		Up:          mgl32.Vec3{0, 1, 0},
		Speed:       0.005,
		Sensitivity: 0.1,
	}
	c.SetAngles(yaw, pitch)
	return c
}

// Yaw returns the heading in degrees.
func (c *Fly) Yaw() float32 { return c.yaw }

// Pitch returns the elevation in degrees.
func (c *Fly) Pitch() float32 { return c.pitch }

// Forward returns the unit view direction.
func (c *Fly) Forward() mgl32.Vec3 { return c.forward }

// SetAngles sets yaw and pitch, clamping pitch to ±MaxPitch.
func (c *Fly) SetAngles(yaw, pitch float32) {
	c.yaw = yaw
	c.pitch = mgl32.Clamp(pitch, -MaxPitch, MaxPitch)

	y, p := mgl32.DegToRad(c.yaw), mgl32.DegToRad(c.pitch)
	c.forward = mgl32.Vec3{
		cos(y) * cos(p),
		sin(p),
		sin(y) * cos(p),
	}.Normalize()
}

// Drag turns the camera by a mouse delta. dy is positive when the mouse moves up.
func (c *Fly) Drag(dx, dy float32) {
	c.SetAngles(c.yaw+dx*c.Sensitivity, c.pitch+dy*c.Sensitivity)
}

// Right returns the unit strafe direction.
func (c *Fly) Right() mgl32.Vec3 {
	r := c.forward.Cross(c.Up)
	if r.Len() == 0 {
		return mgl32.Vec3{1, 0, 0}
	}
	return r.Normalize()
}

// Move integrates held directions over elapsed time.
func (c *Fly) Move(m MoveState, elapsed time.Duration) {
	if !m.Any() {
		return
	}
	step := c.Speed * float32(elapsed.Microseconds()) / 1000
	if m.Forward {
		c.Position = c.Position.Add(c.forward.Mul(step))
	}
	if m.Back {
		c.Position = c.Position.Sub(c.forward.Mul(step))
	}
	if m.Left {
		c.Position = c.Position.Sub(c.Right().Mul(step))
	}
	if m.Right {
		c.Position = c.Position.Add(c.Right().Mul(step))
	}
	if m.Up {
		c.Position = c.Position.Add(c.Up.Mul(step))
	}
	if m.Down {
		c.Position = c.Position.Sub(c.Up.Mul(step))
	}
}

// View returns the look-at matrix.
func (c *Fly) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.forward), c.Up)
}
