package viewer

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/sceneview/internal/engine/model"
	"github.com/Faultbox/sceneview/internal/engine/renderer"
)

// animationStep is how far Up/Down move the animation.
const animationStep = 100 * time.Millisecond

// Controls is the renderer surface the key bindings drive.
type Controls interface {
	SetLightMode(mode model.LightMode)
	MoveLightToCamera()
	SetAOMode(mode renderer.AOMode)
	AOMode() renderer.AOMode
	SetKernelSize(n int)
	KernelSize() int
	SetAnimationTime(t time.Duration)
	AnimationTime() time.Duration
	RequestScreenshot()
}

// Action is a discrete command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionLightVertex
	ActionLightFragment
	ActionLightMap
	ActionMoveLight
	ActionCycleAO
	ActionKernelUp
	ActionKernelDown
	ActionAnimForward
	ActionAnimBack
	ActionScreenshot
)

// Repeats reports whether holding the key should keep firing the action.
func (a Action) Repeats() bool {
	return a == ActionAnimForward || a == ActionAnimBack
}

var keyBindings = map[sdl.Scancode]Action{
	sdl.SCANCODE_ESCAPE:   ActionQuit,
	sdl.SCANCODE_1:        ActionLightVertex,
	sdl.SCANCODE_2:        ActionLightFragment,
	sdl.SCANCODE_3:        ActionLightMap,
	sdl.SCANCODE_L:        ActionMoveLight,
	sdl.SCANCODE_O:        ActionCycleAO,
	sdl.SCANCODE_EQUALS:   ActionKernelUp,
	sdl.SCANCODE_KP_PLUS:  ActionKernelUp,
	sdl.SCANCODE_MINUS:    ActionKernelDown,
	sdl.SCANCODE_KP_MINUS: ActionKernelDown,
	sdl.SCANCODE_UP:       ActionAnimForward,
	sdl.SCANCODE_DOWN:     ActionAnimBack,
	sdl.SCANCODE_F12:      ActionScreenshot,
}

// ActionFor returns the action bound to a key.
func ActionFor(key sdl.Scancode) Action {
	return keyBindings[key]
}

// Apply runs a on c. It reports false for ActionQuit.
func Apply(a Action, c Controls) bool {
	switch a {
	case ActionQuit:
		return false
	case ActionLightVertex:
		c.SetLightMode(model.LightVertex)
	case ActionLightFragment:
		c.SetLightMode(model.LightFragment)
	case ActionLightMap:
		c.SetLightMode(model.LightMap)
	case ActionMoveLight:
		c.MoveLightToCamera()
	case ActionCycleAO:
		c.SetAOMode(c.AOMode().Next())
	case ActionKernelUp:
		c.SetKernelSize(c.KernelSize() * 2)
	case ActionKernelDown:
		c.SetKernelSize(c.KernelSize() / 2)
	case ActionAnimForward:
		c.SetAnimationTime(c.AnimationTime() + animationStep)
	case ActionAnimBack:
		c.SetAnimationTime(c.AnimationTime() - animationStep)
	case ActionScreenshot:
		c.RequestScreenshot()
	}
	return true
}
