package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/sceneview/internal/engine/camera"
)

// Click is a queued double-click in window coordinates.
type Click struct {
	X, Y int
}

// State is the input the renderer consumes each frame: held keys, mouse
// drag and queued double-clicks. It is fed from Events with Apply.
type State struct {
	keys      map[sdl.Scancode]bool
	mouseHeld bool
	lastX     int
	lastY     int
	dragX     float32
	dragY     float32
	clicks    []Click
}

// NewState returns an empty input state.
func NewState() *State {
	return &State{keys: make(map[sdl.Scancode]bool)}
}

// Apply folds one event into the state.
func (s *State) Apply(e Event) {
	switch e.Type {
	case EventKeyDown:
		s.keys[e.Key] = true
	case EventKeyUp:
		delete(s.keys, e.Key)
	case EventMouseDown:
		if e.Button != sdl.BUTTON_LEFT {
			return
		}
		s.lastX, s.lastY = e.MouseX, e.MouseY
		s.mouseHeld = true
		if e.Clicks == 2 {
			s.clicks = append(s.clicks, Click{X: e.MouseX, Y: e.MouseY})
		}
	case EventMouseUp:
		if e.Button == sdl.BUTTON_LEFT {
			s.mouseHeld = false
		}
	case EventMouseMove:
		if !s.mouseHeld {
			return
		}
		s.dragX += float32(e.MouseX - s.lastX)
		s.dragY += float32(s.lastY - e.MouseY) // screen y grows downward
		s.lastX, s.lastY = e.MouseX, e.MouseY
	case EventFocusLost:
		// Key-up and button-up events go to the focused window.
		s.Reset()
	}
}

// MoveState maps WASD, Space and Shift to camera movement.
func (s *State) MoveState() camera.MoveState {
	return camera.MoveState{
		Forward: s.keys[sdl.SCANCODE_W],
		Back:    s.keys[sdl.SCANCODE_S],
		Left:    s.keys[sdl.SCANCODE_A],
		Right:   s.keys[sdl.SCANCODE_D],
		Up:      s.keys[sdl.SCANCODE_SPACE],
		Down:    s.keys[sdl.SCANCODE_LSHIFT] || s.keys[sdl.SCANCODE_RSHIFT],
	}
}

// TakeDrag returns and resets the drag accumulated since the last call.
// dy is positive when the mouse moved up.
func (s *State) TakeDrag() (dx, dy float32) {
	dx, dy = s.dragX, s.dragY
	s.dragX, s.dragY = 0, 0
	return dx, dy
}

// TakeClicks returns and clears the queued double-clicks.
func (s *State) TakeClicks() []Click {
	c := s.clicks
	s.clicks = nil
	return c
}

// Reset forgets held keys, the held button and pending drag.
func (s *State) Reset() {
	clear(s.keys)
	s.mouseHeld = false
	s.dragX, s.dragY = 0, 0
}
