package viewer

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/sceneview/internal/engine/input"
)

func TestHandleFocusLostStopsMovement(t *testing.T) {
	a := &App{running: true, state: input.NewState()}
	a.state.Apply(input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_W})
	if !a.state.MoveState().Forward {
		t.Fatal("W not held")
	}

	a.handle(input.Event{Type: input.EventFocusLost})

	if a.state.MoveState().Any() {
		t.Errorf("MoveState = %+v after focus lost", a.state.MoveState())
	}
	if !a.running {
		t.Error("focus loss should not stop the viewer")
	}
}
