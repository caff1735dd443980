package renderer

import (
	"math"
	"testing"
	"time"
)

func TestFPSCounter(t *testing.T) {
	var c FPSCounter
	for i := 0; i < 5; i++ {
		c.Tick(20 * time.Millisecond)
	}
	if c.Frames() != 5 {
		t.Errorf("Frames() = %d, want 5", c.Frames())
	}
	if c.FPS() != 50 {
		t.Errorf("FPS() = %v, want 50", c.FPS())
	}
	if c.Smoothed() != 50 {
		t.Errorf("Smoothed() = %v, want 50", c.Smoothed())
	}
}

func TestFPSCounterSmoothing(t *testing.T) {
	var c FPSCounter
	c.Tick(10 * time.Millisecond) // 100
	c.Tick(20 * time.Millisecond) // 50

	if c.FPS() != 50 {
		t.Errorf("FPS() = %v, want 50", c.FPS())
	}
	if math.Abs(c.Smoothed()-95) > 1e-9 {
		t.Errorf("Smoothed() = %v, want 95", c.Smoothed())
	}
}

func TestFPSCounterZeroElapsed(t *testing.T) {
	var c FPSCounter
	c.Tick(0)
	if c.Frames() != 1 || c.FPS() != 0 {
		t.Errorf("zero frame: frames=%d fps=%v", c.Frames(), c.FPS())
	}
}

func TestFPSTitle(t *testing.T) {
	tests := []struct {
		fps  float64
		want string
	}{
		{50, "SceneView | FPS: 50"},
		{59.6, "SceneView | FPS: 60"},
		{0, "SceneView | FPS: 0"},
	}
	for _, tt := range tests {
		if got := FPSTitle("SceneView", tt.fps); got != tt.want {
			t.Errorf("FPSTitle(%v) = %q, want %q", tt.fps, got, tt.want)
		}
	}
}
