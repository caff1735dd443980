package renderer

import (
	"fmt"
	"math"
	"time"
)

// fpsSmoothing is the weight of the newest sample in the smoothed estimate.
const fpsSmoothing = 0.1

// FPSCounter tracks frame count and frame rate.
type FPSCounter struct {
	frames   uint64
	current  float64
	smoothed float64
}

// Tick records one frame that took elapsed.
func (c *FPSCounter) Tick(elapsed time.Duration) {
	c.frames++
	ms := float64(elapsed) / float64(time.Millisecond)
	if ms <= 0 {
		return
	}
	c.current = 1000 / ms
	if c.smoothed == 0 {
		c.smoothed = c.current
	} else {
		c.smoothed += (c.current - c.smoothed) * fpsSmoothing
	}
}

// Frames returns the number of frames recorded.
func (c *FPSCounter) Frames() uint64 { return c.frames }

// FPS returns the rate implied by the last frame.
func (c *FPSCounter) FPS() float64 { return c.current }

// Smoothed returns the exponentially smoothed rate.
func (c *FPSCounter) Smoothed() float64 { return c.smoothed }

// FPSTitle formats a window title carrying the frame rate.
func FPSTitle(title string, fps float64) string {
	return fmt.Sprintf("%s | FPS: %d", title, int(math.Round(fps)))
}
