package renderer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/sceneview/internal/config"
)

// Mode selects which passes run. Each mode includes the previous one.
type Mode int

const (
	ModeBasic Mode = iota // main pass only
	ModePick              // + ID-buffer picking
	ModeSSAO              // + depth pre-pass and ambient occlusion
)

func (m Mode) String() string {
	switch m {
	case ModeBasic:
		return config.ModeBasic
	case ModePick:
		return config.ModePick
	case ModeSSAO:
		return config.ModeSSAO
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a config mode name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case config.ModeBasic:
		return ModeBasic, nil
	case config.ModePick:
		return ModePick, nil
	case config.ModeSSAO:
		return ModeSSAO, nil
	}
	return 0, fmt.Errorf("unknown render mode %q", s)
}

// AOMode selects how ambient occlusion reaches the output.
type AOMode int

const (
	AOOff AOMode = iota
	AOBlend
	AOOnly
)

func (m AOMode) String() string {
	switch m {
	case AOOff:
		return config.AOOff
	case AOBlend:
		return config.AOBlend
	case AOOnly:
		return config.AOOnly
	}
	return fmt.Sprintf("AOMode(%d)", int(m))
}

// Next cycles off -> blend -> only -> off.
func (m AOMode) Next() AOMode {
	return (m + 1) % 3
}

// ParseAOMode converts a config AO mode name.
func ParseAOMode(s string) (AOMode, error) {
	switch s {
	case config.AOOff:
		return AOOff, nil
	case config.AOBlend:
		return AOBlend, nil
	case config.AOOnly:
		return AOOnly, nil
	}
	return 0, fmt.Errorf("unknown ao mode %q", s)
}

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	Mode              Mode
	AnimationDuration time.Duration

	FOV    float32 // degrees
	Aspect float32
	Near   float32
	Far    float32
	Light  mgl32.Vec3

	KernelSize   int
	SampleRadius float32
	AO           AOMode
	Seed         int64

	Samples       int
	ScreenshotDir string
}

// DefaultConfig matches config.Default.
func DefaultConfig() Config {
	c, _ := ConfigFrom(config.Default())
	return c
}

// ConfigFrom builds a renderer Config from the validated viewer config.
func ConfigFrom(c *config.Config) (Config, error) {
	mode, err := ParseMode(c.Viewer.Mode)
	if err != nil {
		return Config{}, err
	}
	ao, err := ParseAOMode(c.SSAO.AOMode)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Width:             c.Graphics.Width,
		Height:            c.Graphics.Height,
		Mode:              mode,
		AnimationDuration: time.Duration(c.Viewer.AnimationDurationMS) * time.Millisecond,
		FOV:               c.Camera.FOV,
		Aspect:            4.0 / 3.0,
		Near:              c.Camera.Near,
		Far:               c.Camera.Far,
		Light:             mgl32.Vec3(c.Camera.Light),
		KernelSize:        config.ClampKernelSize(c.SSAO.KernelSize),
		SampleRadius:      c.SSAO.SampleRadius,
		AO:                ao,
		Seed:              c.SSAO.Seed,
		Samples:           c.Graphics.Samples,
		ScreenshotDir:     c.Viewer.ScreenshotDir,
	}, nil
}
