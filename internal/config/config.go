// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"
	"strings"
)

// Render modes. Each mode includes the features of the previous one.
const (
	ModeBasic = "basic"
	ModePick  = "pick"
	ModeSSAO  = "ssao"
)

// Ambient occlusion output modes.
const (
	AOOff   = "off"
	AOBlend = "blend"
	AOOnly  = "only"
)

// SSAO kernel bounds.
const (
	MinKernelSize = 4
	MaxKernelSize = 128
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Viewer   ViewerConfig   `yaml:"viewer"`
	Camera   CameraConfig   `yaml:"camera"`
	SSAO     SSAOConfig     `yaml:"ssao"`
	Import   ImportConfig   `yaml:"import"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	Samples    int  `yaml:"samples"` // MSAA samples, 0 disables
}

// ViewerConfig holds what to show and how.
type ViewerConfig struct {
	ModelPath           string `yaml:"model_path"`
	Mode                string `yaml:"mode"`
	AnimationDurationMS int    `yaml:"animation_duration_ms"`
	ShowFPS             bool   `yaml:"show_fps"`
	ScreenshotDir       string `yaml:"screenshot_dir"`
}

// CameraConfig holds the initial free-fly camera state.
type CameraConfig struct {
	Position    [3]float32 `yaml:"position"`
	Light       [3]float32 `yaml:"light"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	MoveSpeed   float32    `yaml:"move_speed"` // units per millisecond
	Sensitivity float32    `yaml:"sensitivity"`
	FOV         float32    `yaml:"fov"`
	Near        float32    `yaml:"near"`
	Far         float32    `yaml:"far"`
}

// SSAOConfig holds ambient occlusion settings.
type SSAOConfig struct {
	KernelSize   int     `yaml:"kernel_size"`
	SampleRadius float32 `yaml:"sample_radius"`
	AOMode       string  `yaml:"ao_mode"`
	Seed         int64   `yaml:"seed"` // 0 seeds from the clock
}

// ImportConfig holds asset import flags.
type ImportConfig struct {
	FlipUVs        bool `yaml:"flip_uvs"`
	Triangulate    bool `yaml:"triangulate"`
	BakeTransforms bool `yaml:"bake_transforms"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1024,
			Height:     768,
			Fullscreen: false,
			VSync:      true,
			Samples:    0,
		},
		Viewer: ViewerConfig{
			Mode:                ModeSSAO,
			AnimationDurationMS: 3000,
			ShowFPS:             true,
			ScreenshotDir:       "screenshots",
		},
		Camera: CameraConfig{
			Position:    [3]float32{2, 1, -4},
			Light:       [3]float32{2, 4, -4},
			Yaw:         90,
			Pitch:       0,
			MoveSpeed:   0.005,
			Sensitivity: 0.1,
			FOV:         60,
			Near:        0.1,
			Far:         100,
		},
		SSAO: SSAOConfig{
			KernelSize:   64,
			SampleRadius: 1.5,
			AOMode:       AOBlend,
		},
		Import: ImportConfig{
			FlipUVs:     true,
			Triangulate: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate normalizes values that have a safe range and rejects the rest.
func (c *Config) Validate() error {
	c.Viewer.Mode = strings.ToLower(c.Viewer.Mode)
	switch c.Viewer.Mode {
	case ModeBasic, ModePick, ModeSSAO:
	default:
		return fmt.Errorf("unknown render mode %q", c.Viewer.Mode)
	}

	c.SSAO.AOMode = strings.ToLower(c.SSAO.AOMode)
	switch c.SSAO.AOMode {
	case AOOff, AOBlend, AOOnly:
	default:
		return fmt.Errorf("unknown ao mode %q", c.SSAO.AOMode)
	}

	c.SSAO.KernelSize = ClampKernelSize(c.SSAO.KernelSize)

	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("invalid clip planes near=%g far=%g", c.Camera.Near, c.Camera.Far)
	}
	if c.Viewer.AnimationDurationMS <= 0 {
		c.Viewer.AnimationDurationMS = 3000
	}
	return nil
}

// ClampKernelSize limits n to [MinKernelSize, MaxKernelSize].
func ClampKernelSize(n int) int {
	if n < MinKernelSize {
		return MinKernelSize
	}
	if n > MaxKernelSize {
		return MaxKernelSize
	}
	return n
}
