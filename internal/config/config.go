// Package config handles renderer configuration loading and management.
package config

import (
	"fmt"
	"time"
)

// Lighting modes.
const (
	// LightingPerLight issues one draw per active light with additive blending.
	LightingPerLight = "per_light"
	// LightingArray issues one draw per mesh with every light pushed as an array.
	LightingArray = "array"
)

// Config holds all renderer settings.
type Config struct {
	Viewport  ViewportConfig  `yaml:"viewport"`
	Camera    CameraConfig    `yaml:"camera"`
	Lighting  LightingConfig  `yaml:"lighting"`
	Animation AnimationConfig `yaml:"animation"`
	Scene     SceneConfig     `yaml:"scene"`
	Debug     DebugConfig     `yaml:"debug"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ViewportConfig holds the initial window/viewport size in pixels.
type ViewportConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	VSync  bool `yaml:"vsync"`
}

// CameraConfig holds the viewer camera defaults.
type CameraConfig struct {
	FovDegrees float32 `yaml:"fov_degrees"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	Distance   float32 `yaml:"distance"`
}

// LightingConfig selects the multi-light strategy.
type LightingConfig struct {
	Mode           string `yaml:"mode"`
	MaxArrayLights int    `yaml:"max_array_lights"`
}

// AnimationConfig holds animation mixer settings.
type AnimationConfig struct {
	Loop     bool          `yaml:"loop"`
	Speed    float32       `yaml:"speed"`
	MaxDelta time.Duration `yaml:"max_delta"`
}

// SceneConfig points at the scene description to load.
type SceneConfig struct {
	Path string `yaml:"path"`
	// TextureDir resolves relative texture names; empty means the scene's directory.
	TextureDir string `yaml:"texture_dir"`
}

// DebugConfig holds frame capture settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
	// Capture renders a single frame offscreen, saves it and exits.
	Capture bool `yaml:"capture"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewport: ViewportConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			FovDegrees: 45,
			Near:       0.1,
			Far:        1000,
			Distance:   10,
		},
		Lighting: LightingConfig{
			Mode:           LightingPerLight,
			MaxArrayLights: 8,
		},
		Animation: AnimationConfig{
			Loop:     true,
			Speed:    1,
			MaxDelta: 100 * time.Millisecond,
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks values that cannot be recovered at render time.
func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Viewport.Width, c.Viewport.Height)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("invalid clip planes near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	switch c.Lighting.Mode {
	case LightingPerLight, LightingArray:
	default:
		return fmt.Errorf("unknown lighting mode %q", c.Lighting.Mode)
	}
	if c.Lighting.MaxArrayLights < 1 {
		return fmt.Errorf("max_array_lights must be at least 1, got %d", c.Lighting.MaxArrayLights)
	}
	return nil
}
