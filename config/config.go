package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds all tunable values. Files only need to name the fields they
// override; everything else keeps the value from Defaults.
type Config struct {
	Window   WindowConfig   `toml:"window" yaml:"window"`
	Quadtree QuadtreeConfig `toml:"quadtree" yaml:"quadtree"`
	Physics  PhysicsConfig  `toml:"physics" yaml:"physics"`
	Hero     HeroConfig     `toml:"hero" yaml:"hero"`
	Camera   CameraConfig   `toml:"camera" yaml:"camera"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
	Debug    DebugConfig    `toml:"debug" yaml:"debug"`
}

type WindowConfig struct {
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	Title  string `toml:"title" yaml:"title"`
	TPS    int    `toml:"tps" yaml:"tps"` // simulation ticks per second
}

// QuadtreeConfig contains spatial index tuning
type QuadtreeConfig struct {
	Capacity int `toml:"capacity" yaml:"capacity"`   // bodies a leaf holds before splitting
	MaxDepth int `toml:"max_depth" yaml:"max_depth"` // nodes at this depth never split
}

// PhysicsConfig contains values shared by every dynamic entity
type PhysicsConfig struct {
	Gravity float64 `toml:"gravity" yaml:"gravity"` // downward acceleration for obstacles, units/s²

	// Off: a blocked axis goes back to where it started the frame. On: the
	// entity is moved flush against the blocker.
	SnapToContact bool `toml:"snap_to_contact" yaml:"snap_to_contact"`
}

// HeroConfig contains player movement constants. Speeds are in world units
// per second.
type HeroConfig struct {
	RunSpeed   float64 `toml:"run_speed" yaml:"run_speed"`
	ClimbSpeed float64 `toml:"climb_speed" yaml:"climb_speed"`
	Gravity    float64 `toml:"gravity" yaml:"gravity"`
	JumpSpeed  float64 `toml:"jump_speed" yaml:"jump_speed"`

	Width  float64 `toml:"width" yaml:"width"`
	Height float64 `toml:"height" yaml:"height"`
}

type CameraConfig struct {
	FollowSmoothing float64 `toml:"follow_smoothing" yaml:"follow_smoothing"` // lerp factor per tick (0-1)
	Zoom            float64 `toml:"zoom" yaml:"zoom"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"` // "console" or "json"
}

// DebugConfig contains debug/testing command-line options
type DebugConfig struct {
	ShowQuadtree bool `toml:"show_quadtree" yaml:"show_quadtree"`
	ShowStats    bool `toml:"show_stats" yaml:"show_stats"`
}

// C is the active configuration. main replaces it after loading a file.
var C *Config

// Shared RGBA color constants
var (
	White        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Yellow       = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	Orange       = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	Red          = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	BrightGreen  = color.RGBA{R: 0, G: 255, B: 60, A: 255}
	LightGreen   = color.RGBA{R: 100, G: 255, B: 100, A: 255}
	Purple       = color.RGBA{R: 128, G: 0, B: 255, A: 255}
	Magenta      = color.RGBA{R: 255, G: 0, B: 255, A: 255}
	BlackOverlay = color.RGBA{R: 0, G: 0, B: 0, A: 180}
	LightBlue    = color.RGBA{R: 100, G: 180, B: 255, A: 255}
	DarkBlue     = color.RGBA{R: 60, G: 100, B: 160, A: 255}
	Background   = color.RGBA{R: 24, G: 26, B: 36, A: 255}
)

func init() {
	C = Defaults()
}

// Defaults returns a fresh Config with built-in values.
func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  640,
			Height: 360,
			Title:  "quadplat",
			TPS:    60,
		},
		Quadtree: QuadtreeConfig{
			Capacity: 8,
			MaxDepth: 6,
		},
		Physics: PhysicsConfig{
			Gravity: 400,
		},
		Hero: HeroConfig{
			RunSpeed:   100,
			ClimbSpeed: 100,
			Gravity:    400,
			JumpSpeed:  200,
			Width:      12,
			Height:     24,
		},
		Camera: CameraConfig{
			FollowSmoothing: 0.15,
			Zoom:            1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a TOML or YAML file, picked by extension, over Defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: unsupported extension %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
