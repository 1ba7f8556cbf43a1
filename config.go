package sapling

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Render resolution limits. WindowConfig.Normalize clamps ResX/ResY into
// this range.
const (
	MinRenderWidth  = 80
	MinRenderHeight = 45
	MaxRenderWidth  = 7680
	MaxRenderHeight = 4320
)

// WindowConfig describes a window surface. Width and Height are the logical
// (presented) size; ResX and ResY are the resolution the scene is rendered
// at. Zero ResX/ResY means "same as the logical size".
type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	ResX       int    `yaml:"res_x"`
	ResY       int    `yaml:"res_y"`
	Title      string `yaml:"title"`
	Resizable  bool   `yaml:"resizable"`
	Fullscreen bool   `yaml:"fullscreen"`
	// VSync caps pacing to the display refresh. When false, TargetFPS (if
	// positive) is enforced by sleeping at the end of each Render.
	VSync      bool  `yaml:"vsync"`
	TargetFPS  int   `yaml:"target_fps"`
	Background Color `yaml:"background"`
}

// RenderSize returns the effective render resolution.
func (c WindowConfig) RenderSize() (w, h int) {
	w, h = c.ResX, c.ResY
	if w == 0 {
		w = c.Width
	}
	if h == 0 {
		h = c.Height
	}
	return w, h
}

// Scaled reports whether the render resolution differs from the logical size.
func (c WindowConfig) Scaled() bool {
	w, h := c.RenderSize()
	return w != c.Width || h != c.Height
}

// Aspect returns the render resolution's width/height ratio.
func (c WindowConfig) Aspect() float64 {
	w, h := c.RenderSize()
	if h == 0 {
		return 1
	}
	return float64(w) / float64(h)
}

// Normalize resolves a zero render resolution to the logical size and clamps
// it into [MinRenderWidth×MinRenderHeight, MaxRenderWidth×MaxRenderHeight].
func (c WindowConfig) Normalize() WindowConfig {
	w, h := c.RenderSize()
	c.ResX = clampInt(w, MinRenderWidth, MaxRenderWidth)
	c.ResY = clampInt(h, MinRenderHeight, MaxRenderHeight)
	return c
}

// ScaleResolution multiplies the render resolution by factor and clamps the
// result. Stepping by 2 or 0.5 per scroll notch gives the classic
// pixelated-zoom control.
func (c WindowConfig) ScaleResolution(factor float64) WindowConfig {
	w, h := c.RenderSize()
	c.ResX = int(float64(w) * factor)
	c.ResY = int(float64(h) * factor)
	return c.Normalize()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CameraConfig holds defaults applied to cameras created by the engine
// bootstrap.
type CameraConfig struct {
	FOV  float64 `yaml:"fov"`
	Near float64 `yaml:"near"`
	Far  float64 `yaml:"far"`
}

// Config is the top-level engine configuration.
type Config struct {
	Window WindowConfig `yaml:"window"`
	Camera CameraConfig `yaml:"camera"`
	Debug  bool         `yaml:"debug"`
	// ScreenshotDir is where Engine.Screenshot writes PNG files.
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// DefaultConfig returns a 1280×720 vsynced window with default camera planes.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			Title:      "sapling",
			Resizable:  true,
			VSync:      true,
			TargetFPS:  60,
			Background: ColorBlack,
		},
		Camera: CameraConfig{
			FOV:  DefaultFOV,
			Near: DefaultNearPlane,
			Far:  DefaultFarPlane,
		},
		ScreenshotDir: "screenshots",
	}
}

// Validate reports whether the configuration can drive a window.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.ResX < 0 || c.Window.ResY < 0 {
		return errors.Wrapf(ErrInvalidConfig, "render resolution %dx%d", c.Window.ResX, c.Window.ResY)
	}
	if c.Window.TargetFPS < 0 {
		return errors.Wrapf(ErrInvalidConfig, "target fps %d", c.Window.TargetFPS)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return errors.Wrapf(ErrInvalidConfig, "camera planes near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	return nil
}

// LoadConfig parses YAML on top of DefaultConfig, validates it and
// normalizes the render resolution.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(ErrInvalidConfig, err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	cfg.Window = cfg.Window.Normalize()
	return cfg, nil
}

// LoadConfigFile reads and parses a YAML configuration file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	cfg, err := LoadConfig(data)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load config %s", path)
	}
	return cfg, nil
}
