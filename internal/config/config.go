// Package config provides YAML-based configuration for the sunset
// animation: surface size and pacing, scene tunables, palette, keys and the
// SSH server.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-sunset/internal/core"
	"github.com/vovakirdan/tui-sunset/internal/input"
	"github.com/vovakirdan/tui-sunset/internal/present"
	"github.com/vovakirdan/tui-sunset/internal/render"
	"github.com/vovakirdan/tui-sunset/internal/scene"
)

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("invalid config")

// Config is the complete configuration.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Scene   SceneConfig   `yaml:"scene"`
	Style   StyleConfig   `yaml:"style"`
	Colors  PaletteConfig `yaml:"palette"`
	Keys    KeysConfig    `yaml:"keys"`
	Server  ServerConfig  `yaml:"server"`

	// Source is where the config was loaded from.
	Source string `yaml:"-"`
}

// DisplayConfig defines the surface and pacing.
// A zero width or height means "fit the terminal".
type DisplayConfig struct {
	Width    int           `yaml:"width"`
	Height   int           `yaml:"height"`
	FPS      int           `yaml:"fps"`      // Terminal repaint cap
	Interval time.Duration `yaml:"interval"` // Sleep between frames
	Help     bool          `yaml:"help"`     // Show the key help bar
}

// SceneConfig defines the sun's motion. Pixel values are authored for a
// surface ReferenceHeight pixels tall.
type SceneConfig struct {
	SunStart        float64 `yaml:"sun_start"`
	Speed           float64 `yaml:"speed"`
	SpeedStep       float64 `yaml:"speed_step"`
	MinSpeed        float64 `yaml:"min_speed"`
	MaxSpeed        float64 `yaml:"max_speed"`
	WaveStep        float64 `yaml:"wave_step"`
	CurrentStep     float64 `yaml:"current_step"`
	BrightnessFloor float64 `yaml:"brightness_floor"`
	ReferenceHeight int     `yaml:"reference_height"`
}

// StyleConfig defines layer geometry, authored like SceneConfig.
type StyleConfig struct {
	SkyFraction      float64 `yaml:"sky_fraction"`
	SunRadius        float64 `yaml:"sun_radius"`
	WaveAmplitude    float64 `yaml:"wave_amplitude"`
	WaveFrequency    float64 `yaml:"wave_frequency"`
	WaveTick         float64 `yaml:"wave_tick"`
	CurrentFrequency float64 `yaml:"current_frequency"`
	CurrentDepth     float64 `yaml:"current_depth"`
}

// PaletteConfig holds the scene colors as hex strings.
type PaletteConfig struct {
	DayZenith   Color `yaml:"day_zenith"`
	DayHorizon  Color `yaml:"day_horizon"`
	DuskZenith  Color `yaml:"dusk_zenith"`
	DuskHorizon Color `yaml:"dusk_horizon"`
	SunHigh     Color `yaml:"sun_high"`
	SunLow      Color `yaml:"sun_low"`
	Water       Color `yaml:"water"`
	Wave        Color `yaml:"wave"`
}

// KeysConfig lists the keys bound to each command.
type KeysConfig struct {
	Faster []string `yaml:"faster"`
	Slower []string `yaml:"slower"`
	Quit   []string `yaml:"quit"`
}

// ServerConfig defines the SSH server used by `sunset serve`.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"` // Empty means ~/.sunset/host_key
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// Color is a core.Color written as "#rrggbb" in YAML.
type Color struct {
	core.Color
}

// ParseColor parses a hex color such as "#ff8c00" or "#f80".
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{core.RGB(r, g, b)}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (any, error) {
	return c.Hex(), nil
}

// Validate reports every problem in the config at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	d := c.Display
	check(d.Width >= 0, "display.width must not be negative, got %d", d.Width)
	check(d.Height >= 0, "display.height must not be negative, got %d", d.Height)
	check(d.FPS > 0, "display.fps must be positive, got %d", d.FPS)
	check(d.Interval >= 0, "display.interval must not be negative, got %s", d.Interval)

	s := c.Scene
	check(s.SunStart >= 0, "scene.sun_start must not be negative, got %g", s.SunStart)
	check(s.MinSpeed > 0, "scene.min_speed must be positive, got %g", s.MinSpeed)
	check(s.MaxSpeed >= s.MinSpeed, "scene.max_speed %g is below min_speed %g", s.MaxSpeed, s.MinSpeed)
	check(s.SpeedStep > 0, "scene.speed_step must be positive, got %g", s.SpeedStep)
	check(s.BrightnessFloor > 0 && s.BrightnessFloor <= 1,
		"scene.brightness_floor must be in (0, 1], got %g", s.BrightnessFloor)
	check(s.ReferenceHeight > 0, "scene.reference_height must be positive, got %d", s.ReferenceHeight)

	st := c.Style
	check(st.SkyFraction > 0 && st.SkyFraction <= 1, "style.sky_fraction must be in (0, 1], got %g", st.SkyFraction)
	check(st.SunRadius > 0, "style.sun_radius must be positive, got %g", st.SunRadius)
	check(st.CurrentDepth >= 0 && st.CurrentDepth < 1,
		"style.current_depth must be in [0, 1), got %g", st.CurrentDepth)

	check(len(c.Keys.Faster) > 0, "keys.faster is empty")
	check(len(c.Keys.Slower) > 0, "keys.slower is empty")
	check(len(c.Keys.Quit) > 0, "keys.quit is empty")

	return errors.Join(errs...)
}

// scaleFor returns the factor from the authored reference height to height.
func (c Config) scaleFor(height int) float64 {
	if c.Scene.ReferenceHeight <= 0 || height <= 0 {
		return 1
	}
	return float64(height) / float64(c.Scene.ReferenceHeight)
}

// SceneParams returns the scene parameters for a surface of the given height.
func (c Config) SceneParams(height int) scene.Params {
	s := c.Scene
	return scene.Params{
		SunStart:        s.SunStart,
		Speed:           s.Speed,
		SpeedStep:       s.SpeedStep,
		MinSpeed:        s.MinSpeed,
		MaxSpeed:        s.MaxSpeed,
		WaveStep:        s.WaveStep,
		CurrentStep:     s.CurrentStep,
		BrightnessFloor: s.BrightnessFloor,
	}.Scale(c.scaleFor(height))
}

// LayerStyle returns the layer geometry for a surface of the given height.
func (c Config) LayerStyle(height int) render.Style {
	st := c.Style
	return render.Style{
		SkyFraction:      st.SkyFraction,
		SunRadius:        st.SunRadius,
		WaveAmplitude:    st.WaveAmplitude,
		WaveFrequency:    st.WaveFrequency,
		WaveTick:         st.WaveTick,
		CurrentFrequency: st.CurrentFrequency,
		CurrentDepth:     st.CurrentDepth,
	}.Scale(c.scaleFor(height))
}

// Palette returns the layer colors.
func (c Config) Palette() render.Palette {
	p := c.Colors
	return render.Palette{
		DayZenith:   p.DayZenith.Color,
		DayHorizon:  p.DayHorizon.Color,
		DuskZenith:  p.DuskZenith.Color,
		DuskHorizon: p.DuskHorizon.Color,
		SunHigh:     p.SunHigh.Color,
		SunLow:      p.SunLow.Color,
		Water:       p.Water.Color,
		Wave:        p.Wave.Color,
	}
}

// Bindings returns the key bindings.
func (c Config) Bindings() input.Bindings {
	return input.NewBindings(c.Keys.Faster, c.Keys.Slower, c.Keys.Quit)
}

// SceneFactory returns a factory building the configured scene at any
// surface size.
func (c Config) SceneFactory() present.SceneFactory {
	return func(width, height int) (*scene.State, render.Stack) {
		st := scene.NewState(c.SceneParams(height), width, height)
		return st, render.NewStack(c.Palette(), c.LayerStyle(height))
	}
}
