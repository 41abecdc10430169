package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tui-sunset/internal/core"
	"github.com/vovakirdan/tui-sunset/internal/present"
	"github.com/vovakirdan/tui-sunset/internal/render"
	"github.com/vovakirdan/tui-sunset/internal/scene"
)

//go:embed defaults/sunset.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the built-in configuration.
func Default() Config {
	p := scene.DefaultParams()
	st := render.DefaultStyle()
	pal := render.DefaultPalette()

	return Config{
		Display: DisplayConfig{
			FPS:      60,
			Interval: present.DefaultInterval,
			Help:     true,
		},
		Scene: SceneConfig{
			SunStart:        p.SunStart,
			Speed:           p.Speed,
			SpeedStep:       p.SpeedStep,
			MinSpeed:        p.MinSpeed,
			MaxSpeed:        p.MaxSpeed,
			WaveStep:        p.WaveStep,
			CurrentStep:     p.CurrentStep,
			BrightnessFloor: p.BrightnessFloor,
			ReferenceHeight: scene.ReferenceHeight,
		},
		Style: StyleConfig{
			SkyFraction:      st.SkyFraction,
			SunRadius:        st.SunRadius,
			WaveAmplitude:    st.WaveAmplitude,
			WaveFrequency:    st.WaveFrequency,
			WaveTick:         st.WaveTick,
			CurrentFrequency: st.CurrentFrequency,
			CurrentDepth:     st.CurrentDepth,
		},
		Colors: PaletteConfig{
			DayZenith:   color(pal.DayZenith),
			DayHorizon:  color(pal.DayHorizon),
			DuskZenith:  color(pal.DuskZenith),
			DuskHorizon: color(pal.DuskHorizon),
			SunHigh:     color(pal.SunHigh),
			SunLow:      color(pal.SunLow),
			Water:       color(pal.Water),
			Wave:        color(pal.Wave),
		},
		Keys: KeysConfig{
			Faster: []string{"+", "=", "up"},
			Slower: []string{"-", "_", "down"},
			Quit:   []string{"esc", "q"},
		},
		Server: ServerConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		Source: SourceBuiltin,
	}
}

func color(c core.Color) Color {
	return Color{c}
}
