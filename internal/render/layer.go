// Package render draws the sunset scene into a core.Surface.
//
// The scene is built from three independent layers drawn in a fixed order:
// sky, then sun, then ocean. Each later layer fully owns its footprint, so
// swapping the order visibly breaks the picture.
package render

import (
	"github.com/vovakirdan/tui-sunset/internal/core"
	"github.com/vovakirdan/tui-sunset/internal/scene"
)

// Layer draws one part of the scene. Implementations read the state and
// write only into dst.
type Layer interface {
	// Name identifies the layer in logs.
	Name() string

	// Draw paints the layer for the given state.
	Draw(dst *core.Surface, st *scene.State)
}

// Stack is an ordered list of layers.
type Stack []Layer

// NewStack returns the sky, sun and ocean layers in draw order.
func NewStack(p Palette, s Style) Stack {
	return Stack{
		&Sky{Palette: p, Fraction: s.SkyFraction},
		&Sun{Palette: p, Radius: s.SunRadius},
		&Ocean{
			Palette:          p,
			WaveAmplitude:    s.WaveAmplitude,
			WaveFrequency:    s.WaveFrequency,
			WaveTick:         s.WaveTick,
			CurrentFrequency: s.CurrentFrequency,
			CurrentDepth:     s.CurrentDepth,
		},
	}
}

// Draw paints every layer in order.
func (s Stack) Draw(dst *core.Surface, st *scene.State) {
	Compose(dst, st, s...)
}

// Compose paints layers into dst in the order given.
func Compose(dst *core.Surface, st *scene.State, layers ...Layer) {
	for _, l := range layers {
		l.Draw(dst, st)
	}
}

// Palette holds every color the layers use.
type Palette struct {
	DayZenith   core.Color // Top of the sky while the sun is high
	DayHorizon  core.Color // Bottom of the sky while the sun is high
	DuskZenith  core.Color
	DuskHorizon core.Color
	SunHigh     core.Color // Sun above the horizon
	SunLow      core.Color // Sun at the wrap line
	Water       core.Color
	Wave        core.Color
}

// DefaultPalette returns the stock sunset colors.
func DefaultPalette() Palette {
	return Palette{
		DayZenith:   core.RoyalBlue,
		DayHorizon:  core.SkyBlue,
		DuskZenith:  core.RGB(40, 30, 90),
		DuskHorizon: core.RGB(255, 120, 60),
		SunHigh:     core.Orange,
		SunLow:      core.DeepRed,
		Water:       core.Ocean,
		Wave:        core.RGB(120, 170, 255),
	}
}

// Style holds layer geometry. Lengths are in surface pixels.
type Style struct {
	SkyFraction      float64 // Share of the surface height covered by the sky gradient
	SunRadius        float64
	WaveAmplitude    float64
	WaveFrequency    float64 // Radians per column
	WaveTick         float64 // Length of each ripple tick
	CurrentFrequency float64 // Radians per column
	CurrentDepth     float64 // Shade swing of the current, fraction of brightness
}

// DefaultStyle returns geometry tuned for a 768 pixel tall surface.
func DefaultStyle() Style {
	return Style{
		SkyFraction:      0.6,
		SunRadius:        48,
		WaveAmplitude:    10,
		WaveFrequency:    0.05,
		WaveTick:         10,
		CurrentFrequency: 0.01,
		CurrentDepth:     0.15,
	}
}

// Scale returns a copy with every length multiplied by f.
// Frequencies are per column and are divided by f so the same number of
// ripples spans the surface.
func (s Style) Scale(f float64) Style {
	if f <= 0 {
		return s
	}
	s.SunRadius *= f
	s.WaveAmplitude *= f
	s.WaveTick *= f
	s.WaveFrequency /= f
	s.CurrentFrequency /= f
	return s
}
