package render

import (
	"math"

	"github.com/vovakirdan/tui-sunset/internal/core"
	"github.com/vovakirdan/tui-sunset/internal/scene"
)

// Sky paints a vertical gradient over the top Fraction of the surface.
// The day gradient blends into the dusk gradient as the sun descends, and
// the result is dimmed by the scene brightness.
type Sky struct {
	Palette  Palette
	Fraction float64
}

// Name implements Layer.
func (s *Sky) Name() string { return "sky" }

// Draw implements Layer.
func (s *Sky) Draw(dst *core.Surface, st *scene.State) {
	frac := s.Fraction
	if frac <= 0 {
		frac = DefaultStyle().SkyFraction
	}
	skyHeight := int(float64(dst.Height()) * frac)
	if skyHeight <= 0 {
		return
	}

	dusk := st.DuskProgress()
	brightness := st.Brightness()

	for row := 0; row < skyHeight; row++ {
		t := float64(row) / float64(skyHeight)
		day := core.Interpolate(s.Palette.DayZenith, s.Palette.DayHorizon, t)
		evening := core.Interpolate(s.Palette.DuskZenith, s.Palette.DuskHorizon, t)
		c := core.Interpolate(day, evening, dusk)
		dst.HLine(0, row, dst.Width(), core.ScaleBrightness(c, brightness))
	}
}

// Sun paints a disc centered horizontally at the scene's sun position.
// Its color runs from SunHigh to SunLow as the sun sinks below the horizon
// and ignores scene brightness.
type Sun struct {
	Palette Palette
	Radius  float64
}

// Name implements Layer.
func (s *Sun) Name() string { return "sun" }

// Draw implements Layer.
func (s *Sun) Draw(dst *core.Surface, st *scene.State) {
	radius := int(math.Round(s.Radius))
	if radius <= 0 {
		radius = core.Max(1, dst.Height()/16)
	}
	c := core.Interpolate(s.Palette.SunHigh, s.Palette.SunLow, st.SunsetProgress())
	dst.FillCircle(dst.Width()/2, int(st.SunY()), radius, c)
}

// Ocean fills the bottom half of the surface with water, shaded by a slow
// horizontal current, and overlays a rippling wave contour made of short
// vertical ticks.
type Ocean struct {
	Palette          Palette
	WaveAmplitude    float64
	WaveFrequency    float64
	WaveTick         float64
	CurrentFrequency float64
	CurrentDepth     float64
}

// Name implements Layer.
func (o *Ocean) Name() string { return "ocean" }

// Top returns the first ocean row for a surface of the given height.
func (o *Ocean) Top(height int) int {
	return height / 2
}

// Draw implements Layer.
func (o *Ocean) Draw(dst *core.Surface, st *scene.State) {
	top := o.Top(dst.Height())
	depth := dst.Height() - top
	if depth <= 0 {
		return
	}
	brightness := st.Brightness()

	// Water, one column at a time so the current can scroll sideways.
	for x := 0; x < dst.Width(); x++ {
		shade := 1 + o.CurrentDepth*math.Sin(float64(x)*o.CurrentFrequency+st.OceanPhase())
		dst.VLine(x, top, depth, core.ScaleBrightness(o.Palette.Water, brightness*shade))
	}

	// The contour sits one amplitude below the horizon so it never leaves
	// the water.
	tick := core.Max(1, int(math.Round(o.WaveTick)))
	waveColor := core.ScaleBrightness(o.Palette.Wave, brightness)
	for x := 0; x < dst.Width(); x++ {
		disp := o.WaveAmplitude * math.Sin(float64(x)*o.WaveFrequency+st.WavePhase())
		y := top + int(o.WaveAmplitude+disp)
		dst.VLine(x, y, tick, waveColor)
	}
}
