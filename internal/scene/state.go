// Package scene holds the mutable animation state of the sunset: the sun's
// descent, the wave and current phases, and the brightness derived from them.
//
// A State has exactly two writers: the present loop calls Advance once per
// frame and the input mapper calls ApplySpeedDelta. Renderers only read.
package scene

import (
	"math"

	"github.com/vovakirdan/tui-sunset/internal/core"
)

// FullCycle is the period that wave and current phases wrap at.
const FullCycle = 2 * math.Pi

// ReferenceHeight is the surface height DefaultParams is tuned for.
const ReferenceHeight = 768

// Params are the tunables a State is created with. Pixel quantities are in
// surface pixels; per-frame quantities are multiplied by dt in Advance.
type Params struct {
	SunStart        float64 // Initial (and wrap target) sun center, pixels from top
	Speed           float64 // Initial sun speed, pixels per frame
	SpeedStep       float64 // Speed change per SpeedUp/SpeedDown
	MinSpeed        float64 // Lower speed bound, must be > 0
	MaxSpeed        float64 // Upper speed bound
	WaveStep        float64 // Ripple phase advance per frame, radians
	CurrentStep     float64 // Ocean current phase advance per frame, radians
	BrightnessFloor float64 // Dimmest brightness at dusk, in (0, 1]
}

// DefaultParams returns the parameters of the classic 1024x768 animation.
func DefaultParams() Params {
	return Params{
		SunStart:        40,
		Speed:           0.5,
		SpeedStep:       0.1,
		MinSpeed:        0.05,
		MaxSpeed:        5.0,
		WaveStep:        0.1,
		CurrentStep:     0.02,
		BrightnessFloor: 0.3,
	}
}

// Scale returns a copy with every pixel quantity multiplied by f.
// Phases and brightness are resolution independent and stay unchanged.
func (p Params) Scale(f float64) Params {
	if f <= 0 {
		return p
	}
	p.SunStart *= f
	p.Speed *= f
	p.SpeedStep *= f
	p.MinSpeed *= f
	p.MaxSpeed *= f
	return p
}

// State is the per-frame animation state.
type State struct {
	params     Params
	width      int
	height     int
	sunY       float64
	speed      float64
	wavePhase  float64
	oceanPhase float64
	cycles     int
}

// NewState creates the animation state for a surface of the given size.
// A SunStart at or below the wrap line is moved to the top so the descent
// cycle always has room to run.
func NewState(p Params, width, height int) *State {
	if p.MinSpeed <= 0 {
		p.MinSpeed = DefaultParams().MinSpeed
	}
	if p.MaxSpeed < p.MinSpeed {
		p.MaxSpeed = p.MinSpeed
	}
	p.BrightnessFloor = core.ClampF(p.BrightnessFloor, 0, 1)

	s := &State{
		params: p,
		width:  width,
		height: height,
	}
	if p.SunStart < 0 || p.SunStart >= s.wrapLine() {
		s.params.SunStart = 0
	}
	s.sunY = s.params.SunStart
	s.speed = core.ClampF(p.Speed, p.MinSpeed, p.MaxSpeed)
	return s
}

// Width returns the surface width the state was created for.
func (s *State) Width() int {
	return s.width
}

// Height returns the surface height the state was created for.
func (s *State) Height() int {
	return s.height
}

// Params returns the effective parameters.
func (s *State) Params() Params {
	return s.params
}

// SunY returns the sun's vertical center in pixels from the top.
func (s *State) SunY() float64 {
	return s.sunY
}

// Speed returns the current sun speed in pixels per frame.
func (s *State) Speed() float64 {
	return s.speed
}

// WavePhase returns the ripple phase in [0, FullCycle).
func (s *State) WavePhase() float64 {
	return s.wavePhase
}

// OceanPhase returns the current phase in [0, FullCycle).
func (s *State) OceanPhase() float64 {
	return s.oceanPhase
}

// Cycles returns how many times the sun has wrapped back to the top.
func (s *State) Cycles() int {
	return s.cycles
}

// Horizon returns the row where the sky meets the ocean.
func (s *State) Horizon() float64 {
	return float64(s.height) / 2
}

// wrapLine is the sun position past which the cycle restarts.
func (s *State) wrapLine() float64 {
	return float64(s.height) * 2 / 3
}

// Advance moves the animation forward by dt frames.
func (s *State) Advance(dt float64) {
	if dt <= 0 {
		return
	}

	s.sunY += s.speed * dt
	if s.sunY > s.wrapLine() {
		s.sunY = s.params.SunStart
		s.cycles++
	}

	s.wavePhase = wrapPhase(s.wavePhase + s.params.WaveStep*dt)
	s.oceanPhase = wrapPhase(s.oceanPhase + s.params.CurrentStep*dt)
}

// wrapPhase folds p into [0, FullCycle).
func wrapPhase(p float64) float64 {
	p = math.Mod(p, FullCycle)
	if p < 0 {
		p += FullCycle
	}
	return p
}

// Brightness returns the light level for the current sun position.
func (s *State) Brightness() float64 {
	return s.BrightnessFor(s.sunY)
}

// BrightnessFor maps a sun position to a brightness multiplier: 1 while the
// sun is in the upper half, fading linearly to the floor at the top of the
// lower third.
func (s *State) BrightnessFor(pos float64) float64 {
	mid := s.Horizon()
	end := s.wrapLine()
	floor := s.params.BrightnessFloor

	switch {
	case pos <= mid:
		return 1
	case pos >= end:
		return floor
	}
	t := (pos - mid) / (end - mid)
	return 1 - (1-floor)*t
}

// DuskProgress is 0 while the sun is in the upper third and reaches 1 at
// the wrap line. Sky layers use it to blend day and dusk palettes.
func (s *State) DuskProgress() float64 {
	start := float64(s.height) / 3
	end := s.wrapLine()
	if end <= start {
		return 0
	}
	return core.ClampF((s.sunY-start)/(end-start), 0, 1)
}

// SunsetProgress is 0 until the sun reaches the horizon and 1 at the wrap
// line. It keys the sun's own color.
func (s *State) SunsetProgress() float64 {
	mid := s.Horizon()
	end := s.wrapLine()
	if end <= mid {
		return 0
	}
	return core.ClampF((s.sunY-mid)/(end-mid), 0, 1)
}

// ApplySpeedDelta steps the speed up (sign > 0) or down (sign < 0) and
// returns the new speed. The result always stays in [MinSpeed, MaxSpeed].
func (s *State) ApplySpeedDelta(sign int) float64 {
	switch {
	case sign > 0:
		s.speed += s.params.SpeedStep
	case sign < 0:
		s.speed -= s.params.SpeedStep
	}
	s.speed = core.ClampF(s.speed, s.params.MinSpeed, s.params.MaxSpeed)
	return s.speed
}
