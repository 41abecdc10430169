package scene

import (
	"math"
	"testing"
)

func TestNewStateDefaults(t *testing.T) {
	s := NewState(DefaultParams(), 1024, 768)

	if s.SunY() != 40 {
		t.Errorf("SunY() = %v, expected 40", s.SunY())
	}
	if s.Speed() != 0.5 {
		t.Errorf("Speed() = %v, expected 0.5", s.Speed())
	}
	if s.WavePhase() != 0 || s.OceanPhase() != 0 {
		t.Error("phases should start at zero")
	}
	if s.Brightness() != 1 {
		t.Errorf("Brightness() = %v, expected 1 with the sun near the top", s.Brightness())
	}
}

func TestNewStateStartBelowWrapLine(t *testing.T) {
	p := DefaultParams()
	p.SunStart = 40

	// 2/3 of 48 is 32, so a start of 40 would wrap on the first frame.
	s := NewState(p, 80, 48)
	if s.SunY() != 0 {
		t.Errorf("SunY() = %v, expected start to be moved to 0", s.SunY())
	}
}

func TestNewStateClampsSpeed(t *testing.T) {
	p := DefaultParams()
	p.Speed = 100
	s := NewState(p, 1024, 768)
	if s.Speed() != p.MaxSpeed {
		t.Errorf("Speed() = %v, expected clamp to %v", s.Speed(), p.MaxSpeed)
	}
}

func TestAdvanceWrapsSunScenario(t *testing.T) {
	const height = 768
	s := NewState(DefaultParams(), 1024, height)
	limit := float64(height) * 2 / 3

	for i := 0; i < 1000; i++ {
		s.Advance(1)
		if s.SunY() < 0 || s.SunY() > limit {
			t.Fatalf("frame %d: SunY() = %v outside [0, %v]", i, s.SunY(), limit)
		}
	}

	if s.Cycles() < 1 {
		t.Errorf("expected at least one wrap after 1000 frames, got %d", s.Cycles())
	}
}

func TestAdvanceWrapsToInitialValue(t *testing.T) {
	s := NewState(DefaultParams(), 1024, 768)
	start := s.SunY()

	wrapped := false
	for i := 0; i < 2000; i++ {
		before := s.Cycles()
		s.Advance(1)
		if s.Cycles() > before {
			if s.SunY() != start {
				t.Fatalf("after wrap SunY() = %v, expected %v", s.SunY(), start)
			}
			wrapped = true
			break
		}
	}
	if !wrapped {
		t.Fatal("sun never wrapped")
	}
}

func TestAdvancePhasesStayInCycle(t *testing.T) {
	p := DefaultParams()
	p.WaveStep = 0.7
	p.CurrentStep = 1.3
	s := NewState(p, 100, 100)

	for i := 0; i < 100000; i++ {
		s.Advance(1)
		if s.WavePhase() < 0 || s.WavePhase() >= FullCycle {
			t.Fatalf("frame %d: WavePhase() = %v out of range", i, s.WavePhase())
		}
		if s.OceanPhase() < 0 || s.OceanPhase() >= FullCycle {
			t.Fatalf("frame %d: OceanPhase() = %v out of range", i, s.OceanPhase())
		}
	}
}

func TestAdvanceScalesWithDt(t *testing.T) {
	a := NewState(DefaultParams(), 1024, 768)
	b := NewState(DefaultParams(), 1024, 768)

	a.Advance(2)
	b.Advance(1)
	b.Advance(1)

	if math.Abs(a.SunY()-b.SunY()) > 1e-9 {
		t.Errorf("Advance(2) = %v, two Advance(1) = %v", a.SunY(), b.SunY())
	}
	if math.Abs(a.WavePhase()-b.WavePhase()) > 1e-9 {
		t.Errorf("wave phase mismatch: %v vs %v", a.WavePhase(), b.WavePhase())
	}
}

func TestAdvanceIgnoresNonPositiveDt(t *testing.T) {
	s := NewState(DefaultParams(), 1024, 768)
	s.Advance(0)
	s.Advance(-5)
	if s.SunY() != 40 || s.WavePhase() != 0 {
		t.Error("non-positive dt should not move the scene")
	}
}

func TestBrightnessForMonotonicAndFloored(t *testing.T) {
	const height = 768
	p := DefaultParams()
	s := NewState(p, 1024, height)

	prev := math.Inf(1)
	for pos := 0.0; pos <= height; pos += 0.5 {
		b := s.BrightnessFor(pos)
		if b < p.BrightnessFloor {
			t.Fatalf("BrightnessFor(%v) = %v below floor %v", pos, b, p.BrightnessFloor)
		}
		if b > 1 {
			t.Fatalf("BrightnessFor(%v) = %v above 1", pos, b)
		}
		if pos >= height/2 && b > prev {
			t.Fatalf("BrightnessFor(%v) = %v increased from %v", pos, b, prev)
		}
		prev = b
	}
}

func TestBrightnessForKeyPoints(t *testing.T) {
	s := NewState(DefaultParams(), 1024, 768)

	tests := []struct {
		pos      float64
		expected float64
	}{
		{0, 1},
		{384, 1},    // midline
		{448, 0.65}, // halfway between 384 and 512
		{512, 0.3},  // wrap line
		{700, 0.3},  // below wrap line
	}

	for _, tc := range tests {
		got := s.BrightnessFor(tc.pos)
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("BrightnessFor(%v) = %v, expected %v", tc.pos, got, tc.expected)
		}
	}
}

func TestApplySpeedDeltaBounds(t *testing.T) {
	p := DefaultParams()
	s := NewState(p, 1024, 768)

	for i := 0; i < 500; i++ {
		got := s.ApplySpeedDelta(-1)
		if got < p.MinSpeed || got > p.MaxSpeed {
			t.Fatalf("speed %v out of bounds after %d decreases", got, i+1)
		}
	}
	if s.Speed() != p.MinSpeed {
		t.Errorf("Speed() = %v, expected minimum %v", s.Speed(), p.MinSpeed)
	}

	for i := 0; i < 500; i++ {
		got := s.ApplySpeedDelta(1)
		if got < p.MinSpeed || got > p.MaxSpeed {
			t.Fatalf("speed %v out of bounds after %d increases", got, i+1)
		}
	}
	if s.Speed() != p.MaxSpeed {
		t.Errorf("Speed() = %v, expected maximum %v", s.Speed(), p.MaxSpeed)
	}
}

func TestApplySpeedDeltaZeroSign(t *testing.T) {
	s := NewState(DefaultParams(), 1024, 768)
	if got := s.ApplySpeedDelta(0); got != 0.5 {
		t.Errorf("ApplySpeedDelta(0) = %v, expected unchanged 0.5", got)
	}
}

func TestDuskAndSunsetProgress(t *testing.T) {
	p := DefaultParams()
	p.SunStart = 0
	p.Speed = 1
	s := NewState(p, 100, 300)

	// Upper third: no dusk yet.
	for s.SunY() < 100 {
		if s.DuskProgress() != 0 {
			t.Fatalf("DuskProgress() = %v at %v, expected 0", s.DuskProgress(), s.SunY())
		}
		if s.SunsetProgress() != 0 {
			t.Fatalf("SunsetProgress() = %v at %v, expected 0", s.SunsetProgress(), s.SunY())
		}
		s.Advance(1)
	}

	// Advance to just before the wrap line (200).
	for s.SunY() < 199 {
		s.Advance(1)
	}
	if s.DuskProgress() < 0.98 {
		t.Errorf("DuskProgress() = %v near the wrap line", s.DuskProgress())
	}
	if s.SunsetProgress() < 0.95 {
		t.Errorf("SunsetProgress() = %v near the wrap line", s.SunsetProgress())
	}
}

func TestParamsScale(t *testing.T) {
	p := DefaultParams().Scale(0.5)
	if p.SunStart != 20 || p.Speed != 0.25 || p.MinSpeed != 0.025 {
		t.Errorf("Scale(0.5) = %+v", p)
	}
	if p.WaveStep != DefaultParams().WaveStep {
		t.Error("Scale should not touch phase steps")
	}
	if got := DefaultParams().Scale(0); got != DefaultParams() {
		t.Error("Scale(0) should be a no-op")
	}
}
