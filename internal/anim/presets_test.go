package anim

import (
	"errors"
	"math"
	"testing"
)

func mustPreset(t *testing.T) func(*Animation, error) *Animation {
	return func(a *Animation, err error) *Animation {
		t.Helper()
		if err != nil {
			t.Fatalf("preset: %v", err)
		}
		return a
	}
}

func TestPresetEndpoints(t *testing.T) {
	must := mustPreset(t)
	tests := []struct {
		name       string
		anim       *Animation
		start, end float64
	}{
		{"fade_in", must(FadeIn(1, 0)), 0, 255},
		{"fade_out", must(FadeOut(1, 0)), 255, 0},
		{"slide_in_left", must(SlideInFromLeft(500, 400, 1, 0)), 100, 500},
		{"slide_in_right", must(SlideInFromRight(500, 400, 1, 0)), 900, 500},
		{"scale_up", must(ScaleUp(0.5, 1, 1, 0)), 0.5, 1},
		{"bounce_in", must(BounceIn(1, 0)), 0, 1},
		{"spring_in", must(SpringIn(1, 0)), 0, 1},
		{"pulse", must(Pulse(1, 1.5, 1)), 1, 1.5},
		{"breathing", must(Breathing(1, 1.2, 1)), 1, 1.2},
	}

	for _, tt := range tests {
		tt.anim.SetStart(0)
		if got := tt.anim.ValueAt(0); math.Abs(got-tt.start) > 1e-9 {
			t.Errorf("%s: value at start = %g, want %g", tt.name, got, tt.start)
		}
		if got := tt.anim.ValueAt(1); math.Abs(got-tt.end) > 1e-9 {
			t.Errorf("%s: value at end = %g, want %g", tt.name, got, tt.end)
		}
	}
}

func TestPresetDelayShiftsWindow(t *testing.T) {
	a := mustPreset(t)(FadeIn(1.5, 0.5))
	a.SetStart(0)

	if a.StartedBy(0.4) {
		t.Error("started inside the delay")
	}
	if got := a.ValueAt(2.0); math.Abs(got-255) > 1e-9 {
		t.Errorf("value at window end = %g, want 255", got)
	}
}

func TestPresetsValidateDuration(t *testing.T) {
	if _, err := FadeIn(0, 0); !errors.Is(err, ErrConfig) {
		t.Errorf("expected ErrConfig for zero duration, got %v", err)
	}
	if _, err := Pulse(1, 1.5, -1); !errors.Is(err, ErrConfig) {
		t.Errorf("expected ErrConfig for negative duration, got %v", err)
	}
}
