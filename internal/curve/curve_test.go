package curve

import (
	"errors"
	"math"
	"testing"
)

func TestEasingEndpoints(t *testing.T) {
	curves := map[string]Curve{
		"linear":      Linear(),
		"ease_in":     EaseIn(),
		"ease_out":    EaseOut(),
		"ease_in_out": EaseInOut(),
		"bounce":      Bounce(),
	}

	for name, c := range curves {
		if v := c.Evaluate(0); math.Abs(v) > 1e-9 {
			t.Errorf("%s: Evaluate(0) = %g, want 0", name, v)
		}
		if v := c.Evaluate(1); math.Abs(v-1) > 1e-9 {
			t.Errorf("%s: Evaluate(1) = %g, want 1", name, v)
		}
		// Out-of-range u clamps, never extrapolates.
		if v := c.Evaluate(-0.5); math.Abs(v) > 1e-9 {
			t.Errorf("%s: Evaluate(-0.5) = %g, want 0 (clamped)", name, v)
		}
		if v := c.Evaluate(1.5); math.Abs(v-1) > 1e-9 {
			t.Errorf("%s: Evaluate(1.5) = %g, want 1 (clamped)", name, v)
		}
	}
}

func TestEaseInOutMidpoint(t *testing.T) {
	if v := EaseInOut().Evaluate(0.5); math.Abs(v-0.5) > 1e-9 {
		t.Errorf("ease_in_out midpoint = %g, want 0.5", v)
	}
}

func TestSpringSnapsAtOne(t *testing.T) {
	s, err := NewSpring(120, 8)
	if err != nil {
		t.Fatalf("NewSpring: %v", err)
	}
	if v := s.Evaluate(1); v != 1 {
		t.Errorf("spring at u=1 = %g, want exactly 1", v)
	}
	if v := s.Evaluate(2); v != 1 {
		t.Errorf("spring at u=2 = %g, want exactly 1", v)
	}
}

func TestSpringOvershoots(t *testing.T) {
	// Lightly damped spring must cross 1 before settling.
	s, err := NewSpring(300, 4)
	if err != nil {
		t.Fatalf("NewSpring: %v", err)
	}
	overshot := false
	for u := 0.01; u < 1.0; u += 0.01 {
		if s.Evaluate(u) > 1.0 {
			overshot = true
			break
		}
	}
	if !overshot {
		t.Error("underdamped spring never overshot 1.0")
	}
}

func TestSpringBadParams(t *testing.T) {
	if _, err := NewSpring(0, 5); !errors.Is(err, ErrConfig) {
		t.Errorf("expected ErrConfig for zero stiffness, got %v", err)
	}
	if _, err := NewSpring(100, -1); err == nil {
		t.Error("expected error for negative damping")
	}
}

func TestKeyframeEvaluate(t *testing.T) {
	k, err := NewKeyframe([]Point{
		{U: 0.0, Value: 100},
		{U: 0.5, Value: 300},
		{U: 1.0, Value: 200},
	}, InterpLinear)
	if err != nil {
		t.Fatalf("NewKeyframe: %v", err)
	}

	tests := []struct {
		u    float64
		want float64
	}{
		{-1.0, 100}, // before first key: hold
		{0.0, 100},
		{0.25, 200}, // midpoint of first segment
		{0.5, 300},
		{0.75, 250}, // midpoint of second segment
		{1.0, 200},
		{2.0, 200}, // after last key: hold
	}
	for _, tt := range tests {
		if got := k.Evaluate(tt.u); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Evaluate(%g) = %g, want %g", tt.u, got, tt.want)
		}
	}
}

func TestKeyframeEasedSegments(t *testing.T) {
	k, err := NewKeyframe([]Point{{U: 0, Value: 0}, {U: 1, Value: 100}}, InterpEaseInOut)
	if err != nil {
		t.Fatalf("NewKeyframe: %v", err)
	}
	// Eased segment still pins the endpoints.
	if got := k.Evaluate(0); got != 0 {
		t.Errorf("Evaluate(0) = %g, want 0", got)
	}
	if got := k.Evaluate(1); got != 100 {
		t.Errorf("Evaluate(1) = %g, want 100", got)
	}
	// Quarter progress through an ease-in-out is below linear.
	if got := k.Evaluate(0.25); got >= 25 {
		t.Errorf("eased Evaluate(0.25) = %g, want < 25", got)
	}
}

func TestKeyframeValidation(t *testing.T) {
	if _, err := NewKeyframe(nil, InterpLinear); err == nil {
		t.Error("expected error for empty control points")
	}
	if _, err := NewKeyframe([]Point{{U: 0.5, Value: 1}, {U: 0.5, Value: 2}}, InterpLinear); err == nil {
		t.Error("expected error for non-increasing u")
	}
	if _, err := NewKeyframe([]Point{{U: 0.8, Value: 1}, {U: 0.2, Value: 2}}, InterpLinear); err == nil {
		t.Error("expected error for decreasing u")
	}
}
