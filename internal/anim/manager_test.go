package anim

import (
	"math"
	"testing"

	"github.com/ivlev/vidcomp/internal/curve"
)

func TestValueWithoutAnimationsReturnsBase(t *testing.T) {
	m := NewManager()
	for _, tt := range []float64{-5, 0, 1.5, 1e6} {
		if got := m.Value(Scale, tt, 0.75); got != 0.75 {
			t.Errorf("Value(scale, %g) = %g, want base 0.75", tt, got)
		}
	}
	if m.Has(Scale) {
		t.Error("Has(scale) = true for empty manager")
	}
}

func TestPropertiesAreIndependent(t *testing.T) {
	m := NewManager()
	a := mustAnim(t, curve.Linear(), 0, 100, 1, 0)
	a.SetStart(0)
	m.Add(X, a)

	if got := m.Value(Y, 0.5, 42); got != 42 {
		t.Errorf("Value(y) = %g, want untouched base 42", got)
	}
	if got := m.Value(X, 0.5, 42); math.Abs(got-50) > 1e-9 {
		t.Errorf("Value(x) = %g, want 50", got)
	}
}

func TestLastActiveWins(t *testing.T) {
	m := NewManager()

	// One-shot fade-in over [0,2].
	fade := mustAnim(t, curve.Linear(), 0, 255, 2, 0)
	fade.SetStart(0)
	m.Add(Alpha, fade)

	// Independent pulse layered on top, starting at t=3.
	pulseBase := mustAnim(t, curve.Linear(), 255, 128, 1, 0)
	pulseBase.SetStart(3)
	pulse := mustRepeating(t, pulseBase, Infinite, 0, Reverse)
	m.Add(Alpha, pulse)

	// Before the pulse starts, the finished fade's terminal value holds.
	if got := m.Value(Alpha, 2.5, 0); math.Abs(got-255) > 1e-9 {
		t.Errorf("Value(alpha, 2.5) = %g, want 255 (fade terminal hold)", got)
	}
	// Once the pulse has started it supersedes the fade's hold.
	if got := m.Value(Alpha, 3.5, 0); math.Abs(got-191.5) > 1e-9 {
		t.Errorf("Value(alpha, 3.5) = %g, want 191.5 (pulse)", got)
	}
	// Before either has started, the base passes through.
	if got := m.Value(Alpha, -1, 7); got != 7 {
		t.Errorf("Value(alpha, -1) = %g, want base 7", got)
	}
}

func TestRebase(t *testing.T) {
	m := NewManager()
	a := mustAnim(t, curve.Linear(), 0, 10, 1, 0)
	a.SetStart(0)
	m.Add(X, a)

	m.Rebase(5)
	if a.Start() != 5 {
		t.Errorf("start after rebase = %g, want 5", a.Start())
	}
	if m.Value(X, 4, -1) != -1 {
		t.Error("rebased animation still anchored to old start")
	}
}

func TestResolveSceneDurationReachesWrappers(t *testing.T) {
	m := NewManager()
	base := mustAnim(t, curve.Linear(), 0, 1, 1, 0)
	r, err := NewUntilSceneEnd(base, 0, Restart)
	if err != nil {
		t.Fatalf("NewUntilSceneEnd: %v", err)
	}
	r.SetStart(0)
	m.Add(Scale, r)

	if got := m.Value(Scale, 0.5, 2); got != 2 {
		t.Errorf("unresolved wrapper leaked a value: %g", got)
	}
	m.ResolveSceneDuration(8)
	if got := m.Value(Scale, 0.5, 2); got != 0.5 {
		t.Errorf("Value after resolve = %g, want 0.5", got)
	}
}
