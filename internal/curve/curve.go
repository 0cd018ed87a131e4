package curve

import (
	"errors"
	"fmt"
	"math"
)

// ErrConfig marks invalid curve parameters caught at construction.
var ErrConfig = errors.New("invalid curve configuration")

// Curve maps normalized progress u to a value. Bounded curves clamp u to
// [0,1]; Spring is evaluated unclamped so overshoot survives until the
// terminal snap.
type Curve interface {
	Evaluate(u float64) float64
}

func clamp01(u float64) float64 {
	if u < 0 {
		return 0
	}
	if u > 1 {
		return 1
	}
	return u
}

type linear struct{}

func (linear) Evaluate(u float64) float64 { return clamp01(u) }

// Linear returns the identity curve.
func Linear() Curve { return linear{} }

type easeIn struct{}

func (easeIn) Evaluate(u float64) float64 {
	u = clamp01(u)
	return u * u * u
}

// EaseIn returns a cubic ease-in curve (slow start).
func EaseIn() Curve { return easeIn{} }

type easeOut struct{}

func (easeOut) Evaluate(u float64) float64 {
	u = clamp01(u)
	inv := 1 - u
	return 1 - inv*inv*inv
}

// EaseOut returns a cubic ease-out curve (slow finish).
func EaseOut() Curve { return easeOut{} }

type easeInOut struct{}

func (easeInOut) Evaluate(u float64) float64 {
	u = clamp01(u)
	if u < 0.5 {
		return 4 * u * u * u
	}
	inv := -2*u + 2
	return 1 - inv*inv*inv/2
}

// EaseInOut returns a cubic ease-in-out curve.
func EaseInOut() Curve { return easeInOut{} }

type bounce struct{}

// Piecewise parabolic approximation of a damped bounce.
func (bounce) Evaluate(u float64) float64 {
	u = clamp01(u)
	const n1 = 7.5625
	const d1 = 2.75
	switch {
	case u < 1/d1:
		return n1 * u * u
	case u < 2/d1:
		u -= 1.5 / d1
		return n1*u*u + 0.75
	case u < 2.5/d1:
		u -= 2.25 / d1
		return n1*u*u + 0.9375
	default:
		u -= 2.625 / d1
		return n1*u*u + 0.984375
	}
}

// Bounce returns a damped bounce curve ending exactly at 1.
func Bounce() Curve { return bounce{} }

// Spring is a damped harmonic oscillator settling from 0 to 1. The value may
// overshoot past 1 while u < 1; at u >= 1 it snaps to exactly 1 so the
// animation lands on its target value with no residual offset.
type Spring struct {
	Stiffness float64
	Damping   float64
}

// NewSpring validates the oscillator parameters. Both must be positive.
func NewSpring(stiffness, damping float64) (*Spring, error) {
	if stiffness <= 0 || damping <= 0 {
		return nil, fmt.Errorf("curve: spring stiffness and damping must be positive (got %g, %g): %w", stiffness, damping, ErrConfig)
	}
	return &Spring{Stiffness: stiffness, Damping: damping}, nil
}

func (s *Spring) Evaluate(u float64) float64 {
	if u <= 0 {
		return 0
	}
	if u >= 1 {
		return 1
	}
	// Unit mass: omega0 = sqrt(k), zeta = c / (2*sqrt(k)).
	omega0 := math.Sqrt(s.Stiffness)
	zeta := s.Damping / (2 * omega0)
	if zeta < 1 {
		// Underdamped: decaying oscillation around the target.
		omegaD := omega0 * math.Sqrt(1-zeta*zeta)
		envelope := math.Exp(-zeta * omega0 * u)
		return 1 - envelope*(math.Cos(omegaD*u)+(zeta*omega0/omegaD)*math.Sin(omegaD*u))
	}
	// Critically damped (overdamped parameters collapse to the same shape).
	envelope := math.Exp(-omega0 * u)
	return 1 - envelope*(1+omega0*u)
}

// Point is a keyframe control point: a value pinned at normalized progress U.
type Point struct {
	U     float64
	Value float64
}

// Interp selects how a keyframe segment interpolates between its endpoints.
type Interp int

const (
	InterpLinear Interp = iota
	InterpEaseInOut
)

// Keyframe evaluates by locating the control points bracketing u. Unlike the
// easing curves, its output is an absolute value, not a normalized fraction.
type Keyframe struct {
	points []Point
	interp Interp
}

// NewKeyframe validates the control points: at least one, with strictly
// increasing u. Returns a configuration error otherwise.
func NewKeyframe(points []Point, interp Interp) (*Keyframe, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("curve: keyframe needs at least one control point: %w", ErrConfig)
	}
	for i := 1; i < len(points); i++ {
		if points[i].U <= points[i-1].U {
			return nil, fmt.Errorf("curve: keyframe control points must have strictly increasing u (point %d: %g after %g): %w",
				i, points[i].U, points[i-1].U, ErrConfig)
		}
	}
	cp := make([]Point, len(points))
	copy(cp, points)
	return &Keyframe{points: cp, interp: interp}, nil
}

func (k *Keyframe) Evaluate(u float64) float64 {
	pts := k.points
	if u <= pts[0].U {
		return pts[0].Value
	}
	if u >= pts[len(pts)-1].U {
		return pts[len(pts)-1].Value
	}
	for i := 0; i < len(pts)-1; i++ {
		if u >= pts[i].U && u < pts[i+1].U {
			span := pts[i+1].U - pts[i].U
			frac := (u - pts[i].U) / span
			if k.interp == InterpEaseInOut {
				frac = EaseInOut().Evaluate(frac)
			}
			return pts[i].Value + (pts[i+1].Value-pts[i].Value)*frac
		}
	}
	return pts[len(pts)-1].Value
}
