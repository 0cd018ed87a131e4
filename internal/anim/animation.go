// Package anim converts absolute timeline time into animated property values.
// An Animation binds a curve to a concrete time window; Repeating wraps one
// with a repetition policy; Manager resolves the effective value of each
// property of an element at a given time.
package anim

import (
	"errors"
	"fmt"

	"github.com/ivlev/vidcomp/internal/curve"
)

// ErrConfig marks invalid animation parameters caught at construction.
var ErrConfig = errors.New("invalid animation configuration")

// Sampler is the evaluation contract shared by Animation and Repeating.
// StartedBy reports whether the sampler has begun contributing at or before t
// (a finished sampler still holds its terminal value); ActiveAt reports
// whether t falls inside the live window.
type Sampler interface {
	SetStart(t float64)
	StartedBy(t float64) bool
	ActiveAt(t float64) bool
	ValueAt(t float64) float64
}

// Animation binds a curve to a (start, delay, duration) window and a value
// range. Immutable after construction except for the start anchor, which the
// owning element stamps when the animation is attached.
type Animation struct {
	Curve    curve.Curve
	From, To float64
	Duration float64
	Delay    float64

	start float64
}

// New validates the window: duration must be positive, delay non-negative.
func New(c curve.Curve, from, to, duration, delay float64) (*Animation, error) {
	if c == nil {
		return nil, fmt.Errorf("anim: nil curve: %w", ErrConfig)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("anim: duration must be positive, got %g: %w", duration, ErrConfig)
	}
	if delay < 0 {
		return nil, fmt.Errorf("anim: delay must be non-negative, got %g: %w", delay, ErrConfig)
	}
	return &Animation{Curve: c, From: from, To: to, Duration: duration, Delay: delay}, nil
}

// SetStart anchors the window. Attaching captures the element's start time at
// that moment; later element moves do not retroactively shift the window.
func (a *Animation) SetStart(t float64) { a.start = t }

// Start returns the anchored start time.
func (a *Animation) Start() float64 { return a.start }

// Progress maps t to normalized progress, clamped to [0,1] outside the window.
func (a *Animation) Progress(t float64) float64 {
	u := (t - a.start - a.Delay) / a.Duration
	if u < 0 {
		return 0
	}
	if u > 1 {
		return 1
	}
	return u
}

func (a *Animation) StartedBy(t float64) bool {
	return t >= a.start+a.Delay
}

func (a *Animation) ActiveAt(t float64) bool {
	return t >= a.start+a.Delay && t < a.start+a.Delay+a.Duration
}

// ValueAt samples the animation at t. Before the window it is the caller's
// job to skip the sampler (StartedBy is false); at and after the window end
// the terminal value holds.
func (a *Animation) ValueAt(t float64) float64 {
	return a.sample(a.Progress(t), a.From, a.To)
}

// sample evaluates the curve at u against an explicit value range. Repeating
// uses it to swap or offset the range per repetition. Keyframe curves carry
// absolute values, so the range is ignored for them.
func (a *Animation) sample(u, from, to float64) float64 {
	v := a.Curve.Evaluate(u)
	if _, ok := a.Curve.(*curve.Keyframe); ok {
		return v
	}
	return from + (to-from)*v
}
