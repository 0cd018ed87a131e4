package anim

import (
	"fmt"
	"math"

	"github.com/ivlev/vidcomp/internal/curve"
)

// Mode selects how consecutive repetitions relate to each other.
type Mode int

const (
	// Restart replays the base animation identically each period.
	Restart Mode = iota
	// Reverse swaps the value range on odd repetitions (ping-pong).
	Reverse
	// Continue offsets each repetition's range cumulatively, so e.g. a
	// 0..360 rotation keeps turning past 360.
	Continue
)

func (m Mode) String() string {
	switch m {
	case Restart:
		return "restart"
	case Reverse:
		return "reverse"
	case Continue:
		return "continue"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a document-level mode name to its enum value.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "", "restart":
		return Restart, nil
	case "reverse":
		return Reverse, nil
	case "continue":
		return Continue, nil
	}
	return 0, fmt.Errorf("anim: unknown repeat mode %q", name)
}

// Infinite is the repeat count meaning "repeat forever".
const Infinite = -1

// Repeating wraps a base animation with a repetition policy. One period is
// base.Duration + Delay; during the delay tail of each period the value of
// the just-finished repetition holds.
//
// In until-scene-end mode the repeat count is ignored and the upper time
// bound is the owning scene's duration, which is unknown until the element
// has been placed in a scene. Until then the wrapper reports itself inactive.
type Repeating struct {
	Base  *Animation
	Count int // Infinite, or N >= 0 finite repetitions
	Delay float64
	Mode  Mode

	untilSceneEnd bool
	sceneDuration float64
	sceneResolved bool
}

// NewRepeating builds a finite or infinite repeat wrapper.
func NewRepeating(base *Animation, count int, delay float64, mode Mode) (*Repeating, error) {
	if base == nil {
		return nil, fmt.Errorf("anim: nil base animation: %w", ErrConfig)
	}
	if count < Infinite {
		return nil, fmt.Errorf("anim: repeat count must be -1 (infinite) or >= 0, got %d: %w", count, ErrConfig)
	}
	if delay < 0 {
		return nil, fmt.Errorf("anim: repeat delay must be non-negative, got %g: %w", delay, ErrConfig)
	}
	return &Repeating{Base: base, Count: count, Delay: delay, Mode: mode}, nil
}

// NewUntilSceneEnd builds a wrapper that repeats until its scene's resolved
// duration. The bound is filled in later via ResolveSceneDuration.
func NewUntilSceneEnd(base *Animation, delay float64, mode Mode) (*Repeating, error) {
	r, err := NewRepeating(base, Infinite, delay, mode)
	if err != nil {
		return nil, err
	}
	r.untilSceneEnd = true
	return r, nil
}

// UntilSceneEnd reports whether the upper bound follows the scene duration.
func (r *Repeating) UntilSceneEnd() bool { return r.untilSceneEnd }

// ResolveSceneDuration fills in (or updates) the scene-duration bound. The
// owning scene calls this after every add, so the final bound is correct
// regardless of element insertion order.
func (r *Repeating) ResolveSceneDuration(d float64) {
	if !r.untilSceneEnd {
		return
	}
	r.sceneDuration = d
	r.sceneResolved = true
}

func (r *Repeating) SetStart(t float64) { r.Base.SetStart(t) }

func (r *Repeating) period() float64 { return r.Base.Duration + r.Delay }

// span returns the active span measured from the end of the initial delay,
// or +Inf when unbounded.
func (r *Repeating) span() float64 {
	if r.untilSceneEnd {
		s := r.sceneDuration - r.Base.Delay
		if s < 0 {
			s = 0
		}
		return s
	}
	if r.Count == Infinite {
		return math.Inf(1)
	}
	return float64(r.Count) * r.period()
}

func (r *Repeating) StartedBy(t float64) bool {
	if r.untilSceneEnd && !r.sceneResolved {
		return false
	}
	if !r.untilSceneEnd && r.Count == 0 {
		return false
	}
	return t >= r.Base.start+r.Base.Delay
}

func (r *Repeating) ActiveAt(t float64) bool {
	if !r.StartedBy(t) {
		return false
	}
	return t < r.Base.start+r.Base.Delay+r.span()
}

// ValueAt samples the repetition at t. Beyond the active span the value at
// the bound holds, which for a bound landing mid-repetition is that partial
// repetition's value, and for a finite count is the last repetition's end.
func (r *Repeating) ValueAt(t float64) float64 {
	rel := t - r.Base.start - r.Base.Delay
	if rel < 0 {
		rel = 0
	}
	if span := r.span(); rel > span {
		rel = span
	}

	period := r.period()
	k := int(math.Floor(rel / period))
	if r.Count != Infinite && !r.untilSceneEnd && k >= r.Count {
		k = r.Count - 1
		return r.repetition(k, 1)
	}
	within := rel - float64(k)*period
	u := within / r.Base.Duration
	if u > 1 {
		u = 1 // repeat-delay tail: hold the repetition's terminal value
	}
	return r.repetition(k, u)
}

func (r *Repeating) repetition(k int, u float64) float64 {
	// Keyframe curves carry absolute values, so the From/To swap and offset
	// below would be no-ops on them. Reverse instead plays the curve
	// backwards on odd repetitions, and Continue shifts by the curve's
	// end-to-end stride.
	if kf, ok := r.Base.Curve.(*curve.Keyframe); ok {
		switch r.Mode {
		case Reverse:
			if k%2 == 1 {
				u = 1 - u
			}
			return kf.Evaluate(u)
		case Continue:
			stride := kf.Evaluate(1) - kf.Evaluate(0)
			return kf.Evaluate(u) + float64(k)*stride
		default:
			return kf.Evaluate(u)
		}
	}

	switch r.Mode {
	case Reverse:
		if k%2 == 1 {
			return r.Base.sample(u, r.Base.To, r.Base.From)
		}
		return r.Base.sample(u, r.Base.From, r.Base.To)
	case Continue:
		offset := float64(k) * (r.Base.To - r.Base.From)
		return r.Base.sample(u, r.Base.From+offset, r.Base.To+offset)
	default:
		return r.Base.sample(u, r.Base.From, r.Base.To)
	}
}
