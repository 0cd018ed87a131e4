package anim

import "github.com/ivlev/vidcomp/internal/curve"

// Presets cover the common entrance and attention animations so callers do
// not assemble curve/range pairs by hand. Each returns a regular Animation;
// attaching and repeat policies stay the element's business.

// FadeIn ramps alpha from fully transparent to fully opaque.
func FadeIn(duration, delay float64) (*Animation, error) {
	return New(curve.EaseOut(), 0, 255, duration, delay)
}

// FadeOut ramps alpha from fully opaque to fully transparent.
func FadeOut(duration, delay float64) (*Animation, error) {
	return New(curve.EaseIn(), 255, 0, duration, delay)
}

// SlideInFromLeft moves x from distance pixels left of the resting position
// onto it.
func SlideInFromLeft(to, distance, duration, delay float64) (*Animation, error) {
	return New(curve.EaseOut(), to-distance, to, duration, delay)
}

// SlideInFromRight moves x from distance pixels right of the resting
// position onto it.
func SlideInFromRight(to, distance, duration, delay float64) (*Animation, error) {
	return New(curve.EaseOut(), to+distance, to, duration, delay)
}

// ScaleUp grows scale between the given bounds.
func ScaleUp(from, to, duration, delay float64) (*Animation, error) {
	return New(curve.EaseInOut(), from, to, duration, delay)
}

// BounceIn pops scale from zero to full size with a bouncing settle.
func BounceIn(duration, delay float64) (*Animation, error) {
	return New(curve.Bounce(), 0, 1, duration, delay)
}

// SpringIn pops scale from zero to full size with a springy overshoot.
func SpringIn(duration, delay float64) (*Animation, error) {
	c, err := curve.NewSpring(170, 26)
	if err != nil {
		return nil, err
	}
	return New(c, 0, 1, duration, delay)
}

// Pulse is one half of a scale pulse, meant to be attached with a Reverse
// repeat so it swings between the two bounds.
func Pulse(from, to, duration float64) (*Animation, error) {
	return New(curve.EaseOut(), from, to, duration, 0)
}

// Breathing is a slower, smoother sibling of Pulse.
func Breathing(from, to, duration float64) (*Animation, error) {
	return New(curve.EaseInOut(), from, to, duration, 0)
}
