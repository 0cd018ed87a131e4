package element

import "github.com/ivlev/vidcomp/internal/anim"

// Per-property attachers for the common cases, so callers write
// el.AnimateFade(anim.FadeIn(...)) instead of naming the property enum.

// AnimateFade attaches an alpha animation.
func (e *Element) AnimateFade(a *anim.Animation) *Element {
	return e.Animate(anim.Alpha, a)
}

// AnimateScale attaches a scale animation.
func (e *Element) AnimateScale(a *anim.Animation) *Element {
	return e.Animate(anim.Scale, a)
}

// AnimateSlideInFromLeft slides the element in from distance pixels left of
// its current x position.
func (e *Element) AnimateSlideInFromLeft(distance, duration, delay float64) error {
	a, err := anim.SlideInFromLeft(e.x, distance, duration, delay)
	if err != nil {
		return err
	}
	e.Animate(anim.X, a)
	return nil
}

// AnimateSlideInFromRight slides the element in from distance pixels right
// of its current x position.
func (e *Element) AnimateSlideInFromRight(distance, duration, delay float64) error {
	a, err := anim.SlideInFromRight(e.x, distance, duration, delay)
	if err != nil {
		return err
	}
	e.Animate(anim.X, a)
	return nil
}

// AnimatePulseUntilEnd pulses the scale between the two bounds for the rest
// of the scene.
func (e *Element) AnimatePulseUntilEnd(from, to, duration float64) error {
	a, err := anim.Pulse(from, to, duration)
	if err != nil {
		return err
	}
	return e.AnimateUntilSceneEnd(anim.Scale, a, 0, anim.Reverse)
}

// AnimateBreathingUntilEnd is the smoother sibling of AnimatePulseUntilEnd.
func (e *Element) AnimateBreathingUntilEnd(from, to, duration float64) error {
	a, err := anim.Breathing(from, to, duration)
	if err != nil {
		return err
	}
	return e.AnimateUntilSceneEnd(anim.Scale, a, 0, anim.Reverse)
}
