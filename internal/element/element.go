// Package element implements timed entities placed on a scene timeline: the
// shared timing/property base plus the text, image, QR, video and audio kinds.
package element

import (
	"github.com/ivlev/vidcomp/internal/anim"
)

// Regime describes how a loop-until-scene-end element fills its negotiated
// duration.
type Regime int

const (
	// RegimeNone: the element's natural and negotiated durations coincide.
	RegimeNone Regime = iota
	// RegimeLoop: the scene outlasts the media, so content wraps.
	RegimeLoop
	// RegimeCut: the scene is shorter than the media, so content truncates.
	RegimeCut
)

func (r Regime) String() string {
	switch r {
	case RegimeLoop:
		return "loop"
	case RegimeCut:
		return "cut"
	}
	return "none"
}

// DefaultMediaDuration is the fallback when a media file cannot be probed.
// The element stays usable for timing; rasterization of the missing asset is
// skipped at render time.
const DefaultMediaDuration = 5.0

// Props is the resolved set of animatable properties at one point in time.
type Props struct {
	X, Y         float64
	Alpha        float64 // 0..255
	Scale        float64
	Rotation     float64 // degrees
	CornerRadius float64
	Color        [3]float64 // 0..255 per channel
}

// Element is the timing and property base shared by all kinds. Base values
// are what animations interpolate around and what holds when no animation is
// attached to a property.
type Element struct {
	x, y             float64
	anchorX, anchorY float64 // 0..1 fraction of the drawn bitmap
	scale            float64
	rotation         float64
	alpha            float64
	color            [3]float64
	cornerRadius     float64

	start    float64
	duration float64

	originalDuration  float64
	mediaNatural      bool // originalDuration fixed by a media probe
	loopUntilSceneEnd bool
	regime            Regime

	anims *anim.Manager
}

func newElement() Element {
	return Element{
		scale:            1,
		alpha:            255,
		color:            [3]float64{255, 255, 255},
		duration:         1,
		originalDuration: 1,
		anims:            anim.NewManager(),
	}
}

// Position sets the base x/y of the element's anchor point.
func (e *Element) Position(x, y float64) *Element {
	e.x, e.y = x, y
	return e
}

// Anchor sets the anchor as a fraction of the drawn bitmap (0,0 top-left,
// 0.5,0.5 center).
func (e *Element) Anchor(ax, ay float64) *Element {
	e.anchorX, e.anchorY = ax, ay
	return e
}

func (e *Element) SetScale(s float64) *Element        { e.scale = s; return e }
func (e *Element) SetRotation(deg float64) *Element   { e.rotation = deg; return e }
func (e *Element) SetAlpha(a float64) *Element        { e.alpha = a; return e }
func (e *Element) SetCornerRadius(r float64) *Element { e.cornerRadius = r; return e }

func (e *Element) SetColor(r, g, b float64) *Element {
	e.color = [3]float64{r, g, b}
	return e
}

// StartAt sets the element's start time. Already-attached animations keep the
// anchor captured when they were attached; call RebaseAnimations to re-sync.
func (e *Element) StartAt(t float64) *Element {
	e.start = t
	return e
}

// SetDuration sets how long the element stays visible.
func (e *Element) SetDuration(d float64) *Element {
	e.duration = d
	if !e.mediaNatural {
		e.originalDuration = d
	}
	return e
}

func (e *Element) StartTime() float64        { return e.start }
func (e *Element) Duration() float64         { return e.duration }
func (e *Element) OriginalDuration() float64 { return e.originalDuration }
func (e *Element) Regime() Regime            { return e.regime }

// IsVisibleAt reports visibility over the half-open window
// [start, start+duration).
func (e *Element) IsVisibleAt(t float64) bool {
	return t >= e.start && t < e.start+e.duration
}

// SetLoopUntilSceneEnd binds the element's duration to its scene's final
// length instead of its own natural length.
func (e *Element) SetLoopUntilSceneEnd(on bool) *Element {
	e.loopUntilSceneEnd = on
	return e
}

func (e *Element) LoopsUntilSceneEnd() bool { return e.loopUntilSceneEnd }

// UpdateDurationForScene is the scene's phase-2 fixup: it stretches or
// truncates a loop-mode element to the scene's current duration and records
// which regime that puts the content in. Non-loop elements ignore it.
func (e *Element) UpdateDurationForScene(sceneDuration float64) {
	if !e.loopUntilSceneEnd {
		return
	}
	e.duration = sceneDuration
	switch {
	case sceneDuration > e.originalDuration:
		e.regime = RegimeLoop
	case sceneDuration < e.originalDuration:
		e.regime = RegimeCut
	default:
		e.regime = RegimeNone
	}
	e.anims.ResolveSceneDuration(sceneDuration)
}

// ResolveSceneDuration unblocks any until-scene-end animations on this
// element. The scene calls it on every element after every add.
func (e *Element) ResolveSceneDuration(d float64) {
	e.anims.ResolveSceneDuration(d)
}

// Animate attaches an animation to a property. The animation window anchors
// to the element's current start time.
func (e *Element) Animate(p anim.Property, a *anim.Animation) *Element {
	a.SetStart(e.start)
	e.anims.Add(p, a)
	return e
}

// AnimateRepeating attaches an animation with a finite or infinite
// repetition policy.
func (e *Element) AnimateRepeating(p anim.Property, a *anim.Animation, count int, delay float64, mode anim.Mode) error {
	r, err := anim.NewRepeating(a, count, delay, mode)
	if err != nil {
		return err
	}
	r.SetStart(e.start)
	e.anims.Add(p, r)
	return nil
}

// AnimateUntilSceneEnd attaches an animation that repeats until the owning
// scene's resolved duration. Until the element is placed in a scene the
// animation reports itself inactive.
func (e *Element) AnimateUntilSceneEnd(p anim.Property, a *anim.Animation, delay float64, mode anim.Mode) error {
	r, err := anim.NewUntilSceneEnd(a, delay, mode)
	if err != nil {
		return err
	}
	r.SetStart(e.start)
	e.anims.Add(p, r)
	return nil
}

// RebaseAnimations re-anchors every attached animation to the element's
// current start time.
func (e *Element) RebaseAnimations() {
	e.anims.Rebase(e.start)
}

// AnchorX and AnchorY expose the anchor fractions to the rasterizer.
func (e *Element) AnchorX() float64 { return e.anchorX }
func (e *Element) AnchorY() float64 { return e.anchorY }

// EffectiveProperties resolves every animatable property at t (time relative
// to the scene's zero, like the element's own start time). Alpha and color
// clamp to [0,255], scale and corner radius to >= 0; springs may overshoot
// inside their window, so the clamps live here at the application layer.
func (e *Element) EffectiveProperties(t float64) Props {
	p := Props{
		X:            e.anims.Value(anim.X, t, e.x),
		Y:            e.anims.Value(anim.Y, t, e.y),
		Alpha:        e.anims.Value(anim.Alpha, t, e.alpha),
		Scale:        e.anims.Value(anim.Scale, t, e.scale),
		Rotation:     e.anims.Value(anim.Rotation, t, e.rotation),
		CornerRadius: e.anims.Value(anim.CornerRadius, t, e.cornerRadius),
		Color: [3]float64{
			e.anims.Value(anim.ColorR, t, e.color[0]),
			e.anims.Value(anim.ColorG, t, e.color[1]),
			e.anims.Value(anim.ColorB, t, e.color[2]),
		},
	}
	p.Alpha = clamp(p.Alpha, 0, 255)
	for i := range p.Color {
		p.Color[i] = clamp(p.Color[i], 0, 255)
	}
	if p.Scale < 0 {
		p.Scale = 0
	}
	if p.CornerRadius < 0 {
		p.CornerRadius = 0
	}
	return p
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
