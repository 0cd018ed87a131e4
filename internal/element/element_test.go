package element

import (
	"math"
	"testing"

	"github.com/ivlev/vidcomp/internal/anim"
	"github.com/ivlev/vidcomp/internal/curve"
	"github.com/ivlev/vidcomp/internal/scene"
)

const eps = 1e-9

func TestVisibilityWindowIsHalfOpen(t *testing.T) {
	e := NewText("hello", 40)
	e.StartAt(2).SetDuration(3)

	if e.IsVisibleAt(2 - eps) {
		t.Error("visible just before start")
	}
	if !e.IsVisibleAt(2) {
		t.Error("not visible at start")
	}
	if !e.IsVisibleAt(5 - eps) {
		t.Error("not visible just before end")
	}
	if e.IsVisibleAt(5) {
		t.Error("visible at end (window is half-open)")
	}
}

func TestEffectivePropertiesPassThroughWithoutAnimations(t *testing.T) {
	e := NewText("x", 40)
	e.Position(120, 340).SetScale(0.5).SetRotation(45).SetAlpha(128).SetCornerRadius(12)
	e.SetColor(10, 20, 30)

	for _, at := range []float64{-3, 0, 1.5, 99} {
		p := e.EffectiveProperties(at)
		if p.X != 120 || p.Y != 340 || p.Scale != 0.5 || p.Rotation != 45 ||
			p.Alpha != 128 || p.CornerRadius != 12 || p.Color != [3]float64{10, 20, 30} {
			t.Errorf("t=%g: base values did not pass through: %+v", at, p)
		}
	}
}

func TestEffectivePropertiesApplyAnimations(t *testing.T) {
	e := NewText("x", 40)
	e.Position(0, 0).StartAt(0).SetDuration(10)

	slide, err := anim.New(curve.Linear(), -300, 960, 2, 0)
	if err != nil {
		t.Fatalf("anim.New: %v", err)
	}
	e.Animate(anim.X, slide)

	p := e.EffectiveProperties(1)
	if math.Abs(p.X-330) > eps {
		t.Errorf("x at midpoint = %g, want 330", p.X)
	}
	if p.Y != 0 {
		t.Errorf("y = %g, want untouched base 0", p.Y)
	}
}

func TestApplicationLayerClamps(t *testing.T) {
	e := NewText("x", 40)
	e.StartAt(0).SetDuration(10)

	// A spring overshooting alpha past 255 must clamp at application.
	s, err := curve.NewSpring(300, 4)
	if err != nil {
		t.Fatalf("NewSpring: %v", err)
	}
	fade, err := anim.New(s, 0, 255, 1, 0)
	if err != nil {
		t.Fatalf("anim.New: %v", err)
	}
	e.Animate(anim.Alpha, fade)

	for u := 0.0; u <= 1.0; u += 0.02 {
		p := e.EffectiveProperties(u)
		if p.Alpha < 0 || p.Alpha > 255 {
			t.Fatalf("alpha %g out of [0,255] at t=%g", p.Alpha, u)
		}
	}

	shrink, err := anim.New(curve.Linear(), 1, -2, 1, 0)
	if err != nil {
		t.Fatalf("anim.New: %v", err)
	}
	e.Animate(anim.Scale, shrink)
	if p := e.EffectiveProperties(1); p.Scale != 0 {
		t.Errorf("scale = %g, want clamped to 0", p.Scale)
	}
}

func TestAnimationsAnchorAtAttachTime(t *testing.T) {
	e := NewText("x", 40)
	e.StartAt(2).SetDuration(10)

	a, err := anim.New(curve.Linear(), 0, 100, 2, 0)
	if err != nil {
		t.Fatalf("anim.New: %v", err)
	}
	e.Animate(anim.X, a)

	// Moving the element later does not move the attached window.
	e.StartAt(7)
	if got := a.Start(); got != 2 {
		t.Errorf("animation start = %g, want attach-time 2", got)
	}

	e.RebaseAnimations()
	if got := a.Start(); got != 7 {
		t.Errorf("animation start after rebase = %g, want 7", got)
	}
}

func TestConvenienceAttachers(t *testing.T) {
	e := NewText("hi", 40)
	e.Position(500, 300).SetAlpha(255).SetDuration(6)

	fade, err := anim.FadeIn(1, 0)
	if err != nil {
		t.Fatalf("FadeIn: %v", err)
	}
	e.AnimateFade(fade)
	if err := e.AnimateSlideInFromLeft(400, 2, 0); err != nil {
		t.Fatalf("AnimateSlideInFromLeft: %v", err)
	}
	if err := e.AnimatePulseUntilEnd(1, 1.5, 1); err != nil {
		t.Fatalf("AnimatePulseUntilEnd: %v", err)
	}

	p := e.EffectiveProperties(0)
	if p.Alpha != 0 {
		t.Errorf("alpha at t=0 = %g, want 0 (fade start)", p.Alpha)
	}
	if p.X != 100 {
		t.Errorf("x at t=0 = %g, want 100 (slide origin)", p.X)
	}
	// The pulse is inactive until the element lands in a scene.
	if p.Scale != 1 {
		t.Errorf("scale before scene placement = %g, want base 1", p.Scale)
	}

	sc := scene.New()
	sc.Add(e)

	if got := e.EffectiveProperties(2).X; got != 500 {
		t.Errorf("x after slide = %g, want 500", got)
	}
	// Pulse repetition 1 reverses: at its end the scale is back at 1.
	if got := e.EffectiveProperties(2).Scale; math.Abs(got-1) > eps {
		t.Errorf("scale at end of reversed pulse = %g, want 1", got)
	}
	if got := e.EffectiveProperties(0.9).Scale; got <= 1 || got > 1.5 {
		t.Errorf("scale mid-pulse = %g, want in (1, 1.5]", got)
	}
}

func TestDerivedAudioTrackCreatedLazily(t *testing.T) {
	v := NewVideo("testdata/missing.mp4")
	if v.AudioTrack() != nil {
		t.Fatal("audio track exists before any audio setter")
	}

	// Timing changes before the track exists must be applied at creation.
	v.StartAt(5).SetDuration(10).SetVolume(0.5)

	track := v.AudioTrack()
	if track == nil {
		t.Fatal("audio track not created by SetVolume")
	}
	if track.StartTime() != 5 || track.Duration() != 10 {
		t.Errorf("track timing = %g/%g, want 5/10", track.StartTime(), track.Duration())
	}
	if track.Volume() != 0.5 {
		t.Errorf("track volume = %g, want 0.5", track.Volume())
	}
}

func TestDerivedAudioTrackFollowsParent(t *testing.T) {
	v := NewVideo("testdata/missing.mp4")
	v.SetMuted(true) // creates the track

	v.StartAt(3).SetDuration(8)
	track := v.AudioTrack()
	if track.StartTime() != v.StartTime() || track.Duration() != v.Duration() {
		t.Fatalf("track timing drifted: track %g/%g, video %g/%g",
			track.StartTime(), track.Duration(), v.StartTime(), v.Duration())
	}

	// Scene phase-2 fixup goes through the same mirror.
	v.SetLoopUntilSceneEnd(true)
	v.UpdateDurationForScene(20)
	if track.Duration() != 20 || track.StartTime() != v.StartTime() {
		t.Fatalf("track not mirrored after scene fixup: %g/%g", track.StartTime(), track.Duration())
	}
}

func TestDerivedAudioTrackSyncsWhenTimingBypassesVideo(t *testing.T) {
	// Timing applied through the embedded Element does not pass through the
	// Video setters; the track must still mirror the parent when observed.
	v := NewVideo("testdata/missing.mp4")
	v.SetVolume(0.5) // creates the track at the current timing
	v.Element.StartAt(5)
	v.Element.SetDuration(10)

	track := v.AudioTrack()
	if track.StartTime() != 5 || track.Duration() != 10 {
		t.Fatalf("track timing = %g/%g, want 5/10", track.StartTime(), track.Duration())
	}
}

func TestBGMRegimeThroughScene(t *testing.T) {
	// Probe fails for the missing file, so the BGM falls back to the
	// documented default duration; pin the natural length explicitly.
	bgm := NewAudio("testdata/missing.mp3")
	bgm.originalDuration = 10
	bgm.duration = 10
	bgm.SetVolume(0.3).SetLoopUntilSceneEnd(true)

	long := NewText("video stand-in", 40)
	long.StartAt(0).SetDuration(15)

	s := scene.New()
	s.Add(bgm).Add(long)

	if s.Duration() != 15 {
		t.Errorf("scene duration = %g, want 15 (BGM excluded from the max)", s.Duration())
	}
	if bgm.Duration() != 15 || bgm.Regime() != RegimeLoop {
		t.Errorf("bgm = %g/%s, want 15/loop", bgm.Duration(), bgm.Regime())
	}

	short := NewAudio("testdata/missing.mp3")
	short.originalDuration = 10
	short.duration = 10
	short.SetLoopUntilSceneEnd(true)

	s2 := scene.New()
	s2.Add(short).Add(NewText("t", 40).StartAt(0).SetDuration(5))
	if short.Duration() != 5 || short.Regime() != RegimeCut {
		t.Errorf("bgm = %g/%s, want 5/cut", short.Duration(), short.Regime())
	}
}

func TestUntilSceneEndAnimationResolvesOnAdd(t *testing.T) {
	e := NewText("pulse", 40)
	e.StartAt(0).SetDuration(4)

	pulse, err := anim.New(curve.Linear(), 1.0, 1.2, 1, 0)
	if err != nil {
		t.Fatalf("anim.New: %v", err)
	}
	if err := e.AnimateUntilSceneEnd(anim.Scale, pulse, 0, anim.Reverse); err != nil {
		t.Fatalf("AnimateUntilSceneEnd: %v", err)
	}

	// Before placement the animation is inactive and the base holds.
	if p := e.EffectiveProperties(0.5); p.Scale != 1 {
		t.Errorf("scale before placement = %g, want base 1", p.Scale)
	}

	s := scene.New()
	s.Add(e).Add(NewText("long", 40).StartAt(0).SetDuration(12))

	if p := e.EffectiveProperties(0.5); math.Abs(p.Scale-1.1) > eps {
		t.Errorf("scale after placement = %g, want 1.1", p.Scale)
	}
}

func TestVideoMediaTime(t *testing.T) {
	v := NewVideo("testdata/missing.mp4") // natural length defaults to 5s
	v.SetLoopUntilSceneEnd(true)
	v.UpdateDurationForScene(12) // loop regime

	if got := v.MediaTimeAt(7); math.Abs(got-2) > eps {
		t.Errorf("looped media time = %g, want 2", got)
	}

	cut := NewVideo("testdata/missing.mp4")
	if got := cut.MediaTimeAt(9); got != 5 {
		t.Errorf("clamped media time = %g, want 5", got)
	}
}
