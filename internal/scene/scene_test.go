package scene

import (
	"math"
	"testing"
)

// stubElement implements Element with the loop/cut bookkeeping a media
// element would have.
type stubElement struct {
	start    float64
	duration float64
	original float64
	loop     bool

	resolvedScene float64
	regime        string
}

func newStub(start, duration float64) *stubElement {
	return &stubElement{start: start, duration: duration, original: duration}
}

func newLoopStub(original float64) *stubElement {
	return &stubElement{duration: original, original: original, loop: true}
}

func (s *stubElement) StartTime() float64       { return s.start }
func (s *stubElement) Duration() float64        { return s.duration }
func (s *stubElement) LoopsUntilSceneEnd() bool { return s.loop }

func (s *stubElement) UpdateDurationForScene(d float64) {
	s.duration = d
	switch {
	case d > s.original:
		s.regime = "loop"
	case d < s.original:
		s.regime = "cut"
	default:
		s.regime = "none"
	}
}

func (s *stubElement) ResolveSceneDuration(d float64) { s.resolvedScene = d }

func TestSceneDurationFromNonLoopElements(t *testing.T) {
	s := New()
	s.Add(newStub(0, 6)).Add(newStub(3, 7))

	if s.Duration() != 10 {
		t.Errorf("scene duration = %g, want 10", s.Duration())
	}
}

func TestBGMLoopRegime(t *testing.T) {
	// BGM with 10s of media against a 15s video: the scene is 15s and the
	// BGM loops to fill it.
	bgm := newLoopStub(10)
	s := New()
	s.Add(bgm).Add(newStub(0, 15))

	if s.Duration() != 15 {
		t.Errorf("scene duration = %g, want 15", s.Duration())
	}
	if bgm.duration != 15 {
		t.Errorf("bgm duration = %g, want 15", bgm.duration)
	}
	if bgm.regime != "loop" {
		t.Errorf("bgm regime = %q, want loop", bgm.regime)
	}
}

func TestBGMCutRegime(t *testing.T) {
	bgm := newLoopStub(10)
	s := New()
	s.Add(bgm).Add(newStub(0, 5))

	if s.Duration() != 5 {
		t.Errorf("scene duration = %g, want 5", s.Duration())
	}
	if bgm.duration != 5 || bgm.regime != "cut" {
		t.Errorf("bgm duration/regime = %g/%q, want 5/cut", bgm.duration, bgm.regime)
	}
}

func TestNegotiationIsOrderIndependent(t *testing.T) {
	build := func(order []int) (*Scene, *stubElement) {
		bgm := newLoopStub(10)
		elems := []Element{bgm, newStub(0, 15), newStub(2, 4)}
		s := New()
		for _, i := range order {
			s.Add(elems[i])
		}
		return s, bgm
	}

	orders := [][]int{{0, 1, 2}, {1, 0, 2}, {2, 1, 0}, {1, 2, 0}}
	for _, order := range orders {
		s, bgm := build(order)
		if s.Duration() != 15 {
			t.Errorf("order %v: scene duration = %g, want 15", order, s.Duration())
		}
		if bgm.duration != 15 || bgm.regime != "loop" {
			t.Errorf("order %v: bgm = %g/%q, want 15/loop", order, bgm.duration, bgm.regime)
		}
	}
}

func TestResolveSceneDurationReachesAllElements(t *testing.T) {
	// Non-loop elements also need the bound for until-scene-end animations.
	a := newStub(0, 8)
	b := newStub(0, 12)
	s := New()
	s.Add(a).Add(b)

	if a.resolvedScene != 12 || b.resolvedScene != 12 {
		t.Errorf("resolved durations = %g/%g, want 12/12", a.resolvedScene, b.resolvedScene)
	}
}

func TestSceneVisibility(t *testing.T) {
	s := New().StartAt(5)
	s.Add(newStub(0, 10))

	if s.VisibleAt(4.99) {
		t.Error("visible before start")
	}
	if !s.VisibleAt(5) || !s.VisibleAt(14.99) {
		t.Error("not visible inside window")
	}
	if s.VisibleAt(15) {
		t.Error("visible at window end (half-open)")
	}
}

func TestMasterTotals(t *testing.T) {
	s1 := New()
	s1.Add(newStub(0, 10))
	s2 := New().StartAt(10)
	s2.Add(newStub(0, 5.5))

	m := NewMaster(1920, 1080, 30)
	m.Add(s1).Add(s2)

	if m.TotalDuration() != 15.5 {
		t.Errorf("total duration = %g, want 15.5", m.TotalDuration())
	}
	if got := m.FrameCount(); got != 465 {
		t.Errorf("frame count = %d, want 465", got)
	}
	if got := m.TimeAt(30); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("TimeAt(30) = %g, want 1.0", got)
	}
}

func TestMasterTotalFollowsLateSceneAdds(t *testing.T) {
	// Scenes may be registered on the master before they are populated, and
	// moved afterwards; the totals must reflect the final state.
	s := New()
	m := NewMaster(1920, 1080, 30)
	m.Add(s)

	if m.TotalDuration() != 0 {
		t.Errorf("empty scene total = %g, want 0", m.TotalDuration())
	}

	s.Add(newStub(0, 10))
	if m.TotalDuration() != 10 {
		t.Errorf("total after late add = %g, want 10", m.TotalDuration())
	}
	if got := m.FrameCount(); got != 300 {
		t.Errorf("frame count after late add = %d, want 300", got)
	}

	s.StartAt(2)
	if m.TotalDuration() != 12 {
		t.Errorf("total after late StartAt = %g, want 12", m.TotalDuration())
	}
}
