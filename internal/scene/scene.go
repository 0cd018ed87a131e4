// Package scene assembles timed elements into scenes and scenes into the
// master timeline, negotiating the circular dependency between a scene's
// length and the loop-until-scene-end elements that must fit it.
package scene

// Element is what a scene needs from a timed entity. Times are relative to
// the scene's own zero.
type Element interface {
	StartTime() float64
	Duration() float64

	// LoopsUntilSceneEnd marks elements whose duration follows the scene
	// instead of contributing to it.
	LoopsUntilSceneEnd() bool

	// UpdateDurationForScene is the phase-2 fixup for loop-mode elements.
	UpdateDurationForScene(sceneDuration float64)

	// ResolveSceneDuration unblocks until-scene-end animations.
	ResolveSceneDuration(sceneDuration float64)
}

// Scene is an ordered collection of elements. Its duration is the max end
// time over the non-loop elements; loop elements are excluded from the max
// and instead stretched or cut to it.
type Scene struct {
	elements []Element
	start    float64
	duration float64
}

func New() *Scene {
	return &Scene{}
}

// Add appends an element and re-runs the two-phase duration negotiation.
// Because phase 2 re-runs on every add, the final state after all adds is
// the same for any insertion order; intermediate states are not final.
func (s *Scene) Add(e Element) *Scene {
	s.elements = append(s.elements, e)

	// Phase 1: non-loop elements push the scene's end out.
	if !e.LoopsUntilSceneEnd() {
		if end := e.StartTime() + e.Duration(); end > s.duration {
			s.duration = end
		}
	}

	// Phase 2: re-fit every loop element to the current duration and
	// propagate the bound into until-scene-end animations everywhere.
	for _, el := range s.elements {
		if el.LoopsUntilSceneEnd() {
			el.UpdateDurationForScene(s.duration)
		}
		el.ResolveSceneDuration(s.duration)
	}
	return s
}

// StartAt places the scene on the master timeline.
func (s *Scene) StartAt(t float64) *Scene {
	s.start = t
	return s
}

func (s *Scene) StartTime() float64 { return s.start }

// Duration is final only once every Add for the scene has completed.
func (s *Scene) Duration() float64 { return s.duration }

func (s *Scene) Elements() []Element { return s.elements }

// VisibleAt reports whether global time t falls inside the scene's window.
func (s *Scene) VisibleAt(t float64) bool {
	local := t - s.start
	return local >= 0 && local < s.duration
}

// LocalTime converts global time to the scene's own clock.
func (s *Scene) LocalTime(t float64) float64 { return t - s.start }
