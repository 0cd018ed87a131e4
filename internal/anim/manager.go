package anim

// Manager owns, per property, the ordered list of animations attached to one
// element, and resolves the effective value of each property at a time.
type Manager struct {
	tracks [numProperties][]Sampler
}

func NewManager() *Manager {
	return &Manager{}
}

// Add appends a sampler to the property's track. Insertion order matters:
// among stacked animations the most recently added one that has started wins.
func (m *Manager) Add(p Property, s Sampler) {
	m.tracks[p] = append(m.tracks[p], s)
}

// Has reports whether any animation is attached to the property.
func (m *Manager) Has(p Property) bool {
	return len(m.tracks[p]) > 0
}

// Value resolves the property at time t. The track is scanned in reverse
// insertion order; the first sampler that has started by t supplies the
// value (a finished sampler holds its terminal value until a later-added one
// takes over). With no applicable sampler the base value passes through
// untouched.
func (m *Manager) Value(p Property, t, base float64) float64 {
	track := m.tracks[p]
	for i := len(track) - 1; i >= 0; i-- {
		if track[i].StartedBy(t) {
			return track[i].ValueAt(t)
		}
	}
	return base
}

// Rebase re-anchors every attached animation to a new start time. Attach-time
// anchoring is the default contract; this is the explicit re-sync escape
// hatch for callers that move an element after animating it.
func (m *Manager) Rebase(start float64) {
	for p := range m.tracks {
		for _, s := range m.tracks[p] {
			s.SetStart(start)
		}
	}
}

// ResolveSceneDuration propagates the owning scene's resolved duration into
// every until-scene-end repeat wrapper.
func (m *Manager) ResolveSceneDuration(d float64) {
	for p := range m.tracks {
		for _, s := range m.tracks[p] {
			if r, ok := s.(*Repeating); ok {
				r.ResolveSceneDuration(d)
			}
		}
	}
}
