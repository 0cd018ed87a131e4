package scene

import "math"

// Master is the ordered collection of scenes that defines the whole render:
// total duration, frame rate, and the frame-to-time mapping the render loop
// walks. Evaluation at a frame time is a pure function of t, so frames may
// be sampled in any order.
type Master struct {
	width, height int
	fps           int

	scenes []*Scene
}

func NewMaster(width, height, fps int) *Master {
	return &Master{width: width, height: height, fps: fps}
}

// Add appends a scene. The scene does not have to be fully populated yet;
// durations are read when the total is queried, never cached.
func (m *Master) Add(s *Scene) *Master {
	m.scenes = append(m.scenes, s)
	return m
}

func (m *Master) Width() int  { return m.width }
func (m *Master) Height() int { return m.height }
func (m *Master) FPS() int    { return m.fps }

func (m *Master) Scenes() []*Scene { return m.scenes }

// TotalDuration is computed on demand, so adds to the master and to its
// scenes may interleave in any order before rendering.
func (m *Master) TotalDuration() float64 {
	var total float64
	for _, s := range m.scenes {
		if end := s.start + s.duration; end > total {
			total = end
		}
	}
	return total
}

// FrameCount is the number of discrete frames the render loop produces.
func (m *Master) FrameCount() int {
	return int(math.Floor(m.TotalDuration() * float64(m.fps)))
}

// TimeAt maps a frame index to its sample time.
func (m *Master) TimeAt(frame int) float64 {
	return float64(frame) / float64(m.fps)
}
