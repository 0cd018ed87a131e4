package element

import (
	"context"
	"log"

	"github.com/ivlev/vidcomp/internal/asset"
)

// Audio is a timed audio track. It has no visual output; the muxer collects
// its placement after rendering. With loop-until-scene-end set it behaves as
// BGM: its duration follows the scene's negotiated length, wrapping or
// truncating the media as needed.
type Audio struct {
	Element

	path    string
	volume  float64
	muted   bool
	fadeIn  float64
	fadeOut float64
}

// NewAudio creates an audio element and probes the file for its natural
// duration. A missing or unreadable file is non-fatal: the element falls back
// to DefaultMediaDuration and stays usable for timing.
func NewAudio(path string) *Audio {
	a := &Audio{Element: newElement(), path: path, volume: 1}
	a.mediaNatural = true

	d, err := asset.ProbeDuration(context.Background(), path)
	if err != nil {
		log.Printf("[!] Audio probe failed, using default %.1fs: %v", DefaultMediaDuration, err)
		d = DefaultMediaDuration
	}
	a.duration = d
	a.originalDuration = d
	return a
}

// newDerivedAudio builds the audio track a video element owns. No probe: the
// track's timing is a forced mirror of its parent.
func newDerivedAudio(path string, start, duration float64) *Audio {
	a := &Audio{Element: newElement(), path: path, volume: 1}
	a.mediaNatural = true
	a.start = start
	a.duration = duration
	a.originalDuration = duration
	return a
}

func (a *Audio) Path() string    { return a.path }
func (a *Audio) Volume() float64 { return a.volume }
func (a *Audio) Muted() bool     { return a.muted }

// SetVolume sets the track volume, clamped to [0,1].
func (a *Audio) SetVolume(v float64) *Audio {
	a.volume = clamp(v, 0, 1)
	return a
}

func (a *Audio) SetMuted(m bool) *Audio { a.muted = m; return a }

// FadeIn ramps the volume up over the first d seconds of the track.
func (a *Audio) FadeIn(d float64) *Audio { a.fadeIn = d; return a }

// FadeOut ramps the volume down over the last d seconds of the track.
func (a *Audio) FadeOut(d float64) *Audio { a.fadeOut = d; return a }

// mirror applies the parent video's timing and loop/cut regime to a derived
// track.
func (a *Audio) mirror(start, duration float64, regime Regime) {
	a.start = start
	a.duration = duration
	a.regime = regime
}
