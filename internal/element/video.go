package element

import (
	"context"
	"log"
	"math"

	"github.com/ivlev/vidcomp/internal/asset"
)

// Video is a timed video clip. It owns a derived audio track whose timing is
// a forced mirror of the clip's own: the track is created lazily on the first
// setter that needs it, and every timing change on the video re-applies to
// the track if it exists.
type Video struct {
	Element

	path string

	audio *Audio
}

// NewVideo creates a video element and probes the file for its natural
// duration. A missing file is non-fatal (see NewAudio).
func NewVideo(path string) *Video {
	v := &Video{Element: newElement(), path: path}
	v.mediaNatural = true

	d, err := asset.ProbeDuration(context.Background(), path)
	if err != nil {
		log.Printf("[!] Video probe failed, using default %.1fs: %v", DefaultMediaDuration, err)
		d = DefaultMediaDuration
	}
	v.duration = d
	v.originalDuration = d
	return v
}

func (v *Video) Path() string { return v.path }

// StartAt moves the clip and its audio track together.
func (v *Video) StartAt(t float64) *Video {
	v.Element.StartAt(t)
	v.syncAudio()
	return v
}

// SetDuration resizes the clip and its audio track together.
func (v *Video) SetDuration(d float64) *Video {
	v.Element.SetDuration(d)
	v.syncAudio()
	return v
}

// UpdateDurationForScene keeps the audio track mirrored through the scene's
// phase-2 fixup as well.
func (v *Video) UpdateDurationForScene(sceneDuration float64) {
	v.Element.UpdateDurationForScene(sceneDuration)
	v.syncAudio()
}

// SetVolume forwards to the derived audio track, creating it on demand.
func (v *Video) SetVolume(vol float64) *Video {
	v.ensureAudio().SetVolume(vol)
	return v
}

// SetMuted forwards to the derived audio track, creating it on demand.
func (v *Video) SetMuted(m bool) *Video {
	v.ensureAudio().SetMuted(m)
	return v
}

// FadeInAudio forwards to the derived audio track, creating it on demand.
func (v *Video) FadeInAudio(d float64) *Video {
	v.ensureAudio().FadeIn(d)
	return v
}

// FadeOutAudio forwards to the derived audio track, creating it on demand.
func (v *Video) FadeOutAudio(d float64) *Video {
	v.ensureAudio().FadeOut(d)
	return v
}

// AudioTrack returns the derived track, or nil if no setter has created it.
// The track's timing is brought in line with the parent before it is handed
// out, in case timing moved through the embedded Element.
func (v *Video) AudioTrack() *Audio {
	v.syncAudio()
	return v.audio
}

func (v *Video) ensureAudio() *Audio {
	if v.audio == nil {
		v.audio = newDerivedAudio(v.path, v.start, v.duration)
	}
	// Re-mirror on every access: timing may have moved through the embedded
	// Element since the track was created.
	v.syncAudio()
	return v.audio
}

func (v *Video) syncAudio() {
	if v.audio != nil {
		v.audio.mirror(v.start, v.duration, v.regime)
	}
}

// MediaTimeAt maps time since the element's start to a timestamp inside the
// media file, wrapping in the loop regime and clamping to the natural length
// otherwise.
func (v *Video) MediaTimeAt(local float64) float64 {
	if local < 0 {
		local = 0
	}
	if v.regime == RegimeLoop && v.originalDuration > 0 {
		return math.Mod(local, v.originalDuration)
	}
	if local > v.originalDuration {
		local = v.originalDuration
	}
	return local
}
