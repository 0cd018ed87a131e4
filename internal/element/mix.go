package element

import (
	"context"
	"log"

	"github.com/ivlev/vidcomp/internal/asset"
	"github.com/ivlev/vidcomp/internal/encode"
	"github.com/ivlev/vidcomp/internal/scene"
)

// CollectAudioInputs walks the finished scene graph and gathers every
// audible track as a muxer placement: standalone audio elements plus the
// derived tracks of video elements. Offsets convert scene-local start times
// to the master timeline. Must run only after all adds have completed, once
// every scene's duration is settled.
//
// A video file without an audio stream is skipped with a warning; feeding it
// to the muxer would fail the whole mux over one silent clip.
func CollectAudioInputs(ctx context.Context, m *scene.Master) []encode.AudioInput {
	var inputs []encode.AudioInput
	for _, sc := range m.Scenes() {
		for _, el := range sc.Elements() {
			switch v := el.(type) {
			case *Audio:
				if in, ok := v.muxInput(sc.StartTime()); ok {
					inputs = append(inputs, in)
				}
			case *Video:
				track := v.ensureAudio()
				in, ok := track.muxInput(sc.StartTime())
				if !ok {
					continue
				}
				if has, err := asset.HasAudioStream(ctx, v.Path()); err != nil {
					log.Printf("[!] Skipping audio of video %s: %v", v.Path(), err)
					continue
				} else if !has {
					log.Printf("[!] Video %s has no audio stream, skipping its track", v.Path())
					continue
				}
				inputs = append(inputs, in)
			}
		}
	}
	return inputs
}

func (a *Audio) muxInput(sceneStart float64) (encode.AudioInput, bool) {
	if a.muted || a.volume <= 0 || a.duration <= 0 {
		return encode.AudioInput{}, false
	}
	return encode.AudioInput{
		Path:     a.path,
		Offset:   sceneStart + a.start,
		Volume:   a.volume,
		Duration: a.duration,
		Loop:     a.regime == RegimeLoop,
		FadeIn:   a.fadeIn,
		FadeOut:  a.fadeOut,
	}, true
}
