package element

import (
	"context"
	"testing"

	"github.com/ivlev/vidcomp/internal/scene"
)

func TestCollectAudioInputs(t *testing.T) {
	// The files are missing, so durations fall back to the default and the
	// video's stream probe fails; the video track must be skipped without
	// poisoning the rest of the collection.
	music := NewAudio("testdata/missing.mp3")
	music.SetVolume(0.8).FadeOut(2)

	silent := NewAudio("testdata/other.mp3")
	silent.SetMuted(true)

	clip := NewVideo("testdata/missing.mp4")
	clip.SetVolume(1.0)

	sc := scene.New().StartAt(2)
	sc.Add(music).Add(silent).Add(clip)

	m := scene.NewMaster(100, 100, 30)
	m.Add(sc)

	inputs := CollectAudioInputs(context.Background(), m)
	if len(inputs) != 1 {
		t.Fatalf("inputs = %d, want 1 (muted audio and streamless video skipped)", len(inputs))
	}
	in := inputs[0]
	if in.Path != "testdata/missing.mp3" {
		t.Errorf("input path = %q, want the unmuted audio", in.Path)
	}
	if in.Offset != 2 {
		t.Errorf("offset = %g, want scene start 2", in.Offset)
	}
	if in.Volume != 0.8 || in.FadeOut != 2 {
		t.Errorf("volume/fade = %g/%g, want 0.8/2", in.Volume, in.FadeOut)
	}
}
