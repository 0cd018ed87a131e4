package encode

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// AudioInput is one audio placement handed to the muxer: a file, where it
// sits on the master timeline, and how loud it plays. Loop marks the
// loop-until-scene-end regime, where the source wraps to fill Duration.
type AudioInput struct {
	Path     string
	Offset   float64 // seconds from the start of the output
	Volume   float64 // 0..1
	Duration float64 // how much of the timeline it occupies
	Loop     bool
	FadeIn   float64 // seconds, 0 disables
	FadeOut  float64 // seconds, 0 disables
}

// BuildMuxArgs assembles the full ffmpeg argument list that overlays the
// audio inputs onto the (silent) rendered video. Pure so the graph is
// testable without running ffmpeg.
func BuildMuxArgs(videoPath string, inputs []AudioInput, outPath string) []string {
	args := []string{"-y", "-i", videoPath}
	for _, in := range inputs {
		if in.Loop {
			// Wrap the source; atrim below cuts it at the negotiated
			// duration.
			args = append(args, "-stream_loop", "-1")
		}
		args = append(args, "-i", in.Path)
	}

	var graph strings.Builder
	labels := make([]string, len(inputs))
	for i, in := range inputs {
		chain := fmt.Sprintf("atrim=0:%f", in.Duration)
		if in.FadeIn > 0 {
			chain += fmt.Sprintf(",afade=t=in:st=0:d=%f", in.FadeIn)
		}
		if in.FadeOut > 0 {
			st := in.Duration - in.FadeOut
			if st < 0 {
				st = 0
			}
			chain += fmt.Sprintf(",afade=t=out:st=%f:d=%f", st, in.FadeOut)
		}
		chain += fmt.Sprintf(",volume=%f", in.Volume)
		if in.Offset > 0 {
			ms := int(in.Offset * 1000)
			chain += fmt.Sprintf(",adelay=%d|%d", ms, ms)
		}
		labels[i] = fmt.Sprintf("[a%d]", i)
		fmt.Fprintf(&graph, "[%d:a]%s%s;", i+1, chain, labels[i])
	}

	audioOut := labels[0]
	if len(inputs) > 1 {
		fmt.Fprintf(&graph, "%samix=inputs=%d:duration=longest:dropout_transition=3[aout];",
			strings.Join(labels, ""), len(inputs))
		audioOut = "[aout]"
	}

	args = append(args, "-filter_complex", strings.TrimSuffix(graph.String(), ";"))
	args = append(args,
		"-map", "0:v",
		"-map", audioOut,
		"-c:v", "copy",
		"-c:a", "aac",
		"-shortest",
		outPath,
	)
	return args
}

// Mux runs the overlay. With no audio inputs it degrades to a plain copy so
// the caller always gets a file at outPath.
func Mux(ctx context.Context, videoPath string, inputs []AudioInput, outPath string) error {
	var args []string
	if len(inputs) == 0 {
		args = []string{"-y", "-i", videoPath, "-c", "copy", outPath}
	} else {
		args = BuildMuxArgs(videoPath, inputs, outPath)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("encode: ffmpeg mux: %w, output: %s", err, string(out))
	}
	return nil
}
