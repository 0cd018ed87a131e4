package asset

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// ProbeDuration returns a media file's duration in seconds via ffprobe. It is
// called once at element construction to seed the element's natural duration.
func ProbeDuration(ctx context.Context, path string) (float64, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("asset: %s: %w", path, err)
	}

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("asset: ffprobe %s: %w", path, err)
	}

	d, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("asset: ffprobe %s: bad duration %q: %w", path, strings.TrimSpace(string(out)), err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("asset: ffprobe %s: non-positive duration %g", path, d)
	}
	return d, nil
}

// HasAudioStream reports whether the media file carries at least one audio
// stream. Video files without one must not be offered to the audio muxer.
func HasAudioStream(ctx context.Context, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return false, fmt.Errorf("asset: %s: %w", path, err)
	}

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "a",
		"-show_entries", "stream=index",
		"-of", "csv=p=0",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return false, fmt.Errorf("asset: ffprobe %s: %w", path, err)
	}
	return strings.TrimSpace(string(out)) != "", nil
}
