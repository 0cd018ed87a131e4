package encode

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os/exec"
	"sync"
)

// Extractor fetches single decoded frames out of video files by timestamp.
// Frame sampling is a pure function of time, so results are cached keyed by
// path and quantized timestamp; the cache is shared by concurrent frame
// workers.
type Extractor struct {
	FPS int // quantization grid for the cache key

	mu    sync.Mutex
	cache map[extractKey]image.Image
}

type extractKey struct {
	path  string
	frame int
}

func NewExtractor(fps int) *Extractor {
	return &Extractor{FPS: fps, cache: make(map[extractKey]image.Image)}
}

// FrameAt decodes the frame nearest to mediaTime seconds into the file.
func (e *Extractor) FrameAt(ctx context.Context, path string, mediaTime float64) (image.Image, error) {
	if mediaTime < 0 {
		mediaTime = 0
	}
	key := extractKey{path: path, frame: int(math.Round(mediaTime * float64(e.FPS)))}

	e.mu.Lock()
	img, ok := e.cache[key]
	e.mu.Unlock()
	if ok {
		return img, nil
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-ss", fmt.Sprintf("%f", mediaTime),
		"-i", path,
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", "png",
		"-",
	)
	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("encode: extract frame %s@%.3fs: %w\nlog: %s", path, mediaTime, err, errBuf.String())
	}

	img, err := png.Decode(&out)
	if err != nil {
		return nil, fmt.Errorf("encode: decode extracted frame %s@%.3fs: %w", path, mediaTime, err)
	}

	e.mu.Lock()
	e.cache[key] = img
	e.mu.Unlock()
	return img, nil
}
