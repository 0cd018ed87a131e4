// Package encode drives ffmpeg: a frame sink that pipes raw RGBA frames to an
// encoder process, a per-time video frame extractor, and the audio muxer that
// lays element audio tracks onto the silent render.
package encode

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
)

// FFmpegSink encodes a stream of same-sized RGBA frames into a video file.
// Frames arrive over the process's stdin as raw rgba data.
type FFmpegSink struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	errBuf bytes.Buffer

	width, height int
}

// NewFFmpegSink starts the encoder process. The caller must Close to flush
// and finalize the file.
func NewFFmpegSink(ctx context.Context, path string, width, height, fps int, encoderName string, quality int) (*FFmpegSink, error) {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", encoderName,
	}
	args = append(args, qualityArgs(encoderName, quality)...)
	args = append(args, path)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	s := &FFmpegSink{cmd: cmd, width: width, height: height}
	cmd.Stdout = &s.errBuf
	cmd.Stderr = &s.errBuf

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("encode: stdin pipe: %w", err)
	}
	s.stdin = stdin

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("encode: ffmpeg start: %w", err)
	}
	return s, nil
}

// WriteFrame sends one frame. The image must match the sink dimensions and
// use the canonical zero-origin stride (the renderer's frame pool guarantees
// both).
func (s *FFmpegSink) WriteFrame(img *image.RGBA) error {
	b := img.Bounds()
	if b.Dx() != s.width || b.Dy() != s.height {
		return fmt.Errorf("encode: frame is %dx%d, sink expects %dx%d", b.Dx(), b.Dy(), s.width, s.height)
	}
	if img.Stride != s.width*4 || b.Min.X != 0 || b.Min.Y != 0 {
		return fmt.Errorf("encode: frame must have zero origin and packed stride")
	}
	if _, err := s.stdin.Write(img.Pix); err != nil {
		return fmt.Errorf("encode: write frame: %w", err)
	}
	return nil
}

// Close ends the stream and waits for the encoder to finish.
func (s *FFmpegSink) Close() error {
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("encode: ffmpeg: %w\nlog: %s", err, s.errBuf.String())
	}
	return nil
}

// qualityArgs maps the encoder name to its quality knob: CRF for libx264,
// constant quality for nvenc, bitrate for videotoolbox (it does not support
// -q:v on all versions).
func qualityArgs(encoderName string, quality int) []string {
	switch encoderName {
	case "h264_videotoolbox":
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default:
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}
