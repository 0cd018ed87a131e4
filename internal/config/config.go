package config

// Render carries the output-side settings for one render run.
type Render struct {
	Width        int
	Height       int
	FPS          int
	Workers      int
	VideoEncoder string
	Quality      int
	Output       string
	FontPath     string
	Background   [3]uint8
	ShowStats    bool
	BuildVersion string
}

// Defaults returns the baseline 1080p/30 configuration.
func Defaults() Render {
	return Render{
		Width:        1920,
		Height:       1080,
		FPS:          30,
		VideoEncoder: "libx264",
		Quality:      23,
		Output:       "output/output_video.mp4",
	}
}
