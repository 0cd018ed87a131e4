package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivlev/vidcomp/internal/config"
	"github.com/ivlev/vidcomp/internal/element"
	"github.com/ivlev/vidcomp/internal/encode"
	"github.com/ivlev/vidcomp/internal/render"
	"github.com/ivlev/vidcomp/internal/scene"
	"github.com/ivlev/vidcomp/internal/system"
	"github.com/ivlev/vidcomp/internal/timeline"
)

func main() {
	system.InitResourceLimits()

	for _, d := range []string{"projects", "output"} {
		os.MkdirAll(d, 0755)
	}

	projectPtr := flag.String("project", "", "Path to the project YAML (default: newest file in projects/)")
	outputPtr := flag.String("output", "", "Path to the output video (default: taken from the project, else output/)")
	widthPtr := flag.Int("width", 0, "Override the project width")
	heightPtr := flag.Int("height", 0, "Override the project height")
	fpsPtr := flag.Int("fps", 0, "Override the project FPS")
	presetPtr := flag.String("preset", "", "Format preset: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	encoderPtr := flag.String("encoder", "", "H.264 encoder (default: best available)")
	qualityPtr := flag.Int("quality", 0, "Video quality (0 - auto, x264: CRF 1-51, VideoToolbox: bitrate = Q*100kbit/s)")
	workersPtr := flag.Int("workers", 0, "Render workers (0 - sized from CPU and free memory)")
	fontPtr := flag.String("font", "", "TTF font file for text elements (default: embedded Go Regular)")
	dryRunPtr := flag.Bool("dry-run", false, "Print the negotiated timeline and exit without rendering")
	initPtr := flag.Bool("init", false, "Write a sample project to projects/ and exit")

	flag.Parse()

	if *initPtr {
		path := filepath.Join("projects", "sample.yaml")
		if err := timeline.Write(sampleProject(), path); err != nil {
			log.Fatalf("[-] Failed to write sample project: %v", err)
		}
		fmt.Printf("[*] Sample project written: %s\n", path)
		return
	}

	projectPath := *projectPtr
	if projectPath == "" {
		latest, err := system.FindLatestProject("projects")
		if err != nil {
			log.Fatalf("[-] Error: %v. Put a project YAML in projects/ or pass -project", err)
		}
		projectPath = latest
		fmt.Printf("[*] Using project: %s\n", projectPath)
	}

	doc, err := timeline.Read(projectPath)
	if err != nil {
		log.Fatalf("[-] Failed to read project: %v", err)
	}

	if *widthPtr > 0 {
		doc.Width = *widthPtr
	}
	if *heightPtr > 0 {
		doc.Height = *heightPtr
	}
	if *fpsPtr > 0 {
		doc.FPS = *fpsPtr
	}
	switch *presetPtr {
	case "":
	case "16:9":
		doc.Width, doc.Height = 1920, 1080
	case "9:16":
		doc.Width, doc.Height = 1080, 1920
	case "4:5":
		doc.Width, doc.Height = 1080, 1350
	default:
		log.Fatalf("[-] Unknown preset %q", *presetPtr)
	}

	master, err := timeline.Build(doc)
	if err != nil {
		log.Fatalf("[-] Failed to build timeline: %v", err)
	}

	if *dryRunPtr {
		printTimeline(doc, master)
		return
	}

	finalOutput := *outputPtr
	if finalOutput == "" {
		finalOutput = doc.Output
	}
	if finalOutput == "" {
		baseName := filepath.Base(projectPath)
		nameOnly := strings.TrimSuffix(baseName, filepath.Ext(baseName))
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		finalOutput = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", nameOnly, timestamp))
	}

	encoderName := *encoderPtr
	if encoderName == "" {
		encoderName = system.BestH264Encoder()
		if encoderName != "libx264" {
			fmt.Printf("[*] Hardware acceleration detected: %s\n", encoderName)
		}
	}

	quality := *qualityPtr
	if quality == 0 {
		switch encoderName {
		case "h264_videotoolbox":
			quality = 75
		case "h264_nvenc":
			quality = 28
		default:
			quality = 23
		}
	}

	cfg := config.Render{
		Width:        doc.Width,
		Height:       doc.Height,
		FPS:          doc.FPS,
		Workers:      *workersPtr,
		VideoEncoder: encoderName,
		Quality:      quality,
		Output:       finalOutput,
		FontPath:     *fontPtr,
	}
	if len(doc.Background) == 3 {
		cfg.Background = [3]uint8{doc.Background[0], doc.Background[1], doc.Background[2]}
	}

	ctx := context.Background()
	r := render.New(cfg)
	fmt.Printf("[*] Rendering %d frames (%.2fs) at %dx%d@%d, %d workers\n",
		master.FrameCount(), master.TotalDuration(), cfg.Width, cfg.Height, cfg.FPS, r.Workers())

	// Video first, into a temp file; audio is muxed in afterwards.
	tmpVideo := finalOutput + ".video.mp4"
	sink, err := encode.NewFFmpegSink(ctx, tmpVideo, cfg.Width, cfg.Height, cfg.FPS, cfg.VideoEncoder, cfg.Quality)
	if err != nil {
		log.Fatalf("[-] Failed to start encoder: %v", err)
	}

	start := time.Now()
	if err := r.Render(ctx, master, sink); err != nil {
		sink.Close()
		os.Remove(tmpVideo)
		log.Fatalf("[-] Render failed: %v", err)
	}
	if err := sink.Close(); err != nil {
		os.Remove(tmpVideo)
		log.Fatalf("[-] Encoder failed: %v", err)
	}
	fmt.Printf("[*] Video rendered in %.1fs\n", time.Since(start).Seconds())

	inputs := element.CollectAudioInputs(ctx, master)
	if len(inputs) > 0 {
		fmt.Printf("[*] Mixing %d audio track(s)\n", len(inputs))
	}
	if err := encode.Mux(ctx, tmpVideo, inputs, finalOutput); err != nil {
		log.Fatalf("[-] Audio mux failed: %v", err)
	}
	os.Remove(tmpVideo)

	fmt.Printf("[+++] Done! Output: %s\n", finalOutput)
}

// printTimeline dumps the negotiated scene and element timings, the part of
// the pipeline that is hard to predict by reading the YAML.
func printTimeline(doc *timeline.Document, m *scene.Master) {
	fmt.Printf("Timeline: %.2fs, %d frames at %d fps\n", m.TotalDuration(), m.FrameCount(), doc.FPS)
	for i, sc := range m.Scenes() {
		fmt.Printf("  scene %d: start %.2fs, duration %.2fs\n", i, sc.StartTime(), sc.Duration())
		for j, el := range sc.Elements() {
			fmt.Printf("    element %d: start %.2fs, duration %.2fs\n", j, el.StartTime(), el.Duration())
		}
	}
}

func sampleProject() *timeline.Document {
	vol := 0.8
	return &timeline.Document{
		Version:    "1.0",
		Width:      1920,
		Height:     1080,
		FPS:        30,
		Background: []uint8{20, 20, 28},
		Scenes: []timeline.SceneSpec{
			{
				Start: 0,
				Elements: []timeline.ElementSpec{
					{
						Kind:     "text",
						Text:     "Hello, vidcomp",
						Size:     96,
						Position: []float64{960, 480},
						Anchor:   []float64{0.5, 0.5},
						Align:    "center",
						Duration: 6,
						Animations: []timeline.AnimationSpec{
							{Property: "alpha", Curve: "ease_in_out", From: 0, To: 255, Duration: 1.5},
							{Property: "y", Curve: "spring", From: 560, To: 480, Duration: 1.5},
						},
					},
					{
						Kind:     "text",
						Text:     "edit projects/sample.yaml to get started",
						Size:     40,
						Position: []float64{960, 640},
						Anchor:   []float64{0.5, 0.5},
						Align:    "center",
						Start:    1,
						Duration: 5,
						Animations: []timeline.AnimationSpec{
							{
								Property: "scale", Curve: "ease_in_out",
								From: 1.0, To: 1.05, Duration: 1.2,
								UntilSceneEnd: true,
								Repeat:        &timeline.RepeatSpec{Mode: "reverse"},
							},
						},
					},
					{
						Kind:              "audio",
						Path:              "input/audio/music.mp3",
						Volume:            &vol,
						FadeOut:           2,
						LoopUntilSceneEnd: true,
					},
				},
			},
		},
	}
}
