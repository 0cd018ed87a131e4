// Package timeline defines the YAML project document and turns it into a
// ready-to-render scene graph.
package timeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a complete composition project.
type Document struct {
	Version    string      `yaml:"version"`
	Width      int         `yaml:"width"`
	Height     int         `yaml:"height"`
	FPS        int         `yaml:"fps"`
	Output     string      `yaml:"output,omitempty"`
	Background []uint8     `yaml:"background,omitempty"` // [r, g, b]
	Scenes     []SceneSpec `yaml:"scenes"`
}

// SceneSpec is one scene: a start offset on the master timeline and its
// elements. The scene's duration is never declared; it is negotiated from
// the elements.
type SceneSpec struct {
	Start    float64       `yaml:"start"`
	Elements []ElementSpec `yaml:"elements"`
}

// ElementSpec is one timed element. Kind selects which of the optional
// fields apply.
type ElementSpec struct {
	Kind string `yaml:"kind"` // text | image | video | audio | qr

	Start        float64   `yaml:"start"`
	Duration     float64   `yaml:"duration,omitempty"` // 0: natural/default
	Position     []float64 `yaml:"position,omitempty"` // [x, y]
	Anchor       []float64 `yaml:"anchor,omitempty"`   // [ax, ay] in 0..1
	Scale        float64   `yaml:"scale,omitempty"`
	Rotation     float64   `yaml:"rotation,omitempty"`
	Alpha        *float64  `yaml:"alpha,omitempty"`
	Color        []float64 `yaml:"color,omitempty"` // [r, g, b]
	CornerRadius float64   `yaml:"corner_radius,omitempty"`

	// text
	Text        string  `yaml:"text,omitempty"`
	Size        float64 `yaml:"size,omitempty"`
	Font        string  `yaml:"font,omitempty"`
	Align       string  `yaml:"align,omitempty"` // left | center | right
	LineSpacing float64 `yaml:"line_spacing,omitempty"`

	// image / video / audio
	Path string `yaml:"path,omitempty"`
	Page int    `yaml:"page,omitempty"` // pdf page for images

	// qr
	Content string `yaml:"content,omitempty"`
	QRSize  int    `yaml:"qr_size,omitempty"`

	// audio (and the derived track of a video)
	Volume  *float64 `yaml:"volume,omitempty"`
	Muted   bool     `yaml:"muted,omitempty"`
	FadeIn  float64  `yaml:"fade_in,omitempty"`
	FadeOut float64  `yaml:"fade_out,omitempty"`

	LoopUntilSceneEnd bool `yaml:"loop_until_scene_end,omitempty"`

	Animations []AnimationSpec `yaml:"animations,omitempty"`
}

// AnimationSpec is one property animation.
type AnimationSpec struct {
	Property string  `yaml:"property"`
	Curve    string  `yaml:"curve"` // linear | ease_in | ease_out | ease_in_out | bounce | spring | keyframe
	From     float64 `yaml:"from"`
	To       float64 `yaml:"to"`
	Duration float64 `yaml:"duration"`
	Delay    float64 `yaml:"delay,omitempty"`

	// property: color
	FromColor []float64 `yaml:"from_color,omitempty"`
	ToColor   []float64 `yaml:"to_color,omitempty"`

	// curve: spring
	Stiffness float64 `yaml:"stiffness,omitempty"`
	Damping   float64 `yaml:"damping,omitempty"`

	// curve: keyframe
	Keyframes     []KeyframeSpec `yaml:"keyframes,omitempty"`
	Interpolation string         `yaml:"interpolation,omitempty"` // linear | ease_in_out

	Repeat        *RepeatSpec `yaml:"repeat,omitempty"`
	UntilSceneEnd bool        `yaml:"until_scene_end,omitempty"`
}

// KeyframeSpec pins a value at a normalized progress.
type KeyframeSpec struct {
	U     float64 `yaml:"u"`
	Value float64 `yaml:"value"`
}

// RepeatSpec is the repetition policy of an animation.
type RepeatSpec struct {
	Count int     `yaml:"count"` // -1: infinite
	Delay float64 `yaml:"delay,omitempty"`
	Mode  string  `yaml:"mode,omitempty"` // restart | reverse | continue
}

// Read loads and decodes a project document.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("timeline: parse %s: %w", path, err)
	}
	return &doc, nil
}

// Write saves a project document.
func Write(doc *Document, path string) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
