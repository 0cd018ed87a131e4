package timeline

import (
	"fmt"

	"github.com/ivlev/vidcomp/internal/anim"
	"github.com/ivlev/vidcomp/internal/curve"
	"github.com/ivlev/vidcomp/internal/element"
	"github.com/ivlev/vidcomp/internal/scene"
)

// Build assembles the runnable scene graph from a document. Setters apply in
// document order with timing before animations, so every animation anchors
// to the element's final start time.
func Build(doc *Document) (*scene.Master, error) {
	width, height, fps := doc.Width, doc.Height, doc.FPS
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("timeline: width and height must be positive (got %dx%d)", width, height)
	}
	if fps <= 0 {
		return nil, fmt.Errorf("timeline: fps must be positive (got %d)", fps)
	}
	if len(doc.Scenes) == 0 {
		return nil, fmt.Errorf("timeline: document has no scenes")
	}

	m := scene.NewMaster(width, height, fps)
	for si, ss := range doc.Scenes {
		sc := scene.New().StartAt(ss.Start)
		for ei, es := range ss.Elements {
			el, err := buildElement(&es)
			if err != nil {
				return nil, fmt.Errorf("timeline: scene %d element %d: %w", si, ei, err)
			}
			sc.Add(el)
		}
		m.Add(sc)
	}
	return m, nil
}

func buildElement(es *ElementSpec) (scene.Element, error) {
	var base *element.Element
	var out scene.Element

	switch es.Kind {
	case "text":
		if es.Text == "" {
			return nil, fmt.Errorf("text element needs text")
		}
		size := es.Size
		if size <= 0 {
			size = 48
		}
		t := element.NewText(es.Text, size)
		if es.Font != "" {
			t.SetFont(es.Font)
		}
		switch es.Align {
		case "", "left":
		case "center":
			t.SetAlignment(element.AlignCenter)
		case "right":
			t.SetAlignment(element.AlignRight)
		default:
			return nil, fmt.Errorf("unknown alignment %q", es.Align)
		}
		if es.LineSpacing > 0 {
			t.SetLineSpacing(es.LineSpacing)
		}
		base, out = &t.Element, t

	case "image":
		if es.Path == "" {
			return nil, fmt.Errorf("image element needs path")
		}
		img := element.NewImage(es.Path)
		if es.Page > 0 {
			img.SetPage(es.Page)
		}
		base, out = &img.Element, img

	case "qr":
		if es.Content == "" {
			return nil, fmt.Errorf("qr element needs content")
		}
		q := element.NewQR(es.Content, es.QRSize)
		base, out = &q.Element, q

	case "video":
		if es.Path == "" {
			return nil, fmt.Errorf("video element needs path")
		}
		v := element.NewVideo(es.Path)
		base, out = &v.Element, v

	case "audio":
		if es.Path == "" {
			return nil, fmt.Errorf("audio element needs path")
		}
		a := element.NewAudio(es.Path)
		if es.Volume != nil {
			a.SetVolume(*es.Volume)
		}
		if es.Muted {
			a.SetMuted(true)
		}
		if es.FadeIn > 0 {
			a.FadeIn(es.FadeIn)
		}
		if es.FadeOut > 0 {
			a.FadeOut(es.FadeOut)
		}
		base, out = &a.Element, a

	default:
		return nil, fmt.Errorf("unknown element kind %q", es.Kind)
	}

	// Timing first: animations attached below anchor to the final start.
	base.StartAt(es.Start)
	if es.Duration > 0 {
		base.SetDuration(es.Duration)
	}
	if len(es.Position) == 2 {
		base.Position(es.Position[0], es.Position[1])
	} else if len(es.Position) != 0 {
		return nil, fmt.Errorf("position needs [x, y]")
	}
	if len(es.Anchor) == 2 {
		base.Anchor(es.Anchor[0], es.Anchor[1])
	} else if len(es.Anchor) != 0 {
		return nil, fmt.Errorf("anchor needs [ax, ay]")
	}
	if es.Scale > 0 {
		base.SetScale(es.Scale)
	}
	if es.Rotation != 0 {
		base.SetRotation(es.Rotation)
	}
	if es.Alpha != nil {
		base.SetAlpha(*es.Alpha)
	}
	if len(es.Color) == 3 {
		base.SetColor(es.Color[0], es.Color[1], es.Color[2])
	} else if len(es.Color) != 0 {
		return nil, fmt.Errorf("color needs [r, g, b]")
	}
	if es.CornerRadius > 0 {
		base.SetCornerRadius(es.CornerRadius)
	}
	if es.LoopUntilSceneEnd {
		base.SetLoopUntilSceneEnd(true)
	}

	// Audio forwarding last: the setters create the video's derived track,
	// which must capture the final timing above.
	if v, ok := out.(*element.Video); ok {
		if es.Volume != nil {
			v.SetVolume(*es.Volume)
		}
		if es.Muted {
			v.SetMuted(true)
		}
		if es.FadeIn > 0 {
			v.FadeInAudio(es.FadeIn)
		}
		if es.FadeOut > 0 {
			v.FadeOutAudio(es.FadeOut)
		}
	}

	for ai := range es.Animations {
		if err := attachAnimation(base, &es.Animations[ai]); err != nil {
			return nil, fmt.Errorf("animation %d: %w", ai, err)
		}
	}
	return out, nil
}

func attachAnimation(base *element.Element, as *AnimationSpec) error {
	if as.Property == "color" {
		return attachColorAnimation(base, as)
	}
	prop, err := anim.ParseProperty(as.Property)
	if err != nil {
		return err
	}
	a, err := buildAnimation(as, as.From, as.To)
	if err != nil {
		return err
	}
	return attach(base, prop, a, as)
}

// attachColorAnimation fans a color ramp out into the three channel
// properties so every sample stays scalar.
func attachColorAnimation(base *element.Element, as *AnimationSpec) error {
	if len(as.FromColor) != 3 || len(as.ToColor) != 3 {
		return fmt.Errorf("color animation needs from_color and to_color as [r, g, b]")
	}
	channels := []anim.Property{anim.ColorR, anim.ColorG, anim.ColorB}
	for i, prop := range channels {
		a, err := buildAnimation(as, as.FromColor[i], as.ToColor[i])
		if err != nil {
			return err
		}
		if err := attach(base, prop, a, as); err != nil {
			return err
		}
	}
	return nil
}

func attach(base *element.Element, prop anim.Property, a *anim.Animation, as *AnimationSpec) error {
	if as.UntilSceneEnd {
		delay, mode := 0.0, anim.Restart
		if as.Repeat != nil {
			var err error
			if mode, err = anim.ParseMode(as.Repeat.Mode); err != nil {
				return err
			}
			delay = as.Repeat.Delay
		}
		return base.AnimateUntilSceneEnd(prop, a, delay, mode)
	}
	if as.Repeat != nil {
		mode, err := anim.ParseMode(as.Repeat.Mode)
		if err != nil {
			return err
		}
		return base.AnimateRepeating(prop, a, as.Repeat.Count, as.Repeat.Delay, mode)
	}
	base.Animate(prop, a)
	return nil
}

func buildAnimation(as *AnimationSpec, from, to float64) (*anim.Animation, error) {
	c, err := buildCurve(as)
	if err != nil {
		return nil, err
	}
	return anim.New(c, from, to, as.Duration, as.Delay)
}

func buildCurve(as *AnimationSpec) (curve.Curve, error) {
	switch as.Curve {
	case "", "linear":
		return curve.Linear(), nil
	case "ease_in":
		return curve.EaseIn(), nil
	case "ease_out":
		return curve.EaseOut(), nil
	case "ease_in_out":
		return curve.EaseInOut(), nil
	case "bounce":
		return curve.Bounce(), nil
	case "spring":
		stiffness, damping := as.Stiffness, as.Damping
		if stiffness == 0 {
			stiffness = 170
		}
		if damping == 0 {
			damping = 26
		}
		return curve.NewSpring(stiffness, damping)
	case "keyframe":
		points := make([]curve.Point, len(as.Keyframes))
		for i, k := range as.Keyframes {
			points[i] = curve.Point{U: k.U, Value: k.Value}
		}
		interp := curve.InterpLinear
		switch as.Interpolation {
		case "", "linear":
		case "ease_in_out":
			interp = curve.InterpEaseInOut
		default:
			return nil, fmt.Errorf("unknown keyframe interpolation %q", as.Interpolation)
		}
		return curve.NewKeyframe(points, interp)
	}
	return nil, fmt.Errorf("unknown curve %q", as.Curve)
}
