// Package render rasterizes the scene graph into RGBA frames: a software
// compositor driven purely by per-frame effective properties, and a worker
// pool that samples frames concurrently and hands them to a sink in order.
package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/ivlev/vidcomp/internal/config"
	"github.com/ivlev/vidcomp/internal/element"
	"github.com/ivlev/vidcomp/internal/encode"
	"github.com/ivlev/vidcomp/internal/scene"
	"github.com/ivlev/vidcomp/internal/system"
)

// FrameSink receives finished frames in presentation order.
type FrameSink interface {
	WriteFrame(*image.RGBA) error
}

type Renderer struct {
	cfg     config.Render
	workers int
	pool    *system.FramePool
	frames  *encode.Extractor
	faces   *faceCache
}

func New(cfg config.Render) *Renderer {
	workers := cfg.Workers
	if workers <= 0 {
		workers = system.Workers(uint64(cfg.Width) * uint64(cfg.Height) * 4)
	}
	return &Renderer{
		cfg:     cfg,
		workers: workers,
		pool:    system.NewFramePool(cfg.Width, cfg.Height),
		frames:  encode.NewExtractor(cfg.FPS),
		faces:   newFaceCache(cfg.FontPath),
	}
}

func (r *Renderer) Workers() int { return r.workers }

// RenderFrame composites every element visible at global time t into dst.
// The evaluation depends only on t, never on neighboring frames.
func (r *Renderer) RenderFrame(ctx context.Context, m *scene.Master, t float64, dst *image.RGBA) error {
	bg := r.cfg.Background
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.RGBA{bg[0], bg[1], bg[2], 255}), image.Point{}, draw.Src)

	for _, sc := range m.Scenes() {
		if !sc.VisibleAt(t) {
			continue
		}
		local := sc.LocalTime(t)
		for _, el := range sc.Elements() {
			vis, ok := el.(interface{ IsVisibleAt(float64) bool })
			if ok && !vis.IsVisibleAt(local) {
				continue
			}
			if err := r.drawElement(ctx, dst, el, local); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) drawElement(ctx context.Context, dst *image.RGBA, el scene.Element, local float64) error {
	switch v := el.(type) {
	case *element.Text:
		props := v.EffectiveProperties(local)
		bitmap := r.drawText(v, props.Color)
		if bitmap != nil {
			r.composite(dst, bitmap, props, v.AnchorX(), v.AnchorY())
		}
	case *element.Image:
		bitmap, err := v.Bitmap()
		if err != nil {
			// Localized failure: the element stays on the timeline but
			// cannot rasterize.
			log.Printf("[!] Skipping image %s: %v", v.Path(), err)
			return nil
		}
		props := v.EffectiveProperties(local)
		r.composite(dst, bitmap, props, v.AnchorX(), v.AnchorY())
	case *element.QR:
		bitmap, err := v.Bitmap()
		if err != nil {
			log.Printf("[!] Skipping QR element: %v", err)
			return nil
		}
		props := v.EffectiveProperties(local)
		r.composite(dst, bitmap, props, v.AnchorX(), v.AnchorY())
	case *element.Video:
		mediaTime := v.MediaTimeAt(local - v.StartTime())
		frame, err := r.frames.FrameAt(ctx, v.Path(), mediaTime)
		if err != nil {
			log.Printf("[!] Skipping video frame %s: %v", v.Path(), err)
			return nil
		}
		props := v.EffectiveProperties(local)
		r.composite(dst, frame, props, v.AnchorX(), v.AnchorY())
	case *element.Audio:
		// No visual output; the muxer picks it up after the render.
	}
	return nil
}

// composite places src onto dst with the element's effective transform:
// scale and rotation about the anchor, translation to (X, Y), uniform alpha
// and an optional rounded-corner mask.
func (r *Renderer) composite(dst *image.RGBA, src image.Image, props element.Props, anchorX, anchorY float64) {
	if props.Scale <= 0 || props.Alpha <= 0 {
		return
	}

	sb := src.Bounds()
	sw, sh := float64(sb.Dx()), float64(sb.Dy())
	if sw == 0 || sh == 0 {
		return
	}

	s := props.Scale
	theta := props.Rotation * math.Pi / 180
	sin, cos := math.Sincos(theta)

	// dst = T(x,y) · R(theta) · S(s) · T(-anchor) applied to src points.
	a, b := s*cos, -s*sin
	c, d := s*sin, s*cos
	ax, ay := anchorX*sw, anchorY*sh
	m := f64.Aff3{
		a, b, props.X - (a*ax + b*ay),
		c, d, props.Y - (c*ax + d*ay),
	}

	opts := &xdraw.Options{
		SrcMask: srcMask(sb, props.CornerRadius, uint8(props.Alpha+0.5)),
	}
	xdraw.BiLinear.Transform(dst, m, src, sb, xdraw.Over, opts)
}

// srcMask builds the source-space coverage mask: uniform alpha, or a rounded
// rectangle scaled by the same alpha when a corner radius applies.
func srcMask(sb image.Rectangle, radius float64, alpha uint8) image.Image {
	if radius <= 0 {
		if alpha == 255 {
			return nil
		}
		return image.NewUniform(color.Alpha{alpha})
	}

	w, h := sb.Dx(), sb.Dy()
	if r := float64(min(w, h)) / 2; radius > r {
		radius = r
	}

	mask := image.NewAlpha(sb)
	fa := float64(alpha)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cov := roundedRectCoverage(float64(x)+0.5, float64(y)+0.5, float64(w), float64(h), radius)
			mask.SetAlpha(sb.Min.X+x, sb.Min.Y+y, color.Alpha{uint8(cov*fa + 0.5)})
		}
	}
	return mask
}

// roundedRectCoverage returns 0..1 coverage of the point inside a rounded
// rectangle of size w x h with the given corner radius.
func roundedRectCoverage(x, y, w, h, radius float64) float64 {
	// Distance from the nearest corner circle center, only inside corner
	// squares.
	cx := clampF(x, radius, w-radius)
	cy := clampF(y, radius, h-radius)
	dx, dy := x-cx, y-cy
	dist := math.Hypot(dx, dy)
	// One-pixel feather at the edge.
	cov := radius - dist + 0.5
	if cov >= 1 {
		return 1
	}
	if cov <= 0 {
		return 0
	}
	return cov
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
