package render

import (
	"context"
	"image"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/vidcomp/internal/scene"
)

type frameResult struct {
	index int
	img   *image.RGBA
}

// Render walks every frame of the master timeline and delivers the rendered
// frames to the sink in index order. Frames are sampled concurrently: frame
// evaluation is a pure function of time, so workers may compute them out of
// order and only delivery is serialized.
//
// The scene graph must be fully assembled before this is called; no Add may
// run concurrently with a render.
func (r *Renderer) Render(ctx context.Context, m *scene.Master, sink FrameSink) error {
	total := m.FrameCount()
	if total == 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	results := make(chan frameResult, r.workers)

	go func() {
		for i := 0; i < total; i++ {
			g.Go(func() error {
				img := r.pool.Get()
				if err := r.RenderFrame(gctx, m, m.TimeAt(i), img); err != nil {
					r.pool.Put(img)
					return err
				}
				select {
				case results <- frameResult{index: i, img: img}:
					return nil
				case <-gctx.Done():
					r.pool.Put(img)
					return gctx.Err()
				}
			})
		}
		g.Wait()
		close(results)
	}()

	logEvery := r.cfg.FPS * 5
	if logEvery <= 0 {
		logEvery = 150
	}

	pending := make(map[int]*image.RGBA)
	next := 0
	var sinkErr error
	for res := range results {
		if sinkErr != nil {
			r.pool.Put(res.img)
			continue
		}
		pending[res.index] = res.img
		for {
			img, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			err := sink.WriteFrame(img)
			r.pool.Put(img)
			if err != nil {
				sinkErr = err
				cancel()
				break
			}
			next++
			if next%logEvery == 0 {
				log.Printf("[>] Frame %d/%d", next, total)
			}
		}
	}
	for _, img := range pending {
		r.pool.Put(img)
	}

	if err := g.Wait(); err != nil && sinkErr == nil {
		return err
	}
	return sinkErr
}
