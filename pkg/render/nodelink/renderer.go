package nodelink

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphwalk/pkg/cache"
)

// Renderer renders DOT through a [cache.Cache]. A nil *Renderer renders
// without caching.
type Renderer struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRenderer returns a renderer backed by c. A nil c disables caching.
func NewRenderer(c cache.Cache, logger *log.Logger) *Renderer {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Renderer{cache: c, logger: logger}
}

// SVG renders dot to SVG.
func (r *Renderer) SVG(ctx context.Context, dot string) ([]byte, error) {
	return r.render(ctx, "svg", dot, RenderSVG)
}

// PNG renders dot to PNG.
func (r *Renderer) PNG(ctx context.Context, dot string) ([]byte, error) {
	return r.render(ctx, "png", dot, RenderPNG)
}

func (r *Renderer) render(ctx context.Context, kind, dot string, fn func(context.Context, string) ([]byte, error)) ([]byte, error) {
	if r == nil {
		return fn(ctx, dot)
	}

	// Cache failures fall back to rendering.
	key := cache.Key(kind, []byte(dot))
	data, ok, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("cache read failed", "key", key, "err", err)
	}
	if ok {
		r.logger.Debug("cache hit", "kind", kind)
		return data, nil
	}

	data, err = fn(ctx, dot)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, key, data); err != nil {
		r.logger.Warn("cache write failed", "key", key, "err", err)
	}
	return data, nil
}
