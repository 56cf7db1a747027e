package nodelink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/graphwalk/pkg/graph"
	"github.com/matzehuels/graphwalk/pkg/render"
)

// FileSink is a [render.Drawer] that writes every frame as an SVG file
// named frame-NNN.svg into Dir.
type FileSink struct {
	Dir     string
	Graph   *graph.Graph
	Options Options

	// Renderer renders frames, possibly from cache. Nil renders directly.
	Renderer *Renderer

	// Context bounds Graphviz rendering. Defaults to context.Background.
	Context context.Context
}

// NewFileSink creates dir if needed and returns a sink writing into it.
func NewFileSink(ctx context.Context, dir string, g *graph.Graph, opts Options, r *Renderer) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	return &FileSink{Dir: dir, Graph: g, Options: opts, Renderer: r, Context: ctx}, nil
}

// Path returns the file a frame is written to.
func (s *FileSink) Path(f render.Frame) string {
	return filepath.Join(s.Dir, fmt.Sprintf("frame-%03d.svg", f.Seq))
}

// Draw renders f and writes it to [FileSink.Path].
func (s *FileSink) Draw(f render.Frame) error {
	ctx := s.Context
	if ctx == nil {
		ctx = context.Background()
	}
	svg, err := s.Renderer.SVG(ctx, ToDOT(s.Graph, f, s.Options))
	if err != nil {
		return fmt.Errorf("frame %d: %w", f.Seq, err)
	}
	return os.WriteFile(s.Path(f), svg, 0o644)
}

// WriteSVG renders a single frame to path.
func (r *Renderer) WriteSVG(ctx context.Context, path string, g *graph.Graph, f render.Frame, opts Options) error {
	svg, err := r.SVG(ctx, ToDOT(g, f, opts))
	if err != nil {
		return err
	}
	return os.WriteFile(path, svg, 0o644)
}
