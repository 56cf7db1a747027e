package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphwalk/pkg/render"
	"github.com/matzehuels/graphwalk/pkg/render/nodelink"
	"github.com/matzehuels/graphwalk/pkg/traverse"
)

// walkOpts holds the flags shared by bfs and dfs.
type walkOpts struct {
	svgDir string // write one SVG per frame into this directory
	quiet  bool   // print the report only, no frames
}

func (c *CLI) bfsCommand() *cobra.Command {
	return c.walkCommand(traverse.BFS, "Breadth-first traversal, animated step by step")
}

func (c *CLI) dfsCommand() *cobra.Command {
	return c.walkCommand(traverse.DFS, "Depth-first traversal, animated step by step")
}

func (c *CLI) walkCommand(mode traverse.Mode, short string) *cobra.Command {
	var opts walkOpts

	cmd := &cobra.Command{
		Use:   strings.ToLower(string(mode)),
		Short: short,
		Long: fmt.Sprintf(`%s

Visits every node reachable from the start node and plays the visit order as
an animation: the current node is highlighted, visited nodes stay marked, and
a final frame shows the whole traversal.

Frames are printed as colored node strips. With --svg-dir each frame is also
rendered by Graphviz to frame-NNN.svg.`, short),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWalk(cmd, mode, opts)
		},
	}

	cmd.Flags().StringVar(&opts.svgDir, "svg-dir", "", "write each frame as SVG into this directory")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "print the report without frames")

	return cmd
}

func (c *CLI) runWalk(cmd *cobra.Command, mode traverse.Mode, opts walkOpts) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	g, err := c.loadGraph(ctx)
	if err != nil {
		return err
	}

	queue := render.NewQueue(0)
	runner := c.newRunner(g, queue, nil)

	var surfaces []render.Drawer
	if !opts.quiet {
		surfaces = append(surfaces, render.DrawerFunc(func(f render.Frame) error {
			printFrame(out, f)
			return nil
		}))
	}
	var sink *nodelink.FileSink
	if opts.svgDir != "" {
		sink, err = nodelink.NewFileSink(ctx, opts.svgDir, g, c.layout(), c.renderer())
		if err != nil {
			return err
		}
		surfaces = append(surfaces, sink)
	}

	prog := newProgress(c.Logger)
	rep, err := runner.RunTraversal(ctx, mode)
	printReport(out, rep)
	if err != nil {
		return err
	}

	if rep.Session == nil {
		// Nothing to animate, e.g. an empty graph.
		queue.Close()
	} else {
		go func() {
			<-rep.Session.Done()
			queue.Close()
		}()
	}

	frames := 0
	counted := render.DrawerFunc(func(f render.Frame) error {
		frames++
		return render.Tee(surfaces...).Draw(f)
	})
	queue.Run(ctx, counted, func(f render.Frame, err error) {
		c.Logger.Warn("frame not rendered", "seq", f.Seq, "err", err)
	})
	if err := ctx.Err(); err != nil {
		return err
	}

	if sink != nil {
		prog.done(fmt.Sprintf("Wrote %d frames", frames))
		printFile(out, sink.Dir)
	}
	return nil
}
