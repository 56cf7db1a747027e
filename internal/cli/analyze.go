package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphwalk/pkg/actions"
	"github.com/matzehuels/graphwalk/pkg/graph"
	"github.com/matzehuels/graphwalk/pkg/render"
	"github.com/matzehuels/graphwalk/pkg/render/nodelink"
)

func (c *CLI) colorCommand() *cobra.Command {
	var svg string

	cmd := &cobra.Command{
		Use:     "color",
		Aliases: []string{"coloring"},
		Short:   "Greedy graph coloring",
		Long: `Color the graph greedily: nodes are visited in ascending order and each
gets the smallest color not used by an already colored neighbor.

Prints the color of every node and a table of color classes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStatic(cmd, svg, func(ctx context.Context, r *actions.Runner) (actions.Report, error) {
				return r.RunColoring(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&svg, "svg", "", "write the colored graph as SVG")
	return cmd
}

func (c *CLI) cycleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cycle",
		Short: "Check whether the graph contains a cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStatic(cmd, "", func(ctx context.Context, r *actions.Runner) (actions.Report, error) {
				return r.CheckCycle(ctx)
			})
		},
	}
	return cmd
}

func (c *CLI) cliqueCommand() *cobra.Command {
	var svg string

	cmd := &cobra.Command{
		Use:   "clique",
		Short: "Find and highlight a maximum clique",
		Long: `Find a maximum clique with Bron-Kerbosch enumeration. Ties between
cliques of equal size go to the lexicographically smallest member list.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStatic(cmd, svg, func(ctx context.Context, r *actions.Runner) (actions.Report, error) {
				return r.CheckClique(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&svg, "svg", "", "write the highlighted graph as SVG")
	return cmd
}

type staticAction func(context.Context, *actions.Runner) (actions.Report, error)

// runStatic runs an action that composes a single frame, prints its report
// and optionally renders the frame to svgPath.
func (c *CLI) runStatic(cmd *cobra.Command, svgPath string, action staticAction) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	g, err := c.loadGraph(ctx)
	if err != nil {
		return err
	}
	runner := c.newRunner(g, render.Discard, nil)

	rep, err := action(ctx, runner)
	printReport(out, rep)
	if err != nil {
		return err
	}

	switch r := rep.(type) {
	case actions.ColoringReport:
		if len(r.Assignment) > 0 {
			fmt.Fprintln(out, coloringTable(r.Assignment, c.settings().RenderPalette()))
		}
	case actions.CycleReport:
		if r.HasCycle {
			printInfo(out, "Witness: %v", r.Cycle)
		}
	}

	if svgPath == "" {
		return nil
	}
	return c.writeFrameSVG(ctx, out, svgPath, g, runner.Controller().Snapshot())
}

func (c *CLI) writeFrameSVG(ctx context.Context, w io.Writer, path string, g *graph.Graph, f render.Frame) error {
	spinner := newSpinner(ctx, w, "Rendering "+path+"...")
	spinner.Start()
	if err := c.renderer().WriteSVG(ctx, path, g, f, c.layout()); err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.StopWithSuccess("Rendered " + f.Title)
	printFile(w, path)
	return nil
}
