package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphwalk/pkg/graph"
)

func (c *CLI) graphCommand() *cobra.Command {
	var (
		asJSON bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show the graph or export it as node-link JSON",
		Long: `Show the graph summary and a table of node degrees.

With --json the graph is written as node-link JSON, the format accepted by
--graph:

  graphwalk graph --json -o karate.json
  graphwalk bfs --graph karate.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := c.loadGraph(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if output != "" {
				if err := graph.WriteGraphFile(g, output); err != nil {
					return err
				}
				printSuccess(out, "Exported %s", g.String())
				printFile(out, output)
				printNextStep(out, "Animate it", "graphwalk bfs --graph "+output)
				return nil
			}
			if asJSON {
				return graph.WriteGraph(g, out)
			}

			fmt.Fprintln(out, StyleTitle.Render(g.String()))
			fmt.Fprintln(out, degreeTable(g))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "write node-link JSON to stdout")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write node-link JSON to a file")

	return cmd
}
