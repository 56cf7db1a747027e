package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphwalk/pkg/config"
	"github.com/matzehuels/graphwalk/pkg/observability/prom"
	"github.com/matzehuels/graphwalk/pkg/pubsub"
	"github.com/matzehuels/graphwalk/pkg/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve actions and live frames over HTTP",
		Long: `Serve the graph over HTTP.

Actions are triggered with POST /api/actions/{bfs,dfs,coloring,cycle,clique,clear};
every composed frame is streamed as server-sent events on
GET /api/subscribe/frames. GET /api/frame.svg renders the current frame and
GET /metrics exposes Prometheus metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			g, err := c.loadGraph(ctx)
			if err != nil {
				return err
			}

			prom.Install()

			pub := pubsub.NewSSEPublisher(c.Logger.WithPrefix("sse"))
			runner := c.newRunner(g, server.FrameDrawer(pub), nil)
			srv := server.New(runner, pub,
				server.WithLogger(c.Logger.WithPrefix("http")),
				server.WithLayout(c.layout()),
				server.WithRenderer(c.renderer()),
			)

			addr := c.settings().Server.Addr
			printSuccess(cmd.OutOrStdout(), "Serving %s on %s", runner.Summary(), addr)
			printNextStep(cmd.OutOrStdout(), "Start a traversal", "curl -X POST "+baseURL(addr)+"/api/actions/bfs")
			return srv.Run(ctx, addr)
		},
	}

	cmd.Flags().String("addr", config.DefaultAddr, "listen address")
	return cmd
}

// baseURL turns a listen address into a URL for display.
func baseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
