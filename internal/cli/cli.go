// Package cli implements the graphwalk command-line interface.
package cli

import (
	"bytes"
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphwalk/pkg/actions"
	"github.com/matzehuels/graphwalk/pkg/animate"
	"github.com/matzehuels/graphwalk/pkg/buildinfo"
	"github.com/matzehuels/graphwalk/pkg/cache"
	"github.com/matzehuels/graphwalk/pkg/config"
	"github.com/matzehuels/graphwalk/pkg/graph"
	"github.com/matzehuels/graphwalk/pkg/httputil"
	"github.com/matzehuels/graphwalk/pkg/render"
	"github.com/matzehuels/graphwalk/pkg/render/nodelink"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "graphwalk"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	defaults := config.Default()

	root := &cobra.Command{
		Use:   appName,
		Short: "Graphwalk analyzes and animates the karate club graph",
		Long: `Graphwalk runs traversals, greedy coloring, cycle detection and maximum
clique search over Zachary's karate club graph (or any node-link JSON graph)
and renders the results, animating traversals step by step.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default ./graphwalk.toml)")
	pf.String("graph", "", "node-link JSON graph file or URL (default: karate club)")
	pf.Int("start", defaults.Start, "traversal start node")
	pf.Duration("interval", defaults.Interval, "delay between animation frames")
	pf.String("engine", defaults.Render.Engine, "Graphviz layout engine for SVG output")
	pf.Int("seed", defaults.Render.Seed, "layout seed, keeps node positions stable")
	pf.Bool("no-cache", false, "render every frame with Graphviz, bypassing the frame cache")

	root.AddCommand(c.bfsCommand())
	root.AddCommand(c.dfsCommand())
	root.AddCommand(c.colorCommand())
	root.AddCommand(c.cycleCommand())
	root.AddCommand(c.cliqueCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

func (c *CLI) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	c.cfg = cfg
	if cfg.Source != "" {
		c.Logger.Debug("loaded config", "file", cfg.Source)
	}
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// settings returns the loaded configuration, or the defaults before loading.
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

func (c *CLI) layout() nodelink.Options {
	cfg := c.settings()
	return nodelink.Options{Engine: cfg.Render.Engine, Seed: cfg.Render.Seed}
}

// renderer returns a Graphviz renderer backed by the frame cache. A cache
// that cannot be opened is logged and skipped.
func (c *CLI) renderer() *nodelink.Renderer {
	cfg := c.settings()
	if cfg.Cache.Disabled {
		return nodelink.NewRenderer(nil, c.Logger)
	}
	fc, err := c.openCache()
	if err != nil {
		c.Logger.Warn("frame cache disabled", "err", err)
		return nodelink.NewRenderer(nil, c.Logger)
	}
	return nodelink.NewRenderer(fc, c.Logger)
}

func (c *CLI) openCache() (*cache.FileCache, error) {
	cfg := c.settings()
	dir, err := cfg.CacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir, cfg.Cache.MaxAge)
}

// =============================================================================
// Session Factory
// =============================================================================

// loadGraph returns the configured graph, defaulting to the karate club.
// The graph setting may be a file path or an http(s) URL.
func (c *CLI) loadGraph(ctx context.Context) (*graph.Graph, error) {
	loc := c.settings().Graph
	switch {
	case loc == "":
		g := graph.KarateClub()
		c.Logger.Info(g.String())
		return g, nil

	case httputil.IsURL(loc):
		data, err := httputil.Fetch(ctx, nil, loc)
		if err != nil {
			return nil, err
		}
		g, err := graph.ReadGraph(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		c.Logger.Info(g.String(), "url", loc)
		return g, nil
	}

	g, err := graph.ReadGraphFile(loc)
	if err != nil {
		return nil, err
	}
	c.Logger.Info(g.String(), "file", loc)
	return g, nil
}

// newRunner wires a controller drawing into d and an action runner for g.
func (c *CLI) newRunner(g *graph.Graph, d render.Drawer, logger *log.Logger) *actions.Runner {
	cfg := c.settings()
	if logger == nil {
		logger = c.Logger
	}
	ctrl := render.NewController(g,
		render.WithPalette(cfg.RenderPalette()),
		render.WithDrawer(d),
		render.WithScheduler(animate.NewScheduler(cfg.Interval, logger)),
		render.WithLogger(logger),
	)
	return actions.NewRunner(ctrl, actions.WithStart(cfg.Start), actions.WithLogger(logger))
}
