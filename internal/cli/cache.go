package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered frame cache",
		Long: `SVG and PNG frames are cached by the DOT source that produced them, so
replaying a traversal only runs Graphviz once per distinct frame.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached frames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.openCache()
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}

			count, err := fc.Clear()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if count == 0 {
				printInfo(out, "Cache is empty")
				return nil
			}
			printSuccess(out, "Cleared %d cached frames", count)
			printDetail(out, "Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	var stats bool
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.settings().CacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			if !stats {
				return nil
			}

			fc, err := c.openCache()
			if err != nil {
				return err
			}
			n, size, err := fc.Stats()
			if err != nil {
				return err
			}
			printDetail(cmd.OutOrStdout(), "%d entries, %s", n, formatBytes(size))
			return nil
		},
	}
	cmd.Flags().BoolVar(&stats, "stats", false, "also print entry count and size")
	return cmd
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
