package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/pkg/pipeline"
	"github.com/matzehuels/treemap/pkg/scene"
)

// layoutCommand creates the layout command for computing layouts only.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		series  seriesFlags
		output  string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [data.json]",
		Short: "Compute a treemap layout",
		Long: `Compute a treemap layout.

The layout command lays out a JSON hierarchy and writes the result as a
layout.json file (same format as 'render -f json'). The layout holds every
cell rectangle and the breadcrumb trail, and can be rendered to SVG or PNG
with the 'visualize' command.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := series.load(cmd)
			if err != nil {
				return err
			}
			opts.Series = s
			opts.DataPath = args[0]
			return c.runLayout(cmd.Context(), opts, output, noCache)
		},
	}

	series.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&opts.Root, "root", "", "drill into this node id")
	cmd.Flags().StringVar(&opts.Zoom, "zoom", "", "zoom in on this node id")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	t, err := pipeline.Load(ctx, opts.DataPath)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()

	l, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, t, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(opts.DataPath, filepath.Ext(opts.DataPath)) + ".layout.json"
	}
	if err := scene.WriteLayoutFile(l, outputPath); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printDetail("view root %s (%s)", l.ViewRoot, l.Action)
	printStats(t.Len(), len(l.Cells), cacheHit)
	printNewline()
	printNextStep("Render", appName+" visualize "+outputPath)
	return nil
}
