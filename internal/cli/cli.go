// Package cli implements the treemap command-line interface.
//
// # Commands
//
// The main commands are:
//   - render: Lay out a JSON hierarchy and write SVG, PNG or JSON output
//   - layout: Compute a layout and write it as layout.json
//   - visualize: Render a previously computed layout.json
//   - explore: Browse a hierarchy interactively in the terminal
//   - config: Create and inspect the series options file
//   - cache: Manage the layout and artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports pipeline and cache events.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/pkg/buildinfo"
	"github.com/matzehuels/treemap/pkg/cache"
	"github.com/matzehuels/treemap/pkg/config"
	"github.com/matzehuels/treemap/pkg/observability"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

const appName = "treemap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// envRedisAddr selects the Redis cache backend when set.
const envRedisAddr = "TREEMAP_REDIS_ADDR"

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level pipeline and
// cache events are logged too.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Treemap lays out hierarchical data as nested rectangles",
		Long:         `Treemap is a CLI tool for laying out weighted hierarchies as squarified treemaps, with drill-down, zoom and breadcrumb navigation.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// newCache picks the cache backend: none with --no-cache, Redis when
// TREEMAP_REDIS_ADDR is set, and files under the XDG cache dir otherwise.
// An unreachable Redis falls back to the file cache.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if addr := strings.TrimSpace(os.Getenv(envRedisAddr)); addr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: addr, Prefix: appName + ":"})
		if err == nil {
			return rc, nil
		}
		c.Logger.Warn("redis cache unavailable, using file cache", "addr", addr, "err", err)
	}
	dir, err := config.CacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Options Helpers
// =============================================================================

// seriesFlags are the layout options every command accepts on top of the
// config file.
type seriesFlags struct {
	config    string
	width     float64
	height    float64
	sort      string
	ratio     float64
	leafDepth int
}

func (f *seriesFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "series options file (TOML or YAML; default: "+config.ConfigPath()+" if present)")
	cmd.Flags().Float64Var(&f.width, "width", 0, "container width")
	cmd.Flags().Float64Var(&f.height, "height", 0, "container height")
	cmd.Flags().StringVar(&f.sort, "sort", "", "child order: desc, asc, none")
	cmd.Flags().Float64Var(&f.ratio, "square-ratio", 0, "target aspect ratio of cells")
	cmd.Flags().IntVar(&f.leafDepth, "leaf-depth", 0, "levels shown below the view root (0: all)")
}

// load reads the series options and applies flag overrides.
func (f *seriesFlags) load(cmd *cobra.Command) (config.Series, error) {
	var (
		s   config.Series
		err error
	)
	if f.config != "" {
		s, err = config.Load(f.config)
	} else {
		s, err = config.LoadDefault()
	}
	if err != nil {
		return s, err
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		s.Width = f.width
	}
	if flags.Changed("height") {
		s.Height = f.height
	}
	if flags.Changed("sort") {
		s.Sort = f.sort
	}
	if flags.Changed("square-ratio") {
		s.SquareRatio = f.ratio
	}
	if flags.Changed("leaf-depth") {
		if f.leafDepth > 0 {
			depth := f.leafDepth
			s.LeafDepth = &depth
		} else {
			s.LeafDepth = nil
		}
	}
	return s, s.Validate()
}
