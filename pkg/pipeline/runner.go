package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/cache"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/observability"
	"github.com/matzehuels/treemap/pkg/scene"
	"github.com/matzehuels/treemap/pkg/tree"
)

// Cache access is retried this often on transient backend failures.
const (
	cacheAttempts = 3
	cacheDelay    = 50 * time.Millisecond
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	t, err := Load(ctx, opts.DataPath)
	if err != nil {
		return nil, err
	}
	result.Tree = t
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = t.Len()
	if result.DataHash, err = DataHash(t); err != nil {
		return nil, err
	}

	r.Logger.Info("loaded data",
		"nodes", t.Len(),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	l, layoutHit, err := r.GenerateLayoutWithCacheInfo(ctx, t, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.CellCount = len(l.Cells)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"cells", len(l.Cells),
		"view_root", l.ViewRoot,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateLayoutWithCacheInfo lays t out with caching and reports whether
// the layout came from the cache.
func (r *Runner) GenerateLayoutWithCacheInfo(ctx context.Context, t *tree.Tree, opts Options) (scene.Layout, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return scene.Layout{}, false, err
	}

	dataHash, err := DataHash(t)
	if err != nil {
		return scene.Layout{}, false, err
	}
	keyOpts, err := opts.LayoutKeyOpts()
	if err != nil {
		return scene.Layout{}, false, err
	}
	key := r.Keyer.LayoutKey(dataHash, keyOpts)

	if !opts.Refresh {
		if data, hit := r.get(ctx, key, "layout"); hit {
			if cached, err := scene.UnmarshalLayout(data); err == nil {
				return cached, true, nil
			}
			// Unreadable entries are recomputed and overwritten.
		}
	}

	hooks := observability.Pipeline()
	action := opts.Action().String()
	hooks.OnLayoutStart(ctx, action, t.Len())
	start := time.Now()
	l, err := GenerateLayout(t, opts)
	hooks.OnLayoutComplete(ctx, action, len(l.Cells), time.Since(start), err)
	if err != nil {
		return scene.Layout{}, false, err
	}

	if data, err := scene.MarshalLayout(l); err == nil {
		r.set(ctx, key, "layout", data, cache.LayoutTTL)
	}
	return l, false, nil
}

// GenerateLayout calls GenerateLayoutWithCacheInfo and discards the cache
// hit info.
func (r *Runner) GenerateLayout(ctx context.Context, t *tree.Tree, opts Options) (scene.Layout, error) {
	l, _, err := r.GenerateLayoutWithCacheInfo(ctx, t, opts)
	return l, err
}

// RenderWithCacheInfo renders l with caching and reports whether every
// artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l scene.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := scene.MarshalLayout(l)
	if err != nil {
		return nil, false, err
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh {
			if data, hit := r.get(ctx, key, "artifact"); hit {
				artifacts[format] = data
				continue
			}
		}
		missing = append(missing, format)
	}
	if len(missing) == 0 {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, missing)
	start := time.Now()
	renderOpts := opts
	renderOpts.Formats = missing
	rendered, err := Render(ctx, l, renderOpts)
	hooks.OnRenderComplete(ctx, missing, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		r.set(ctx, key, "artifact", data, cache.ArtifactTTL)
		artifacts[format] = data
	}
	return artifacts, false, nil
}

// Render calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l scene.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// get reads key, treating backend failures as misses.
func (r *Runner) get(ctx context.Context, key, kind string) ([]byte, bool) {
	var (
		data []byte
		hit  bool
	)
	err := cache.Retry(ctx, cacheAttempts, cacheDelay, func() error {
		var err error
		data, hit, err = r.Cache.Get(ctx, key)
		return err
	})
	if err != nil {
		r.Logger.Warn("cache read failed", "kind", kind, "err", err)
		return nil, false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, kind)
	} else {
		observability.Cache().OnCacheMiss(ctx, kind)
	}
	return data, hit
}

// set writes key. Failures are logged; a result that cannot be cached is
// still returned to the caller.
func (r *Runner) set(ctx context.Context, key, kind string, data []byte, ttl time.Duration) {
	err := cache.Retry(ctx, cacheAttempts, cacheDelay, func() error {
		return r.Cache.Set(ctx, key, data, ttl)
	})
	if err != nil {
		r.Logger.Warn("cache write failed", "kind", kind, "err", errors.UserMessage(err))
		return
	}
	observability.Cache().OnCacheSet(ctx, kind, len(data))
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
