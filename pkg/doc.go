// Package pkg provides the core libraries for treemap layout and rendering.
//
// # Overview
//
// Treemap lays out weighted hierarchies as nested rectangles whose areas are
// proportional to their values, and lets a viewer drill into and zoom onto
// any node. The pkg directory is organized into these areas:
//
//  1. [tree] and [io] - The hierarchy model and its JSON format
//  2. [render/treemap] - The layout engine and its chart API
//  3. [scene] - Serializable snapshots of a laid out chart
//  4. [render/treemap/sink] - SVG, PNG and JSON output
//  5. [pipeline] - Orchestration (load → layout → render) with caching
//
// # Architecture
//
// The typical data flow:
//
//	data.json
//	    ↓
//	[io] package (decode, complete values, build the tree)
//	    ↓
//	[render/treemap] package (squarify, drill, prune)
//	    ↓
//	[scene] package (absolute cells + breadcrumb)
//	    ↓
//	SVG/PNG/JSON output
//
// # Quick Start
//
//	t, _ := io.ImportJSON("disk.json")
//	c := treemap.New(t, config.Default())
//	res, _ := c.RootToNode("src")
//	l := scene.FromChart(c, res, nil)
//	svg := sink.RenderSVG(l)
//
// # Supporting Packages
//
// [config] - Series options from TOML or YAML files with XDG paths.
//
// [cache] - Layout and artifact caching with memory, file and Redis backends.
//
// [observability] - Hooks around pipeline stages and cache lookups.
//
// [watcher] - File change notification for live reloading.
//
// [errors] - Coded errors shared by every entry point.
//
// [tree]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/tree
// [io]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/io
// [render/treemap]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/render/treemap
// [render/treemap/sink]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/render/treemap/sink
// [scene]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/scene
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/pipeline
// [config]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/observability
// [watcher]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/watcher
// [errors]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/errors
package pkg
