// Package render groups the chart renderers.
//
// # Treemap
//
// The [treemap] subpackage is the layout engine: a chart owns a tree and a
// view root, and each action lays the view out inside the container.
//
// Key treemap subpackages:
//   - [treemap/layout]: squarified allocation, pruning and size estimation
//   - [treemap/drill]: view root tracking
//   - [treemap/breadcrumb]: navigation trail and chip geometry
//   - [treemap/sink]: output formats (SVG, PNG, JSON)
//   - [treemap/styles]: palette and label fitting
//
// Renderers read a [scene.Layout], never the live chart, so a layout can be
// computed once and rendered to several formats concurrently.
//
//	l := scene.FromChart(c, c.Render(nil), nil)
//	svg := sink.RenderSVG(l)
//	png, err := sink.RenderPNG(l, sink.WithScale(2))
//
// [treemap]: github.com/matzehuels/treemap/pkg/render/treemap
// [treemap/layout]: github.com/matzehuels/treemap/pkg/render/treemap/layout
// [treemap/drill]: github.com/matzehuels/treemap/pkg/render/treemap/drill
// [treemap/breadcrumb]: github.com/matzehuels/treemap/pkg/render/treemap/breadcrumb
// [treemap/sink]: github.com/matzehuels/treemap/pkg/render/treemap/sink
// [treemap/styles]: github.com/matzehuels/treemap/pkg/render/treemap/styles
// [scene.Layout]: github.com/matzehuels/treemap/pkg/scene#Layout
package render
