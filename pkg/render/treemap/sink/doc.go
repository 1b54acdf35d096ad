// Package sink writes a [scene.Layout] to output formats.
//
//   - [RenderSVG]: vector output with clickable links, via svgo.
//   - [RenderPNG]: raster output drawn with gg and the basicfont face.
//   - [RenderJSON]: the layout itself, for caching and external tools.
//
// Cells that are invisible, out of the drill scope or stacked above the
// view root are skipped. The breadcrumb row is drawn below the container
// as chevron chips.
//
// [scene.Layout]: github.com/matzehuels/treemap/pkg/scene.Layout
package sink
