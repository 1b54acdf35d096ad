// Package treemap lays out hierarchical values as nested rectangles whose
// areas are proportional to the values, with drill-down navigation.
//
// # Overview
//
// A [Chart] owns a tree, its series options and the current view root. Each
// action runs one layout pass and returns a [Result]; per-node rectangles are
// read back from the tree with Node.Layout.
//
//	t, _ := io.ImportJSON("disk.json")
//	c := treemap.New(t, config.Default())
//	c.Render(nil)
//	c.RootToNode("src")   // drill into src
//	c.RootToNode(t.Root)  // and back out
//
// # Actions
//
//   - [Chart.Render]: full layout from the current state.
//   - [Chart.Move]: pan without re-layout.
//   - [Chart.ZoomToNode]: enlarge the view so a node fills part of the container.
//   - [Chart.RootToNode]: make a node the view root.
//
// Unknown targets are ignored and leave the chart unchanged.
//
// # Subpackages
//
//   - [layout]: squarified allocation, pruning and root size estimation.
//   - [drill]: view root tracking and transition direction.
//   - [breadcrumb]: the navigation trail from the root to a node.
//   - [styles]: palette and drawing attributes.
//   - [sink]: SVG, PNG and JSON output of a scene.
//
// [layout]: github.com/matzehuels/treemap/pkg/render/treemap/layout
// [drill]: github.com/matzehuels/treemap/pkg/render/treemap/drill
// [breadcrumb]: github.com/matzehuels/treemap/pkg/render/treemap/breadcrumb
// [styles]: github.com/matzehuels/treemap/pkg/render/treemap/styles
// [sink]: github.com/matzehuels/treemap/pkg/render/treemap/sink
package treemap
