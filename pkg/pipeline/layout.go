package pipeline

import (
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/render/treemap"
	"github.com/matzehuels/treemap/pkg/scene"
	"github.com/matzehuels/treemap/pkg/tree"
)

// GenerateLayout lays t out with the series options and snapshots the
// result. A Root target is drilled into first, then a Zoom target is
// zoomed to.
func GenerateLayout(t *tree.Tree, opts Options) (scene.Layout, error) {
	if t == nil {
		return scene.Layout{}, errors.New(errors.ErrCodeInvalidInput, "no tree to lay out")
	}
	chart := treemap.New(t, opts.Series, treemap.WithLogger(opts.Logger))
	res := chart.Render(nil)

	if opts.Root != "" {
		r, ok := chart.RootToNode(opts.Root)
		if !ok {
			return scene.Layout{}, errors.New(errors.ErrCodeNodeNotFound, "root node %q not found", opts.Root)
		}
		res = r
	}
	if opts.Zoom != "" {
		r, ok := chart.ZoomToNode(opts.Zoom)
		if !ok {
			return scene.Layout{}, errors.New(errors.ErrCodeNodeNotFound, "zoom node %q not found", opts.Zoom)
		}
		res = r
	}
	return scene.FromChart(chart, res, nil), nil
}
