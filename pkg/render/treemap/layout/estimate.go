package layout

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/treemap/pkg/tree"
)

// maxSafeArea caps the estimated area at the largest integer a float64
// represents exactly.
const maxSafeArea = 1<<53 - 1

// EstimateRootSize returns the virtual canvas size for laying out the view
// root so that target covers zoomRatio of the width x height container.
//
// Walking from target to the tree root, the area grows at each level by the
// ratio of the siblings' value sum to the current node's value, plus an
// allowance for the parent's border and upper label band (assuming square
// cells). The result never shrinks below the container. A nil target, the
// view root itself, or a zero-valued node on the way up yields the
// container size.
func EstimateRootSize(target, viewRoot *tree.Node, zoomRatio, width, height float64) (float64, float64) {
	if target == nil || target == viewRoot {
		return width, height
	}

	viewArea := width * height
	if !(viewArea > 0) {
		return width, height
	}
	area := viewArea * zoomRatio

	for curr := target; curr.Parent != nil; curr = curr.Parent {
		parent := curr.Parent

		siblings := make([]float64, len(parent.Children))
		for i, c := range parent.Children {
			siblings[i] = c.Value
		}
		sum := floats.Sum(siblings)

		if curr.Value == 0 {
			return width, height
		}
		area *= sum / curr.Value

		style := parent.Style()
		b := style.BorderWidth
		upper := math.Max(b, style.HeaderHeight())
		area += 4*b*b + (3*b+upper)*math.Sqrt(area)

		if area > maxSafeArea {
			area = maxSafeArea
		}
	}

	if area < viewArea {
		area = viewArea
	}
	scale := math.Sqrt(area / viewArea)
	return width * scale, height * scale
}
