package layout

import (
	"math"
	"strings"
)

// SortOrder controls how siblings are ordered before row building.
type SortOrder uint8

const (
	// SortNone keeps data order and disables visibleMin filtering.
	SortNone SortOrder = iota
	SortDesc
	SortAsc
)

func (s SortOrder) String() string {
	switch s {
	case SortDesc:
		return "desc"
	case SortAsc:
		return "asc"
	default:
		return "none"
	}
}

// ParseSort maps a configured sort value to a SortOrder. Any value other
// than "asc" or "none"/"" falls back to descending, matching a boolean true.
func ParseSort(s string) SortOrder {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "false":
		return SortNone
	case "asc":
		return SortAsc
	default:
		return SortDesc
	}
}

// GoldenRatio is the default squareRatio.
var GoldenRatio = 0.5 * (1 + math.Sqrt(5))

// DefaultZoomToNodeRatio is the share of the container a zoom target covers.
const DefaultZoomToNodeRatio = 0.32 * 0.32

// Options are the series-wide knobs of a layout pass. They are passed by
// value and never mutated by the engine.
type Options struct {
	Sort        SortOrder
	SquareRatio float64
	// LeafDepth collapses nodes at this depth below the view root into
	// drillable leaves. Nil disables it.
	LeafDepth *int
	// ZoomToNodeRatio is the container share a zoom target is scaled to.
	ZoomToNodeRatio float64
}

// DefaultOptions returns descending order, golden squareRatio and the
// default zoom ratio.
func DefaultOptions() Options {
	return Options{
		Sort:            SortDesc,
		SquareRatio:     GoldenRatio,
		ZoomToNodeRatio: DefaultZoomToNodeRatio,
	}
}

func (o Options) squareRatio() float64 {
	if !(o.SquareRatio > 0) || math.IsInf(o.SquareRatio, 0) {
		return GoldenRatio
	}
	return o.SquareRatio
}

func (o Options) zoomRatio() float64 {
	if !(o.ZoomToNodeRatio > 0) || math.IsInf(o.ZoomToNodeRatio, 0) {
		return DefaultZoomToNodeRatio
	}
	return o.ZoomToNodeRatio
}

func (o Options) overLeafDepth(depth int) bool {
	return o.LeafDepth != nil && *o.LeafDepth <= depth
}
