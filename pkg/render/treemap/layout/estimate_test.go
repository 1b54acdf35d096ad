package layout

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/matzehuels/treemap/pkg/tree"
)

// twoLevel builds root -> [p, q] -> p: [target, sibling] where each level's
// sibling sum is factor times the node on the path.
func twoLevel(t *testing.T, factor float64) (*tree.Tree, *tree.Node) {
	t.Helper()
	rest := factor - 1
	tr := mustBuild(t, []tree.Item{
		{ID: "p", Children: []tree.Item{
			{ID: "target", Value: val(1)},
			{ID: "sibling", Value: val(rest)},
		}},
		{ID: "q", Value: val(factor * rest)},
	})
	return tr, tr.NodeByID("target")
}

func TestEstimateRootSize(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
		ratio  float64
		wantW  float64
		wantH  float64
	}{
		// 120000 * 0.5 * 2 * 2 = 240000: scale sqrt(2).
		{"doubling", 2, 0.5, 400 * math.Sqrt2, 300 * math.Sqrt2},
		// 120000 * 0.5 * 3 * 3 = 540000: scale sqrt(4.5).
		{"tripling", 3, 0.5, 400 * math.Sqrt(4.5), 300 * math.Sqrt(4.5)},
		// 120000 * 0.25 * 4 * 4 = 480000: scale 2.
		{"quadrupling", 4, 0.25, 800, 600},
		// 120000 * 0.01 * 4 = 4800: floored at the container.
		{"floored", 2, 0.01, 400, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, target := twoLevel(t, tt.factor)
			w, h := EstimateRootSize(target, tr.Root, tt.ratio, 400, 300)
			if !scalar.EqualWithinAbs(w, tt.wantW, 1e-9) || !scalar.EqualWithinAbs(h, tt.wantH, 1e-9) {
				t.Errorf("EstimateRootSize() = %vx%v, want %vx%v", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestEstimateRootSizeDefaults(t *testing.T) {
	tr, target := twoLevel(t, 4)

	if w, h := EstimateRootSize(nil, tr.Root, 0.25, 400, 300); w != 400 || h != 300 {
		t.Errorf("nil target = %vx%v", w, h)
	}
	if w, h := EstimateRootSize(tr.Root, tr.Root, 0.25, 400, 300); w != 400 || h != 300 {
		t.Errorf("target is view root = %vx%v", w, h)
	}

	target.Value = 0
	if w, h := EstimateRootSize(target, tr.Root, 0.25, 400, 300); w != 400 || h != 300 {
		t.Errorf("zero-valued target = %vx%v", w, h)
	}
}

func TestEstimateRootSizeBorder(t *testing.T) {
	tr, target := twoLevel(t, 4)
	plainW, _ := EstimateRootSize(target, tr.Root, 0.25, 400, 300)

	tr.Base = tree.Style{BorderWidth: 2}
	w, h := EstimateRootSize(target, tr.Root, 0.25, 400, 300)

	// Per level: area*16 then += 4b² + 4b*sqrt(area) with b = 2.
	area := 120000 * 0.25
	for i := 0; i < 2; i++ {
		area *= 4
		area += 16 + 8*math.Sqrt(area)
	}
	scale := math.Sqrt(area / 120000)
	if !scalar.EqualWithinRel(w, 400*scale, 1e-12) || !scalar.EqualWithinRel(h, 300*scale, 1e-12) {
		t.Errorf("with border = %vx%v, want %vx%v", w, h, 400*scale, 300*scale)
	}
	if w <= plainW {
		t.Errorf("border should inflate the estimate: %v <= %v", w, plainW)
	}
}

func TestEstimateRootSizeClamped(t *testing.T) {
	tr := mustBuild(t, []tree.Item{
		{ID: "tiny", Value: val(1e-300)},
		{ID: "huge", Value: val(1e300)},
	})
	w, h := EstimateRootSize(tr.NodeByID("tiny"), tr.Root, 1, 400, 300)
	want := math.Sqrt(maxSafeArea / 120000.0)
	if !scalar.EqualWithinRel(w, 400*want, 1e-12) || !scalar.EqualWithinRel(h, 300*want, 1e-12) {
		t.Errorf("clamped = %vx%v, want scale %v", w, h, want)
	}
}
