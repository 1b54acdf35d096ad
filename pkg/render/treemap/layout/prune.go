package layout

import "github.com/matzehuels/treemap/pkg/tree"

// AbovePath returns the ancestors of viewRoot from the tree root down,
// excluding viewRoot itself.
func AbovePath(viewRoot *tree.Node) []*tree.Node {
	if viewRoot == nil || viewRoot.Parent == nil {
		return nil
	}
	return viewRoot.Parent.PathToRoot()
}

// Prune marks the drill scope against clip, which is expressed in root's
// parent frame.
//
// Only the nodes of abovePath and the laid out subtree of viewRoot are
// visited; ancestors descend straight along the path. Each
// visited node is flagged in view; ancestors of the view root are never
// invisible, everything else is invisible when its rect misses the clip.
// Invisible nodes keep their layout.
func Prune(root *tree.Node, clip Rect, abovePath []*tree.Node, viewRoot *tree.Node) {
	prune(root, clip, abovePath, viewRoot, 0)
}

func prune(n *tree.Node, clip Rect, abovePath []*tree.Node, viewRoot *tree.Node, depth int) {
	var onPath *tree.Node
	if depth < len(abovePath) {
		onPath = abovePath[depth]
	}
	isAbove := onPath != nil && onPath == n

	if (onPath != nil && !isAbove) || (depth == len(abovePath) && n != viewRoot) {
		return
	}

	l := n.Layout()
	rect := NewRect(l.X, l.Y, l.Width, l.Height)
	invisible := !isAbove && !clip.Intersects(rect)

	n.SetLayout(tree.LayoutPatch{
		IsInView:        tree.Bool(true),
		Invisible:       &invisible,
		IsAboveViewRoot: &isAbove,
	}, true)

	childClip := clip.Translate(-l.X, -l.Y)
	if isAbove {
		next := viewRoot
		if depth+1 < len(abovePath) {
			next = abovePath[depth+1]
		}
		prune(next, childClip, abovePath, viewRoot, depth+1)
		return
	}
	for _, c := range n.ViewChildren {
		prune(c, childClip, abovePath, viewRoot, depth+1)
	}
}
