package treemap_test

import (
	"fmt"

	"github.com/matzehuels/treemap/pkg/config"
	"github.com/matzehuels/treemap/pkg/render/treemap"
	"github.com/matzehuels/treemap/pkg/tree"
)

func ExampleChart_RootToNode() {
	val := func(x float64) *float64 { return &x }
	t, _ := tree.Build("root", []tree.Item{
		{ID: "src", Children: []tree.Item{
			{ID: "main.go", Value: val(6)},
			{ID: "util.go", Value: val(2)},
		}},
		{ID: "README", Value: val(8)},
	})

	s := config.Default()
	s.Width, s.Height = 200, 100
	c := treemap.New(t, s)
	c.Render(nil)

	res, _ := c.RootToNode("src")
	fmt.Println(res.Direction, res.ViewRoot.ID, res.Width, res.Height)

	res, _ = c.RootToNode(t.Root)
	fmt.Println(res.Direction, res.ViewRoot.ID)
	// Output:
	// drillDown src 200 100
	// rollUp root
}
