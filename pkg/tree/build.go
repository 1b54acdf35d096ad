package tree

import (
	"math"
	"strconv"

	"github.com/google/uuid"
)

// idNamespace scopes generated node ids so identical paths in different
// documents map to the same id.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("treemap.node"))

// Item is one decoded data entry.
type Item struct {
	ID       string
	Name     string
	Value    *float64
	Children []Item
	Link     string
	Target   string
	Style    *StyleOverride
}

// Build wraps items in a synthetic root named name and returns the indexed
// tree. The root's id is name unless an item already claims it, in which
// case the root gets a generated id.
//
// Values are completed bottom-up: a missing or NaN value becomes the sum of
// the children's values and negative values clamp to zero. Items without an
// id get a deterministic one derived from their position in the hierarchy.
func Build(name string, items []Item) (*Tree, error) {
	root := &Node{Name: name, ID: name, Value: math.NaN()}
	if root.ID == "" || claimsID(items, root.ID) {
		root.ID = generatedID("")
	}
	for i, it := range items {
		root.Children = append(root.Children, buildNode(it, root.ID, i))
	}
	completeValue(root)
	return New(root)
}

func buildNode(it Item, parentPath string, index int) *Node {
	n := &Node{
		ID:       it.ID,
		Name:     it.Name,
		Link:     it.Link,
		Target:   it.Target,
		Override: it.Style,
	}
	path := parentPath + "/" + strconv.Itoa(index) + ":" + it.Name
	if n.ID == "" {
		n.ID = generatedID(path)
	}
	if it.Value != nil {
		n.Value = *it.Value
	} else {
		n.Value = math.NaN()
	}
	for i, c := range it.Children {
		n.Children = append(n.Children, buildNode(c, path, i))
	}
	return n
}

// claimsID reports whether any item in the hierarchy has the explicit id.
func claimsID(items []Item, id string) bool {
	for _, it := range items {
		if it.ID == id || claimsID(it.Children, id) {
			return true
		}
	}
	return false
}

func completeValue(n *Node) {
	var sum float64
	for _, c := range n.Children {
		completeValue(c)
		sum += c.Value
	}
	if math.IsNaN(n.Value) {
		n.Value = sum
	}
	if n.Value < 0 {
		n.Value = 0
	}
}

func generatedID(path string) string {
	return uuid.NewSHA1(idNamespace, []byte(path)).String()
}
