package io

import (
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/tree"
)

// WriteJSON encodes t to w as an indented document object.
//
// The synthetic root is written as the document name and its children as
// the data array. Every value is written, including completed parent sums.
func WriteJSON(t *tree.Tree, w io.Writer) error {
	if t == nil || t.Root == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nil tree")
	}
	doc := document{Name: t.Root.Name, Data: make([]item, 0, len(t.Root.Children))}
	for _, c := range t.Root.Children {
		doc.Data = append(doc.Data, fromNode(c))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode")
	}
	return nil
}

func fromNode(n *tree.Node) item {
	v := n.Value
	it := item{
		ID:        n.ID,
		Name:      n.Name,
		Value:     value{v: &v},
		Link:      n.Link,
		Target:    n.Target,
		ItemStyle: n.Override,
	}
	for _, c := range n.Children {
		it.Children = append(it.Children, fromNode(c))
	}
	return it
}

// ExportJSON writes t to a JSON file at path.
func ExportJSON(t *tree.Tree, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(t, f)
}
