package io

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/tree"
)

// ErrEmptyData is returned when a document holds no items.
var ErrEmptyData = stderrors.New("no data items")

type document struct {
	Name string `json:"name,omitempty"`
	Data []item `json:"data"`
}

type item struct {
	ID        string              `json:"id,omitempty"`
	Name      string              `json:"name,omitempty"`
	Value     value               `json:"value"`
	Children  []item              `json:"children,omitempty"`
	Link      string              `json:"link,omitempty"`
	Target    string              `json:"target,omitempty"`
	ItemStyle *tree.StyleOverride `json:"itemStyle,omitempty"`
}

// value accepts a number, an array whose first element is the size, or null.
type value struct {
	v *float64
}

func (v *value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		v.v = nil
		return nil
	}
	if b[0] == '[' {
		var arr []*float64
		if err := json.Unmarshal(b, &arr); err != nil {
			return err
		}
		if len(arr) > 0 {
			v.v = arr[0]
		}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	v.v = &f
	return nil
}

func (v value) MarshalJSON() ([]byte, error) {
	if v.v == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*v.v)
}

// ReadJSON decodes a treemap document from r. The root is named after the
// document's "name" field, or name when the document has none.
//
// ReadJSON returns an INVALID_DATA error if the JSON is malformed, holds no
// items, or repeats an id. ReadJSON does not close r.
func ReadJSON(r io.Reader, name string) (*tree.Tree, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "read")
	}
	raw = bytes.TrimSpace(raw)

	var doc document
	if len(raw) > 0 && raw[0] == '[' {
		err = json.Unmarshal(raw, &doc.Data)
	} else {
		err = json.Unmarshal(raw, &doc)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "decode")
	}
	if len(doc.Data) == 0 {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, ErrEmptyData, "decode")
	}
	if doc.Name != "" {
		name = doc.Name
	}

	items := make([]tree.Item, len(doc.Data))
	for i, it := range doc.Data {
		items[i] = it.toItem()
	}
	t, err := tree.Build(name, items)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidData, err, "build tree")
	}
	return t, nil
}

func (it item) toItem() tree.Item {
	out := tree.Item{
		ID:     it.ID,
		Name:   it.Name,
		Value:  it.Value.v,
		Link:   it.Link,
		Target: it.Target,
		Style:  it.ItemStyle,
	}
	for _, c := range it.Children {
		out.Children = append(out.Children, c.toItem())
	}
	return out
}

// ImportJSON reads a JSON file at path and returns the decoded tree. The
// root takes the document's name, falling back to "root".
func ImportJSON(path string) (*tree.Tree, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f, "root")
}
