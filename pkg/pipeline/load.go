package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/matzehuels/treemap/pkg/cache"
	treeio "github.com/matzehuels/treemap/pkg/io"
	"github.com/matzehuels/treemap/pkg/observability"
	"github.com/matzehuels/treemap/pkg/tree"
)

// Load reads the document at path into a tree.
func Load(ctx context.Context, path string) (*tree.Tree, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	t, err := treeio.ImportJSON(path)
	n := 0
	if t != nil {
		n = t.Len()
	}
	hooks.OnLoadComplete(ctx, path, n, time.Since(start), err)
	return t, err
}

// DataHash returns the content hash of t in its exported form, so that
// documents differing only in formatting or derived parent values share
// cache entries.
func DataHash(t *tree.Tree) (string, error) {
	var buf bytes.Buffer
	if err := treeio.WriteJSON(t, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}
