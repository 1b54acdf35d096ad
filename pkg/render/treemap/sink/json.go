package sink

import "github.com/matzehuels/treemap/pkg/scene"

// RenderJSON renders l as indented JSON. It is the format the layout cache
// stores and `treemap layout` prints.
func RenderJSON(l scene.Layout) ([]byte, error) {
	return scene.MarshalLayout(l)
}
