// Package scene provides the serializable description of a rendered treemap.
//
// A [Layout] is a flat snapshot of one chart state: every cell in view with
// its absolute rectangle, plus the positioned breadcrumb trail. It is the
// boundary between the interactive engine (pkg/render/treemap) and the
// output sinks, the layout cache and the `treemap layout` command.
//
// # Core Types
//
//   - [Layout]: container size, view root and action metadata
//   - [Cell]: one node's rectangle, state and colour assignment
//   - [Crumb]: one breadcrumb chip with its chevron outline
//
// # Serialization
//
//	l := scene.FromChart(chart, res, nil)
//	data, _ := scene.MarshalLayout(l)
//	back, _ := scene.UnmarshalLayout(data)
//
// Layouts are immutable once built and safe to share between goroutines.
package scene
