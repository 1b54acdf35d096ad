// Package io provides JSON import and export for treemap data.
//
// # JSON Format
//
// A document is either an object with a root name and a data array, or a
// bare data array:
//
//	{
//	  "name": "disk",
//	  "data": [
//	    {"name": "src", "children": [
//	      {"name": "main.go", "value": 120},
//	      {"name": "util.go", "value": 80}
//	    ]},
//	    {"name": "README", "value": 50}
//	  ]
//	}
//
// # Item Fields
//
// All fields are optional:
//   - id: Unique string identifier (generated from the item's position if omitted)
//   - name: Display label
//   - value: A number, or an array whose first element is the size
//   - children: Nested items
//   - link, target: URL opened when nodeClick is "link"
//   - itemStyle: Per-node style override (borderWidth, gapWidth, color, ...)
//
// A parent without a value is sized by the sum of its children.
//
// # Import
//
// Use [ImportJSON] to read a tree from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	t, err := io.ImportJSON("disk.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Export
//
// [WriteJSON] and [ExportJSON] write the object form with every value
// completed, so re-importing an export yields the same tree.
package io
