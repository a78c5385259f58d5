// Package render exports generated levels for inspection.
//
// # Overview
//
// A level is in-process state; these exports exist so people and tools can
// look at one. They are reports, not a storage format: nothing reads them
// back.
//
//   - [Text]: an ASCII map of rooms, passages and spawn anchors
//   - [RenderJSON]: rooms, entrances, links and anchors as a JSON document
//   - Room adjacency diagrams via Graphviz (in [nodelink] subpackage)
//
// # Text Maps
//
// [Text] draws one character per cell with north at the top:
//
//	#  room cell
//	+  passage cell between two joined entrances
//	o  open doorway (only while a level is still being built)
//	A  first spawn anchor
//	B  second spawn anchor
//
//	txt := render.Text(res.Rooms, render.WithAnchors(res.SpawnA, res.SpawnB))
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage turns the room adjacency into a Graphviz graph
// and renders it to SVG in-process.
//
//	dot := nodelink.ToDOT(res, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
package render
