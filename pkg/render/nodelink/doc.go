// Package nodelink renders room adjacency as node-link diagrams.
//
// # Overview
//
// Each room becomes a box and each joined pair of entrances becomes an
// undirected edge. The map rendering in [render.Text] shows where rooms
// are; this diagram shows how they connect, which is easier to read for
// large levels.
//
// # Usage
//
// Convert an accepted level to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(res, nodelink.Options{Detailed: false})
//	svg, err := nodelink.RenderSVG(dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: When true, node labels include the room's rectangle and
//     entrance count
//
// Spawn-capable rooms are filled light blue; the two rooms holding the
// spawn anchors are filled gold.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
