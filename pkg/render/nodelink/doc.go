// Package nodelink renders mesh graphs as node-link diagrams.
//
// # Overview
//
// This package produces graph visualizations using Graphviz, where every
// vertex appears as a small circle and every neighbor link as a line. It is
// meant for inspecting what the reducer, smoother and extruder did to a
// small raster, not for large meshes.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools (neato -n honors the
//     pinned positions)
//
// Mutual links are drawn once with dir=none; one-way links, which the
// extruder and smoother create, keep their arrowhead.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
