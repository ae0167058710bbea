// Package render groups the output renderers for mesh graphs.
//
// # Overview
//
// Rendering turns a finished [mesh.Graph] into bytes. The work is split by
// audience:
//
//   - Mesh file formats for FEM solvers (in [sink] subpackage)
//   - Node-link diagrams for inspection (in [nodelink] subpackage)
//
// # Mesh Sinks
//
// The [sink] subpackage writes PYFEM and Netgen neutral meshes plus binary
// STL of the surface elements.
//
//	nmesh := sink.RenderPyfem(g)
//	neutral := sink.RenderNeutral(g, sink.WithoutVolumes())
//	stl := sink.RenderSTL(g)
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders the vertex graph using Graphviz.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [mesh.Graph]: github.com/matzehuels/pixmesh/pkg/mesh.Graph
// [sink]: github.com/matzehuels/pixmesh/pkg/render/sink
// [nodelink]: github.com/matzehuels/pixmesh/pkg/render/nodelink
package render
