// Package sink serializes mesh graphs into finite-element file formats.
//
// # Overview
//
// A "sink" transforms a [mesh.Graph] into a final output format. This
// package provides:
//
//   - PYFEM: ASCII mesh v1.0 with 0-based element indices ([RenderPyfem])
//   - Neutral: Netgen neutral mesh with 1-based indices ([RenderNeutral])
//   - STL: binary STL of the surface elements ([RenderSTL])
//
// Graph JSON lives in the io package and node-link diagrams in [nodelink].
//
// # Elements
//
// Surface and volume elements are enumerated from vertex neighborhoods by
// [mesh.Surfaces] and [mesh.Volumes] at render time. Volume enumeration can
// be turned off:
//
//	out := sink.RenderPyfem(g, sink.WithoutVolumes())
//
// Element counts in the headers always match the records that follow.
//
// [nodelink]: github.com/matzehuels/pixmesh/pkg/render/nodelink
package sink
