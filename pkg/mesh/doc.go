// Package mesh turns a rasterized silhouette into a layered lattice graph
// suitable for finite-element export.
//
// # Overview
//
// The package implements four stages that run strictly in order, each one
// mutating and returning the same [Graph]:
//
//  1. [Build]: every foreground pixel becomes a vertex linked to its
//     orthogonal foreground neighbors.
//  2. [ReduceRedundantEdges]: links that the diagonal lattice already covers
//     at checkerboard boundaries are dropped.
//  3. [Smooth]: boundary corners are bridged to nearby corners or sides to
//     soften staircase artifacts.
//  4. [Extrude]: the planar graph is copied into stacked layers along an
//     oblique y-z axis, and adjacent layers are cross-linked.
//
// [Surfaces] and [Volumes] then enumerate triangular faces and tetrahedra
// from vertex neighborhoods without modifying the graph. Serialization to
// mesh file formats lives in the sink package.
//
// # Vertex Arena
//
// A [Graph] is an append-only arena. Vertices are never removed or
// reordered, so a vertex's Idx always equals its position and neighbor sets
// are plain index slices. Stages that iterate over a part of the graph while
// appending to it snapshot the relevant indices first.
//
//	g, err := mesh.Build(width, height, pixels)
//	if err != nil {
//	    return err
//	}
//	mesh.ReduceRedundantEdges(g)
//	mesh.Smooth(g, mesh.DefaultMaxDist)
//	mesh.Extrude(g, 2)
//	surfaces := mesh.Surfaces(g)
//
// # Classification
//
// The smoother classifies depth-0 vertices by their count of foreground
// pixels among the eight surrounding cells: fewer than five makes a corner,
// exactly five a side, more an interior vertex that is left alone.
//
// # Concurrency
//
// All functions run synchronously on the calling goroutine. A Graph must not
// be shared between goroutines while a stage runs on it.
package mesh
