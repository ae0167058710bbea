// Package io provides JSON import and export for mesh graphs.
//
// # Overview
//
// This package serializes a [mesh.Graph] to and from a simple JSON format so
// that a graph can be saved after any stage and turned into mesh files later
// without re-running the raster pipeline. It also backs the graph entries of
// the pipeline cache.
//
// # JSON Format
//
//	{
//	  "version": 1,
//	  "vertices": [
//	    {"x": 0, "y": 0, "z": 0, "neighbors": [1], "surrounding": [1]},
//	    {"x": 1, "y": 0, "z": 0, "neighbors": [0], "surrounding": [0]}
//	  ]
//	}
//
// A vertex's index is its position in the array. The exterior flag is only
// written when false.
//
// # Import
//
// Use [ImportJSON] to read a graph from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	g, err := io.ImportJSON("star.graph.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions validate the arena invariants and return structured errors
// from the errors package.
//
// # Export
//
// Use [ExportJSON] to write a graph to a file, or [WriteJSON] to write to any
// io.Writer. Round trips preserve coordinates, neighbor order, surrounding
// pixels and exterior flags.
//
// [mesh.Graph]: github.com/matzehuels/pixmesh/pkg/mesh.Graph
package io
