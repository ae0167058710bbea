// Package pkg provides the core libraries for pixmesh.
//
// # Overview
//
// pixmesh turns the foreground of a raster image into a finite-element mesh.
// Every foreground pixel becomes a lattice vertex, redundant links are
// dropped, boundary corners are smoothed and the result is extruded into
// layers before being written as a PYFEM or Netgen neutral mesh. The pkg
// directory is organized into these areas:
//
//  1. [raster] - Image decoding and foreground rules
//  2. [mesh] - Lattice graph, reduction, smoothing, extrusion and elements
//  3. [render] - Mesh file sinks and node-link diagrams
//  4. [pipeline] - Orchestration (build → reduce → smooth → extrude → render)
//  5. [cache] - Result caching (file, badger, redis)
//  6. [api] - HTTP API over the pipeline
//
// # Architecture
//
// The typical data flow:
//
//	PNG/JPEG/GIF/BMP/TIFF/WebP/PBM
//	         ↓
//	    [raster] package (decode to RGBA bytes)
//	         ↓
//	    [mesh] package (build, reduce, smooth, extrude)
//	         ↓
//	    [render] packages (PYFEM, neutral, STL, DOT, SVG)
//
// # Quick Start
//
//	img, _ := raster.Load("shape.png")
//	g, _ := mesh.Build(img.Width, img.Height, img.Pix)
//	mesh.Extrude(mesh.Smooth(mesh.ReduceRedundantEdges(g), mesh.DefaultMaxDist), 2)
//	out := sink.RenderPyfem(g)
//
// Or run every stage with caching through a [pipeline.Runner]:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	res, err := runner.Execute(ctx, img, pipeline.Options{Thickness: 2})
//
// # Supporting Packages
//
//   - [errors] - Coded errors and input validation
//   - [io] - JSON import/export of mesh graphs
//   - [observability] - Pipeline, cache and HTTP hooks
//   - [httputil] - HTTP error responses and middleware
//   - [buildinfo] - Version information
//
// [raster]: github.com/matzehuels/pixmesh/pkg/raster
// [mesh]: github.com/matzehuels/pixmesh/pkg/mesh
// [render]: github.com/matzehuels/pixmesh/pkg/render
// [pipeline]: github.com/matzehuels/pixmesh/pkg/pipeline
// [pipeline.Runner]: github.com/matzehuels/pixmesh/pkg/pipeline.Runner
// [cache]: github.com/matzehuels/pixmesh/pkg/cache
// [api]: github.com/matzehuels/pixmesh/pkg/api
// [errors]: github.com/matzehuels/pixmesh/pkg/errors
// [io]: github.com/matzehuels/pixmesh/pkg/io
// [observability]: github.com/matzehuels/pixmesh/pkg/observability
// [httputil]: github.com/matzehuels/pixmesh/pkg/httputil
// [buildinfo]: github.com/matzehuels/pixmesh/pkg/buildinfo
package pkg
