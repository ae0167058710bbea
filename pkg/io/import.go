package io

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"os"
	"slices"

	errs "github.com/matzehuels/pixmesh/pkg/errors"
	"github.com/matzehuels/pixmesh/pkg/mesh"
)

// ReadJSON decodes a JSON graph from r.
//
// The input must be a JSON object with a "vertices" array:
//
//	{
//	  "version": 1,
//	  "vertices": [
//	    {"x": 0, "y": 0, "z": 0, "neighbors": [1]},
//	    {"x": 1, "y": 0, "z": 0, "neighbors": [0]}
//	  ]
//	}
//
// Each vertex's index is its array position. Optional fields:
//   - surrounding: 8-connected pixel indices (defaults to empty)
//   - exterior: boundary flag (defaults to true)
//
// ReadJSON returns an INVALID_FORMAT error if the JSON is malformed or the
// version is unknown, and an INVALID_GRAPH error if a neighbor references an
// unknown vertex, the vertex itself, or is listed twice.
//
// The returned graph is independent of r. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*mesh.Graph, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode graph")
	}
	if data.Version != 0 && data.Version != FormatVersion {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported graph version %d", data.Version)
	}

	vs := make([]*mesh.Vertex, len(data.Vertices))
	for i, vx := range data.Vertices {
		vs[i] = &mesh.Vertex{
			X:           vx.X,
			Y:           vx.Y,
			Z:           vx.Z,
			Idx:         i,
			Neighbors:   slices.Clone(vx.Neighbors),
			Surrounding: slices.Clone(vx.Surrounding),
			Exterior:    vx.Exterior == nil || *vx.Exterior,
		}
	}

	g, err := mesh.FromVertices(vs)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidGraph, err, "invalid graph")
	}
	return g, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
//
// A missing file yields a FILE_NOT_FOUND error; decoding errors are the
// same as for [ReadJSON].
func ImportJSON(path string) (*mesh.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
