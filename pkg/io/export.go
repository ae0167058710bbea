package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/pixmesh/pkg/mesh"
)

// FormatVersion is written into every exported graph.
const FormatVersion = 1

type graph struct {
	Version  int      `json:"version"`
	Vertices []vertex `json:"vertices"`
}

type vertex struct {
	X           int   `json:"x"`
	Y           int   `json:"y"`
	Z           int   `json:"z"`
	Neighbors   []int `json:"neighbors"`
	Surrounding []int `json:"surrounding,omitempty"`
	Exterior    *bool `json:"exterior,omitempty"`
}

// WriteJSON encodes a mesh graph as JSON and writes it to w.
// Vertices are written in arena order, so a vertex's index is its position
// in the "vertices" array. The output can be re-imported with [ReadJSON].
func WriteJSON(g *mesh.Graph, w io.Writer) error {
	out := graph{
		Version:  FormatVersion,
		Vertices: make([]vertex, g.Len()),
	}

	for i, v := range g.Vertices() {
		vx := vertex{
			X:           v.X,
			Y:           v.Y,
			Z:           v.Z,
			Neighbors:   v.Neighbors,
			Surrounding: v.Surrounding,
		}
		if vx.Neighbors == nil {
			vx.Neighbors = []int{}
		}
		if !v.Exterior {
			interior := false
			vx.Exterior = &interior
		}
		out.Vertices[i] = vx
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a mesh graph to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *mesh.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
