package mesh

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrIndexMismatch is returned by [Graph.Validate] when a vertex's Idx
	// differs from its position in the arena.
	ErrIndexMismatch = errors.New("vertex index does not match position")

	// ErrDanglingNeighbor is returned by [Graph.Validate] when a neighbor set
	// names an index outside the arena or the vertex itself.
	ErrDanglingNeighbor = errors.New("neighbor references unknown vertex")

	// ErrDuplicateNeighbor is returned by [Graph.Validate] when a neighbor set
	// lists the same index twice.
	ErrDuplicateNeighbor = errors.New("duplicate neighbor")
)

// Vertex is a lattice point of the mesh graph.
//
// Neighbors holds the indices of linked vertices in insertion order, without
// duplicates. Surrounding holds the 8-connected foreground pixels found when
// the vertex was built from a raster; vertices created later by the smoother
// or the extruder leave it empty.
type Vertex struct {
	X, Y, Z     int
	Idx         int
	Neighbors   []int
	Surrounding []int
	Exterior    bool
}

// HasNeighbor reports whether idx is in the vertex's neighbor set.
func (v *Vertex) HasNeighbor(idx int) bool {
	return slices.Contains(v.Neighbors, idx)
}

// addNeighbor links idx unless it is already present or names v itself.
func (v *Vertex) addNeighbor(idx int) bool {
	if idx == v.Idx || v.HasNeighbor(idx) {
		return false
	}
	v.Neighbors = append(v.Neighbors, idx)
	return true
}

// Graph is an append-only arena of vertices. A vertex's Idx always equals its
// position in the arena; no operation in this package reorders or deletes
// vertices.
//
// The zero value is an empty graph ready to use. Graph is not safe for
// concurrent use.
type Graph struct {
	vertices []*Vertex
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{}
}

// FromVertices builds a graph over an existing vertex list, such as one
// decoded from a file, and validates it. The slice is adopted, not copied.
func FromVertices(vs []*Vertex) (*Graph, error) {
	g := &Graph{vertices: vs}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Len returns the number of vertices.
func (g *Graph) Len() int { return len(g.vertices) }

// Vertex returns the vertex at index i, or nil when i is out of range.
func (g *Graph) Vertex(i int) *Vertex {
	if i < 0 || i >= len(g.vertices) {
		return nil
	}
	return g.vertices[i]
}

// Vertices returns the arena in index order. The slice is shared with the
// graph and must not be appended to.
func (g *Graph) Vertices() []*Vertex { return g.vertices }

// Add appends a vertex at (x, y, z) linked to the given neighbors and returns
// it. The new vertex is exterior and has no surrounding pixels.
func (g *Graph) Add(x, y, z int, neighbors ...int) *Vertex {
	v := &Vertex{X: x, Y: y, Z: z, Idx: len(g.vertices), Exterior: true}
	for _, n := range neighbors {
		v.addNeighbor(n)
	}
	g.vertices = append(g.vertices, v)
	return v
}

// EdgeCount returns the total number of neighbor links. Links are directed,
// so a mutual pair counts twice.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, v := range g.vertices {
		n += len(v.Neighbors)
	}
	return n
}

// Layers returns the number of distinct depth values, 0 for an empty graph.
func (g *Graph) Layers() int {
	seen := make(map[int]struct{})
	for _, v := range g.vertices {
		seen[v.Z] = struct{}{}
	}
	return len(seen)
}

// Layer returns the indices of all vertices at depth z in arena order.
func (g *Graph) Layer(z int) []int {
	var out []int
	for _, v := range g.vertices {
		if v.Z == z {
			out = append(out, v.Idx)
		}
	}
	return out
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	out := &Graph{vertices: make([]*Vertex, len(g.vertices))}
	for i, v := range g.vertices {
		c := *v
		c.Neighbors = slices.Clone(v.Neighbors)
		c.Surrounding = slices.Clone(v.Surrounding)
		out.vertices[i] = &c
	}
	return out
}

// Equal reports whether both graphs hold the same vertices with the same
// coordinates, flags and neighbor sets, in the same order.
func (g *Graph) Equal(o *Graph) bool {
	if g.Len() != o.Len() {
		return false
	}
	for i, v := range g.vertices {
		w := o.vertices[i]
		if v.X != w.X || v.Y != w.Y || v.Z != w.Z || v.Idx != w.Idx || v.Exterior != w.Exterior {
			return false
		}
		if !slices.Equal(v.Neighbors, w.Neighbors) || !slices.Equal(v.Surrounding, w.Surrounding) {
			return false
		}
	}
	return true
}

// Validate checks the arena invariants: every Idx equals its position, every
// neighbor or surrounding reference names another existing vertex, and no
// neighbor is listed twice.
func (g *Graph) Validate() error {
	for i, v := range g.vertices {
		if v == nil || v.Idx != i {
			return fmt.Errorf("%w: position %d", ErrIndexMismatch, i)
		}
		for k, n := range v.Neighbors {
			if n < 0 || n >= len(g.vertices) || n == i {
				return fmt.Errorf("%w: vertex %d -> %d", ErrDanglingNeighbor, i, n)
			}
			if slices.Contains(v.Neighbors[:k], n) {
				return fmt.Errorf("%w: vertex %d -> %d", ErrDuplicateNeighbor, i, n)
			}
		}
		for _, n := range v.Surrounding {
			if n < 0 || n >= len(g.vertices) || n == i {
				return fmt.Errorf("%w: vertex %d surrounds %d", ErrDanglingNeighbor, i, n)
			}
		}
	}
	return nil
}
