package mesh

import (
	"errors"
	"testing"
)

func TestAddDeduplicatesNeighbors(t *testing.T) {
	g := New()
	g.Add(0, 0, 0)
	v := g.Add(1, 0, 0, 0, 0, 1)
	if len(v.Neighbors) != 1 || v.Neighbors[0] != 0 {
		t.Errorf("neighbors = %v, want [0]", v.Neighbors)
	}
	if !v.Exterior {
		t.Error("added vertex should be exterior")
	}
}

func TestGraphAccessors(t *testing.T) {
	g := New()
	g.Add(0, 0, 0, 1)
	g.Add(1, 0, 0, 0)
	g.Add(0, 1, 2)

	if g.Vertex(-1) != nil || g.Vertex(3) != nil {
		t.Error("out-of-range Vertex should be nil")
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount() = %d, want 2", g.EdgeCount())
	}
	if g.Layers() != 2 {
		t.Errorf("Layers() = %d, want 2", g.Layers())
	}
	if got := g.Layer(2); len(got) != 1 || got[0] != 2 {
		t.Errorf("Layer(2) = %v, want [2]", got)
	}
	if New().Layers() != 0 {
		t.Error("empty graph should have no layers")
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := New()
	g.Add(0, 0, 0, 1)
	g.Add(1, 0, 0, 0)

	c := g.Clone()
	if !c.Equal(g) {
		t.Fatal("clone should equal original")
	}
	c.Vertex(0).Neighbors[0] = 5
	c.Vertex(1).X = 9
	if g.Vertex(0).Neighbors[0] != 1 || g.Vertex(1).X != 1 {
		t.Error("mutating clone changed original")
	}
	if c.Equal(g) {
		t.Error("Equal should detect changes")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		vertices []*Vertex
		want     error
	}{
		{
			name:     "valid",
			vertices: []*Vertex{{Idx: 0, Neighbors: []int{1}}, {Idx: 1, X: 1}},
		},
		{
			name:     "index mismatch",
			vertices: []*Vertex{{Idx: 1}},
			want:     ErrIndexMismatch,
		},
		{
			name:     "nil vertex",
			vertices: []*Vertex{nil},
			want:     ErrIndexMismatch,
		},
		{
			name:     "dangling neighbor",
			vertices: []*Vertex{{Idx: 0, Neighbors: []int{3}}},
			want:     ErrDanglingNeighbor,
		},
		{
			name:     "self neighbor",
			vertices: []*Vertex{{Idx: 0, Neighbors: []int{0}}},
			want:     ErrDanglingNeighbor,
		},
		{
			name:     "dangling surrounding",
			vertices: []*Vertex{{Idx: 0, Surrounding: []int{-1}}},
			want:     ErrDanglingNeighbor,
		},
		{
			name:     "duplicate neighbor",
			vertices: []*Vertex{{Idx: 0, Neighbors: []int{1, 1}}, {Idx: 1}},
			want:     ErrDuplicateNeighbor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := FromVertices(tt.vertices)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("FromVertices: %v", err)
				}
				if g.Len() != len(tt.vertices) {
					t.Errorf("Len() = %d, want %d", g.Len(), len(tt.vertices))
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
