package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/pixmesh/pkg/mesh"
)

func block(t *testing.T, w, h int) *mesh.Graph {
	t.Helper()
	pix := make([]byte, w*h*mesh.BytesPerPixel)
	for i := range pix {
		pix[i] = 255
	}
	g, err := mesh.Build(w, h, pix)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestSummarize(t *testing.T) {
	g := mesh.ReduceRedundantEdges(block(t, 2, 2))
	s := summarize(g)

	if s.Vertices != 4 {
		t.Errorf("Vertices = %d, want 4", s.Vertices)
	}
	if s.Links != 4 {
		t.Errorf("Links = %d, want 4", s.Links)
	}
	if s.Corners != 4 || s.Sides != 0 {
		t.Errorf("Corners/Sides = %d/%d, want 4/0", s.Corners, s.Sides)
	}
	if s.Layers != 1 {
		t.Errorf("Layers = %d, want 1", s.Layers)
	}
	if s.Surfaces != 2 || s.Volumes != 0 {
		t.Errorf("Surfaces/Volumes = %d/%d, want 2/0", s.Surfaces, s.Volumes)
	}
}

func TestSummarizeCountsBaseLayerOnly(t *testing.T) {
	g := mesh.Extrude(mesh.ReduceRedundantEdges(block(t, 3, 3)), 2)
	s := summarize(g)

	if s.Layers != 3 {
		t.Errorf("Layers = %d, want 3", s.Layers)
	}
	// 3x3 block: four corners, four sides and one interior pixel
	if s.Corners != 4 || s.Sides != 4 {
		t.Errorf("Corners/Sides = %d/%d, want 4/4", s.Corners, s.Sides)
	}
}

func TestRenderSummary(t *testing.T) {
	out := renderSummary(meshSummary{Source: "shape.png", Width: 3, Height: 2, Foreground: 5, Vertices: 5})
	for _, want := range []string{"shape.png", "Size", "3×2", "Foreground", "Vertices", "Volumes"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}

	saved := renderSummary(meshSummary{Source: "graph.json"})
	if strings.Contains(saved, "Size") {
		t.Errorf("saved graph summary should not show a size:\n%s", saved)
	}
}
