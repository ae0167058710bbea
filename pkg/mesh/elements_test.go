package mesh

import "testing"

func TestSurfaces(t *testing.T) {
	t.Run("block", func(t *testing.T) {
		got := Surfaces(mustBuild(t, "##", "##"))
		want := []Surface{{0, 1, 2}, {1, 0, 3}, {2, 3, 0}, {3, 2, 1}}
		if len(got) != len(want) {
			t.Fatalf("got %d surfaces, want %d: %v", len(got), len(want), got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("surface %d = %v, want %v", i, got[i], want[i])
			}
		}
	})

	t.Run("collinear rejected", func(t *testing.T) {
		if got := Surfaces(mustBuild(t, "###")); len(got) != 0 {
			t.Errorf("single row produced surfaces: %v", got)
		}
	})

	t.Run("interior rejected", func(t *testing.T) {
		g := mustBuild(t, "##", "##")
		g.Vertex(3).Exterior = false
		for _, s := range Surfaces(g) {
			for _, idx := range s {
				if idx == 3 {
					t.Errorf("surface %v uses interior vertex", s)
				}
			}
		}
	})
}

func TestVolumes(t *testing.T) {
	g := New()
	g.Add(0, 0, 0, 1, 2, 3)
	g.Add(1, 0, 0)
	g.Add(0, 1, 0)
	g.Add(0, 0, 1)

	got := Volumes(g)
	if len(got) != 1 || got[0] != (Volume{0, 1, 2, 3}) {
		t.Errorf("Volumes() = %v, want [[0 1 2 3]]", got)
	}

	flat := New()
	flat.Add(0, 0, 0, 1, 2, 3)
	flat.Add(1, 0, 0)
	flat.Add(0, 1, 0)
	flat.Add(1, 1, 0)
	if got := Volumes(flat); len(got) != 0 {
		t.Errorf("planar neighborhood produced volumes: %v", got)
	}
}

func TestElementsAfterExtrusion(t *testing.T) {
	g := mustBuild(t,
		"####",
		"####",
		"####",
	)
	Extrude(Smooth(ReduceRedundantEdges(g), DefaultMaxDist), 2)

	for _, s := range Surfaces(g) {
		vs := []*Vertex{g.Vertex(s[0]), g.Vertex(s[1]), g.Vertex(s[2])}
		if n := constantAxes(vs...); n != 1 {
			t.Errorf("surface %v has %d constant axes, want 1", s, n)
		}
	}
	for _, v := range Volumes(g) {
		vs := []*Vertex{g.Vertex(v[0]), g.Vertex(v[1]), g.Vertex(v[2]), g.Vertex(v[3])}
		if n := constantAxes(vs...); n != 0 {
			t.Errorf("volume %v has %d constant axes, want 0", v, n)
		}
	}
}
