package sink

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/pixmesh/pkg/mesh"
)

func buildGraph(t *testing.T, rows ...string) *mesh.Graph {
	t.Helper()
	var pix []byte
	for _, row := range rows {
		for _, c := range row {
			var b byte
			if c == '#' {
				b = 255
			}
			pix = append(pix, b, b, b, b)
		}
	}
	g, err := mesh.Build(len(rows[0]), len(rows), pix)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func tetrahedron() *mesh.Graph {
	g := mesh.New()
	g.Add(0, 0, 0, 1, 2, 3)
	g.Add(1, 0, 0)
	g.Add(0, 1, 0)
	g.Add(0, 0, 1)
	return g
}

func TestRenderPyfemIsolatedPixel(t *testing.T) {
	got := string(RenderPyfem(buildGraph(t, "#")))
	want := strings.Join([]string{
		"# PYFEM mesh file version 1.0",
		"# dim = 3\tnodes = 1\tsimplices = 0\tsurfaces = 0\tperiodic = 0",
		"1",
		"0\t0\t0",
		"0",
		"0",
		"0",
	}, "\n")
	if got != want {
		t.Errorf("RenderPyfem() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderPyfemElements(t *testing.T) {
	got := string(RenderPyfem(tetrahedron()))
	if !strings.Contains(got, "simplices = 1\t") {
		t.Errorf("header should count one simplex:\n%s", got)
	}
	if !strings.Contains(got, "\n1\t0\t1\t2\t3\n") {
		t.Errorf("missing simplex record:\n%s", got)
	}
	if !strings.Contains(got, "\n1\t-1\t0\t1\t2\n") {
		t.Errorf("missing surface record:\n%s", got)
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("output should not end with a newline")
	}
}

func TestRenderNeutral(t *testing.T) {
	g := mesh.ReduceRedundantEdges(buildGraph(t, "##", "##"))
	got := string(RenderNeutral(g))
	want := strings.Join([]string{
		"4",
		"0\t0\t0",
		"1\t0\t0",
		"0\t1\t0",
		"1\t1\t0",
		"0",
		"2",
		"1\t1\t2\t3",
		"1\t4\t3\t2",
	}, "\n")
	if got != want {
		t.Errorf("RenderNeutral() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderNeutralOneBased(t *testing.T) {
	got := string(RenderNeutral(tetrahedron()))
	if !strings.Contains(got, "\n1\t1\t2\t3\t4\n") {
		t.Errorf("volume record should use 1-based indices:\n%s", got)
	}
}

func TestWithoutVolumes(t *testing.T) {
	g := tetrahedron()

	if e := Collect(g); len(e.Volumes) != 1 {
		t.Fatalf("Collect() volumes = %d, want 1", len(e.Volumes))
	}
	if e := Collect(g, WithoutVolumes()); len(e.Volumes) != 0 {
		t.Errorf("WithoutVolumes volumes = %d, want 0", len(e.Volumes))
	}
	if e := Collect(g, WithoutVolumes(), WithVolumes(true)); len(e.Volumes) != 1 {
		t.Errorf("later option should win, volumes = %d", len(e.Volumes))
	}

	out := string(RenderPyfem(g, WithoutVolumes()))
	if !strings.Contains(out, "simplices = 0\t") {
		t.Errorf("header should count zero simplices:\n%s", out)
	}
}

// parsePyfem checks the section structure of a PYFEM file and returns the
// header counts and the record counts actually present.
func parsePyfem(t *testing.T, data string) (header, records [3]int) {
	t.Helper()
	lines := strings.Split(data, "\n")
	fields := strings.Fields(lines[1])
	if len(fields) != 16 || fields[1] != "dim" {
		t.Fatalf("malformed header %q", lines[1])
	}
	for i, at := range []int{6, 9, 12} {
		n, err := strconv.Atoi(fields[at])
		if err != nil {
			t.Fatalf("header field %q: %v", fields[at], err)
		}
		header[i] = n
	}

	pos := 2
	for i := range records {
		n, err := strconv.Atoi(lines[pos])
		if err != nil {
			t.Fatalf("section %d count %q: %v", i, lines[pos], err)
		}
		records[i] = n
		pos += 1 + n
	}
	if lines[pos] != "0" || pos != len(lines)-1 {
		t.Fatalf("periodic section malformed at line %d of %d", pos, len(lines))
	}
	return header, records
}

func TestExportCountFidelity(t *testing.T) {
	shapes := [][]string{
		{"#"},
		{"###"},
		{"##", "##"},
		{".##.", "####", "####", ".##."},
		{"#.#.#", ".#.#.", "#.#.#"},
		{"#####", "#...#", "#####"},
	}

	for i, rows := range shapes {
		for _, thickness := range []int{0, 1, 3} {
			t.Run(fmt.Sprintf("shape%d/thickness%d", i, thickness), func(t *testing.T) {
				g := buildGraph(t, rows...)
				mesh.Extrude(mesh.Smooth(mesh.ReduceRedundantEdges(g), mesh.DefaultMaxDist), thickness)
				e := Collect(g)

				header, records := parsePyfem(t, string(RenderPyfem(g)))
				want := [3]int{g.Len(), len(e.Volumes), len(e.Surfaces)}
				if header != want || records != want {
					t.Errorf("header=%v records=%v, want %v", header, records, want)
				}

				lines := strings.Split(string(RenderNeutral(g)), "\n")
				if len(lines) != 3+want[0]+want[1]+want[2] {
					t.Errorf("neutral has %d lines, want %d", len(lines), 3+want[0]+want[1]+want[2])
				}
			})
		}
	}
}

func TestRenderSTL(t *testing.T) {
	g := mesh.ReduceRedundantEdges(buildGraph(t, "##", "##"))
	data := RenderSTL(g)

	if len(data) < 84 {
		t.Fatalf("STL too short: %d bytes", len(data))
	}
	count := binary.LittleEndian.Uint32(data[80:84])
	if int(count) != len(mesh.Surfaces(g)) {
		t.Errorf("facet count = %d, want %d", count, len(mesh.Surfaces(g)))
	}
	if want := 84 + 50*int(count); len(data) != want {
		t.Errorf("STL size = %d, want %d", len(data), want)
	}
}
