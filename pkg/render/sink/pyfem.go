package sink

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/pixmesh/pkg/mesh"
)

const pyfemHeader = "# PYFEM mesh file version 1.0"

// RenderPyfem serializes g as a PYFEM ASCII mesh (version 1.0).
//
// Node coordinates are written in arena order and element records use
// 0-based vertex indices. The periodic section is always empty. Lines are
// joined with '\n' and the output has no trailing newline.
func RenderPyfem(g *mesh.Graph, opts ...Option) []byte {
	e := Collect(g, opts...)
	vs := g.Vertices()

	lines := make([]string, 0, 6+len(vs)+len(e.Volumes)+len(e.Surfaces))
	lines = append(lines,
		pyfemHeader,
		fmt.Sprintf("# dim = 3\tnodes = %d\tsimplices = %d\tsurfaces = %d\tperiodic = %d",
			len(vs), len(e.Volumes), len(e.Surfaces), 0),
		strconv.Itoa(len(vs)),
	)
	for _, v := range vs {
		lines = append(lines, fmt.Sprintf("%d\t%d\t%d", v.X, v.Y, v.Z))
	}

	lines = append(lines, strconv.Itoa(len(e.Volumes)))
	for _, vol := range e.Volumes {
		lines = append(lines, fmt.Sprintf("%d\t%d\t%d\t%d\t%d", RegionInside, vol[0], vol[1], vol[2], vol[3]))
	}

	lines = append(lines, strconv.Itoa(len(e.Surfaces)))
	for _, s := range e.Surfaces {
		lines = append(lines, fmt.Sprintf("%d\t%d\t%d\t%d\t%d", RegionInside, RegionOutside, s[0], s[1], s[2]))
	}

	lines = append(lines, "0")
	return []byte(strings.Join(lines, "\n"))
}
