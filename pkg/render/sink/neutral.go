package sink

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/pixmesh/pkg/mesh"
)

// RenderNeutral serializes g in the Netgen neutral format: points, volume
// elements, then surface elements, each section prefixed by its count.
// Element records use 1-based vertex indices. Lines are joined with '\n' and
// the output has no trailing newline.
func RenderNeutral(g *mesh.Graph, opts ...Option) []byte {
	e := Collect(g, opts...)
	vs := g.Vertices()

	lines := make([]string, 0, 3+len(vs)+len(e.Volumes)+len(e.Surfaces))
	lines = append(lines, strconv.Itoa(len(vs)))
	for _, v := range vs {
		lines = append(lines, fmt.Sprintf("%d\t%d\t%d", v.X, v.Y, v.Z))
	}

	lines = append(lines, strconv.Itoa(len(e.Volumes)))
	for _, vol := range e.Volumes {
		lines = append(lines, fmt.Sprintf("%d\t%d\t%d\t%d\t%d", RegionInside, vol[0]+1, vol[1]+1, vol[2]+1, vol[3]+1))
	}

	lines = append(lines, strconv.Itoa(len(e.Surfaces)))
	for _, s := range e.Surfaces {
		lines = append(lines, fmt.Sprintf("%d\t%d\t%d\t%d", RegionInside, s[0]+1, s[1]+1, s[2]+1))
	}

	return []byte(strings.Join(lines, "\n"))
}
