package sink

import (
	"github.com/unixpickle/model3d/model3d"

	"github.com/matzehuels/pixmesh/pkg/mesh"
)

// RenderSTL encodes the surface elements of g as binary STL, one facet per
// surface. Volume elements have no STL representation and are ignored.
func RenderSTL(g *mesh.Graph) []byte {
	surfaces := mesh.Surfaces(g)
	tris := make([]*model3d.Triangle, 0, len(surfaces))
	for _, s := range surfaces {
		tris = append(tris, &model3d.Triangle{
			coord(g.Vertex(s[0])),
			coord(g.Vertex(s[1])),
			coord(g.Vertex(s[2])),
		})
	}
	return model3d.EncodeSTL(tris)
}

func coord(v *mesh.Vertex) model3d.Coord3D {
	return model3d.Coord3D{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}
