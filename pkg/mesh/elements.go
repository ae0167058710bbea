package mesh

// Surface is a triangular boundary face, as three vertex indices. The first
// index is the vertex the face was enumerated from.
type Surface [3]int

// Volume is a tetrahedral element, as four vertex indices. The first index
// is the vertex the element was enumerated from.
type Volume [4]int

// Surfaces enumerates surface elements. For every vertex with at least two
// neighbors, each unordered pair of its neighbors forms a candidate
// triangle with it. A candidate is kept when all three vertices are exterior
// and exactly one axis is constant across them, i.e. the triangle lies in a
// single axis plane.
//
// Results are ordered by vertex, then by neighbor position.
func Surfaces(g *Graph) []Surface {
	var out []Surface
	for _, v := range g.vertices {
		nb := v.Neighbors
		if len(nb) < 2 {
			continue
		}
		for i := 0; i < len(nb); i++ {
			for j := i + 1; j < len(nb); j++ {
				a, b := g.vertices[nb[i]], g.vertices[nb[j]]
				if !v.Exterior || !a.Exterior || !b.Exterior {
					continue
				}
				if constantAxes(v, a, b) != 1 {
					continue
				}
				out = append(out, Surface{v.Idx, a.Idx, b.Idx})
			}
		}
	}
	return out
}

// Volumes enumerates volume elements. For every vertex with at least three
// neighbors, each unordered triple of its neighbors forms a candidate
// tetrahedron with it. A candidate is kept when no axis is constant across
// its four vertices.
func Volumes(g *Graph) []Volume {
	var out []Volume
	for _, v := range g.vertices {
		nb := v.Neighbors
		if len(nb) < 3 {
			continue
		}
		for i := 0; i < len(nb); i++ {
			for j := i + 1; j < len(nb); j++ {
				for k := j + 1; k < len(nb); k++ {
					a, b, c := g.vertices[nb[i]], g.vertices[nb[j]], g.vertices[nb[k]]
					if constantAxes(v, a, b, c) != 0 {
						continue
					}
					out = append(out, Volume{v.Idx, a.Idx, b.Idx, c.Idx})
				}
			}
		}
	}
	return out
}

// constantAxes counts the axes along which all given vertices agree.
func constantAxes(vs ...*Vertex) int {
	sameX, sameY, sameZ := true, true, true
	first := vs[0]
	for _, v := range vs[1:] {
		sameX = sameX && v.X == first.X
		sameY = sameY && v.Y == first.Y
		sameZ = sameZ && v.Z == first.Z
	}
	n := 0
	for _, same := range []bool{sameX, sameY, sameZ} {
		if same {
			n++
		}
	}
	return n
}
