package mesh

type coord struct{ x, y int }

// Extrude stacks thickness layers on top of the graph.
//
// Layer i copies every vertex of layer i-1 at depth i, with the copy's
// neighbor links redirected to the corresponding copies, and shifts the new
// layer by i along y. The extrusion axis is therefore oblique in the y-z
// plane and the shift accumulates: layer i sits i*(i+1)/2 rows below the
// base.
//
// Adjacent layers are bridged between vertices sharing (x, y) after the
// shift. The bridge direction alternates with the checkerboard parity of the
// vertex and the layer number, so every boundary between layers is bridged
// on half of its matching pairs. Vertices without neighbors are never
// bridged.
//
// Extrude with thickness 0 returns g unchanged. The graph is modified in
// place and returned.
func Extrude(g *Graph, thickness int) *Graph {
	// counterpart maps each vertex of the previous lower layer to its copy;
	// links of a lower-layer vertex point either into its own layer or into
	// the layer below it.
	var counterpart map[int]int

	for i := 1; i <= thickness; i++ {
		lower := g.Layer(i - 1)
		if len(lower) == 0 {
			break
		}

		copies := make(map[int]int, len(lower))
		base := g.Len()
		for k, idx := range lower {
			copies[idx] = base + k
		}
		for _, idx := range lower {
			src := g.vertices[idx]
			v := &Vertex{
				X:        src.X,
				Y:        src.Y + i,
				Z:        i,
				Idx:      g.Len(),
				Exterior: src.Exterior,
			}
			for _, n := range src.Neighbors {
				if c, ok := copies[n]; ok {
					v.addNeighbor(c)
				} else if c, ok := counterpart[n]; ok {
					v.addNeighbor(c)
				}
			}
			g.vertices = append(g.vertices, v)
		}
		upper := g.vertices[base:]

		lowerAt := make(map[coord]*Vertex, len(lower))
		for _, idx := range lower {
			v := g.vertices[idx]
			if _, ok := lowerAt[coord{v.X, v.Y}]; !ok {
				lowerAt[coord{v.X, v.Y}] = v
			}
		}
		upperAt := make(map[coord]*Vertex, len(upper))
		for _, v := range upper {
			if _, ok := upperAt[coord{v.X, v.Y}]; !ok {
				upperAt[coord{v.X, v.Y}] = v
			}
		}

		odd := i%2 == 1
		for _, idx := range lower {
			v := g.vertices[idx]
			if samePar(v) != odd || len(v.Neighbors) == 0 {
				continue
			}
			if m, ok := upperAt[coord{v.X, v.Y}]; ok {
				v.addNeighbor(m.Idx)
			}
		}
		for _, v := range upper {
			if samePar(v) == odd || len(v.Neighbors) == 0 {
				continue
			}
			if m, ok := lowerAt[coord{v.X, v.Y}]; ok {
				v.addNeighbor(m.Idx)
			}
		}

		counterpart = copies
	}
	return g
}

// samePar reports whether x and y have the same parity.
func samePar(v *Vertex) bool {
	return v.X%2 == v.Y%2
}
