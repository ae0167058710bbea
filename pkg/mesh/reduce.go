package mesh

import (
	"github.com/emirpasic/gods/sets/hashset"
)

// ReduceRedundantEdges drops orthogonal links that the diagonal lattice
// already covers. It only visits pixel vertices whose row and column
// parities differ; at such a cell the left link is redundant when the left
// vertex already reaches the up-left vertex (or there is no up cell) and the
// down-left vertex (or there is no down cell). Right, up and down follow the
// same rule.
//
// The pixel grid is recovered from the depth-0 vertices, the first vertex at
// a coordinate standing for that pixel. The graph is modified in place and
// returned.
func ReduceRedundantEdges(g *Graph) *Graph {
	index := indexPixels(g)
	if index == nil {
		return g
	}

	linked := func(from, to int) bool {
		return from >= 0 && to >= 0 && g.vertices[from].HasNeighbor(to)
	}

	for row := 0; row < index.height; row++ {
		for col := 0; col < index.width; col++ {
			idx := index.at(row, col)
			if idx < 0 || row%2 == col%2 {
				continue
			}
			h := index.neighborhood(row, col)

			remove := hashset.New()
			mark := func(dir int, ok bool) {
				if dir >= 0 && ok {
					remove.Add(dir)
				}
			}
			mark(h.left, (h.top < 0 || linked(h.left, h.topLeft)) && (h.bottom < 0 || linked(h.left, h.bottomLeft)))
			mark(h.right, (h.top < 0 || linked(h.right, h.topRight)) && (h.bottom < 0 || linked(h.right, h.bottomRight)))
			mark(h.top, (h.left < 0 || linked(h.top, h.topLeft)) && (h.right < 0 || linked(h.top, h.topRight)))
			mark(h.bottom, (h.left < 0 || linked(h.bottom, h.bottomLeft)) && (h.right < 0 || linked(h.bottom, h.bottomRight)))
			if remove.Empty() {
				continue
			}

			v := g.vertices[idx]
			kept := v.Neighbors[:0]
			for _, n := range v.Neighbors {
				if !remove.Contains(n) {
					kept = append(kept, n)
				}
			}
			v.Neighbors = kept
		}
	}
	return g
}

// indexPixels rebuilds the raster lookup from the depth-0 vertices. It
// returns nil when the graph has no such vertex.
func indexPixels(g *Graph) *pixelIndex {
	width, height := 0, 0
	for _, v := range g.vertices {
		if v.Z != 0 || v.X < 0 || v.Y < 0 {
			continue
		}
		width = max(width, v.X+1)
		height = max(height, v.Y+1)
	}
	if width == 0 || height == 0 {
		return nil
	}

	index := newPixelIndex(width, height)
	for _, v := range g.vertices {
		if v.Z != 0 || v.X < 0 || v.Y < 0 {
			continue
		}
		if index.at(v.Y, v.X) < 0 {
			index.set(v.Y, v.X, v.Idx)
		}
	}
	return index
}
