package mesh

import (
	"cmp"
	"math"
	"slices"
)

// DefaultMaxDist is the default bridging radius of [Smooth], in raster units.
const DefaultMaxDist = 5.0

// maxBridges is the number of bridges a corner may receive.
const maxBridges = 2

// sideSurrounding is the surrounding-pixel count of a straight boundary.
const sideSurrounding = 5

// IsCorner reports whether v is a boundary corner: fewer than five of its
// eight surrounding pixels are foreground.
func (v *Vertex) IsCorner() bool { return len(v.Surrounding) < sideSurrounding }

// IsSide reports whether v lies on a straight boundary: exactly five of its
// surrounding pixels are foreground.
func (v *Vertex) IsSide() bool { return len(v.Surrounding) == sideSurrounding }

// Smooth bridges boundary corners to reduce staircase artifacts.
//
// Each depth-0 corner is bridged to at most two other corners within maxDist,
// nearest first, one per quadrant. When fewer than two corners qualify, the
// remaining bridges go to side vertices within range, farthest first, again
// one per quadrant and never in the quadrant of the first corner bridge.
//
// A bridge is a new vertex linked to both endpoints. Its position is found by
// walking from the corner towards the target through surrounding pixels while
// the walk stays on side vertices that share neither coordinate with the
// target. Existing vertices keep their coordinates; the graph is modified in
// place and returned.
func Smooth(g *Graph, maxDist float64) *Graph {
	var corners, sides []*Vertex
	for _, v := range g.vertices {
		if v.Z != 0 {
			continue
		}
		switch {
		case v.IsCorner():
			corners = append(corners, v)
		case v.IsSide():
			sides = append(sides, v)
		}
	}

	for i, v := range corners {
		candidates := make([]*Vertex, 0, len(corners))
		for j, c := range corners {
			if j != i && distance(v, c) <= maxDist {
				candidates = append(candidates, c)
			}
		}
		slices.SortStableFunc(candidates, func(a, b *Vertex) int {
			return cmp.Compare(distance(v, a), distance(v, b))
		})
		candidates = limit(onePerQuadrant(v, candidates), maxBridges)

		for _, c := range candidates {
			g.bridge(v, c)
		}
		if len(candidates) >= maxBridges {
			continue
		}

		fallback := make([]*Vertex, 0, len(sides))
		for _, s := range sides {
			if distance(v, s) > maxDist {
				continue
			}
			if len(candidates) > 0 && quadrant(v, s) == quadrant(v, candidates[0]) {
				continue
			}
			fallback = append(fallback, s)
		}
		slices.SortStableFunc(fallback, func(a, b *Vertex) int {
			return cmp.Compare(distance(v, b), distance(v, a))
		})
		for _, s := range limit(onePerQuadrant(v, fallback), maxBridges-len(candidates)) {
			g.bridge(v, s)
		}
	}
	return g
}

// bridge appends a vertex linking from and to at the point where the walk
// from from towards to leaves the boundary.
func (g *Graph) bridge(from, to *Vertex) *Vertex {
	stop := g.walk(from, to)
	return g.Add(stop.X, stop.Y, 0, from.Idx, to.Idx)
}

// walk steps through surrounding pixels towards target. The first step is
// always taken; further steps continue while the current vertex is a side
// that shares neither coordinate with target. A vertex without surrounding
// pixels is its own stopping point. Stepping back onto a visited vertex
// ends the walk there, which only matters when that vertex would otherwise
// keep it going.
func (g *Graph) walk(from, target *Vertex) *Vertex {
	visited := map[int]bool{from.Idx: true}
	cur := g.closestSurrounding(from, target)
	if cur == nil {
		return from
	}
	visited[cur.Idx] = true
	for cur.IsSide() && cur.X != target.X && cur.Y != target.Y {
		next := g.closestSurrounding(cur, target)
		if next == nil {
			break
		}
		seen := visited[next.Idx]
		visited[next.Idx] = true
		cur = next
		if seen {
			break
		}
	}
	return cur
}

// closestSurrounding returns the surrounding pixel of v nearest to target,
// the earliest one on ties, or nil when v has none.
func (g *Graph) closestSurrounding(v, target *Vertex) *Vertex {
	var best *Vertex
	bestDist := math.Inf(1)
	for _, idx := range v.Surrounding {
		s := g.vertices[idx]
		if d := distance(s, target); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best
}

// onePerQuadrant keeps the first candidate and every later candidate that
// lies in a different quadrant from it.
func onePerQuadrant(v *Vertex, candidates []*Vertex) []*Vertex {
	if len(candidates) == 0 {
		return candidates
	}
	first := quadrant(v, candidates[0])
	out := []*Vertex{candidates[0]}
	for _, c := range candidates[1:] {
		if quadrant(v, c) != first {
			out = append(out, c)
		}
	}
	return out
}

func limit(vs []*Vertex, n int) []*Vertex {
	if len(vs) > n {
		return vs[:n]
	}
	return vs
}

// quadrant numbers the direction from a to b: 1 for +x+y, 2 for +x-y,
// 3 for -x-y and 4 for everything else, including axis-aligned directions.
func quadrant(a, b *Vertex) int {
	dx, dy := b.X-a.X, b.Y-a.Y
	switch {
	case dx > 0 && dy > 0:
		return 1
	case dx > 0 && dy < 0:
		return 2
	case dx < 0 && dy < 0:
		return 3
	default:
		return 4
	}
}

// distance is the planar Euclidean distance; depth is ignored.
func distance(a, b *Vertex) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}
