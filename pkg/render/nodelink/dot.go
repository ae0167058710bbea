package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pixmesh/pkg/mesh"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes coordinates and the corner/side class in node
	// labels. When false, only the vertex index is shown.
	Detailed bool
}

// layerColors cycles fill colors by depth so extruded layers stay apart.
var layerColors = []string{"white", "lightblue", "lightyellow", "palegreen", "mistyrose"}

// ToDOT converts a mesh graph to Graphviz DOT format for node-link visualization.
// The resulting DOT string can be rendered using [RenderSVG].
//
// Each vertex becomes a node pinned at its lattice position, depth layers
// get distinct fill colors, and mutual links are drawn once without arrows.
// One-way links keep their arrowhead.
func ToDOT(g *mesh.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.3, fixedsize=false];\n")
	buf.WriteString("  edge [arrowsize=0.5];\n")
	buf.WriteString("\n")

	for _, v := range g.Vertices() {
		attrs := fmtAttrs(v, fmtLabel(v, opts.Detailed))
		fmt.Fprintf(&buf, "  %q [%s];\n", strconv.Itoa(v.Idx), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, v := range g.Vertices() {
		for _, n := range v.Neighbors {
			w := g.Vertex(n)
			if w == nil {
				continue
			}
			mutual := w.HasNeighbor(v.Idx)
			if mutual && n < v.Idx {
				continue
			}
			attr := ""
			if mutual {
				attr = " [dir=none]"
			}
			fmt.Fprintf(&buf, "  %q -> %q%s;\n", strconv.Itoa(v.Idx), strconv.Itoa(n), attr)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(v *mesh.Vertex, detailed bool) string {
	if !detailed {
		return strconv.Itoa(v.Idx)
	}
	label := fmt.Sprintf("%d\n(%d,%d,%d)", v.Idx, v.X, v.Y, v.Z)
	switch {
	case v.Z != 0:
	case v.IsCorner():
		label += "\ncorner"
	case v.IsSide():
		label += "\nside"
	}
	return label
}

func fmtAttrs(v *mesh.Vertex, label string) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("pos=\"%d,%d!\"", v.X, -v.Y),
	}
	if v.Z > 0 {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%s", layerColors[v.Z%len(layerColors)]))
	}
	if !v.Exterior {
		attrs = append(attrs, "style=\"filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return RenderSVGContext(context.Background(), dot)
}

// RenderSVGContext is [RenderSVG] with a caller-supplied context for the
// Graphviz runtime.
func RenderSVGContext(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
