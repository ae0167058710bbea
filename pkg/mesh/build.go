package mesh

import (
	errs "github.com/matzehuels/pixmesh/pkg/errors"
)

// BytesPerPixel is the number of channel bytes per raster pixel.
const BytesPerPixel = 4

// ChannelRule decides which channel bytes make a pixel foreground.
type ChannelRule int

const (
	// FirstChannel marks a pixel as foreground when its first channel byte is
	// nonzero. Later channels are never consulted, so a dark shape on a
	// transparent background reads as background.
	FirstChannel ChannelRule = iota
	// AnyChannel marks a pixel as foreground when any channel byte is
	// nonzero, alpha included.
	AnyChannel
)

// String returns the rule name used in cache keys and logs.
func (r ChannelRule) String() string {
	if r == AnyChannel {
		return "any"
	}
	return "first"
}

// BuildOption configures [Build].
type BuildOption func(*buildConfig)

type buildConfig struct {
	rule ChannelRule
}

// WithChannelRule selects the foreground test. The default is [FirstChannel].
func WithChannelRule(r ChannelRule) BuildOption {
	return func(c *buildConfig) { c.rule = r }
}

// pixelIndex maps raster cells to vertex indices; -1 marks background.
type pixelIndex struct {
	width, height int
	cells         []int
}

func newPixelIndex(width, height int) *pixelIndex {
	cells := make([]int, width*height)
	for i := range cells {
		cells[i] = -1
	}
	return &pixelIndex{width: width, height: height, cells: cells}
}

// at returns the vertex index at (row, col), or -1 for background and
// out-of-bounds cells.
func (p *pixelIndex) at(row, col int) int {
	if row < 0 || col < 0 || row >= p.height || col >= p.width {
		return -1
	}
	return p.cells[row*p.width+col]
}

func (p *pixelIndex) set(row, col, idx int) {
	p.cells[row*p.width+col] = idx
}

// neighborhood holds the 8-connected cells around a pixel.
type neighborhood struct {
	topLeft, top, topRight          int
	left, right                     int
	bottomLeft, bottom, bottomRight int
}

func (p *pixelIndex) neighborhood(row, col int) neighborhood {
	return neighborhood{
		topLeft:     p.at(row-1, col-1),
		top:         p.at(row-1, col),
		topRight:    p.at(row-1, col+1),
		left:        p.at(row, col-1),
		right:       p.at(row, col+1),
		bottomLeft:  p.at(row+1, col-1),
		bottom:      p.at(row+1, col),
		bottomRight: p.at(row+1, col+1),
	}
}

// surrounding lists the existing cells in top-left to bottom-right order.
func (n neighborhood) surrounding() []int {
	return present(n.topLeft, n.top, n.topRight, n.left, n.right, n.bottomLeft, n.bottom, n.bottomRight)
}

// axis lists the existing orthogonal cells as left, right, top, bottom.
func (n neighborhood) axis() []int {
	return present(n.left, n.right, n.top, n.bottom)
}

func present(idx ...int) []int {
	out := make([]int, 0, len(idx))
	for _, i := range idx {
		if i >= 0 {
			out = append(out, i)
		}
	}
	return out
}

// Build converts a raster into a vertex graph. pixels holds width*height
// pixels of [BytesPerPixel] bytes each, row-major.
//
// Every foreground pixel becomes a vertex at (col, row, 0), created in
// row-major order. A vertex is linked to its orthogonal foreground
// neighbors, except when all eight surrounding pixels are foreground and the
// row and column parities differ: such cells sit inside the checkerboard
// region and are left unlinked.
//
// Build does not remove redundant edges; call [ReduceRedundantEdges] on the
// result for that. A raster with no foreground yields an empty graph.
func Build(width, height int, pixels []byte, opts ...BuildOption) (*Graph, error) {
	if err := errs.ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	if want := width * height * BytesPerPixel; len(pixels) != want {
		return nil, errs.New(errs.ErrCodeInvalidInput,
			"pixel buffer has %d bytes, want %d for %dx%d", len(pixels), want, width, height)
	}

	cfg := buildConfig{rule: FirstChannel}
	for _, opt := range opts {
		opt(&cfg)
	}

	g := New()
	index := newPixelIndex(width, height)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			off := (row*width + col) * BytesPerPixel
			if !cfg.rule.Foreground(pixels[off : off+BytesPerPixel]) {
				continue
			}
			index.set(row, col, g.Add(col, row, 0).Idx)
		}
	}

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			idx := index.at(row, col)
			if idx < 0 {
				continue
			}
			v := g.vertices[idx]
			hood := index.neighborhood(row, col)
			v.Surrounding = hood.surrounding()
			if len(v.Surrounding) == 8 && row%2 != col%2 {
				continue
			}
			v.Neighbors = hood.axis()
		}
	}

	return g, nil
}

// Foreground reports whether px, one pixel of [BytesPerPixel] bytes, is
// foreground under r.
func (r ChannelRule) Foreground(px []byte) bool {
	if r == AnyChannel {
		for _, b := range px {
			if b != 0 {
				return true
			}
		}
		return false
	}
	return px[0] != 0
}
