package sink

import "github.com/matzehuels/pixmesh/pkg/mesh"

// Region identifiers written into element records. Every element belongs to
// a single material region; surfaces face the exterior region.
const (
	RegionInside  = 1
	RegionOutside = -1
)

// Option configures element enumeration for the mesh sinks.
type Option func(*config)

type config struct {
	volumes bool
}

// WithoutVolumes omits volume elements. The volume section is still written,
// with a count of zero.
func WithoutVolumes() Option { return func(c *config) { c.volumes = false } }

// WithVolumes enables or disables volume elements.
func WithVolumes(enabled bool) Option { return func(c *config) { c.volumes = enabled } }

func newConfig(opts ...Option) config {
	c := config{volumes: true}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Elements holds the enumerated elements of a graph.
type Elements struct {
	Surfaces []mesh.Surface
	Volumes  []mesh.Volume
}

// Collect enumerates the surface and (unless disabled) volume elements of g.
func Collect(g *mesh.Graph, opts ...Option) Elements {
	c := newConfig(opts...)
	e := Elements{Surfaces: mesh.Surfaces(g)}
	if c.volumes {
		e.Volumes = mesh.Volumes(g)
	}
	return e
}
