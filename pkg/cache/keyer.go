package cache

// GraphKeyOpts holds every option that changes the graph built from a raster.
type GraphKeyOpts struct {
	ChannelRule string  `json:"channel_rule"`
	Invert      bool    `json:"invert,omitempty"`
	Reduce      bool    `json:"reduce"`
	Smooth      bool    `json:"smooth"`
	MaxDist     float64 `json:"max_dist"`
	Thickness   int     `json:"thickness"`
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Volumes bool   `json:"volumes"`
	Detail  bool   `json:"detail,omitempty"`
}

// Keyer generates cache keys for pipeline stages.
type Keyer interface {
	// GraphKey keys the mesh graph built from the raster with the given hash.
	GraphKey(rasterHash string, opts GraphKeyOpts) string
	// ArtifactKey keys one rendered output of the graph with the given hash.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes stage inputs into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// GraphKey returns "graph:<sha256>" over the raster hash and options.
func (DefaultKeyer) GraphKey(rasterHash string, opts GraphKeyOpts) string {
	return hashKey("graph", rasterHash, opts)
}

// ArtifactKey returns "artifact:<sha256>" over the graph hash and options.
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

var _ Keyer = DefaultKeyer{}
