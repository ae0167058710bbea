// Package pipeline provides the core meshing pipeline for pixmesh.
//
// This package implements the complete build → reduce → smooth → extrude →
// render pipeline used by the CLI and the HTTP API. By centralizing this
// logic, every entry point meshes a raster the same way and shares one cache.
//
// # Architecture
//
// The pipeline consists of five stages:
//
//  1. Build: Turn the raster's foreground pixels into a lattice graph
//  2. Reduce: Drop orthogonal links the diagonal lattice already covers
//  3. Smooth: Bridge silhouette corners toward nearby corners and sides
//  4. Extrude: Stack shifted copies of the base layer to give it depth
//  5. Render: Serialize the graph (PYFEM, neutral, STL, JSON, DOT, SVG)
//
// Stages 1-4 produce the mesh graph and are cached together; each rendered
// format is cached separately. Decoding the image ([Decode], [Load]) is
// reported to the hooks as a stage of its own but is never cached.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	r, err := pipeline.Load(ctx, "shape.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, r, pipeline.Options{
//	    Thickness: 4,
//	    Formats:   []string{pipeline.FormatPyfem},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	nmesh := result.Artifacts[pipeline.FormatPyfem]
//
// Run individual stages:
//
//	// Mesh only
//	g, err := runner.Mesh(ctx, r, opts)
//
//	// Render an existing graph
//	artifacts, err := runner.Render(ctx, g, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/pixmesh/pkg/cache"
	errs "github.com/matzehuels/pixmesh/pkg/errors"
	"github.com/matzehuels/pixmesh/pkg/mesh"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultMaxDist is the smoothing radius used when MaxDist is unset.
	DefaultMaxDist = mesh.DefaultMaxDist

	// DefaultThickness is the number of extruded layers. Zero keeps the
	// mesh flat.
	DefaultThickness = 0
)

// Format constants for output formats.
const (
	FormatPyfem   = "nmesh"
	FormatNeutral = "neutral"
	FormatSTL     = "stl"
	FormatJSON    = "json"
	FormatDOT     = "dot"
	FormatSVG     = "svg"
)

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = FormatPyfem

// ValidFormats lists the supported output formats in display order.
var ValidFormats = []string{FormatPyfem, FormatNeutral, FormatSTL, FormatJSON, FormatDOT, FormatSVG}

// ContentTypes maps each output format to its MIME type.
var ContentTypes = map[string]string{
	FormatPyfem:   "text/plain; charset=utf-8",
	FormatNeutral: "text/plain; charset=utf-8",
	FormatSTL:     "model/stl",
	FormatJSON:    "application/json",
	FormatDOT:     "text/vnd.graphviz",
	FormatSVG:     "image/svg+xml",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the meshing pipeline.
// This struct supports JSON, TOML and YAML decoding for API requests and
// config files.
type Options struct {
	// Build options
	AnyChannel bool `json:"any_channel,omitempty" toml:"any_channel" yaml:"any_channel"`
	Invert     bool `json:"invert,omitempty" toml:"invert" yaml:"invert"`

	// Mesh options
	SkipReduce bool     `json:"skip_reduce,omitempty" toml:"skip_reduce" yaml:"skip_reduce"`
	NoSmooth   bool     `json:"no_smooth,omitempty" toml:"no_smooth" yaml:"no_smooth"`
	MaxDist    *float64 `json:"max_dist,omitempty" toml:"max_dist" yaml:"max_dist"` // nil means DefaultMaxDist
	Thickness  int      `json:"thickness,omitempty" toml:"thickness" yaml:"thickness"`
	Refresh    bool     `json:"refresh,omitempty" toml:"-" yaml:"-"`

	// Render options
	Formats     []string `json:"formats,omitempty" toml:"formats" yaml:"formats"`
	SkipVolumes bool     `json:"skip_volumes,omitempty" toml:"skip_volumes" yaml:"skip_volumes"`
	Detailed    bool     `json:"detailed,omitempty" toml:"detailed" yaml:"detailed"` // DOT/SVG labels

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-" yaml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and API responses.
	RunID uuid.UUID

	// Graph is the final mesh graph.
	Graph *mesh.Graph

	// GraphHash is the content hash of the graph's JSON form.
	GraphHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics. Stage timings stay zero when
// the graph came from the cache.
type Stats struct {
	Vertices    int
	Edges       int
	Layers      int
	BuildTime   time.Duration
	ReduceTime  time.Duration
	SmoothTime  time.Duration
	ExtrudeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	MeshHit   bool // Whether the graph came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errs.ValidateFormat(format, ValidFormats)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForMesh(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// Clone returns a copy with its own Formats slice. The copy is validated
// again by ValidateAndSetDefaults, so fields changed on it are checked.
func (o Options) Clone() Options {
	o.Formats = slices.Clone(o.Formats)
	if o.MaxDist != nil {
		o.MaxDist = Float64(*o.MaxDist)
	}
	o.validated = false
	return o
}

// SetMeshDefaults sets default values for graph construction.
func (o *Options) SetMeshDefaults() {
	if o.MaxDist == nil {
		o.MaxDist = Float64(DefaultMaxDist)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForMesh validates and sets defaults for graph construction.
func (o *Options) ValidateForMesh() error {
	o.SetMeshDefaults()
	if err := errs.ValidateThickness(o.Thickness); err != nil {
		return err
	}
	return errs.ValidateMaxDist(o.SmoothRadius())
}

// SmoothRadius returns the bridging radius: MaxDist when set, otherwise
// DefaultMaxDist. An explicit zero bridges nothing.
func (o *Options) SmoothRadius() float64 {
	if o.MaxDist == nil {
		return DefaultMaxDist
	}
	return *o.MaxDist
}

// Float64 returns a pointer to v, for setting MaxDist.
func Float64(v float64) *float64 { return &v }

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// ChannelRule returns the foreground test selected by AnyChannel.
func (o *Options) ChannelRule() mesh.ChannelRule {
	if o.AnyChannel {
		return mesh.AnyChannel
	}
	return mesh.FirstChannel
}

// MeshKeyOpts returns cache key options for graph construction.
func (o *Options) MeshKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		ChannelRule: o.ChannelRule().String(),
		Invert:      o.Invert,
		Reduce:      !o.SkipReduce,
		Smooth:      !o.NoSmooth,
		MaxDist:     o.SmoothRadius(),
		Thickness:   o.Thickness,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  format,
		Volumes: !o.SkipVolumes,
		Detail:  o.Detailed,
	}
}
