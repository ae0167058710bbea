package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/pixmesh/pkg/cache"
	"github.com/matzehuels/pixmesh/pkg/mesh"
	"github.com/matzehuels/pixmesh/pkg/observability"
	"github.com/matzehuels/pixmesh/pkg/raster"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options; each run builds its own graph.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete mesh → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, img *raster.Raster, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.New(),
		Artifacts: make(map[string][]byte),
	}
	logger := r.Logger.With("run", result.RunID.String()[:8])

	// Stages 1-4: Mesh
	g, meshHit, err := r.meshWithStats(ctx, img, opts, &result.Stats)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.Vertices = g.Len()
	result.Stats.Edges = g.EdgeCount()
	result.Stats.Layers = g.Layers()
	result.CacheInfo.MeshHit = meshHit

	logger.Info("meshed raster",
		"width", img.Width,
		"height", img.Height,
		"vertices", g.Len(),
		"layers", g.Layers(),
		"cached", meshHit)

	// Stage 5: Render
	renderStart := time.Now()
	artifacts, hash, renderHit, err := r.render(ctx, g, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.GraphHash = hash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// MeshWithCacheInfo builds the mesh graph with caching and returns cache hit info.
func (r *Runner) MeshWithCacheInfo(ctx context.Context, img *raster.Raster, opts Options) (*mesh.Graph, bool, error) {
	return r.meshWithStats(ctx, img, opts, nil)
}

// Mesh is a convenience wrapper that calls MeshWithCacheInfo and discards the cache hit info.
func (r *Runner) Mesh(ctx context.Context, img *raster.Raster, opts Options) (*mesh.Graph, error) {
	g, _, err := r.MeshWithCacheInfo(ctx, img, opts)
	return g, err
}

func (r *Runner) meshWithStats(ctx context.Context, img *raster.Raster, opts Options, stats *Stats) (*mesh.Graph, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForMesh(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.GraphKey(img.Hash(), opts.MeshKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			g, err := UnmarshalGraph(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return g, true, nil // Cache hit
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	g, err := Mesh(ctx, img, opts, stats)
	if err != nil {
		return nil, false, err
	}

	// Cache the result; a refresh overwrites the stale entry
	if data, err := MarshalGraph(g); err == nil {
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph) == nil {
			observability.Cache().OnCacheSet(ctx, "graph", len(data))
		}
	}

	return g, false, nil // Cache miss
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g *mesh.Graph, opts Options) (map[string][]byte, bool, error) {
	artifacts, _, hit, err := r.render(ctx, g, opts)
	return artifacts, hit, err
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, g *mesh.Graph, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return artifacts, err
}

// render returns the artifacts, the graph hash they are keyed on and
// whether every format came from the cache.
func (r *Runner) render(ctx context.Context, g *mesh.Graph, opts Options) (map[string][]byte, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}

	// Compute cache key from the graph's serialized form
	graphData, err := MarshalGraph(g)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize graph for cache key: %w", err)
	}
	graphHash := cache.Hash(graphData)

	// Try to get all formats from cache
	allCached := !opts.Refresh
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		if !allCached {
			break
		}
		cacheKey := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, graphHash, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Render all formats
	if err := ctx.Err(); err != nil {
		return nil, "", false, fmt.Errorf("%s: %w", StageRender, err)
	}
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, StageRender, g.Len())
	start := time.Now()
	rendered, err := Render(ctx, g, opts)
	hooks.OnStageComplete(ctx, StageRender, g.Len(), time.Since(start), err)
	if err != nil {
		return nil, "", false, fmt.Errorf("%s: %w", StageRender, err)
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(graphHash, opts.ArtifactKeyOpts(format))
		if r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return rendered, graphHash, false, nil // Cache miss
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
