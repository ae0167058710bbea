package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/pixmesh/pkg/mesh"
	"github.com/matzehuels/pixmesh/pkg/observability"
	"github.com/matzehuels/pixmesh/pkg/raster"
)

// Stage names reported to observability hooks and wrapped into errors.
const (
	StageDecode  = "decode"
	StageBuild   = "build"
	StageReduce  = "reduce"
	StageSmooth  = "smooth"
	StageExtrude = "extrude"
	StageRender  = "render"
)

// Mesh runs the build, reduce, smooth and extrude stages on r without
// caching. Stage durations are recorded into stats when it is non-nil.
//
// The context is checked between stages; a stage itself always runs to
// completion.
func Mesh(ctx context.Context, r *raster.Raster, opts Options, stats *Stats) (*mesh.Graph, error) {
	if err := opts.ValidateForMesh(); err != nil {
		return nil, err
	}
	if stats == nil {
		stats = &Stats{}
	}

	if opts.Invert {
		r = r.Invert(opts.ChannelRule())
	}

	var g *mesh.Graph
	err := runStage(ctx, StageBuild, 0, &stats.BuildTime, func() (int, error) {
		var err error
		g, err = mesh.Build(r.Width, r.Height, r.Pix, mesh.WithChannelRule(opts.ChannelRule()))
		if err != nil {
			return 0, err
		}
		return g.Len(), nil
	})
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("built graph", "vertices", g.Len(), "edges", g.EdgeCount())

	if !opts.SkipReduce {
		err := runStage(ctx, StageReduce, g.Len(), &stats.ReduceTime, func() (int, error) {
			mesh.ReduceRedundantEdges(g)
			return g.Len(), nil
		})
		if err != nil {
			return nil, err
		}
		opts.Logger.Debug("reduced edges", "edges", g.EdgeCount())
	}

	if !opts.NoSmooth {
		before := g.Len()
		err := runStage(ctx, StageSmooth, before, &stats.SmoothTime, func() (int, error) {
			mesh.Smooth(g, opts.SmoothRadius())
			return g.Len(), nil
		})
		if err != nil {
			return nil, err
		}
		opts.Logger.Debug("smoothed corners", "bridges", g.Len()-before, "max_dist", opts.SmoothRadius())
	}

	if opts.Thickness > 0 {
		err := runStage(ctx, StageExtrude, g.Len(), &stats.ExtrudeTime, func() (int, error) {
			mesh.Extrude(g, opts.Thickness)
			return g.Len(), nil
		})
		if err != nil {
			return nil, err
		}
		opts.Logger.Debug("extruded layers", "layers", g.Layers(), "vertices", g.Len())
	}

	return g, nil
}

// runStage times fn, reports it to the pipeline hooks and wraps its error
// with the stage name.
func runStage(ctx context.Context, stage string, vertices int, elapsed *time.Duration, fn func() (int, error)) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}
	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, stage, vertices)

	start := time.Now()
	n, err := fn()
	*elapsed = time.Since(start)

	hooks.OnStageComplete(ctx, stage, n, *elapsed, err)
	if err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}
	return nil
}
