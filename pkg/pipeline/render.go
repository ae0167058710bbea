package pipeline

import (
	"bytes"
	"context"
	"fmt"

	errs "github.com/matzehuels/pixmesh/pkg/errors"
	pkgio "github.com/matzehuels/pixmesh/pkg/io"
	"github.com/matzehuels/pixmesh/pkg/mesh"
	"github.com/matzehuels/pixmesh/pkg/render/nodelink"
	"github.com/matzehuels/pixmesh/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, g *mesh.Graph, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var dot string

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatPyfem:
			data = sink.RenderPyfem(g, sink.WithVolumes(!opts.SkipVolumes))
		case FormatNeutral:
			data = sink.RenderNeutral(g, sink.WithVolumes(!opts.SkipVolumes))
		case FormatSTL:
			data = sink.RenderSTL(g)
		case FormatJSON:
			data, err = MarshalGraph(g)
		case FormatDOT, FormatSVG:
			if dot == "" {
				dot = nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed})
			}
			if format == FormatDOT {
				data = []byte(dot)
			} else {
				data, err = nodelink.RenderSVGContext(ctx, dot)
			}
		default:
			return nil, errs.New(errs.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// MarshalGraph returns the JSON form of g written by [pkgio.WriteJSON].
func MarshalGraph(g *mesh.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalGraph decodes a graph written by [MarshalGraph].
func UnmarshalGraph(data []byte) (*mesh.Graph, error) {
	return pkgio.ReadJSON(bytes.NewReader(data))
}
