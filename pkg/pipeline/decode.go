package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/pixmesh/pkg/raster"
)

// Decode turns encoded image bytes into a raster as the decode stage, so
// hooks see decoding alongside the mesh stages.
func Decode(ctx context.Context, data []byte) (*raster.Raster, error) {
	return decodeStage(ctx, func() (*raster.Raster, error) { return raster.DecodeBytes(data) })
}

// Load reads and decodes the image at path as the decode stage.
func Load(ctx context.Context, path string) (*raster.Raster, error) {
	return decodeStage(ctx, func() (*raster.Raster, error) { return raster.Load(path) })
}

func decodeStage(ctx context.Context, decode func() (*raster.Raster, error)) (*raster.Raster, error) {
	var (
		r       *raster.Raster
		elapsed time.Duration
	)
	err := runStage(ctx, StageDecode, 0, &elapsed, func() (int, error) {
		var err error
		r, err = decode()
		return 0, err
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}
