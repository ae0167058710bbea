// Package raster decodes silhouette images into the RGBA pixel buffers that
// the mesh builder consumes.
//
// Supported inputs are PNG, JPEG and GIF through the standard library
// decoders, BMP, TIFF and WebP through golang.org/x/image, and plain netpbm
// bitmaps (P1) and graymaps (P2). Every image is converted to a [Raster] of
// row-major RGBA bytes anchored at the origin.
//
//	r, err := raster.Load("star.png")
//	if err != nil {
//	    return err
//	}
//	g, err := mesh.Build(r.Width, r.Height, r.Pix)
//
// Decode failures are reported as INVALID_INPUT errors and missing files as
// FILE_NOT_FOUND.
package raster
