package raster

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"

	pkgerrors "github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	errs "github.com/matzehuels/pixmesh/pkg/errors"
	"github.com/matzehuels/pixmesh/pkg/mesh"
)

// Raster is a decoded image as row-major RGBA bytes, the input of
// [mesh.Build].
type Raster struct {
	Width  int
	Height int
	Pix    []byte
}

// New wraps an existing pixel buffer. It returns an INVALID_INPUT error when
// the buffer length does not match the dimensions.
func New(width, height int, pix []byte) (*Raster, error) {
	if err := errs.ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	if want := width * height * mesh.BytesPerPixel; len(pix) != want {
		return nil, errs.New(errs.ErrCodeInvalidInput,
			"pixel buffer has %d bytes, want %d for %dx%d", len(pix), want, width, height)
	}
	return &Raster{Width: width, Height: height, Pix: pix}, nil
}

// FromImage converts any image to an RGBA raster anchored at the origin.
func FromImage(img image.Image) *Raster {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Raster{Width: b.Dx(), Height: b.Dy(), Pix: dst.Pix}
}

// Decode reads an image from r. PNG, JPEG, GIF, BMP, TIFF and WebP are
// detected by their magic bytes; plain netpbm bitmaps (P1) and graymaps (P2)
// by their header.
func Decode(r io.Reader) (*Raster, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "read image")
	}
	return DecodeBytes(data)
}

// DecodeBytes is [Decode] over an in-memory buffer.
func DecodeBytes(data []byte) (*Raster, error) {
	if isNetpbm(data) {
		rs, err := decodeNetpbm(data)
		if err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode netpbm")
		}
		return rs, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, pkgerrors.Wrap(err, "decode image"), "unsupported or corrupt image")
	}
	rs := FromImage(img)
	if err := errs.ValidateDimensions(rs.Width, rs.Height); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "%s image too large", format)
	}
	return rs, nil
}

// Load reads and decodes the image file at path.
func Load(path string) (*Raster, error) {
	if err := errs.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "image %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "read %s", path)
	}
	return DecodeBytes(data)
}

// Invert swaps foreground and background under rule: foreground pixels
// become opaque black and background pixels opaque white. Silhouettes drawn
// dark on a light background need this before meshing.
func (r *Raster) Invert(rule mesh.ChannelRule) *Raster {
	out := &Raster{Width: r.Width, Height: r.Height, Pix: make([]byte, len(r.Pix))}
	for off := 0; off+mesh.BytesPerPixel <= len(r.Pix); off += mesh.BytesPerPixel {
		var v byte = 255
		if rule.Foreground(r.Pix[off:off+mesh.BytesPerPixel]) {
			v = 0
		}
		out.Pix[off], out.Pix[off+1], out.Pix[off+2], out.Pix[off+3] = v, v, v, 255
	}
	return out
}

// Hash returns a stable hex digest of the dimensions and pixel data.
func (r *Raster) Hash() string {
	h := sha256.New()
	var dims [16]byte
	binary.LittleEndian.PutUint64(dims[:8], uint64(r.Width))
	binary.LittleEndian.PutUint64(dims[8:], uint64(r.Height))
	h.Write(dims[:])
	h.Write(r.Pix)
	return hex.EncodeToString(h.Sum(nil))
}

// Foreground counts the pixels that are foreground under rule.
func (r *Raster) Foreground(rule mesh.ChannelRule) int {
	n := 0
	for off := 0; off+mesh.BytesPerPixel <= len(r.Pix); off += mesh.BytesPerPixel {
		if rule.Foreground(r.Pix[off:off+mesh.BytesPerPixel]) {
			n++
		}
	}
	return n
}
