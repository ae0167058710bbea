package errors

import (
	"math"
	"slices"
	"strings"
	"unicode"
)

// Limits applied to user-supplied mesh parameters.
const (
	MaxThickness = 256
	MaxPixels    = 4096 * 4096
	maxPathLen   = 4096
)

// ValidatePath validates a user-supplied file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	if len(path) > maxPathLen {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLen)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateFormat checks that name is one of the allowed output formats.
// Matching is case-sensitive; callers normalize first.
func ValidateFormat(name string, allowed []string) error {
	if name == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !slices.Contains(allowed, name) {
		return New(ErrCodeInvalidFormat, "unknown format %q (want one of %s)", name, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidateThickness checks the number of extrusion layers.
func ValidateThickness(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "thickness cannot be negative: %d", n)
	}
	if n > MaxThickness {
		return New(ErrCodeInvalidInput, "thickness %d exceeds maximum %d", n, MaxThickness)
	}
	return nil
}

// ValidateMaxDist checks the smoothing radius.
func ValidateMaxDist(d float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return New(ErrCodeInvalidInput, "max distance must be finite")
	}
	if d < 0 {
		return New(ErrCodeInvalidInput, "max distance cannot be negative: %g", d)
	}
	return nil
}

// ValidateDimensions checks raster dimensions against [MaxPixels].
func ValidateDimensions(width, height int) error {
	if width < 0 || height < 0 {
		return New(ErrCodeInvalidInput, "negative raster dimensions %dx%d", width, height)
	}
	if width > 0 && height > MaxPixels/width {
		return New(ErrCodeInvalidInput, "raster %dx%d exceeds %d pixels", width, height, MaxPixels)
	}
	return nil
}
