package image

import (
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/compression"
	"github.com/jmylchreest/swatch/internal/security"
)

// MaxRawBytes caps the decoded size of a raw pixel dump (256 MiB, one 8192x8192 frame).
const MaxRawBytes = 256 << 20

// IsRawPath reports whether path names a raw RGBA dump, optionally compressed
// with gzip, xz or bzip2.
func IsRawPath(path string) bool {
	return strings.HasSuffix(strings.ToLower(compression.TrimExt(path)), ".rgba")
}

// LoadRaw reads a raw RGBA dump from disk. Compressed dumps are recognised by
// their extension (.gz, .xz, .bz2).
// When width is positive the pixel count must fill whole rows of that width.
func LoadRaw(path string, width int) (colour.Pixels, error) {
	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open raw pixel file: %w", err)
	}
	defer file.Close()

	r, err := compression.NewReader(file, compression.DetectFormat(path))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return ReadRaw(r, width)
}

// ReadRaw reads tightly packed RGBA bytes from r.
func ReadRaw(r io.Reader, width int) (colour.Pixels, error) {
	if width < 0 {
		return nil, fmt.Errorf("raw width cannot be negative: %d", width)
	}

	// One extra byte lets a dump of exactly MaxRawBytes reach EOF.
	data, err := io.ReadAll(security.NewLimitedReader(r, MaxRawBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read raw pixels: %w", err)
	}
	if len(data) > MaxRawBytes {
		return nil, fmt.Errorf("raw pixel data exceeds %d bytes", MaxRawBytes)
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("raw pixel data length %d is not a multiple of 4", len(data))
	}
	if width > 0 && len(data)%(4*width) != 0 {
		return nil, fmt.Errorf("raw pixel data length %d does not fill rows of width %d", len(data), width)
	}

	return colour.Pixels(data), nil
}

// RawImage wraps raw pixels as an image of the given width, for callers that need
// an image.Image (downscaling, remapping).
func RawImage(px colour.Pixels, width int) (*image.NRGBA, error) {
	if width <= 0 {
		return nil, fmt.Errorf("raw width must be positive to build an image")
	}
	if px.Len()%width != 0 {
		return nil, fmt.Errorf("%d pixels do not fill rows of width %d", px.Len(), width)
	}
	height := px.Len() / width
	return &image.NRGBA{
		Pix:    px,
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}, nil
}
