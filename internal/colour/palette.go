// Package colour builds representative colour palettes from RGBA pixel buffers.
//
// A palette is produced in one of three ways. When the image holds no more distinct
// colours than requested, every colour is returned verbatim (exact mode). Richer images
// are clustered by median-cut box splitting over the RGB cube (quantized mode). A palette
// of one colour is the plain channel-wise average.
package colour

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Palette is the result of a palette extraction.
//
// IDs holds one entry per input pixel, each an index into Colors. Weights is parallel
// to Colors and sums to 1 whenever the source had at least one pixel.
type Palette struct {
	Colors  []RGBA
	IDs     []int
	Weights []float64
	Mode    Mode
}

func emptyPalette() *Palette {
	return &Palette{
		Colors:  []RGBA{},
		IDs:     []int{},
		Weights: []float64{},
		Mode:    ModeEmpty,
	}
}

// Len returns the number of colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// RGB represents a color in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// RGBA is a non-premultiplied 8-bit colour.
type RGBA struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// RGB drops the alpha channel.
func (c RGBA) RGB() RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// Hex returns the colour as "#rrggbb".
func (c RGBA) Hex() string {
	return c.RGB().Hex()
}

// HexAlpha returns the colour as "#rrggbbaa".
func (c RGBA) HexAlpha() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// String returns the colour in the format "rgba(r, g, b, a)".
func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %d)", c.R, c.G, c.B, c.A)
}

// Color converts c to a color.NRGBA.
func (c RGBA) Color() color.Color {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// ToHex converts the palette colors to hex strings.
// Returns a slice of hex color codes (e.g., ["#1a2b3c", "#4d5e6f"]).
func (p *Palette) ToHex() []string {
	hexColors := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		hexColors[i] = c.Hex()
	}
	return hexColors
}

// ToRGBSlice converts the palette colors to RGB structs.
func (p *Palette) ToRGBSlice() []RGB {
	rgbColors := make([]RGB, len(p.Colors))
	for i, c := range p.Colors {
		rgbColors[i] = c.RGB()
	}
	return rgbColors
}

// ColorJSON represents a color in JSON output format.
type ColorJSON struct {
	Hex    string  `json:"hex"`
	RGB    RGB     `json:"rgb"`
	Alpha  uint8   `json:"alpha"`
	Weight float64 `json:"weight"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count  int         `json:"count"`
	Mode   Mode        `json:"mode"`
	Colors []ColorJSON `json:"colors"`
	IDs    []int       `json:"ids,omitempty"`
}

// ToJSON converts the palette to JSON format. The per-pixel ids are only included
// when withIDs is set since they are as long as the image.
func (p *Palette) ToJSON(withIDs bool) ([]byte, error) {
	colors := make([]ColorJSON, len(p.Colors))
	for i, c := range p.Colors {
		colors[i] = ColorJSON{
			Hex:    c.Hex(),
			RGB:    c.RGB(),
			Alpha:  c.A,
			Weight: p.weight(i),
		}
	}

	paletteJSON := PaletteJSON{
		Count:  len(p.Colors),
		Mode:   p.Mode,
		Colors: colors,
	}
	if withIDs {
		paletteJSON.IDs = p.IDs
	}

	return json.MarshalIndent(paletteJSON, "", "  ")
}

func (p *Palette) weight(i int) float64 {
	if i < len(p.Weights) {
		return p.Weights[i]
	}
	return 0
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colors) == 0 {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colors (%s):\n", len(p.Colors), p.Mode)
	for i, c := range p.Colors {
		fmt.Fprintf(&sb, "  %2d: %s (%s) %6.2f%%\n", i+1, c.Hex(), c.String(), p.weight(i)*100)
	}
	return sb.String()
}

// Get returns the color at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (RGBA, error) {
	if index < 0 || index >= len(p.Colors) {
		return RGBA{}, fmt.Errorf("index out of bounds: %d (palette has %d colors)", index, len(p.Colors))
	}
	return p.Colors[index], nil
}

// All returns an iterator over all colors in the palette.
func (p *Palette) All() func(func(int, RGBA) bool) {
	return func(yield func(int, RGBA) bool) {
		for i, c := range p.Colors {
			if !yield(i, c) {
				return
			}
		}
	}
}

// Image rebuilds the assignment table as a paletted image of the given size.
func (p *Palette) Image(width, height int) (*image.Paletted, error) {
	if width < 0 || height < 0 || width*height != len(p.IDs) {
		return nil, fmt.Errorf("dimensions %dx%d do not match %d assigned pixels", width, height, len(p.IDs))
	}
	if len(p.Colors) > 256 {
		return nil, fmt.Errorf("palette too large for a paletted image: %d colors (maximum: 256)", len(p.Colors))
	}

	cp := make(color.Palette, len(p.Colors))
	for i, c := range p.Colors {
		cp[i] = c.Color()
	}

	img := image.NewPaletted(image.Rect(0, 0, width, height), cp)
	for i, id := range p.IDs {
		img.Pix[i] = uint8(id)
	}
	return img, nil
}
