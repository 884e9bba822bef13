package colour

import (
	"fmt"
	"image"
	"slices"

	"github.com/hashicorp/go-hclog"
)

// Mode identifies the strategy that produced, or should produce, a palette.
type Mode string

const (
	// ModeAuto returns exact colours when they fit and quantizes otherwise.
	ModeAuto Mode = "auto"

	// ModeExact returns every distinct colour verbatim. Images with more distinct
	// colours than requested are still quantized.
	ModeExact Mode = "exact"

	// ModeQuantized always uses median-cut box splitting.
	ModeQuantized Mode = "quantized"

	// ModeAverage collapses the image to its channel-wise mean.
	ModeAverage Mode = "average"

	// ModeEmpty marks a palette with no colours.
	ModeEmpty Mode = "empty"
)

// ValidModes returns the modes that may be requested.
func ValidModes() []Mode {
	return []Mode{ModeAuto, ModeExact, ModeQuantized, ModeAverage}
}

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !slices.Contains(ValidModes(), m) {
		return "", fmt.Errorf("unknown mode: %s (valid modes: %v)", s, ValidModes())
	}
	return m, nil
}

// Weighting selects how quantized palette weights are computed.
type Weighting string

const (
	// WeightVolume weights each box by population × volume.
	WeightVolume Weighting = "volume"

	// WeightPopulation weights each box by the fraction of pixels it holds.
	WeightPopulation Weighting = "population"
)

// ValidWeightings returns the weightings that may be requested.
func ValidWeightings() []Weighting {
	return []Weighting{WeightVolume, WeightPopulation}
}

// ParseWeighting converts a weighting name into a Weighting.
func ParseWeighting(s string) (Weighting, error) {
	w := Weighting(s)
	if !slices.Contains(ValidWeightings(), w) {
		return "", fmt.Errorf("unknown weighting: %s (valid weightings: %v)", s, ValidWeightings())
	}
	return w, nil
}

// MaxColors is the largest palette that can be requested.
const MaxColors = 256

// Config holds configuration for colour extraction.
type Config struct {
	Mode      Mode
	MaxColors int
	Weighting Weighting
	// Workers is the number of goroutines used for per-pixel passes that do not depend
	// on scan order. Zero uses GOMAXPROCS.
	Workers int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() Config {
	return Config{
		Mode:      ModeAuto,
		MaxColors: DefaultMaxColors,
		Weighting: WeightVolume,
		Workers:   1,
	}
}

// Validate validates the extractor configuration.
func (c Config) Validate() error {
	if !slices.Contains(ValidModes(), c.Mode) {
		return fmt.Errorf("invalid mode: %s", c.Mode)
	}
	if !slices.Contains(ValidWeightings(), c.Weighting) {
		return fmt.Errorf("invalid weighting: %s", c.Weighting)
	}
	if c.MaxColors < 0 {
		return fmt.Errorf("color count cannot be negative, got %d", c.MaxColors)
	}
	if c.MaxColors > MaxColors {
		return fmt.Errorf("color count too large: %d (maximum: %d)", c.MaxColors, MaxColors)
	}
	if c.Workers < 0 {
		return fmt.Errorf("worker count cannot be negative, got %d", c.Workers)
	}
	return nil
}

// Options converts the configuration into builder options.
func (c Config) Options() []Option {
	return []Option{
		WithMode(c.Mode),
		WithWeighting(c.Weighting),
		WithWorkers(c.Workers),
	}
}

// Extractor extracts palettes using a fixed configuration.
type Extractor struct {
	config Config
	logger hclog.Logger
}

// NewExtractor creates a new Extractor. The configuration is validated up front so
// that extraction itself cannot fail.
func NewExtractor(config Config, logger hclog.Logger) (*Extractor, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Extractor{
		config: config,
		logger: logger,
	}, nil
}

// Config returns the extractor configuration.
func (e *Extractor) Config() Config {
	return e.config
}

// Extract extracts a palette from an image.
func (e *Extractor) Extract(img image.Image) *Palette {
	return e.ExtractPixels(PixelsFromImage(img))
}

// ExtractPixels extracts a palette from an already decoded pixel buffer.
func (e *Extractor) ExtractPixels(px Pixels) *Palette {
	opts := append(e.config.Options(), WithLogger(e.logger))
	return Build(px, e.config.MaxColors, opts...)
}
