package colour

import (
	"runtime"

	"github.com/hashicorp/go-hclog"
)

// DefaultMaxColors is used when a negative colour count is requested.
const DefaultMaxColors = 5

type options struct {
	mode      Mode
	weighting Weighting
	workers   int
	logger    hclog.Logger
}

// Option configures Build and Quantize.
type Option func(*options)

// WithMode forces a strategy. ModeAuto, the default, picks one from the image.
func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithWeighting selects how quantized palettes are weighted.
func WithWeighting(w Weighting) Option {
	return func(o *options) {
		o.weighting = w
	}
}

// WithWorkers sets the number of goroutines used for order-independent pixel passes.
// Zero uses GOMAXPROCS. Results are identical for any worker count.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sets the logger used to trace strategy decisions.
func WithLogger(l hclog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) options {
	o := options{
		mode:      ModeAuto,
		weighting: WeightVolume,
		workers:   1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = hclog.NewNullLogger()
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// Build reduces px to at most maxColors palette entries.
//
// A negative maxColors is replaced by DefaultMaxColors. Zero, or an empty buffer,
// yields an empty palette. One yields the average colour. Otherwise the distinct
// colours are returned verbatim if there are no more than maxColors of them, and the
// image is quantized with median cut if there are.
func Build(px Pixels, maxColors int, opts ...Option) *Palette {
	o := newOptions(opts)

	if maxColors < 0 {
		o.logger.Debug("invalid colour count, using default", "requested", maxColors, "default", DefaultMaxColors)
		maxColors = DefaultMaxColors
	}
	if maxColors == 0 || px.Len() == 0 {
		return emptyPalette()
	}
	if maxColors == 1 || o.mode == ModeAverage {
		o.logger.Debug("averaging pixels", "pixels", px.Len())
		return Average(px)
	}
	if o.mode == ModeQuantized {
		return quantize(px, maxColors, o)
	}

	res := countExact(px, maxColors)
	if res.complete {
		o.logger.Debug("exact palette", "colours", len(res.colors), "pixels", px.Len())
		return res.palette()
	}

	o.logger.Debug("distinct colours exceed limit, quantizing",
		"max_colours", maxColors, "overflow_at_pixel", res.scanned)
	return quantize(px, maxColors, o)
}
