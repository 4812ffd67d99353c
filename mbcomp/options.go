package mbcomp

import (
	"github.com/cwbudde/algo-mbcomp/dsp/filter/crossover"
	"github.com/cwbudde/algo-mbcomp/dsp/gain"
)

type config struct {
	order       int
	rampSeconds float64
	kneeDB      float64
	makeupDB    [NumBands]float64
}

func defaultConfig() config {
	return config{
		order:       crossover.DefaultOrder,
		rampSeconds: gain.DefaultRampSeconds,
	}
}

// Option configures an Engine.
type Option func(*config)

// WithCrossoverOrder sets the Linkwitz-Riley order of the band-split filters
// (even, 2 to 24). The default is 4.
func WithCrossoverOrder(order int) Option {
	return func(c *config) { c.order = order }
}

// WithGainRamp sets how long the input and output gains take to reach a new
// value. The default is 50 ms.
func WithGainRamp(seconds float64) Option {
	return func(c *config) { c.rampSeconds = seconds }
}

// WithKnee sets the soft-knee width of every band in dB. The default 0 is a
// hard knee.
func WithKnee(db float64) Option {
	return func(c *config) { c.kneeDB = db }
}

// WithMakeup sets a fixed makeup gain in dB after a band's compressor.
// Out-of-range band indices are ignored.
func WithMakeup(band int, db float64) Option {
	return func(c *config) {
		if band >= 0 && band < NumBands {
			c.makeupDB[band] = db
		}
	}
}
