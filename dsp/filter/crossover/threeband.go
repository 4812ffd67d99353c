package crossover

import (
	"fmt"

	"github.com/cwbudde/algo-mbcomp/dsp/buffer"
	"github.com/cwbudde/algo-mbcomp/dsp/core"
	"github.com/cwbudde/algo-mbcomp/dsp/filter/biquad"
	"github.com/cwbudde/algo-mbcomp/dsp/filter/design/pass"
)

const (
	// DefaultOrder is the Linkwitz-Riley order used when none is given (LR4).
	DefaultOrder = 4
	// MaxOrder is the highest supported Linkwitz-Riley order.
	MaxOrder = 24

	// MinCrossoverHz is the lowest cutoff ClampCutoffs allows.
	MinCrossoverHz = 10.0
	// maxCrossoverRatio bounds cutoffs to this fraction of the sample rate.
	maxCrossoverRatio = 0.49
	// minCrossoverSpacing keeps midHigh strictly above lowMid.
	minCrossoverSpacing = 1e-3

	defaultLowMidHz  = 500.0
	defaultMidHighHz = 3000.0
)

// Option configures a ThreeBand network.
type Option func(*config)

type config struct {
	order int
}

// WithOrder sets the Linkwitz-Riley order of every filter in the network.
// It must be even and within [2, MaxOrder].
func WithOrder(order int) Option {
	return func(c *config) { c.order = order }
}

// ClampCutoffs bounds a pair of crossover frequencies to what the network
// can realise at sampleRate: both in [MinCrossoverHz, 0.49·sampleRate] and
// midHigh strictly above lowMid. NaN inputs fall back to the defaults.
func ClampCutoffs(lowMid, midHigh, sampleRate float64) (float64, float64) {
	hi := maxCrossoverRatio * sampleRate
	lo := MinCrossoverHz

	lowMid = core.ClampFinite(lowMid, lo, hi/(1+minCrossoverSpacing), defaultLowMidHz)
	midHigh = core.ClampFinite(midHigh, lo, hi, defaultMidHighHz)

	if floor := lowMid * (1 + minCrossoverSpacing); midHigh < floor {
		midHigh = floor
	}

	return lowMid, midHigh
}

type channelFilters struct {
	lowMid  *Crossover
	midHigh *Crossover
	// phase aligns the low band with the mid-high split it never went through.
	phase *Allpass
}

// ThreeBand splits a multichannel buffer into low, mid and high bands at two
// cutoffs. Summing the three bands gives the input passed through the
// allpass of both crossover points, so the recombined magnitude is flat.
//
// All filter state is allocated in Prepare. Split re-tunes the filters when
// the cutoffs change and never allocates.
type ThreeBand struct {
	order    int
	spec     core.ProcessSpec
	channels []channelFilters
	prepared bool

	lowMidHz  float64
	midHighHz float64

	lpScratch []biquad.Coefficients
	hpScratch []biquad.Coefficients
	apScratch []biquad.Coefficients
}

// NewThreeBand creates an unprepared network.
func NewThreeBand(opts ...Option) (*ThreeBand, error) {
	cfg := config{order: DefaultOrder}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.order < 2 || cfg.order > MaxOrder || cfg.order%2 != 0 {
		return nil, fmt.Errorf("crossover: order must be even and within [2, %d], got %d", MaxOrder, cfg.order)
	}

	n := pass.LinkwitzRileySections(cfg.order)

	return &ThreeBand{
		order:     cfg.order,
		lowMidHz:  defaultLowMidHz,
		midHighHz: defaultMidHighHz,
		lpScratch: make([]biquad.Coefficients, 0, n),
		hpScratch: make([]biquad.Coefficients, 0, n),
		apScratch: make([]biquad.Coefficients, 0, pass.LinkwitzRileyAllpassSections(cfg.order)),
	}, nil
}

// Prepare allocates per-channel filters for spec and clears all state. The
// current cutoffs are kept, re-clamped to the new sample rate.
func (t *ThreeBand) Prepare(spec core.ProcessSpec) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("crossover: %w", err)
	}

	lowMid, midHigh := ClampCutoffs(t.lowMidHz, t.midHighHz, spec.SampleRate)

	channels := make([]channelFilters, spec.Channels)
	for ch := range channels {
		var err error

		if channels[ch].lowMid, err = New(lowMid, t.order, spec.SampleRate); err != nil {
			return err
		}

		if channels[ch].midHigh, err = New(midHigh, t.order, spec.SampleRate); err != nil {
			return err
		}

		if channels[ch].phase, err = NewAllpass(midHigh, t.order, spec.SampleRate); err != nil {
			return err
		}
	}

	t.spec = spec
	t.channels = channels
	t.lowMidHz = lowMid
	t.midHighHz = midHigh
	t.prepared = true

	return nil
}

// Split writes the three bands of in to low, mid and high. The cutoffs are
// the caller's responsibility: lowMidHz must be below midHighHz and both
// below Nyquist (see ClampCutoffs). A cutoff that cannot be designed keeps
// the previous value.
//
// The output buffers must have the prepared channel count and at least
// in.Len() frames of capacity. They must not alias in or each other.
func (t *ThreeBand) Split(in, low, mid, high *buffer.Buffer, lowMidHz, midHighHz float64) {
	if !t.prepared {
		panic("crossover: Split called before Prepare")
	}

	if in.NumChannels() != len(t.channels) {
		panic(fmt.Sprintf("crossover: input has %d channels, prepared for %d", in.NumChannels(), len(t.channels)))
	}

	t.retune(lowMidHz, midHighHz)

	n := in.Len()

	low.CopyFrom(in)
	mid.SetLen(n)
	high.SetLen(n)

	for ch := range t.channels {
		f := &t.channels[ch]
		l, m, h := low.Channel(ch), mid.Channel(ch), high.Channel(ch)

		// low -> LP1 | mid+high -> HP1
		f.lowMid.ProcessBlock(l, l, m)
		// mid+high -> LP2 | HP2
		f.midHigh.ProcessBlock(m, m, h)
		f.phase.ProcessBlock(l)
	}
}

// SetCutoffs moves both crossover points. Before Prepare the values are
// stored and used, clamped, when the filters are built.
func (t *ThreeBand) SetCutoffs(lowMidHz, midHighHz float64) {
	if !t.prepared {
		t.lowMidHz, t.midHighHz = lowMidHz, midHighHz
		return
	}

	t.retune(lowMidHz, midHighHz)
}

func (t *ThreeBand) retune(lowMidHz, midHighHz float64) {
	if lowMidHz != t.lowMidHz {
		lp, okLP := pass.AppendLinkwitzRileyLP(t.lpScratch[:0], lowMidHz, t.order, t.spec.SampleRate)
		hp, okHP := pass.AppendLinkwitzRileyHP(t.hpScratch[:0], lowMidHz, t.order, t.spec.SampleRate)

		if okLP && okHP {
			for ch := range t.channels {
				t.channels[ch].lowMid.apply(lp, hp, lowMidHz)
			}

			t.lowMidHz = lowMidHz
		}
	}

	if midHighHz != t.midHighHz {
		lp, okLP := pass.AppendLinkwitzRileyLP(t.lpScratch[:0], midHighHz, t.order, t.spec.SampleRate)
		hp, okHP := pass.AppendLinkwitzRileyHP(t.hpScratch[:0], midHighHz, t.order, t.spec.SampleRate)
		ap, okAP := pass.AppendLinkwitzRileyAP(t.apScratch[:0], midHighHz, t.order, t.spec.SampleRate)

		if okLP && okHP && okAP {
			for ch := range t.channels {
				t.channels[ch].midHigh.apply(lp, hp, midHighHz)
				t.channels[ch].phase.apply(ap, midHighHz)
			}

			t.midHighHz = midHighHz
		}
	}
}

// Reset clears the filter state of every channel without re-tuning.
func (t *ThreeBand) Reset() {
	for ch := range t.channels {
		t.channels[ch].lowMid.Reset()
		t.channels[ch].midHigh.Reset()
		t.channels[ch].phase.Reset()
	}
}

// Order returns the Linkwitz-Riley order of the network.
func (t *ThreeBand) Order() int { return t.order }

// Prepared reports whether Prepare has succeeded.
func (t *ThreeBand) Prepared() bool { return t.prepared }

// Cutoffs returns the cutoffs currently in effect.
func (t *ThreeBand) Cutoffs() (lowMidHz, midHighHz float64) {
	return t.lowMidHz, t.midHighHz
}

// Response returns the complex frequency response of each band at freqHz
// for the current cutoffs. The three responses sum to SumResponse.
func (t *ThreeBand) Response(freqHz float64) (low, mid, high complex128) {
	if !t.prepared {
		return 0, 0, 0
	}

	f := &t.channels[0]
	sr := t.spec.SampleRate
	lp1 := f.lowMid.LP().Response(freqHz, sr)
	hp1 := f.lowMid.HP().Response(freqHz, sr)
	lp2 := f.midHigh.LP().Response(freqHz, sr)
	hp2 := f.midHigh.HP().Response(freqHz, sr)
	ap2 := f.phase.Chain().Response(freqHz, sr)

	return lp1 * ap2, hp1 * lp2, hp1 * hp2
}

// SumResponse returns the response of the recombined network, which is the
// product of the allpasses at both cutoffs. Its magnitude is 1.
func (t *ThreeBand) SumResponse(freqHz float64) complex128 {
	low, mid, high := t.Response(freqHz)
	return low + mid + high
}

// ReferenceAllpass returns a single-channel filter with the same transfer
// function as the recombined network at the current cutoffs. Feeding the
// input through it yields what low+mid+high should sum to.
func (t *ThreeBand) ReferenceAllpass() (*biquad.Chain, error) {
	if !t.prepared {
		return nil, fmt.Errorf("crossover: network not prepared")
	}

	sr := t.spec.SampleRate

	ap1 := pass.LinkwitzRileyAP(t.lowMidHz, t.order, sr)
	ap2 := pass.LinkwitzRileyAP(t.midHighHz, t.order, sr)
	if ap1 == nil || ap2 == nil {
		return nil, fmt.Errorf("crossover: cannot design reference allpass")
	}

	return biquad.NewChain(append(ap1, ap2...)), nil
}
