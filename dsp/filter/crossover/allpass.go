package crossover

import (
	"fmt"

	"github.com/cwbudde/algo-mbcomp/dsp/filter/biquad"
	"github.com/cwbudde/algo-mbcomp/dsp/filter/design/pass"
)

// Allpass reproduces the phase of a Linkwitz-Riley split-and-sum at one
// frequency while leaving the magnitude untouched. A band that skips a
// crossover stage is run through the matching Allpass so that it stays in
// phase with the bands that went through the stage.
type Allpass struct {
	chain   *biquad.Chain
	freq    float64
	order   int
	sr      float64
	scratch []biquad.Coefficients
}

// NewAllpass creates the allpass matching a Linkwitz-Riley crossover of the
// given order at freq.
func NewAllpass(freq float64, order int, sampleRate float64) (*Allpass, error) {
	if err := validate(freq, order, sampleRate); err != nil {
		return nil, err
	}

	a := &Allpass{
		order:   order,
		sr:      sampleRate,
		scratch: make([]biquad.Coefficients, 0, pass.LinkwitzRileyAllpassSections(order)),
	}

	coeffs, ok := pass.AppendLinkwitzRileyAP(a.scratch[:0], freq, order, sampleRate)
	if !ok {
		return nil, fmt.Errorf("crossover: failed to design LR%d allpass at %.1f Hz", order, freq)
	}

	a.chain = biquad.NewChain(coeffs)
	a.freq = freq

	return a, nil
}

// SetFreq re-tunes the allpass without clearing its state. It returns false
// and keeps the previous frequency if freq cannot be designed.
func (a *Allpass) SetFreq(freq float64) bool {
	if freq == a.freq {
		return true
	}

	coeffs, ok := pass.AppendLinkwitzRileyAP(a.scratch[:0], freq, a.order, a.sr)
	if !ok {
		return false
	}

	a.apply(coeffs, freq)

	return true
}

func (a *Allpass) apply(coeffs []biquad.Coefficients, freq float64) {
	a.chain.SetCoefficients(coeffs)
	a.freq = freq
}

// ProcessSample filters one sample.
func (a *Allpass) ProcessSample(x float64) float64 { return a.chain.ProcessSample(x) }

// ProcessBlock filters buf in place.
func (a *Allpass) ProcessBlock(buf []float64) { a.chain.ProcessBlock(buf) }

// Chain returns the underlying biquad cascade.
func (a *Allpass) Chain() *biquad.Chain { return a.chain }

// Freq returns the allpass frequency in Hz.
func (a *Allpass) Freq() float64 { return a.freq }

// Reset clears the filter state.
func (a *Allpass) Reset() { a.chain.Reset() }
