package crossover

import (
	"fmt"

	"github.com/cwbudde/algo-mbcomp/dsp/filter/biquad"
	"github.com/cwbudde/algo-mbcomp/dsp/filter/design/pass"
)

// Crossover is a two-way Linkwitz-Riley crossover that splits a signal into
// complementary lowpass and highpass outputs for one channel.
//
// Both outputs always share the same cutoff. Their sum is the input passed
// through [Allpass] at the same frequency and order.
type Crossover struct {
	lp    *biquad.Chain
	hp    *biquad.Chain
	freq  float64
	order int
	sr    float64

	lpScratch []biquad.Coefficients
	hpScratch []biquad.Coefficients
}

// New creates a two-way Linkwitz-Riley crossover at the given frequency
// and order. The order must be a positive even integer (2, 4, 6, 8, …).
//
// For orders ≡ 2 mod 4 (LR2, LR6, …), the HP polarity is inverted so that
// LP + HP is allpass for all even orders.
func New(freq float64, order int, sampleRate float64) (*Crossover, error) {
	if err := validate(freq, order, sampleRate); err != nil {
		return nil, err
	}

	n := pass.LinkwitzRileySections(order)
	c := &Crossover{
		order:     order,
		sr:        sampleRate,
		lpScratch: make([]biquad.Coefficients, 0, n),
		hpScratch: make([]biquad.Coefficients, 0, n),
	}

	lp, hp, ok := c.design(freq)
	if !ok {
		return nil, fmt.Errorf("crossover: failed to design LR%d at %.1f Hz", order, freq)
	}

	c.lp = biquad.NewChain(lp)
	c.hp = biquad.NewChain(hp)
	c.freq = freq

	return c, nil
}

func validate(freq float64, order int, sampleRate float64) error {
	if order <= 0 || order%2 != 0 {
		return fmt.Errorf("crossover: order must be a positive even integer, got %d", order)
	}

	if sampleRate <= 0 {
		return fmt.Errorf("crossover: sample rate must be positive, got %v", sampleRate)
	}

	if !(freq > 0 && freq < sampleRate/2) {
		return fmt.Errorf("crossover: frequency must be in (0, %v), got %v", sampleRate/2, freq)
	}

	return nil
}

func (c *Crossover) design(freq float64) (lp, hp []biquad.Coefficients, ok bool) {
	lp, ok = pass.AppendLinkwitzRileyLP(c.lpScratch[:0], freq, c.order, c.sr)
	if !ok {
		return nil, nil, false
	}

	hp, ok = pass.AppendLinkwitzRileyHP(c.hpScratch[:0], freq, c.order, c.sr)
	if !ok {
		return nil, nil, false
	}

	return lp, hp, true
}

// SetFreq moves the crossover to freq without clearing the filter state,
// so it can be called between blocks while audio is running. Both chains
// are re-tuned together. It does not allocate. If freq cannot be designed
// the previous cutoff is kept and false is returned.
func (c *Crossover) SetFreq(freq float64) bool {
	if freq == c.freq {
		return true
	}

	lp, hp, ok := c.design(freq)
	if !ok {
		return false
	}

	c.apply(lp, hp, freq)

	return true
}

func (c *Crossover) apply(lp, hp []biquad.Coefficients, freq float64) {
	c.lp.SetCoefficients(lp)
	c.hp.SetCoefficients(hp)
	c.freq = freq
}

// ProcessSample filters one input sample and returns the lowpass and
// highpass outputs.
func (c *Crossover) ProcessSample(x float64) (lo, hi float64) {
	return c.lp.ProcessSample(x), c.hp.ProcessSample(x)
}

// ProcessBlock filters input, writing the lowpass output to lo and the
// highpass output to hi. All three slices must have the same length.
// lo may alias input.
func (c *Crossover) ProcessBlock(input, lo, hi []float64) {
	n := len(input)
	if n == 0 {
		return
	}

	_ = lo[n-1]
	_ = hi[n-1]

	copy(hi, input)
	copy(lo, input)
	c.lp.ProcessBlock(lo)
	c.hp.ProcessBlock(hi)
}

// LP returns the lowpass chain for inspection or analysis.
func (c *Crossover) LP() *biquad.Chain { return c.lp }

// HP returns the highpass chain. For orders ≡ 2 mod 4 it includes the
// polarity inversion.
func (c *Crossover) HP() *biquad.Chain { return c.hp }

// Freq returns the crossover frequency in Hz.
func (c *Crossover) Freq() float64 { return c.freq }

// Order returns the Linkwitz-Riley order (always even).
func (c *Crossover) Order() int { return c.order }

// SampleRate returns the sample rate in Hz.
func (c *Crossover) SampleRate() float64 { return c.sr }

// Reset clears the filter state of both chains.
func (c *Crossover) Reset() {
	c.lp.Reset()
	c.hp.Reset()
}
