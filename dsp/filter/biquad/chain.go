package biquad

// Chain is an ordered cascade of biquad sections processed in series.
// The number of sections is fixed at construction so that coefficient
// updates on the audio thread never allocate.
type Chain struct {
	sections []Section
}

// NewChain creates a cascade from one or more coefficient sets.
// Each Coefficients value becomes one Section in the cascade.
func NewChain(coeffs []Coefficients) *Chain {
	c := &Chain{sections: make([]Section, len(coeffs))}
	for i := range coeffs {
		c.sections[i].Coefficients = coeffs[i]
	}

	return c
}

// ProcessSample cascades input through all sections in order.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters a block in place through the full cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset clears all section states.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Order returns the total filter order (2 per biquad section).
func (c *Chain) Order() int {
	return 2 * len(c.sections)
}

// NumSections returns the number of biquad sections.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// SetCoefficients replaces the coefficients of every section while keeping
// the delay-line state, so a cutoff change does not restart the filter from
// silence. It reports false and leaves the chain untouched when the number
// of coefficient sets differs from the number of sections.
func (c *Chain) SetCoefficients(coeffs []Coefficients) bool {
	if len(coeffs) != len(c.sections) {
		return false
	}

	for i := range c.sections {
		c.sections[i].Coefficients = coeffs[i]
	}

	return true
}

// Section returns a pointer to the i-th section for inspection.
func (c *Chain) Section(i int) *Section {
	return &c.sections[i]
}
