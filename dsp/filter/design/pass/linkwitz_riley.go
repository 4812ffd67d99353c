package pass

import "github.com/cwbudde/algo-mbcomp/dsp/filter/biquad"

// LinkwitzRileySections returns the number of biquad sections in the
// lowpass or highpass cascade of an order-n Linkwitz-Riley filter, or 0 for
// an invalid order.
func LinkwitzRileySections(order int) int {
	if order <= 0 || order%2 != 0 {
		return 0
	}

	return 2 * ButterworthSections(order/2)
}

// LinkwitzRileyAllpassSections returns the number of sections of the allpass
// matching an order-n Linkwitz-Riley pair.
func LinkwitzRileyAllpassSections(order int) int {
	if order <= 0 || order%2 != 0 {
		return 0
	}

	return ButterworthSections(order / 2)
}

// LinkwitzRileyNeedsHPInvert reports whether the given order requires HP
// polarity inversion for allpass summation: orders ≡ 2 mod 4.
func LinkwitzRileyNeedsHPInvert(order int) bool {
	return order > 0 && order%4 == 2
}

// LinkwitzRileyLP designs a lowpass Linkwitz-Riley cascade: two identical
// Butterworth filters of half the order, -6.02 dB at freq. The order must be
// a positive even integer. Returns nil for invalid parameters.
func LinkwitzRileyLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	out, ok := AppendLinkwitzRileyLP(make([]biquad.Coefficients, 0, LinkwitzRileySections(order)), freq, order, sampleRate)
	if !ok {
		return nil
	}

	return out
}

// LinkwitzRileyHP designs the complementary highpass cascade. For orders
// ≡ 2 mod 4 the polarity is inverted so that LP + HP is allpass for every
// even order. Returns nil for invalid parameters.
func LinkwitzRileyHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	out, ok := AppendLinkwitzRileyHP(make([]biquad.Coefficients, 0, LinkwitzRileySections(order)), freq, order, sampleRate)
	if !ok {
		return nil
	}

	return out
}

// LinkwitzRileyAP designs the allpass equal to LinkwitzRileyLP +
// LinkwitzRileyHP at the same frequency and order. Running a band through it
// gives that band the same phase as a signal that was split and summed at
// freq. Returns nil for invalid parameters.
func LinkwitzRileyAP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	out, ok := AppendLinkwitzRileyAP(make([]biquad.Coefficients, 0, LinkwitzRileyAllpassSections(order)), freq, order, sampleRate)
	if !ok {
		return nil
	}

	return out
}

// AppendLinkwitzRileyLP appends the sections of LinkwitzRileyLP to dst.
func AppendLinkwitzRileyLP(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) ([]biquad.Coefficients, bool) {
	if order <= 0 || order%2 != 0 {
		return dst, false
	}

	start := len(dst)

	dst, ok := AppendButterworthLP(dst, freq, order/2, sampleRate)
	if !ok {
		return dst[:start], false
	}

	return append(dst, dst[start:]...), true
}

// AppendLinkwitzRileyHP appends the sections of LinkwitzRileyHP to dst.
func AppendLinkwitzRileyHP(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) ([]biquad.Coefficients, bool) {
	if order <= 0 || order%2 != 0 {
		return dst, false
	}

	start := len(dst)

	dst, ok := AppendButterworthHP(dst, freq, order/2, sampleRate)
	if !ok {
		return dst[:start], false
	}

	dst = append(dst, dst[start:]...)

	if LinkwitzRileyNeedsHPInvert(order) {
		// One inverted section flips the whole cascade.
		dst[start].B0 = -dst[start].B0
		dst[start].B1 = -dst[start].B1
		dst[start].B2 = -dst[start].B2
	}

	return dst, true
}

// AppendLinkwitzRileyAP appends the sections of LinkwitzRileyAP to dst.
func AppendLinkwitzRileyAP(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) ([]biquad.Coefficients, bool) {
	if order <= 0 || order%2 != 0 {
		return dst, false
	}

	return AppendButterworthAP(dst, freq, order/2, sampleRate)
}
