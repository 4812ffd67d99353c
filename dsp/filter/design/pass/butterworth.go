package pass

import "github.com/cwbudde/algo-mbcomp/dsp/filter/biquad"

// ButterworthSections returns the number of biquad sections in an order-n
// Butterworth cascade.
func ButterworthSections(order int) int {
	if order <= 0 {
		return 0
	}

	return (order + 1) / 2
}

// ButterworthLP designs a lowpass Butterworth cascade. Odd orders end in a
// first-order section (B2=A2=0). Returns nil for invalid parameters.
func ButterworthLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	out, ok := AppendButterworthLP(make([]biquad.Coefficients, 0, ButterworthSections(order)), freq, order, sampleRate)
	if !ok {
		return nil
	}

	return out
}

// ButterworthHP designs a highpass Butterworth cascade. Returns nil for
// invalid parameters.
func ButterworthHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	out, ok := AppendButterworthHP(make([]biquad.Coefficients, 0, ButterworthSections(order)), freq, order, sampleRate)
	if !ok {
		return nil
	}

	return out
}

// AppendButterworthLP appends the sections of ButterworthLP to dst.
func AppendButterworthLP(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) ([]biquad.Coefficients, bool) {
	return appendButterworth(dst, freq, order, sampleRate, LowpassRBJ, firstOrderLP)
}

// AppendButterworthHP appends the sections of ButterworthHP to dst.
func AppendButterworthHP(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) ([]biquad.Coefficients, bool) {
	return appendButterworth(dst, freq, order, sampleRate, HighpassRBJ, firstOrderHP)
}

// AppendButterworthAP appends the allpass whose poles are those of the
// order-n Butterworth prototype: B(-s)/B(s).
func AppendButterworthAP(dst []biquad.Coefficients, freq float64, order int, sampleRate float64) ([]biquad.Coefficients, bool) {
	return appendButterworth(dst, freq, order, sampleRate, AllpassRBJ, firstOrderAP)
}

func appendButterworth(
	dst []biquad.Coefficients,
	freq float64,
	order int,
	sampleRate float64,
	second func(freq, q, sampleRate float64) biquad.Coefficients,
	first func(freq, sampleRate float64) biquad.Coefficients,
) ([]biquad.Coefficients, bool) {
	if order <= 0 {
		return dst, false
	}

	if _, ok := normalizedW0(freq, sampleRate); !ok {
		return dst, false
	}

	for i := order/2 - 1; i >= 0; i-- {
		dst = append(dst, second(freq, butterworthQ(order, i), sampleRate))
	}

	if order%2 != 0 {
		dst = append(dst, first(freq, sampleRate))
	}

	return dst, true
}
