package pass

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-mbcomp/dsp/filter/biquad"
)

const tol = 1e-9

func assertFiniteCoefficients(t *testing.T, coeffs []biquad.Coefficients) {
	t.Helper()

	for i, c := range coeffs {
		for _, v := range []float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("section %d has non-finite coefficient: %+v", i, c)
			}
		}
	}
}

// assertStableSection checks that both poles lie inside the unit circle.
func assertStableSection(t *testing.T, c biquad.Coefficients) {
	t.Helper()

	r1, r2 := sectionRoots(c)
	if cmplx.Abs(r1) >= 1 || cmplx.Abs(r2) >= 1 {
		t.Fatalf("unstable section %+v: poles %v %v", c, r1, r2)
	}
}

func sectionRoots(c biquad.Coefficients) (complex128, complex128) {
	disc := cmplx.Sqrt(complex(c.A1*c.A1-4*c.A2, 0))
	return (complex(-c.A1, 0) + disc) / 2, (complex(-c.A1, 0) - disc) / 2
}

func chainResponse(coeffs []biquad.Coefficients, freq, sampleRate float64) complex128 {
	return biquad.NewChain(coeffs).Response(freq, sampleRate)
}

func magChainDB(coeffs []biquad.Coefficients, freq, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(chainResponse(coeffs, freq, sampleRate)))
}
