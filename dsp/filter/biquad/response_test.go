package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestResponse_Passthrough(t *testing.T) {
	c := Coefficients{B0: 1}

	for _, f := range []float64{10, 1000, 10000} {
		if h := c.Response(f, 48000); !almostEqual(cmplx.Abs(h), 1, eps) {
			t.Errorf("|H(%v)| = %v, want 1", f, cmplx.Abs(h))
		}
	}
}

func TestResponse_DCGain(t *testing.T) {
	c := testCoefficients()
	want := (c.B0 + c.B1 + c.B2) / (1 + c.A1 + c.A2)

	if h := c.Response(0, 48000); !almostEqual(real(h), want, 1e-12) || !almostEqual(imag(h), 0, 1e-12) {
		t.Fatalf("H(0) = %v, want %v", h, want)
	}
}

func TestChain_Response_ProductOfSections(t *testing.T) {
	coeffs := twoSectionCoeffs()
	c := NewChain(coeffs)

	for _, f := range []float64{50, 500, 5000} {
		want := coeffs[0].Response(f, 48000) * coeffs[1].Response(f, 48000)
		if got := c.Response(f, 48000); cmplx.Abs(got-want) > 1e-12 {
			t.Errorf("f=%v: got %v, want %v", f, got, want)
		}
	}
}

func TestChain_MagnitudeDB_MatchesResponse(t *testing.T) {
	c := NewChain(twoSectionCoeffs())

	want := 20 * math.Log10(cmplx.Abs(c.Response(1000, 48000)))
	if got := c.MagnitudeDB(1000, 48000); !almostEqual(got, want, 1e-12) {
		t.Fatalf("MagnitudeDB = %v, want %v", got, want)
	}
}
