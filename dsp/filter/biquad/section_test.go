package biquad

import (
	"math"
	"testing"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func testCoefficients() Coefficients {
	return Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
}

func TestNewSection(t *testing.T) {
	c := Coefficients{B0: 1, B1: 2, B2: 3, A1: 4, A2: 5}

	s := NewSection(c)
	if s.Coefficients != c {
		t.Fatalf("coefficients mismatch: got %v, want %v", s.Coefficients, c)
	}

	if st := s.State(); st != [2]float64{0, 0} {
		t.Fatalf("initial state not zero: %v", st)
	}
}

func TestProcessSample_DFIIT(t *testing.T) {
	// Hand-traced impulse response for testCoefficients:
	// n=0: y=0.25, d0=0.55, d1=0.24
	// n=1: y=0.55, d0=0.35, d1=-0.022
	// n=2: y=0.35, d0=0.048, d1=-0.014
	// n=3: y=0.048
	s := NewSection(testCoefficients())

	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}

		if y := s.ProcessSample(x); !almostEqual(y, w, eps) {
			t.Errorf("sample %d: got %.15f, want %.15f", i, y, w)
		}
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	input := []float64{1, 0.5, -0.3, 0.7, 0, -1, 0.2, 0.8, -0.1}

	s1 := NewSection(testCoefficients())
	ref := make([]float64, len(input))

	for i, x := range input {
		ref[i] = s1.ProcessSample(x)
	}

	s2 := NewSection(testCoefficients())
	block := append([]float64(nil), input...)
	s2.ProcessBlock(block)

	for i := range block {
		if !almostEqual(block[i], ref[i], eps) {
			t.Errorf("sample %d: ProcessBlock=%.15f, ProcessSample=%.15f", i, block[i], ref[i])
		}
	}

	if s1.State() != s2.State() {
		t.Fatalf("state mismatch: %v vs %v", s1.State(), s2.State())
	}
}

func TestProcessBlock_Empty(t *testing.T) {
	s := NewSection(testCoefficients())
	s.ProcessBlock(nil)

	if s.State() != [2]float64{} {
		t.Fatalf("state changed on empty block: %v", s.State())
	}
}

func TestKernelName(t *testing.T) {
	if KernelName() == "" {
		t.Fatal("KernelName() is empty")
	}
}

func TestSection_ResetAndState(t *testing.T) {
	s := NewSection(testCoefficients())
	s.ProcessSample(1)

	saved := s.State()
	if saved == [2]float64{} {
		t.Fatal("expected non-zero state after processing")
	}

	s.Reset()

	if s.State() != [2]float64{} {
		t.Fatal("Reset did not clear state")
	}

	s.SetState(saved)

	if s.State() != saved {
		t.Fatal("SetState did not restore state")
	}
}
