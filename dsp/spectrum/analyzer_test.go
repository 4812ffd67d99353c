package spectrum

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-mbcomp/internal/testutil"
)

func TestNewAnalyzer_Validation(t *testing.T) {
	tests := []struct {
		name string
		size int
		sr   float64
	}{
		{"too small", 8, 48000},
		{"not power of two", 1000, 48000},
		{"zero rate", 1024, 0},
		{"nan rate", 1024, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewAnalyzer(tt.size, tt.sr); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestPowerSpectrum_SinePeakAndParseval(t *testing.T) {
	const (
		size = 1024
		sr   = 48000.0
	)

	a, err := NewAnalyzer(size, sr)
	if err != nil {
		t.Fatal(err)
	}

	// Bin-centred tone: 64 * 46.875 Hz.
	freq := 64 * a.BinHz()
	x := testutil.Sine(freq, sr, 1, 8*size)

	p, err := a.PowerSpectrum(nil, x)
	if err != nil {
		t.Fatal(err)
	}

	peak := 0
	total := 0.0

	for k, v := range p {
		total += v
		if v > p[peak] {
			peak = k
		}
	}

	if peak != 64 {
		t.Fatalf("peak at bin %d, want 64", peak)
	}

	// Mean square of a unit sine is 0.5.
	if math.Abs(total-0.5) > 0.01 {
		t.Fatalf("total power %.4f, want 0.5", total)
	}
}

func TestBandEnergies_SeparatesTones(t *testing.T) {
	const sr = 48000.0

	a, err := NewAnalyzer(2048, sr)
	if err != nil {
		t.Fatal(err)
	}

	x := testutil.Tones([]float64{200, 8000}, sr, 0.5, 16384)

	e, err := a.BandEnergiesDB(x, []float64{1000, 4000})
	if err != nil {
		t.Fatal(err)
	}

	if len(e) != 3 {
		t.Fatalf("got %d bands", len(e))
	}

	// Each tone carries 0.125 (-9 dB); the empty middle band is far below.
	for _, i := range []int{0, 2} {
		if math.Abs(e[i]-PowerToDB(0.125)) > 0.2 {
			t.Errorf("band %d: %.2f dB", i, e[i])
		}
	}

	if e[1] > -60 {
		t.Errorf("middle band: %.2f dB, want below -60", e[1])
	}
}

func TestBandEnergies_RejectsUnsortedEdges(t *testing.T) {
	a, _ := NewAnalyzer(64, 48000)
	if _, err := a.BandEnergies(make([]float64, 64), []float64{2000, 1000}); err == nil {
		t.Fatal("expected error")
	}
}

func TestPowerToDB(t *testing.T) {
	if got := PowerToDB(0); got != -200 {
		t.Fatalf("PowerToDB(0) = %v", got)
	}

	if got := PowerToDB(0.01); math.Abs(got+20) > 1e-12 {
		t.Fatalf("PowerToDB(0.01) = %v", got)
	}
}
