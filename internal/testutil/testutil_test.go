package testutil

import (
	"math"
	"testing"
)

func TestSine(t *testing.T) {
	s := Sine(1000, 48000, 0.5, 48)

	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}

	// A quarter period is 12 samples at 1 kHz / 48 kHz.
	if math.Abs(s[12]-0.5) > 1e-12 {
		t.Fatalf("s[12] = %v, want 0.5", s[12])
	}
}

func TestNoise_Reproducible(t *testing.T) {
	a := Noise(7, 1, 256)
	b := Noise(7, 1, 256)
	c := Noise(8, 1, 256)

	RequireSliceNearlyEqual(t, a, b, 0)

	if d, _ := MaxAbsDiff(a, c); d == 0 {
		t.Fatal("different seeds produced identical noise")
	}

	for _, v := range a {
		if v < -1 || v >= 1 {
			t.Fatalf("sample %v out of range", v)
		}
	}
}

func TestImpulse(t *testing.T) {
	x := Impulse(8, 3)
	if x[3] != 1 || RMS(x) != math.Sqrt(1.0/8) {
		t.Fatalf("unexpected impulse %v", x)
	}

	if RMS(Impulse(4, 9)) != 0 {
		t.Fatal("out-of-range position should give silence")
	}
}

func TestBuffer(t *testing.T) {
	b := Buffer(3, DC(0.25, 10))
	if b.NumChannels() != 3 || b.Len() != 10 {
		t.Fatalf("shape %dx%d", b.NumChannels(), b.Len())
	}

	if b.Channel(2)[9] != 0.25 {
		t.Fatalf("got %v", b.Channel(2)[9])
	}
}

func TestBlocks(t *testing.T) {
	var sizes []int

	Blocks(10, 4, func(start, n int) { sizes = append(sizes, n) })

	if len(sizes) != 3 || sizes[0] != 4 || sizes[1] != 4 || sizes[2] != 2 {
		t.Fatalf("block sizes %v, want [4 4 2]", sizes)
	}
}

func TestErrorDB(t *testing.T) {
	want := DC(1, 4)
	got := []float64{1, 1.001, 1, 1}

	db, err := ErrorDB(got, want)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(db+60) > 1e-6 {
		t.Fatalf("ErrorDB = %v, want -60", db)
	}

	if _, err := ErrorDB(want, DC(0, 4)); err == nil {
		t.Fatal("expected error for silent reference")
	}

	if _, err := MaxAbsDiff(want, DC(1, 3)); err == nil {
		t.Fatal("expected length mismatch error")
	}
}
