package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if diff := math.Abs(got[i] - want[i]); diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireFinite fails t on the first NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the largest absolute element difference.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	maxDiff := 0.0
	for i := range a {
		maxDiff = math.Max(maxDiff, math.Abs(a[i]-b[i]))
	}

	return maxDiff, nil
}

// RMS returns the root mean square of x, or 0 for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range x {
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(x)))
}

// ErrorDB returns the worst sample-wise error of got against want, in dB
// relative to the peak of want. Identical slices give -Inf.
func ErrorDB(got, want []float64) (float64, error) {
	diff, err := MaxAbsDiff(got, want)
	if err != nil {
		return 0, err
	}

	peak := 0.0
	for _, v := range want {
		peak = math.Max(peak, math.Abs(v))
	}

	if peak == 0 {
		return 0, fmt.Errorf("reference is silent")
	}

	return 20 * math.Log10(diff/peak), nil
}

// RequireErrorBelowDB fails t unless ErrorDB(got, want) < limitDB.
func RequireErrorBelowDB(t *testing.T, got, want []float64, limitDB float64) {
	t.Helper()

	db, err := ErrorDB(got, want)
	if err != nil {
		t.Fatal(err)
	}

	if db >= limitDB {
		t.Fatalf("error %.2f dB, want below %.2f dB", db, limitDB)
	}
}
