package core

import "math"

const defaultEpsilon = 1e-12

// MinusInfinityDB is the level at and below which decibel values are treated
// as silence by [DBToLinear] and reported by [LinearToDB].
const MinusInfinityDB = -100.0

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// ClampFinite is like [Clamp] but maps +Inf to max, -Inf to min and NaN to
// fallback. It is meant for values arriving on the audio thread that must
// never be rejected.
func ClampFinite(value, min, max, fallback float64) float64 {
	if math.IsNaN(value) {
		return Clamp(fallback, min, max)
	}

	return Clamp(value, min, max)
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FlushDenormals converts tiny denormal-like values to exact zero.
// Envelope followers decaying towards silence would otherwise spend many
// samples in the denormal range.
func FlushDenormals(x float64) float64 {
	const epsilon = 1e-30
	if x > -epsilon && x < epsilon {
		return 0
	}

	return x
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
// Values at or below [MinusInfinityDB] map to exactly 0.
func DBToLinear(db float64) float64 {
	if db <= MinusInfinityDB {
		return 0
	}

	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// The result is floored at [MinusInfinityDB]; negative input is treated as
// its magnitude.
func LinearToDB(linear float64) float64 {
	linear = math.Abs(linear)
	if linear <= 0 {
		return MinusInfinityDB
	}

	return math.Max(20*math.Log10(linear), MinusInfinityDB)
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}
