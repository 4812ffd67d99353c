//go:build !fastmath

package dynamics

// Accuracy of the static curve in dB with exact log2/exp2.
const (
	gainLawTolDB = 1e-9
	settledTolDB = 1e-6
)
