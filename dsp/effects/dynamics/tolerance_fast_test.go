//go:build fastmath

package dynamics

// The approximated log2/exp2 are good to about 1e-4 dB.
const (
	gainLawTolDB = 1e-3
	settledTolDB = 1e-3
)
