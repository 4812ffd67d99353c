// Package testutil holds deterministic test signals and tolerance checks
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-mbcomp/dsp/buffer"
)

// Sine returns amplitude·sin(2π·freqHz·n/sampleRate) for n in [0, length).
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

// Tones returns the sum of equal-amplitude sines at each frequency.
func Tones(freqs []float64, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	for _, f := range freqs {
		for i, v := range Sine(f, sampleRate, amplitude, length) {
			out[i] += v
		}
	}

	return out
}

// Noise returns uniform white noise in [-amplitude, amplitude) from a fixed
// seed.
func Noise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))

	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// Impulse returns a unit impulse at pos. A pos outside [0, length) yields
// silence.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}

	return out
}

// DC returns a constant signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}

	return out
}

// Buffer returns a buffer with the same signal copied into every channel.
func Buffer(channels int, signal []float64) *buffer.Buffer {
	b := buffer.New(channels, len(signal))
	for ch := range channels {
		copy(b.Channel(ch), signal)
	}

	return b
}

// Blocks calls fn for consecutive slices of at most size frames covering
// [0, total). It is the block loop every streaming test needs.
func Blocks(total, size int, fn func(start, n int)) {
	for start := 0; start < total; start += size {
		fn(start, min(size, total-start))
	}
}
