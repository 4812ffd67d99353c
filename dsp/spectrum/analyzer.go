package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// Analyzer computes Hann-windowed, 50%-overlapped averaged power spectra
// (Welch's method) of fixed FFT size. It owns its scratch memory and is not
// safe for concurrent use.
type Analyzer struct {
	size       int
	sampleRate float64
	plan       *algofft.Plan[complex128]
	window     []float64
	windowGain float64

	in    []complex128
	out   []complex128
	re    []float64
	im    []float64
	frame []float64
}

// NewAnalyzer returns an analyzer with an FFT of size points. size must be a
// power of two and at least 16.
func NewAnalyzer(size int, sampleRate float64) (*Analyzer, error) {
	if size < 16 || size&(size-1) != 0 {
		return nil, fmt.Errorf("spectrum: fft size must be a power of two >= 16, got %d", size)
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("spectrum: sample rate must be > 0: %v", sampleRate)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	bins := size/2 + 1
	a := &Analyzer{
		size:       size,
		sampleRate: sampleRate,
		plan:       plan,
		window:     make([]float64, size),
		in:         make([]complex128, size),
		out:        make([]complex128, size),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		frame:      make([]float64, bins),
	}

	// Periodic Hann.
	for i := range a.window {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(size))
		a.window[i] = w
		a.windowGain += w * w
	}

	return a, nil
}

// Size returns the FFT size.
func (a *Analyzer) Size() int { return a.size }

// Bins returns the number of one-sided bins, Size()/2+1.
func (a *Analyzer) Bins() int { return a.size/2 + 1 }

// BinHz returns the bin spacing in Hz.
func (a *Analyzer) BinHz() float64 { return a.sampleRate / float64(a.size) }

// PowerSpectrum writes the averaged one-sided power spectrum of x into dst
// and returns it. dst is grown when shorter than Bins(). Signals shorter than
// Size() are zero-padded into a single frame.
func (a *Analyzer) PowerSpectrum(dst, x []float64) ([]float64, error) {
	bins := a.Bins()
	if cap(dst) < bins {
		dst = make([]float64, bins)
	}

	dst = dst[:bins]
	clear(dst)

	hop := a.size / 2
	frames := 0

	for start := 0; start == 0 || start+a.size <= len(x); start += hop {
		for i := range a.in {
			v := 0.0
			if start+i < len(x) {
				v = x[start+i]
			}

			a.in[i] = complex(v*a.window[i], 0)
		}

		if err := a.plan.Forward(a.out, a.in); err != nil {
			return nil, fmt.Errorf("spectrum: forward FFT: %w", err)
		}

		for k := range bins {
			a.re[k] = real(a.out[k])
			a.im[k] = imag(a.out[k])
		}

		vecmath.Power(a.frame, a.re, a.im)
		vecmath.AddBlockInPlace(dst, a.frame)

		frames++
	}

	// Scale so that Σ dst equals the mean square of the windowed frames.
	norm := 1 / (float64(frames) * a.windowGain * float64(a.size))
	vecmath.ScaleBlockInPlace(dst, norm)

	for k := 1; k < bins-1; k++ {
		dst[k] *= 2
	}

	return dst, nil
}

// BandEnergies splits the spectrum of x at the given edge frequencies and
// returns the power in each resulting band: [0, edges[0]), [edges[0],
// edges[1]), …, [edges[n-1], Nyquist]. Edges must be ascending.
func (a *Analyzer) BandEnergies(x, edges []float64) ([]float64, error) {
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return nil, fmt.Errorf("spectrum: band edges must be ascending, got %v after %v", edges[i], edges[i-1])
		}
	}

	power, err := a.PowerSpectrum(nil, x)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(edges)+1)
	binHz := a.BinHz()
	band := 0

	for k, p := range power {
		f := float64(k) * binHz
		for band < len(edges) && f >= edges[band] {
			band++
		}

		out[band] += p
	}

	return out, nil
}

// BandEnergiesDB is BandEnergies in dB (10·log10), floored at -200 dB.
func (a *Analyzer) BandEnergiesDB(x, edges []float64) ([]float64, error) {
	e, err := a.BandEnergies(x, edges)
	if err != nil {
		return nil, err
	}

	for i, v := range e {
		e[i] = PowerToDB(v)
	}

	return e, nil
}

// PowerToDB converts a power ratio to dB, floored at -200 dB.
func PowerToDB(p float64) float64 {
	if p <= 1e-20 {
		return -200
	}

	return 10 * math.Log10(p)
}
