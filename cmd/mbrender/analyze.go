package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cwbudde/algo-mbcomp/dsp/buffer"
	"github.com/cwbudde/algo-mbcomp/dsp/spectrum"
	"github.com/cwbudde/algo-mbcomp/param"
)

const analysisSize = 4096

type report struct {
	sampleRate      float64
	lowMid, midHigh float64
	in, out         *buffer.Buffer
	maxReduction    [param.NumBands]float64
}

// mono averages the channels of b.
func mono(b *buffer.Buffer) []float64 {
	out := make([]float64, b.Len())
	if b.NumChannels() == 0 {
		return out
	}

	scale := 1 / float64(b.NumChannels())

	for ch := range b.NumChannels() {
		for i, v := range b.Channel(ch) {
			out[i] += v * scale
		}
	}

	return out
}

// print writes the per-band energy table.
func (r *report) print(w io.Writer) error {
	a, err := spectrum.NewAnalyzer(analysisSize, r.sampleRate)
	if err != nil {
		return err
	}

	edges := []float64{r.lowMid, r.midHigh}

	inDB, err := a.BandEnergiesDB(mono(r.in), edges)
	if err != nil {
		return err
	}

	outDB, err := a.BandEnergiesDB(mono(r.out), edges)
	if err != nil {
		return err
	}

	ranges := [param.NumBands]string{
		fmt.Sprintf("0-%.0f Hz", r.lowMid),
		fmt.Sprintf("%.0f-%.0f Hz", r.lowMid, r.midHigh),
		fmt.Sprintf("%.0f-%.0f Hz", r.midHigh, r.sampleRate/2),
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Band\tRange\tIn [dB]\tOut [dB]\tChange [dB]\tMax GR [dB]\n"); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(tw, "----\t-----\t-------\t--------\t-----------\t-----------\n"); err != nil {
		return err
	}

	for i, name := range param.BandNames {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%+.2f\t%.2f\n",
			name, ranges[i], inDB[i], outDB[i], outDB[i]-inDB[i], r.maxReduction[i]); err != nil {
			return err
		}
	}

	return tw.Flush()
}
