package main

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-mbcomp/dsp/buffer"
	"github.com/cwbudde/algo-mbcomp/dsp/core"
	"github.com/cwbudde/algo-mbcomp/internal/preset"
	"github.com/cwbudde/algo-mbcomp/internal/wavio"
	"github.com/cwbudde/algo-mbcomp/mbcomp"
	"github.com/cwbudde/algo-mbcomp/param"
)

type renderConfig struct {
	in, out string
	preset  string
	block   int
	bits    int
	order   int
	knee    float64
	sets    []override
	logf    func(format string, args ...any)
}

// configure loads the preset and the overrides into reg.
func configure(reg *param.Registry, cfg renderConfig) error {
	if cfg.preset != "" {
		p, err := preset.Load(cfg.preset)
		if err != nil {
			return err
		}

		if err := p.Apply(reg); err != nil {
			return err
		}

		cfg.logf("preset %q (version %s, %d values)", p.Name, p.Version, len(p.Values))
	}

	for _, o := range cfg.sets {
		if err := reg.SetString(o.name, o.value); err != nil {
			return fmt.Errorf("-set %s=%s: %w", o.name, o.value, err)
		}

		v, _ := reg.Get(o.name)
		cfg.logf("%s = %g", o.name, v)
	}

	return nil
}

// render processes cfg.in into cfg.out and returns what the analysis table
// needs.
func render(cfg renderConfig) (*report, error) {
	if cfg.logf == nil {
		cfg.logf = func(string, ...any) {}
	}

	if cfg.block <= 0 {
		return nil, fmt.Errorf("block size must be positive: %d", cfg.block)
	}

	in, format, err := wavio.Read(cfg.in)
	if err != nil {
		return nil, err
	}

	cfg.logf("%s: %d channels, %d frames, %d Hz, %d bit", cfg.in, in.NumChannels(), in.Len(), format.SampleRate, format.BitDepth)

	reg := param.NewDefaultRegistry()
	if err := configure(reg, cfg); err != nil {
		return nil, err
	}

	eng, err := mbcomp.NewEngine(reg, mbcomp.WithCrossoverOrder(cfg.order), mbcomp.WithKnee(cfg.knee))
	if err != nil {
		return nil, err
	}

	spec := core.NewProcessSpec(
		core.WithSampleRate(float64(format.SampleRate)),
		core.WithMaxBlockSize(cfg.block),
		core.WithChannels(in.NumChannels()),
	)
	if err := eng.Prepare(spec); err != nil {
		return nil, err
	}

	out, maxReduction := process(eng, in, cfg.block)

	if cfg.bits != 0 {
		format.BitDepth = cfg.bits
	}

	if err := wavio.Write(cfg.out, out, format); err != nil {
		return nil, err
	}

	lowMid, midHigh := eng.Crossover().Cutoffs()
	cfg.logf("crossovers %.0f Hz / %.0f Hz, order %d", lowMid, midHigh, eng.Crossover().Order())

	for i, gr := range maxReduction {
		cfg.logf("%s band: max gain reduction %.2f dB", param.BandNames[i], gr)
	}

	return &report{
		sampleRate:   spec.SampleRate,
		lowMid:       lowMid,
		midHigh:      midHigh,
		in:           in,
		out:          out,
		maxReduction: maxReduction,
	}, nil
}

// process runs in through eng block by block and returns the output and
// the largest gain reduction seen per band.
func process(eng *mbcomp.Engine, in *buffer.Buffer, block int) (*buffer.Buffer, [mbcomp.NumBands]float64) {
	channels := in.NumChannels()
	out := buffer.New(channels, in.Len())
	work := buffer.New(channels, block)

	var maxReduction [mbcomp.NumBands]float64

	for start := 0; start < in.Len(); start += block {
		n := min(block, in.Len()-start)
		work.SetLen(n)

		for ch := range channels {
			copy(work.Channel(ch), in.Channel(ch)[start:start+n])
		}

		eng.Process(work)

		for ch := range channels {
			copy(out.Channel(ch)[start:start+n], work.Channel(ch))
		}

		m := eng.Meters()
		for i, gr := range m.GainReductionDB {
			maxReduction[i] = math.Max(maxReduction[i], gr)
		}
	}

	return out, maxReduction
}
