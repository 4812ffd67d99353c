package mbcomp

import (
	"fmt"

	"github.com/cwbudde/algo-mbcomp/dsp/buffer"
	"github.com/cwbudde/algo-mbcomp/dsp/effects/dynamics"
	"github.com/cwbudde/algo-mbcomp/param"
)

// Flags are the per-band routing switches read each block.
type Flags struct {
	Bypass bool
	Mute   bool
	Solo   bool
}

type bandControls struct {
	threshold param.Float
	attack    param.Float
	release   param.Float
	ratio     param.Choice
	bypass    param.Bool
	mute      param.Bool
	solo      param.Bool
}

// Band is one compressor band: a multichannel compressor plus the controls
// it reads. Mute and solo are only carried here; Combine acts on them.
type Band struct {
	index    int
	controls bandControls
	comp     *dynamics.Compressor
	settings dynamics.Settings
	flags    Flags

	gainReductionDB float64
}

func newBand(index int, p param.Provider, cfg config) (*Band, error) {
	var (
		c       bandControls
		missing []string
		ok      bool
	)

	resolveFloat := func(dst *param.Float, name string) {
		if *dst, ok = p.Float(name); !ok {
			missing = append(missing, name)
		}
	}

	resolveBool := func(dst *param.Bool, name string) {
		if *dst, ok = p.Bool(name); !ok {
			missing = append(missing, name)
		}
	}

	resolveFloat(&c.threshold, param.Threshold(index))
	resolveFloat(&c.attack, param.Attack(index))
	resolveFloat(&c.release, param.Release(index))

	if c.ratio, ok = p.Choice(param.Ratio(index)); !ok {
		missing = append(missing, param.Ratio(index))
	}

	resolveBool(&c.bypass, param.Bypassed(index))
	resolveBool(&c.mute, param.Mute(index))
	resolveBool(&c.solo, param.Solo(index))

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingControl, missing)
	}

	comp, err := dynamics.NewCompressor(48000)
	if err != nil {
		return nil, err
	}

	b := &Band{
		index:    index,
		controls: c,
		comp:     comp,
		settings: dynamics.DefaultSettings(),
	}
	b.settings.KneeDB = cfg.kneeDB
	b.settings.MakeupDB = cfg.makeupDB[index]
	b.RefreshSettings()

	return b, nil
}

// Prepare sizes the compressor for the stream and clears its envelopes.
func (b *Band) Prepare(sampleRate float64, maxBlockSize, channels int) error {
	comp, err := b.newCompressor(sampleRate, maxBlockSize, channels)
	if err != nil {
		return err
	}

	b.use(comp)

	return nil
}

// newCompressor builds a compressor for the stream without touching b.
func (b *Band) newCompressor(sampleRate float64, maxBlockSize, channels int) (*dynamics.Compressor, error) {
	if maxBlockSize <= 0 {
		return nil, fmt.Errorf("mbcomp: band %d: max block size must be positive: %d", b.index, maxBlockSize)
	}

	comp, err := dynamics.NewCompressor(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("mbcomp: band %d: %w", b.index, err)
	}

	if err := comp.Prepare(sampleRate, channels); err != nil {
		return nil, fmt.Errorf("mbcomp: band %d: %w", b.index, err)
	}

	return comp, nil
}

func (b *Band) use(comp *dynamics.Compressor) {
	b.comp = comp
	b.RefreshSettings()
	b.gainReductionDB = 0
}

// RefreshSettings reads the band's controls and pushes them into the
// compressor. It runs every block whether or not the band is bypassed, so
// leaving bypass never uses stale settings.
func (b *Band) RefreshSettings() {
	b.settings.ThresholdDB = b.controls.threshold.Get()
	b.settings.AttackMs = b.controls.attack.Get()
	b.settings.ReleaseMs = b.controls.release.Get()
	b.settings.Ratio = b.controls.ratio.Value()
	b.comp.ApplySettings(b.settings)

	b.flags = Flags{
		Bypass: b.controls.bypass.Get(),
		Mute:   b.controls.mute.Get(),
		Solo:   b.controls.solo.Get(),
	}
}

// Process compresses buf in place. A bypassed band still runs its envelope
// followers but leaves buf untouched.
func (b *Band) Process(buf *buffer.Buffer) {
	b.comp.ResetMetrics()
	b.comp.ProcessBlock(buf, b.flags.Bypass)
	b.gainReductionDB = b.comp.Metrics().GainReductionDB()
}

// Reset clears the compressor envelopes.
func (b *Band) Reset() {
	b.comp.Reset()
	b.gainReductionDB = 0
}

// Index returns the band position: 0 low, 1 mid, 2 high.
func (b *Band) Index() int { return b.index }

// Flags returns the switches read by the last RefreshSettings.
func (b *Band) Flags() Flags { return b.flags }

// Settings returns the compressor settings in effect after clamping.
func (b *Band) Settings() dynamics.Settings { return b.comp.Settings() }

// GainReductionDB returns the largest gain reduction of the last block.
func (b *Band) GainReductionDB() float64 { return b.gainReductionDB }
