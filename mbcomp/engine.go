package mbcomp

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-mbcomp/dsp/buffer"
	"github.com/cwbudde/algo-mbcomp/dsp/core"
	"github.com/cwbudde/algo-mbcomp/dsp/effects/dynamics"
	"github.com/cwbudde/algo-mbcomp/dsp/filter/crossover"
	"github.com/cwbudde/algo-mbcomp/dsp/gain"
	"github.com/cwbudde/algo-mbcomp/param"
)

// NumBands is the number of frequency bands.
const NumBands = param.NumBands

// ErrMissingControl is returned by NewEngine when the provider lacks a
// control the engine reads.
var ErrMissingControl = errors.New("mbcomp: missing control")

// State is the lifecycle state of an Engine.
type State int

const (
	// StateUnprepared only allows Prepare.
	StateUnprepared State = iota
	// StatePrepared allows Process, Reset and Prepare.
	StatePrepared
)

func (s State) String() string {
	switch s {
	case StateUnprepared:
		return "unprepared"
	case StatePrepared:
		return "prepared"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Meters is a snapshot of the engine's level meters for the last block.
type Meters struct {
	InputPeakDB     float64 // before the input gain
	OutputPeakDB    float64 // after the output gain
	GainReductionDB [NumBands]float64
}

type meters struct {
	inputPeak     atomic.Uint64
	outputPeak    atomic.Uint64
	gainReduction [NumBands]atomic.Uint64
}

func (m *meters) store(in, out float64, bands *[NumBands]*Band) {
	m.inputPeak.Store(math.Float64bits(in))
	m.outputPeak.Store(math.Float64bits(out))

	for i, b := range bands {
		m.gainReduction[i].Store(math.Float64bits(b.GainReductionDB()))
	}
}

// Engine is the three-band compressor. Process must only be called from
// one goroutine at a time; Meters may be called from any goroutine.
type Engine struct {
	lowMid  param.Float
	midHigh param.Float
	gainIn  param.Float
	gainOut param.Float

	bands   [NumBands]*Band
	network *crossover.ThreeBand
	inGain  *gain.Stage
	outGain *gain.Stage
	work    *buffer.Arena

	cfg    config
	spec   core.ProcessSpec
	state  State
	meters meters
}

// NewEngine resolves every control the engine reads from p. A missing
// control is a configuration error: the returned error wraps
// ErrMissingControl and lists all missing names.
func NewEngine(p param.Provider, opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	network, err := crossover.NewThreeBand(crossover.WithOrder(cfg.order))
	if err != nil {
		return nil, fmt.Errorf("mbcomp: %w", err)
	}

	e := &Engine{
		network: network,
		inGain:  gain.New(),
		outGain: gain.New(),
		cfg:     cfg,
	}

	var missing []error

	for _, c := range []struct {
		dst  *param.Float
		name string
	}{
		{&e.lowMid, param.LowMidCrossover},
		{&e.midHigh, param.MidHighCrossover},
		{&e.gainIn, param.GainIn},
		{&e.gainOut, param.GainOut},
	} {
		var ok bool
		if *c.dst, ok = p.Float(c.name); !ok {
			missing = append(missing, fmt.Errorf("%w: %q", ErrMissingControl, c.name))
		}
	}

	for i := range e.bands {
		if e.bands[i], err = newBand(i, p, cfg); err != nil {
			missing = append(missing, err)
		}
	}

	if err := errors.Join(missing...); err != nil {
		return nil, err
	}

	return e, nil
}

// Prepare allocates every buffer and filter for spec and resets all
// processing state. It may be called again at any time, for example after a
// sample-rate change, but not concurrently with Process. On error the engine
// is left exactly as it was.
func (e *Engine) Prepare(spec core.ProcessSpec) error {
	if err := spec.Validate(); err != nil {
		return fmt.Errorf("mbcomp: %w", err)
	}

	network, err := crossover.NewThreeBand(crossover.WithOrder(e.cfg.order))
	if err != nil {
		return fmt.Errorf("mbcomp: %w", err)
	}

	network.SetCutoffs(crossover.ClampCutoffs(e.lowMid.Get(), e.midHigh.Get(), spec.SampleRate))

	if err := network.Prepare(spec); err != nil {
		return fmt.Errorf("mbcomp: %w", err)
	}

	var comps [NumBands]*dynamics.Compressor

	for i, b := range e.bands {
		if comps[i], err = b.newCompressor(spec.SampleRate, spec.MaxBlockSize, spec.Channels); err != nil {
			return err
		}
	}

	// Nothing below can fail.
	e.network = network

	for i, b := range e.bands {
		b.use(comps[i])
	}

	e.inGain.SetTargetDecibels(e.gainIn.Get())
	e.inGain.Configure(spec.SampleRate, spec.MaxBlockSize, e.cfg.rampSeconds)
	e.outGain.SetTargetDecibels(e.gainOut.Get())
	e.outGain.Configure(spec.SampleRate, spec.MaxBlockSize, e.cfg.rampSeconds)

	if e.work == nil {
		e.work = buffer.NewArena(NumBands, spec.Channels, spec.MaxBlockSize)
	} else {
		e.work.Resize(spec.Channels, spec.MaxBlockSize)
	}

	e.spec = spec
	e.clearMeters()
	e.state = StatePrepared

	return nil
}

// Process runs one block through the engine in place.
//
// buf must have exactly the prepared channel count and at most the prepared
// maximum block size; anything else is a programming error and panics, as
// does calling Process before Prepare.
func (e *Engine) Process(buf *buffer.Buffer) {
	if e.state != StatePrepared {
		panic("mbcomp: Process called before Prepare")
	}

	if buf.NumChannels() != e.spec.Channels {
		panic(fmt.Sprintf("mbcomp: buffer has %d channels, prepared for %d", buf.NumChannels(), e.spec.Channels))
	}

	if buf.Len() > e.spec.MaxBlockSize {
		panic(fmt.Sprintf("mbcomp: block of %d frames exceeds prepared maximum %d", buf.Len(), e.spec.MaxBlockSize))
	}

	inputPeak := buf.Peak()

	e.inGain.SetTargetDecibels(e.gainIn.Get())
	e.inGain.Apply(buf)

	low, mid, high := e.work.Buffer(0), e.work.Buffer(1), e.work.Buffer(2)
	lowMid, midHigh := crossover.ClampCutoffs(e.lowMid.Get(), e.midHigh.Get(), e.spec.SampleRate)
	e.network.Split(buf, low, mid, high, lowMid, midHigh)

	bands := [NumBands]*buffer.Buffer{low, mid, high}

	var flags [NumBands]Flags

	for i, b := range e.bands {
		b.RefreshSettings()
		b.Process(bands[i])
		flags[i] = b.Flags()
	}

	Combine(buf, bands, flags)

	e.outGain.SetTargetDecibels(e.gainOut.Get())
	e.outGain.Apply(buf)

	e.meters.store(core.LinearToDB(inputPeak), core.LinearToDB(buf.Peak()), &e.bands)
}

// Reset clears filter, envelope and gain-ramp state without reallocating.
// It does nothing on an unprepared engine.
func (e *Engine) Reset() {
	if e.state != StatePrepared {
		return
	}

	e.network.Reset()

	for _, b := range e.bands {
		b.Reset()
	}

	e.inGain.Reset()
	e.outGain.Reset()
	e.clearMeters()
}

func (e *Engine) clearMeters() {
	silence := math.Float64bits(core.MinusInfinityDB)
	e.meters.inputPeak.Store(silence)
	e.meters.outputPeak.Store(silence)

	for i := range e.meters.gainReduction {
		e.meters.gainReduction[i].Store(0)
	}
}

// Meters returns the levels measured during the last block.
func (e *Engine) Meters() Meters {
	m := Meters{
		InputPeakDB:  math.Float64frombits(e.meters.inputPeak.Load()),
		OutputPeakDB: math.Float64frombits(e.meters.outputPeak.Load()),
	}

	for i := range m.GainReductionDB {
		m.GainReductionDB[i] = math.Float64frombits(e.meters.gainReduction[i].Load())
	}

	return m
}

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// Prepared reports whether Process may be called.
func (e *Engine) Prepared() bool { return e.state == StatePrepared }

// Spec returns the spec of the last successful Prepare.
func (e *Engine) Spec() core.ProcessSpec { return e.spec }

// Band returns band i (0 low, 1 mid, 2 high).
func (e *Engine) Band(i int) *Band { return e.bands[i] }

// Crossover returns the band-split network.
func (e *Engine) Crossover() *crossover.ThreeBand { return e.network }

// InputGain returns the input gain stage.
func (e *Engine) InputGain() *gain.Stage { return e.inGain }

// OutputGain returns the output gain stage.
func (e *Engine) OutputGain() *gain.Stage { return e.outGain }
