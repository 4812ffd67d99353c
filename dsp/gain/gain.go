// Package gain provides a click-free gain stage for block-based processing.
package gain

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-mbcomp/dsp/buffer"
	"github.com/cwbudde/algo-mbcomp/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

const (
	// DefaultMinDB and DefaultMaxDB bound the target gain.
	DefaultMinDB = -24.0
	DefaultMaxDB = 24.0
	// DefaultRampSeconds is the time a target change takes to complete.
	DefaultRampSeconds = 0.05
)

// Option configures a Stage.
type Option func(*Stage)

// WithRange sets the allowed target range in dB. Ranges with min > max or
// non-finite bounds are ignored.
func WithRange(minDB, maxDB float64) Option {
	return func(s *Stage) {
		if core.IsFinite(minDB) && core.IsFinite(maxDB) && minDB <= maxDB {
			s.minDB, s.maxDB = minDB, maxDB
		}
	}
}

// WithInitialDecibels sets the gain the stage starts at after Configure.
func WithInitialDecibels(db float64) Option {
	return func(s *Stage) { s.targetDB = db }
}

// Stage multiplies a buffer by a gain that ramps linearly toward its target.
//
// The ramp is linear in the linear-gain domain and always lasts the
// configured duration: changing the target mid-ramp restarts the ramp from
// the current gain. All channels of a frame get the same gain.
type Stage struct {
	minDB, maxDB float64
	targetDB     float64

	current   float64
	target    float64
	step      float64
	remaining int

	rampSamples  int
	maxBlockSize int
	configured   bool
}

// New returns an unconfigured stage at 0 dB.
func New(opts ...Option) *Stage {
	s := &Stage{minDB: DefaultMinDB, maxDB: DefaultMaxDB}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.targetDB = s.clampDB(s.targetDB, 0)

	return s
}

// Configure prepares the stage for a sample rate and block size and jumps
// to the current target without ramping. A negative or non-finite ramp
// duration selects DefaultRampSeconds; zero disables ramping.
func (s *Stage) Configure(sampleRate float64, maxBlockSize int, rampSeconds float64) {
	if !core.IsFinite(rampSeconds) || rampSeconds < 0 {
		rampSeconds = DefaultRampSeconds
	}

	if !core.IsFinite(sampleRate) || sampleRate <= 0 {
		panic(fmt.Sprintf("gain: invalid sample rate %v", sampleRate))
	}

	s.rampSamples = int(math.Floor(rampSeconds * sampleRate))
	s.maxBlockSize = maxBlockSize
	s.configured = true
	s.Reset()
}

// SetTargetDecibels sets the gain to ramp toward. The value is clamped to
// the stage's range: ±Inf go to the range ends, NaN keeps the previous
// target. Setting the current target again does not restart the ramp.
func (s *Stage) SetTargetDecibels(db float64) {
	db = s.clampDB(db, s.targetDB)
	if db == s.targetDB && s.configured {
		return
	}

	s.targetDB = db
	s.target = core.DBToLinear(db)

	if !s.configured {
		return
	}

	if s.rampSamples == 0 {
		s.current = s.target
		s.remaining = 0

		return
	}

	s.remaining = s.rampSamples
	s.step = (s.target - s.current) / float64(s.rampSamples)
}

func (s *Stage) clampDB(db, fallback float64) float64 {
	return core.ClampFinite(db, s.minDB, s.maxDB, fallback)
}

// TargetDecibels returns the current target in dB.
func (s *Stage) TargetDecibels() float64 { return s.targetDB }

// Gain returns the linear gain that was applied to the last frame.
func (s *Stage) Gain() float64 { return s.current }

// Ramping reports whether the gain is still moving toward the target.
func (s *Stage) Ramping() bool { return s.remaining > 0 }

// Range returns the allowed target range in dB.
func (s *Stage) Range() (minDB, maxDB float64) { return s.minDB, s.maxDB }

// Reset ends any ramp and jumps to the target.
func (s *Stage) Reset() {
	s.target = core.DBToLinear(s.targetDB)
	s.current = s.target
	s.step = 0
	s.remaining = 0
}

// Apply multiplies every channel of buf by the ramping gain and advances the
// ramp by buf.Len() frames. It panics if the stage is not configured or the
// block exceeds the configured maximum.
func (s *Stage) Apply(buf *buffer.Buffer) {
	if !s.configured {
		panic("gain: Apply called before Configure")
	}

	n := buf.Len()
	if n > s.maxBlockSize {
		panic(fmt.Sprintf("gain: block of %d frames exceeds maximum %d", n, s.maxBlockSize))
	}

	if s.remaining == 0 {
		buf.Scale(s.current)
		return
	}

	var (
		current   float64
		remaining int
	)

	for ch := range buf.NumChannels() {
		current, remaining = s.ramp(buf.Channel(ch), s.current, s.remaining)
	}

	if buf.NumChannels() == 0 {
		current, remaining = s.advance(s.current, s.remaining, n)
	}

	s.current, s.remaining = current, remaining
}

// ramp applies the gain sequence starting from (current, remaining) to x
// and returns the state after the last sample.
func (s *Stage) ramp(x []float64, current float64, remaining int) (float64, int) {
	i := 0
	for ; i < len(x) && remaining > 0; i++ {
		remaining--
		if remaining == 0 {
			current = s.target
		} else {
			current += s.step
		}

		x[i] *= current
	}

	if i < len(x) {
		vecmath.ScaleBlockInPlace(x[i:], current)
	}

	return current, remaining
}

func (s *Stage) advance(current float64, remaining, frames int) (float64, int) {
	if frames >= remaining {
		return s.target, 0
	}

	return current + s.step*float64(frames), remaining - frames
}
