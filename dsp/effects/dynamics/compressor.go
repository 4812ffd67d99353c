package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-mbcomp/dsp/buffer"
	"github.com/cwbudde/algo-mbcomp/dsp/core"
)

// log2Of10Div20 converts dB to the log2 domain: log2(10) / 20.
const log2Of10Div20 = math.Ln10 / math.Ln2 / 20

// Metrics holds metering since the last ResetMetrics.
type Metrics struct {
	InputPeak     float64 // largest input magnitude
	OutputPeak    float64 // largest output magnitude
	GainReduction float64 // smallest applied gain (1 = no reduction)
}

// GainReductionDB returns the gain reduction as a non-negative dB figure.
func (m Metrics) GainReductionDB() float64 {
	return -core.LinearToDB(m.GainReduction)
}

// Compressor is a feed-forward peak compressor with one envelope follower
// per channel. Channels are not linked.
//
// Gain law with a hard knee: below the threshold the gain is unity, above it
// output dB = threshold + (input dB − threshold) / ratio. A non-zero knee
// blends the two quadratically over KneeDB around the threshold.
//
// A Compressor is not safe for concurrent use. ApplySettings and
// ProcessBlock do not allocate.
type Compressor struct {
	settings   Settings
	sampleRate float64

	envelope []float64

	attackCoeff      float64
	releaseCoeff     float64
	thresholdLog2    float64
	kneeStartLevel   float64 // linear level below which the gain is unity
	kneeWidthLog2    float64
	invKneeWidthLog2 float64
	slope            float64 // 1 - 1/ratio
	makeupLin        float64

	metrics Metrics
}

// NewCompressor creates a mono compressor with DefaultSettings.
func NewCompressor(sampleRate float64) (*Compressor, error) {
	c := &Compressor{settings: DefaultSettings()}
	if err := c.Prepare(sampleRate, 1); err != nil {
		return nil, err
	}

	return c, nil
}

// Prepare sizes the envelope state for channels and sets the sample rate.
// All envelopes and metrics are cleared.
func (c *Compressor) Prepare(sampleRate float64, channels int) error {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("dynamics: compressor sample rate must be positive and finite: %f", sampleRate)
	}

	if channels <= 0 {
		return fmt.Errorf("dynamics: compressor channel count must be positive: %d", channels)
	}

	c.sampleRate = sampleRate
	if cap(c.envelope) >= channels {
		c.envelope = c.envelope[:channels]
	} else {
		c.envelope = make([]float64, channels)
	}

	c.settings = c.settings.Clamped()
	c.updateCoefficients()
	c.Reset()

	return nil
}

// ApplySettings replaces all parameters. Out-of-range values are clamped,
// never rejected, so this is safe to call from the audio thread every
// block. Unchanged settings cost one comparison.
func (c *Compressor) ApplySettings(s Settings) {
	s = s.Clamped()
	if s == c.settings {
		return
	}

	c.settings = s
	c.updateCoefficients()
}

// Settings returns the parameters in effect.
func (c *Compressor) Settings() Settings { return c.settings }

// SetThreshold sets the threshold in dB.
func (c *Compressor) SetThreshold(dB float64) error {
	if !core.IsFinite(dB) || dB < minThresholdDB || dB > maxThresholdDB {
		return fmt.Errorf("dynamics: compressor threshold must be in [%g, %g]: %f", minThresholdDB, maxThresholdDB, dB)
	}

	s := c.settings
	s.ThresholdDB = dB
	c.ApplySettings(s)

	return nil
}

// SetRatio sets the compression ratio in [1, 100].
//   - 1 = no compression
//   - 4 = 4:1
//   - 100 ≈ limiting
func (c *Compressor) SetRatio(ratio float64) error {
	if !core.IsFinite(ratio) || ratio < minRatio || ratio > maxRatio {
		return fmt.Errorf("dynamics: compressor ratio must be in [%g, %g]: %f", minRatio, maxRatio, ratio)
	}

	s := c.settings
	s.Ratio = ratio
	c.ApplySettings(s)

	return nil
}

// SetKnee sets the soft-knee width in dB; 0 selects a hard knee.
func (c *Compressor) SetKnee(kneeDB float64) error {
	if !core.IsFinite(kneeDB) || kneeDB < minKneeDB || kneeDB > maxKneeDB {
		return fmt.Errorf("dynamics: compressor knee must be in [%g, %g]: %f", minKneeDB, maxKneeDB, kneeDB)
	}

	s := c.settings
	s.KneeDB = kneeDB
	c.ApplySettings(s)

	return nil
}

// SetAttack sets the attack time in milliseconds.
func (c *Compressor) SetAttack(ms float64) error {
	if !core.IsFinite(ms) || ms < minAttackMs || ms > maxAttackMs {
		return fmt.Errorf("dynamics: compressor attack must be in [%g, %g]: %f", minAttackMs, maxAttackMs, ms)
	}

	s := c.settings
	s.AttackMs = ms
	c.ApplySettings(s)

	return nil
}

// SetRelease sets the release time in milliseconds.
func (c *Compressor) SetRelease(ms float64) error {
	if !core.IsFinite(ms) || ms < minReleaseMs || ms > maxReleaseMs {
		return fmt.Errorf("dynamics: compressor release must be in [%g, %g]: %f", minReleaseMs, maxReleaseMs, ms)
	}

	s := c.settings
	s.ReleaseMs = ms
	c.ApplySettings(s)

	return nil
}

// SetMakeupGain sets the gain applied after compression, in dB.
func (c *Compressor) SetMakeupGain(dB float64) error {
	if !core.IsFinite(dB) || dB < minMakeupDB || dB > maxMakeupDB {
		return fmt.Errorf("dynamics: compressor makeup gain must be in [%g, %g]: %f", minMakeupDB, maxMakeupDB, dB)
	}

	s := c.settings
	s.MakeupDB = dB
	c.ApplySettings(s)

	return nil
}

// SampleRate returns the sample rate in Hz.
func (c *Compressor) SampleRate() float64 { return c.sampleRate }

// Channels returns the number of envelope followers.
func (c *Compressor) Channels() int { return len(c.envelope) }

// Envelope returns the current envelope level of channel ch.
func (c *Compressor) Envelope(ch int) float64 { return c.envelope[ch] }

// ProcessSample runs one sample of channel ch through the compressor.
func (c *Compressor) ProcessSample(ch int, x float64) float64 {
	level := math.Abs(x)
	env := c.follow(c.envelope[ch], level)
	c.envelope[ch] = env

	gain := c.calculateGain(env)
	y := x * gain * c.makeupLin
	c.updateMetrics(level, math.Abs(y), gain)

	return y
}

// ProcessChannel compresses x in place using the envelope of channel ch.
// With bypass set the envelope is still advanced, so un-bypassing resumes
// from a settled state, but the samples are left untouched.
func (c *Compressor) ProcessChannel(ch int, x []float64, bypass bool) {
	env := c.envelope[ch]

	if bypass {
		for _, v := range x {
			level := math.Abs(v)
			env = c.follow(env, level)
			c.updateMetrics(level, level, 1)
		}

		c.envelope[ch] = core.FlushDenormals(env)

		return
	}

	for i, v := range x {
		level := math.Abs(v)
		env = c.follow(env, level)

		gain := c.calculateGain(env)
		x[i] = v * gain * c.makeupLin
		c.updateMetrics(level, math.Abs(x[i]), gain)
	}

	c.envelope[ch] = core.FlushDenormals(env)
}

// ProcessBlock compresses every channel of buf in place. It panics if buf
// does not have the prepared channel count.
func (c *Compressor) ProcessBlock(buf *buffer.Buffer, bypass bool) {
	if buf.NumChannels() != len(c.envelope) {
		panic(fmt.Sprintf("dynamics: buffer has %d channels, compressor prepared for %d", buf.NumChannels(), len(c.envelope)))
	}

	for ch := range len(c.envelope) {
		c.ProcessChannel(ch, buf.Channel(ch), bypass)
	}
}

// CalculateOutputLevel returns the steady-state output magnitude for a
// constant input magnitude, which traces the static compression curve.
func (c *Compressor) CalculateOutputLevel(inputMagnitude float64) float64 {
	inputMagnitude = math.Abs(inputMagnitude)
	return inputMagnitude * c.calculateGain(inputMagnitude) * c.makeupLin
}

// Reset clears every envelope and the metrics.
func (c *Compressor) Reset() {
	clear(c.envelope)
	c.ResetMetrics()
}

// Metrics returns metering since the last ResetMetrics.
func (c *Compressor) Metrics() Metrics { return c.metrics }

// ResetMetrics starts a new metering window.
func (c *Compressor) ResetMetrics() {
	c.metrics = Metrics{GainReduction: 1}
}

func (c *Compressor) follow(env, level float64) float64 {
	if level > env {
		return env + (level-env)*c.attackCoeff
	}

	return level + (env-level)*c.releaseCoeff
}

func (c *Compressor) updateCoefficients() {
	s := c.settings

	c.thresholdLog2 = s.ThresholdDB * log2Of10Div20
	c.kneeWidthLog2 = s.KneeDB * log2Of10Div20

	c.invKneeWidthLog2 = 0
	if s.KneeDB > 0 {
		c.invKneeWidthLog2 = 1 / c.kneeWidthLog2
	}

	c.kneeStartLevel = math.Exp2(c.thresholdLog2 - c.kneeWidthLog2*0.5)
	c.slope = 1 - 1/s.Ratio
	c.makeupLin = math.Pow(10, s.MakeupDB/20)

	// Half-life coefficients: the envelope covers half the distance to the
	// input level in the attack or release time.
	c.attackCoeff = 1 - math.Exp(-math.Ln2/(s.AttackMs*0.001*c.sampleRate))
	c.releaseCoeff = math.Exp(-math.Ln2 / (s.ReleaseMs * 0.001 * c.sampleRate))
}

// calculateGain maps an envelope level to a linear gain multiplier.
func (c *Compressor) calculateGain(level float64) float64 {
	if level <= c.kneeStartLevel || c.slope == 0 {
		return 1
	}

	overshoot := mathLog2(level) - c.thresholdLog2

	if c.kneeWidthLog2 > 0 {
		halfWidth := c.kneeWidthLog2 * 0.5
		if overshoot < halfWidth {
			// Inside the knee: (overshoot + w/2)^2 / (2w)
			x := overshoot + halfWidth
			overshoot = x * x * 0.5 * c.invKneeWidthLog2
		}
	} else if overshoot <= 0 {
		return 1
	}

	return mathPower2(-overshoot * c.slope)
}

func (c *Compressor) updateMetrics(inputLevel, outputLevel, gain float64) {
	c.metrics.InputPeak = math.Max(c.metrics.InputPeak, inputLevel)
	c.metrics.OutputPeak = math.Max(c.metrics.OutputPeak, outputLevel)
	c.metrics.GainReduction = math.Min(c.metrics.GainReduction, gain)
}
