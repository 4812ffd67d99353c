package dynamics

import "github.com/cwbudde/algo-mbcomp/dsp/core"

const (
	defaultThresholdDB = 0.0
	defaultRatio       = 3.0
	defaultKneeDB      = 0.0
	defaultAttackMs    = 50.0
	defaultReleaseMs   = 250.0
	defaultMakeupDB    = 0.0

	minThresholdDB = -120.0
	maxThresholdDB = 24.0
	minRatio       = 1.0
	maxRatio       = 100.0
	minKneeDB      = 0.0
	maxKneeDB      = 24.0
	minAttackMs    = 0.1
	maxAttackMs    = 1000.0
	minReleaseMs   = 1.0
	maxReleaseMs   = 5000.0
	minMakeupDB    = -24.0
	maxMakeupDB    = 24.0
)

// Settings is the complete parameter set of a Compressor.
type Settings struct {
	ThresholdDB float64 // level above which gain reduction starts
	Ratio       float64 // input dB change per output dB above threshold; 1 disables compression
	KneeDB      float64 // soft-knee width; 0 is a hard knee
	AttackMs    float64
	ReleaseMs   float64
	MakeupDB    float64
}

// DefaultSettings returns 3:1 at 0 dB, hard knee, 50 ms attack and 250 ms
// release.
func DefaultSettings() Settings {
	return Settings{
		ThresholdDB: defaultThresholdDB,
		Ratio:       defaultRatio,
		KneeDB:      defaultKneeDB,
		AttackMs:    defaultAttackMs,
		ReleaseMs:   defaultReleaseMs,
		MakeupDB:    defaultMakeupDB,
	}
}

// Clamped returns s with every field forced into its valid range. NaN
// fields take their default.
func (s Settings) Clamped() Settings {
	return Settings{
		ThresholdDB: core.ClampFinite(s.ThresholdDB, minThresholdDB, maxThresholdDB, defaultThresholdDB),
		Ratio:       core.ClampFinite(s.Ratio, minRatio, maxRatio, defaultRatio),
		KneeDB:      core.ClampFinite(s.KneeDB, minKneeDB, maxKneeDB, defaultKneeDB),
		AttackMs:    core.ClampFinite(s.AttackMs, minAttackMs, maxAttackMs, defaultAttackMs),
		ReleaseMs:   core.ClampFinite(s.ReleaseMs, minReleaseMs, maxReleaseMs, defaultReleaseMs),
		MakeupDB:    core.ClampFinite(s.MakeupDB, minMakeupDB, maxMakeupDB, defaultMakeupDB),
	}
}
