package gain

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-mbcomp/dsp/buffer"
	"github.com/cwbudde/algo-mbcomp/dsp/core"
	"github.com/cwbudde/algo-mbcomp/internal/testutil"
)

// recordGains runs frames of ones through s in blocks and returns the gain
// applied to every frame of channel 0.
func recordGains(s *Stage, channels, frames, block int) []float64 {
	gains := make([]float64, 0, frames)
	buf := buffer.New(channels, block)

	testutil.Blocks(frames, block, func(_, n int) {
		buf.SetLen(n)
		for ch := range channels {
			copy(buf.Channel(ch), testutil.DC(1, n))
		}

		s.Apply(buf)
		gains = append(gains, buf.Channel(0)...)
	})

	return gains
}

func TestStage_RampMonotonicConvergence(t *testing.T) {
	const (
		sr    = 48000.0
		ramp  = 0.05
		block = 64
	)

	s := New()
	s.Configure(sr, block, ramp)
	s.SetTargetDecibels(6)

	rampSamples := int(ramp * sr)
	gains := recordGains(s, 2, rampSamples+4*block, block)

	target := core.DBToLinear(6)
	increment := (target - 1) / float64(rampSamples)

	for i := 1; i < rampSamples; i++ {
		if gains[i] <= gains[i-1] {
			t.Fatalf("gain not increasing at frame %d: %v -> %v", i, gains[i-1], gains[i])
		}

		if d := gains[i] - gains[i-1]; d > increment*(1+1e-9) {
			t.Fatalf("step %v at frame %d exceeds ramp increment %v", d, i, increment)
		}
	}

	for i := rampSamples - 1; i < len(gains); i++ {
		if gains[i] != target {
			t.Fatalf("frame %d: gain %v, want steady %v", i, gains[i], target)
		}
	}

	// Block-over-block the last gain of each block rises until the target.
	prev := 1.0
	for end := block - 1; end < rampSamples; end += block {
		if gains[end] <= prev {
			t.Fatalf("block ending at %d did not increase the gain", end)
		}

		prev = gains[end]
	}

	if s.Ramping() || s.Gain() != target {
		t.Fatalf("stage still ramping=%v at gain %v", s.Ramping(), s.Gain())
	}
}

func TestStage_ChannelsShareRamp(t *testing.T) {
	s := New()
	s.Configure(48000, 128, 0.001)
	s.SetTargetDecibels(-12)

	buf := testutil.Buffer(3, testutil.DC(1, 128))
	s.Apply(buf)

	testutil.RequireSliceNearlyEqual(t, buf.Channel(1), buf.Channel(0), 0)
	testutil.RequireSliceNearlyEqual(t, buf.Channel(2), buf.Channel(0), 0)
}

func TestStage_RetargetRestartsFromCurrent(t *testing.T) {
	s := New()
	s.Configure(1000, 100, 0.1) // 100-sample ramp
	s.SetTargetDecibels(12)
	recordGains(s, 1, 50, 25)

	mid := s.Gain()
	s.SetTargetDecibels(0)

	gains := recordGains(s, 1, 100, 25)
	if math.Abs(gains[0]-(mid+(1-mid)/100)) > 1e-12 {
		t.Fatalf("first retargeted gain %v, want one step down from %v", gains[0], mid)
	}

	if gains[99] != 1 {
		t.Fatalf("ramp did not land on target: %v", gains[99])
	}
}

func TestStage_SetTargetDecibelsClamps(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"in range", -3.5, -3.5},
		{"above", 40, DefaultMaxDB},
		{"below", -90, DefaultMinDB},
		{"plus inf", math.Inf(1), DefaultMaxDB},
		{"minus inf", math.Inf(-1), DefaultMinDB},
		{"nan keeps previous", math.NaN(), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.Configure(48000, 64, 0)
			s.SetTargetDecibels(2)
			s.SetTargetDecibels(tt.in)

			if got := s.TargetDecibels(); got != tt.want {
				t.Fatalf("TargetDecibels() = %v, want %v", got, tt.want)
			}

			// Zero ramp time jumps straight to the target.
			if got := s.Gain(); math.Abs(got-core.DBToLinear(tt.want)) > 1e-12 {
				t.Fatalf("Gain() = %v", got)
			}
		})
	}
}

func TestStage_Options(t *testing.T) {
	s := New(WithRange(-6, 6), WithInitialDecibels(20))
	if lo, hi := s.Range(); lo != -6 || hi != 6 {
		t.Fatalf("Range() = %v, %v", lo, hi)
	}

	if s.TargetDecibels() != 6 {
		t.Fatalf("initial target %v not clamped to 6", s.TargetDecibels())
	}

	s.Configure(48000, 16, DefaultRampSeconds)
	if s.Ramping() || math.Abs(s.Gain()-core.DBToLinear(6)) > 1e-12 {
		t.Fatal("Configure should start at the initial gain without ramping")
	}

	if lo, hi := New(WithRange(3, -3)).Range(); lo != DefaultMinDB || hi != DefaultMaxDB {
		t.Fatalf("inverted range accepted: %v, %v", lo, hi)
	}
}

func TestStage_SteadyStateUnity(t *testing.T) {
	s := New()
	s.Configure(48000, 32, DefaultRampSeconds)

	in := testutil.Noise(9, 1, 32)
	buf := testutil.Buffer(1, in)
	s.Apply(buf)

	testutil.RequireSliceNearlyEqual(t, buf.Channel(0), in, 0)
}

func TestStage_ApplyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unconfigured stage")
		}
	}()

	New().Apply(buffer.New(1, 4))
}

func TestStage_ApplyRejectsOversizedBlock(t *testing.T) {
	s := New()
	s.Configure(48000, 8, 0)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for oversized block")
		}
	}()

	s.Apply(buffer.New(1, 9))
}

func BenchmarkStage_ApplyRamping(b *testing.B) {
	s := New()
	s.Configure(48000, 512, 1)
	buf := testutil.Buffer(2, testutil.Noise(1, 0.5, 512))
	target := 6.0

	b.ResetTimer()

	for range b.N {
		target = -target
		s.SetTargetDecibels(target)
		s.Apply(buf)
	}
}
