package dynamics_test

import (
	"fmt"

	"github.com/cwbudde/algo-mbcomp/dsp/core"
	"github.com/cwbudde/algo-mbcomp/dsp/effects/dynamics"
)

func ExampleCompressor_CalculateOutputLevel() {
	comp, _ := dynamics.NewCompressor(48000)
	comp.ApplySettings(dynamics.Settings{ThresholdDB: -20, Ratio: 4, AttackMs: 10, ReleaseMs: 100})

	for _, in := range []float64{-30, -20, -10, 0} {
		out := comp.CalculateOutputLevel(core.DBToLinear(in))
		fmt.Printf("%4.0f dB -> %6.2f dB\n", in, core.LinearToDB(out))
	}
	// Output:
	//  -30 dB -> -30.00 dB
	//  -20 dB -> -20.00 dB
	//  -10 dB -> -17.50 dB
	//    0 dB -> -15.00 dB
}
