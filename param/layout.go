package param

import (
	"fmt"
	"slices"
)

// NumBands is the number of compressor bands.
const NumBands = 3

// BandNames are the display names of the bands, lowest first.
var BandNames = [NumBands]string{"Low", "Mid", "High"}

// Global control names.
const (
	LowMidCrossover  = "Low-Mid Crossover Freq"
	MidHighCrossover = "Mid-High Crossover Freq"
	GainIn           = "Gain In"
	GainOut          = "Gain Out"
)

// RatioChoices are the selectable compression ratios (n:1).
var RatioChoices = []float64{1, 2, 3, 5, 8, 13, 21, 34, 55, 89}

// DefaultRatioIndex selects 3:1.
const DefaultRatioIndex = 2

func bandName(kind string, band int) string {
	if band < 0 || band >= NumBands {
		panic(fmt.Sprintf("param: band %d out of range", band))
	}

	return kind + " " + BandNames[band] + " Band"
}

// Threshold returns the name of a band's threshold control.
func Threshold(band int) string { return bandName("Threshold", band) }

// Attack returns the name of a band's attack control.
func Attack(band int) string { return bandName("Attack", band) }

// Release returns the name of a band's release control.
func Release(band int) string { return bandName("Release", band) }

// Ratio returns the name of a band's ratio control.
func Ratio(band int) string { return bandName("Ratio", band) }

// Bypassed returns the name of a band's bypass control.
func Bypassed(band int) string { return bandName("Bypassed", band) }

// Mute returns the name of a band's mute control.
func Mute(band int) string { return bandName("Mute", band) }

// Solo returns the name of a band's solo control.
func Solo(band int) string { return bandName("Solo", band) }

// Layout returns the definitions of all 25 controls: seven per band followed
// by the two crossover frequencies and the input and output gains.
func Layout() []Definition {
	defs := make([]Definition, 0, 7*NumBands+4)

	for band := range NumBands {
		defs = append(defs,
			Definition{Name: Threshold(band), Kind: KindFloat, Unit: "dB", Min: -60, Max: 12, Step: 1, Default: 0},
			Definition{Name: Attack(band), Kind: KindFloat, Unit: "ms", Min: 5, Max: 500, Step: 1, Default: 50},
			Definition{Name: Release(band), Kind: KindFloat, Unit: "ms", Min: 5, Max: 500, Step: 1, Default: 250},
			Definition{Name: Ratio(band), Kind: KindChoice, Choices: slices.Clone(RatioChoices), DefaultIndex: DefaultRatioIndex},
			Definition{Name: Bypassed(band), Kind: KindBool},
			Definition{Name: Mute(band), Kind: KindBool},
			Definition{Name: Solo(band), Kind: KindBool},
		)
	}

	return append(defs,
		Definition{Name: LowMidCrossover, Kind: KindFloat, Unit: "Hz", Min: 20, Max: 999, Step: 1, Default: 500},
		Definition{Name: MidHighCrossover, Kind: KindFloat, Unit: "Hz", Min: 1000, Max: 20000, Step: 1, Default: 3000},
		Definition{Name: GainIn, Kind: KindFloat, Unit: "dB", Min: -24, Max: 24, Step: 0.5, Default: 0},
		Definition{Name: GainOut, Kind: KindFloat, Unit: "dB", Min: -24, Max: 24, Step: 0.5, Default: 0},
	)
}
