package crossover_test

import (
	"fmt"

	"github.com/cwbudde/algo-mbcomp/dsp/buffer"
	"github.com/cwbudde/algo-mbcomp/dsp/core"
	"github.com/cwbudde/algo-mbcomp/dsp/filter/crossover"
)

func ExampleNew() {
	xo, _ := crossover.New(1000, 4, 48000) // LR4 at 1 kHz

	fmt.Printf("order=%d freq=%.0f Hz\n", xo.Order(), xo.Freq())
	fmt.Printf("LP sections=%d HP sections=%d\n", xo.LP().NumSections(), xo.HP().NumSections())
	fmt.Printf("LP at 1000 Hz: %.2f dB\n", xo.LP().MagnitudeDB(1000, 48000))
	fmt.Printf("HP at 1000 Hz: %.2f dB\n", xo.HP().MagnitudeDB(1000, 48000))
	// Output:
	// order=4 freq=1000 Hz
	// LP sections=2 HP sections=2
	// LP at 1000 Hz: -6.02 dB
	// HP at 1000 Hz: -6.02 dB
}

func ExampleThreeBand_Split() {
	net, _ := crossover.NewThreeBand(crossover.WithOrder(4))
	_ = net.Prepare(core.NewProcessSpec(core.WithChannels(1), core.WithMaxBlockSize(4096)))

	in := buffer.New(1, 4096)
	in.Channel(0)[0] = 1 // impulse

	bands := buffer.NewArena(3, 1, 4096)
	net.Split(in, bands.Buffer(0), bands.Buffer(1), bands.Buffer(2), 500, 3000)

	// The bands sum to an allpass response: the impulse energy is kept.
	energy := 0.0
	for i := range 4096 {
		s := bands.Buffer(0).Channel(0)[i] + bands.Buffer(1).Channel(0)[i] + bands.Buffer(2).Channel(0)[i]
		energy += s * s
	}

	fmt.Printf("energy=%.4f\n", energy)
	// Output: energy=1.0000
}
