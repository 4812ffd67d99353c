package mbcomp

import "github.com/cwbudde/algo-mbcomp/dsp/buffer"

// Audible applies the routing policy: if any band is soloed exactly the
// soloed bands are heard and mute is ignored; otherwise every band that is
// not muted is heard.
func Audible(flags [NumBands]Flags) [NumBands]bool {
	var (
		out    [NumBands]bool
		soloed bool
	)

	for _, f := range flags {
		soloed = soloed || f.Solo
	}

	for i, f := range flags {
		if soloed {
			out[i] = f.Solo
		} else {
			out[i] = !f.Mute
		}
	}

	return out
}

// Combine clears out and adds the audible bands into it over out's current
// length. Every band must have out's channel count and at least its length.
func Combine(out *buffer.Buffer, bands [NumBands]*buffer.Buffer, flags [NumBands]Flags) {
	out.Zero()

	for i, on := range Audible(flags) {
		if on {
			out.AddFrom(bands[i])
		}
	}
}
