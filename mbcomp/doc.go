// Package mbcomp is a real-time three-band compressor.
//
// An [Engine] is built once from a [param.Provider] holding the 25 controls
// of [param.Layout]. For every block it applies the input gain, splits the
// signal into low, mid and high bands with a Linkwitz-Riley network,
// compresses each band, sums the audible bands under solo/mute rules and
// applies the output gain:
//
//	reg := param.NewDefaultRegistry()
//	eng, err := mbcomp.NewEngine(reg)
//	...
//	err = eng.Prepare(core.NewProcessSpec(core.WithSampleRate(44100)))
//	...
//	for each block {
//		eng.Process(buf) // in place
//	}
//
// Process never allocates, locks or returns an error. Controls may be
// written from another goroutine through the registry; each block sees
// every control either before or after a concurrent write.
package mbcomp
