// Package pass designs lowpass, highpass and allpass IIR filters as cascades
// of biquad sections for dsp/filter/biquad.
//
// Every designer has an Append variant that writes into caller-owned
// storage. With enough capacity in dst the Append variants do not allocate,
// which lets crossover networks re-tune their cutoffs on the audio thread.
package pass
