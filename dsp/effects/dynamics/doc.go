// Package dynamics provides the envelope-follower compressor used by each
// band of the multiband processor.
//
// The compressor works in the log2 domain: the envelope is converted once
// per sample with log2 and the gain back with 2^x. Building with the
// fastmath tag swaps both for algo-approx polynomial approximations.
package dynamics
