// Package crossover provides Linkwitz-Riley crossover networks for splitting
// an audio signal into frequency bands.
//
// [Crossover] is a two-way LP/HP pair of arbitrary even order. [Allpass]
// has the phase response of a Crossover split-and-sum without splitting.
// [ThreeBand] combines two Crossovers and one Allpass per channel into a
// low/mid/high network whose bands recombine to a flat magnitude response:
//
//	low  = LP(f1) · AP(f2)
//	mid  = HP(f1) · LP(f2)
//	high = HP(f1) · HP(f2)
//
// so low+mid+high = AP(f1)·AP(f2)·x.
//
// Linkwitz-Riley filters are two identical Butterworth filters in cascade.
// An LR-2N crossover is -6.02 dB at the crossover frequency.
package crossover
