// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Sections are cascaded via
// [Chain] for higher-order filters such as Linkwitz-Riley crossovers.
//
// Block processing dispatches to the fastest kernel registered for the
// running CPU, detected once through algo-vecmath's cpu package.
//
// Coefficient design lives in dsp/filter/design/pass.
package biquad
