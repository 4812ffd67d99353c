// Package param defines the controls of the multiband compressor and a
// lock-free registry that stores their current values.
//
// A host thread writes values through [Registry]; the audio thread reads them
// through the typed [Float], [Bool] and [Choice] views it resolved once from
// a [Provider]. Every value lives in a single atomic word, so a read never
// observes a torn value. Writes are snapped to the control's step and
// clamped to its range.
package param
