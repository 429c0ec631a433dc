// Package note maps frequencies to equal-tempered note names with cents
// deviation, and back.
//
// The mapping is relative to a configurable A4 reference (default 440 Hz):
//
//	n := note.FromFrequency(446)        // A4, +23 cents
//	f, err := note.Frequency("E", 2)    // 82.41 Hz
//	a := note.ForMIDI(69)               // A4
//
// Frequencies exactly halfway between two notes round up to the higher
// note.
package note
