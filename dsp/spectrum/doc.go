// Package spectrum converts split real/imaginary FFT output into real-valued
// spectra and provides harmonic compression for fundamental-frequency
// analysis.
//
// MagnitudeFromParts and PowerFromParts are zero-allocation conversions for
// callers that keep real and imaginary parts in separate slices.
// HarmonicProduct implements the harmonic product spectrum used to
// disambiguate a fundamental from its overtones.
package spectrum
