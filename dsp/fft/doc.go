// Package fft computes discrete Fourier transforms over split real and
// imaginary slices, the layout the analysis pipeline keeps its spectra in.
//
// A [Transform] is created for a fixed size and reused; construction does
// the expensive setup (twiddle factors, convolution kernels, plan creation)
// so that Forward and Inverse stay allocation-free on the hot path.
//
// Three backends are available:
//   - BackendRadix2: in-place decimation-in-time kernel, power-of-two sizes only
//   - BackendBluestein: chirp-z re-expression for arbitrary sizes
//   - BackendAccelerated: delegates to algo-fft plans with arena-backed scratch
//
// [BackendAuto] (the default) picks radix-2 for power-of-two sizes and
// Bluestein otherwise.
//
// Common workflows:
//
//	t, err := fft.New(2048)
//	err = t.Forward(re, im)
//	err = t.Inverse(re, im)
//	t.Close()
//
// One-shot helpers [Forward] and [Inverse] wrap construction for callers
// without a hot path.
//
// Inverse transforms are scaled by 1/n, so Inverse(Forward(x)) returns x.
package fft
