// Package window provides analysis window functions for spectral
// processing.
//
// Windows are generated symmetric (first and last coefficient match),
// which is the appropriate form for spectral analysis frames. Apply and
// ApplyInPlace multiply a sample block with precomputed coefficients
// using vectorized kernels.
//
// Example:
//
//	coeffs, err := window.Generate(window.TypeHann, 2048)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := window.ApplyInPlace(samples, coeffs); err != nil {
//		log.Fatal(err)
//	}
package window
