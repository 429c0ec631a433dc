package spectrum

import (
	"fmt"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for harmonic decimation.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) ([]float64, *scratchBuf) {
	buf := scratchPool.Get().(*scratchBuf)
	if cap(buf.data) < n {
		buf.data = make([]float64, n)
	} else {
		buf.data = buf.data[:n]
	}
	return buf.data, buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// MagnitudeFromParts computes |X[k]| = sqrt(re[k]^2 + im[k]^2) into dst.
//
// The real and imaginary parts stay in separate slices, matching the
// split-buffer layout the FFT transforms produce, so no unpacking or
// allocation happens on the analysis hot path. All three slices must have
// the same length. Uses SIMD-optimized kernels when available.
func MagnitudeFromParts(dst, re, im []float64) {
	vecmath.Magnitude(dst, re, im)
}

// PowerFromParts computes |X[k]|^2 = re[k]^2 + im[k]^2 into dst.
//
// All three slices must have the same length. Uses SIMD-optimized kernels
// when available.
func PowerFromParts(dst, re, im []float64) {
	vecmath.Power(dst, re, im)
}

// HarmonicProduct compresses a magnitude spectrum by multiplying each bin
// with its downsampled harmonic images:
//
//	dst[i] = mag[i] * mag[2*i] * ... * mag[harmonics*i]
//
// Bins whose harmonic images fall inside the spectrum accumulate energy from
// all partials of a periodic tone, which makes the fundamental stand out even
// when an overtone carries more raw energy. Only the first len(mag)/harmonics
// bins carry the full product; peak searches should be restricted to that
// range. dst and mag must have the same length and must not alias.
// Decimation scratch is pooled internally, so steady-state calls do not
// allocate.
func HarmonicProduct(dst, mag []float64, harmonics int) error {
	if harmonics < 1 {
		return fmt.Errorf("harmonic product order must be >= 1: %d", harmonics)
	}
	if len(dst) != len(mag) {
		return fmt.Errorf("harmonic product dst/mag length mismatch: %d != %d", len(dst), len(mag))
	}

	copy(dst, mag)

	for h := 2; h <= harmonics; h++ {
		m := len(mag) / h
		if m == 0 {
			break
		}

		decimated, buf := getScratch(m)
		for i := range decimated {
			decimated[i] = mag[i*h]
		}

		vecmath.MulBlockInPlace(dst[:m], decimated)
		putScratch(buf)
	}

	return nil
}
