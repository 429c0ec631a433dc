package fft

import (
	"math"

	"github.com/cwbudde/algo-pitch/dsp/core"
)

// bluesteinPlan handles arbitrary sizes by re-expressing the DFT as a
// circular convolution of length m = 2^ceil(log2(2n-1)), which the radix-2
// kernel can compute.
//
// The chirp sequence and the transformed convolution kernel are precomputed
// once; per-call work reuses two scratch vectors.
type bluesteinPlan struct {
	n int
	m int

	// chirp[k] = exp(-i*pi*k^2/n) for k in [0, n).
	chirpRe []float64
	chirpIm []float64

	// DFT of the kernel b[k] = exp(+i*pi*k^2/n), mirrored at m-k.
	kernRe []float64
	kernIm []float64

	scratchRe []float64
	scratchIm []float64
}

func newBluestein(n int) (*bluesteinPlan, error) {
	m := core.NextPowerOfTwo(2*n - 1)

	p := &bluesteinPlan{
		n:         n,
		m:         m,
		chirpRe:   make([]float64, n),
		chirpIm:   make([]float64, n),
		kernRe:    make([]float64, m),
		kernIm:    make([]float64, m),
		scratchRe: make([]float64, m),
		scratchIm: make([]float64, m),
	}

	for k := 0; k < n; k++ {
		// k^2 mod 2n keeps the angle argument small; exp(-i*pi*k^2/n) has
		// period 2n in k^2, and the reduction avoids the precision loss of
		// forming pi*k*k/n directly for large k.
		theta := math.Pi * float64((int64(k)*int64(k))%int64(2*n)) / float64(n)
		p.chirpRe[k] = math.Cos(theta)
		p.chirpIm[k] = -math.Sin(theta)
	}

	// b[k] is the conjugate chirp, wrapped so that b[m-k] = b[k] makes the
	// linear convolution circular.
	for k := 0; k < n; k++ {
		p.kernRe[k] = p.chirpRe[k]
		p.kernIm[k] = -p.chirpIm[k]

		if k > 0 {
			p.kernRe[m-k] = p.kernRe[k]
			p.kernIm[m-k] = p.kernIm[k]
		}
	}

	radix2Forward(p.kernRe, p.kernIm)

	return p, nil
}

func (p *bluesteinPlan) forward(re, im []float64) error {
	aRe := p.scratchRe
	aIm := p.scratchIm
	core.Zero(aRe)
	core.Zero(aIm)

	// Modulate the input by the chirp.
	for k := 0; k < p.n; k++ {
		aRe[k] = re[k]*p.chirpRe[k] - im[k]*p.chirpIm[k]
		aIm[k] = re[k]*p.chirpIm[k] + im[k]*p.chirpRe[k]
	}

	// Convolve with the kernel in the frequency domain.
	radix2Forward(aRe, aIm)

	for i := 0; i < p.m; i++ {
		tr := aRe[i]*p.kernRe[i] - aIm[i]*p.kernIm[i]
		ti := aRe[i]*p.kernIm[i] + aIm[i]*p.kernRe[i]
		aRe[i] = tr
		aIm[i] = ti
	}

	if err := inverseViaForward(func(r, i []float64) error {
		radix2Forward(r, i)
		return nil
	}, aRe, aIm); err != nil {
		return err
	}

	// Demodulate back into the caller's slices.
	for k := 0; k < p.n; k++ {
		re[k] = aRe[k]*p.chirpRe[k] - aIm[k]*p.chirpIm[k]
		im[k] = aRe[k]*p.chirpIm[k] + aIm[k]*p.chirpRe[k]
	}

	return nil
}

func (p *bluesteinPlan) inverse(re, im []float64) error {
	return inverseViaForward(p.forward, re, im)
}

func (p *bluesteinPlan) close() {}
