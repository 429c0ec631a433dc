package fft

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pitch/dsp/core"
)

// radix2Plan is the portable power-of-two backend: an iterative in-place
// decimation-in-time FFT.
type radix2Plan struct {
	n int
}

func newRadix2(n int) (*radix2Plan, error) {
	if !core.IsPowerOfTwo(n) {
		return nil, fmt.Errorf("%w: radix-2 backend requires a power-of-two size: %d", ErrInvalidLength, n)
	}

	return &radix2Plan{n: n}, nil
}

func (p *radix2Plan) forward(re, im []float64) error {
	radix2Forward(re, im)
	return nil
}

func (p *radix2Plan) inverse(re, im []float64) error {
	return inverseViaForward(p.forward, re, im)
}

func (p *radix2Plan) close() {}

// radix2Forward runs the in-place transform: bit-reversal permutation, then
// log2(n) butterfly stages. Each stage advances its twiddle factor by one
// complex rotation per butterfly instead of recomputing sin/cos.
func radix2Forward(re, im []float64) {
	n := len(re)

	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j ^= bit

		if i < j {
			re[i], re[j] = re[j], re[i]
			im[i], im[j] = im[j], im[i]
		}
	}

	for length := 2; length <= n; length <<= 1 {
		angle := -2 * math.Pi / float64(length)
		wr := math.Cos(angle)
		wi := math.Sin(angle)
		half := length / 2

		for start := 0; start < n; start += length {
			ur, ui := 1.0, 0.0

			for j := 0; j < half; j++ {
				u := start + j
				v := u + half

				tr := re[v]*ur - im[v]*ui
				ti := re[v]*ui + im[v]*ur

				re[v] = re[u] - tr
				im[v] = im[u] - ti
				re[u] += tr
				im[u] += ti

				ur, ui = ur*wr-ui*wi, ur*wi+ui*wr
			}
		}
	}
}
