package fft

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-pitch/dsp/arena"
)

// accelPlan delegates to an algo-fft plan, staging the split real/imaginary
// signal through arena-backed complex buffers so per-call work allocates
// nothing on the Go heap.
type accelPlan struct {
	n    int
	plan *algofft.Plan[complex128]

	ar       *arena.Arena
	ownArena bool
	inRef    arena.Ref
	outRef   arena.Ref
}

func newAccelerated(n int, ar *arena.Arena) (*accelPlan, error) {
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("fft: accelerated plan: %w", err)
	}

	ownArena := false
	if ar == nil {
		ar, err = arena.New()
		if err != nil {
			return nil, fmt.Errorf("fft: accelerated scratch: %w", err)
		}
		ownArena = true
	}

	inRef, err := ar.Calloc(n, 16)
	if err != nil {
		return nil, fmt.Errorf("fft: accelerated scratch: %w", err)
	}

	outRef, err := ar.Calloc(n, 16)
	if err != nil {
		return nil, fmt.Errorf("fft: accelerated scratch: %w", err)
	}

	return &accelPlan{
		n:        n,
		plan:     plan,
		ar:       ar,
		ownArena: ownArena,
		inRef:    inRef,
		outRef:   outRef,
	}, nil
}

// buffers re-derives the scratch views on every call. A shared arena may
// grow between calls, which relocates its buffer and invalidates any slice
// derived earlier.
func (p *accelPlan) buffers() (in, out []complex128, err error) {
	in, err = p.ar.Complex128s(p.inRef)
	if err != nil {
		return nil, nil, err
	}

	out, err = p.ar.Complex128s(p.outRef)
	if err != nil {
		return nil, nil, err
	}

	return in[:p.n], out[:p.n], nil
}

func (p *accelPlan) forward(re, im []float64) error {
	return p.transform(re, im, p.plan.Forward)
}

func (p *accelPlan) inverse(re, im []float64) error {
	return p.transform(re, im, p.plan.Inverse)
}

func (p *accelPlan) transform(re, im []float64, run func(dst, src []complex128) error) error {
	in, out, err := p.buffers()
	if err != nil {
		return err
	}

	for i := 0; i < p.n; i++ {
		in[i] = complex(re[i], im[i])
	}

	if err := run(out, in); err != nil {
		return err
	}

	for i := 0; i < p.n; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	return nil
}

func (p *accelPlan) close() {
	if p.ar == nil {
		return
	}

	if !p.ownArena {
		// Shared arena: hand the scratch blocks back.
		_ = p.ar.Free(p.inRef)
		_ = p.ar.Free(p.outRef)
	}

	p.ar = nil
	p.plan = nil
}
