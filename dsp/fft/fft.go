package fft

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-pitch/dsp/arena"
	"github.com/cwbudde/algo-pitch/dsp/core"
)

// Backend selects the transform implementation.
type Backend int

const (
	// BackendAuto picks radix-2 for power-of-two sizes and Bluestein
	// otherwise.
	BackendAuto Backend = iota
	BackendRadix2
	BackendBluestein
	BackendAccelerated
)

// String returns the lower-case backend name.
func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendRadix2:
		return "radix2"
	case BackendBluestein:
		return "bluestein"
	case BackendAccelerated:
		return "accelerated"
	default:
		return "unknown"
	}
}

type config struct {
	backend Backend
	arena   *arena.Arena
}

// Option configures a Transform.
type Option func(*config)

// WithBackend forces a specific transform implementation.
func WithBackend(b Backend) Option {
	return func(c *config) {
		c.backend = b
	}
}

// WithArena supplies the arena backing the accelerated backend's complex
// scratch buffers. Ignored by the portable backends.
func WithArena(a *arena.Arena) Option {
	return func(c *config) {
		c.arena = a
	}
}

// engine is the per-backend transform kernel. Lengths are validated by
// Transform before dispatch.
type engine interface {
	forward(re, im []float64) error
	inverse(re, im []float64) error
	close()
}

// Transform computes DFTs of a fixed size over split real/imaginary slices.
//
// Construction does all expensive setup (twiddle precomputation, plan
// creation); Forward and Inverse reuse internal scratch and do not allocate.
// A Transform is not safe for concurrent use.
type Transform struct {
	n       int
	backend Backend
	eng     engine
}

// New creates a Transform for signals of length n.
func New(n int, opts ...Option) (*Transform, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: transform size must be > 0: %d", ErrInvalidLength, n)
	}

	cfg := config{backend: BackendAuto}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	backend := cfg.backend
	if backend == BackendAuto {
		if core.IsPowerOfTwo(n) {
			backend = BackendRadix2
		} else {
			backend = BackendBluestein
		}
	}

	var (
		eng engine
		err error
	)

	switch backend {
	case BackendRadix2:
		eng, err = newRadix2(n)
	case BackendBluestein:
		eng, err = newBluestein(n)
	case BackendAccelerated:
		eng, err = newAccelerated(n, cfg.arena)
	default:
		err = fmt.Errorf("fft: unknown backend: %d", backend)
	}

	if err != nil {
		return nil, err
	}

	return &Transform{n: n, backend: backend, eng: eng}, nil
}

// Len returns the transform size.
func (t *Transform) Len() int { return t.n }

// Backend returns the resolved backend (never BackendAuto).
func (t *Transform) Backend() Backend { return t.backend }

// Forward computes the DFT in place over the split-complex signal.
func (t *Transform) Forward(re, im []float64) error {
	if err := t.check(re, im); err != nil {
		return err
	}

	return t.eng.forward(re, im)
}

// Inverse computes the inverse DFT in place, scaled by 1/n so that
// Inverse(Forward(x)) returns x.
func (t *Transform) Inverse(re, im []float64) error {
	if err := t.check(re, im); err != nil {
		return err
	}

	return t.eng.inverse(re, im)
}

// Close releases backend resources. The Transform must not be used after
// Close.
func (t *Transform) Close() {
	if t.eng != nil {
		t.eng.close()
		t.eng = nil
	}
}

func (t *Transform) check(re, im []float64) error {
	if t.eng == nil {
		return errClosed
	}

	if len(re) != t.n || len(im) != t.n {
		return fmt.Errorf("%w: got %d real / %d imaginary samples, transform size %d",
			ErrInvalidLength, len(re), len(im), t.n)
	}

	return nil
}

// Forward is a one-shot convenience for a single transform. Callers with a
// hot path should construct a Transform once and reuse it.
func Forward(re, im []float64) error {
	t, err := New(len(re))
	if err != nil {
		return err
	}
	defer t.Close()

	return t.Forward(re, im)
}

// Inverse is the one-shot counterpart of [Forward].
func Inverse(re, im []float64) error {
	t, err := New(len(re))
	if err != nil {
		return err
	}
	defer t.Close()

	return t.Inverse(re, im)
}

// inverseViaForward computes the inverse DFT using a forward kernel:
// conjugate, transform, conjugate, and scale by 1/n.
func inverseViaForward(fwd func(re, im []float64) error, re, im []float64) error {
	for i := range im {
		im[i] = -im[i]
	}

	if err := fwd(re, im); err != nil {
		return err
	}

	scale := 1 / float64(len(re))
	vecmath.ScaleBlock(re, re, scale)

	for i := range im {
		im[i] = -im[i] * scale
	}

	return nil
}
