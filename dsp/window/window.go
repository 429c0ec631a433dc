package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies an analysis window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
)

// String returns the lower-case window name.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeHamming:
		return "hamming"
	case TypeBlackman:
		return "blackman"
	default:
		return "unknown"
	}
}

// Generate returns symmetric window coefficients of the given size.
func Generate(t Type, size int) ([]float64, error) {
	if err := validateSize(size); err != nil {
		return nil, err
	}

	out := make([]float64, size)
	fill(out, t)

	return out, nil
}

// Fill writes window coefficients into dst without allocating.
func Fill(dst []float64, t Type) error {
	if err := validateSize(len(dst)); err != nil {
		return err
	}

	fill(dst, t)

	return nil
}

// Apply multiplies samples with coefficients into dst.
func Apply(dst, samples, coeffs []float64) error {
	if len(samples) != len(coeffs) || len(dst) != len(samples) {
		return errMismatchedLength
	}

	vecmath.MulBlock(dst, samples, coeffs)

	return nil
}

// ApplyInPlace multiplies samples with coefficients in place.
func ApplyInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

func fill(dst []float64, t Type) {
	n := len(dst)
	if n == 1 {
		dst[0] = at(t, 0)
		return
	}

	for i := range dst {
		dst[i] = at(t, float64(i)/float64(n-1))
	}
}

// at evaluates the window at normalized position x in [0, 1].
func at(t Type, x float64) float64 {
	phase := 2 * math.Pi * x

	switch t {
	case TypeHann:
		return 0.5 - 0.5*math.Cos(phase)
	case TypeHamming:
		return 0.54 - 0.46*math.Cos(phase)
	case TypeBlackman:
		return 0.42 - 0.5*math.Cos(phase) + 0.08*math.Cos(2*phase)
	default:
		return 1
	}
}
