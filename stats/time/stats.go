package time

import (
	"math"

	"github.com/cwbudde/algo-pitch/dsp/core"
)

// Stats holds time-domain signal statistics.
//
//nolint:revive
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	RMS_dB        float64
	Max           float64
	Min           float64
	Peak          float64 // max(|Max|, |Min|)
	Peak_dB       float64
	Energy        float64 // sum of squares
	ZeroCrossings int
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	return core.LinearToDB(math.Abs(value))
}

// emptyStats returns a zero-valued Stats with -Inf for the dB fields.
func emptyStats() Stats {
	return Stats{
		RMS_dB:  math.Inf(-1),
		Peak_dB: math.Inf(-1),
	}
}

// Calculate computes all time-domain statistics in a single pass.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return emptyStats()
	}

	var (
		sum       float64
		sumSq     float64
		maxVal    = signal[0]
		minVal    = signal[0]
		crossings int
	)

	for i, x := range signal {
		sum += x
		sumSq += x * x

		if x > maxVal {
			maxVal = x
		}
		if x < minVal {
			minVal = x
		}

		if i > 0 && signal[i-1]*x < 0 {
			crossings++
		}
	}

	nf := float64(n)
	rms := math.Sqrt(sumSq / nf)
	peak := math.Max(math.Abs(maxVal), math.Abs(minVal))

	return Stats{
		Length:        n,
		DC:            sum / nf,
		RMS:           rms,
		RMS_dB:        ampTodB(rms),
		Max:           maxVal,
		Min:           minVal,
		Peak:          peak,
		Peak_dB:       ampTodB(peak),
		Energy:        sumSq,
		ZeroCrossings: crossings,
	}
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// ZeroCrossings returns the number of sign changes between consecutive
// samples.
func ZeroCrossings(signal []float64) int {
	var count int
	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			count++
		}
	}

	return count
}

// ZeroCrossingRate returns a crude fundamental-frequency estimate in Hz
// from the zero-crossing count: a periodic signal crosses zero twice per
// cycle. The estimate is only meaningful for near-sinusoidal input; rich
// harmonic content inflates it.
func ZeroCrossingRate(signal []float64, sampleRate float64) float64 {
	if len(signal) == 0 || sampleRate <= 0 {
		return 0
	}

	return float64(ZeroCrossings(signal)) * sampleRate / (2 * float64(len(signal)))
}
