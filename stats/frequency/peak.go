package frequency

// BinFrequency returns the center frequency in Hz of FFT bin i for the
// given transform size.
func BinFrequency(i int, sampleRate float64, fftSize int) float64 {
	if fftSize <= 0 {
		return 0
	}
	return float64(i) * sampleRate / float64(fftSize)
}

// PeakBin returns the index of the largest magnitude in [lo, hi]. The range
// is clamped to valid indices. Ties resolve to the lowest bin. Returns -1
// when the clamped range is empty.
func PeakBin(magnitude []float64, lo, hi int) int {
	if lo < 0 {
		lo = 0
	}
	if hi > len(magnitude)-1 {
		hi = len(magnitude) - 1
	}
	if lo > hi {
		return -1
	}

	best := lo
	for i := lo + 1; i <= hi; i++ {
		if magnitude[i] > magnitude[best] {
			best = i
		}
	}
	return best
}

// InterpolatedPeak refines a peak bin to a sub-bin frequency estimate by
// fitting a parabola through the bin and its neighbors.
//
// The returned amplitude is the height of the fitted parabola at its vertex.
// Peaks at the spectrum edges and degenerate (flat) neighborhoods fall back
// to the raw bin frequency and magnitude. Invalid inputs return (0, 0).
func InterpolatedPeak(magnitude []float64, bin int, sampleRate float64, fftSize int) (freqHz, amplitude float64) {
	if bin < 0 || bin >= len(magnitude) || fftSize <= 0 {
		return 0, 0
	}
	if bin == 0 || bin == len(magnitude)-1 {
		return BinFrequency(bin, sampleRate, fftSize), magnitude[bin]
	}

	alpha := magnitude[bin-1]
	beta := magnitude[bin]
	gamma := magnitude[bin+1]

	delta := 0.0
	if denom := alpha - 2*beta + gamma; denom != 0 {
		delta = 0.5 * (alpha - gamma) / denom
	}

	// A true local maximum interpolates within half a bin; anything larger
	// means the neighborhood is not parabolic, so stay conservative.
	if delta > 0.5 {
		delta = 0.5
	} else if delta < -0.5 {
		delta = -0.5
	}

	freqHz = (float64(bin) + delta) * sampleRate / float64(fftSize)
	amplitude = beta - 0.25*(alpha-gamma)*delta
	return freqHz, amplitude
}
