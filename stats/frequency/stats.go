package frequency

import "math"

// rolloffFraction is the share of total spectral energy below the reported
// rolloff frequency.
const rolloffFraction = 0.85

// Stats summarizes a one-sided magnitude spectrum (linear scale, bins from
// DC to Nyquist).
type Stats struct {
	BinCount int
	Peak     float64 // largest magnitude
	PeakBin  int
	Sum      float64 // sum of magnitudes
	Average  float64
	Energy   float64 // sum of squared magnitudes

	Centroid float64 // amplitude-weighted mean frequency (Hz)
	Spread   float64 // standard deviation around the centroid (Hz)
	Flatness float64 // Wiener entropy, 0 (tonal) to 1 (flat)
	Rolloff  float64 // frequency below which 85% of the energy lies (Hz)
}

// Calculate computes spectral statistics from a one-sided magnitude spectrum.
//
// The slice covers bins 0 (DC) through Nyquist, so it has FFTSize/2 + 1
// entries and bin i sits at i * sampleRate / (2 * (len(magnitude) - 1)) Hz.
func Calculate(magnitude []float64, sampleRate float64) Stats {
	n := len(magnitude)
	if n == 0 {
		return Stats{}
	}

	s := Stats{BinCount: n, Peak: magnitude[0]}
	for i, v := range magnitude {
		s.Sum += v
		s.Energy += v * v
		if v > s.Peak {
			s.Peak = v
			s.PeakBin = i
		}
	}
	s.Average = s.Sum / float64(n)

	if n < 2 {
		return s
	}

	s.Centroid = centroid(magnitude, sampleRate, s.Sum)
	s.Spread = spread(magnitude, sampleRate, s.Centroid, s.Sum)
	s.Flatness = flatness(magnitude)
	s.Rolloff = rolloff(magnitude, sampleRate, s.Energy)

	return s
}

// binFreq maps bin i of a one-sided spectrum with binCount bins onto Hz.
func binFreq(i int, sampleRate float64, binCount int) float64 {
	return BinFrequency(i, sampleRate, 2*(binCount-1))
}

// centroid returns the amplitude-weighted mean frequency.
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func centroid(magnitude []float64, sampleRate, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}

	weighted := 0.0
	for i, v := range magnitude {
		weighted += binFreq(i, sampleRate, len(magnitude)) * v
	}

	return weighted / sumMag
}

// spread returns the amplitude-weighted standard deviation of frequency
// around the centroid.
func spread(magnitude []float64, sampleRate, cent, sumMag float64) float64 {
	if sumMag == 0 {
		return 0
	}

	weighted := 0.0
	for i, v := range magnitude {
		d := binFreq(i, sampleRate, len(magnitude)) - cent
		weighted += d * d * v
	}

	return math.Sqrt(weighted / sumMag)
}

// flatness returns the ratio of geometric to arithmetic mean magnitude over
// bins 1..N-1. The DC bin is excluded. A single zero bin forces the
// geometric mean, and therefore the flatness, to zero.
func flatness(magnitude []float64) float64 {
	bins := magnitude[1:]

	sumLin := 0.0
	sumLog := 0.0
	for _, v := range bins {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}
	if sumLin == 0 {
		return 0
	}

	meanLin := sumLin / float64(len(bins))
	geoMean := math.Exp(sumLog / float64(len(bins)))

	return geoMean / meanLin
}

// rolloff returns the frequency of the first bin at which the cumulative
// energy reaches rolloffFraction of the total.
func rolloff(magnitude []float64, sampleRate, totalEnergy float64) float64 {
	if totalEnergy == 0 {
		return 0
	}

	threshold := rolloffFraction * totalEnergy
	cum := 0.0
	for i, v := range magnitude {
		cum += v * v
		if cum >= threshold {
			return binFreq(i, sampleRate, len(magnitude))
		}
	}

	return binFreq(len(magnitude)-1, sampleRate, len(magnitude))
}
