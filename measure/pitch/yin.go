package pitch

import (
	"math"

	"github.com/cwbudde/algo-pitch/dsp/core"
)

// analyzeYIN estimates the fundamental of one frame with the YIN
// algorithm: a squared-difference function over candidate lags, cumulative
// mean normalization, threshold search with a local-minimum walk, and
// parabolic refinement of the winning lag.
func (d *Detector) analyzeYIN(frame []float64) (freq, confidence float64, ok bool) {
	n := len(frame)

	maxLag := d.maxLag(n)
	if maxLag < 2 {
		return 0, 0, false
	}

	cmndf := d.cmndf[:maxLag+1]

	for tau := 1; tau <= maxLag; tau++ {
		sum := 0.0
		for i, limit := 0, n-tau; i < limit; i++ {
			delta := frame[i] - frame[i+tau]
			sum += delta * delta
		}

		cmndf[tau] = sum
	}

	// Normalize in place by the cumulative mean, which makes the statistic
	// scale-invariant across lags.
	cmndf[0] = 1
	runningSum := 0.0

	for tau := 1; tau <= maxLag; tau++ {
		runningSum += cmndf[tau]
		if runningSum == 0 {
			cmndf[tau] = 1
		} else {
			cmndf[tau] = cmndf[tau] * float64(tau) / runningSum
		}
	}

	// Smallest lag under the threshold, then walk down to the local
	// minimum so the first noisy dip does not win over the true period.
	tau := -1
	for t := 2; t <= maxLag; t++ {
		if cmndf[t] < d.cfg.Threshold {
			for t+1 <= maxLag && cmndf[t+1] < cmndf[t] {
				t++
			}

			tau = t

			break
		}
	}

	if tau < 0 {
		return 0, 0, false
	}

	betterTau := parabolicMin(cmndf, tau)

	freq = d.cfg.SampleRate / betterTau
	if math.IsNaN(freq) || math.IsInf(freq, 0) || freq < d.cfg.FMin || freq > d.cfg.FMax {
		return 0, 0, false
	}

	confidence = core.Clamp(1-cmndf[tau], 0, 1)

	return freq, confidence, true
}

// parabolicMin refines an integer lag by fitting a parabola through the
// three samples around it. Edge lags and a degenerate denominator fall
// back to the integer lag.
func parabolicMin(values []float64, tau int) float64 {
	if tau <= 0 || tau+1 >= len(values) {
		return float64(tau)
	}

	s0 := values[tau-1]
	s1 := values[tau]
	s2 := values[tau+1]

	den := 2 * (2*s1 - s2 - s0)
	if den == 0 {
		return float64(tau)
	}

	return float64(tau) + (s2-s0)/den
}
