package pitch

import (
	"math"

	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/dsp/spectrum"
	"github.com/cwbudde/algo-pitch/dsp/window"
	"github.com/cwbudde/algo-pitch/stats/frequency"
)

// analyzeSpectral estimates the fundamental of one frame from its
// spectrum: Hann window, zero-padded FFT, harmonic product over the
// magnitude bins, hum cutoff, then a parabolic sub-bin refinement of the
// winning peak.
func (d *Detector) analyzeSpectral(frame []float64) (freq, confidence float64, ok bool, err error) {
	size := d.cfg.TransformSize
	half := size / 2

	core.Zero(d.re)
	core.Zero(d.im)

	if err := window.Apply(d.re[:len(frame)], frame, d.coeffs); err != nil {
		return 0, 0, false, err
	}

	if err := d.transform.Forward(d.re, d.im); err != nil {
		return 0, 0, false, err
	}

	spectrum.MagnitudeFromParts(d.mag, d.re[:half], d.im[:half])

	if err := spectrum.HarmonicProduct(d.hps, d.mag, d.cfg.Harmonics); err != nil {
		return 0, 0, false, err
	}

	// Hum and DC suppression.
	lowBin := int(math.Ceil(d.cfg.LowCutoffHz * float64(size) / d.cfg.SampleRate))
	if lowBin > half {
		lowBin = half
	}
	core.Zero(d.hps[:lowBin])

	peak := frequency.PeakBin(d.hps, 0, half-1)
	if peak < 0 || d.hps[peak] <= 0 {
		return 0, 0, false, nil
	}

	if d.mag[peak] < d.cfg.MagnitudeFloor {
		return 0, 0, false, nil
	}

	// Sub-bin refinement runs on the raw magnitudes; the harmonic product
	// distorts the peak's shape.
	freq, _ = frequency.InterpolatedPeak(d.mag, peak, d.cfg.SampleRate, size)

	if math.IsNaN(freq) || math.IsInf(freq, 0) || freq < d.cfg.FMin || freq > d.cfg.FMax {
		return 0, 0, false, nil
	}

	confidence = math.Min(1, d.mag[peak]/d.confNorm)

	return freq, confidence, true, nil
}
