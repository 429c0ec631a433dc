package time

import "math"

// StreamingStats accumulates time-domain statistics incrementally across
// multiple blocks of samples. It processes each sample individually to
// guarantee bit-for-bit identical results with [Calculate].
type StreamingStats struct {
	n         int
	sum       float64
	sumSq     float64
	maxVal    float64
	minVal    float64
	crossings int
	hasData   bool
	last      float64
}

// NewStreamingStats creates a new StreamingStats accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update adds a block of samples to the running statistics.
func (s *StreamingStats) Update(samples []float64) {
	for _, x := range samples {
		s.n++
		s.sum += x
		s.sumSq += x * x

		if !s.hasData {
			s.maxVal = x
			s.minVal = x
			s.hasData = true
		} else {
			if x > s.maxVal {
				s.maxVal = x
			}
			if x < s.minVal {
				s.minVal = x
			}
		}

		if s.n > 1 && s.last*x < 0 {
			s.crossings++
		}

		s.last = x
	}
}

// Count returns the number of samples accumulated so far.
func (s *StreamingStats) Count() int {
	return s.n
}

// Result computes the final statistics from accumulated data.
func (s *StreamingStats) Result() Stats {
	if s.n == 0 {
		return emptyStats()
	}

	nf := float64(s.n)
	rms := math.Sqrt(s.sumSq / nf)
	peak := math.Max(math.Abs(s.maxVal), math.Abs(s.minVal))

	return Stats{
		Length:        s.n,
		DC:            s.sum / nf,
		RMS:           rms,
		RMS_dB:        ampTodB(rms),
		Max:           s.maxVal,
		Min:           s.minVal,
		Peak:          peak,
		Peak_dB:       ampTodB(peak),
		Energy:        s.sumSq,
		ZeroCrossings: s.crossings,
	}
}

// Reset clears all accumulated data, allowing the StreamingStats to be
// reused.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}
