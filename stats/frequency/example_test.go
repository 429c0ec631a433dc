package frequency_test

import (
	"fmt"

	frequencystats "github.com/cwbudde/algo-pitch/stats/frequency"
)

func ExampleCalculate() {
	mag := []float64{0, 1, 2, 1, 0}
	s := frequencystats.Calculate(mag, 8000)
	fmt.Printf("centroid=%.0f rolloff=%.0f peak bin=%d\n", s.Centroid, s.Rolloff, s.PeakBin)

	// Output:
	// centroid=2000 rolloff=3000 peak bin=2
}

func ExampleInterpolatedPeak() {
	// A peak between bins 2 and 3 leaks into both.
	mag := []float64{0, 0.2, 0.9, 0.7, 0.1}

	bin := frequencystats.PeakBin(mag, 1, 3)
	freq, _ := frequencystats.InterpolatedPeak(mag, bin, 8000, 8)

	fmt.Printf("bin=%d freq=%.0f Hz\n", bin, freq)

	// Output:
	// bin=2 freq=2278 Hz
}
