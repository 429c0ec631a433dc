package time

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func sineWave(freq, amplitude, sampleRate float64, n int) []float64 {
	out := make([]float64, n)
	step := 2 * math.Pi * freq / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out
}

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil)

	if s.Length != 0 {
		t.Fatalf("Length = %d, want 0", s.Length)
	}
	if !math.IsInf(s.RMS_dB, -1) || !math.IsInf(s.Peak_dB, -1) {
		t.Fatalf("dB fields = %g / %g, want -Inf each", s.RMS_dB, s.Peak_dB)
	}
}

func TestCalculateConstant(t *testing.T) {
	s := Calculate([]float64{0.5, 0.5, 0.5, 0.5})

	if s.DC != 0.5 || s.RMS != 0.5 || s.Peak != 0.5 {
		t.Fatalf("DC=%g RMS=%g Peak=%g, want 0.5 each", s.DC, s.RMS, s.Peak)
	}
	if s.ZeroCrossings != 0 {
		t.Fatalf("ZeroCrossings = %d, want 0", s.ZeroCrossings)
	}
	if math.Abs(s.Energy-1) > tolerance {
		t.Fatalf("Energy = %g, want 1", s.Energy)
	}
}

func TestCalculateAlternating(t *testing.T) {
	s := Calculate([]float64{1, -1, 1, -1, 1})

	if math.Abs(s.DC-0.2) > tolerance {
		t.Errorf("DC = %g, want 0.2", s.DC)
	}
	if math.Abs(s.RMS-1) > tolerance {
		t.Errorf("RMS = %g, want 1", s.RMS)
	}
	if s.ZeroCrossings != 4 {
		t.Errorf("ZeroCrossings = %d, want 4", s.ZeroCrossings)
	}
	if s.Max != 1 || s.Min != -1 || s.Peak != 1 {
		t.Errorf("Max/Min/Peak = %g/%g/%g, want 1/-1/1", s.Max, s.Min, s.Peak)
	}
}

func TestCalculateAsymmetric(t *testing.T) {
	s := Calculate([]float64{0.25, -0.75, 0.5})

	if s.Max != 0.5 || s.Min != -0.75 {
		t.Errorf("Max/Min = %g/%g, want 0.5/-0.75", s.Max, s.Min)
	}
	// Peak follows the larger magnitude, here the negative extreme.
	if s.Peak != 0.75 {
		t.Errorf("Peak = %g, want 0.75", s.Peak)
	}
	if s.RMS_dB >= 0 {
		t.Errorf("RMS_dB = %g, want negative for sub-unity signal", s.RMS_dB)
	}
}

func TestCalculateSine(t *testing.T) {
	// Ten full cycles keep the mean at zero and the RMS at A/sqrt(2).
	sig := sineWave(100, 0.8, 48000, 4800)
	s := Calculate(sig)

	if math.Abs(s.DC) > 1e-6 {
		t.Errorf("DC = %g, want ~0", s.DC)
	}

	wantRMS := 0.8 / math.Sqrt2
	if math.Abs(s.RMS-wantRMS) > 1e-6 {
		t.Errorf("RMS = %g, want %g", s.RMS, wantRMS)
	}

	if s.Peak < 0.79 || s.Peak > 0.8 {
		t.Errorf("Peak = %g, want just below 0.8", s.Peak)
	}
}

func TestRMSMatchesCalculate(t *testing.T) {
	sig := sineWave(440, 0.5, 48000, 1000)

	if got, want := RMS(sig), Calculate(sig).RMS; got != want {
		t.Fatalf("RMS() = %g, Calculate().RMS = %g", got, want)
	}
	if RMS(nil) != 0 {
		t.Fatal("RMS(nil) != 0")
	}
}

func TestZeroCrossings(t *testing.T) {
	tests := []struct {
		name string
		sig  []float64
		want int
	}{
		{"empty", nil, 0},
		{"single", []float64{1}, 0},
		{"no crossing", []float64{1, 2, 3}, 0},
		{"one crossing", []float64{1, -1}, 1},
		{"alternating", []float64{1, -1, 1, -1}, 3},
		{"zero sample not counted", []float64{1, 0, -1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ZeroCrossings(tt.sig); got != tt.want {
				t.Errorf("ZeroCrossings() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestZeroCrossingRateEstimatesSine(t *testing.T) {
	sig := sineWave(220, 0.7, 48000, 48000)

	rate := ZeroCrossingRate(sig, 48000)
	if math.Abs(rate-220) > 5 {
		t.Fatalf("ZeroCrossingRate = %g, want ~220", rate)
	}

	if ZeroCrossingRate(nil, 48000) != 0 {
		t.Error("ZeroCrossingRate(nil) != 0")
	}
	if ZeroCrossingRate(sig, 0) != 0 {
		t.Error("ZeroCrossingRate with zero sample rate != 0")
	}
}

func TestStreamingMatchesCalculate(t *testing.T) {
	sig := sineWave(123.4, 0.6, 48000, 4801)
	want := Calculate(sig)

	for _, chunk := range []int{1, 7, 256, len(sig)} {
		s := NewStreamingStats()
		for off := 0; off < len(sig); off += chunk {
			end := off + chunk
			if end > len(sig) {
				end = len(sig)
			}
			s.Update(sig[off:end])
		}

		if got := s.Result(); got != want {
			t.Errorf("chunk %d: streaming %+v != batch %+v", chunk, got, want)
		}
	}
}

func TestStreamingCountAndReset(t *testing.T) {
	s := NewStreamingStats()
	s.Update([]float64{1, -2, 3})

	if s.Count() != 3 {
		t.Fatalf("Count = %d, want 3", s.Count())
	}

	s.Reset()
	if s.Count() != 0 {
		t.Fatalf("Count after Reset = %d, want 0", s.Count())
	}

	r := s.Result()
	if r.Length != 0 || !math.IsInf(r.RMS_dB, -1) {
		t.Fatalf("Result after Reset = %+v, want empty", r)
	}
}

func TestStreamingCrossingsSpanChunks(t *testing.T) {
	s := NewStreamingStats()
	s.Update([]float64{1, 1})
	s.Update([]float64{-1, -1})
	s.Update([]float64{1})

	if got := s.Result().ZeroCrossings; got != 2 {
		t.Fatalf("ZeroCrossings across chunks = %d, want 2", got)
	}
}
