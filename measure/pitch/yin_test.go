package pitch

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pitch/internal/testutil"
)

func TestYINDetectsPureSines(t *testing.T) {
	cases := []struct {
		freq float64
		note string
	}{
		{82.41, "E2"},
		{110, "A2"},
		{146.83, "D3"},
		{196, "G3"},
		{246.94, "B3"},
		{329.63, "E4"},
	}

	d := mustDetector(t, WithSmoothing(false))

	for _, tc := range cases {
		t.Run(tc.note, func(t *testing.T) {
			frame := testutil.DeterministicSine(tc.freq, 48000, 0.8, d.Config().WindowSize)

			res, ok, err := d.Analyze(frame)
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}
			if !ok {
				t.Fatalf("no detection for %g Hz", tc.freq)
			}

			if math.Abs(res.Frequency-tc.freq) > 2 {
				t.Errorf("Frequency = %g Hz, want %g +/- 2 Hz", res.Frequency, tc.freq)
			}
			if got := res.Note.String(); got != tc.note {
				t.Errorf("Note = %s, want %s", got, tc.note)
			}
			if res.Confidence < 0.9 {
				t.Errorf("Confidence = %g, want >= 0.9", res.Confidence)
			}
		})
	}
}

func TestYINDetectsSineInNoise(t *testing.T) {
	d := mustDetector(t, WithSmoothing(false))
	n := d.Config().WindowSize

	frame := testutil.DeterministicSine(110, 48000, 0.8, n)
	noise := testutil.DeterministicNoise(1, 0.05, n)
	for i := range frame {
		frame[i] += noise[i]
	}

	res, ok, err := d.Analyze(frame)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !ok {
		t.Fatal("no detection for noisy 110 Hz tone")
	}

	if math.Abs(res.Frequency-110) > 2 {
		t.Errorf("Frequency = %g Hz, want 110 +/- 2 Hz", res.Frequency)
	}
	if res.Note.String() != "A2" {
		t.Errorf("Note = %s, want A2", res.Note)
	}
	if res.Confidence < 0.8 {
		t.Errorf("Confidence = %g, want >= 0.8", res.Confidence)
	}
}

func TestYINNullResults(t *testing.T) {
	d := mustDetector(t, WithSmoothing(false))
	n := d.Config().WindowSize

	cases := []struct {
		name  string
		frame []float64
	}{
		// No periodicity at all: the difference function is zero for
		// every lag, so the normalized curve stays pinned at one.
		{"dc offset", testutil.DC(0.5, n)},
		// Below the RMS gate.
		{"silence", make([]float64, n)},
		// Period longer than the largest lag the window supports.
		{"below range", testutil.DeterministicSine(30, 48000, 0.8, n)},
		// Detected lag maps above the configured maximum frequency.
		{"above range", testutil.DeterministicSine(1000, 48000, 0.8, n)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, ok, err := d.Analyze(tc.frame)
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}
			if ok {
				t.Fatalf("detected %+v, want null result", res)
			}
			if res != (Result{}) {
				t.Errorf("null result not zero valued: %+v", res)
			}
		})
	}
}

func TestYINAnalyzeMatchesProcessChunk(t *testing.T) {
	a := mustDetector(t, WithSmoothing(false))
	b := mustDetector(t, WithSmoothing(false))

	frame := testutil.DeterministicSine(196, 48000, 0.8, a.Config().WindowSize)

	direct, okA, err := a.Analyze(frame)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	streamed, okB, err := b.ProcessChunk(frame)
	if err != nil {
		t.Fatalf("ProcessChunk: %v", err)
	}

	if okA != okB {
		t.Fatalf("detection mismatch: Analyze %v, ProcessChunk %v", okA, okB)
	}
	if direct != streamed {
		t.Errorf("Analyze = %+v, ProcessChunk = %+v", direct, streamed)
	}
}
