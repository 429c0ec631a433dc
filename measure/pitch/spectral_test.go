package pitch

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/dsp/signal"
)

func harmonicTone(t *testing.T, freq, amplitude float64, partials []float64, samples int) []float64 {
	t.Helper()
	gen := signal.NewGenerator(core.WithSampleRate(48000))
	tone, err := gen.Harmonic(freq, amplitude, partials, samples)
	if err != nil {
		t.Fatalf("Harmonic: %v", err)
	}
	return tone
}

func TestSpectralDetectsHarmonicTone(t *testing.T) {
	d := mustDetector(t, WithAlgorithm(AlgorithmSpectral), WithSmoothing(false))

	frame := harmonicTone(t, 165, 0.8, []float64{1, 0.6, 0.4, 0.3, 0.2}, d.Config().WindowSize)

	res, ok, err := d.Analyze(frame)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !ok {
		t.Fatal("no detection for a harmonic tone at 165 Hz")
	}

	if math.Abs(res.Frequency-165) > 3 {
		t.Errorf("Frequency = %g Hz, want 165 +/- 3 Hz", res.Frequency)
	}
	if got := res.Note.String(); got != "E3" {
		t.Errorf("Note = %s, want E3", got)
	}
	if res.Confidence < 0.5 || res.Confidence > 1 {
		t.Errorf("Confidence = %g, want in [0.5, 1]", res.Confidence)
	}
}

// A dominant second harmonic is the classic octave trap: the strongest
// magnitude bin sits at 2f, yet the harmonic product must still score the
// fundamental higher.
func TestSpectralPrefersFundamental(t *testing.T) {
	d := mustDetector(t, WithAlgorithm(AlgorithmSpectral), WithSmoothing(false))

	frame := harmonicTone(t, 165, 0.8, []float64{0.4, 1, 0.5, 0.35, 0.25}, d.Config().WindowSize)

	res, ok, err := d.Analyze(frame)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !ok {
		t.Fatal("no detection")
	}
	if math.Abs(res.Frequency-165) > 4 {
		t.Errorf("Frequency = %g Hz, want the fundamental 165, not the louder octave", res.Frequency)
	}
}

func TestSpectralBuffering(t *testing.T) {
	d := mustDetector(t, WithAlgorithm(AlgorithmSpectral))
	cfg := d.Config()

	tone := harmonicTone(t, 165, 0.8, []float64{1, 0.6, 0.4, 0.3, 0.2}, cfg.WindowSize)

	res, ok, err := d.ProcessChunk(tone[:cfg.ChunkSize])
	if err != nil {
		t.Fatalf("first chunk: %v", err)
	}
	if ok || res != (Result{}) {
		t.Fatalf("first chunk: got (%+v, %v), want buffering", res, ok)
	}

	res, ok, err = d.ProcessChunk(tone[cfg.ChunkSize:])
	if err != nil {
		t.Fatalf("second chunk: %v", err)
	}
	if !ok {
		t.Fatal("second chunk: window is full, want a detection")
	}
	if got := res.Note.String(); got != "E3" {
		t.Errorf("Note = %s, want E3", got)
	}

	// Reset drops the window, so the next chunk buffers again.
	d.Reset()
	if _, ok, err := d.ProcessChunk(tone[:cfg.ChunkSize]); err != nil || ok {
		t.Errorf("after Reset: got (ok=%v, err=%v), want buffering", ok, err)
	}
}

func TestSpectralMagnitudeFloor(t *testing.T) {
	quiet := harmonicTone(t, 165, 0.001, []float64{1, 0.6, 0.4, 0.3, 0.2}, 2048)

	d := mustDetector(t, WithAlgorithm(AlgorithmSpectral), WithSmoothing(false))
	if res, ok, err := d.Analyze(quiet); err != nil || ok {
		t.Errorf("quiet tone: got (%+v, %v, %v), want null", res, ok, err)
	}

	// Disabling the floor lets the quiet tone through.
	open := mustDetector(t, WithAlgorithm(AlgorithmSpectral), WithSmoothing(false), WithMagnitudeFloor(0))
	res, ok, err := open.Analyze(quiet)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !ok {
		t.Fatal("no detection with the magnitude floor disabled")
	}
	if math.Abs(res.Frequency-165) > 4 {
		t.Errorf("Frequency = %g Hz, want 165 +/- 4 Hz", res.Frequency)
	}
}
