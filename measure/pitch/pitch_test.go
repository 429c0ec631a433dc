package pitch

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/internal/testutil"
)

func mustDetector(t *testing.T, opts ...Option) *Detector {
	t.Helper()
	d, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(d.Close)
	return d
}

func analyzeTone(t *testing.T, d *Detector, freq float64) Result {
	t.Helper()
	frame := testutil.DeterministicSine(freq, 48000, 0.8, d.Config().WindowSize)
	res, ok, err := d.Analyze(frame)
	if err != nil {
		t.Fatalf("Analyze(%g Hz): %v", freq, err)
	}
	if !ok {
		t.Fatalf("Analyze(%g Hz): no detection", freq)
	}
	return res
}

func TestEndToEndPureSineStream(t *testing.T) {
	const (
		chunkSize = 1024
		chunks    = 51
	)

	d := mustDetector(t, WithChunkSize(chunkSize))

	stream := testutil.DeterministicSine(110, 48000, 0.8, chunkSize*chunks)

	var (
		last     Result
		detected bool
	)
	for i := 0; i < chunks; i++ {
		res, ok, err := d.ProcessChunk(stream[i*chunkSize : (i+1)*chunkSize])
		if err != nil {
			t.Fatalf("chunk %d: %v", i, err)
		}
		if ok {
			last, detected = res, true
		}
	}

	if !detected {
		t.Fatal("no detection over a sustained 110 Hz tone")
	}
	if math.Abs(last.Frequency-110) > 2 {
		t.Errorf("Frequency = %g Hz, want 110 +/- 2 Hz", last.Frequency)
	}
	if got := last.Note.String(); got != "A2" {
		t.Errorf("Note = %s, want A2", got)
	}
	if last.Note.Cents <= -15 || last.Note.Cents >= 15 {
		t.Errorf("Cents = %d, want within (-15, 15)", last.Note.Cents)
	}
}

func TestConfigDefaults(t *testing.T) {
	yin := mustDetector(t)
	cfg := yin.Config()

	if cfg.Algorithm != AlgorithmYIN {
		t.Errorf("Algorithm = %v, want yin", cfg.Algorithm)
	}
	if cfg.ChunkSize != 2048 || cfg.WindowSize != 2048 {
		t.Errorf("ChunkSize/WindowSize = %d/%d, want 2048/2048", cfg.ChunkSize, cfg.WindowSize)
	}
	if cfg.FMin != 40 || cfg.FMax != 800 {
		t.Errorf("FMin/FMax = %g/%g, want 40/800", cfg.FMin, cfg.FMax)
	}
	if cfg.Threshold != 0.1 {
		t.Errorf("Threshold = %g, want 0.1", cfg.Threshold)
	}

	spectral := mustDetector(t, WithAlgorithm(AlgorithmSpectral))
	cfg = spectral.Config()

	if cfg.ChunkSize != 1024 || cfg.WindowSize != 2048 || cfg.TransformSize != 4096 {
		t.Errorf("ChunkSize/WindowSize/TransformSize = %d/%d/%d, want 1024/2048/4096",
			cfg.ChunkSize, cfg.WindowSize, cfg.TransformSize)
	}
	if cfg.FMin != 60 || cfg.FMax != 500 {
		t.Errorf("FMin/FMax = %g/%g, want 60/500", cfg.FMin, cfg.FMax)
	}
	if cfg.Harmonics != 5 {
		t.Errorf("Harmonics = %d, want 5", cfg.Harmonics)
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(WithFrequencyRange(500, 100)); err == nil {
		t.Error("New accepted an empty frequency range")
	}
	if _, err := New(WithChunkSize(2)); err == nil {
		t.Error("New accepted a window too short for the lag search")
	}

	_, err := New(WithAlgorithm(AlgorithmSpectral), WithWindowSize(2048), WithTransformSize(1024))
	if !errors.Is(err, fft.ErrInvalidLength) {
		t.Errorf("transform smaller than window: err = %v, want fft.ErrInvalidLength", err)
	}
}

func TestProcessChunkSizeMismatch(t *testing.T) {
	d := mustDetector(t)

	res, ok, err := d.ProcessChunk(make([]float64, 100))
	if !errors.Is(err, ErrChunkSize) {
		t.Fatalf("err = %v, want ErrChunkSize", err)
	}
	if ok || res != (Result{}) {
		t.Errorf("got (%+v, %v) alongside the error", res, ok)
	}

	if _, _, err := d.Analyze(make([]float64, 100)); !errors.Is(err, ErrChunkSize) {
		t.Errorf("Analyze err = %v, want ErrChunkSize", err)
	}
}

func TestSilentStreamYieldsNull(t *testing.T) {
	d := mustDetector(t)
	silence := make([]float64, d.Config().ChunkSize)

	for i := 0; i < 3; i++ {
		res, ok, err := d.ProcessChunk(silence)
		if err != nil {
			t.Fatalf("chunk %d: %v", i, err)
		}
		if ok || res != (Result{}) {
			t.Fatalf("chunk %d: got (%+v, %v), want null", i, res, ok)
		}
	}
}

func TestSmoothingBlendsWithinNote(t *testing.T) {
	d := mustDetector(t)

	first := analyzeTone(t, d, 110)
	if math.Abs(first.Frequency-110) > 0.5 {
		t.Fatalf("first estimate = %g Hz, want ~110", first.Frequency)
	}

	// Still an A2, so the estimate moves only part of the way.
	second := analyzeTone(t, d, 112)
	if second.Frequency < 110.2 || second.Frequency > 111.2 {
		t.Errorf("smoothed estimate = %g Hz, want ~110.6", second.Frequency)
	}
	if got := second.Note.String(); got != "A2" {
		t.Errorf("Note = %s, want A2", got)
	}

	// Note change resets the filter to the raw estimate.
	third := analyzeTone(t, d, 220)
	if math.Abs(third.Frequency-220) > 2 {
		t.Errorf("estimate after note change = %g Hz, want ~220", third.Frequency)
	}
}

func TestSmoothingDisabled(t *testing.T) {
	d := mustDetector(t, WithSmoothing(false))

	analyzeTone(t, d, 110)

	second := analyzeTone(t, d, 112)
	if second.Frequency < 111.4 {
		t.Errorf("estimate = %g Hz, want raw ~112", second.Frequency)
	}
}

func TestResetClearsSmoothing(t *testing.T) {
	d := mustDetector(t)

	analyzeTone(t, d, 110)
	d.Reset()

	second := analyzeTone(t, d, 112)
	if second.Frequency < 111.4 {
		t.Errorf("estimate after Reset = %g Hz, want raw ~112", second.Frequency)
	}
}

func TestClosedDetector(t *testing.T) {
	d, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	d.Close()

	if _, _, err := d.ProcessChunk(make([]float64, 2048)); err == nil {
		t.Error("ProcessChunk succeeded on a closed detector")
	}
	if _, _, err := d.Analyze(make([]float64, 2048)); err == nil {
		t.Error("Analyze succeeded on a closed detector")
	}

	d.Close() // second Close is harmless
}

func TestAlgorithmString(t *testing.T) {
	cases := []struct {
		algo Algorithm
		want string
	}{
		{AlgorithmYIN, "yin"},
		{AlgorithmSpectral, "spectral"},
		{Algorithm(9), "unknown"},
	}
	for _, tc := range cases {
		if got := tc.algo.String(); got != tc.want {
			t.Errorf("Algorithm(%d).String() = %q, want %q", int(tc.algo), got, tc.want)
		}
	}
}
