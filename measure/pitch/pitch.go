package pitch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pitch/dsp/buffer"
	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/dsp/window"
	"github.com/cwbudde/algo-pitch/music/note"
	timestats "github.com/cwbudde/algo-pitch/stats/time"
)

// Result is one pitch estimate.
type Result struct {
	// Frequency is the estimated fundamental in Hz, after smoothing.
	Frequency float64

	// Confidence is the estimator's certainty in [0, 1].
	Confidence float64

	// Note is the nearest equal-tempered note with cents deviation.
	Note note.Note
}

// Detector turns a stream of fixed-size sample chunks into pitch
// estimates. It owns a rolling analysis window and reuses all scratch
// across calls; it is not safe for concurrent use.
type Detector struct {
	cfg Config

	rolling *buffer.Buffer
	filled  int

	// spectral scratch
	coeffs    []float64
	transform *fft.Transform
	re, im    []float64
	mag, hps  []float64
	confNorm  float64

	// yin scratch
	cmndf []float64

	// smoothing state
	smoothed  float64
	lastNote  string
	hasSmooth bool

	closed bool
}

// New constructs a Detector from the default config and options.
func New(opts ...Option) (*Detector, error) {
	cfg := normalizeConfig(ApplyOptions(opts...))

	if cfg.FMin >= cfg.FMax {
		return nil, fmt.Errorf("pitch: frequency range %g-%g Hz is empty", cfg.FMin, cfg.FMax)
	}

	d := &Detector{
		cfg:     cfg,
		rolling: buffer.New(cfg.WindowSize),
	}

	switch cfg.Algorithm {
	case AlgorithmSpectral:
		if cfg.TransformSize < cfg.WindowSize {
			return nil, fmt.Errorf("%w: transform size %d is smaller than window size %d",
				fft.ErrInvalidLength, cfg.TransformSize, cfg.WindowSize)
		}

		coeffs, err := window.Generate(window.TypeHann, cfg.WindowSize)
		if err != nil {
			return nil, err
		}

		transform, err := fft.New(cfg.TransformSize, fft.WithBackend(cfg.FFTBackend), fft.WithArena(cfg.Arena))
		if err != nil {
			return nil, err
		}

		d.coeffs = coeffs
		d.transform = transform
		d.re = make([]float64, cfg.TransformSize)
		d.im = make([]float64, cfg.TransformSize)
		d.mag = make([]float64, cfg.TransformSize/2)
		d.hps = make([]float64, cfg.TransformSize/2)
		d.confNorm = float64(cfg.WindowSize) / 4

	default:
		maxLag := d.maxLag(cfg.WindowSize)
		if maxLag < 2 {
			return nil, fmt.Errorf("pitch: window of %d samples is too short for fMin %g Hz",
				cfg.WindowSize, cfg.FMin)
		}

		d.cmndf = make([]float64, maxLag+1)
	}

	return d, nil
}

// Config returns the detector's effective configuration.
func (d *Detector) Config() Config { return d.cfg }

// ProcessChunk slides the analysis window by one chunk and, once the
// window has filled, runs detection over it.
//
// The bool reports whether a pitch was detected; a quiet or unpitched
// frame yields (Result{}, false, nil). The chunk length must match the
// configured ChunkSize exactly.
func (d *Detector) ProcessChunk(chunk []float64) (Result, bool, error) {
	if d.closed {
		return Result{}, false, errClosed
	}

	if len(chunk) != d.cfg.ChunkSize {
		return Result{}, false, fmt.Errorf("%w: got %d samples, configured for %d",
			ErrChunkSize, len(chunk), d.cfg.ChunkSize)
	}

	d.rolling.Shift(chunk)

	if d.filled < d.rolling.Len() {
		d.filled += len(chunk)
		if d.filled < d.rolling.Len() {
			return Result{}, false, nil
		}
	}

	return d.analyze(d.rolling.Samples())
}

// Analyze runs one-shot detection over a full frame without touching the
// rolling window. The frame length must match the configured WindowSize.
func (d *Detector) Analyze(frame []float64) (Result, bool, error) {
	if d.closed {
		return Result{}, false, errClosed
	}

	if len(frame) != d.cfg.WindowSize {
		return Result{}, false, fmt.Errorf("%w: got %d samples, window size %d",
			ErrChunkSize, len(frame), d.cfg.WindowSize)
	}

	return d.analyze(frame)
}

// Reset clears the rolling window and the smoothing state.
func (d *Detector) Reset() {
	d.rolling.Zero()
	d.filled = 0
	d.smoothed = 0
	d.lastNote = ""
	d.hasSmooth = false
}

// Close releases the spectral transform. The Detector must not be used
// after Close.
func (d *Detector) Close() {
	if d.transform != nil {
		d.transform.Close()
		d.transform = nil
	}

	d.closed = true
}

func (d *Detector) analyze(frame []float64) (Result, bool, error) {
	if d.cfg.RMSGate > 0 && timestats.RMS(frame) < d.cfg.RMSGate {
		return Result{}, false, nil
	}

	var (
		freq, conf float64
		ok         bool
		err        error
	)

	switch d.cfg.Algorithm {
	case AlgorithmSpectral:
		freq, conf, ok, err = d.analyzeSpectral(frame)
	default:
		freq, conf, ok = d.analyzeYIN(frame)
	}

	if err != nil || !ok {
		return Result{}, false, err
	}

	freq = d.smooth(freq)

	return Result{
		Frequency:  freq,
		Confidence: conf,
		Note:       note.FromFrequency(freq, note.WithReference(d.cfg.A4)),
	}, true, nil
}

// smooth blends consecutive estimates of the same note and locks on
// immediately when the note changes.
func (d *Detector) smooth(raw float64) float64 {
	if !d.cfg.Smoothing {
		return raw
	}

	name := note.FromFrequency(raw, note.WithReference(d.cfg.A4)).String()

	if !d.hasSmooth || name != d.lastNote {
		d.smoothed = raw
		d.lastNote = name
		d.hasSmooth = true

		return raw
	}

	d.smoothed += d.cfg.SmoothingAlpha * (raw - d.smoothed)

	return d.smoothed
}

// maxLag bounds the YIN lag search by the lowest accepted fundamental and
// by half the frame, whichever is tighter.
func (d *Detector) maxLag(frameLen int) int {
	lag := int(math.Floor(d.cfg.SampleRate / d.cfg.FMin))
	if half := frameLen / 2; lag > half {
		lag = half
	}

	return lag
}
