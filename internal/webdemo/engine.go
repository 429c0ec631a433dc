package webdemo

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-pitch/dsp/arena"
	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/measure/pitch"
)

const arenaSize = 1 << 20

// Reading is one pitch estimate flattened to JS-friendly primitives.
type Reading struct {
	FrequencyHz float64
	Clarity     float64
	Note        string
	Octave      int
	MIDI        int
	Cents       int
}

// Engine runs the web demo pitch pipeline in Go. It owns the detector,
// the arena backing its FFT scratch, and a staging buffer that regroups
// the browser's capture quanta into detector-sized chunks.
type Engine struct {
	sampleRate float64
	algorithm  pitch.Algorithm

	ar       *arena.Arena
	detector *pitch.Detector

	pending []float64
}

// NewEngine creates a configured pitch engine.
func NewEngine(sampleRate float64) (*Engine, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be > 0: %f", sampleRate)
	}

	ar, err := arena.New(arena.WithSize(arenaSize))
	if err != nil {
		return nil, fmt.Errorf("engine arena: %w", err)
	}

	e := &Engine{
		sampleRate: sampleRate,
		algorithm:  pitch.AlgorithmYIN,
		ar:         ar,
	}
	if err := e.rebuildDetector(); err != nil {
		return nil, err
	}
	return e, nil
}

// SampleRate returns the configured capture rate.
func (e *Engine) SampleRate() float64 {
	return e.sampleRate
}

// ChunkSize returns the number of samples the active detector consumes
// per analysis step.
func (e *Engine) ChunkSize() int {
	if e.detector == nil {
		return 0
	}
	return e.detector.Config().ChunkSize
}

// Algorithm returns the active detection algorithm name.
func (e *Engine) Algorithm() string {
	return e.algorithm.String()
}

// SetAlgorithm switches the detection algorithm, rebuilding the detector.
func (e *Engine) SetAlgorithm(name string) error {
	algo, err := parseAlgorithm(name)
	if err != nil {
		return err
	}
	if algo == e.algorithm && e.detector != nil {
		return nil
	}

	prev := e.algorithm
	e.algorithm = algo
	if err := e.rebuildDetector(); err != nil {
		e.algorithm = prev
		return err
	}
	return nil
}

// ProcessChunk feeds captured samples into the detector and reports the
// newest reading. The bool is false while the window is still filling and
// on quiet or unpitched input. Sample slices of any length are accepted;
// leftovers stay staged for the next call.
func (e *Engine) ProcessChunk(samples []float32) (Reading, bool) {
	if e.detector == nil || len(samples) == 0 {
		return Reading{}, false
	}

	for _, s := range samples {
		e.pending = append(e.pending, float64(s))
	}

	size := e.detector.Config().ChunkSize

	var (
		reading Reading
		got     bool
	)
	for len(e.pending) >= size {
		res, ok, err := e.detector.ProcessChunk(e.pending[:size])
		e.pending = e.pending[:copy(e.pending, e.pending[size:])]
		if err != nil {
			break
		}
		if ok {
			reading = toReading(res)
			got = true
		}
	}

	return reading, got
}

// Reset drops staged samples and clears the detector's window and
// smoothing state.
func (e *Engine) Reset() {
	e.pending = e.pending[:0]
	if e.detector != nil {
		e.detector.Reset()
	}
}

// ArenaStats reports the allocator state backing the FFT scratch.
func (e *Engine) ArenaStats() arena.Stats {
	if e.ar == nil {
		return arena.Stats{}
	}
	return e.ar.Stats()
}

// Close releases the detector and its arena-backed scratch.
func (e *Engine) Close() {
	if e.detector != nil {
		e.detector.Close()
		e.detector = nil
	}
	e.ar = nil
}

func (e *Engine) rebuildDetector() error {
	if e.detector != nil {
		e.detector.Close()
		e.detector = nil
	}

	d, err := pitch.New(
		pitch.WithAlgorithm(e.algorithm),
		pitch.WithSampleRate(e.sampleRate),
		pitch.WithFFTBackend(fft.BackendAccelerated),
		pitch.WithArena(e.ar),
	)
	if err != nil {
		return fmt.Errorf("build %s detector: %w", e.algorithm, err)
	}

	e.detector = d
	e.pending = e.pending[:0]
	return nil
}

func toReading(res pitch.Result) Reading {
	return Reading{
		FrequencyHz: res.Frequency,
		Clarity:     res.Confidence,
		Note:        res.Note.Name,
		Octave:      res.Note.Octave,
		MIDI:        res.Note.MIDI,
		Cents:       res.Note.Cents,
	}
}

func parseAlgorithm(name string) (pitch.Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "yin":
		return pitch.AlgorithmYIN, nil
	case "spectral", "hps":
		return pitch.AlgorithmSpectral, nil
	default:
		return 0, fmt.Errorf("unsupported algorithm: %s", name)
	}
}
