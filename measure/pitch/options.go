package pitch

import (
	"github.com/cwbudde/algo-pitch/dsp/arena"
	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/music/note"
)

// Algorithm selects the detection strategy.
type Algorithm int

const (
	// AlgorithmYIN is the time-domain estimator, the default.
	AlgorithmYIN Algorithm = iota

	// AlgorithmSpectral is the FFT + harmonic-product estimator.
	AlgorithmSpectral
)

// String returns the lower-case algorithm name.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmYIN:
		return "yin"
	case AlgorithmSpectral:
		return "spectral"
	default:
		return "unknown"
	}
}

// Config holds detector parameters. Zero-valued fields are filled with
// per-algorithm defaults at construction.
type Config struct {
	core.ProcessorConfig

	Algorithm Algorithm

	// ChunkSize is the per-call chunk length in samples, strictly
	// enforced by ProcessChunk. Defaults to 2048 for YIN and 1024 for
	// the spectral path.
	ChunkSize int

	// WindowSize is the analysis frame length in samples. Defaults to
	// ChunkSize for YIN and 2048 for the spectral path.
	WindowSize int

	// TransformSize is the FFT length for the spectral path. Zero means
	// the next power of two of 2*WindowSize.
	TransformSize int

	// Threshold is the YIN acceptance level on the normalized difference.
	Threshold float64

	// FMin and FMax bound accepted fundamentals in Hz. Defaults 40-800
	// for YIN, 60-500 for spectral.
	FMin float64
	FMax float64

	// A4 is the reference tuning in Hz.
	A4 float64

	// Harmonics is the harmonic product order of the spectral path.
	Harmonics int

	// LowCutoffHz zeroes spectral bins below this frequency to suppress
	// hum and DC.
	LowCutoffHz float64

	// MagnitudeFloor rejects spectral peaks whose raw magnitude falls
	// below it.
	MagnitudeFloor float64

	// RMSGate skips frames quieter than this RMS level.
	RMSGate float64

	Smoothing      bool
	SmoothingAlpha float64

	// FFTBackend and Arena are handed to the spectral transform.
	FFTBackend fft.Backend
	Arena      *arena.Arena
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the YIN-first defaults. Frame sizes and frequency
// bounds left at zero are filled per algorithm by the constructor.
func DefaultConfig() Config {
	return Config{
		ProcessorConfig: core.ProcessorConfig{
			SampleRate: 48000,
		},
		Algorithm:      AlgorithmYIN,
		Threshold:      0.1,
		A4:             note.DefaultReference,
		Harmonics:      5,
		LowCutoffHz:    60,
		MagnitudeFloor: 1,
		RMSGate:        1e-4,
		Smoothing:      true,
		SmoothingAlpha: 0.3,
	}
}

// WithAlgorithm selects the detection strategy.
func WithAlgorithm(a Algorithm) Option {
	return func(cfg *Config) {
		cfg.Algorithm = a
	}
}

// WithSampleRate sets the input sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithChunkSize sets the per-call chunk length, strictly enforced by
// ProcessChunk.
func WithChunkSize(chunkSize int) Option {
	return func(cfg *Config) {
		if chunkSize > 0 {
			cfg.ChunkSize = chunkSize
		}
	}
}

// WithWindowSize sets the analysis frame length.
func WithWindowSize(windowSize int) Option {
	return func(cfg *Config) {
		if windowSize > 0 {
			cfg.WindowSize = windowSize
		}
	}
}

// WithTransformSize sets the spectral FFT length.
func WithTransformSize(transformSize int) Option {
	return func(cfg *Config) {
		if transformSize > 0 {
			cfg.TransformSize = transformSize
		}
	}
}

// WithThreshold sets the YIN acceptance threshold.
func WithThreshold(threshold float64) Option {
	return func(cfg *Config) {
		if threshold > 0 {
			cfg.Threshold = threshold
		}
	}
}

// WithFrequencyRange bounds accepted fundamentals in Hz.
func WithFrequencyRange(fMin, fMax float64) Option {
	return func(cfg *Config) {
		if fMin > 0 {
			cfg.FMin = fMin
		}
		if fMax > 0 {
			cfg.FMax = fMax
		}
	}
}

// WithReference sets the A4 tuning frequency.
func WithReference(a4 float64) Option {
	return func(cfg *Config) {
		if a4 > 0 {
			cfg.A4 = a4
		}
	}
}

// WithHarmonics sets the harmonic product order.
func WithHarmonics(harmonics int) Option {
	return func(cfg *Config) {
		if harmonics > 0 {
			cfg.Harmonics = harmonics
		}
	}
}

// WithLowCutoff sets the spectral hum/DC cutoff in Hz.
func WithLowCutoff(hz float64) Option {
	return func(cfg *Config) {
		if hz >= 0 {
			cfg.LowCutoffHz = hz
		}
	}
}

// WithMagnitudeFloor sets the spectral peak rejection floor.
func WithMagnitudeFloor(floor float64) Option {
	return func(cfg *Config) {
		if floor >= 0 {
			cfg.MagnitudeFloor = floor
		}
	}
}

// WithRMSGate sets the silence gate level. Zero disables the gate.
func WithRMSGate(rms float64) Option {
	return func(cfg *Config) {
		if rms >= 0 {
			cfg.RMSGate = rms
		}
	}
}

// WithSmoothing enables or disables per-note frequency smoothing.
func WithSmoothing(enabled bool) Option {
	return func(cfg *Config) {
		cfg.Smoothing = enabled
	}
}

// WithSmoothingAlpha sets the smoothing blend factor in (0, 1].
func WithSmoothingAlpha(alpha float64) Option {
	return func(cfg *Config) {
		if alpha > 0 && alpha <= 1 {
			cfg.SmoothingAlpha = alpha
		}
	}
}

// WithFFTBackend selects the spectral transform implementation.
func WithFFTBackend(b fft.Backend) Option {
	return func(cfg *Config) {
		cfg.FFTBackend = b
	}
}

// WithArena supplies the arena backing accelerated FFT scratch.
func WithArena(a *arena.Arena) Option {
	return func(cfg *Config) {
		cfg.Arena = a
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// normalizeConfig fills zero-valued fields with per-algorithm defaults.
func normalizeConfig(cfg Config) Config {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 48000
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = 0.1
	}
	if cfg.A4 <= 0 {
		cfg.A4 = note.DefaultReference
	}
	if cfg.Harmonics < 1 {
		cfg.Harmonics = 5
	}
	if cfg.SmoothingAlpha <= 0 || cfg.SmoothingAlpha > 1 {
		cfg.SmoothingAlpha = 0.3
	}

	switch cfg.Algorithm {
	case AlgorithmSpectral:
		if cfg.ChunkSize <= 0 {
			cfg.ChunkSize = 1024
		}
		if cfg.WindowSize <= 0 {
			cfg.WindowSize = 2048
		}
		if cfg.TransformSize <= 0 {
			cfg.TransformSize = core.NextPowerOfTwo(2 * cfg.WindowSize)
		}
		if cfg.FMin <= 0 {
			cfg.FMin = 60
		}
		if cfg.FMax <= 0 {
			cfg.FMax = 500
		}
	default:
		if cfg.ChunkSize <= 0 {
			cfg.ChunkSize = 2048
		}
		if cfg.WindowSize <= 0 {
			cfg.WindowSize = cfg.ChunkSize
		}
		if cfg.FMin <= 0 {
			cfg.FMin = 40
		}
		if cfg.FMax <= 0 {
			cfg.FMax = 800
		}
	}

	return cfg
}
