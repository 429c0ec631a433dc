// Command pitchinfo estimates the fundamental frequency of a WAV file, or
// of a synthesized test tone, and prints a detection timeline.
//
// Usage:
//
//	pitchinfo [flags] file.wav
//	pitchinfo [flags] -tone 220
//
// Examples:
//
//	pitchinfo recording.wav
//	pitchinfo -algo spectral -stats recording.wav
//	pitchinfo -tone 110 -dur 0.5
//	pitchinfo -a4 432 -fmin 60 -fmax 500 vocals.wav
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-pitch/dsp/buffer"
	"github.com/cwbudde/algo-pitch/dsp/core"
	"github.com/cwbudde/algo-pitch/dsp/fft"
	"github.com/cwbudde/algo-pitch/dsp/signal"
	"github.com/cwbudde/algo-pitch/dsp/spectrum"
	"github.com/cwbudde/algo-pitch/dsp/window"
	"github.com/cwbudde/algo-pitch/measure/pitch"
	frequencystats "github.com/cwbudde/algo-pitch/stats/frequency"
	timestats "github.com/cwbudde/algo-pitch/stats/time"
)

func main() {
	algo := flag.String("algo", "yin", "detection algorithm: yin or spectral")
	chunkSize := flag.Int("chunk", 0, "chunk size in samples (0 = algorithm default)")
	windowSize := flag.Int("window", 0, "analysis window in samples (0 = algorithm default)")
	fMin := flag.Float64("fmin", 0, "lowest accepted fundamental in Hz (0 = algorithm default)")
	fMax := flag.Float64("fmax", 0, "highest accepted fundamental in Hz (0 = algorithm default)")
	a4 := flag.Float64("a4", 440, "A4 reference tuning in Hz")
	threshold := flag.Float64("threshold", 0, "YIN acceptance threshold (0 = default)")
	tone := flag.Float64("tone", 0, "synthesize a harmonic test tone at this frequency instead of reading a file")
	dur := flag.Float64("dur", 2, "test tone duration in seconds")
	rate := flag.Float64("rate", 48000, "test tone sample rate in Hz")
	stats := flag.Bool("stats", false, "print input and detection summaries")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pitchinfo [flags] file.wav\n")
		fmt.Fprintf(os.Stderr, "       pitchinfo [flags] -tone freq\n\n")
		fmt.Fprintf(os.Stderr, "Estimates the fundamental frequency chunk by chunk and prints a timeline.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  pitchinfo recording.wav\n")
		fmt.Fprintf(os.Stderr, "  pitchinfo -algo spectral -stats recording.wav\n")
		fmt.Fprintf(os.Stderr, "  pitchinfo -tone 110 -dur 0.5\n")
	}
	flag.Parse()

	algorithm, err := parseAlgorithm(*algo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	var (
		samples    []float64
		sampleRate float64
		source     string
	)
	switch {
	case *tone > 0:
		samples, err = synthesizeTone(*tone, *rate, *dur)
		sampleRate = *rate
		source = fmt.Sprintf("%g Hz test tone", *tone)
	case flag.NArg() == 1:
		samples, sampleRate, err = decodeWAV(flag.Arg(0))
		source = flag.Arg(0)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	opts := []pitch.Option{
		pitch.WithAlgorithm(algorithm),
		pitch.WithSampleRate(sampleRate),
		pitch.WithReference(*a4),
		pitch.WithFrequencyRange(*fMin, *fMax),
	}
	if *chunkSize > 0 {
		opts = append(opts, pitch.WithChunkSize(*chunkSize))
	}
	if *windowSize > 0 {
		opts = append(opts, pitch.WithWindowSize(*windowSize))
	}
	if *threshold > 0 {
		opts = append(opts, pitch.WithThreshold(*threshold))
	}

	det, err := pitch.New(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer det.Close()

	cfg := det.Config()
	fmt.Printf("%s: %.0f Hz sample rate, %s detector, chunk %d, window %d\n\n",
		source, sampleRate, cfg.Algorithm, cfg.ChunkSize, cfg.WindowSize)

	if err := runTimeline(det, samples, sampleRate, *stats); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseAlgorithm(name string) (pitch.Algorithm, error) {
	switch name {
	case "yin":
		return pitch.AlgorithmYIN, nil
	case "spectral":
		return pitch.AlgorithmSpectral, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q (yin or spectral)", name)
	}
}

func synthesizeTone(freq, sampleRate, seconds float64) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("tone sample rate must be > 0: %g", sampleRate)
	}

	n := int(seconds * sampleRate)
	if n < 1 {
		return nil, fmt.Errorf("tone duration too short: %gs", seconds)
	}

	gen := signal.NewGenerator(core.WithSampleRate(sampleRate))
	return gen.Harmonic(freq, 0.5, []float64{1, 0.5, 0.33, 0.25}, n)
}

// decodeWAV loads a WAV file as normalized mono samples.
func decodeWAV(path string) ([]float64, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", path, err)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 || buf.Format.SampleRate < 1 {
		return nil, 0, fmt.Errorf("decode %s: missing format information", path)
	}
	if dec.BitDepth < 2 {
		return nil, 0, fmt.Errorf("decode %s: unsupported bit depth %d", path, dec.BitDepth)
	}

	return monoSamples(buf, dec.BitDepth), float64(buf.Format.SampleRate), nil
}

// monoSamples downmixes an interleaved PCM buffer to full-scale-normalized
// mono float64 frames.
func monoSamples(buf *audio.IntBuffer, bitDepth uint16) []float64 {
	scale := 1 / math.Pow(2, float64(bitDepth)-1)
	channels := buf.Format.NumChannels

	fb := buf.AsFloatBuffer()
	frames := len(fb.Data) / channels

	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for c := 0; c < channels; c++ {
			sum += fb.Data[i*channels+c]
		}
		mono[i] = sum / float64(channels) * scale
	}

	return mono
}

func runTimeline(det *pitch.Detector, samples []float64, sampleRate float64, withStats bool) error {
	cfg := det.Config()
	pool := buffer.NewPool()

	input := timestats.NewStreamingStats()
	freqs := timestats.NewStreamingStats()
	clarity := timestats.NewStreamingStats()

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Time [s]\tFrequency [Hz]\tNote\tCents\tConfidence")
	fmt.Fprintln(tw, "--------\t--------------\t----\t-----\t----------")

	analyzed, detected := 0, 0
	for off := 0; off+cfg.ChunkSize <= len(samples); off += cfg.ChunkSize {
		b := pool.Get(cfg.ChunkSize)
		copy(b.Samples(), samples[off:off+cfg.ChunkSize])
		input.Update(b.Samples())

		res, ok, err := det.ProcessChunk(b.Samples())
		pool.Put(b)
		if err != nil {
			return err
		}

		analyzed++
		at := float64(off+cfg.ChunkSize) / sampleRate

		if !ok {
			fmt.Fprintf(tw, "%.3f\t-\t-\t-\t-\n", at)
			continue
		}

		detected++
		freqs.Update([]float64{res.Frequency})
		clarity.Update([]float64{res.Confidence})

		fmt.Fprintf(tw, "%.3f\t%.2f\t%s\t%+d\t%.2f\n",
			at, res.Frequency, res.Note, res.Note.Cents, res.Confidence)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !withStats {
		return nil
	}

	in := input.Result()
	fmt.Printf("\nInput: %d samples, RMS %.1f dBFS, peak %.1f dBFS, %d zero crossings\n",
		in.Length, in.RMS_dB, in.Peak_dB, in.ZeroCrossings)
	fmt.Printf("Zero-crossing estimate: %.1f Hz\n", timestats.ZeroCrossingRate(samples, sampleRate))
	fmt.Printf("Chunks: %d analyzed, %d with a detection\n", analyzed, detected)

	if detected > 0 {
		f := freqs.Result()
		c := clarity.Result()
		fmt.Printf("Frequency: mean %.2f Hz, min %.2f Hz, max %.2f Hz\n", f.DC, f.Min, f.Max)
		fmt.Printf("Confidence: mean %.2f\n", c.DC)
	}

	return printSpectralSummary(samples, cfg.WindowSize, sampleRate)
}

// printSpectralSummary reports shape statistics of the first analysis
// window's spectrum.
func printSpectralSummary(samples []float64, windowSize int, sampleRate float64) error {
	if len(samples) < windowSize {
		return nil
	}

	coeffs, err := window.Generate(window.TypeHann, windowSize)
	if err != nil {
		return err
	}

	re := make([]float64, windowSize)
	im := make([]float64, windowSize)
	copy(re, samples[:windowSize])
	if err := window.ApplyInPlace(re, coeffs); err != nil {
		return err
	}
	if err := fft.Forward(re, im); err != nil {
		return err
	}

	mag := make([]float64, windowSize/2+1)
	spectrum.MagnitudeFromParts(mag, re[:len(mag)], im[:len(mag)])

	s := frequencystats.Calculate(mag, sampleRate)
	peakHz, _ := frequencystats.InterpolatedPeak(mag, s.PeakBin, sampleRate, windowSize)

	fmt.Printf("Spectrum (first window): peak %.2f Hz, centroid %.1f Hz, spread %.1f Hz\n",
		peakHz, s.Centroid, s.Spread)
	fmt.Printf("           flatness %.3f, 85%% rolloff %.1f Hz\n", s.Flatness, s.Rolloff)

	return nil
}
