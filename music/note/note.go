package note

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultReference is the concert pitch the mapper tunes against unless
// overridden with [WithReference].
const DefaultReference = 440.0

// ErrUnknownNote reports a note name that is not part of the chromatic
// scale.
var ErrUnknownNote = errors.New("note: unknown note name")

// noteNames is the chromatic scale starting at C, using sharps.
var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// semitoneFromC maps note names, sharp or flat spelling, to their offset
// within an octave.
var semitoneFromC = map[string]int{
	"C": 0, "C#": 1, "Db": 1,
	"D": 2, "D#": 3, "Eb": 3,
	"E": 4,
	"F": 5, "F#": 6, "Gb": 6,
	"G": 7, "G#": 8, "Ab": 8,
	"A": 9, "A#": 10, "Bb": 10,
	"B": 11,
}

// Note is an equal-tempered pitch class with its octave and the deviation
// of the measured frequency from the note's nominal frequency.
type Note struct {
	Name      string
	Octave    int
	MIDI      int
	Cents     int
	Frequency float64 // nominal equal-tempered frequency, not the input
}

// String returns the scientific pitch name, e.g. "A4" or "C#3".
func (n Note) String() string {
	return n.Name + strconv.Itoa(n.Octave)
}

type config struct {
	a4 float64
}

// Option configures the reference tuning.
type Option func(*config)

// WithReference sets the frequency of A4 in Hz. Default 440.
func WithReference(a4 float64) Option {
	return func(c *config) {
		if a4 > 0 {
			c.a4 = a4
		}
	}
}

func applyOptions(opts []Option) config {
	cfg := config{a4: DefaultReference}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// FromFrequency maps a frequency to the nearest equal-tempered note.
//
// A frequency exactly halfway between two notes maps to the higher one.
// Non-positive or non-finite input yields the reference A4 with 0 cents
// rather than propagating NaN.
func FromFrequency(freqHz float64, opts ...Option) Note {
	cfg := applyOptions(opts)

	if freqHz <= 0 || math.IsNaN(freqHz) || math.IsInf(freqHz, 0) {
		return newNote(0, 0, cfg.a4)
	}

	semitones := 12 * math.Log2(freqHz/cfg.a4)
	n := int(math.Floor(semitones + 0.5))

	nominal := cfg.a4 * math.Pow(2, float64(n)/12)
	cents := int(math.Floor(1200*math.Log2(freqHz/nominal) + 0.5))

	return newNote(n, cents, cfg.a4)
}

// ForMIDI returns the note for a MIDI note number (69 = A4).
func ForMIDI(midi int, opts ...Option) Note {
	cfg := applyOptions(opts)

	return newNote(midi-69, 0, cfg.a4)
}

// Frequency returns the nominal frequency of a named note. Sharp and flat
// spellings are both accepted; case of the letter is ignored.
func Frequency(name string, octave int, opts ...Option) (float64, error) {
	cfg := applyOptions(opts)

	if name == "" {
		return 0, fmt.Errorf("%w: empty name", ErrUnknownNote)
	}

	normalized := strings.ToUpper(name[:1]) + name[1:]

	offset, ok := semitoneFromC[normalized]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownNote, name)
	}

	n := offset - 9 + 12*(octave-4)

	return cfg.a4 * math.Pow(2, float64(n)/12), nil
}

// newNote builds a Note from a semitone offset relative to A4.
func newNote(n, cents int, a4 float64) Note {
	o := floorDiv(n+9, 12)

	return Note{
		Name:      noteNames[n+9-12*o],
		Octave:    o + 4,
		MIDI:      69 + n,
		Cents:     cents,
		Frequency: a4 * math.Pow(2, float64(n)/12),
	}
}

// floorDiv divides rounding toward negative infinity, which integer
// division in Go does not.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}

	return q
}
