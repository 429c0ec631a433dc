// Command notetable prints the equal-tempered note table, or maps a single
// frequency to its nearest note.
//
// Usage:
//
//	notetable [flags]
//	notetable -freq 446.2
//
// Examples:
//
//	notetable
//	notetable -from 1 -to 3
//	notetable -a4 432
//	notetable -freq 82.4
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-pitch/music/note"
)

var names = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func main() {
	a4 := flag.Float64("a4", 440, "A4 reference tuning in Hz")
	from := flag.Int("from", 2, "first octave")
	to := flag.Int("to", 6, "last octave")
	freq := flag.Float64("freq", 0, "map this frequency to its nearest note and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: notetable [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints the equal-tempered note table for the given tuning.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  notetable -from 1 -to 3\n")
		fmt.Fprintf(os.Stderr, "  notetable -a4 432\n")
		fmt.Fprintf(os.Stderr, "  notetable -freq 82.4\n")
	}
	flag.Parse()

	if *a4 <= 0 {
		fmt.Fprintf(os.Stderr, "error: a4 must be > 0: %g\n", *a4)
		os.Exit(2)
	}

	if *freq > 0 {
		n := note.FromFrequency(*freq, note.WithReference(*a4))
		fmt.Printf("%g Hz -> %s (%+d cents), MIDI %d, nominal %.4f Hz\n",
			*freq, n, n.Cents, n.MIDI, n.Frequency)
		return
	}

	if *from > *to {
		fmt.Fprintf(os.Stderr, "error: octave range %d..%d is empty\n", *from, *to)
		os.Exit(2)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Note\tMIDI\tFrequency [Hz]")
	fmt.Fprintln(tw, "----\t----\t--------------")

	for octave := *from; octave <= *to; octave++ {
		for _, name := range names {
			f, err := note.Frequency(name, octave, note.WithReference(*a4))
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				os.Exit(1)
			}

			n := note.FromFrequency(f, note.WithReference(*a4))
			fmt.Fprintf(tw, "%s%d\t%d\t%.4f\n", name, octave, n.MIDI, f)
		}
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
