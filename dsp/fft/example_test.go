package fft_test

import (
	"fmt"
	"log"

	"github.com/cwbudde/algo-pitch/dsp/fft"
)

func ExampleForward() {
	// An impulse at the origin transforms to a flat spectrum.
	re := []float64{1, 0, 0, 0, 0, 0, 0, 0}
	im := make([]float64, len(re))

	if err := fft.Forward(re, im); err != nil {
		log.Fatal(err)
	}

	fmt.Println(re)
	fmt.Println(im)
	// Output:
	// [1 1 1 1 1 1 1 1]
	// [0 0 0 0 0 0 0 0]
}

func ExampleNew() {
	powerOfTwo, err := fft.New(1024)
	if err != nil {
		log.Fatal(err)
	}
	defer powerOfTwo.Close()

	arbitrary, err := fft.New(1000)
	if err != nil {
		log.Fatal(err)
	}
	defer arbitrary.Close()

	fmt.Println(powerOfTwo.Backend())
	fmt.Println(arbitrary.Backend())
	// Output:
	// radix2
	// bluestein
}
