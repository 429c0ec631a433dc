package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-pitch/dsp/buffer"
)

func ExampleBuffer_Shift() {
	b := buffer.New(4)
	copy(b.Samples(), []float64{1, 2, 3, 4})

	b.Shift([]float64{5, 6})

	fmt.Println(b.Samples())
	// Output:
	// [3 4 5 6]
}

func ExamplePool() {
	p := buffer.NewPool()

	b := p.Get(3)
	b.Samples()[0] = 0.5
	fmt.Println(b.Len(), b.Samples())
	p.Put(b)

	// Output:
	// 3 [0.5 0 0]
}
