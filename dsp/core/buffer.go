package core

// Zero clears every element of buf.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}
