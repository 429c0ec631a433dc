package buffer

// Buffer wraps a float64 slice with reuse-friendly semantics. Analysis
// functions accept raw []float64; use Samples() to bridge.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	if length < 0 {
		length = 0
	}
	return &Buffer{samples: make([]float64, length)}
}

// Samples returns the underlying slice.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Resize sets the length to n, reusing existing capacity when possible.
// Elements beyond the previous length are zeroed; reused capacity may
// carry stale data from earlier use of the backing array.
func (b *Buffer) Resize(n int) {
	if n < 0 {
		n = 0
	}

	oldLen := len(b.samples)
	if n <= cap(b.samples) {
		b.samples = b.samples[:n]
	} else {
		s := make([]float64, n)
		copy(s, b.samples)
		b.samples = s
	}

	for i := oldLen; i < n; i++ {
		b.samples[i] = 0
	}
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	for i := range b.samples {
		b.samples[i] = 0
	}
}

// Shift drops the oldest len(chunk) samples and appends chunk at the end,
// keeping the buffer length fixed. This is the sliding-frame operation for
// streaming analyzers that evaluate a long window fed by smaller chunks.
// If chunk is at least as long as the buffer, only its newest Len() samples
// are kept.
func (b *Buffer) Shift(chunk []float64) {
	n := len(b.samples)
	c := len(chunk)
	if c == 0 || n == 0 {
		return
	}

	if c >= n {
		copy(b.samples, chunk[c-n:])
		return
	}

	copy(b.samples, b.samples[c:])
	copy(b.samples[n-c:], chunk)
}
