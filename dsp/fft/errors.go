package fft

import "errors"

// ErrInvalidLength reports a transform size or slice length that the
// selected backend cannot process.
var ErrInvalidLength = errors.New("fft: invalid length")

var errClosed = errors.New("fft: transform is closed")
