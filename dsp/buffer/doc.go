// Package buffer provides the sample staging primitives for streaming
// analysis: a reusable float64 buffer with a sliding-frame Shift operation
// and a pool for allocation-free chunk handling in processing loops.
package buffer
