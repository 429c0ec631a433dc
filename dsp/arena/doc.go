// Package arena provides a linear memory arena with malloc/free/realloc/calloc
// semantics over a single contiguous byte buffer.
//
// Allocations are identified by integer byte offsets ([Ref]), never raw
// pointers. Every payload is preceded by an 8-byte size header and starts on
// an 8-byte boundary. Freed blocks enter an offset-sorted free list and
// adjacent entries are merged immediately, so two adjoining free regions never
// remain fragmented. New allocations are served first-fit from the free list
// (splitting oversized blocks) and otherwise bump-allocated from the high
// water mark, growing the buffer in 64 KiB pages when growth is enabled.
//
// # Usage
//
//	a, err := arena.New(arena.WithSize(1 << 20))
//	ref, err := a.Alloc(4096 * 8)
//	samples, err := a.Float64s(ref)   // 4096 float64 values
//	...
//	err = a.Free(ref)
//
// # Views
//
// [Arena.Bytes], [Arena.Float64s], and [Arena.Complex128s] return slices that
// alias the arena's buffer directly. Any Alloc, Calloc, or Realloc call may
// grow the buffer and relocate it, which detaches previously returned views
// from the live arena. Acquire all allocations first, then take views, and do
// not hold views across further allocation calls.
//
// # Error policy
//
// Double frees and stale refs are detected on a best-effort basis (bounds,
// alignment, header sanity, and free-list overlap checks) and rejected with
// [ErrInvalidRef], leaving the allocator's bookkeeping untouched. A forged ref
// that points into a live block cannot always be distinguished from a valid
// one; such misuse corrupts at most that block, never the free list.
//
// An Arena is a single owned resource and is not safe for concurrent use.
package arena
