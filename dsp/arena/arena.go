package arena

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"
)

const (
	headerSize = 8
	alignment  = 8
	pageSize   = 64 * 1024

	// minSplit is the smallest remainder worth keeping as its own free
	// block; anything smaller is absorbed into the allocation.
	minSplit = headerSize + alignment

	defaultSize    = pageSize
	defaultMaxSize = 64 * 1024 * 1024
)

var (
	// ErrInvalidSize reports a non-positive or overflowing allocation size.
	ErrInvalidSize = errors.New("arena: invalid size")

	// ErrOutOfMemory reports that the arena cannot satisfy an allocation,
	// either because growth is disabled or the growth ceiling is reached.
	ErrOutOfMemory = errors.New("arena: out of memory")

	// ErrInvalidRef reports a ref that is out of range, misaligned, already
	// free, or carries a corrupt header.
	ErrInvalidRef = errors.New("arena: invalid ref")
)

// Ref is the byte offset of an allocation's payload inside the arena.
// The zero Ref never refers to a valid allocation.
type Ref int

// span is one free region: [off, off+size) covering header and payload.
type span struct {
	off  int
	size int
}

// Stats describes the allocator's current bookkeeping state.
type Stats struct {
	ArenaBytes int // total buffer size
	BumpMark   int // high water mark of bump allocation
	LiveAllocs int // blocks allocated and not yet freed
	FreeBlocks int // entries in the free list
	FreeBytes  int // bytes covered by the free list
}

type config struct {
	size     int
	maxSize  int
	growable bool
}

// Option configures an Arena.
type Option func(*config)

// WithSize sets the initial buffer size in bytes. Default 64 KiB.
func WithSize(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.size = n
		}
	}
}

// WithMaxSize sets the growth ceiling in bytes. Default 64 MiB.
func WithMaxSize(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxSize = n
		}
	}
}

// WithGrowable controls whether the buffer may grow beyond its initial
// size. Default true.
func WithGrowable(growable bool) Option {
	return func(cfg *config) {
		cfg.growable = growable
	}
}

// Arena manages a contiguous byte buffer with an explicit free list.
type Arena struct {
	buf      []byte
	free     []span // sorted by offset, adjacent spans always merged
	bump     int
	live     int
	maxSize  int
	growable bool
}

// New returns an Arena ready for use.
func New(opts ...Option) (*Arena, error) {
	cfg := config{
		size:     defaultSize,
		maxSize:  defaultMaxSize,
		growable: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.maxSize < cfg.size {
		cfg.maxSize = cfg.size
	}

	return &Arena{
		buf:      make([]byte, cfg.size),
		maxSize:  cfg.maxSize,
		growable: cfg.growable,
	}, nil
}

// Alloc reserves size bytes and returns the payload ref. The payload is
// rounded up to 8-byte alignment; its contents are unspecified.
func (a *Arena) Alloc(size int) (Ref, error) {
	if size <= 0 {
		return 0, fmt.Errorf("arena: alloc size must be > 0: %d: %w", size, ErrInvalidSize)
	}

	payload := alignUp(size)
	total := headerSize + payload

	// First fit over the offset-sorted free list.
	for i, s := range a.free {
		if s.size < total {
			continue
		}

		rest := s.size - total
		if rest >= minSplit {
			a.free[i] = span{off: s.off + total, size: rest}
		} else {
			// Absorb the slack into the allocation so Free returns
			// the whole region.
			payload = s.size - headerSize
			a.free = append(a.free[:i], a.free[i+1:]...)
		}

		a.writeHeader(s.off, payload)
		a.live++

		return Ref(s.off + headerSize), nil
	}

	// Bump allocation from the high water mark.
	if a.bump+total > len(a.buf) {
		if err := a.grow(a.bump + total); err != nil {
			return 0, err
		}
	}

	off := a.bump
	a.bump += total
	a.writeHeader(off, payload)
	a.live++

	return Ref(off + headerSize), nil
}

// Calloc reserves count*size bytes and zero-fills the payload.
func (a *Arena) Calloc(count, size int) (Ref, error) {
	if count <= 0 || size <= 0 {
		return 0, fmt.Errorf("arena: calloc count and size must be > 0: %d, %d: %w", count, size, ErrInvalidSize)
	}
	if count > math.MaxInt/size {
		return 0, fmt.Errorf("arena: calloc %d*%d overflows: %w", count, size, ErrInvalidSize)
	}

	ref, err := a.Alloc(count * size)
	if err != nil {
		return 0, err
	}

	b, err := a.Bytes(ref)
	if err != nil {
		return 0, err
	}
	for i := range b {
		b[i] = 0
	}

	return ref, nil
}

// Realloc resizes the allocation at ref. Shrinking keeps the same ref,
// updating the header in place and returning a large enough tail to the
// free list. Growing allocates a new block, copies the old payload, and
// frees the old block; on allocation failure the original block is left
// intact.
func (a *Arena) Realloc(ref Ref, size int) (Ref, error) {
	if size <= 0 {
		return 0, fmt.Errorf("arena: realloc size must be > 0: %d: %w", size, ErrInvalidSize)
	}

	blockOff, total, err := a.blockOf(ref)
	if err != nil {
		return 0, err
	}

	oldPayload := total - headerSize
	payload := alignUp(size)

	if payload <= oldPayload {
		rest := oldPayload - payload
		if rest >= minSplit {
			a.writeHeader(blockOff, payload)
			a.insertFree(span{off: blockOff + headerSize + payload, size: rest})
		}
		return ref, nil
	}

	next, err := a.Alloc(size)
	if err != nil {
		return 0, err
	}

	// Alloc may have grown and relocated the buffer, so both offsets are
	// resolved against the current one.
	copy(a.buf[int(next):int(next)+oldPayload], a.buf[int(ref):int(ref)+oldPayload])

	if err := a.Free(ref); err != nil {
		return 0, err
	}

	return next, nil
}

// Free returns the allocation at ref to the free list and merges it with
// any adjacent free regions.
func (a *Arena) Free(ref Ref) error {
	blockOff, total, err := a.blockOf(ref)
	if err != nil {
		return err
	}

	a.insertFree(span{off: blockOff, size: total})
	a.live--

	return nil
}

// Reset drops every allocation and the free list, keeping the buffer.
func (a *Arena) Reset() {
	a.free = a.free[:0]
	a.bump = 0
	a.live = 0
}

// Stats returns the allocator's current bookkeeping state.
func (a *Arena) Stats() Stats {
	freeBytes := 0
	for _, s := range a.free {
		freeBytes += s.size
	}

	return Stats{
		ArenaBytes: len(a.buf),
		BumpMark:   a.bump,
		LiveAllocs: a.live,
		FreeBlocks: len(a.free),
		FreeBytes:  freeBytes,
	}
}

// blockOf validates ref and returns its block offset and total size
// (header plus payload).
func (a *Arena) blockOf(ref Ref) (int, int, error) {
	p := int(ref)
	if p < headerSize || p%alignment != 0 || p > a.bump {
		return 0, 0, fmt.Errorf("arena: ref %d out of range: %w", p, ErrInvalidRef)
	}

	payload := a.readHeader(p - headerSize)
	if payload <= 0 || payload%alignment != 0 || p+payload > a.bump {
		return 0, 0, fmt.Errorf("arena: ref %d has a corrupt header: %w", p, ErrInvalidRef)
	}

	blockOff := p - headerSize
	if a.overlapsFree(blockOff, p+payload) {
		return 0, 0, fmt.Errorf("arena: ref %d is already free: %w", p, ErrInvalidRef)
	}

	return blockOff, headerSize + payload, nil
}

// insertFree adds s to the offset-sorted free list and merges adjacent
// spans.
func (a *Arena) insertFree(s span) {
	i := sort.Search(len(a.free), func(i int) bool { return a.free[i].off > s.off })
	a.free = append(a.free, span{})
	copy(a.free[i+1:], a.free[i:])
	a.free[i] = s
	a.coalesce()
}

func (a *Arena) coalesce() {
	if len(a.free) < 2 {
		return
	}

	out := a.free[:1]
	for _, s := range a.free[1:] {
		last := &out[len(out)-1]
		if last.off+last.size == s.off {
			last.size += s.size
		} else {
			out = append(out, s)
		}
	}
	a.free = out
}

func (a *Arena) overlapsFree(start, end int) bool {
	i := sort.Search(len(a.free), func(i int) bool { return a.free[i].off+a.free[i].size > start })
	return i < len(a.free) && a.free[i].off < end
}

func (a *Arena) grow(need int) error {
	avail := len(a.buf) - a.bump
	if !a.growable {
		return fmt.Errorf("arena: need %d bytes, %d available: %w", need-a.bump, avail, ErrOutOfMemory)
	}

	target := pageRound(need)
	if target > a.maxSize {
		return fmt.Errorf("arena: need %d bytes, %d available at max size %d: %w", need-a.bump, avail, a.maxSize, ErrOutOfMemory)
	}

	grown := make([]byte, target)
	copy(grown, a.buf)
	a.buf = grown

	return nil
}

func (a *Arena) writeHeader(off, payload int) {
	binary.LittleEndian.PutUint64(a.buf[off:off+headerSize], uint64(payload))
}

func (a *Arena) readHeader(off int) int {
	return int(binary.LittleEndian.Uint64(a.buf[off : off+headerSize]))
}

func alignUp(n int) int {
	return (n + alignment - 1) &^ (alignment - 1)
}

func pageRound(n int) int {
	return (n + pageSize - 1) / pageSize * pageSize
}
