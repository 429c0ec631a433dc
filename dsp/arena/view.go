package arena

import "unsafe"

// Bytes returns the payload at ref as a byte slice aliasing the arena's
// buffer. The slice is capacity-capped so appends cannot spill into the
// next block. See the package documentation for view invalidation rules.
func (a *Arena) Bytes(ref Ref) ([]byte, error) {
	_, total, err := a.blockOf(ref)
	if err != nil {
		return nil, err
	}

	p := int(ref)
	end := p + total - headerSize

	return a.buf[p:end:end], nil
}

// Float64s returns the payload at ref viewed as float64 values. The
// element count is the payload size divided by 8.
func (a *Arena) Float64s(ref Ref) ([]float64, error) {
	b, err := a.Bytes(ref)
	if err != nil {
		return nil, err
	}

	// Payload offsets are 8-byte aligned, which satisfies float64
	// alignment.
	return unsafe.Slice((*float64)(unsafe.Pointer(&b[0])), len(b)/8), nil
}

// Complex128s returns the payload at ref viewed as complex128 values. The
// element count is the payload size divided by 16.
func (a *Arena) Complex128s(ref Ref) ([]complex128, error) {
	b, err := a.Bytes(ref)
	if err != nil {
		return nil, err
	}

	return unsafe.Slice((*complex128)(unsafe.Pointer(&b[0])), len(b)/16), nil
}
