package bitlib

import "math"

// Buffer is a cursor over a fixed size, exclusively owned byte buffer. It is
// not safe for concurrent use.
type Buffer struct {
	buf  []byte
	size int // addressable bits, fixed at construction
	cur  int // bit offset of the next access
}

// New returns a Buffer holding a copy of data with the cursor at 0.
func New(data []byte) *Buffer {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Buffer{
		buf:  buf,
		size: len(data) * 8,
	}
}

// NewSize returns a zeroed Buffer able to hold bits bits.
func NewSize(bits int) *Buffer {
	if bits < 0 {
		bits = 0
	}
	return &Buffer{
		buf:  make([]byte, byteLen(bits)),
		size: bits,
	}
}

// Data returns a copy of the buffer contents.
func (b *Buffer) Data() []byte {
	out := make([]byte, len(b.buf))
	copy(out, b.buf)
	return out
}

func (b *Buffer) Size() int      { return b.size }
func (b *Buffer) Cap() int       { return len(b.buf) * 8 }
func (b *Buffer) Cursor() int    { return b.cur }
func (b *Buffer) Remaining() int { return b.Cap() - b.cur }
func (b *Buffer) Reset()         { b.cur = 0 }

// SetCursor moves the cursor to the absolute bit offset pos. Negative offsets
// become 0. The cursor may be placed past the end of the buffer, but any
// access from there fails.
func (b *Buffer) SetCursor(pos int) {
	if pos < 0 {
		pos = 0
	}
	b.cur = pos
}

// AddCursor moves the cursor by delta bits, stopping at 0 and at math.MaxInt.
func (b *Buffer) AddCursor(delta int) {
	if delta > 0 && b.cur > math.MaxInt-delta {
		b.cur = math.MaxInt
		return
	}
	b.SetCursor(b.cur + delta)
}

// check ensures n bits starting at the cursor are within the buffer.
func (b *Buffer) check(n int) error {
	if n < 0 {
		return WidthError.New("negative bit count: %d", n)
	}
	if b.cur < 0 || b.cur > b.Cap() || n > b.Cap()-b.cur {
		return RangeError.New("access of %d bits at %d exceeds %d bits", n, b.cur, b.Cap())
	}
	return nil
}
