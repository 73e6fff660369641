package bitlib

// ReadInt reads an n bit big endian unsigned integer, 0 <= n <= MaxIntBits.
func (b *Buffer) ReadInt(n int) (int, error) {
	if n < 0 || n > MaxIntBits {
		return 0, WidthError.New("integer width %d out of range [0, %d]", n, MaxIntBits)
	}
	if err := b.check(n); err != nil {
		return 0, err
	}

	v := 0
	for end := b.cur + n; b.cur < end; {
		mod := b.cur % 8
		length := minInt(end-b.cur, 8-mod)

		chunk := b.buf[b.cur/8] & Mask(mod, length)
		v = v<<uint(length) | int(chunk>>uint(8-mod-length))

		b.cur += length
	}
	return v, nil
}

// WriteInt writes v as an n bit big endian unsigned integer. Values that do
// not fit saturate: negative values are written as 0 and values of 2^n or
// more as 2^n - 1. Widths outside [0, MaxIntBits] are rejected.
func (b *Buffer) WriteInt(v, n int) error {
	if n < 0 || n > MaxIntBits {
		return WidthError.New("integer width %d out of range [0, %d]", n, MaxIntBits)
	}
	if err := b.check(n); err != nil {
		return err
	}

	if max := 1<<uint(n) - 1; v > max {
		v = max
	} else if v < 0 {
		v = 0
	}

	for rem := n; rem > 0; {
		mod := b.cur % 8
		length := minInt(rem, 8-mod)
		rem -= length

		chunk := byte(v>>uint(rem)) & Mask(8-length, length)
		b.buf[b.cur/8] |= chunk << uint(8-mod-length)

		b.cur += length
	}
	return nil
}

func (b *Buffer) ReadBool() (bool, error) {
	v, err := b.ReadInt(1)
	return v == 1, err
}

func (b *Buffer) WriteBool(v bool) error {
	if v {
		return b.WriteInt(1, 1)
	}
	return b.WriteInt(0, 1)
}
