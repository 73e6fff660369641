package bitlib

// ReadBytes reads n bits into ceil(n/8) bytes and advances the cursor by n.
// The bits occupy the most significant end of the result and any unused
// trailing bits of the last byte are zero.
func (b *Buffer) ReadBytes(n int) ([]byte, error) {
	if err := b.check(n); err != nil {
		return nil, err
	}

	out := make([]byte, byteLen(n))

	if b.cur%8 == 0 {
		copy(out, b.buf[b.cur/8:])
		if r := n % 8; r != 0 {
			out[len(out)-1] &= Mask(0, r)
		}
		b.cur += n
		return out, nil
	}

	for idx, end := 0, b.cur+n; b.cur < end; {
		src, dst := b.cur%8, idx%8
		length := minInt(end-b.cur, minInt(8-src, 8-dst))

		val := b.buf[b.cur/8] & Mask(src, length)
		out[idx/8] |= realign(val, src, dst)

		b.cur += length
		idx += length
	}

	return out, nil
}

// WriteBytes writes the first n bits of value, left padded with zero bytes
// when value is shorter than ceil(n/8) bytes.
func (b *Buffer) WriteBytes(value []byte, n int) error {
	return b.WriteBytesPad(value, n, true)
}

// WriteBytesPad writes n bits of value at the cursor and advances it by n.
// value is fit to ceil(n/8) bytes first: extra bytes are dropped from the end,
// and missing bytes are zeros inserted before or after value depending on
// padBefore. Bits of the buffer outside of the written range are preserved.
func (b *Buffer) WriteBytesPad(value []byte, n int, padBefore bool) error {
	if err := b.check(n); err != nil {
		return err
	}

	tab := make([]byte, byteLen(n))
	if pad := len(tab) - len(value); pad > 0 && padBefore {
		copy(tab[pad:], value)
	} else {
		copy(tab, value)
	}

	if b.cur%8 == 0 {
		pos, full := b.cur/8, n/8
		copy(b.buf[pos:], tab[:full])
		if r := n % 8; r != 0 {
			m := Mask(0, r)
			b.buf[pos+full] = b.buf[pos+full]&^m | tab[full]&m
		}
		b.cur += n
		return nil
	}

	for idx, end := 0, b.cur+n; b.cur < end; {
		dst, src := b.cur%8, idx%8
		length := minInt(end-b.cur, minInt(8-src, 8-dst))

		val := tab[idx/8] & Mask(src, length)
		b.buf[b.cur/8] |= realign(val, src, dst)

		b.cur += length
		idx += length
	}

	return nil
}

// realign moves bits that start at offset src within a byte to start at
// offset dst.
func realign(val byte, src, dst int) byte {
	if src >= dst {
		return val << uint(src-dst)
	}
	return val >> uint(dst-src)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
