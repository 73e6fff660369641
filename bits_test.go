package bitlib

import (
	"math"
	"testing"

	"github.com/zeebo/assert"
	"github.com/zeebo/pcg"
)

func randBytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(pcg.Uint32())
	}
	return out
}

func TestBits(t *testing.T) {
	t.Run("Aligned", func(t *testing.T) {
		b := New([]byte{0xab, 0xcd, 0xef})

		got, err := b.ReadBytes(16)
		assert.NoError(t, err)
		assert.DeepEqual(t, got, []byte{0xab, 0xcd})
		assert.Equal(t, b.Cursor(), 16)

		got, err = b.ReadBytes(4)
		assert.NoError(t, err)
		assert.DeepEqual(t, got, []byte{0xe0})
	})

	t.Run("Misaligned", func(t *testing.T) {
		b := New([]byte{0xff, 0x00, 0xff})
		b.SetCursor(4)
		got, err := b.ReadBytes(8)
		assert.NoError(t, err)
		assert.DeepEqual(t, got, []byte{0xf0})
		assert.Equal(t, b.Cursor(), 12)

		b = New([]byte{0xab, 0xcd})
		b.SetCursor(4)
		got, err = b.ReadBytes(8)
		assert.NoError(t, err)
		assert.DeepEqual(t, got, []byte{0xbc})

		b.SetCursor(3)
		got, err = b.ReadBytes(5)
		assert.NoError(t, err)
		assert.DeepEqual(t, got, []byte{0x58})

		b.SetCursor(1)
		got, err = b.ReadBytes(14)
		assert.NoError(t, err)
		assert.DeepEqual(t, got, []byte{0x57, 0x98})
	})

	t.Run("Write Misaligned", func(t *testing.T) {
		b := NewSize(24)
		b.SetCursor(4)
		assert.NoError(t, b.WriteBytes([]byte{0xbc}, 8))
		assert.DeepEqual(t, b.Data(), []byte{0x0b, 0xc0, 0x00})

		assert.NoError(t, b.WriteBytes([]byte{0xf0}, 4))
		assert.DeepEqual(t, b.Data(), []byte{0x0b, 0xcf, 0x00})
		assert.Equal(t, b.Cursor(), 16)
	})

	t.Run("Padding", func(t *testing.T) {
		b := NewSize(16)
		assert.NoError(t, b.WriteBytesPad([]byte{0x12}, 16, true))
		assert.DeepEqual(t, b.Data(), []byte{0x00, 0x12})

		b = NewSize(16)
		assert.NoError(t, b.WriteBytesPad([]byte{0x12}, 16, false))
		assert.DeepEqual(t, b.Data(), []byte{0x12, 0x00})

		b = NewSize(16)
		assert.NoError(t, b.WriteBytes([]byte{1, 2, 3}, 16))
		assert.DeepEqual(t, b.Data(), []byte{1, 2})

		b = NewSize(20)
		b.SetCursor(2)
		assert.NoError(t, b.WriteBytes([]byte{0xff}, 12))
		assert.DeepEqual(t, b.Data(), []byte{0x00, 0x3c, 0x00})
	})

	t.Run("Preserves Neighbors", func(t *testing.T) {
		b := New([]byte{0x0f})
		assert.NoError(t, b.WriteBytes([]byte{0xa0}, 4))
		assert.DeepEqual(t, b.Data(), []byte{0xaf})

		b = New([]byte{0x81, 0x00})
		b.SetCursor(1)
		assert.NoError(t, b.WriteBytes([]byte{0xfc}, 6))
		assert.DeepEqual(t, b.Data(), []byte{0xff, 0x00})
	})

	t.Run("Zero", func(t *testing.T) {
		b := NewSize(8)
		b.SetCursor(3)
		got, err := b.ReadBytes(0)
		assert.NoError(t, err)
		assert.Equal(t, len(got), 0)
		assert.NoError(t, b.WriteBytes(nil, 0))
		assert.Equal(t, b.Cursor(), 3)
	})

	t.Run("Out Of Range", func(t *testing.T) {
		b := NewSize(12)
		b.SetCursor(9)

		_, err := b.ReadBytes(8)
		assert.That(t, RangeError.Has(err))
		assert.That(t, RangeError.Has(b.WriteBytes([]byte{0xff}, 8)))
		assert.Equal(t, b.Cursor(), 9)
		assert.DeepEqual(t, b.Data(), []byte{0, 0})

		// the last byte is addressable even past the declared size
		assert.NoError(t, b.WriteBytes([]byte{0xfe}, 7))

		_, err = b.ReadBytes(-1)
		assert.That(t, WidthError.Has(err))
	})

	t.Run("Huge", func(t *testing.T) {
		b := NewSize(16)
		b.SetCursor(1)

		_, err := b.ReadBytes(math.MaxInt)
		assert.That(t, RangeError.Has(err))
		assert.That(t, RangeError.Has(b.WriteBytes([]byte{1}, math.MaxInt)))
		_, err = b.ReadInt(MaxIntBits)
		assert.That(t, RangeError.Has(err))
		assert.Equal(t, b.Cursor(), 1)

		b.SetCursor(math.MaxInt)
		_, err = b.ReadBytes(8)
		assert.That(t, RangeError.Has(err))
		assert.That(t, RangeError.Has(b.WriteBytes([]byte{1}, 8)))
		_, err = b.ReadBool()
		assert.That(t, RangeError.Has(err))
		assert.Equal(t, b.Cursor(), math.MaxInt)
		assert.DeepEqual(t, b.Data(), []byte{0, 0})
	})

	t.Run("Fuzz", func(t *testing.T) {
		for n := 0; n <= 80; n++ {
			for align := 0; align < 8; align++ {
				exp := randBytes(byteLen(n))
				if r := n % 8; r != 0 {
					exp[len(exp)-1] &= Mask(0, r)
				}

				b := NewSize(align + n + 8)
				b.SetCursor(align)
				assert.NoError(t, b.WriteBytes(exp, n))
				assert.Equal(t, b.Cursor(), align+n)

				b.SetCursor(align)
				got, err := b.ReadBytes(n)
				assert.NoError(t, err)
				assert.DeepEqual(t, got, exp)
			}
		}
	})

	t.Run("Fuzz Sequence", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			var widths []int
			var exps [][]byte
			total := 0
			for j := 0; j < 20; j++ {
				n := int(pcg.Uint32n(40))
				exp := randBytes(byteLen(n))
				if r := n % 8; r != 0 {
					exp[len(exp)-1] &= Mask(0, r)
				}
				widths, exps = append(widths, n), append(exps, exp)
				total += n
			}

			b := NewSize(total)
			for j, n := range widths {
				assert.NoError(t, b.WriteBytes(exps[j], n))
			}

			r := New(b.Data())
			for j, n := range widths {
				got, err := r.ReadBytes(n)
				assert.NoError(t, err)
				assert.DeepEqual(t, got, exps[j])
			}
		}
	})
}

func BenchmarkBits(b *testing.B) {
	buf := NewSize(4096 * 8)
	data := randBytes(16)

	b.Run("ReadBytes", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			buf.SetCursor(int(pcg.Uint32n(4000 * 8)))
			_, _ = buf.ReadBytes(100)
		}
	})

	b.Run("WriteBytes", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			buf.SetCursor(int(pcg.Uint32n(4000 * 8)))
			_ = buf.WriteBytes(data, 100)
		}
	})
}
