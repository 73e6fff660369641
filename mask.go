package bitlib

// Mask returns a byte with the bits [index, index+length) set, where bit 0 is
// the most significant bit. Bits that would fall past the end of the byte are
// dropped.
func Mask(index, length int) byte {
	if index < 0 {
		index = 0
	}
	if index >= 8 || length <= 0 {
		return 0
	}
	m := byte(0xff) >> uint(index)
	if dec := 8 - (index + length); dec > 0 {
		m = m >> uint(dec) << uint(dec)
	}
	return m
}
