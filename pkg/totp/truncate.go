package totp

// Truncate applies RFC 4226 dynamic truncation to digest and reduces the
// 31-bit result modulo 10^digits. Values of digits above 10 leave the result
// unreduced; zero or negative digits yield 0.
func Truncate(digest [DigestSize]byte, digits int) int {
	offset := digest[DigestSize-1] & 0x0f
	value := uint32(digest[offset]&0x7f)<<24 |
		uint32(digest[offset+1])<<16 |
		uint32(digest[offset+2])<<8 |
		uint32(digest[offset+3])
	return int(int64(value) % pow10(digits))
}

func pow10(n int) int64 {
	n = max(0, min(n, 10))
	p := int64(1)
	for range n {
		p *= 10
	}
	return p
}
