package totp

import (
	"encoding/binary"
	"math/bits"
)

const (
	// DigestSize is the size of a SHA-1 digest in bytes.
	DigestSize = 20

	// BlockSize is the SHA-1 block size in bytes.
	BlockSize = 64
)

const (
	_K0 = 0x5A827999
	_K1 = 0x6ED9EBA1
	_K2 = 0x8F1BBCDC
	_K3 = 0xCA62C1D6
)

// SHA1 returns the RFC 3174 digest of data.
// It is the portable engine behind SoftMAC and does not depend on crypto/sha1.
func SHA1(data []byte) [DigestSize]byte {
	h := [5]uint32{0x67452301, 0xEFCDAB89, 0x98BADCFE, 0x10325476, 0xC3D2E1F0}

	msg := sha1Pad(data)
	for len(msg) > 0 {
		sha1Block(&h, msg[:BlockSize])
		msg = msg[BlockSize:]
	}

	var out [DigestSize]byte
	for i, v := range h {
		binary.BigEndian.PutUint32(out[i*4:], v)
	}
	return out
}

// sha1Pad appends 0x80, zeros up to 56 mod 64, and the 64-bit message length in bits.
func sha1Pad(data []byte) []byte {
	n := len(data)
	zeros := 55 - n%BlockSize
	if zeros < 0 {
		zeros += BlockSize
	}

	msg := make([]byte, n+1+zeros+8)
	copy(msg, data)
	msg[n] = 0x80
	binary.BigEndian.PutUint64(msg[len(msg)-8:], uint64(n)<<3)
	return msg
}

func sha1Block(h *[5]uint32, p []byte) {
	var w [80]uint32
	for i := 0; i < 16; i++ {
		w[i] = binary.BigEndian.Uint32(p[i*4:])
	}
	for i := 16; i < 80; i++ {
		w[i] = bits.RotateLeft32(w[i-3]^w[i-8]^w[i-14]^w[i-16], 1)
	}

	a, b, c, d, e := h[0], h[1], h[2], h[3], h[4]
	for i := 0; i < 80; i++ {
		var f, k uint32
		switch {
		case i < 20:
			f, k = b&c|^b&d, _K0
		case i < 40:
			f, k = b^c^d, _K1
		case i < 60:
			f, k = b&c|b&d|c&d, _K2
		default:
			f, k = b^c^d, _K3
		}
		t := bits.RotateLeft32(a, 5) + f + e + w[i] + k
		a, b, c, d, e = t, a, bits.RotateLeft32(b, 30), c, d
	}

	h[0] += a
	h[1] += b
	h[2] += c
	h[3] += d
	h[4] += e
}
