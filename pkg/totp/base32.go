package totp

import "strings"

const base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

func isBase32(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= '2' && r <= '7')
}

// DecodeBase32 decodes text over the RFC 4648 alphabet A-Z2-7.
// Padding characters are removed first. Bits left over after the last full
// byte are discarded, so the result is floor(5*n/8) bytes long.
// An unknown character yields a *DecodeError.
func DecodeBase32(text string) ([]byte, error) {
	text = strings.ReplaceAll(text, "=", "")
	out := make([]byte, 0, len(text)*5/8)

	var (
		buf  uint32 // pending bits, right-aligned
		bits uint
	)
	for i, r := range text {
		idx := strings.IndexRune(base32Alphabet, r)
		if idx < 0 {
			return nil, &DecodeError{Char: r, Pos: i}
		}
		buf = buf<<5 | uint32(idx)
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(buf>>bits))
			buf &= 1<<bits - 1
		}
	}
	return out, nil
}
