package totp

import (
	"fmt"
	"strings"
	"unicode"
)

// MinSecretLength is the shortest normalized secret accepted by validation.
const MinSecretLength = 16

// Replaces digits that are commonly mistyped for Base32 letters.
var digitReplacer = strings.NewReplacer("0", "O", "1", "I")

// Normalize uppercases raw, drops whitespace and dashes, and maps the digits
// 0 and 1 to the letters O and I. Normalize(Normalize(s)) == Normalize(s).
//
// The digit substitution is a transcription-recovery heuristic applied to every
// input; neither 0 nor 1 belongs to the Base32 alphabet, so no valid secret is altered.
func Normalize(raw string) string {
	s := strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToUpper(raw))
	return digitReplacer.Replace(s)
}

// CheckSecret normalizes raw and reports why it cannot be used as a secret.
// Every returned error wraps ErrMalformedSecret.
func CheckSecret(raw string) error {
	s := Normalize(raw)
	if s == "" {
		return fmt.Errorf("%w: empty", ErrMalformedSecret)
	}
	// Positions match DecodeBase32, which sees the input without padding.
	for i, r := range strings.ReplaceAll(s, "=", "") {
		if !isBase32(r) {
			return fmt.Errorf("%w: %w", ErrMalformedSecret, &DecodeError{Char: r, Pos: i})
		}
	}
	if len(s) < MinSecretLength {
		return fmt.Errorf("%w: length %d is shorter than %d", ErrMalformedSecret, len(s), MinSecretLength)
	}
	return nil
}

// ValidateSecret reports whether raw, once normalized, consists only of Base32
// characters and padding and is at least MinSecretLength long.
func ValidateSecret(raw string) bool {
	return CheckSecret(raw) == nil
}
