package totp

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCharacter indicates a character outside the Base32 alphabet.
	ErrInvalidCharacter = errors.New("invalid base32 character")

	// ErrMalformedSecret indicates a secret that fails validation before decoding.
	ErrMalformedSecret = errors.New("malformed secret")

	// ErrGenerationFailed wraps every failure returned by code generation.
	ErrGenerationFailed = errors.New("totp generation failed")

	// ErrInvalidTimestamp indicates a timestamp before the Unix epoch.
	ErrInvalidTimestamp = errors.New("timestamp before unix epoch")

	// ErrUnknownEngine indicates an unsupported HMAC engine name.
	ErrUnknownEngine = errors.New("unknown hmac engine")

	// ErrNilMAC indicates a nil HMAC engine passed to an option.
	ErrNilMAC = errors.New("hmac engine cannot be nil")

	// ErrNilLogger indicates a nil logger passed to an option.
	ErrNilLogger = errors.New("logger cannot be nil")

	// ErrNilClock indicates a nil clock passed to an option.
	ErrNilClock = errors.New("clock cannot be nil")
)

// DecodeError reports the first character that is not part of the Base32 alphabet.
type DecodeError struct {
	Char rune // Offending character
	Pos  int  // Byte offset in the padding-stripped input
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %q at position %d", ErrInvalidCharacter, e.Char, e.Pos)
}

// Unwrap allows errors.Is(err, ErrInvalidCharacter).
func (e *DecodeError) Unwrap() error {
	return ErrInvalidCharacter
}
