package totp

import (
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // RFC 6238 mandates HMAC-SHA1
	"fmt"
	"strings"
	"sync"
)

// HMAC engine names accepted by SelectMAC.
const (
	EngineAuto     = "auto"
	EngineNative   = "native"
	EngineSoftware = "software"
)

// MAC computes HMAC-SHA1 over message with key.
// All implementations must return identical digests for identical input.
type MAC interface {
	Sum(key, message []byte) [DigestSize]byte
}

// NativeMAC delegates to crypto/hmac and crypto/sha1.
type NativeMAC struct{}

// Sum implements MAC.
func (NativeMAC) Sum(key, message []byte) [DigestSize]byte {
	m := hmac.New(sha1.New, key)
	m.Write(message)

	var out [DigestSize]byte
	copy(out[:], m.Sum(nil))
	return out
}

// SoftMAC is the RFC 2104 construction over the package's own SHA1.
// Use it where the platform crypto provider rejects SHA-1.
type SoftMAC struct{}

// Sum implements MAC.
func (SoftMAC) Sum(key, message []byte) [DigestSize]byte {
	if len(key) > BlockSize {
		d := SHA1(key)
		key = d[:]
	}

	var ipad, opad [BlockSize]byte
	copy(ipad[:], key)
	copy(opad[:], key)
	for i := range ipad {
		ipad[i] ^= 0x36
		opad[i] ^= 0x5c
	}

	inner := SHA1(append(ipad[:], message...))
	return SHA1(append(opad[:], inner[:]...))
}

// SelectMAC resolves an engine name to a MAC. Call it once at startup.
// EngineAuto (or an empty name) probes the native engine and falls back to
// SoftMAC when the platform refuses SHA-1 or disagrees with the RFC 2202 vector.
func SelectMAC(name string) (MAC, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineAuto:
		return defaultMAC(), nil
	case EngineNative:
		return NativeMAC{}, nil
	case EngineSoftware:
		return SoftMAC{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}

// defaultMAC is the EngineAuto choice, probed once per process.
var defaultMAC = sync.OnceValue(func() MAC {
	return probe(NativeMAC{})
})

// probe checks candidate against RFC 2202 test case 2 and returns SoftMAC if
// it panics or disagrees. Restricted crypto modes (e.g. GODEBUG=fips140=only)
// panic on short HMAC keys.
func probe(candidate MAC) (mac MAC) {
	defer func() {
		if recover() != nil {
			mac = SoftMAC{}
		}
	}()

	key := []byte("Jefe")
	msg := []byte("what do ya want for nothing?")

	var soft MAC = SoftMAC{}
	if candidate.Sum(key, msg) != soft.Sum(key, msg) {
		return soft
	}
	return candidate
}
