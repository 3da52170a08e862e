// Package totp implements RFC 6238 Time-based One-Time Passwords with
// 30-second steps, 6-digit codes and HMAC-SHA1.
//
// The package is stateless: every code is derived from the secret and a
// timestamp, nothing is cached between calls.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/authenticator/pkg/totp"
//
//	if !totp.ValidateSecret(input) {
//		return errors.New("secret looks truncated or mistyped")
//	}
//
//	code, err := totp.GenerateTOTP(input)
//	if err != nil {
//		return err // never a placeholder code
//	}
//
//	fmt.Printf("%s (%ds left)\n", code, totp.RemainingSeconds())
//
// # Secret Normalization
//
// Secrets are uppercased, stripped of whitespace and dashes, and the digits
// 0 and 1 are read as the letters O and I:
//
//	totp.Normalize("jbsw y3dp-ehpk 3pxp") // "JBSWY3DPEHPK3PXP"
//
// ValidateSecret accepts normalized secrets of at least 16 characters over
// A-Z, 2-7 and "=". Generation itself only requires the secret to decode.
//
// # HMAC Engines
//
// The MAC interface abstracts HMAC-SHA1. NativeMAC uses crypto/hmac; SoftMAC
// is a self-contained RFC 2104 / RFC 3174 implementation for environments
// where SHA-1 is unavailable. Both produce identical digests. Select one at
// startup and pass it to the generator:
//
//	mac, err := totp.SelectMAC(totp.EngineAuto)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gen, err := totp.New(totp.WithMAC(mac), totp.WithLogger(log))
//
// Or from environment configuration:
//
//	var cfg totp.Config
//	config.MustLoad(&cfg)
//	gen, err := totp.NewFromConfig(cfg)
//
// # Time-based Testing
//
// Generate codes and countdowns for specific times in tests:
//
//	testTime := time.Unix(59, 0)
//	code, err := gen.GenerateAt(ctx, "JBSWY3DPEHPK3PXP", testTime)
//	left := totp.RemainingSecondsAt(testTime) // 1
//
// # Errors
//
// Generation errors wrap ErrGenerationFailed together with the cause:
//
//	_, err := gen.Generate(ctx, "not base32!")
//	errors.Is(err, totp.ErrGenerationFailed) // true
//	errors.Is(err, totp.ErrInvalidCharacter) // true
//
//	var de *totp.DecodeError
//	if errors.As(err, &de) {
//		fmt.Printf("bad character %q at %d\n", de.Char, de.Pos)
//	}
package totp
