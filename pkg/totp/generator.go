package totp

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/authenticator/pkg/async"
)

// Digits is the length of a generated code.
const Digits = 6

// Generator derives TOTP codes from Base32 secrets.
// It keeps no per-call state and is safe for concurrent use.
type Generator struct {
	mac    MAC
	now    func() time.Time
	logger *slog.Logger
	strict bool
}

// Option configures a Generator.
type Option func(*Generator) error

// WithMAC sets the HMAC-SHA1 engine. Pick it once, typically via SelectMAC.
func WithMAC(mac MAC) Option {
	return func(g *Generator) error {
		if mac == nil {
			return ErrNilMAC
		}
		g.mac = mac
		return nil
	}
}

// WithClock overrides the time source used by Generate and RemainingSeconds.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) error {
		if now == nil {
			return ErrNilClock
		}
		g.now = now
		return nil
	}
}

// WithLogger sets the logger for failed generations. Secrets are never logged.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) error {
		if logger == nil {
			return ErrNilLogger
		}
		g.logger = logger
		return nil
	}
}

// WithStrictSecrets rejects secrets that fail CheckSecret before decoding.
func WithStrictSecrets() Option {
	return func(g *Generator) error {
		g.strict = true
		return nil
	}
}

// New creates a Generator using the system clock and the engine EngineAuto
// resolves to: NativeMAC, or SoftMAC where the platform refuses SHA-1.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		mac:    defaultMAC(),
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Generate returns the code for the current time.
func (g *Generator) Generate(ctx context.Context, secret string) (string, error) {
	return g.GenerateAt(ctx, secret, g.now())
}

// GenerateAt returns the zero-padded code for secret at time t.
// Every error wraps ErrGenerationFailed; the code is empty whenever err != nil.
func (g *Generator) GenerateAt(ctx context.Context, secret string, t time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", g.fail(ctx, err)
	}

	counter, err := Counter(t)
	if err != nil {
		return "", g.fail(ctx, err)
	}

	s := Normalize(secret)
	if g.strict {
		if err := CheckSecret(s); err != nil {
			return "", g.fail(ctx, err)
		}
	}

	key, err := DecodeBase32(s)
	if err != nil {
		return "", g.fail(ctx, err)
	}

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	code := Truncate(g.mac.Sum(key, msg[:]), Digits)
	return fmt.Sprintf("%0*d", Digits, code), nil
}

// GenerateAsync runs GenerateAt in the background.
func (g *Generator) GenerateAsync(ctx context.Context, secret string, t time.Time) *async.Future[string] {
	return async.Async(ctx, secret, func(ctx context.Context, s string) (string, error) {
		return g.GenerateAt(ctx, s, t)
	})
}

// RemainingSeconds returns the seconds left in the current window by the generator's clock.
func (g *Generator) RemainingSeconds() int {
	return RemainingSecondsAt(g.now())
}

// Now returns the generator's current time.
func (g *Generator) Now() time.Time {
	return g.now()
}

func (g *Generator) fail(ctx context.Context, err error) error {
	g.logger.DebugContext(ctx, "totp generation failed", slog.Any("error", err))
	return fmt.Errorf("%w: %w", ErrGenerationFailed, err)
}

var defaultGenerator = sync.OnceValue(func() *Generator {
	return &Generator{
		mac:    defaultMAC(),
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
})

// GenerateTOTP returns the code for secret at the current time.
func GenerateTOTP(secret string) (string, error) {
	return defaultGenerator().Generate(context.Background(), secret)
}

// GenerateTOTPWithTime returns the code for secret at t.
func GenerateTOTPWithTime(secret string, t time.Time) (string, error) {
	return defaultGenerator().GenerateAt(context.Background(), secret, t)
}
