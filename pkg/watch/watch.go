package watch

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/authenticator/core/logger"
	"github.com/dmitrymomot/authenticator/pkg/totp"
)

// Source produces a code for a secret at a point in time. *totp.Generator implements it.
type Source interface {
	GenerateAt(ctx context.Context, secret string, t time.Time) (string, error)
}

// Frame is one observation of the countdown and the code it belongs to.
type Frame struct {
	Code      string    // Empty when Err is set
	Remaining int       // Seconds left in the window, 1..30
	TimeStep  uint64    // Counter the code was derived from
	Rotated   bool      // Code was (re)generated on this tick
	At        time.Time // Clock reading for this tick
	Err       error     // Generation failure for the current window
}

// Renderer displays frames.
type Renderer interface {
	Render(Frame)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame)

// Render implements Renderer.
func (f RendererFunc) Render(fr Frame) { f(fr) }

// Config holds watcher configuration with environment variable support.
type Config struct {
	Interval time.Duration `env:"TOTP_POLL_INTERVAL" envDefault:"1s"`
}

// Option configures a Watcher.
type Option func(*Watcher) error

// WithInterval sets the polling cadence.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) error {
		if d <= 0 {
			return ErrInvalidInterval
		}
		w.interval = d
		return nil
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(w *Watcher) error {
		if now == nil {
			return ErrNilClock
		}
		w.now = now
		return nil
	}
}

// WithLogger sets the logger for rotations and failures.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) error {
		if l == nil {
			return ErrNilLogger
		}
		w.logger = l
		return nil
	}
}

// Watcher polls the countdown on a fixed cadence and regenerates the code
// whenever the time step advances. It owns the secret and the last displayed
// state; the code source stays stateless.
//
// A Watcher is driven by a single goroutine (Run or successive Tick calls)
// and is not safe for concurrent use.
type Watcher struct {
	source   Source
	secret   string
	renderer Renderer
	interval time.Duration
	now      func() time.Time
	logger   *slog.Logger

	started   bool
	code      string
	err       error
	step      uint64
	remaining int
}

// New creates a Watcher for secret, polling every second by default.
func New(source Source, secret string, renderer Renderer, opts ...Option) (*Watcher, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if renderer == nil {
		return nil, ErrNilRenderer
	}

	w := &Watcher{
		source:   source,
		secret:   secret,
		renderer: renderer,
		interval: time.Second,
		now:      time.Now,
		logger:   logger.Discard(),
	}

	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}

	return w, nil
}

// NewFromConfig creates a Watcher from configuration.
// Additional options override config values.
func NewFromConfig(cfg Config, source Source, secret string, renderer Renderer, opts ...Option) (*Watcher, error) {
	configOpts := make([]Option, 0, len(opts)+1)
	if cfg.Interval != 0 {
		configOpts = append(configOpts, WithInterval(cfg.Interval))
	}
	return New(source, secret, renderer, append(configOpts, opts...)...)
}

// Tick reads the clock once and returns the current frame.
// The code is regenerated on the first tick and whenever the time step
// changed since the previous tick, including after missed ticks.
func (w *Watcher) Tick(ctx context.Context) Frame {
	now := w.now()
	remaining := totp.RemainingSecondsAt(now)
	step, stepErr := totp.Counter(now)

	rotated := !w.started ||
		remaining > w.remaining ||
		(stepErr == nil && step != w.step)

	if rotated {
		w.code, w.err = w.source.GenerateAt(ctx, w.secret, now)
		if w.err != nil {
			w.code = ""
			w.logger.ErrorContext(ctx, "code generation failed",
				logger.Component("watch"),
				logger.Error(w.err),
			)
		} else {
			w.logger.DebugContext(ctx, "code rotated",
				logger.Component("watch"),
				logger.TimeStep(step),
				logger.Remaining(remaining),
			)
		}
	}

	w.started = true
	w.step = step
	w.remaining = remaining

	return Frame{
		Code:      w.code,
		Remaining: remaining,
		TimeStep:  step,
		Rotated:   rotated,
		At:        now,
		Err:       w.err,
	}
}

// Run renders a frame immediately and then once per interval until ctx is done.
// Cancellation is a normal stop and returns nil.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.renderer.Render(w.Tick(ctx))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.renderer.Render(w.Tick(ctx))
		}
	}
}

// Interval returns the polling cadence.
func (w *Watcher) Interval() time.Duration {
	return w.interval
}
