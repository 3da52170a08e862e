package authenticator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dmitrymomot/authenticator/core/config"
	"github.com/dmitrymomot/authenticator/core/logger"
	"github.com/dmitrymomot/authenticator/pkg/totp"
	"github.com/dmitrymomot/authenticator/pkg/watch"
)

// ErrMissingSecret is returned when neither TOTP_SECRET nor WithSecret supplies a secret.
var ErrMissingSecret = errors.New("secret is required")

type App struct {
	config    Config
	logger    *slog.Logger
	generator *totp.Generator
	watcher   *watch.Watcher
	renderer  watch.Renderer
	out       io.Writer
}

type AppOption func(*App) error

func NewApp(opts ...AppOption) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}
	return NewFromConfig(cfg, opts...)
}

// NewFromConfig wires the application from an already loaded Config.
// The HMAC engine is selected here, once per process.
func NewFromConfig(cfg Config, opts ...AppOption) (*App, error) {
	app := &App{
		config: cfg,
		out:    os.Stdout,
	}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		app.logger = logger.New(
			logger.WithEnvironment(app.config.Env, app.config.AppName),
			logger.WithLevel(logger.ParseLevel(app.config.LogLevel)),
			logger.WithOutput(os.Stderr),
		)
	}

	if strings.TrimSpace(app.config.Secret) == "" {
		return nil, ErrMissingSecret
	}
	if err := totp.CheckSecret(app.config.Secret); err != nil {
		return nil, err
	}

	if app.generator == nil {
		g, err := totp.NewFromConfig(app.config.TOTP, totp.WithLogger(app.logger))
		if err != nil {
			return nil, fmt.Errorf("failed to create generator: %w", err)
		}
		app.generator = g
	}

	if app.renderer == nil {
		app.renderer = NewTextRenderer(app.out)
	}

	if app.watcher == nil {
		w, err := watch.NewFromConfig(
			app.config.Watch,
			app.generator,
			app.config.Secret,
			app.renderer,
			watch.WithClock(app.generator.Now),
			watch.WithLogger(app.logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create watcher: %w", err)
		}
		app.watcher = w
	}

	app.logger.Debug("application configured",
		logger.Component("app"),
		logger.Engine(app.config.TOTP.Engine),
		logger.Duration(app.watcher.Interval()),
	)

	return app, nil
}

func WithLogger(logger *slog.Logger) AppOption {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

func WithSecret(secret string) AppOption {
	return func(app *App) error {
		if strings.TrimSpace(secret) == "" {
			return ErrMissingSecret
		}
		app.config.Secret = secret
		return nil
	}
}

func WithGenerator(g *totp.Generator) AppOption {
	return func(app *App) error {
		if g == nil {
			return errors.New("generator cannot be nil")
		}
		app.generator = g
		return nil
	}
}

func WithRenderer(r watch.Renderer) AppOption {
	return func(app *App) error {
		if r == nil {
			return errors.New("renderer cannot be nil")
		}
		app.renderer = r
		return nil
	}
}

func WithOutput(w io.Writer) AppOption {
	return func(app *App) error {
		if w == nil {
			return errors.New("output cannot be nil")
		}
		app.out = w
		return nil
	}
}

// Once writes the current code and countdown a single time.
func (app *App) Once(ctx context.Context) error {
	// One clock reading keeps the code and countdown in the same window.
	now := app.generator.Now()
	code, err := app.generator.GenerateAt(ctx, app.config.Secret, now)
	if err != nil {
		app.logger.ErrorContext(ctx, "code generation failed", logger.Component("app"), logger.Error(err))
		return err
	}
	_, err = fmt.Fprintf(app.out, "%s %d\n", code, totp.RemainingSecondsAt(now))
	return err
}

// Run displays the code until ctx is cancelled.
func (app *App) Run(ctx context.Context) error {
	app.logger.InfoContext(ctx, "watching", logger.Component("app"), logger.Event("start"))
	err := app.watcher.Run(ctx)
	if tr, ok := app.renderer.(*TextRenderer); ok {
		tr.Finish()
	}
	app.logger.InfoContext(ctx, "stopped", logger.Component("app"), logger.Event("stop"), logger.Error(err))
	return err
}
