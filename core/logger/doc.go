// Package logger builds log/slog loggers and provides attribute helpers.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/authenticator/core/logger"
//
//	// Development: text format, debug level, stdout
//	log := logger.New(logger.WithDevelopment("totp"))
//
//	// Production: JSON format, info level, stdout
//	log := logger.New(logger.WithProduction("totp"))
//
//	// Pick by environment name and override the level
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, cfg.AppName),
//		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
//		logger.WithOutput(os.Stderr),
//	)
//
// # Attribute Helpers
//
//	log.Info("code rotated",
//		logger.Component("watch"),
//		logger.TimeStep(counter),
//		logger.Remaining(30),
//	)
//
//	log.Error("generation failed", logger.Error(err))
//
// Helpers return the empty slog.Attr for nil or empty values, which slog
// drops from the output.
package logger
