package authenticator

import (
	"github.com/dmitrymomot/authenticator/pkg/totp"
	"github.com/dmitrymomot/authenticator/pkg/watch"
)

type Config struct {
	TOTP  totp.Config
	Watch watch.Config

	AppName  string `env:"APP_NAME" envDefault:"totp"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Secret   string `env:"TOTP_SECRET"`
}
