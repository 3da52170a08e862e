package totp

// Config holds generator configuration with environment variable support.
type Config struct {
	// HMAC engine: auto, native or software
	Engine string `env:"TOTP_HMAC_ENGINE" envDefault:"auto"`

	// Reject secrets failing validation before decoding
	StrictSecrets bool `env:"TOTP_STRICT_SECRETS" envDefault:"false"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{Engine: EngineAuto}
}

// NewFromConfig creates a Generator from configuration.
// The HMAC engine is resolved here, once. Additional options override config values.
func NewFromConfig(cfg Config, opts ...Option) (*Generator, error) {
	mac, err := SelectMAC(cfg.Engine)
	if err != nil {
		return nil, err
	}

	configOpts := []Option{WithMAC(mac)}
	if cfg.StrictSecrets {
		configOpts = append(configOpts, WithStrictSecrets())
	}

	return New(append(configOpts, opts...)...)
}
