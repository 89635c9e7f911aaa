package config

import "time"

// SessionConfig представляет конфигурацию пользовательских сессий.
type SessionConfig struct {
	CookieName string        `yaml:"cookie_name" env:"GATEWAY_SESSION_COOKIE_NAME" env-default:"sid"`
	TTL        time.Duration `yaml:"ttl" env:"GATEWAY_SESSION_TTL" env-default:"168h"`
	Secure     bool          `yaml:"secure" env:"GATEWAY_SESSION_COOKIE_SECURE" env-default:"false"`
}
