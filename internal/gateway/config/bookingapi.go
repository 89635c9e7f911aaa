package config

import "time"

// BookingAPIConfig представляет конфигурацию для клиента Booking API.
type BookingAPIConfig struct {
	BaseURL        string        `yaml:"base_url" env:"GATEWAY_BOOKING_API_BASE_URL" env-default:"http://localhost:9000/api/v1"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"GATEWAY_BOOKING_API_REQUEST_TIMEOUT" env-default:"30s"`
	MaxIdleConns   int           `yaml:"max_idle_conns" env:"GATEWAY_BOOKING_API_MAX_IDLE_CONNS" env-default:"32"`
}
