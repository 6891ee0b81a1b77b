// Package config loads process settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"restaurant/pkg/logger"
)

// Config holds all configuration for the restaurant service.
type Config struct {
	HTTP   HTTPConfig
	Log    LogConfig
	Redis  RedisConfig
	OTel   OTelConfig
	Orders OrdersConfig
}

// HTTPConfig holds listener settings. TLS is used when both files are set.
type HTTPConfig struct {
	Addr    string
	TLSCert string
	TLSKey  string
}

// LogConfig holds the minimum log level.
type LogConfig struct {
	Level logger.Level
}

// RedisConfig holds event publishing settings. An empty Addr disables publishing.
type RedisConfig struct {
	Addr    string
	Channel string
}

// OTelConfig holds tracing settings. An empty Host disables span export.
type OTelConfig struct {
	Host        string
	Probability float64
}

// OrdersConfig holds the completed-order policy.
type OrdersConfig struct {
	LockCompleted bool
}

// Load reads a .env file when present and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	level, err := logger.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	prob, err := strconv.ParseFloat(getEnv("OTEL_PROBABILITY", "1.0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OTEL_PROBABILITY: %w", err)
	}
	if prob < 0 || prob > 1 {
		return nil, fmt.Errorf("invalid OTEL_PROBABILITY: %v is outside [0, 1]", prob)
	}
	lock, err := strconv.ParseBool(getEnv("HMS_LOCK_COMPLETED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid HMS_LOCK_COMPLETED: %w", err)
	}

	return &Config{
		HTTP: HTTPConfig{
			Addr:    getEnv("HTTP_ADDR", ":8443"),
			TLSCert: getEnv("TLS_CERT", ""),
			TLSKey:  getEnv("TLS_KEY", ""),
		},
		Log: LogConfig{Level: level},
		Redis: RedisConfig{
			Addr:    getEnv("REDIS_ADDR", ""),
			Channel: getEnv("REDIS_CHANNEL", "restaurant.events"),
		},
		OTel: OTelConfig{
			Host:        getEnv("OTEL_HOST", ""),
			Probability: prob,
		},
		Orders: OrdersConfig{LockCompleted: lock},
	}, nil
}

// TLS reports whether both certificate and key are configured.
func (c HTTPConfig) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
