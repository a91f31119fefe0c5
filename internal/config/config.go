// Package config загружает конфигурацию приложения из переменных окружения.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config хранит конфигурацию всего приложения.
// Загружается один раз при старте из переменных окружения и считается неизменяемой.
type Config struct {
	// Database
	DatabaseURL string

	// Rate Limit
	RateLimitGeneral  int // запросов в минуту на клиента, API в целом
	RateLimitOrders   int // запросов в минуту на клиента, оформление заказов
	RateLimitCleanup  time.Duration

	// Worker
	MaintenanceInterval time.Duration

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string
}

// Load читает Config из переменных окружения.
// Возвращает ошибку, если не заданы обязательные переменные.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("required environment variables are not set: [DATABASE_URL]")
	}

	// Необязательные переменные со значениями по умолчанию
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitOrders = getEnvInt("RATE_LIMIT_ORDERS", 10)
	cfg.RateLimitCleanup = getEnvDuration("RATE_LIMIT_CLEANUP", 5*time.Minute)
	cfg.MaintenanceInterval = getEnvDuration("MAINTENANCE_INTERVAL", 24*time.Hour)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
