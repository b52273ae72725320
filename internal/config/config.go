package config

import (
	"os"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT session tokens
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// Telegram WebApp identity
	TelegramBotToken   string
	TelegramAuthMaxAge time.Duration

	// AllowGuest lets clients without valid Telegram init data sign in
	// as the synthesized placeholder user (development / standalone browser).
	AllowGuest bool

	// SessionBackend selects the session variant: "remote" (PostgreSQL-backed
	// with local fallback) or "local" (fully local, embedded habit list).
	SessionBackend string

	// LocalStorePath is the BadgerDB directory for the local record store.
	LocalStorePath string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "soulquest_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m")),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h")),

		TelegramBotToken:   getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramAuthMaxAge: parseDuration(getEnv("TELEGRAM_AUTH_MAX_AGE", "24h")),

		AllowGuest: parseBool(getEnv("ALLOW_GUEST", "true")),

		SessionBackend: getEnv("SESSION_BACKEND", "remote"),
		LocalStorePath: getEnv("LOCAL_STORE_PATH", "./data/localstore"),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

// LocalOnly reports whether the service runs without a database.
func (c *Config) LocalOnly() bool {
	return c.SessionBackend == "local"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

func parseBool(s string) bool {
	return s == "true" || s == "1" || s == "yes"
}
