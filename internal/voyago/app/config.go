package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTSecret string // Required: HMAC secret for session tokens (min 32 bytes)
	Issuer    string // Optional: issuer claim for session tokens (default: voyago)

	AmadeusClientID     string        // Required: OAuth2 client id for the Amadeus API
	AmadeusClientSecret string        // Required: OAuth2 client secret for the Amadeus API
	AmadeusBaseURL      string        // Optional: Amadeus API base URL (default: sandbox)
	UpstreamTimeout     time.Duration // Optional: per-call budget for upstream requests (default: 10s)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./voyago.db)
	PepperFile          string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	SessionTTL          time.Duration // Optional: session token lifetime (default: 1h)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

var (
	errMissingJWTSecret          = errors.New("VOYAGO_JWT_SECRET is required")
	errMissingAmadeusCredentials = errors.New("AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET are required")
)

func LoadConfig() (Config, error) {
	cfg := Config{
		JWTSecret:           os.Getenv("VOYAGO_JWT_SECRET"),
		Issuer:              getEnvOrDefault("VOYAGO_ISSUER", "voyago"),
		AmadeusClientID:     os.Getenv("AMADEUS_CLIENT_ID"),
		AmadeusClientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
		AmadeusBaseURL:      os.Getenv("AMADEUS_BASE_URL"), // Empty means the client's sandbox default
		UpstreamTimeout:     getEnvDurationOrDefault("UPSTREAM_TIMEOUT", 10*time.Second),
		DatabaseFile:        getEnvOrDefault("VOYAGO_DATABASE_FILE", "voyago.db"),
		PepperFile:          getEnvOrDefault("VOYAGO_PEPPER_FILE", "pepper"),
		SessionTTL:          getEnvDurationOrDefault("VOYAGO_SESSION_TTL", time.Hour),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.JWTSecret == "" {
		return Config{}, errMissingJWTSecret
	}
	if cfg.AmadeusClientID == "" || cfg.AmadeusClientSecret == "" {
		return Config{}, errMissingAmadeusCredentials
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Accept duration strings (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Accept bare integers as seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
