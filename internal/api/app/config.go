package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer string // Issuer claim stamped into every token

	PrivateKeyPEM string // Optional: RSA private key PEM (signing); absent -> auth disabled
	PublicKeyPEM  string // Optional: RSA public key PEM (verification); absent -> auth disabled

	AccessTokenTTL  time.Duration // Optional: access token lifetime (default: 15m)
	RefreshTokenTTL time.Duration // Optional: refresh token lifetime (default: 720h)

	DatabaseFile string // Path to the SQLite database file (default: ./tally.db)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is merged in first when present, which keeps local dev
// setups out of shell profiles.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		Issuer:              getEnvOrDefault("TALLY_ISSUER", "tally"),
		PrivateKeyPEM:       os.Getenv("TALLY_PRIVATE_KEY"),
		PublicKeyPEM:        os.Getenv("TALLY_PUBLIC_KEY"),
		AccessTokenTTL:      getEnvDurationOrDefault("TALLY_ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL:     getEnvDurationOrDefault("TALLY_REFRESH_TOKEN_TTL", 30*24*time.Hour),
		DatabaseFile:        getEnvOrDefault("TALLY_DATABASE_FILE", "tally.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
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

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
