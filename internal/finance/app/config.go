package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL string // Required: postgres connection string
	DBMaxConns  int    // Optional: connection pool size (default: 5)

	RedisAddr     string // Optional: redis host:port for sessions (default: localhost:6379)
	RedisPassword string // Optional: redis password
	RedisDB       int    // Optional: redis database number (default: 0)

	SessionTTL  time.Duration // Optional: session inactivity timeout (default: 60s)
	PepperFile  string        // Optional: path to the password hashing pepper file (default: ./pepper)
	HashWorkers int           // Optional: concurrent password hashing cap (default: GOMAXPROCS-1)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		DBMaxConns:          getEnvIntOrDefault("DB_MAX_CONNS", 5),
		RedisAddr:           getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       os.Getenv("REDIS_PASSWORD"),
		RedisDB:             getEnvIntOrDefault("REDIS_DB", 0),
		SessionTTL:          getEnvDurationOrDefault("SESSION_TTL", 60*time.Second),
		PepperFile:          getEnvOrDefault("PEPPER_FILE", "pepper"),
		HashWorkers:         getEnvIntOrDefault("HASH_WORKERS", 0),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
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

	// Accept durations ("90s", "5m") and bare integers meaning seconds.
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
