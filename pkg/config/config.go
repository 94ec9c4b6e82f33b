// Package config loads engine configuration from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// LoadEnv loads variables from a local .env file if one exists.
func LoadEnv() {
	_ = godotenv.Load()
}

// GetEnv gets an environment variable with a default value.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt gets an integer environment variable with a default value.
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetEnvFloat gets a float environment variable with a default value.
func GetEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetEnvBool gets a boolean environment variable with a default value.
func GetEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetLogLevel gets the log level from the environment.
func GetLogLevel() logrus.Level {
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Config holds engine settings resolved from the environment.
type Config struct {
	StoreBackend string  // memory | file | sqlite
	DataPath     string  // file/sqlite data location
	BatchSize    int     // posts per weekly batch
	MinScore     float64 // acceptance threshold
	MaxAttempts  int
	RandomSeed   int64 // 0 means time-seeded
	EventLogPath string
}

// FromEnv resolves a Config from the environment.
func FromEnv() Config {
	seed := int64(GetEnvInt("THREADLOOM_SEED", 0))
	return Config{
		StoreBackend: GetEnv("THREADLOOM_STORE", "file"),
		DataPath:     GetEnv("THREADLOOM_DATA", "data"),
		BatchSize:    GetEnvInt("THREADLOOM_BATCH_SIZE", 3),
		MinScore:     GetEnvFloat("THREADLOOM_MIN_SCORE", 7.0),
		MaxAttempts:  GetEnvInt("THREADLOOM_MAX_ATTEMPTS", 5),
		RandomSeed:   seed,
		EventLogPath: GetEnv("THREADLOOM_EVENT_LOG", ""),
	}
}
