package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the settings of the HTTP server
type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	BodyLimitMB  int
	FetchTimeout int // seconds, for drawings loaded by URL
}

// Load reads the configuration from environment variables
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
		BodyLimitMB:  getEnvAsInt("BODY_LIMIT_MB", 50),
		FetchTimeout: getEnvAsInt("FETCH_TIMEOUT", 30),
	}
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return ":" + c.Port
}

// BodyLimit returns the request body limit in bytes
func (c *Config) BodyLimit() int {
	return c.BodyLimitMB * 1024 * 1024
}

func (c *Config) ReadTimeoutDuration() time.Duration {
	return time.Duration(c.ReadTimeout) * time.Second
}

func (c *Config) WriteTimeoutDuration() time.Duration {
	return time.Duration(c.WriteTimeout) * time.Second
}

func (c *Config) FetchTimeoutDuration() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Second
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
