// Package config loads runtime settings from environment variables.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port           string
	APIKey         string
	RedisAddr      string
	UseMemoryStore bool
}

// Load reads the configuration from the environment, applying defaults
// where a variable is unset.
func Load() Config {
	var cfg Config
	cfg.Port = envOrDefault("PORT", "8080")
	cfg.APIKey = os.Getenv("API_KEY")
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.UseMemoryStore = envOrDefaultBool("USE_MEMORY_STORE", false)
	return cfg
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		return v == "true"
	}
	return def
}
