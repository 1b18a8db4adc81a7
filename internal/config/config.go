package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Bind        string
	Port        int
	DatabaseURL string
	RoomTTL     time.Duration
	Verbose     bool
}

func Default() Config {
	cfg := Config{
		Bind:        "0.0.0.0",
		Port:        getEnvInt("PORT", 8080),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RoomTTL:     1 * time.Hour,
	}
	return cfg
}

func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.Port)
	}
	if c.RoomTTL <= 0 {
		return fmt.Errorf("room TTL must be positive: %s", c.RoomTTL)
	}
	return nil
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return c.Bind + ":" + strconv.Itoa(c.Port)
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
