package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	BridgeURL    string
	BridgeSecret string
	DBPath       string
	SyncInterval time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	syncInterval := 600 * time.Second
	if raw := os.Getenv("SYNC_INTERVAL"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			syncInterval = time.Duration(parsed) * time.Second
		}
	}

	return &Config{
		Port:         getEnv("PORT", "8080"),
		BridgeURL:    getEnv("BRIDGE_URL", ""),
		BridgeSecret: getEnv("BRIDGE_SECRET", ""),
		DBPath:       getEnv("DB_PATH", "learner.db"),
		SyncInterval: syncInterval,
	}
}

// Validate reports missing required settings. These are fatal at
// startup only; nothing inside the running service re-checks them.
func (c *Config) Validate() error {
	if c.BridgeURL == "" {
		return fmt.Errorf("BRIDGE_URL is required")
	}
	if c.BridgeSecret == "" {
		return fmt.Errorf("BRIDGE_SECRET is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
