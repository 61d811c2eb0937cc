package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/mohanad/carpriced/rates"
)

const (
	AppName     = "carpriced"
	EnvFileName = "config.env"
)

// LoadEnvFile loads environment variables from the config file in the user's
// config directory, then from a local .env. Errors are ignored since neither
// file has to exist.
func LoadEnvFile() {
	if configBase, err := os.UserConfigDir(); err == nil {
		_ = godotenv.Load(filepath.Join(configBase, AppName, EnvFileName))
	}
	_ = godotenv.Load()
}

// Config holds everything the service reads from the environment.
type Config struct {
	ListenAddr   string
	ModelDir     string
	DBPath       string // empty disables the prediction history store
	RatesBaseURL string
	RatesTTL     time.Duration
}

// FromEnv builds a Config from environment variables, applying defaults for
// anything unset.
func FromEnv() Config {
	cfg := Config{
		ListenAddr:   envOr("LISTEN_ADDR", ":8080"),
		ModelDir:     envOr("MODEL_DIR", "model-artifacts"),
		DBPath:       os.Getenv("DB_PATH"),
		RatesBaseURL: envOr("RATES_BASE_URL", rates.DefaultBaseURL),
		RatesTTL:     time.Hour,
	}
	if v := os.Getenv("RATES_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RatesTTL = d
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
