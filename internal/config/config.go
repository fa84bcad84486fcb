package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/citypairs/flight-explorer/internal/flights"
)

type AppConfig struct {
	// DatasetPath is the local CSV export; ignored when DatasetURL is set.
	DatasetPath string

	// DatasetURL, when set, downloads the export over HTTP instead.
	DatasetURL string

	// RefreshInterval controls scheduled reloads; 0 disables them and the
	// dataset is loaded once at startup.
	RefreshInterval time.Duration

	// PairDirection is how city criteria match a record's two endpoints.
	PairDirection flights.Direction

	// StoreMaxHistory caps retained snapshots across reloads.
	StoreMaxHistory int

	// HTTPTimeout applies to dataset downloads.
	HTTPTimeout time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.DatasetPath = getenvDefault("DATASET_PATH", "dom_city_pair.csv")
	cfg.DatasetURL = os.Getenv("DATASET_URL")

	// Scheduled reloads are off by default; the export updates monthly at
	// most, so a fixed snapshot is the normal mode.
	intervalStr := getenvDefault("REFRESH_INTERVAL", "0")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	direction, err := flights.ParseDirection(os.Getenv("PAIR_DIRECTION"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAIR_DIRECTION: %w", err)
	}
	cfg.PairDirection = direction

	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 4)

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
