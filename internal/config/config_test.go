package config

import (
	"testing"
	"time"

	"github.com/citypairs/flight-explorer/internal/flights"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DATASET_PATH", "DATASET_URL", "REFRESH_INTERVAL",
		"PAIR_DIRECTION", "STORE_MAX_HISTORY", "HTTP_TIMEOUT", "PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DatasetPath != "dom_city_pair.csv" {
		t.Fatalf("unexpected dataset path %q", cfg.DatasetPath)
	}
	if cfg.DatasetURL != "" {
		t.Fatalf("expected no dataset url, got %q", cfg.DatasetURL)
	}
	if cfg.RefreshInterval != 0 {
		t.Fatalf("expected refresh disabled, got %v", cfg.RefreshInterval)
	}
	if cfg.PairDirection != flights.DirectionEither {
		t.Fatalf("expected either direction, got %q", cfg.PairDirection)
	}
	if cfg.StoreMaxHistory != 4 {
		t.Fatalf("expected history 4, got %d", cfg.StoreMaxHistory)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("expected 30s timeout, got %v", cfg.HTTPTimeout)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %q", cfg.Port)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATASET_PATH", "exports/2024.csv")
	t.Setenv("DATASET_URL", "https://example.org/dom_city_pair.csv")
	t.Setenv("REFRESH_INTERVAL", "12h")
	t.Setenv("PAIR_DIRECTION", "directed")
	t.Setenv("STORE_MAX_HISTORY", "8")
	t.Setenv("HTTP_TIMEOUT", "90s")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DatasetPath != "exports/2024.csv" {
		t.Fatalf("unexpected dataset path %q", cfg.DatasetPath)
	}
	if cfg.DatasetURL != "https://example.org/dom_city_pair.csv" {
		t.Fatalf("unexpected dataset url %q", cfg.DatasetURL)
	}
	if cfg.RefreshInterval != 12*time.Hour {
		t.Fatalf("unexpected refresh interval %v", cfg.RefreshInterval)
	}
	if cfg.PairDirection != flights.DirectionDirected {
		t.Fatalf("unexpected direction %q", cfg.PairDirection)
	}
	if cfg.StoreMaxHistory != 8 {
		t.Fatalf("unexpected history %d", cfg.StoreMaxHistory)
	}
	if cfg.HTTPTimeout != 90*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.HTTPTimeout)
	}
	if cfg.Port != "9090" {
		t.Fatalf("unexpected port %q", cfg.Port)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("REFRESH_INTERVAL", "monthly")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for bad interval")
	}

	clearEnv(t)
	t.Setenv("PAIR_DIRECTION", "both")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for bad direction")
	}

	clearEnv(t)
	t.Setenv("HTTP_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for bad timeout")
	}
}
