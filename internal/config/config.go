package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/gridlock-labs/lattice/internal/graph"
)

type Config struct {
	DatabaseURL string // LATTICE_DATABASE_URL (required)
	HTTPAddr    string // LATTICE_HTTP_ADDR (default ":8080")
	NATSURL     string // LATTICE_NATS_URL (optional, empty = no events)
	AuthToken   string // LATTICE_AUTH_TOKEN (optional, empty = auth disabled)

	// Analysis settings, optionally overridden by a TOML file at
	// LATTICE_ANALYSIS_CONFIG.
	Analysis graph.Config

	// Sync settings
	SyncInterval   time.Duration // LATTICE_SYNC_INTERVAL (default 0 = disabled)
	SyncS3Bucket   string        // LATTICE_SYNC_S3_BUCKET (enables S3 when set)
	SyncS3Endpoint string        // LATTICE_SYNC_S3_ENDPOINT (custom endpoint for MinIO)
	SyncS3Region   string        // LATTICE_SYNC_S3_REGION (default "us-east-1")
	SyncS3Prefix   string        // LATTICE_SYNC_S3_PREFIX (default "lattice", one object per workspace)
}

// analysisFile is the TOML shape of the analysis settings file.
type analysisFile struct {
	RiskWindow     string `toml:"risk_window"`     // Go duration string, e.g. "168h"
	SeverityMedium int    `toml:"severity_medium"` // minimum count for medium severity
	SeverityHigh   int    `toml:"severity_high"`   // minimum count for high severity
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:    os.Getenv("LATTICE_DATABASE_URL"),
		HTTPAddr:       envOrDefault("LATTICE_HTTP_ADDR", ":8080"),
		NATSURL:        os.Getenv("LATTICE_NATS_URL"),
		AuthToken:      os.Getenv("LATTICE_AUTH_TOKEN"),
		Analysis:       graph.DefaultConfig(),
		SyncS3Bucket:   os.Getenv("LATTICE_SYNC_S3_BUCKET"),
		SyncS3Endpoint: os.Getenv("LATTICE_SYNC_S3_ENDPOINT"),
		SyncS3Region:   envOrDefault("LATTICE_SYNC_S3_REGION", "us-east-1"),
		SyncS3Prefix:   envOrDefault("LATTICE_SYNC_S3_PREFIX", "lattice"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("LATTICE_DATABASE_URL is required")
	}

	if intervalStr := os.Getenv("LATTICE_SYNC_INTERVAL"); intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("LATTICE_SYNC_INTERVAL: %w", err)
		}
		c.SyncInterval = d
	}

	if path := os.Getenv("LATTICE_ANALYSIS_CONFIG"); path != "" {
		if err := loadAnalysisFile(path, &c.Analysis); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// loadAnalysisFile overrides analysis defaults with values from a TOML file.
// Unset fields keep their defaults.
func loadAnalysisFile(path string, cfg *graph.Config) error {
	var f analysisFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return fmt.Errorf("analysis config %s: %w", path, err)
	}
	if f.RiskWindow != "" {
		d, err := time.ParseDuration(f.RiskWindow)
		if err != nil {
			return fmt.Errorf("analysis config %s: risk_window: %w", path, err)
		}
		cfg.RiskWindow = d
	}
	if f.SeverityMedium > 0 {
		cfg.SeverityMedium = f.SeverityMedium
	}
	if f.SeverityHigh > 0 {
		cfg.SeverityHigh = f.SeverityHigh
	}
	if cfg.SeverityHigh < cfg.SeverityMedium {
		return fmt.Errorf("analysis config %s: severity_high (%d) below severity_medium (%d)",
			path, cfg.SeverityHigh, cfg.SeverityMedium)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
