package graph

import (
	"time"

	"github.com/gridlock-labs/lattice/internal/model"
)

// Config holds the tunable analysis parameters. Thresholds are configuration
// rather than constants; the defaults reflect the documented policy (an item
// gating 5 or more downstream items is a severe bottleneck).
type Config struct {
	// SeverityMedium and SeverityHigh are the minimum transitively-blocked
	// counts for the medium and high severity tiers. Any positive count
	// below SeverityMedium is low.
	SeverityMedium int
	SeverityHigh   int

	// RiskWindow is how close a due date must be for an in-progress
	// upstream item to put a link at risk.
	RiskWindow time.Duration

	// Now supplies the evaluation time for health classification.
	// Defaults to time.Now.
	Now func() time.Time
}

// DefaultConfig returns the default analysis parameters.
func DefaultConfig() Config {
	return Config{
		SeverityMedium: 2,
		SeverityHigh:   5,
		RiskWindow:     7 * 24 * time.Hour,
		Now:            time.Now,
	}
}

// SeverityFor buckets a transitively-blocked count. The count must be
// positive; zero-count items are not reported at all.
func (c Config) SeverityFor(count int) model.Severity {
	switch {
	case count >= c.SeverityHigh:
		return model.SeverityHigh
	case count >= c.SeverityMedium:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}

func (c Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
