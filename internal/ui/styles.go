// Package ui holds terminal rendering helpers for the lx CLI: color
// detection and ANSI styling for statuses, severities, and health tiers.
package ui

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/gridlock-labs/lattice/internal/model"
)

// ShouldUseColor reports whether ANSI colors belong on stdout, honoring
// NO_COLOR (https://no-color.org), CLICOLOR_FORCE=1, CLICOLOR=0, and finally
// TTY detection.
func ShouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) == "1" {
		return true
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR")) == "0" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ANSI256 color codes.
const (
	colorAccent = 74  // blue
	colorMuted  = 245 // medium gray
	colorGood   = 114 // green
	colorWarn   = 214 // orange
	colorBad    = 203 // red
)

var noColor bool

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}

func render(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderAccent returns s in the accent (blue) color.
func RenderAccent(s string) string {
	return render(colorAccent, s)
}

// RenderMuted returns s in the muted (gray) color.
func RenderMuted(s string) string {
	return render(colorMuted, s)
}

// RenderSeverity colors a bottleneck severity: low gray, medium orange,
// high red.
func RenderSeverity(sev model.Severity) string {
	switch sev {
	case model.SeverityHigh:
		return render(colorBad, string(sev))
	case model.SeverityMedium:
		return render(colorWarn, string(sev))
	default:
		return render(colorMuted, string(sev))
	}
}

// RenderTier colors a link health tier: healthy green, at_risk orange,
// blocked red.
func RenderTier(tier model.HealthTier) string {
	switch tier {
	case model.TierHealthy:
		return render(colorGood, string(tier))
	case model.TierAtRisk:
		return render(colorWarn, string(tier))
	case model.TierBlocked:
		return render(colorBad, string(tier))
	default:
		return string(tier)
	}
}

// RenderStatus colors a work-item status: completed green, blocked red,
// in_progress and review blue, everything else gray.
func RenderStatus(status model.Status) string {
	switch status {
	case model.StatusCompleted:
		return render(colorGood, string(status))
	case model.StatusBlocked:
		return render(colorBad, string(status))
	case model.StatusInProgress, model.StatusReview:
		return render(colorAccent, string(status))
	default:
		return render(colorMuted, string(status))
	}
}
