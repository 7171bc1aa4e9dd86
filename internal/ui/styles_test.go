package ui

import (
	"strings"
	"testing"

	"github.com/gridlock-labs/lattice/internal/model"
)

func TestRenderSeverityColors(t *testing.T) {
	noColor = false
	defer func() { noColor = false }()

	for _, tc := range []struct {
		sev  model.Severity
		code string
	}{
		{model.SeverityLow, "245"},
		{model.SeverityMedium, "214"},
		{model.SeverityHigh, "203"},
	} {
		got := RenderSeverity(tc.sev)
		if !strings.Contains(got, "38;5;"+tc.code) {
			t.Errorf("RenderSeverity(%q) = %q, want color %s", tc.sev, got, tc.code)
		}
		if !strings.Contains(got, string(tc.sev)) {
			t.Errorf("RenderSeverity(%q) = %q, missing label", tc.sev, got)
		}
	}
}

func TestForceNoColor(t *testing.T) {
	noColor = false
	ForceNoColor()
	defer func() { noColor = false }()

	if got := RenderTier(model.TierBlocked); got != "blocked" {
		t.Errorf("expected plain string, got %q", got)
	}
	if got := RenderStatus(model.StatusCompleted); got != "completed" {
		t.Errorf("expected plain string, got %q", got)
	}
}
